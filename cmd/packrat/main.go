// Command packrat parses input with a grammar written in the EBNF of "golang.org/x/exp/ebnf".
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/alecthomas/packrat"
	"github.com/alecthomas/packrat/ebnf"
)

var (
	startFlag   = kingpin.Flag("start", "Start production.").Short('s').Required().String()
	formatFlag  = kingpin.Flag("format", "Output format.").Short('f').Default("tree").Enum("tree", "repr", "json")
	traceFlag   = kingpin.Flag("trace", "Trace parse attempts to stderr.").Bool()
	grammarFlag = kingpin.Flag("grammar", "Print the compiled grammar and exit.").Bool()
	grammarArg  = kingpin.Arg("grammar", "EBNF grammar file.").Required().ExistingFile()
	inputArg    = kingpin.Arg("input", "File to parse, or stdin if omitted.").ExistingFile()
)

func main() {
	kingpin.CommandLine.Help = `Parse input with an EBNF grammar and print the parse tree.

Upper-case productions skip whitespace before each token, lower-case productions are lexical:

  Expr = Term { ( "+" | "-" ) Term } .
  Term = number | "(" Expr ")" .
  number = "0" … "9" { "0" … "9" } .
`
	kingpin.Parse()

	var options []packrat.Option
	if *traceFlag {
		options = append(options, packrat.Trace(os.Stderr))
	}
	r, err := os.Open(*grammarArg)
	kingpin.FatalIfError(err, "")
	defer r.Close()
	parser, err := ebnf.CompileReader(*grammarArg, r, *startFlag, options...)
	kingpin.FatalIfError(err, "")

	if *grammarFlag {
		fmt.Println(parser)
		return
	}

	var input []byte
	if *inputArg == "" {
		input, err = io.ReadAll(os.Stdin)
	} else {
		input, err = os.ReadFile(*inputArg)
	}
	kingpin.FatalIfError(err, "")

	tree, err := parser.Parse(string(input))
	kingpin.FatalIfError(err, "")

	switch *formatFlag {
	case "repr":
		repr.Println(tree, repr.Indent("  "))
	case "json":
		bytes, err := json.MarshalIndent(tree, "", "  ")
		kingpin.FatalIfError(err, "")
		fmt.Printf("%s\n", bytes)
	default:
		fmt.Print(tree)
	}
}
