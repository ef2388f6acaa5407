package packrat

import (
	"fmt"

	"github.com/alecthomas/packrat/internal/text"
)

// Error represents a failure to parse an input.
//
// The error will contain positional information.
type Error interface {
	error
	// Unadorned message.
	Message() string
	// Position error occurred.
	Position() Position
}

// Position in an input.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// PositionOf returns the line and column of the byte offset within input.
//
// Lines and columns start at 1, and columns count characters.
func PositionOf(input string, offset int) Position {
	line, column := 1, 1
	for i := 0; i < offset && i < len(input); {
		r, w := text.Next(input, i)
		if r == '\n' {
			line++
			column = 1
		} else {
			column++
		}
		i += w
	}
	return Position{Offset: offset, Line: line, Column: column}
}

// FormatError formats an error message with a position prefix.
func FormatError(pos Position, message string) string {
	return fmt.Sprintf("%s: %s", pos, message)
}

// UnmatchedError is returned by Parse when no path through the grammar matched the input.
//
// Pos is the furthest offset the parser reached before giving up.
type UnmatchedError struct {
	Pos  Position
	Near string
}

func (u *UnmatchedError) Error() string { return FormatError(u.Pos, u.Message()) }

func (u *UnmatchedError) Message() string { // nolint: golint
	if u.Near == "" {
		return "unexpected end of input"
	}
	return fmt.Sprintf("unexpected %q", u.Near)
}

func (u *UnmatchedError) Position() Position { return u.Pos } // nolint: golint

// IncompleteError is returned by Parse when the grammar matched but did not consume all of the
// input.
type IncompleteError struct {
	// Pos is where the match ended.
	Pos Position
	// Furthest is the furthest offset the parser reached.
	Furthest Position
	Rest     string
}

func (i *IncompleteError) Error() string { return FormatError(i.Pos, i.Message()) }

func (i *IncompleteError) Message() string { // nolint: golint
	return fmt.Sprintf("unexpected trailing input %q", i.Rest)
}

func (i *IncompleteError) Position() Position { return i.Pos } // nolint: golint

// ConstructionError is raised, by panicking, when a combinator is constructed with invalid
// arguments.
//
// Generator.Build and Node.Parse recover ConstructionErrors and return them.
type ConstructionError struct {
	Op  string
	Msg string
}

func (c *ConstructionError) Error() string { return c.Op + ": " + c.Msg }

func panicf(op, format string, args ...interface{}) {
	panic(&ConstructionError{Op: op, Msg: fmt.Sprintf(format, args...)})
}

func recoverToError(err *error) {
	if msg := recover(); msg != nil {
		switch msg := msg.(type) {
		case *ConstructionError:
			*err = msg
		default:
			panic(msg)
		}
	}
}

func unmatched(input string, offset int) *UnmatchedError {
	return &UnmatchedError{Pos: PositionOf(input, offset), Near: excerpt(input, offset)}
}

func incomplete(input string, end, furthest int) *IncompleteError {
	return &IncompleteError{
		Pos:      PositionOf(input, end),
		Furthest: PositionOf(input, max(end, furthest)),
		Rest:     excerpt(input, end),
	}
}

// excerpt returns up to 16 characters of input from offset.
func excerpt(input string, offset int) string {
	if offset >= len(input) {
		return ""
	}
	end := offset
	for n := 0; n < 16 && end < len(input); n++ {
		_, w := text.Next(input, end)
		end += w
	}
	return input[offset:end]
}
