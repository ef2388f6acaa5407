package packrat

import (
	"math"
	"sync"
)

// Unbounded is the stop offset that does not limit how far a match may extend.
const Unbounded = math.MaxInt

// Outcome of a parse attempt.
//
// The end offset of a successful outcome is available without computing its value. The value is
// computed on first use and cached, so actions run at most once per outcome.
type Outcome struct {
	ok       bool
	end      int
	furthest int
	value    *thunk
}

func fail(furthest int) Outcome {
	return Outcome{furthest: furthest}
}

func success(end, furthest int, value *thunk) Outcome {
	return Outcome{ok: true, end: end, furthest: max(end, furthest), value: value}
}

// OK returns true if the attempt matched.
func (o Outcome) OK() bool { return o.ok }

// End returns the offset one past the end of the match.
func (o Outcome) End() int { return o.end }

// Furthest returns the furthest offset reached while attempting the match, whether or not it
// succeeded.
func (o Outcome) Furthest() int { return o.furthest }

// Value of the match, or nil for a failed attempt.
func (o Outcome) Value() any {
	if !o.ok || o.value == nil {
		return nil
	}
	return o.value.get()
}

type thunk struct {
	once sync.Once
	f    func() any
	v    any
}

func lazy(f func() any) *thunk {
	return &thunk{f: f}
}

func constant(v any) *thunk {
	t := &thunk{v: v}
	t.once.Do(func() {})
	return t
}

func (t *thunk) get() any {
	t.once.Do(func() {
		f := t.f
		t.f = nil
		t.v = f()
	})
	return t.v
}

func values(thunks []*thunk) *thunk {
	return lazy(func() any {
		out := make([]any, len(thunks))
		for i, t := range thunks {
			out[i] = t.get()
		}
		return out
	})
}
