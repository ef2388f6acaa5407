// Package intern canonicalises values constructed from a kind and an argument tuple, so that equal
// constructions share one instance.
package intern

import (
	"reflect"
	"sync"
	"unsafe"
)

// Pool of interned values.
//
// Lookups are tiered: first by kind, then by each argument in turn, ending in a leaf slot holding
// the canonical instance. A Pool is safe for concurrent use.
type Pool struct {
	mu    sync.Mutex
	kinds map[string]*tier
}

type tier struct {
	next  map[any]*tier
	value any
	set   bool
}

// funcKey identifies a function value by its closure, not its code.
type funcKey struct {
	typ reflect.Type
	ptr unsafe.Pointer
}

type nilKey struct{}

// New creates an empty Pool.
func New() *Pool {
	return &Pool{kinds: map[string]*tier{}}
}

// Key canonicalises an argument for use in a Pool.
//
// Comparable values compare by value, which makes pointers compare by identity. Functions compare by
// closure identity. Values that are neither (slices, maps, structs holding them) cannot be interned
// and return false.
func Key(arg any) (any, bool) {
	if arg == nil {
		return nilKey{}, true
	}
	rv := reflect.ValueOf(arg)
	switch rv.Kind() {
	case reflect.Func:
		// A func value is a single pointer to its closure record.
		cp := reflect.New(rv.Type())
		cp.Elem().Set(rv)
		return funcKey{typ: rv.Type(), ptr: *(*unsafe.Pointer)(cp.UnsafePointer())}, true
	case reflect.Map, reflect.Slice:
		return nil, false
	}
	if !rv.Comparable() {
		return nil, false
	}
	return arg, true
}

// Intern returns the canonical value for (kind, args), calling build to create it if absent.
//
// build is called without the pool lock held, so it may itself intern values. If two callers race
// to build the same entry the first one stored wins.
func (p *Pool) Intern(kind string, args []any, build func() any) any {
	keys := make([]any, len(args))
	for i, arg := range args {
		key, ok := Key(arg)
		if !ok {
			return build()
		}
		keys[i] = key
	}
	p.mu.Lock()
	if leaf := p.lookup(kind, keys); leaf.set {
		p.mu.Unlock()
		return leaf.value
	}
	p.mu.Unlock()

	value := build()

	p.mu.Lock()
	defer p.mu.Unlock()
	leaf := p.lookup(kind, keys)
	if leaf.set {
		return leaf.value
	}
	leaf.value = value
	leaf.set = true
	return value
}

// Len returns the number of interned values.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, t := range p.kinds {
		n += t.count()
	}
	return n
}

func (p *Pool) lookup(kind string, keys []any) *tier {
	t, ok := p.kinds[kind]
	if !ok {
		t = &tier{}
		p.kinds[kind] = t
	}
	for _, key := range keys {
		if t.next == nil {
			t.next = map[any]*tier{}
		}
		next, ok := t.next[key]
		if !ok {
			next = &tier{}
			t.next[key] = next
		}
		t = next
	}
	return t
}

func (t *tier) count() int {
	n := 0
	if t.set {
		n++
	}
	for _, next := range t.next {
		n += next.count()
	}
	return n
}
