// Package binding implements the local-binding stack (spec §3, §4.6):
// the intrusive stack of name→value frames pushed by composite
// directives (each, with, loop, call) and consulted by name
// resolution before falling through to the hierarchical data context.
//
// Grounded on the teacher's runtime.LoopStack, generalized from a
// loop-only "$loop" value to an arbitrary named binding per frame.
package binding

import "github.com/legitcs/legitcs/hdc"

// Kind tags what a Binding holds.
type Kind int

const (
	// KindNode binds the name to a live HDC node reference.
	KindNode Kind = iota
	// KindString binds the name to an owned string value.
	KindString
	// KindInt binds the name to an owned integer value.
	KindInt
)

// Binding is the value half of one stack frame.
type Binding struct {
	Kind Kind
	Node *hdc.Node
	Str  string
	Int  int64
}

// NodeBinding creates a binding over a live HDC node.
func NodeBinding(n *hdc.Node) Binding { return Binding{Kind: KindNode, Node: n} }

// StringBinding creates a binding holding an owned string.
func StringBinding(s string) Binding { return Binding{Kind: KindString, Str: s} }

// IntBinding creates a binding holding an owned integer.
func IntBinding(n int64) Binding { return Binding{Kind: KindInt, Int: n} }

// frame is one entry of the intrusive stack: a single name bound to a
// single value, per spec §3 ("each frame maps one short name").
type frame struct {
	name  string
	value Binding
}

// Stack is the local-binding stack maintained across one render.
type Stack struct {
	frames []frame
}

// New creates an empty local-binding stack.
func New() *Stack {
	return &Stack{}
}

// Push introduces a new binding frame, visible to lookups until the
// matching Pop. Composite directives must pair every Push with
// exactly one Pop, including on error-unwind paths (§5, §8
// "local-stack balance").
func (s *Stack) Push(name string, value Binding) {
	s.frames = append(s.frames, frame{name: name, value: value})
}

// Pop removes the innermost binding frame.
func (s *Stack) Pop() {
	if len(s.frames) == 0 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth reports the current stack depth, for the local-stack-balance
// invariant check.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Lookup scans the stack from innermost outward for a frame bound to
// name. Reports the binding and whether one was found.
func (s *Stack) Lookup(name string) (Binding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].name == name {
			return s.frames[i].value, true
		}
	}
	return Binding{}, false
}

// Set updates the innermost binding with this name in place, used by
// `set` directive writes to string/int locals (§4.6: "writing to a
// local holding a string replaces the stored string"). Reports
// whether a matching local was found.
func (s *Stack) Set(name string, value Binding) bool {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].name == name {
			s.frames[i].value = value
			return true
		}
	}
	return false
}
