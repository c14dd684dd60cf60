// Package directive implements the static, ordered directive table
// (spec §4.1): for each recognized directive, its allowed parse
// states, the next-state policy applied once its handler runs, and
// whether it takes an argument body.
//
// Grounded on the teacher's parser.go directive-dispatch switch,
// restructured from a big switch into the table-of-structs form the
// spec calls for explicitly.
package directive

import "strings"

// State tags a parse-state stack frame (spec §3).
type State int

const (
	Global State = iota
	If
	Else
	Each
	With
	Def
	Loop
	Alt
)

func (s State) bit() uint16 { return 1 << uint(s) }

// Mask is a bitset of States.
type Mask uint16

func maskOf(states ...State) Mask {
	var m Mask
	for _, s := range states {
		m |= Mask(s.bit())
	}
	return m
}

// Anywhere is the union of every non-terminal parse state: a
// directive allowed Anywhere may appear at any nesting level.
var Anywhere = maskOf(Global, If, Else, Each, With, Def, Loop, Alt)

func (m Mask) allows(s State) bool {
	return m&Mask(s.bit()) != 0
}

// Allows reports whether a directive may appear while the parser is
// in parse state s.
func (e *Entry) Allows(s State) bool {
	return e.AllowedStates.allows(s)
}

// Policy describes what the scanner does to the parse-state stack
// after a directive's parse handler runs (spec §4.2: "a bitmask that
// may include SAME, POP, or a new state tag" — POP and a push-to-a-
// new-state combine for `else`, which closes the IF frame and opens
// an ELSE frame in the same step).
type Policy int

const (
	// Same leaves the parse-state stack untouched.
	Same Policy = iota
	// Pop closes the innermost frame (the directive is a closer, e.g.
	// `/if`, `/each`, `/with`).
	Pop
	// Push opens a new frame tagged PushState.
	Push
	// PopPush closes the innermost frame, then immediately opens a new
	// frame tagged PushState (only `else` uses this: it ends the IF
	// frame and starts an ELSE frame over the same `if` node).
	PopPush
)

// Entry is one row of the directive table.
type Entry struct {
	Name          string
	AllowedStates Mask
	NextPolicy    Policy
	PushState     State // meaningful when NextPolicy is Push or PopPush
	HasArgument   bool
	// IsComment marks the "#"-prefixed comment pseudo-directive,
	// discarded at scan time (spec §4.1).
	IsComment bool
}

// Table is the static, ordered directive table (spec §4.1). Order
// matters only for deterministic prefix-match tie-breaking; no two
// entries here share a name so ordering is otherwise inert.
var Table = []Entry{
	{Name: "literal", AllowedStates: Anywhere, NextPolicy: Same, HasArgument: true},
	{Name: "name", AllowedStates: Anywhere, NextPolicy: Same, HasArgument: true},
	{Name: "var", AllowedStates: Anywhere, NextPolicy: Same, HasArgument: true},
	{Name: "evar", AllowedStates: Anywhere, NextPolicy: Same, HasArgument: true},
	{Name: "lvar", AllowedStates: Anywhere, NextPolicy: Same, HasArgument: true},

	{Name: "if", AllowedStates: Anywhere, NextPolicy: Push, PushState: If, HasArgument: true},
	{Name: "elseif", AllowedStates: maskOf(If), NextPolicy: Same, HasArgument: true},
	{Name: "elif", AllowedStates: maskOf(If), NextPolicy: Same, HasArgument: true},
	{Name: "else", AllowedStates: maskOf(If), NextPolicy: PopPush, PushState: Else, HasArgument: false},
	{Name: "/if", AllowedStates: maskOf(If, Else), NextPolicy: Pop, HasArgument: false},

	{Name: "each", AllowedStates: Anywhere, NextPolicy: Push, PushState: Each, HasArgument: true},
	{Name: "/each", AllowedStates: maskOf(Each), NextPolicy: Pop, HasArgument: false},

	{Name: "with", AllowedStates: Anywhere, NextPolicy: Push, PushState: With, HasArgument: true},
	{Name: "/with", AllowedStates: maskOf(With), NextPolicy: Pop, HasArgument: false},

	{Name: "include", AllowedStates: Anywhere, NextPolicy: Same, HasArgument: true},
	{Name: "linclude", AllowedStates: Anywhere, NextPolicy: Same, HasArgument: true},

	{Name: "def", AllowedStates: Anywhere, NextPolicy: Push, PushState: Def, HasArgument: true},
	{Name: "/def", AllowedStates: maskOf(Def), NextPolicy: Pop, HasArgument: false},

	{Name: "call", AllowedStates: Anywhere, NextPolicy: Same, HasArgument: true},
	{Name: "set", AllowedStates: Anywhere, NextPolicy: Same, HasArgument: true},

	{Name: "loop", AllowedStates: Anywhere, NextPolicy: Push, PushState: Loop, HasArgument: true},
	{Name: "/loop", AllowedStates: maskOf(Loop), NextPolicy: Pop, HasArgument: false},

	{Name: "alt", AllowedStates: Anywhere, NextPolicy: Push, PushState: Alt, HasArgument: true},
	{Name: "/alt", AllowedStates: maskOf(Alt), NextPolicy: Pop, HasArgument: false},
}

// Lookup matches a directive body's leading text against the table by
// case-insensitive prefix, choosing the first entry whose name is
// followed in body by ':', '!', whitespace, or end-of-body (spec
// §4.1). Returns the entry, whether a "!" (required) suffix followed
// the name, and the remainder of body after the name/suffix.
func Lookup(body string) (entry *Entry, required bool, rest string, ok bool) {
	trimmed := strings.TrimLeft(body, " \t\r\n")
	if strings.HasPrefix(trimmed, "#") {
		return &Entry{Name: "#", IsComment: true}, false, "", true
	}

	lower := strings.ToLower(trimmed)
	for i := range Table {
		e := &Table[i]
		name := e.Name
		if !strings.HasPrefix(lower, name) {
			continue
		}
		after := trimmed[len(name):]
		if after == "" {
			return e, false, "", true
		}
		switch after[0] {
		case '!':
			return e, true, strings.TrimPrefix(after[1:], ":"), true
		case ':':
			return e, false, after[1:], true
		case ' ', '\t', '\r', '\n':
			return e, false, strings.TrimLeft(after, " \t\r\n"), true
		}
	}
	return nil, false, "", false
}
