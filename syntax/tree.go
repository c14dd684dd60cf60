// Package syntax implements the compiled syntax tree (spec §3, §9
// option (a)): an arena of nodes addressed by index rather than by
// pointer, so the scanner's open-insertion-point idiom and `elseif`
// chaining are simple slice/index operations.
//
// Grounded in shape on the teacher's parser.Node interface/BaseNode
// embedding (every node carries a type and a source position), here
// flattened to match spec §3's literal field list.
package syntax

import "github.com/legitcs/legitcs/exprlang"

// Directive identifies which directive-table entry a node was built
// from. The zero value, DirLiteral, is the scanner-synthesized
// literal-text node.
type Directive int

const (
	DirLiteral Directive = iota
	DirName
	DirVar
	DirEvar
	DirLvar
	DirIf
	DirEach
	DirWith
	DirInclude
	DirLinclude
	DirDef
	DirCall
	DirSet
	DirLoop
	DirAlt
)

// Flag bits on a node (spec §3 "optional flags").
type Flag uint8

const (
	// FlagRequired marks a "!"-suffixed directive: missing data is an
	// error rather than silently empty (name!, var!). evar! and
	// include! are checked by the scanner and never produce a node.
	FlagRequired Flag = 1 << iota
)

// NodeRef addresses one node in a Tree's arena. NoRef (-1) means
// "no node" (nil pointer equivalent); 0 is the first allocated node.
type NodeRef int

const noRef NodeRef = -1

// Node is one entry of the syntax tree (spec §3 "Syntax-tree node").
type Node struct {
	Num       int // debug node number, unique within the Tree
	Directive Directive
	Flags     Flag

	Arg1 *ExprRef // first expression slot, e.g. `if`'s condition
	Arg2 *ExprRef // second expression slot, e.g. `set`'s right-hand side

	Args []*ExprRef // variadic argument list (`call`)

	Literal string // literal text for DirLiteral, macro/variable name otherwise

	Case0 NodeRef // then-branch / loop body / macro body / alt alternate
	Case1 NodeRef // else-branch
	Next  NodeRef // next sibling at this level

	Params []string // macro parameter names, for DirDef

	// LoopStart/LoopEnd/LoopStep hold the parsed bounds of a `loop`
	// directive's `var = start,end,step` form (spec §4.7).
	LoopStart, LoopEnd, LoopStep *ExprRef
}

// ExprRef wraps an expression tree (from package exprlang) with the
// source text it was parsed from, for diagnostics and Dump.
type ExprRef struct {
	Expr *exprlang.Node
	Src  string
}

// Tree is the arena holding every node produced while compiling one
// template (and any templates appended via repeated ParseString
// calls, spec §6 "parse_string may be invoked multiple times").
type Tree struct {
	nodes   []Node
	nextNum int
}

// New creates an empty syntax tree.
func New() *Tree {
	return &Tree{}
}

// Alloc appends a new node to the arena and returns its reference.
// Case0/Case1/Next default to "no node".
func (t *Tree) Alloc(n Node) NodeRef {
	n.Num = t.nextNum
	t.nextNum++
	if n.Case0 == 0 {
		n.Case0 = noRef
	}
	if n.Case1 == 0 {
		n.Case1 = noRef
	}
	if n.Next == 0 {
		n.Next = noRef
	}
	t.nodes = append(t.nodes, n)
	return NodeRef(len(t.nodes) - 1)
}

// NoRef is the "absent" node reference, exported for callers building
// nodes outside this package (the scanner).
const NoRef = noRef

// Get dereferences a NodeRef. Returns nil for NoRef.
func (t *Tree) Get(ref NodeRef) *Node {
	if ref == noRef || int(ref) < 0 || int(ref) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[ref]
}

// Len reports how many nodes the arena holds.
func (t *Tree) Len() int {
	return len(t.nodes)
}
