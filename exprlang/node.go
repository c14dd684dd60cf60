package exprlang

// NodeKind tags the operator or terminal type of an expression node.
type NodeKind int

const (
	NString NodeKind = iota
	NNum
	NVar
	NVarNum
	NNot
	NExists
	NAnd
	NOr
	NEq
	NNe
	NLt
	NLe
	NGt
	NGe
	NAdd
	NSub
	NMul
	NDiv
	NMod
	NDot
	NSubscript
	NCall
)

// Node is one node of an expression tree (spec §3 "Expression tree
// node"): a tagged kind, up to two children, and literal payloads.
type Node struct {
	Kind  NodeKind
	Str   string
	Num   int64
	Left  *Node
	Right *Node
}

func term(kind NodeKind, str string, num int64) *Node {
	return &Node{Kind: kind, Str: str, Num: num}
}

func unary(kind NodeKind, operand *Node) *Node {
	return &Node{Kind: kind, Left: operand}
}

func binary(kind NodeKind, left, right *Node) *Node {
	return &Node{Kind: kind, Left: left, Right: right}
}

func call(name string, arg *Node) *Node {
	return &Node{Kind: NCall, Str: name, Left: arg}
}

// IsLvalueShape reports whether n is built only from operators
// permissible on the left of `set` (spec §4.4 "lvalue flag"):
// variable terminals, string terminals (§9 Open Question 2), dot
// projection, and subscript. Only the left operand of `.`/`[...]` is
// constrained to be a path itself — the right operand (a dot segment
// or a subscript index) is not checked, e.g. `set:a[#2]=...`. A
// subscript index is evaluated; a bare dot segment (also one written
// in parentheses, `a.(name)`) is taken literally, so only a compound
// dot operand is evaluated (see exprlang.Eval's NDot/NSubscript cases).
func (n *Node) IsLvalueShape() bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case NVar, NVarNum, NString:
		return true
	case NDot, NSubscript:
		return n.Left.IsLvalueShape()
	default:
		return false
	}
}
