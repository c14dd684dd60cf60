package syntax

import "testing"

func TestAllocAssignsSequentialNumbers(t *testing.T) {
	tree := New()
	a := tree.Alloc(Node{Directive: DirLiteral, Literal: "hello"})
	b := tree.Alloc(Node{Directive: DirVar})

	if tree.Get(a).Num != 0 || tree.Get(b).Num != 1 {
		t.Errorf("expected sequential node numbers, got %d, %d", tree.Get(a).Num, tree.Get(b).Num)
	}
}

func TestUnsetRefsAreNoRef(t *testing.T) {
	tree := New()
	ref := tree.Alloc(Node{Directive: DirIf})
	node := tree.Get(ref)

	if node.Case0 != NoRef || node.Case1 != NoRef || node.Next != NoRef {
		t.Errorf("expected unset refs to default to NoRef, got case0=%d case1=%d next=%d",
			node.Case0, node.Case1, node.Next)
	}
}

func TestElseifChaining(t *testing.T) {
	// Models the elseif-splice shape from spec §4.7: an `elseif` is a
	// synthetic `if` node living in the outer if's Case1.
	tree := New()
	inner := tree.Alloc(Node{Directive: DirIf})
	outer := tree.Alloc(Node{Directive: DirIf})
	tree.Get(outer).Case1 = inner

	if tree.Get(tree.Get(outer).Case1).Directive != DirIf {
		t.Error("expected chained elseif to be reachable via outer.Case1")
	}
}

func TestGetOutOfRangeReturnsNil(t *testing.T) {
	tree := New()
	if tree.Get(NodeRef(99)) != nil {
		t.Error("expected nil for out-of-range ref")
	}
	if tree.Get(NoRef) != nil {
		t.Error("expected nil for NoRef")
	}
}
