package binding

import (
	"testing"

	"github.com/legitcs/legitcs/hdc"
)

func TestPushLookupPop(t *testing.T) {
	s := New()
	s.Push("x", StringBinding("a"))

	b, ok := s.Lookup("x")
	if !ok || b.Str != "a" {
		t.Fatalf("expected binding 'a', got %+v ok=%v", b, ok)
	}

	s.Pop()
	if _, ok := s.Lookup("x"); ok {
		t.Error("expected no binding after pop")
	}
}

func TestInnerShadowsOuter(t *testing.T) {
	s := New()
	s.Push("x", IntBinding(1))
	s.Push("x", IntBinding(2))

	b, _ := s.Lookup("x")
	if b.Int != 2 {
		t.Errorf("expected innermost binding 2, got %d", b.Int)
	}

	s.Pop()
	b, _ = s.Lookup("x")
	if b.Int != 1 {
		t.Errorf("expected outer binding 1 after pop, got %d", b.Int)
	}
}

func TestSetReplacesInnermostMatch(t *testing.T) {
	s := New()
	s.Push("x", StringBinding("old"))

	if !s.Set("x", StringBinding("new")) {
		t.Fatal("expected Set to find existing binding")
	}
	b, _ := s.Lookup("x")
	if b.Str != "new" {
		t.Errorf("expected 'new', got %q", b.Str)
	}

	if s.Set("y", StringBinding("nope")) {
		t.Error("expected Set to report no match for unbound name")
	}
}

func TestNodeBindingAndDepth(t *testing.T) {
	tree := hdc.New()
	tree.SetValue("items.0.k", "a")
	node := tree.GetObj("items.0")

	s := New()
	s.Push("it", NodeBinding(node))
	if s.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", s.Depth())
	}

	b, ok := s.Lookup("it")
	if !ok || b.Kind != KindNode {
		t.Fatalf("expected node binding, got %+v", b)
	}
	if got := b.Node.GetValue("k", ""); got != "a" {
		t.Errorf("expected 'a', got %q", got)
	}
}
