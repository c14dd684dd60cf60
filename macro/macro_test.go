package macro

import (
	"testing"

	"github.com/legitcs/legitcs/exprlang"
	"github.com/legitcs/legitcs/syntax"
)

type nopResolver struct{}

func (nopResolver) Resolve(path string) (string, bool) { return "", false }
func (nopResolver) Call(name string, arg exprlang.Value) (exprlang.Value, error) {
	return exprlang.Value{}, nil
}

// stubObj is a minimal exprlang.Obj for exercising builtinLen/
// builtinName's VAR path without pulling in hdc or render.
type stubObj struct {
	name     string
	children int
}

func (o stubObj) Name() string    { return o.name }
func (o stubObj) ChildCount() int { return o.children }

// objResolver is an exprlang.ObjResolver backed by a fixed path->node
// table, standing in for render.state.ResolveObj.
type objResolver struct {
	nodes map[string]stubObj
}

func (r objResolver) Resolve(path string) (string, bool) { return "", false }
func (r objResolver) Call(name string, arg exprlang.Value) (exprlang.Value, error) {
	return exprlang.Value{}, nil
}
func (r objResolver) ResolveObj(path string) (exprlang.Obj, bool) {
	n, ok := r.nodes[path]
	return n, ok
}

func TestDefineAndLookupMacro(t *testing.T) {
	r := New()
	if err := r.DefineMacro("greet", []string{"who"}, syntax.NodeRef(3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, ok := r.LookupMacro("greet")
	if !ok {
		t.Fatal("expected macro to be found")
	}
	if m.Body != syntax.NodeRef(3) || len(m.Params) != 1 || m.Params[0] != "who" {
		t.Errorf("unexpected macro record: %+v", m)
	}
}

func TestDuplicateMacroIsError(t *testing.T) {
	r := New()
	if err := r.DefineMacro("greet", nil, syntax.NodeRef(0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.DefineMacro("greet", nil, syntax.NodeRef(1)); err == nil {
		t.Error("expected duplicate-macro error")
	}
}

func TestBuiltinLenStringArgIsStrlen(t *testing.T) {
	r := New()
	v, err := r.Call("len", exprlang.Value{Kind: exprlang.VString, Str: "hello"}, nopResolver{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Num != 5 {
		t.Errorf("expected 5, got %d", v.Num)
	}
}

// TestBuiltinLenVarArgIsChildCount mirrors original_source/cs/
// csparse.c's _builtin_len: a VAR argument counts the resolved node's
// children, not the length of its stringified value.
func TestBuiltinLenVarArgIsChildCount(t *testing.T) {
	r := New()
	res := objResolver{nodes: map[string]stubObj{"items": {name: "items", children: 3}}}
	v, err := r.Call("len", exprlang.Value{Kind: exprlang.VVar, Str: "items"}, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Num != 3 {
		t.Errorf("expected 3, got %d", v.Num)
	}
}

func TestBuiltinLenVarArgWithoutObjResolverFallsBackToStrlen(t *testing.T) {
	r := New()
	v, err := r.Call("len", exprlang.Value{Kind: exprlang.VVar, Str: "items"}, nopResolver{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Num != 0 {
		t.Errorf("expected 0 (unresolved path stringifies empty), got %d", v.Num)
	}
}

// TestBuiltinNameVarArgReturnsNodeName mirrors _builtin_name: it
// returns the resolved node's own terminal name, not a dot-split of
// its value.
func TestBuiltinNameVarArgReturnsNodeName(t *testing.T) {
	r := New()
	res := objResolver{nodes: map[string]stubObj{"items.0.k": {name: "k", children: 0}}}
	v, err := r.Call("name", exprlang.Value{Kind: exprlang.VVar, Str: "items.0.k"}, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Str != "k" {
		t.Errorf("expected 'k', got %q", v.Str)
	}
}

func TestBuiltinNameStringArgIsEmpty(t *testing.T) {
	r := New()
	v, err := r.Call("name", exprlang.Value{Kind: exprlang.VString, Str: "items.0.k"}, nopResolver{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Str != "" {
		t.Errorf("expected empty string for a non-VAR argument, got %q", v.Str)
	}
}

func TestUnknownFunctionIsError(t *testing.T) {
	r := New()
	if _, err := r.Call("nope", exprlang.Value{}, nopResolver{}); err == nil {
		t.Error("expected error for unknown function")
	}
}

func TestBorrowSharesMacrosAndFunctions(t *testing.T) {
	parent := New()
	_ = parent.DefineMacro("greet", nil, syntax.NodeRef(0))

	child := parent.Borrow()
	if _, ok := child.LookupMacro("greet"); !ok {
		t.Error("expected borrowed registry to see parent's macros")
	}

	child.Detach()
	if child.macros != nil {
		t.Error("expected Detach to clear the borrowed registry's own map reference")
	}
	if _, ok := parent.LookupMacro("greet"); !ok {
		t.Error("expected parent's macros to survive child Detach")
	}
}
