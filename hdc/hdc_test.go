package hdc

import (
	"strings"
	"testing"
)

func TestSetAndGetValue(t *testing.T) {
	tree := New()
	tree.SetValue("items.0.k", "a")
	tree.SetValue("items.1.k", "b")

	if got := tree.Get("items.0.k", ""); got != "a" {
		t.Errorf("expected 'a', got %q", got)
	}
	if got := tree.Get("items.1.k", ""); got != "b" {
		t.Errorf("expected 'b', got %q", got)
	}
	if got := tree.Get("missing", "def"); got != "def" {
		t.Errorf("expected default 'def', got %q", got)
	}
}

func TestGetObjChildIteration(t *testing.T) {
	tree := New()
	tree.SetValue("items.0.k", "a")
	tree.SetValue("items.1.k", "b")

	items := tree.GetObj("items")
	if items == nil {
		t.Fatalf("expected items node")
	}

	var names []string
	for c := items.Child(); c != nil; c = c.Next() {
		names = append(names, c.Name())
	}

	if len(names) != 2 || names[0] != "0" || names[1] != "1" {
		t.Errorf("unexpected children order: %v", names)
	}
}

func TestGetCopyDistinguishesAbsentFromEmpty(t *testing.T) {
	tree := New()
	tree.SetValue("x", "")

	if _, ok := tree.GetCopy("y"); ok {
		t.Error("expected absent for unset path")
	}
	v, ok := tree.GetCopy("x")
	if !ok || v != "" {
		t.Errorf("expected present empty string, got %q %v", v, ok)
	}
}

func TestReadFile(t *testing.T) {
	src := `
# a comment
name = Ada
items {
  0 {
    k = a
  }
  1.k = b
}
`
	tree, err := ReadFile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := tree.Get("name", ""); got != "Ada" {
		t.Errorf("expected 'Ada', got %q", got)
	}
	if got := tree.Get("items.0.k", ""); got != "a" {
		t.Errorf("expected 'a', got %q", got)
	}
	if got := tree.Get("items.1.k", ""); got != "b" {
		t.Errorf("expected 'b', got %q", got)
	}
}

func TestReadFileUnclosedBlock(t *testing.T) {
	_, err := ReadFile(strings.NewReader("items {\nk = v\n"))
	if err == nil {
		t.Error("expected error for unclosed block")
	}
}

func TestSearchPath(t *testing.T) {
	tree := New()
	tree.SetValue("Config.SearchPath.0", "/a")
	tree.SetValue("Config.SearchPath.1", "/b")

	exists := func(p string) bool { return p == "/b/header.cs" }
	got := tree.SearchPath("Config.SearchPath", "header.cs", exists)
	if got != "/b/header.cs" {
		t.Errorf("expected /b/header.cs, got %q", got)
	}
}
