// Package hdc implements the hierarchical data context: a mutable
// tree of named nodes, each carrying an optional string value and an
// ordered list of children. It is the external collaborator the
// templating engine consumes by contract only — this package supplies
// the one concrete implementation this repository ships.
package hdc

import "strings"

// Node is one entry in the hierarchical data context. The root node's
// Name is empty; every other node's Name is its terminal path
// segment.
type Node struct {
	name     string
	value    string
	hasValue bool
	children []*Node
	parent   *Node
}

// Tree is a hierarchical data context rooted at a single Node.
type Tree struct {
	root *Node
}

// New creates an empty hierarchical data context.
func New() *Tree {
	return &Tree{root: &Node{}}
}

// Root returns the context's root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Name returns a node's terminal path segment ("" for the root).
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	return n.name
}

// Value returns a node's own string value (without descending into
// children).
func (n *Node) Value() string {
	if n == nil {
		return ""
	}
	return n.value
}

// HasValue reports whether n carries its own value, as opposed to
// existing only as a path segment with children (spec §4.6 "null"
// distinguishes an absent value from merely an empty one).
func (n *Node) HasValue() bool {
	return n != nil && n.hasValue
}

// Child returns the first child of n, or nil.
func (n *Node) Child() *Node {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// Next returns the next sibling of n, or nil.
func (n *Node) Next() *Node {
	if n == nil || n.parent == nil {
		return nil
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			if i+1 < len(siblings) {
				return siblings[i+1]
			}
			return nil
		}
	}
	return nil
}

// Children returns n's children in order. The returned slice must not
// be mutated by the caller.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// ChildCount returns how many ordered children n has (spec is silent
// on `len`'s exact semantics for a container argument;
// original_source/cs/csparse.c's _builtin_len counts children via
// hdf_obj_child/hdf_obj_next, which this mirrors — see
// macro.builtinLen).
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// Sub resolves a dotted path relative to n, the same way GetObj
// resolves relative to the tree root. Used by name resolution (§4.6)
// to walk from a locally-bound node into its descendants.
func (n *Node) Sub(path string) *Node {
	if n == nil {
		return nil
	}
	node := n
	for _, seg := range splitPath(path) {
		node = node.childNamed(seg)
		if node == nil {
			return nil
		}
	}
	return node
}

// GetValue resolves a dotted path relative to n and returns its
// value, or def if absent.
func (n *Node) GetValue(path, def string) string {
	node := n.Sub(path)
	if node == nil || !node.hasValue {
		return def
	}
	return node.value
}

// SetValue writes a value at a dotted path relative to n, creating
// intermediate nodes as needed.
func (n *Node) SetValue(path, value string) {
	node := n
	for _, seg := range splitPath(path) {
		node = node.childNamedOrCreate(seg)
	}
	node.value = value
	node.hasValue = true
}

func splitPath(path string) []string {
	path = strings.Trim(path, ".")
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

func (n *Node) childNamed(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (n *Node) childNamedOrCreate(name string) *Node {
	if c := n.childNamed(name); c != nil {
		return c
	}
	c := &Node{name: name, parent: n}
	n.children = append(n.children, c)
	return c
}

// GetObj resolves a dotted path to a node, hdf_get_obj-style. Returns
// nil if any segment is absent.
func (t *Tree) GetObj(path string) *Node {
	node := t.root
	for _, seg := range splitPath(path) {
		node = node.childNamed(seg)
		if node == nil {
			return nil
		}
	}
	return node
}

// Get resolves a dotted path to a string value, hdf_get_value-style.
// Returns def if the path does not resolve to a node carrying a
// value.
func (t *Tree) Get(path, def string) string {
	node := t.GetObj(path)
	if node == nil || !node.hasValue {
		return def
	}
	return node.value
}

// GetCopy is the evar form of Get: it distinguishes "absent" from
// "present but empty" via the second return.
func (t *Tree) GetCopy(path string) (string, bool) {
	node := t.GetObj(path)
	if node == nil || !node.hasValue {
		return "", false
	}
	return node.value, true
}

// SetValue writes a string value at a dotted path, creating
// intermediate nodes as needed (hdf_set_value-style).
func (t *Tree) SetValue(path, value string) {
	node := t.root
	for _, seg := range splitPath(path) {
		node = node.childNamedOrCreate(seg)
	}
	node.value = value
	node.hasValue = true
}

// SearchPath resolves a relative file path against the configured
// search-path list stored under the given HDF key (conventionally
// "Config.SearchPath"), ClearSilver include-resolution style: each
// entry is tried in order as a directory prefix, and the first
// combination that Exists reports true wins. If no search path is
// configured, or none of the entries resolve, the relative path is
// returned unchanged so the caller can try it against the current
// directory.
func (t *Tree) SearchPath(key, relative string, exists func(string) bool) string {
	obj := t.GetObj(key)
	if obj == nil {
		return relative
	}
	for c := obj.Child(); c != nil; c = c.Next() {
		if !c.hasValue || c.value == "" {
			continue
		}
		candidate := strings.TrimRight(c.value, "/") + "/" + relative
		if exists == nil || exists(candidate) {
			return candidate
		}
	}
	return relative
}
