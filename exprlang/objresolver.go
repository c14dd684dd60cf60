package exprlang

// Obj is the minimal HDC node identity a ResolveObj call exposes: just
// enough for the `len`/`name` builtins (macro.builtinLen/builtinName)
// to see through a VAR to the node it names rather than only its
// already-stringified value.
type Obj interface {
	// Name returns the node's terminal path segment.
	Name() string
	// ChildCount returns how many ordered children the node has.
	ChildCount() int
}

// ObjResolver is a Resolver that can also resolve a VAR/VAR_NUM path
// to the HDC node it names. Implemented by render's resolver; a plain
// Resolver without this capability simply can't back node-shaped
// builtins, which then fall back to string coercion.
type ObjResolver interface {
	Resolver
	ResolveObj(path string) (Obj, bool)
}
