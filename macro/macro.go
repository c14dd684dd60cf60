// Package macro implements the macro registry (`def`/`call`) and the
// small host-function registry spec.md's Non-goals deliberately cap
// at two builtins (`len`, `name`) plus host-registered unary
// functions (spec §2 "Lifecycle", §4.7).
//
// Grounded on the teacher's engine.DefaultFunctions() FuncMap-style
// registry pattern, collapsed from ~80 Blade helpers down to this
// much smaller surface per spec.md's explicit Non-goal: "no function
// definitions beyond macro templates and a small registry of
// host-provided unary functions."
package macro

import (
	"fmt"
	"strconv"

	"github.com/legitcs/legitcs/exprlang"
	"github.com/legitcs/legitcs/syntax"
)

// Record is a user-defined macro (spec §3 "Macro record"): a name, an
// ordered parameter list, and a reference to its `def` node's body.
type Record struct {
	Name   string
	Params []string
	Body   syntax.NodeRef
}

// Func is a host-registered callable taking one evaluated argument
// (spec §3 "Function record": "arity currently always 1").
type Func func(exprlang.Value, exprlang.Resolver) (exprlang.Value, error)

// Registry stores both macros (def/call) and callable functions,
// consulted during render by name resolution's function-call path
// (spec §4.5 "Function call").
type Registry struct {
	macros    map[string]*Record
	functions map[string]Func
	// borrowed marks a registry shared in from a parent engine (spec
	// §5, §9 "Dynamic re-entry"): Detach must not clear a borrowed
	// registry's contents, only drop its references to them.
	borrowed bool
}

// New creates a registry pre-populated with the two required
// builtins, `len` and `name`.
func New() *Registry {
	r := &Registry{
		macros:    make(map[string]*Record),
		functions: make(map[string]Func),
	}
	r.functions["len"] = builtinLen
	r.functions["name"] = builtinName
	return r
}

// Borrow returns a registry sharing r's contents, for a nested engine
// spawned by `lvar`/`linclude`/`include` (spec §5, §9): the nested
// engine must not free entries it didn't register itself.
func (r *Registry) Borrow() *Registry {
	return &Registry{macros: r.macros, functions: r.functions, borrowed: true}
}

// Detach clears r's maps without mutating a borrowed parent's state
// (spec §5 "the nested engine must detach that pointer before
// destruction"). A no-op for a registry that owns its maps.
func (r *Registry) Detach() {
	if r.borrowed {
		r.macros = nil
		r.functions = nil
	}
}

// DefineMacro registers a macro, rejecting a duplicate name (spec §3
// invariant, §7 PARSE "duplicate macro").
func (r *Registry) DefineMacro(name string, params []string, body syntax.NodeRef) error {
	if _, exists := r.macros[name]; exists {
		return fmt.Errorf("parse: duplicate macro %q", name)
	}
	r.macros[name] = &Record{Name: name, Params: params, Body: body}
	return nil
}

// LookupMacro finds a macro by name (spec §3 invariant "a call target
// must already be present in the macro registry").
func (r *Registry) LookupMacro(name string) (*Record, bool) {
	m, ok := r.macros[name]
	return m, ok
}

// RegisterFunction registers a host-provided callable (spec §6
// register_function). A differing re-registration is a DUPLICATE
// error (spec §7); re-registering the identical behavior is not
// distinguishable in Go by value equality of funcs, so any
// re-registration under an existing name is treated as a conflict —
// callers that want to replace a function should use a fresh name.
func (r *Registry) RegisterFunction(name string, fn Func) error {
	if _, exists := r.functions[name]; exists {
		return fmt.Errorf("duplicate: function %q already registered", name)
	}
	r.functions[name] = fn
	return nil
}

// RegisterStrFunc registers a pure string-to-string transform under
// the Func shape (spec §6 register_strfunc).
func (r *Registry) RegisterStrFunc(name string, transform func(string) string) error {
	return r.RegisterFunction(name, func(v exprlang.Value, res exprlang.Resolver) (exprlang.Value, error) {
		return exprlang.Value{Kind: exprlang.VString, Str: transform(exprlang.ToString(v, res))}, nil
	})
}

// Call invokes a registered function by name with an already-
// evaluated argument (spec §4.5 "Function call"), satisfying
// exprlang.Resolver.Call when embedded by a render-time resolver.
func (r *Registry) Call(name string, arg exprlang.Value, res exprlang.Resolver) (exprlang.Value, error) {
	fn, ok := r.functions[name]
	if !ok {
		return exprlang.Value{}, fmt.Errorf("parse: unknown function %q", name)
	}
	return fn(arg, res)
}

// HasFunction reports whether name is registered, used by the
// expression parser's "unknown function is a parse error" check
// (spec §4.4).
func (r *Registry) HasFunction(name string) bool {
	_, ok := r.functions[name]
	return ok
}

// builtinLen mirrors original_source/cs/csparse.c's _builtin_len: a
// CS_TYPE_VAR argument counts its resolved node's children, any other
// argument is stringified and strlen'd. spec.md is silent on the
// exact semantics, so the original is ground truth here.
func builtinLen(v exprlang.Value, res exprlang.Resolver) (exprlang.Value, error) {
	if v.Kind == exprlang.VVar || v.Kind == exprlang.VVarNum {
		if or, ok := res.(exprlang.ObjResolver); ok {
			if obj, ok := or.ResolveObj(v.Str); ok {
				return exprlang.Value{Kind: exprlang.VNum, Num: int64(obj.ChildCount())}, nil
			}
		}
	}
	s := exprlang.ToString(v, res)
	return exprlang.Value{Kind: exprlang.VNum, Num: int64(len(s))}, nil
}

// builtinName mirrors _builtin_name (csparse.c): it resolves the
// argument to its HDC node and returns hdf_obj_name(obj) — the node's
// own terminal name, not its value — the same thing the `name`
// directive emits (render.renderNode's DirName case). A non-VAR
// argument, or a VAR that resolves to nothing, has no node identity to
// report and yields the empty string.
func builtinName(v exprlang.Value, res exprlang.Resolver) (exprlang.Value, error) {
	if v.Kind == exprlang.VVar || v.Kind == exprlang.VVarNum {
		if or, ok := res.(exprlang.ObjResolver); ok {
			if obj, ok := or.ResolveObj(v.Str); ok {
				return exprlang.Value{Kind: exprlang.VString, Str: obj.Name()}, nil
			}
		}
	}
	return exprlang.Value{Kind: exprlang.VString, Str: ""}, nil
}

// FormatInt is a small shared helper so directive-eval code (render
// package) and macro builtins format integers identically.
func FormatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
