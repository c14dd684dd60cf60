// Package render implements the tree-walking renderer (spec §4.7,
// §4.8): it traverses the syntax tree's sibling chains, dispatches
// each node through its directive's eval semantics, maintains the
// local-binding stack across composite directives, and spawns nested
// compile+render cycles for `lvar`/`linclude` dynamic re-entry (§5,
// §9).
//
// Grounded on the teacher's compiler.Compiler per-node-type dispatch
// switch (compileNode), but evaluating directly against the
// hierarchical data context and local bindings instead of emitting
// html/template action source — the one place this module's execution
// strategy departs from the teacher's compile-to-host-template
// approach while keeping its per-node-type dispatch shape.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/legitcs/legitcs/binding"
	"github.com/legitcs/legitcs/exprlang"
	"github.com/legitcs/legitcs/hdc"
	"github.com/legitcs/legitcs/legiterr"
	"github.com/legitcs/legitcs/macro"
	"github.com/legitcs/legitcs/scanner"
	"github.com/legitcs/legitcs/syntax"
)

// Output receives each emitted fragment in render order (spec §6
// "Output sink").
type Output func(string) error

// Config bundles everything one Render call needs.
type Config struct {
	Tree     *syntax.Tree
	Root     syntax.NodeRef
	HDC      *hdc.Tree
	Macros   *macro.Registry
	Includer scanner.Includer
	Out      Output
	Logger   logrus.FieldLogger
}

// Render walks the tree rooted at cfg.Root, emitting fragments via
// cfg.Out against a fresh local-binding stack (spec §8 "local-stack
// balance": the stack returns to its entry depth, here zero, once
// Render returns).
func Render(cfg Config) error {
	logger := cfg.Logger
	if logger == nil {
		logger = discardLogger()
	}
	st := &state{
		tree:     cfg.Tree,
		hdcTree:  cfg.HDC,
		macros:   cfg.Macros,
		includer: cfg.Includer,
		out:      cfg.Out,
		logger:   logger,
		bindings: binding.New(),
	}
	return st.renderChain(cfg.Root)
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// state carries one render call's mutable context and implements
// exprlang.Resolver so expression evaluation reaches the local-binding
// stack and the hierarchical data context (spec §4.6).
type state struct {
	tree     *syntax.Tree
	hdcTree  *hdc.Tree
	macros   *macro.Registry
	includer scanner.Includer
	out      Output
	logger   logrus.FieldLogger
	bindings *binding.Stack
}

func (st *state) renderChain(ref syntax.NodeRef) error {
	for ref != syntax.NoRef {
		n := st.tree.Get(ref)
		if n == nil {
			return nil
		}
		if err := st.renderNode(n); err != nil {
			return err
		}
		ref = n.Next
	}
	return nil
}

func (st *state) renderNode(n *syntax.Node) error {
	switch n.Directive {
	case syntax.DirLiteral:
		return st.emit(n.Literal)

	case syntax.DirVar:
		val, err := exprlang.Eval(n.Arg1.Expr, st)
		if err != nil {
			return err
		}
		if n.Flags&syntax.FlagRequired != 0 && !exprlang.Exists(val, st) {
			return legiterr.New(legiterr.NotFound, fmt.Sprintf("var:%s", n.Arg1.Src), "required value is missing")
		}
		return st.emit(exprlang.ToString(val, st))

	case syntax.DirName:
		path, err := exprlang.AsLvaluePath(n.Arg1.Expr, st)
		if err != nil {
			return err
		}
		node, ok := st.resolveNode(path)
		if !ok {
			if n.Flags&syntax.FlagRequired != 0 {
				return legiterr.New(legiterr.NotFound, fmt.Sprintf("name:%s", n.Arg1.Src), "required node is missing")
			}
			return nil
		}
		return st.emit(node.Name())

	case syntax.DirIf:
		val, err := exprlang.Eval(n.Arg1.Expr, st)
		if err != nil {
			return err
		}
		if exprlang.ToBool(val, st) {
			return st.renderChain(n.Case0)
		}
		return st.renderChain(n.Case1)

	case syntax.DirEach:
		path, err := exprlang.AsLvaluePath(n.Arg1.Expr, st)
		if err != nil {
			return err
		}
		node, ok := st.resolveNode(path)
		if !ok {
			return nil
		}
		for c := node.Child(); c != nil; c = c.Next() {
			st.bindings.Push(n.Literal, binding.NodeBinding(c))
			err := st.renderChain(n.Case0)
			st.bindings.Pop()
			if err != nil {
				return err
			}
		}
		return nil

	case syntax.DirWith:
		path, err := exprlang.AsLvaluePath(n.Arg1.Expr, st)
		if err != nil {
			return err
		}
		node, ok := st.resolveNode(path)
		if !ok {
			return nil
		}
		st.bindings.Push(n.Literal, binding.NodeBinding(node))
		err = st.renderChain(n.Case0)
		st.bindings.Pop()
		return err

	case syntax.DirLoop:
		return st.renderLoop(n)

	case syntax.DirDef:
		return nil

	case syntax.DirCall:
		return st.renderCall(n)

	case syntax.DirSet:
		path, err := exprlang.AsLvaluePath(n.Arg1.Expr, st)
		if err != nil {
			return err
		}
		val, err := exprlang.Eval(n.Arg2.Expr, st)
		if err != nil {
			return err
		}
		st.doSet(path, val)
		return nil

	case syntax.DirAlt:
		val, err := exprlang.Eval(n.Arg1.Expr, st)
		if err != nil {
			return err
		}
		if exprlang.ToBool(val, st) {
			return st.emit(exprlang.ToString(val, st))
		}
		return st.renderChain(n.Case0)

	case syntax.DirLvar:
		val, err := exprlang.Eval(n.Arg1.Expr, st)
		if err != nil {
			return err
		}
		return st.spawn(exprlang.ToString(val, st), "lvar")

	case syntax.DirLinclude:
		val, err := exprlang.Eval(n.Arg1.Expr, st)
		if err != nil {
			return err
		}
		path := exprlang.ToString(val, st)
		if st.includer == nil {
			return nil
		}
		if !strings.HasPrefix(path, "/") {
			path = st.hdcTree.SearchPath("Config.SearchPath", path, st.includer.Exists)
		}
		content, err := st.includer.ReadInclude(path)
		if err != nil {
			return nil
		}
		return st.spawn(content, "linclude:"+path)

	default:
		return legiterr.New(legiterr.Assert, "render", fmt.Sprintf("unhandled directive code %d", n.Directive))
	}
}

func (st *state) renderLoop(n *syntax.Node) error {
	startVal, err := exprlang.Eval(n.LoopStart.Expr, st)
	if err != nil {
		return err
	}
	endVal, err := exprlang.Eval(n.LoopEnd.Expr, st)
	if err != nil {
		return err
	}
	stepVal, err := exprlang.Eval(n.LoopStep.Expr, st)
	if err != nil {
		return err
	}
	start := exprlang.ToInt(startVal, st)
	end := exprlang.ToInt(endVal, st)
	step := exprlang.ToInt(stepVal, st)

	if step == 0 {
		return nil
	}
	diff := end - start
	if (step > 0 && diff < 0) || (step < 0 && diff > 0) {
		return nil
	}
	count := diff / step
	if count < 0 {
		count = -count
	}
	count++

	i := start
	for k := int64(0); k < count; k++ {
		st.bindings.Push(n.Literal, binding.IntBinding(i))
		err := st.renderChain(n.Case0)
		st.bindings.Pop()
		if err != nil {
			return err
		}
		i += step
	}
	return nil
}

// renderCall invokes a macro (spec §4.7 "call"): each argument is
// evaluated in the caller's context, then the whole set is pushed as
// fresh local-binding frames (still backed by the caller's existing
// stack — a macro body sees its own params shadowing, not an isolated
// stack) for the duration of the body, popped afterward regardless of
// outcome.
func (st *state) renderCall(n *syntax.Node) error {
	rec, ok := st.macros.LookupMacro(n.Literal)
	if !ok {
		return legiterr.New(legiterr.Assert, "call", fmt.Sprintf("macro %q vanished after compile", n.Literal))
	}
	pushed := 0
	for i, param := range rec.Params {
		val, err := exprlang.Eval(n.Args[i].Expr, st)
		if err != nil {
			for ; pushed > 0; pushed-- {
				st.bindings.Pop()
			}
			return err
		}
		st.bindings.Push(param, st.valueToBinding(val))
		pushed++
	}
	body := syntax.NoRef
	if defNode := st.tree.Get(rec.Body); defNode != nil {
		body = defNode.Case0
	}
	err := st.renderChain(body)
	for ; pushed > 0; pushed-- {
		st.bindings.Pop()
	}
	return err
}

// spawn compiles src as a fresh template and renders it inline,
// sharing the hierarchical data context and the function/macro
// registry with the parent but owning its own parse tree, parse-state
// stack, and local-binding stack (spec §5, §9 "Dynamic re-entry").
func (st *state) spawn(src, name string) error {
	tree := syntax.New()
	borrowed := st.macros.Borrow()
	defer borrowed.Detach()

	sc := scanner.New(tree, st.hdcTree, borrowed, st.includer)
	if err := sc.ScanString(name, src); err != nil {
		return legiterr.Wrap(err, name)
	}
	nested := &state{
		tree:     tree,
		hdcTree:  st.hdcTree,
		macros:   borrowed,
		includer: st.includer,
		out:      st.out,
		logger:   st.logger,
		bindings: binding.New(),
	}
	return nested.renderChain(sc.Root())
}

func (st *state) emit(text string) error {
	if st.out == nil {
		return nil
	}
	return st.out(text)
}

// Resolve implements exprlang.Resolver (spec §4.6): the local-binding
// stack is scanned innermost outward for path's head segment before
// falling through to the hierarchical data context.
func (st *state) Resolve(path string) (string, bool) {
	head, tail := splitHead(path)
	if b, ok := st.bindings.Lookup(head); ok {
		switch b.Kind {
		case binding.KindNode:
			node := b.Node
			if tail != "" {
				node = b.Node.Sub(tail)
			}
			if node == nil {
				return "", false
			}
			return node.Value(), node.HasValue()
		case binding.KindString:
			if tail != "" {
				st.logger.Warnf("local %q holds a string; ignoring tail %q", head, tail)
			}
			return b.Str, true
		case binding.KindInt:
			if tail != "" {
				st.logger.Warnf("local %q holds an integer; ignoring tail %q", head, tail)
			}
			return strconv.FormatInt(b.Int, 10), true
		}
	}
	return st.hdcTree.GetCopy(path)
}

// Call implements exprlang.Resolver, reaching the shared function
// registry for a NCall node (spec §4.5 "Function call").
func (st *state) Call(name string, arg exprlang.Value) (exprlang.Value, error) {
	return st.macros.Call(name, arg, st)
}

// ResolveObj implements exprlang.ObjResolver, reusing the same
// local-binding-then-HDC lookup resolveNode already performs for
// `name`/`each`/`with`, so `len`/`name` builtins see genuine node
// identity (child count, terminal name) rather than a stringified
// value (macro.builtinLen/builtinName).
func (st *state) ResolveObj(path string) (exprlang.Obj, bool) {
	n, ok := st.resolveNode(path)
	if !ok || n == nil {
		return nil, false
	}
	return n, true
}

func (st *state) resolveNode(path string) (*hdc.Node, bool) {
	head, tail := splitHead(path)
	if b, ok := st.bindings.Lookup(head); ok {
		if b.Kind != binding.KindNode {
			return nil, false
		}
		if tail == "" {
			return b.Node, true
		}
		n := b.Node.Sub(tail)
		return n, n != nil
	}
	n := st.hdcTree.GetObj(path)
	return n, n != nil
}

// valueToBinding implements spec §4.7 call's argument-binding rule:
// "variable-typed arguments resolve to HDC references when possible
// (so the callee sees the subtree); string/number arguments copy in."
func (st *state) valueToBinding(val exprlang.Value) binding.Binding {
	switch val.Kind {
	case exprlang.VVar, exprlang.VVarNum:
		if node, ok := st.resolveNode(val.Str); ok {
			return binding.NodeBinding(node)
		}
		return binding.StringBinding(exprlang.ToString(val, st))
	case exprlang.VNum:
		return binding.IntBinding(val.Num)
	default:
		return binding.StringBinding(val.Str)
	}
}

// doSet implements spec §4.6's write policy, mirroring Resolve's read
// policy: a local HDC-node binding writes through to HDC at the tail
// path, a local string/int binding is replaced in place, and a miss
// falls through to the root HDC.
func (st *state) doSet(path string, val exprlang.Value) {
	head, tail := splitHead(path)
	if b, ok := st.bindings.Lookup(head); ok {
		switch b.Kind {
		case binding.KindNode:
			b.Node.SetValue(tail, exprlang.ToString(val, st))
		case binding.KindString:
			st.bindings.Set(head, binding.StringBinding(exprlang.ToString(val, st)))
		case binding.KindInt:
			st.bindings.Set(head, binding.IntBinding(exprlang.ToInt(val, st)))
		}
		return
	}
	st.hdcTree.SetValue(path, exprlang.ToString(val, st))
}

// splitHead splits a dotted path at its first segment boundary, the
// head/tail split spec §4.6 name resolution is built on.
func splitHead(path string) (head, tail string) {
	path = strings.TrimPrefix(path, ".")
	idx := strings.IndexByte(path, '.')
	if idx < 0 {
		return path, ""
	}
	return path[:idx], path[idx+1:]
}
