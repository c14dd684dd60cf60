package render

import (
	"fmt"
	"strings"

	"github.com/legitcs/legitcs/syntax"
)

// Dump writes a debug rendering of the tree rooted at root, one line
// per node indented by nesting depth (spec §6 "dump", §4.8). Intended
// for template authors debugging directive structure, not for
// production output.
func Dump(tree *syntax.Tree, root syntax.NodeRef, out Output) error {
	return dumpChain(tree, root, 0, out)
}

func dumpChain(tree *syntax.Tree, ref syntax.NodeRef, depth int, out Output) error {
	for ref != syntax.NoRef {
		n := tree.Get(ref)
		if n == nil {
			return nil
		}
		if err := dumpNode(tree, n, depth, out); err != nil {
			return err
		}
		ref = n.Next
	}
	return nil
}

func dumpNode(tree *syntax.Tree, n *syntax.Node, depth int, out Output) error {
	indent := strings.Repeat("  ", depth)
	line := fmt.Sprintf("%s#%d %s", indent, n.Num, directiveName(n.Directive))
	if n.Literal != "" {
		line += fmt.Sprintf(" %q", n.Literal)
	}
	if n.Arg1 != nil {
		line += fmt.Sprintf(" arg1=%s", n.Arg1.Src)
	}
	if n.Arg2 != nil {
		line += fmt.Sprintf(" arg2=%s", n.Arg2.Src)
	}
	for i, a := range n.Args {
		line += fmt.Sprintf(" arg%d=%s", i+2, a.Src)
	}
	if n.LoopStart != nil {
		line += fmt.Sprintf(" start=%s end=%s step=%s", n.LoopStart.Src, n.LoopEnd.Src, n.LoopStep.Src)
	}
	if err := out(line + "\n"); err != nil {
		return err
	}
	if n.Case0 != syntax.NoRef {
		if err := dumpChain(tree, n.Case0, depth+1, out); err != nil {
			return err
		}
	}
	if n.Case1 != syntax.NoRef {
		if err := out(indent + "else\n"); err != nil {
			return err
		}
		if err := dumpChain(tree, n.Case1, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}

func directiveName(d syntax.Directive) string {
	switch d {
	case syntax.DirLiteral:
		return "literal"
	case syntax.DirName:
		return "name"
	case syntax.DirVar:
		return "var"
	case syntax.DirEvar:
		return "evar"
	case syntax.DirLvar:
		return "lvar"
	case syntax.DirIf:
		return "if"
	case syntax.DirEach:
		return "each"
	case syntax.DirWith:
		return "with"
	case syntax.DirInclude:
		return "include"
	case syntax.DirLinclude:
		return "linclude"
	case syntax.DirDef:
		return "def"
	case syntax.DirCall:
		return "call"
	case syntax.DirSet:
		return "set"
	case syntax.DirLoop:
		return "loop"
	case syntax.DirAlt:
		return "alt"
	default:
		return "?"
	}
}
