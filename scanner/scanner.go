// Package scanner implements the template scanner / parse-state stack
// machine (spec §4.2): it walks a flat character buffer, splits it
// into literal runs and directive bodies delimited by `<?TAG ...?>`,
// matches each body against the directive table, and builds the
// syntax tree while enforcing directive nesting via an explicit stack
// of parse-state frames (deliberately not via recursive parse
// functions, since the scanner itself is one flat loop).
//
// Grounded on the teacher's lexer.Lexer (Position-tracking,
// byte-at-a-time scan loop, *LexerError with position context),
// adapted from Blade's `{{ }}`/`@name` markers to `<?TAG ...?>`
// markers and from a token list to a direct tree-builder.
package scanner

import (
	"fmt"
	"strings"

	"github.com/legitcs/legitcs/directive"
	"github.com/legitcs/legitcs/exprlang"
	"github.com/legitcs/legitcs/hdc"
	"github.com/legitcs/legitcs/legiterr"
	"github.com/legitcs/legitcs/macro"
	"github.com/legitcs/legitcs/syntax"
)

// Includer resolves compile-time `include` bodies (spec §1: file
// resolution of include paths is an external collaborator, called out
// by contract only). A nil Includer makes `include` always behave as
// if every path were missing.
type Includer interface {
	// Exists reports whether path can be read, used by hdc.SearchPath
	// to pick the first existing candidate in a configured search path.
	Exists(path string) bool
	// ReadInclude returns the contents of path.
	ReadInclude(path string) (string, error)
}

// parseFrame is one entry of the explicit parse-state stack (spec §3
// "Parse-state stack frame"): which state we're in, the composite
// node currently open (NoRef for the GLOBAL frame), which of its two
// branches is being filled, the tail of that branch's sibling chain
// built so far, and the opening directive's name/offset (for the
// unterminated-construct diagnostic).
type parseFrame struct {
	state  directive.State
	node   syntax.NodeRef
	branch int // 0 => Case0, 1 => Case1
	tail   syntax.NodeRef
	opener string
	offset int
}

// inputFrame is one buffer currently being scanned. The scanner
// treats input as a stack of these rather than a single buffer so
// that compile-time re-entry (`evar`, `include`) is a plain push: the
// spliced text is scanned to completion, attaching into the very same
// parse-state frame that was open when the splice began, before
// control returns to the outer buffer.
type inputFrame struct {
	src  string
	pos  int
	name string
}

// Scanner compiles template source into a syntax.Tree.
type Scanner struct {
	tree      *syntax.Tree
	hdc       *hdc.Tree
	macros    *macro.Registry
	includer  Includer
	tagName   string
	searchKey string

	root   syntax.NodeRef
	inputs []inputFrame
	stack  []parseFrame
}

// New creates a Scanner writing into tree, resolving VAR/VAR_NUM paths
// against hdcTree, and recording macros/functions in macros. The
// opening-tag identifier is read once from hdcTree's "Config.TagStart"
// key (default "cs"), matched case-insensitively (spec §6
// "Configuration").
func New(tree *syntax.Tree, hdcTree *hdc.Tree, macros *macro.Registry, includer Includer) *Scanner {
	tag := hdcTree.Get("Config.TagStart", "cs")
	return &Scanner{
		tree:      tree,
		hdc:       hdcTree,
		macros:    macros,
		includer:  includer,
		tagName:   strings.ToLower(tag),
		searchKey: "Config.SearchPath",
		root:      syntax.NoRef,
		stack:     []parseFrame{{state: directive.Global, node: syntax.NoRef, tail: syntax.NoRef}},
	}
}

// Root returns the first node of the compiled tree, the renderer's
// entry point. It is syntax.NoRef until ScanString attaches the first
// top-level node.
func (s *Scanner) Root() syntax.NodeRef { return s.root }

// ScanString compiles src, appending the resulting nodes to the tree
// already built by any prior ScanString call (spec §6 "parse_string
// may be invoked multiple times; each call appends to the same
// tree"). name is used only in diagnostics.
func (s *Scanner) ScanString(name, src string) error {
	s.inputs = append(s.inputs, inputFrame{src: src, pos: 0, name: name})
	if err := s.run(); err != nil {
		return err
	}
	if len(s.stack) != 1 {
		top := s.top()
		return s.errAt(top.opener, top.offset, "unterminated %q", top.opener)
	}
	return nil
}

func (s *Scanner) run() error {
	for len(s.inputs) > 0 {
		top := &s.inputs[len(s.inputs)-1]
		if top.pos >= len(top.src) {
			s.inputs = s.inputs[:len(s.inputs)-1]
			continue
		}
		if err := s.step(top); err != nil {
			return err
		}
	}
	return nil
}

// step consumes one literal run plus the directive that follows it
// (or, if no further marker exists, the whole remaining buffer as a
// trailing literal).
func (s *Scanner) step(f *inputFrame) error {
	markerStart, bodyStart, bodyEnd, found, err := s.findMarker(f.src, f.pos)
	if err != nil {
		return s.errAt("directive", f.pos, "%v", err)
	}
	if !found {
		s.emitLiteral(f.src[f.pos:])
		f.pos = len(f.src)
		return nil
	}
	if markerStart > f.pos {
		s.emitLiteral(f.src[f.pos:markerStart])
	}
	body := f.src[bodyStart:bodyEnd]
	f.pos = bodyEnd + 2 // skip "?>"
	return s.dispatch(strings.TrimSpace(body), f.name, markerStart)
}

// findMarker locates the next `<?TAG` marker (followed by whitespace)
// at or after from, and the span of its body up to a matching `?>`.
// Nested `<?` before the close is a scan error (spec §4.2).
func (s *Scanner) findMarker(src string, from int) (markerStart, bodyStart, bodyEnd int, found bool, err error) {
	i := from
	for {
		idx := strings.Index(src[i:], "<?")
		if idx < 0 {
			return 0, 0, 0, false, nil
		}
		start := i + idx
		rest := src[start+2:]
		if len(rest) > len(s.tagName) && strings.EqualFold(rest[:len(s.tagName)], s.tagName) && isSpace(rest[len(s.tagName)]) {
			j := len(s.tagName)
			for j < len(rest) && isSpace(rest[j]) {
				j++
			}
			bStart := start + 2 + j
			end, cerr := findClose(src, bStart)
			if cerr != nil {
				return 0, 0, 0, false, cerr
			}
			return start, bStart, end, true, nil
		}
		i = start + 2
	}
}

func findClose(src string, from int) (int, error) {
	i := from
	for i < len(src) {
		if strings.HasPrefix(src[i:], "?>") {
			return i, nil
		}
		if strings.HasPrefix(src[i:], "<?") {
			return 0, fmt.Errorf("nested '<?' inside a directive body")
		}
		i++
	}
	return 0, fmt.Errorf("missing closing '?>'")
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// dispatch matches body against the directive table and builds,
// attaches, and (where the directive is composite) opens or closes a
// syntax-tree node for it. Once a case has built and attached whatever
// node it needs, it hands the parse-state transition itself off to
// applyPolicy, which drives it from the table's NextPolicy/PushState
// (spec §4.2: "the scanner applies the next-state policy") rather
// than re-deciding push/pop locally per case.
func (s *Scanner) dispatch(body, sourceName string, offset int) error {
	entry, required, rest, ok := directive.Lookup(body)
	if !ok {
		return s.errAt("directive", offset, "unknown directive %q", firstWord(body))
	}
	if entry.IsComment {
		return nil
	}
	top := s.top()
	if !entry.Allows(top.state) {
		return s.errAt(entry.Name, offset, "%q not allowed here", entry.Name)
	}
	if !entry.HasArgument && rest != "" {
		return s.errAt(entry.Name, offset, "%q takes no argument", entry.Name)
	}

	switch entry.Name {
	case "literal":
		ref := s.tree.Alloc(syntax.Node{Directive: syntax.DirLiteral, Literal: rest})
		s.attach(ref)
		return s.applyPolicy(entry, ref, offset)

	case "name":
		expr, err := s.parseExpr(rest)
		if err != nil {
			return s.errAt("name", offset, "%v", err)
		}
		ref := s.tree.Alloc(syntax.Node{Directive: syntax.DirName, Arg1: exprRef(expr, rest), Flags: flagsOf(required)})
		s.attach(ref)
		return s.applyPolicy(entry, ref, offset)

	case "var":
		expr, err := s.parseExpr(rest)
		if err != nil {
			return s.errAt("var", offset, "%v", err)
		}
		ref := s.tree.Alloc(syntax.Node{Directive: syntax.DirVar, Arg1: exprRef(expr, rest), Flags: flagsOf(required)})
		s.attach(ref)
		return s.applyPolicy(entry, ref, offset)

	case "evar":
		return s.spliceEvar(rest, required, offset)

	case "lvar":
		expr, err := s.parseExpr(rest)
		if err != nil {
			return s.errAt("lvar", offset, "%v", err)
		}
		ref := s.tree.Alloc(syntax.Node{Directive: syntax.DirLvar, Arg1: exprRef(expr, rest)})
		s.attach(ref)
		return s.applyPolicy(entry, ref, offset)

	case "if":
		cond, err := s.parseExpr(rest)
		if err != nil {
			return s.errAt("if", offset, "%v", err)
		}
		ref := s.tree.Alloc(syntax.Node{Directive: syntax.DirIf, Arg1: exprRef(cond, rest)})
		s.attach(ref)
		return s.applyPolicy(entry, ref, offset)

	case "elseif", "elif":
		return s.spliceElseif(rest, offset)

	case "else":
		return s.applyPolicy(entry, syntax.NoRef, offset)

	case "/if":
		return s.applyPolicy(entry, syntax.NoRef, offset)

	case "each":
		name, rhsSrc, ok := splitAssignment(rest)
		if !ok {
			return s.errAt("each", offset, "missing '=' in each header")
		}
		name = strings.TrimPrefix(name, "$")
		expr, err := s.parseExpr(rhsSrc)
		if err != nil {
			return s.errAt("each", offset, "%v", err)
		}
		ref := s.tree.Alloc(syntax.Node{Directive: syntax.DirEach, Literal: name, Arg1: exprRef(expr, rhsSrc)})
		s.attach(ref)
		return s.applyPolicy(entry, ref, offset)

	case "/each":
		return s.applyPolicy(entry, syntax.NoRef, offset)

	case "with":
		name, rhsSrc, ok := splitAssignment(rest)
		if !ok {
			return s.errAt("with", offset, "missing '=' in with header")
		}
		name = strings.TrimPrefix(name, "$")
		expr, err := s.parseExpr(rhsSrc)
		if err != nil {
			return s.errAt("with", offset, "%v", err)
		}
		ref := s.tree.Alloc(syntax.Node{Directive: syntax.DirWith, Literal: name, Arg1: exprRef(expr, rhsSrc)})
		s.attach(ref)
		return s.applyPolicy(entry, ref, offset)

	case "/with":
		return s.applyPolicy(entry, syntax.NoRef, offset)

	case "include":
		return s.spliceInclude(rest, required, offset)

	case "linclude":
		expr, err := s.parseExpr(rest)
		if err != nil {
			return s.errAt("linclude", offset, "%v", err)
		}
		ref := s.tree.Alloc(syntax.Node{Directive: syntax.DirLinclude, Arg1: exprRef(expr, rest)})
		s.attach(ref)
		return s.applyPolicy(entry, ref, offset)

	case "def":
		name, paramsRaw, hasParens := splitHeader(rest)
		if name == "" {
			return s.errAt("def", offset, "missing macro name")
		}
		var params []string
		if hasParens {
			for _, p := range splitArgs(paramsRaw) {
				if p == "" {
					continue
				}
				params = append(params, strings.TrimPrefix(p, "$"))
			}
		}
		ref := s.tree.Alloc(syntax.Node{Directive: syntax.DirDef, Literal: name, Params: params})
		if err := s.macros.DefineMacro(name, params, ref); err != nil {
			return s.errAt("def", offset, "%v", err)
		}
		s.attach(ref)
		return s.applyPolicy(entry, ref, offset)

	case "/def":
		return s.applyPolicy(entry, syntax.NoRef, offset)

	case "call":
		name, argsRaw, hasParens := splitHeader(rest)
		rec, ok := s.macros.LookupMacro(name)
		if !ok {
			return s.errAt("call", offset, "call to undefined macro %q", name)
		}
		var argSrcs []string
		if hasParens {
			argSrcs = splitArgs(argsRaw)
			if len(argSrcs) == 1 && argSrcs[0] == "" {
				argSrcs = nil
			}
		}
		if len(argSrcs) != len(rec.Params) {
			return s.errAt("call", offset, "macro %q expects %d argument(s), got %d", name, len(rec.Params), len(argSrcs))
		}
		args := make([]*syntax.ExprRef, 0, len(argSrcs))
		for _, a := range argSrcs {
			expr, err := s.parseExpr(a)
			if err != nil {
				return s.errAt("call", offset, "%v", err)
			}
			args = append(args, exprRef(expr, a))
		}
		ref := s.tree.Alloc(syntax.Node{Directive: syntax.DirCall, Literal: name, Args: args})
		s.attach(ref)
		return s.applyPolicy(entry, ref, offset)

	case "set":
		lhsSrc, rhsSrc, ok := splitAssignment(rest)
		if !ok {
			return s.errAt("set", offset, "missing '=' in set")
		}
		lhsExpr, err := s.parseExpr(lhsSrc)
		if err != nil {
			return s.errAt("set", offset, "%v", err)
		}
		if !lhsExpr.IsLvalueShape() {
			return s.errAt("set", offset, "invalid lvalue %q", lhsSrc)
		}
		rhsExpr, err := s.parseExpr(rhsSrc)
		if err != nil {
			return s.errAt("set", offset, "%v", err)
		}
		ref := s.tree.Alloc(syntax.Node{Directive: syntax.DirSet, Arg1: exprRef(lhsExpr, lhsSrc), Arg2: exprRef(rhsExpr, rhsSrc)})
		s.attach(ref)
		return s.applyPolicy(entry, ref, offset)

	case "loop":
		name, startSrc, endSrc, stepSrc, err := parseLoopHeader(rest)
		if err != nil {
			return s.errAt("loop", offset, "%v", err)
		}
		startE, err := s.parseExpr(startSrc)
		if err != nil {
			return s.errAt("loop", offset, "%v", err)
		}
		endE, err := s.parseExpr(endSrc)
		if err != nil {
			return s.errAt("loop", offset, "%v", err)
		}
		stepE, err := s.parseExpr(stepSrc)
		if err != nil {
			return s.errAt("loop", offset, "%v", err)
		}
		ref := s.tree.Alloc(syntax.Node{
			Directive: syntax.DirLoop, Literal: name,
			LoopStart: exprRef(startE, startSrc), LoopEnd: exprRef(endE, endSrc), LoopStep: exprRef(stepE, stepSrc),
		})
		s.attach(ref)
		return s.applyPolicy(entry, ref, offset)

	case "/loop":
		return s.applyPolicy(entry, syntax.NoRef, offset)

	case "alt":
		expr, err := s.parseExpr(rest)
		if err != nil {
			return s.errAt("alt", offset, "%v", err)
		}
		ref := s.tree.Alloc(syntax.Node{Directive: syntax.DirAlt, Arg1: exprRef(expr, rest)})
		s.attach(ref)
		return s.applyPolicy(entry, ref, offset)

	case "/alt":
		return s.applyPolicy(entry, syntax.NoRef, offset)
	}
	return nil
}

// applyPolicy drives the parse-state stack transition off entry's
// table-declared NextPolicy (spec §4.2): Same leaves the stack alone,
// Pop closes the innermost frame, Push opens a new frame over ref
// tagged PushState, and PopPush (only the `else` row uses it) closes
// the open IF frame and reopens an ELSE frame over the very same node,
// now filling Case1, in one step.
func (s *Scanner) applyPolicy(entry *directive.Entry, ref syntax.NodeRef, offset int) error {
	switch entry.NextPolicy {
	case directive.Same:
		return nil
	case directive.Pop:
		return s.pop()
	case directive.Push:
		s.push(parseFrame{state: entry.PushState, node: ref, tail: syntax.NoRef, opener: entry.Name, offset: offset})
		return nil
	case directive.PopPush:
		old := s.top()
		node := old.node
		s.stack = s.stack[:len(s.stack)-1]
		s.stack = append(s.stack, parseFrame{state: entry.PushState, node: node, branch: 1, tail: syntax.NoRef, opener: entry.Name, offset: offset})
		return nil
	}
	return nil
}

func flagsOf(required bool) syntax.Flag {
	if required {
		return syntax.FlagRequired
	}
	return 0
}

// spliceElseif handles `elseif`/`elif` (spec §4.7: "elseif is
// represented as a nested if living in case_1"). It does not attach
// through the normal sibling chain: it splices a fresh `if` node into
// Case1 of the currently open `if` and redirects the live frame to
// fill that new node's Case0, so any further elseif/else targets the
// innermost unmatched branch.
func (s *Scanner) spliceElseif(rest string, offset int) error {
	cond, err := s.parseExpr(rest)
	if err != nil {
		return s.errAt("elseif", offset, "%v", err)
	}
	f := s.top()
	newIf := s.tree.Alloc(syntax.Node{Directive: syntax.DirIf, Arg1: exprRef(cond, rest)})
	s.tree.Get(f.node).Case1 = newIf
	f.node = newIf
	f.branch = 0
	f.tail = syntax.NoRef
	return nil
}

// spliceEvar handles `evar` (spec §4.7: "at compile time, reads the
// HDC value at arg1 and re-enters the compiler on that string").
func (s *Scanner) spliceEvar(rest string, required bool, offset int) error {
	path := strings.TrimSpace(rest)
	value, ok := s.hdc.GetCopy(path)
	if !ok {
		if required {
			return s.errAt("evar", offset, "required value %q is empty", path)
		}
		return nil
	}
	s.inputs = append(s.inputs, inputFrame{src: value, pos: 0, name: "evar:" + path})
	return nil
}

// spliceInclude handles `include` (spec §4.7): the argument is either
// a bare identifier (an HDC variable whose own value is the file
// path) or a double-quoted literal path; the file's contents are
// scanned as if they appeared in place, the same way evar splices an
// HDC value.
func (s *Scanner) spliceInclude(rest string, required bool, offset int) error {
	arg, isLiteral := parseIncludeArg(strings.TrimSpace(rest))
	var path string
	if isLiteral {
		path = arg
	} else {
		v, ok := s.hdc.GetCopy(arg)
		if !ok {
			if required {
				return s.errAt("include", offset, "variable %q used as include path is empty", arg)
			}
			return nil
		}
		path = v
	}
	if s.includer == nil {
		if required {
			return legiterr.New(legiterr.NotFound, fmt.Sprintf("include:%d", offset), fmt.Sprintf("no includer configured for %q", path))
		}
		return nil
	}
	if !strings.HasPrefix(path, "/") {
		path = s.hdc.SearchPath(s.searchKey, path, s.includer.Exists)
	}
	content, err := s.includer.ReadInclude(path)
	if err != nil {
		if required {
			return legiterr.New(legiterr.NotFound, fmt.Sprintf("include:%d", offset), fmt.Sprintf("include file %q: %v", path, err))
		}
		return nil
	}
	s.inputs = append(s.inputs, inputFrame{src: content, pos: 0, name: "include:" + path})
	return nil
}

func parseIncludeArg(raw string) (text string, isLiteral bool) {
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		return raw[1 : len(raw)-1], true
	}
	return raw, false
}

func (s *Scanner) emitLiteral(text string) {
	if text == "" {
		return
	}
	ref := s.tree.Alloc(syntax.Node{Directive: syntax.DirLiteral, Literal: text})
	s.attach(ref)
}

// attach links ref into the currently open frame's sibling chain,
// setting the parent's Case0/Case1 the first time a frame is filled
// and Next thereafter.
func (s *Scanner) attach(ref syntax.NodeRef) {
	f := s.top()
	switch {
	case f.tail != syntax.NoRef:
		s.tree.Get(f.tail).Next = ref
	case f.node != syntax.NoRef:
		parent := s.tree.Get(f.node)
		if f.branch == 0 {
			parent.Case0 = ref
		} else {
			parent.Case1 = ref
		}
	default:
		s.root = ref
	}
	f.tail = ref
}

// parseExpr parses an expression body and validates any function-call
// nodes in it against the macro registry's function table (spec §4.4
// "unknown function is a parse error").
func (s *Scanner) parseExpr(src string) (*exprlang.Node, error) {
	return exprlang.ParseChecked(src, s.macros.HasFunction)
}

func (s *Scanner) push(f parseFrame) { s.stack = append(s.stack, f) }

func (s *Scanner) pop() error {
	if len(s.stack) <= 1 {
		return legiterr.New(legiterr.Assert, "scanner", "parse-state stack underflow")
	}
	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

func (s *Scanner) top() *parseFrame { return &s.stack[len(s.stack)-1] }

func (s *Scanner) errAt(name string, offset int, format string, args ...interface{}) error {
	return legiterr.New(legiterr.Parse, fmt.Sprintf("offset %d (%s)", offset, name), fmt.Sprintf(format, args...))
}

func exprRef(n *exprlang.Node, src string) *syntax.ExprRef {
	return &syntax.ExprRef{Expr: n, Src: src}
}

func firstWord(s string) string {
	s = strings.TrimSpace(s)
	for i := 0; i < len(s); i++ {
		if isSpace(s[i]) || s[i] == ':' || s[i] == '!' {
			return s[:i]
		}
	}
	return s
}

// splitAssignment splits "lhs = rhs" at the first top-level '=' that
// is not part of ==, !=, <=, or >= (spec §4.7 each/with/set headers).
func splitAssignment(s string) (lhs, rhs string, ok bool) {
	idx, found := findTopLevelEquals(s)
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+1:]), true
}

func findTopLevelEquals(s string) (int, bool) {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case '=':
			if depth != 0 {
				continue
			}
			var prev, next byte
			if i > 0 {
				prev = s[i-1]
			}
			if i+1 < len(s) {
				next = s[i+1]
			}
			if prev == '<' || prev == '>' || prev == '!' || prev == '=' {
				continue
			}
			if next == '=' {
				i++
				continue
			}
			return i, true
		}
	}
	return 0, false
}

// splitArgs splits a comma list at top-level commas only, respecting
// quoted strings and nested brackets/parens (used for call arguments,
// def parameters, and loop bounds).
func splitArgs(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

// splitHeader splits "name(inner)" into name and inner, reporting
// whether a parenthesized list was present at all (used by def/call,
// which both permit a bare name with no parens meaning zero items).
func splitHeader(rest string) (name, inner string, hasParens bool) {
	rest = strings.TrimSpace(rest)
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		return rest, "", false
	}
	close := strings.LastIndexByte(rest, ')')
	if close < open {
		return rest, "", false
	}
	return strings.TrimSpace(rest[:open]), rest[open+1 : close], true
}

// parseLoopHeader splits a loop header "var = end", "var = start,end",
// or "var = start,end,step" into its bind name and the three bound
// expressions' source text, defaulting start and step to "1" (spec
// §4.7 "loop var = end / start,end / start,end,step").
func parseLoopHeader(rest string) (name, startSrc, endSrc, stepSrc string, err error) {
	lhs, rhs, ok := splitAssignment(rest)
	if !ok {
		return "", "", "", "", fmt.Errorf("missing '=' in loop header")
	}
	name = strings.TrimPrefix(strings.TrimSpace(lhs), "$")
	fields := splitArgs(rhs)
	switch len(fields) {
	case 1:
		return name, "1", fields[0], "1", nil
	case 2:
		return name, fields[0], fields[1], "1", nil
	case 3:
		return name, fields[0], fields[1], fields[2], nil
	default:
		return "", "", "", "", fmt.Errorf("expected 1-3 comma-separated bounds, got %d", len(fields))
	}
}
