package exprlang

import "strconv"

// level describes one precedence tier, ordered lowest-to-highest to
// match spec §4.4's numbered list. unary tiers are matched against a
// single leading token; binary tiers are matched by scanning their
// operator set from right to left.
type level struct {
	ops   []TokenType
	unary bool
}

var levels = []level{
	{ops: []TokenType{TokOr}},
	{ops: []TokenType{TokAnd}},
	{ops: []TokenType{TokNot, TokExists}, unary: true},
	{ops: []TokenType{TokEq, TokNe}},
	{ops: []TokenType{TokLt, TokLe, TokGt, TokGe}},
	{ops: []TokenType{TokAdd, TokSub}},
	{ops: []TokenType{TokMul, TokDiv, TokMod, TokDot}},
}

// Parse tokenizes and parses an expression body into an expression
// tree (spec §4.3-§4.4).
func Parse(src string) (*Node, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// FuncChecker reports whether name is a registered callable, letting
// ParseChecked enforce spec §4.4's "unknown function is a parse error"
// at compile time rather than deferring to a render-time Call failure.
type FuncChecker func(name string) bool

// ParseChecked parses src like Parse, then walks the resulting tree
// validating every function-call node's name against known.
func ParseChecked(src string, known FuncChecker) (*Node, error) {
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if err := checkFuncs(n, known); err != nil {
		return nil, err
	}
	return n, nil
}

func checkFuncs(n *Node, known FuncChecker) error {
	if n == nil {
		return nil
	}
	if n.Kind == NCall && known != nil && !known(n.Str) {
		return &ParseError{Message: "unknown function " + strconv.Quote(n.Str)}
	}
	if err := checkFuncs(n.Left, known); err != nil {
		return err
	}
	return checkFuncs(n.Right, known)
}

// ParseTokens parses an already-tokenized expression.
func ParseTokens(tokens []Token) (*Node, error) {
	if len(tokens) == 0 {
		return nil, &ParseError{Message: "empty expression"}
	}
	return parseLevel(tokens, 0)
}

func parseLevel(tokens []Token, idx int) (*Node, error) {
	if idx >= len(levels) {
		return parsePrimary(tokens)
	}
	lv := levels[idx]

	if lv.unary {
		if len(tokens) > 0 && isOneOf(tokens[0].Type, lv.ops) {
			op := tokens[0]
			operand, err := parseLevel(tokens[1:], idx)
			if err != nil {
				return nil, err
			}
			kind := NNot
			if op.Type == TokExists {
				kind = NExists
			}
			return unary(kind, operand), nil
		}
		return parseLevel(tokens, idx+1)
	}

	if x, opType, ok := findRightmostOperator(tokens, lv.ops); ok {
		left, err := parseLevel(tokens[:x], idx)
		if err != nil {
			return nil, err
		}
		right, err := parseLevel(tokens[x+1:], idx+1)
		if err != nil {
			return nil, err
		}
		return binary(opKind(opType), left, right), nil
	}

	return parseLevel(tokens, idx+1)
}

// findRightmostOperator scans tokens right to left, skipping balanced
// paren/bracket runs, for the rightmost top-level occurrence of one of
// ops (spec §4.4, original_source's parse_expr2 right-to-left scan).
func findRightmostOperator(tokens []Token, ops []TokenType) (int, TokenType, bool) {
	depth := 0
	for i := len(tokens) - 1; i >= 0; i-- {
		switch tokens[i].Type {
		case TokRParen, TokRBracket:
			depth++
			continue
		case TokLParen, TokLBracket:
			depth--
			continue
		}
		if depth != 0 {
			continue
		}
		if isOneOf(tokens[i].Type, ops) {
			return i, tokens[i].Type, true
		}
	}
	return 0, 0, false
}

func isOneOf(t TokenType, set []TokenType) bool {
	for _, s := range set {
		if t == s {
			return true
		}
	}
	return false
}

func opKind(t TokenType) NodeKind {
	switch t {
	case TokOr:
		return NOr
	case TokAnd:
		return NAnd
	case TokEq:
		return NEq
	case TokNe:
		return NNe
	case TokLt:
		return NLt
	case TokLe:
		return NLe
	case TokGt:
		return NGt
	case TokGe:
		return NGe
	case TokAdd:
		return NAdd
	case TokSub:
		return NSub
	case TokMul:
		return NMul
	case TokDiv:
		return NDiv
	case TokMod:
		return NMod
	case TokDot:
		return NDot
	}
	panic("exprlang: unreachable operator kind")
}

// parsePrimary handles terminals, bracketed/parenthesized
// sub-expressions, function calls, and subscripting (spec §4.4
// "Special shapes").
func parsePrimary(tokens []Token) (*Node, error) {
	if len(tokens) == 0 {
		return nil, &ParseError{Message: "empty expression"}
	}

	if len(tokens) == 1 {
		return terminalNode(tokens[0])
	}

	first, last := tokens[0], tokens[len(tokens)-1]

	// Bare ( expr )
	if first.Type == TokLParen && last.Type == TokRParen && encloses(tokens, TokLParen, TokRParen) {
		return parseLevel(tokens[1:len(tokens)-1], 0)
	}

	// Bare [ expr ]
	if first.Type == TokLBracket && last.Type == TokRBracket && encloses(tokens, TokLBracket, TokRBracket) {
		return parseLevel(tokens[1:len(tokens)-1], 0)
	}

	// name ( expr ) function call
	if first.Type == TokVar && tokens[1].Type == TokLParen && last.Type == TokRParen &&
		encloses(tokens[1:], TokLParen, TokRParen) {
		arg, err := parseLevel(tokens[2:len(tokens)-1], 0)
		if err != nil {
			return nil, err
		}
		return call(first.Str, arg), nil
	}

	// expr1 [ expr2 ] subscript: find the matching '[' for the
	// trailing ']'.
	if last.Type == TokRBracket {
		if open, ok := matchingOpen(tokens, TokLBracket, TokRBracket); ok && open > 0 {
			left, err := parseLevel(tokens[:open], len(levels))
			if err != nil {
				return nil, err
			}
			right, err := parseLevel(tokens[open+1:len(tokens)-1], 0)
			if err != nil {
				return nil, err
			}
			return binary(NSubscript, left, right), nil
		}
	}

	return nil, &ParseError{Message: "malformed expression", Pos: first.Pos}
}

func terminalNode(t Token) (*Node, error) {
	switch t.Type {
	case TokString:
		return term(NString, t.Str, 0), nil
	case TokNum:
		return term(NNum, "", t.Num), nil
	case TokVar:
		return term(NVar, t.Str, 0), nil
	case TokVarNum:
		return term(NVarNum, t.Str, 0), nil
	default:
		return nil, &ParseError{Message: "terminal non-value token", Pos: t.Pos}
	}
}

// encloses reports whether tokens[0]/tokens[len-1] are a matching
// balanced pair enclosing the whole span (so stripping them is safe).
func encloses(tokens []Token, open, closeTok TokenType) bool {
	depth := 0
	for i, t := range tokens {
		switch t.Type {
		case open:
			depth++
		case closeTok:
			depth--
			if depth == 0 && i != len(tokens)-1 {
				return false
			}
		}
	}
	return depth == 0
}

// matchingOpen finds the index of the open bracket matching the
// trailing close bracket at tokens[len(tokens)-1].
func matchingOpen(tokens []Token, open, closeTok TokenType) (int, bool) {
	depth := 0
	for i := len(tokens) - 1; i >= 0; i-- {
		switch tokens[i].Type {
		case closeTok:
			depth++
		case open:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
