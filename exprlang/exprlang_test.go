package exprlang

import "testing"

// mapResolver is a tiny Resolver backed by a flat map, enough to
// exercise the evaluator without pulling in hdc/binding.
type mapResolver struct {
	values map[string]string
}

func (m *mapResolver) Resolve(path string) (string, bool) {
	v, ok := m.values[path]
	return v, ok
}

func (m *mapResolver) Call(name string, arg Value) (Value, error) {
	switch name {
	case "len":
		return Value{Kind: VNum, Num: int64(len(ToString(arg, m)))}, nil
	default:
		return Value{}, &EvalError{Message: "unknown function " + name}
	}
}

func newResolver(kv map[string]string) *mapResolver {
	return &mapResolver{values: kv}
}

func evalString(t *testing.T, expr string, r Resolver) string {
	t.Helper()
	n, err := Parse(expr)
	if err != nil {
		t.Fatalf("parse error for %q: %v", expr, err)
	}
	v, err := Eval(n, r)
	if err != nil {
		t.Fatalf("eval error for %q: %v", expr, err)
	}
	return ToString(v, r)
}

func TestSimpleVarSubstitution(t *testing.T) {
	r := newResolver(map[string]string{"name": "Ada"})
	got := evalString(t, "name", r)
	if got != "Ada" {
		t.Errorf("expected 'Ada', got %q", got)
	}
}

func TestConditionalGreaterThan(t *testing.T) {
	r := newResolver(map[string]string{"count": "3"})
	n, err := Parse("count > 0")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	v, err := Eval(n, r)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if !ToBool(v, r) {
		t.Error("expected count > 0 to be true")
	}
}

func TestDivisionByZeroYieldsInt32Max(t *testing.T) {
	r := newResolver(nil)
	n, err := Parse("#5 / #0")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	v, err := Eval(n, r)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if v.Num != maxInt32 {
		t.Errorf("expected %d, got %d", maxInt32, v.Num)
	}
}

func TestModuloByZeroYieldsZero(t *testing.T) {
	r := newResolver(nil)
	n, _ := Parse("#5 % #0")
	v, _ := Eval(n, r)
	if v.Num != 0 {
		t.Errorf("expected 0, got %d", v.Num)
	}
}

func TestDotConcatenatesVarPath(t *testing.T) {
	r := newResolver(map[string]string{"items.0.k": "a"})
	got := evalString(t, "items.0.k", r)
	if got != "a" {
		t.Errorf("expected 'a', got %q", got)
	}
}

func TestBooleanCoercionOfDigitStringQuirk(t *testing.T) {
	r := newResolver(map[string]string{"flag": "0"})
	n, _ := Parse("flag")
	v, _ := Eval(n, r)
	if ToBool(v, r) {
		t.Error("expected \"0\" to coerce to false per the preserved quirk")
	}

	r2 := newResolver(map[string]string{"flag": "2"})
	n2, _ := Parse("flag")
	v2, _ := Eval(n2, r2)
	if !ToBool(v2, r2) {
		t.Error("expected \"2\" to coerce to true")
	}
}

func TestPrecedenceAndAssociativity(t *testing.T) {
	r := newResolver(nil)
	n, err := Parse("#1 + #2 * #3")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	v, _ := Eval(n, r)
	if v.Num != 7 {
		t.Errorf("expected 7 (1 + 2*3), got %d", v.Num)
	}

	n2, _ := Parse("#10 - #2 - #3")
	v2, _ := Eval(n2, r)
	if v2.Num != 5 {
		t.Errorf("expected 5 ((10-2)-3 left-associative), got %d", v2.Num)
	}
}

func TestStringLiteralConcatenation(t *testing.T) {
	r := newResolver(nil)
	n, err := Parse(`"a" + "b"`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	v, err := Eval(n, r)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if v.Str != "ab" {
		t.Errorf("expected string concat 'ab', got %+v", v)
	}
}

func TestFunctionCall(t *testing.T) {
	r := newResolver(map[string]string{"name": "Ada"})
	got := evalString(t, "len(name)", r)
	if got != "3" {
		t.Errorf("expected '3', got %q", got)
	}
}

func TestLvaluePathFromBareIdentifier(t *testing.T) {
	r := newResolver(nil)
	n, err := Parse("foo")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	path, err := AsLvaluePath(n, r)
	if err != nil {
		t.Fatalf("lvalue error: %v", err)
	}
	if path != "foo" {
		t.Errorf("expected path 'foo', got %q", path)
	}
}

func TestLvaluePathFromStringLiteral(t *testing.T) {
	r := newResolver(nil)
	n, err := Parse(`"foo"`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	path, err := AsLvaluePath(n, r)
	if err != nil {
		t.Fatalf("lvalue error: %v", err)
	}
	if path != "foo" {
		t.Errorf("expected path 'foo', got %q", path)
	}
}

// TestLvaluePathFromNumericSubscript covers set:a[#2]=... — the
// bracketed index is a value expression to evaluate, not itself a
// path, so a numeric literal there must not disqualify the lvalue.
func TestLvaluePathFromNumericSubscript(t *testing.T) {
	r := newResolver(nil)
	n, err := Parse("a[#2]")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	path, err := AsLvaluePath(n, r)
	if err != nil {
		t.Fatalf("lvalue error: %v", err)
	}
	if path != "a.2" {
		t.Errorf("expected path 'a.2', got %q", path)
	}
}

func TestUnterminatedStringIsParseError(t *testing.T) {
	_, err := Parse(`"unterminated`)
	if err == nil {
		t.Error("expected parse error for unterminated string")
	}
}

func TestEmptyExpressionIsParseError(t *testing.T) {
	_, err := Parse("   ")
	if err == nil {
		t.Error("expected parse error for empty expression")
	}
}
