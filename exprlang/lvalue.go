package exprlang

// AsLvaluePath evaluates an lvalue expression (spec §4.4 "lvalue
// flag") and reduces it to the HDC path string that `set` should
// write to. Per §9 Open Question 2, a bare string literal lvalue
// (`set:"foo"="bar"`) is accepted on equal footing with a bare
// identifier: both reduce to their terminal string.
func AsLvaluePath(n *Node, r Resolver) (string, error) {
	if !n.IsLvalueShape() {
		return "", &EvalError{Message: "invalid lvalue: must be a variable path"}
	}
	v, err := Eval(n, r)
	if err != nil {
		return "", err
	}
	switch v.Kind {
	case VVar, VVarNum:
		return v.Str, nil
	case VString:
		return v.Str, nil
	default:
		return "", &EvalError{Message: "lvalue did not reduce to a path string"}
	}
}
