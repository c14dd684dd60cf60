package directive

import "testing"

func TestLookupExactName(t *testing.T) {
	e, required, rest, ok := Lookup("var:name")
	if !ok {
		t.Fatal("expected match")
	}
	if e.Name != "var" || required || rest != "name" {
		t.Errorf("unexpected match: name=%s required=%v rest=%q", e.Name, required, rest)
	}
}

func TestLookupRequiredSuffix(t *testing.T) {
	e, required, rest, ok := Lookup("var!name")
	if !ok || e.Name != "var" || !required || rest != "name" {
		t.Errorf("unexpected match: %+v required=%v rest=%q ok=%v", e, required, rest, ok)
	}
}

func TestLookupCaseInsensitive(t *testing.T) {
	e, _, _, ok := Lookup("VAR:name")
	if !ok || e.Name != "var" {
		t.Errorf("expected case-insensitive match to 'var', got %+v ok=%v", e, ok)
	}
}

func TestLookupElseifBeforeElse(t *testing.T) {
	e, _, rest, ok := Lookup("elseif:x > 0")
	if !ok || e.Name != "elseif" || rest != "x > 0" {
		t.Errorf("expected elseif match, got %+v rest=%q ok=%v", e, rest, ok)
	}
}

func TestLookupBareElse(t *testing.T) {
	e, _, _, ok := Lookup("else")
	if !ok || e.Name != "else" {
		t.Errorf("expected else match, got %+v ok=%v", e, ok)
	}
}

func TestLookupCloser(t *testing.T) {
	e, _, _, ok := Lookup("/if")
	if !ok || e.Name != "/if" {
		t.Errorf("expected /if match, got %+v ok=%v", e, ok)
	}
}

func TestLookupUnknownDirective(t *testing.T) {
	_, _, _, ok := Lookup("bogus:x")
	if ok {
		t.Error("expected no match for unknown directive")
	}
}

func TestLookupComment(t *testing.T) {
	e, _, _, ok := Lookup("# a comment")
	if !ok || !e.IsComment {
		t.Errorf("expected comment match, got %+v ok=%v", e, ok)
	}
}

func TestAllowedStates(t *testing.T) {
	ifEntry, _, _, _ := Lookup("if:x")
	if !ifEntry.Allows(Global) {
		t.Error("expected 'if' to be allowed in GLOBAL state")
	}

	closeEach, _, _, _ := Lookup("/each")
	if closeEach.Allows(Global) {
		t.Error("expected '/each' to be disallowed outside EACH state")
	}
	if !closeEach.Allows(Each) {
		t.Error("expected '/each' to be allowed in EACH state")
	}
}
