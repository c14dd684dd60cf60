package scanner

import (
	"testing"

	"github.com/legitcs/legitcs/hdc"
	"github.com/legitcs/legitcs/macro"
	"github.com/legitcs/legitcs/syntax"
)

func TestScanUnknownFunctionIsParseError(t *testing.T) {
	data := hdc.New()
	macros := macro.New()
	tree := syntax.New()
	sc := New(tree, data, macros, nil)

	err := sc.ScanString("t", "<?cs var:nosuch(x)?>")
	if err == nil {
		t.Fatal("expected a parse error for a call to an unregistered function")
	}
}

func TestScanKnownFunctionParsesFine(t *testing.T) {
	data := hdc.New()
	data.SetValue("x", "hi")
	macros := macro.New()
	tree := syntax.New()
	sc := New(tree, data, macros, nil)

	if err := sc.ScanString("t", "<?cs var:len(x)?>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScanUnterminatedIfIsParseError(t *testing.T) {
	data := hdc.New()
	macros := macro.New()
	tree := syntax.New()
	sc := New(tree, data, macros, nil)

	err := sc.ScanString("t", "<?cs if:1?>yes")
	if err == nil {
		t.Fatal("expected an unterminated-construct error")
	}
}

func TestScanDuplicateMacroIsParseError(t *testing.T) {
	data := hdc.New()
	macros := macro.New()
	tree := syntax.New()
	sc := New(tree, data, macros, nil)

	err := sc.ScanString("t", "<?cs def:greet()?>hi<?cs /def?><?cs def:greet()?>bye<?cs /def?>")
	if err == nil {
		t.Fatal("expected a duplicate macro error")
	}
}

func TestScanElseWithArgumentIsParseError(t *testing.T) {
	data := hdc.New()
	macros := macro.New()
	tree := syntax.New()
	sc := New(tree, data, macros, nil)

	err := sc.ScanString("t", "<?cs if:1?>a<?cs else:bogus?>b<?cs /if?>")
	if err == nil {
		t.Fatal("expected a parse error for else carrying an argument")
	}
}

func TestScanIfElseBuildsPopPushFrame(t *testing.T) {
	data := hdc.New()
	macros := macro.New()
	tree := syntax.New()
	sc := New(tree, data, macros, nil)

	if err := sc.ScanString("t", "<?cs if:1?>a<?cs else?>b<?cs /if?>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScanCallArityMismatchIsParseError(t *testing.T) {
	data := hdc.New()
	macros := macro.New()
	tree := syntax.New()
	sc := New(tree, data, macros, nil)

	err := sc.ScanString("t", `<?cs def:greet(who)?>hi <?cs var:who?><?cs /def?><?cs call:greet()?>`)
	if err == nil {
		t.Fatal("expected a macro arity mismatch error")
	}
}
