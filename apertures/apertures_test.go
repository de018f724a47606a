package apertures

import (
	"testing"

	"github.com/MacroFab/DataGerber/gerbertypes"
)

func TestTable_Define(t *testing.T) {
	tbl := NewTable()

	ap, err := tbl.Define("D10", "C", "0.000070")
	if err != nil {
		t.Fatal(err)
	}
	if ap.Kind != gerbertypes.AptypeCircle {
		t.Error("kind:", ap.Kind)
	}
	if !ap.DiameterKnown || ap.Diameter != 0.000070 {
		t.Error("diameter:", ap.Diameter, ap.DiameterKnown)
	}

	ap, err = tbl.Define("D11", "R", "0.5X1.25")
	if err != nil {
		t.Fatal(err)
	}
	if ap.Kind != gerbertypes.AptypeRectangle || ap.XSize != 0.5 || ap.YSize != 1.25 {
		t.Error("rectangle:", ap.Kind, ap.XSize, ap.YSize)
	}

	ap, err = tbl.Define("D12", "THERMAL80", "0.08X0.055")
	if err != nil {
		t.Fatal(err)
	}
	if ap.Kind != gerbertypes.AptypeMacro || ap.MacroName != "THERMAL80" {
		t.Error("macro reference:", ap.Kind, ap.MacroName)
	}

	if tbl.Len() != 3 {
		t.Error("table length:", tbl.Len())
	}
}

func TestTable_DefineReservedCode(t *testing.T) {
	tbl := NewTable()
	for _, code := range []string{"D9", "D0", "D", "10X", ""} {
		if _, err := tbl.Define(code, "C", "1.0"); err == nil {
			t.Error("code accepted:", code)
		}
	}
}

func TestTable_DefineBadType(t *testing.T) {
	tbl := NewTable()
	for _, typ := range []string{"", "9MACRO", "NA ME", "C,"} {
		if _, err := tbl.Define("D20", typ, "1.0"); err == nil {
			t.Error("type token accepted:", typ)
		}
	}
}

// a circle with unreadable modifiers is still defined, diameter unset
func TestTable_DefineTolerantDiameter(t *testing.T) {
	tbl := NewTable()
	ap, err := tbl.Define("D14", "C", "junk")
	if err != nil {
		t.Fatal("tolerated modifier problem aborted the define:", err)
	}
	if ap.DiameterKnown {
		t.Error("diameter should be unset")
	}
	if !ap.Blank() {
		t.Error("undefined diameter should read as blank")
	}
	if tbl.LastError() == "" {
		t.Error("tolerated problem not reported")
	}
	if !tbl.Has("D14") {
		t.Error("aperture not stored")
	}
}

func TestTable_Get(t *testing.T) {
	tbl := NewTable()
	if _, err := tbl.Define("D10", "C", "0.5"); err != nil {
		t.Fatal(err)
	}

	ap, err := tbl.Get("D10")
	if err != nil || ap.Code != "D10" {
		t.Error("stored lookup:", ap, err)
	}

	// undefined is an empty record, not an error
	ap, err = tbl.Get("D77")
	if err != nil {
		t.Error("undefined code errored:", err)
	}
	if ap.Code != "" {
		t.Error("undefined code returned a record:", ap)
	}

	// malformed is an error
	if _, err = tbl.Get("banana"); err == nil {
		t.Error("malformed code accepted")
	}
}

func TestMacroTable_Define(t *testing.T) {
	mt := NewMacroTable()
	err := mt.Define("BOX", []string{
		"0 Rectangle with rounded corners",
		"21,1,$1,$2-$3-$3,0,0,$4",
		"$5=$1/2",
		"1,1,$7,$5-$3,$6-$3,$4",
	})
	if err != nil {
		t.Fatal(err)
	}
	body := mt.Get("BOX")
	if len(body) != 3 {
		t.Fatal("comment primitive not stripped:", body)
	}
	if body[0] != "21,1,$1,$2-$3-$3,0,0,$4" {
		t.Error("body order:", body)
	}

	if err := mt.Define("9BAD", nil); err == nil {
		t.Error("bad macro name accepted")
	}
	if mt.Get("MISSING") != nil {
		t.Error("undefined macro returned a body")
	}
}
