package coord

import (
	"math"
	"math/rand"
	"testing"

	"github.com/MacroFab/DataGerber/gerbertypes"
)

func intptr(v int) *int { return &v }

func newSpec(t *testing.T, zero string, intd, decd int) *FormatSpec {
	t.Helper()
	fs := NewFormatSpec()
	err := fs.Set(FormatUpdate{Zero: zero, Mode: "A", IntDigits: intptr(intd), DecDigits: intptr(decd)})
	if err != nil {
		t.Fatal(err)
	}
	return fs
}

func TestFormatSpec_SetPrefixTokens(t *testing.T) {
	testData := []struct {
		zero  string
		mode  string
		wantZ gerbertypes.ZeroOmission
		wantM gerbertypes.CoordMode
	}{
		{"L", "A", gerbertypes.OmitLeading, gerbertypes.CoordAbsolute},
		{"Lead", "Abs", gerbertypes.OmitLeading, gerbertypes.CoordAbsolute},
		{"Leading", "Absolute", gerbertypes.OmitLeading, gerbertypes.CoordAbsolute},
		{"t", "i", gerbertypes.OmitTrailing, gerbertypes.CoordIncremental},
		{"TRAIL", "INCR", gerbertypes.OmitTrailing, gerbertypes.CoordIncremental},
	}
	for _, td := range testData {
		fs := NewFormatSpec()
		if err := fs.Set(FormatUpdate{Zero: td.zero, Mode: td.mode}); err != nil {
			t.Error("Set failed for", td.zero, td.mode, ":", err)
			continue
		}
		if fs.Zero != td.wantZ || fs.Mode != td.wantM {
			t.Error("Set", td.zero, td.mode, "got", fs.Zero, fs.Mode)
		}
	}
}

func TestFormatSpec_SetBadTokens(t *testing.T) {
	fs := NewFormatSpec()
	if err := fs.Set(FormatUpdate{Zero: "Q"}); err == nil {
		t.Error("bad zero omission token accepted")
	}
	if err := fs.Set(FormatUpdate{Mode: "relative"}); err == nil {
		t.Error("bad coordinate mode token accepted")
	}
}

// a failing digit count must not disturb the other, already valid, digit count
func TestFormatSpec_SetPartialCommit(t *testing.T) {
	fs := NewFormatSpec()
	if err := fs.Set(FormatUpdate{IntDigits: intptr(2), DecDigits: intptr(5)}); err != nil {
		t.Fatal(err)
	}
	err := fs.Set(FormatUpdate{IntDigits: intptr(8)})
	if err == nil {
		t.Fatal("integer digit count 8 accepted")
	}
	if _, ok := err.(*gerbertypes.FormatError); !ok {
		t.Error("expected FormatError, got", err)
	}
	if fs.IntDigits != 2 {
		t.Error("failed field was applied, IntDigits =", fs.IntDigits)
	}
	if fs.DecDigits != 5 {
		t.Error("unrelated field was disturbed, DecDigits =", fs.DecDigits)
	}
	// the valid field of a mixed call is still committed
	err = fs.Set(FormatUpdate{IntDigits: intptr(9), DecDigits: intptr(4)})
	if err == nil {
		t.Fatal("integer digit count 9 accepted")
	}
	if fs.DecDigits != 4 {
		t.Error("valid field of mixed call not committed, DecDigits =", fs.DecDigits)
	}
}

func TestParseUnits(t *testing.T) {
	if u, err := ParseUnits("IN"); err != nil || u != gerbertypes.UnitsIN {
		t.Error("IN not accepted:", u, err)
	}
	if u, err := ParseUnits("mm"); err != nil || u != gerbertypes.UnitsMM {
		t.Error("mm not accepted:", u, err)
	}
	if _, err := ParseUnits("MIL"); err == nil {
		t.Error("MIL accepted")
	} else if _, ok := err.(*gerbertypes.ModeError); !ok {
		t.Error("expected ModeError, got", err)
	}
}

func TestDecode_PaddingSides(t *testing.T) {
	// 2.5 format; short runs are padded on the omitted side
	lead := newSpec(t, "L", 2, 5)
	pos, _, err := lead.Decode("X123500Y001250")
	if err != nil {
		t.Fatal(err)
	}
	if pos['X'] != 1.235 || pos['Y'] != 0.0125 {
		t.Error("leading omission decode got", pos['X'], pos['Y'])
	}
	// with leading omission, "X2" means 0.00002
	pos, _, err = lead.Decode("X2")
	if err != nil {
		t.Fatal(err)
	}
	if pos['X'] != 0.00002 {
		t.Error("leading omission short run got", pos['X'])
	}

	trail := newSpec(t, "T", 2, 5)
	pos, _, err = trail.Decode("X2")
	if err != nil {
		t.Fatal(err)
	}
	// with trailing omission, "X2" means 20.0
	if pos['X'] != 20.0 {
		t.Error("trailing omission short run got", pos['X'])
	}
}

func TestDecode_Offsets(t *testing.T) {
	fs := newSpec(t, "L", 3, 3)
	pos, off, err := fs.Decode("X10000Y-2500I300J-150")
	if err != nil {
		t.Fatal(err)
	}
	if pos['X'] != 10.0 || pos['Y'] != -2.5 {
		t.Error("positions got", pos['X'], pos['Y'])
	}
	if off['I'] != 0.3 || off['J'] != -0.15 {
		t.Error("offsets got", off['I'], off['J'])
	}
}

func TestDecode_Errors(t *testing.T) {
	fs := newSpec(t, "L", 2, 4)
	testData := []string{
		"X12Q4",     // stray letter
		"X12X34",    // duplicate axis
		"X",         // no digits
		"X12345678", // longer than the field
		"I100X200",  // offsets may not precede positions
	}
	for _, td := range testData {
		if _, _, err := fs.Decode(td); err == nil {
			t.Error("decode accepted", td)
		}
	}
	// an empty token is not an error, just empty maps
	pos, off, err := fs.Decode("")
	if err != nil || len(pos) != 0 || len(off) != 0 {
		t.Error("empty token:", pos, off, err)
	}
}

// encoding a value and decoding it back stays within one decimal quantum,
// for every digit-count pair and both omission sides
func TestCodec_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, zero := range []string{"L", "T"} {
		for intd := 0; intd <= MaxDigits; intd++ {
			for decd := 0; decd <= MaxDigits; decd++ {
				if intd+decd == 0 {
					continue // nothing is representable in a zero-width field
				}
				fs := newSpec(t, zero, intd, decd)
				quantum := math.Pow10(-decd)
				for n := 0; n < 25; n++ {
					want := rng.Float64() * (math.Pow10(intd) - 1)
					if n%2 == 1 {
						want = -want
					}
					run, err := fs.Encode(want)
					if err != nil {
						t.Fatal(zero, intd, decd, want, err)
					}
					pos, _, err := fs.Decode("X" + run)
					if err != nil {
						t.Fatal(zero, intd, decd, run, err)
					}
					if diff := math.Abs(pos['X'] - want); diff > quantum {
						t.Error("round trip", zero, intd, decd, "value", want, "run", run, "got", pos['X'], "diff", diff)
					}
				}
			}
		}
	}
}

func TestEncode_FieldOverflow(t *testing.T) {
	fs := newSpec(t, "L", 2, 3)
	if _, err := fs.Encode(123.0); err == nil {
		t.Fatal("overflow value accepted")
	} else if _, ok := err.(*gerbertypes.GeometryError); !ok {
		t.Error("expected GeometryError, got", err)
	}
	if run, err := fs.Encode(0); err != nil || run != "0" {
		t.Error("zero encode got", run, err)
	}
}
