/*
Package coord implements the fixed-point coordinate format of RS-274X
streams: the FS format specification (digit counts and zero omission) and
the codec that turns compact axis tokens like "X123500Y001250" into decimal
values and back.
*/
package coord

import (
	"math"
	"strconv"
	"strings"

	"github.com/MacroFab/DataGerber/gerbertypes"
)

// digit counts allowed by the FS parameter
const (
	MinDigits = 0
	MaxDigits = 7
)

// Function checks against non-number characters in the string
func isNumString(ins string) bool {
	if len(ins) == 0 {
		return false
	}
	for i := 0; i < len(ins); i++ {
		if ins[i] < '0' || ins[i] > '9' {
			return false
		}
	}
	return true
}

/*
############################ format specification #####################
*/

// FormatSpec describes how coordinate digit runs are to be interpreted.
// X and Y (and by convention I and J) share the same digit counts.
type FormatSpec struct {
	Zero        gerbertypes.ZeroOmission
	Mode        gerbertypes.CoordMode
	IntDigits   int
	DecDigits   int
	digitsKnown bool
}

// NewFormatSpec returns a spec with the usual defaults: leading zero
// omission, absolute coordinates, digit counts unset.
func NewFormatSpec() *FormatSpec {
	return &FormatSpec{
		Zero: gerbertypes.OmitLeading,
		Mode: gerbertypes.CoordAbsolute,
	}
}

// FieldLength is the full width of one coordinate digit run.
func (fs *FormatSpec) FieldLength() int {
	return fs.IntDigits + fs.DecDigits
}

// DigitsKnown reports whether the digit counts have been set explicitly.
func (fs *FormatSpec) DigitsKnown() bool {
	return fs.digitsKnown
}

// FormatUpdate is a partial update for Set. String fields are absent when
// empty, digit counts are absent when nil.
type FormatUpdate struct {
	Zero      string // case-insensitive prefix of "leading" or "trailing"
	Mode      string // case-insensitive prefix of "absolute" or "incremental"
	IntDigits *int
	DecDigits *int
}

// Set validates and commits the update field by field. A failing field is
// skipped, every valid field in the same call is still applied, and the
// first failure is returned.
func (fs *FormatSpec) Set(upd FormatUpdate) error {
	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if upd.Zero != "" {
		switch {
		case matchToken(upd.Zero, "LEADING"):
			fs.Zero = gerbertypes.OmitLeading
		case matchToken(upd.Zero, "TRAILING"):
			fs.Zero = gerbertypes.OmitTrailing
		default:
			keep(&gerbertypes.FormatError{Msg: "bad zero omission token " + strconv.Quote(upd.Zero)})
		}
	}
	if upd.Mode != "" {
		switch {
		case matchToken(upd.Mode, "ABSOLUTE"):
			fs.Mode = gerbertypes.CoordAbsolute
		case matchToken(upd.Mode, "INCREMENTAL"):
			// accepted, unsupported downstream
			fs.Mode = gerbertypes.CoordIncremental
		default:
			keep(&gerbertypes.FormatError{Msg: "bad coordinate mode token " + strconv.Quote(upd.Mode)})
		}
	}
	if upd.IntDigits != nil {
		if *upd.IntDigits < MinDigits || *upd.IntDigits > MaxDigits {
			keep(&gerbertypes.FormatError{Msg: "integer digit count " + strconv.Itoa(*upd.IntDigits) + " out of range"})
		} else {
			fs.IntDigits = *upd.IntDigits
			fs.digitsKnown = true
		}
	}
	if upd.DecDigits != nil {
		if *upd.DecDigits < MinDigits || *upd.DecDigits > MaxDigits {
			keep(&gerbertypes.FormatError{Msg: "decimal digit count " + strconv.Itoa(*upd.DecDigits) + " out of range"})
		} else {
			fs.DecDigits = *upd.DecDigits
			fs.digitsKnown = true
		}
	}
	return firstErr
}

// matchToken reports whether tok is a non-empty case-insensitive prefix of
// the full keyword, so "L", "Lead" and "Leading" all select LEADING.
func matchToken(tok, full string) bool {
	tok = strings.ToUpper(tok)
	return len(tok) > 0 && strings.HasPrefix(full, tok)
}

// ParseUnits accepts exactly the two MO tokens.
func ParseUnits(tok string) (gerbertypes.Units, error) {
	switch strings.ToUpper(strings.TrimSpace(tok)) {
	case "IN":
		return gerbertypes.UnitsIN, nil
	case "MM":
		return gerbertypes.UnitsMM, nil
	}
	return 0, &gerbertypes.ModeError{Msg: "bad units token " + strconv.Quote(tok)}
}

/*
######################### coordinate codec ############################
*/

// Decode splits a compact coordinate token into a position map (keys 'X'
// and 'Y') and an offset map (keys 'I' and 'J'). Position letters are
// stripped first, then offset letters, left to right; any trailing text
// that is not such a pair is an error. Each value is the signed digit run
// re-padded on the suppressed side and scaled by 10^-DecDigits.
func (fs *FormatSpec) Decode(token string) (pos map[byte]float64, off map[byte]float64, err error) {
	pos = make(map[byte]float64)
	off = make(map[byte]float64)
	rest := strings.ToUpper(strings.TrimSpace(token))

	rest, err = fs.stripAxes(rest, "XY", pos)
	if err != nil {
		return nil, nil, err
	}
	rest, err = fs.stripAxes(rest, "IJ", off)
	if err != nil {
		return nil, nil, err
	}
	if len(rest) != 0 {
		return nil, nil, &gerbertypes.FormatError{Msg: "unparsed coordinate text " + strconv.Quote(rest)}
	}
	return pos, off, nil
}

// stripAxes consumes leading (letter)(signed digit run) pairs for the
// letters in axes, at most once per letter, and records the decoded values.
func (fs *FormatSpec) stripAxes(ins string, axes string, out map[byte]float64) (string, error) {
	for len(ins) > 0 {
		c := ins[0]
		if strings.IndexByte(axes, c) == -1 {
			break
		}
		if _, dup := out[c]; dup {
			return ins, &gerbertypes.FormatError{Msg: "axis " + string(c) + " given twice"}
		}
		body := ins[1:]
		sign := ""
		if strings.HasPrefix(body, "-") || strings.HasPrefix(body, "+") {
			sign = body[:1]
			body = body[1:]
		}
		n := 0
		for n < len(body) && body[n] >= '0' && body[n] <= '9' {
			n++
		}
		if n == 0 {
			return ins, &gerbertypes.FormatError{Msg: "axis " + string(c) + " has no digits"}
		}
		val, err := fs.decodeRun(sign, body[:n])
		if err != nil {
			return ins, err
		}
		out[c] = val
		ins = body[n:]
	}
	return ins, nil
}

// decodeRun reconstructs the full fixed-point field from a possibly
// shortened digit run and converts it to a decimal value.
func (fs *FormatSpec) decodeRun(sign, digits string) (float64, error) {
	if !isNumString(digits) {
		return 0, &gerbertypes.FormatError{Msg: "bad digit run " + strconv.Quote(digits)}
	}
	flen := fs.FieldLength()
	if len(digits) > flen {
		return 0, &gerbertypes.FormatError{Msg: "digit run " + strconv.Quote(digits) + " longer than field width " + strconv.Itoa(flen)}
	}
	// re-insert the suppressed zeros
	if pad := flen - len(digits); pad > 0 {
		zeros := strings.Repeat("0", pad)
		if fs.Zero == gerbertypes.OmitLeading {
			digits = zeros + digits
		} else {
			digits = digits + zeros
		}
	}
	whole, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, &gerbertypes.FormatError{Msg: "bad digit run " + strconv.Quote(digits)}
	}
	val := float64(whole) / math.Pow10(fs.DecDigits)
	if sign == "-" {
		val = -val
	}
	return val, nil
}

// Encode is the reverse mapping: a decimal value back to the compact digit
// run under the current format. A value too wide for the configured field
// is a GeometryError.
func (fs *FormatSpec) Encode(val float64) (string, error) {
	sign := ""
	if val < 0 {
		sign = "-"
		val = -val
	}
	scaled := int64(math.Round(val * math.Pow10(fs.DecDigits)))
	if scaled == 0 {
		return "0", nil
	}
	digits := strconv.FormatInt(scaled, 10)
	flen := fs.FieldLength()
	if len(digits) > flen {
		return "", &gerbertypes.GeometryError{Msg: "value " + strconv.FormatFloat(val, 'f', -1, 64) + " exceeds field width " + strconv.Itoa(flen)}
	}
	if pad := flen - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	switch fs.Zero {
	case gerbertypes.OmitTrailing:
		digits = strings.TrimRight(digits, "0")
	default:
		digits = strings.TrimLeft(digits, "0")
	}
	if digits == "" {
		digits = "0"
	}
	return sign + digits, nil
}
