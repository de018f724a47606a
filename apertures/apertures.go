/*
################## apertures and aperture macros #############################

Package apertures keeps the tool definitions of a Gerber document: the
D-code keyed aperture table and the named aperture-macro table. Macro
primitive bodies are stored, never evaluated geometrically.
*/
package apertures

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/MacroFab/DataGerber/gerbertypes"
	"github.com/kpango/glg"
)

// codes below this are reserved by the format
const MinApertureCode = 10

var (
	codeRe  = regexp.MustCompile(`^[A-Za-z_$]*([0-9]+)$`)
	identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// Aperture is one tool definition. Size fields are parsed opportunistically
// from the modifier string and stay zero with the matching Known flag unset
// when the modifiers cannot be read; only the code and type token are ever
// fatal.
type Aperture struct {
	Code          string
	Kind          gerbertypes.GerberApType
	MacroName     string // set when Kind == AptypeMacro
	Modifiers     string // stored verbatim
	Diameter      float64
	DiameterKnown bool
	XSize         float64
	YSize         float64
	Vertices      int
}

// Blank reports whether drawing with this aperture exposes nothing: the
// diameter is zero or was never established.
func (ap *Aperture) Blank() bool {
	return !ap.DiameterKnown || ap.Diameter == 0
}

func (ap *Aperture) String() string {
	if ap.Code == "" {
		return "aperture <undefined>"
	}
	s := "aperture " + ap.Code + " (" + ap.Kind.String() + ")"
	if ap.DiameterKnown {
		s += " diameter " + strconv.FormatFloat(ap.Diameter, 'f', -1, 64)
	}
	return s
}

// Table is the D-code keyed aperture collection. Definitions are never
// deleted. A tolerated modifier problem is pushed to the error channel
// (LastError) without rejecting the definition.
type Table struct {
	byCode    map[string]*Aperture
	order     []string
	lastError string
}

func NewTable() *Table {
	return &Table{byCode: make(map[string]*Aperture)}
}

// LastError returns the most recent tolerated problem, empty when clean.
func (t *Table) LastError() string { return t.lastError }

// Codes returns the defined codes in definition order.
func (t *Table) Codes() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func (t *Table) Len() int { return len(t.order) }

// checkCode validates the identifier-with-numeric-suffix grammar and the
// reserved range.
func checkCode(code string) error {
	m := codeRe.FindStringSubmatch(code)
	if m == nil {
		return &gerbertypes.ApertureError{Msg: "malformed aperture code " + strconv.Quote(code)}
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < MinApertureCode {
		return &gerbertypes.ApertureError{Msg: "aperture code " + strconv.Quote(code) + " is reserved (must be >= 10)"}
	}
	return nil
}

// Define records an aperture. typ selects the kind: C, R, O, P or a macro
// name; anything matching the identifier grammar that is not a standard
// template is a macro reference. Modifiers are kept verbatim, and for the
// standard templates their leading numeric values are parsed the tolerant
// way: a bad numeric modifier is reported but the aperture is still stored.
func (t *Table) Define(code, typ, modifiers string) (*Aperture, error) {
	if err := checkCode(code); err != nil {
		return nil, err
	}
	typ = strings.TrimSpace(typ)
	if !identRe.MatchString(typ) {
		return nil, &gerbertypes.ApertureError{Msg: "bad aperture type token " + strconv.Quote(typ)}
	}

	ap := &Aperture{Code: code, Modifiers: modifiers}
	switch typ {
	case "C", "c":
		ap.Kind = gerbertypes.AptypeCircle
	case "R", "r":
		ap.Kind = gerbertypes.AptypeRectangle
	case "O", "o":
		ap.Kind = gerbertypes.AptypeObround
	case "P", "p":
		ap.Kind = gerbertypes.AptypePoly
	default:
		ap.Kind = gerbertypes.AptypeMacro
		ap.MacroName = typ
	}
	t.parseModifiers(ap)

	t.byCode[code] = ap
	t.order = append(t.order, code)
	return ap, nil
}

// parseModifiers fills the derived size fields from the X-separated
// modifier list. Never fatal.
func (t *Table) parseModifiers(ap *Aperture) {
	parts := strings.Split(ap.Modifiers, "X")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch ap.Kind {
	case gerbertypes.AptypeCircle:
		d, ok := leadingFloat(parts[0])
		if !ok {
			t.report("no numeric diameter in circle modifiers " + strconv.Quote(ap.Modifiers) + " for " + ap.Code)
			return
		}
		ap.Diameter = d
		ap.DiameterKnown = true
	case gerbertypes.AptypeRectangle, gerbertypes.AptypeObround:
		if len(parts) < 2 {
			t.report("missing size modifiers for " + ap.Code)
			return
		}
		x, okx := leadingFloat(parts[0])
		y, oky := leadingFloat(parts[1])
		if !okx || !oky {
			t.report("bad size modifiers " + strconv.Quote(ap.Modifiers) + " for " + ap.Code)
			return
		}
		ap.XSize, ap.YSize = x, y
	case gerbertypes.AptypePoly:
		d, ok := leadingFloat(parts[0])
		if !ok {
			t.report("no numeric outer diameter in polygon modifiers for " + ap.Code)
			return
		}
		ap.Diameter = d
		ap.DiameterKnown = true
		if len(parts) > 1 {
			if v, ok := leadingFloat(parts[1]); ok {
				ap.Vertices = int(v)
			}
		}
	}
}

func (t *Table) report(msg string) {
	t.lastError = msg
	glg.Warn(msg)
}

// leadingFloat parses the leading numeric run (sign, digits, one decimal
// point) of s.
func leadingFloat(s string) (float64, bool) {
	n := 0
	dot := false
	for n < len(s) {
		c := s[n]
		if c >= '0' && c <= '9' {
			n++
			continue
		}
		if c == '.' && !dot {
			dot = true
			n++
			continue
		}
		if (c == '-' || c == '+') && n == 0 {
			n++
			continue
		}
		break
	}
	v, err := strconv.ParseFloat(s[:n], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Get returns the stored record for code, or an empty record when the code
// is simply undefined. Only a malformed code string is an error.
func (t *Table) Get(code string) (*Aperture, error) {
	if err := checkCode(code); err != nil {
		return nil, err
	}
	if ap, ok := t.byCode[code]; ok {
		return ap, nil
	}
	return &Aperture{}, nil
}

// Has reports whether code was defined.
func (t *Table) Has(code string) bool {
	_, ok := t.byCode[code]
	return ok
}

/*
######################### aperture macros ############################
*/

// MacroTable maps macro names to their ordered primitive definition lines.
type MacroTable struct {
	byName map[string][]string
	order  []string
}

func NewMacroTable() *MacroTable {
	return &MacroTable{byName: make(map[string][]string)}
}

// Define stores a macro body. Comment primitives (primitive number 0) are
// stripped; the remaining lines are kept in order, uninterpreted.
func (m *MacroTable) Define(name string, primitives []string) error {
	name = strings.TrimSpace(name)
	if !identRe.MatchString(name) {
		return &gerbertypes.ApertureError{Msg: "bad aperture macro name " + strconv.Quote(name)}
	}
	body := make([]string, 0, len(primitives))
	for _, p := range primitives {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if p == "0" || strings.HasPrefix(p, "0 ") || strings.HasPrefix(p, "0,") {
			continue // comment primitive
		}
		body = append(body, p)
	}
	if _, dup := m.byName[name]; !dup {
		m.order = append(m.order, name)
	}
	m.byName[name] = body
	return nil
}

// Get returns the stored primitive lines, nil when undefined.
func (m *MacroTable) Get(name string) []string {
	return m.byName[name]
}

func (m *MacroTable) Has(name string) bool {
	_, ok := m.byName[name]
	return ok
}

// Names returns macro names in definition order.
func (m *MacroTable) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

func (m *MacroTable) Len() int { return len(m.order) }
