// Package document holds the in-memory model of a photoplotter command
// stream: format and units, aperture and macro tables, the ordered
// function log, the modal drawing state and the accumulated bounding box.
package document

import (
	"strings"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/kpango/glg"

	"github.com/MacroFab/DataGerber/apertures"
	"github.com/MacroFab/DataGerber/bbox"
	"github.com/MacroFab/DataGerber/coord"
	. "github.com/MacroFab/DataGerber/gerbertypes"
)

/*
####################################### modal state ############################################
*/

// ModalState is the drawing state carried from one command to the next.
type ModalState struct {
	LastX float64
	LastY float64
	// IpMode is linear or one of the two arc directions, QMode selects
	// single- or multi-quadrant arc handling
	IpMode IPmode
	QMode  QuadMode
	// LastOp is the most recent standard operation code, reused by arc
	// commands that omit their own
	LastOp      string
	LastWasMove bool
	// CurrentAp is the selected aperture record, nil until the first
	// selection
	CurrentAp     *apertures.Aperture
	CurrentApCode string
}

/*
####################################### regions ################################################
*/

// Region is one closed G36/G37 contour. OpenIndex and CloseIndex are
// positions in the function log.
type Region struct {
	OpenIndex  int
	CloseIndex int
	Contour    polyclip.Contour
}

/*
####################################### document ###############################################
*/

// Document aggregates everything parsed out of one command stream.
type Document struct {
	Format   *coord.FormatSpec
	Units    Units
	unitsSet bool

	Apertures *apertures.Table
	Macros    *apertures.MacroTable

	functions []Function
	Modal     ModalState
	Box       bbox.Box

	Regions    []*Region
	openRegion *Region

	// IgnoreInvalidCodes downgrades unrecognized function codes from a
	// fatal error to a warning
	IgnoreInvalidCodes bool
	// IgnoreBlankApertures suppresses bounding-box extension for draws
	// made with a zero-size or undefined aperture
	IgnoreBlankApertures bool

	lastError string
	halted    bool
}

// New returns an empty document with default format and tables.
func New() *Document {
	return &Document{
		Format:    coord.NewFormatSpec(),
		Apertures: apertures.NewTable(),
		Macros:    apertures.NewMacroTable(),
		Modal:     ModalState{IpMode: IPModeLinear, QMode: QuadModeSingle},
	}
}

// LastError returns the most recent problem report, fatal or not.
func (d *Document) LastError() string { return d.lastError }

// SetLastError lets a collaborator (typically the parser) overwrite the
// error surface with its own annotated message.
func (d *Document) SetLastError(msg string) { d.lastError = msg }

// Halted reports whether an M00/M02 stop was appended.
func (d *Document) Halted() bool { return d.halted }

// Functions returns the function log in append order.
func (d *Document) Functions() []Function { return d.functions }

// Len returns the number of appended function records.
func (d *Document) Len() int { return len(d.functions) }

func (d *Document) fail(err error) error {
	d.lastError = err.Error()
	return err
}

/*
####################################### header operations ######################################
*/

// SetFormat applies a coordinate format update. Valid fields commit even
// when another field in the same update fails.
func (d *Document) SetFormat(upd coord.FormatUpdate) error {
	if err := d.Format.Set(upd); err != nil {
		return d.fail(err)
	}
	return nil
}

// SetUnits sets the document units from an IN/MM token.
func (d *Document) SetUnits(tok string) error {
	u, err := coord.ParseUnits(tok)
	if err != nil {
		return d.fail(err)
	}
	d.Units = u
	d.unitsSet = true
	return nil
}

// UnitsKnown reports whether units were set explicitly.
func (d *Document) UnitsKnown() bool { return d.unitsSet }

// DefineAperture adds an aperture to the table.
func (d *Document) DefineAperture(code, typ, modifiers string) error {
	if _, err := d.Apertures.Define(code, typ, modifiers); err != nil {
		return d.fail(err)
	}
	if le := d.Apertures.LastError(); le != "" {
		d.lastError = le
	}
	return nil
}

// DefineMacro adds an aperture macro to the table.
func (d *Document) DefineMacro(name string, lines []string) error {
	if err := d.Macros.Define(name, lines); err != nil {
		return d.fail(err)
	}
	return nil
}

/*
####################################### log operations #########################################
*/

// AddParam appends a repeatable parameter call verbatim.
func (d *Document) AddParam(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return d.fail(&FormatError{Msg: "empty parameter call"})
	}
	d.functions = append(d.functions, &ParamCall{Raw: raw})
	return nil
}

// AddApertureSelect appends a tool selection and makes it current. An
// unknown code is reported on the error channel but the record is still
// written, flagged unresolved.
func (d *Document) AddApertureSelect(code string) error {
	ap, err := d.Apertures.Get(code)
	if err != nil {
		return d.fail(err)
	}
	rec := &ApertureSelect{Code: code, Resolved: d.Apertures.Has(code)}
	if !rec.Resolved {
		d.lastError = "aperture " + code + " selected before definition"
		glg.Warnf("aperture %s selected before definition", code)
	}
	d.functions = append(d.functions, rec)
	d.Modal.CurrentAp = ap
	d.Modal.CurrentApCode = code
	return nil
}

// knownFuncs is the set of function codes the interpreter understands.
var knownFuncs = map[string]bool{
	"G1": true, "G01": true,
	"G2": true, "G02": true,
	"G3": true, "G03": true,
	"G4": true, "G04": true,
	"G36": true, "G37": true,
	"G54": true, "G55": true,
	"G70": true, "G71": true,
	"G74": true, "G75": true,
	"G90": true, "G91": true,
	"M00": true, "M01": true, "M02": true,
}

func isArcFunc(fn string) bool {
	switch fn {
	case "G2", "G02", "G3", "G03":
		return true
	}
	return false
}

// normalizeOp maps an operation code token to its canonical D01/D02/D03
// spelling, allowing the zero-padded and unpadded forms. It returns ""
// for anything else.
func normalizeOp(op string) string {
	switch strings.ToUpper(op) {
	case "D1", "D01":
		return "D01"
	case "D2", "D02":
		return "D02"
	case "D3", "D03":
		return "D03"
	}
	return ""
}

// AddCommand validates and appends one command record, applying its mode
// side effects and extending the bounding box when it carries an
// operation.
func (d *Document) AddCommand(fn, coordTok, op, comment string) error {
	fn = strings.ToUpper(strings.TrimSpace(fn))
	coordTok = strings.ToUpper(strings.TrimSpace(coordTok))
	op = strings.TrimSpace(op)

	if fn != "" && !knownFuncs[fn] {
		if !d.IgnoreInvalidCodes {
			return d.fail(&FunctionError{Msg: "unrecognized function code " + fn})
		}
		d.lastError = "unrecognized function code " + fn
		glg.Warnf("unrecognized function code %s", fn)
	}

	opNorm := ""
	if op != "" {
		opNorm = normalizeOp(op)
		if opNorm == "" {
			// G54 historically carries the tool code in operation
			// position, tolerate it there
			if fn != "G54" {
				return d.fail(&FunctionError{Msg: "invalid operation code " + op})
			}
		}
	}

	if coordTok != "" && opNorm == "" && fn != "G54" {
		// arc commands may omit the operation and reuse the previous one
		reuse := isArcFunc(fn) || (fn == "" && d.Modal.IpMode != IPModeLinear)
		if !reuse || d.Modal.LastOp == "" {
			return d.fail(&FunctionError{Msg: "missing operation code on coordinate data"})
		}
		opNorm = d.Modal.LastOp
	}

	d.applyFuncMode(fn)

	cmd := &Command{Func: fn, Coord: coordTok, Op: strings.ToUpper(op), Comment: comment}
	if opNorm != "" {
		cmd.Op = opNorm
	}

	if coordTok != "" {
		pos, off, err := d.Format.Decode(coordTok)
		if err != nil {
			return d.fail(err)
		}
		x, y := d.resolve(pos)
		if opNorm != "" {
			d.applyOperation(opNorm, x, y, off)
		}
		d.Modal.LastX, d.Modal.LastY = x, y
		cmd.X, cmd.Y, cmd.HasXY = x, y, true
	} else if opNorm != "" {
		// bare operation acts at the current position
		d.applyOperation(opNorm, d.Modal.LastX, d.Modal.LastY, nil)
	}

	d.functions = append(d.functions, cmd)
	return nil
}

// applyFuncMode applies the modal side effect of a function code.
func (d *Document) applyFuncMode(fn string) {
	switch fn {
	case "G1", "G01":
		d.Modal.IpMode = IPModeLinear
	case "G2", "G02":
		d.Modal.IpMode = IPModeCwC
	case "G3", "G03":
		d.Modal.IpMode = IPModeCCwC
	case "G74":
		d.Modal.QMode = QuadModeSingle
	case "G75":
		d.Modal.QMode = QuadModeMulti
	case "G70":
		d.Units = UnitsIN
		d.unitsSet = true
	case "G71":
		d.Units = UnitsMM
		d.unitsSet = true
	case "G90":
		d.Format.Mode = CoordAbsolute
	case "G91":
		d.Format.Mode = CoordIncremental
	case "G36":
		if d.openRegion == nil {
			d.openRegion = &Region{OpenIndex: len(d.functions), CloseIndex: -1}
		}
	case "G37":
		d.closeRegion()
	case "M00", "M02":
		d.halted = true
	}
}

func (d *Document) closeRegion() {
	r := d.openRegion
	if r == nil {
		return
	}
	r.CloseIndex = len(d.functions)
	if len(r.Contour) > 0 {
		d.Box.Rect(r.Contour.BoundingBox())
	}
	d.Regions = append(d.Regions, r)
	d.openRegion = nil
}

// resolve fills omitted axes from the last position, or adds deltas to it
// in incremental mode.
func (d *Document) resolve(pos map[byte]float64) (x, y float64) {
	x, y = d.Modal.LastX, d.Modal.LastY
	if d.Format.Mode == CoordIncremental {
		if v, ok := pos['X']; ok {
			x += v
		}
		if v, ok := pos['Y']; ok {
			y += v
		}
		return x, y
	}
	if v, ok := pos['X']; ok {
		x = v
	}
	if v, ok := pos['Y']; ok {
		y = v
	}
	return x, y
}

// blankDraw reports whether box extension is suppressed for the current
// aperture. No selection at all counts as blank.
func (d *Document) blankDraw() bool {
	if !d.IgnoreBlankApertures {
		return false
	}
	return d.Modal.CurrentAp == nil || d.Modal.CurrentAp.Blank()
}

// applyOperation extends the bounding box for one move/draw/flash at the
// resolved position.
func (d *Document) applyOperation(op string, x, y float64, off map[byte]float64) {
	start := mgl64.Vec2{d.Modal.LastX, d.Modal.LastY}
	pos := mgl64.Vec2{x, y}

	switch op {
	case "D02":
		d.Modal.LastWasMove = true
		d.Modal.LastOp = op
		return
	case "D01":
		// a move-then-draw pair brackets both endpoints; only the draw
		// endpoint itself is subject to blank-aperture suppression
		if d.Modal.LastWasMove {
			d.Box.Point(start)
		}
		if !d.blankDraw() {
			d.extendDraw(start, pos, off)
		}
		if d.openRegion != nil {
			d.openRegion.Contour.Add(polyclip.Point{X: x, Y: y})
		}
	case "D03":
		if !d.blankDraw() {
			d.Box.Point(pos)
		}
	}
	d.Modal.LastWasMove = false
	d.Modal.LastOp = op
}

// extendDraw extends the box for a D01 stroke: an arc sweep in
// multi-quadrant arc mode, an endpoint otherwise.
func (d *Document) extendDraw(start, pos mgl64.Vec2, off map[byte]float64) {
	if d.Modal.IpMode != IPModeLinear {
		offset := mgl64.Vec2{off['I'], off['J']}
		if d.Modal.QMode == QuadModeMulti {
			d.Box.Arc(start, pos, offset, d.Modal.IpMode)
			return
		}
		// single quadrant: treat the endpoint alone, a zero-length arc
		// extends nothing
		if start == pos {
			return
		}
		d.Box.Point(pos)
		return
	}
	// linear draws fold the offsets into the endpoint
	if off != nil {
		pos[0] += off['I']
		pos[1] += off['J']
	}
	d.Box.Point(pos)
}

/*
####################################### conversion hooks #######################################
*/

// Writer reconstructs command-stream text from a document.
type Writer interface {
	Write(d *Document) ([]byte, error)
}

// Converter rewrites a document in place, typically renumbering apertures
// or re-encoding coordinates, and asks for a coordinate refresh when done.
type Converter interface {
	Convert(d *Document) error
}

// RefreshCoords re-decodes every command's coordinate token and rebuilds
// the cached positions, walking the log in order so modal fallback stays
// correct. Conversion layers call this after rewriting Coord or Op fields.
func (d *Document) RefreshCoords() error {
	lastX, lastY := 0.0, 0.0
	for _, f := range d.functions {
		cmd, ok := f.(*Command)
		if !ok || cmd.Coord == "" {
			continue
		}
		pos, _, err := d.Format.Decode(cmd.Coord)
		if err != nil {
			return d.fail(err)
		}
		x, y := lastX, lastY
		if v, ok := pos['X']; ok {
			x = v
		}
		if v, ok := pos['Y']; ok {
			y = v
		}
		cmd.X, cmd.Y, cmd.HasXY = x, y, true
		lastX, lastY = x, y
	}
	return nil
}
