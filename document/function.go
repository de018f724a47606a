package document

import "strconv"

// Function is one appended record of the document's command log: an
// aperture selection, a repeatable parameter call, or a coordinate-carrying
// command. The sum is closed; a record can never be two of these at once.
type Function interface {
	String() string
	isFunction()
}

// ApertureSelect records a Dnn tool selection. Resolved is false when the
// code was not in the aperture table at append time; the record is kept
// either way and the problem goes to the error channel.
type ApertureSelect struct {
	Code     string
	Resolved bool
}

func (f *ApertureSelect) isFunction() {}

func (f *ApertureSelect) String() string {
	s := "select " + f.Code
	if !f.Resolved {
		s += " (unresolved)"
	}
	return s
}

// ParamCall records a repeatable parameter (polarity, step-repeat,
// attributes) verbatim.
type ParamCall struct {
	Raw string
}

func (f *ParamCall) isFunction() {}

func (f *ParamCall) String() string { return "param " + f.Raw }

// Command records a G/M function code and/or a coordinate data block.
// Every field but the cache is immutable once appended; a conversion layer
// that rewrites Coord or Op must ask the document to refresh the cache.
type Command struct {
	Func    string // function code, e.g. "G01"; may be empty
	Coord   string // raw coordinate token, e.g. "X123500Y001250"; may be empty
	Op      string // operation code D01/D02/D03; may be empty
	Comment string // G04 comment payload

	// decoded absolute position, valid while HasXY is set
	X     float64
	Y     float64
	HasXY bool
}

func (f *Command) isFunction() {}

func (f *Command) String() string {
	s := "command"
	if f.Func != "" {
		s += " " + f.Func
	}
	if f.Coord != "" {
		s += " " + f.Coord
	}
	if f.Op != "" {
		s += " " + f.Op
	}
	if f.Comment != "" {
		s += " ; " + f.Comment
	}
	if f.HasXY {
		s += " @(" + strconv.FormatFloat(f.X, 'f', 6, 64) + "," + strconv.FormatFloat(f.Y, 'f', 6, 64) + ")"
	}
	return s
}
