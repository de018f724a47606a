// Base types shared by the Gerber document model, codec and parser
package gerbertypes

// Data block and extended command delimiters
const (
	BlockTrailer  = "*"
	ParamDelim    = "%"
	CommentPrefix = "G04"
)

type ZeroOmission int

const (
	OmitLeading ZeroOmission = iota + 1
	OmitTrailing
)

func (z ZeroOmission) String() string {
	switch z {
	case OmitLeading:
		return "leading zero omission"
	case OmitTrailing:
		return "trailing zero omission"
	default:
	}
	return "unknown zero omission"
}

type CoordMode int

const (
	CoordAbsolute CoordMode = iota + 1
	CoordIncremental
)

func (c CoordMode) String() string {
	switch c {
	case CoordAbsolute:
		return "absolute coordinates"
	case CoordIncremental:
		return "incremental coordinates"
	default:
	}
	return "unknown coordinate mode"
}

type Units int

const (
	UnitsIN Units = iota + 1
	UnitsMM
)

func (u Units) String() string {
	switch u {
	case UnitsIN:
		return "inches"
	case UnitsMM:
		return "millimeters"
	default:
	}
	return "unknown units"
}

type GerberApType int

const (
	AptypeCircle GerberApType = iota + 1
	AptypeRectangle
	AptypeObround
	AptypePoly
	AptypeMacro
)

func (ga GerberApType) String() string {
	switch ga {
	case AptypeCircle:
		return "circle aperture"
	case AptypeRectangle:
		return "rectangle aperture"
	case AptypeObround:
		return "obround (box) aperture"
	case AptypePoly:
		return "polygon aperture"
	case AptypeMacro:
		return "macro aperture"
	default:
	}
	return "unknown aperture type"
}

type QuadMode int

const (
	QuadModeSingle QuadMode = iota + 1
	QuadModeMulti
)

func (q QuadMode) String() string {
	switch q {
	case QuadModeSingle:
		return "QuadMode: Single"
	case QuadModeMulti:
		return "QuadMode: Multi"
	default:
	}
	return "unknown QuadMode"
}

type IPmode int

const (
	IPModeLinear IPmode = iota + 1
	IPModeCwC
	IPModeCCwC
)

func (ipm IPmode) String() string {
	switch ipm {
	case IPModeLinear:
		return "linear interpolation"
	case IPModeCwC:
		return "clockwise interpolation"
	case IPModeCCwC:
		return "counter-clockwise interpolation"
	default:
	}
	return "unknown interpolation"
}
