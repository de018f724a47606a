package gerbertypes

import "fmt"

// Error taxonomy. Every mutating call on the document returns one of these;
// the document additionally keeps the text of the last error for callers
// that only check the boolean outcome.

// FormatError reports bad digit counts or bad zero/coordinate tokens.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string { return "format: " + e.Msg }

// ModeError reports a bad measurement-units token.
type ModeError struct {
	Msg string
}

func (e *ModeError) Error() string { return "mode: " + e.Msg }

// ApertureError reports a bad aperture code, bad type token or an
// unresolvable selection.
type ApertureError struct {
	Msg string
}

func (e *ApertureError) Error() string { return "aperture: " + e.Msg }

// FunctionError reports an unrecognized function code, a bad operation code
// or a missing operation code on a coordinate-carrying command.
type FunctionError struct {
	Msg string
}

func (e *FunctionError) Error() string { return "function: " + e.Msg }

// GeometryError reports a coordinate value that exceeds the configured
// field width during encoding.
type GeometryError struct {
	Msg string
}

func (e *GeometryError) Error() string { return "geometry: " + e.Msg }

// ParseError wraps any error raised while consuming a text stream with the
// 1-based number of the offending line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
