// Package parser tokenizes command-stream text line by line and drives the
// document: parameter blocks mutate format, units and the aperture/macro
// tables, command lines append function records.
package parser

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/kpango/glg"

	"github.com/MacroFab/DataGerber/coord"
	"github.com/MacroFab/DataGerber/document"
	. "github.com/MacroFab/DataGerber/gerbertypes"
	"github.com/MacroFab/DataGerber/storage"
)

/*
####################################### parser state ###########################################
*/

type state int

const (
	stateIdle state = iota + 1
	stateAccumulatingParameter
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "Idle"
	case stateAccumulatingParameter:
		return "AccumulatingParameter"
	default:
	}
	return "unknown parser state"
}

// Parser feeds lines into a document. One parser drives one document for
// one stream.
type Parser struct {
	Doc *document.Document

	state    state
	paramBuf []string
	// lastOp supports the deprecated shorthand of a bare move that omits
	// its operation code
	lastOp string
	lineNo int
	halted bool
}

func New(doc *document.Document) *Parser {
	return &Parser{Doc: doc, state: stateIdle}
}

// LineNo returns the 1-based number of the last line handed to the parser.
func (p *Parser) LineNo() int { return p.lineNo }

// Halted reports whether a program-end token stopped the stream.
func (p *Parser) Halted() bool { return p.halted }

func (p *Parser) errf(err error) error {
	pe := &ParseError{Line: p.lineNo, Err: err}
	p.Doc.SetLastError(pe.Error())
	return pe
}

/*
####################################### entry points ###########################################
*/

// Parse consumes the supplier until exhaustion, first error or program
// end. Suppliers hold no empty lines, so reported line numbers count the
// supplied lines; use ParseReader to keep a file's physical numbering.
func (p *Parser) Parse(sup storage.Supplier) error {
	for line := sup.String(); line != ""; line = sup.String() {
		p.lineNo++
		if err := p.parseLine(line); err != nil {
			return err
		}
		if p.halted {
			break
		}
	}
	return p.finish()
}

// ParseReader scans r line by line, counting physical lines so error
// reports keep the original numbering.
func (p *Parser) ParseReader(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		p.lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if err := p.parseLine(line); err != nil {
			return err
		}
		if p.halted {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return p.finish()
}

func (p *Parser) finish() error {
	if p.state == stateAccumulatingParameter {
		return p.errf(&FormatError{Msg: "unterminated parameter block at end of stream"})
	}
	return nil
}

/*
####################################### line dispatch ##########################################
*/

var (
	reApertureSelect = regexp.MustCompile(`^(?:G54)?(D[0-9]{2,})$`)
	reGCode          = regexp.MustCompile(`^(G[0-9]+)(.*)$`)
	reOpTail         = regexp.MustCompile(`^(.*?)(D[0-9]{1,2})$`)
	reBareOp         = regexp.MustCompile(`^D0?[123]$`)
)

// commentTail recognizes a G04/G4 comment token and returns everything
// after the code.
func commentTail(tok string) (string, bool) {
	up := strings.ToUpper(tok)
	switch {
	case strings.HasPrefix(up, CommentPrefix):
		return tok[len(CommentPrefix):], true
	case strings.HasPrefix(up, "G4"):
		// G4 followed by a digit is a different code, not a comment
		if len(tok) > 2 && tok[2] >= '0' && tok[2] <= '9' {
			return "", false
		}
		return tok[2:], true
	}
	return "", false
}

func (p *Parser) parseLine(raw string) error {
	line := strings.TrimSpace(raw)

	if p.state == stateAccumulatingParameter {
		if !strings.HasSuffix(line, ParamDelim) {
			p.paramBuf = append(p.paramBuf, line)
			return nil
		}
		p.paramBuf = append(p.paramBuf, strings.TrimSuffix(line, ParamDelim))
		body := strings.Join(p.paramBuf, "")
		p.paramBuf = nil
		p.state = stateIdle
		return p.dispatchParam(body)
	}

	if line == "" || strings.Trim(line, "* \t") == "" {
		return nil
	}

	if strings.HasPrefix(line, ParamDelim) {
		body := line[len(ParamDelim):]
		if strings.HasSuffix(body, ParamDelim) {
			return p.dispatchParam(strings.TrimSuffix(body, ParamDelim))
		}
		p.state = stateAccumulatingParameter
		p.paramBuf = []string{body}
		return nil
	}

	toks := strings.Split(line, BlockTrailer)
	for i, tok := range toks {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		// a comment swallows the rest of the line, wherever it starts
		if tail, ok := commentTail(tok); ok {
			parts := append([]string{strings.TrimSpace(tail)}, toks[i+1:]...)
			comment := strings.TrimSpace(strings.TrimRight(strings.Join(parts, BlockTrailer), "* \t"))
			if err := p.Doc.AddCommand("G04", "", "", comment); err != nil {
				return p.errf(err)
			}
			return nil
		}
		if err := p.dispatchCommand(tok); err != nil {
			return err
		}
		if p.halted {
			return nil
		}
	}
	return nil
}

/*
####################################### command dispatch #######################################
*/

func (p *Parser) dispatchCommand(tok string) error {
	up := strings.ToUpper(tok)

	switch up {
	case "M00", "M02":
		if err := p.Doc.AddCommand(up, "", "", ""); err != nil {
			return p.errf(err)
		}
		p.halted = true
		glg.Debugf("line %d: program end %s", p.lineNo, up)
		return nil
	case "M01":
		if err := p.Doc.AddCommand(up, "", "", ""); err != nil {
			return p.errf(err)
		}
		return nil
	}

	if m := reApertureSelect.FindStringSubmatch(up); m != nil {
		if n, err := strconv.Atoi(m[1][1:]); err == nil && n >= 10 {
			if err := p.Doc.AddApertureSelect(m[1]); err != nil {
				return p.errf(err)
			}
			return nil
		}
	}

	// a bare operation code alone is deprecated; tolerated only when
	// lenient
	if reBareOp.MatchString(up) {
		if !p.Doc.IgnoreInvalidCodes {
			return p.errf(&FunctionError{Msg: "bare operation code " + up + " without coordinate data"})
		}
		glg.Warnf("line %d: bare operation code %s", p.lineNo, up)
		if err := p.Doc.AddCommand("", "", up, ""); err != nil {
			return p.errf(err)
		}
		p.lastOp = up
		return nil
	}

	if m := reGCode.FindStringSubmatch(up); m != nil {
		return p.gCommand(m[1], m[2])
	}

	if strings.IndexByte("XYIJ", up[0]) >= 0 {
		return p.bareMove(up)
	}

	return p.errf(&FunctionError{Msg: "unrecognized token " + strconv.Quote(tok)})
}

// gCommand handles a G-code token with optional coordinate data and
// trailing operation code.
func (p *Parser) gCommand(fn, rest string) error {
	op := ""
	if m := reOpTail.FindStringSubmatch(rest); m != nil {
		rest, op = m[1], m[2]
	}
	if err := p.Doc.AddCommand(fn, rest, op, ""); err != nil {
		return p.errf(err)
	}
	if n := normalOp(op); n != "" {
		p.lastOp = n
	}
	return nil
}

// bareMove handles a coordinate token, reusing the stream's last seen
// operation code when the token omits its own.
func (p *Parser) bareMove(tok string) error {
	coordTok, op := tok, ""
	if m := reOpTail.FindStringSubmatch(tok); m != nil {
		coordTok, op = m[1], m[2]
	}
	if op == "" {
		if p.lastOp == "" {
			return p.errf(&FunctionError{Msg: "coordinate data without operation code and none to reuse"})
		}
		op = p.lastOp
	}
	if err := p.Doc.AddCommand("", coordTok, op, ""); err != nil {
		return p.errf(err)
	}
	if n := normalOp(op); n != "" {
		p.lastOp = n
	}
	return nil
}

func normalOp(op string) string {
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

/*
####################################### parameter dispatch #####################################
*/

// toleratedParams are obsolete or attribute parameters recorded verbatim
// so a writer can round-trip them.
var toleratedParams = map[string]bool{
	"AS": true, "IR": true, "MI": true, "OF": true, "SF": true,
	"IN": true, "LN": true,
	"TF": true, "TA": true, "TO": true, "TD": true,
}

func (p *Parser) dispatchParam(body string) error {
	body = strings.TrimSpace(body)
	if len(body) < 2 {
		return p.errf(&FormatError{Msg: "short parameter block " + strconv.Quote(body)})
	}
	prefix := strings.ToUpper(body[:2])
	rest := strings.TrimSuffix(body[2:], BlockTrailer)

	switch prefix {
	case "FS":
		return p.paramFS(rest)
	case "MO":
		if err := p.Doc.SetUnits(rest); err != nil {
			return p.errf(err)
		}
		return nil
	case "AD":
		return p.paramAD(rest)
	case "AM":
		return p.paramAM(body[2:])
	case "LP":
		if rest != "C" && rest != "D" {
			return p.errf(&ModeError{Msg: "bad polarity " + strconv.Quote(rest)})
		}
		if err := p.Doc.AddParam(prefix + rest); err != nil {
			return p.errf(err)
		}
		return nil
	case "SR":
		if err := p.Doc.AddParam(prefix + rest); err != nil {
			return p.errf(err)
		}
		return nil
	}

	if toleratedParams[prefix] {
		glg.Debugf("line %d: pass-through parameter %s", p.lineNo, prefix)
		if err := p.Doc.AddParam(prefix + rest); err != nil {
			return p.errf(err)
		}
		return nil
	}

	return p.errf(&FormatError{Msg: "unknown parameter prefix " + strconv.Quote(prefix)})
}

// paramFS parses the format-specification body: optional zero-suppression
// and coordinate-mode letters, then Xnm and Ynm digit pairs that must
// agree.
func (p *Parser) paramFS(rest string) error {
	upd := coord.FormatUpdate{}
	s := strings.ToUpper(rest)

	if len(s) > 0 && (s[0] == 'L' || s[0] == 'T') {
		upd.Zero = s[:1]
		s = s[1:]
	}
	if len(s) > 0 && (s[0] == 'A' || s[0] == 'I') {
		upd.Mode = s[:1]
		s = s[1:]
	}

	xi, xd, s, err := fsAxis(s, 'X')
	if err != nil {
		return p.errf(err)
	}
	yi, yd, s, err := fsAxis(s, 'Y')
	if err != nil {
		return p.errf(err)
	}
	if s != "" {
		return p.errf(&FormatError{Msg: "trailing text in format specification " + strconv.Quote(s)})
	}
	if xi != yi || xd != yd {
		return p.errf(&FormatError{Msg: "X and Y formats differ"})
	}
	upd.IntDigits = &xi
	upd.DecDigits = &xd

	if err := p.Doc.SetFormat(upd); err != nil {
		return p.errf(err)
	}
	return nil
}

func fsAxis(s string, axis byte) (intd, decd int, tail string, err error) {
	if len(s) < 3 || s[0] != axis {
		return 0, 0, s, &FormatError{Msg: "format specification missing " + string(axis) + " digits"}
	}
	i, d := s[1], s[2]
	if i < '0' || i > '9' || d < '0' || d > '9' {
		return 0, 0, s, &FormatError{Msg: "bad digit counts for axis " + string(axis)}
	}
	return int(i - '0'), int(d - '0'), s[3:], nil
}

var reADBody = regexp.MustCompile(`^([A-Za-z_$]*[0-9]+)([A-Za-z_$][A-Za-z0-9_$]*)(?:,(.*))?$`)

// paramAD parses an aperture definition: code, type token, optional
// comma-separated modifiers.
func (p *Parser) paramAD(rest string) error {
	m := reADBody.FindStringSubmatch(rest)
	if m == nil {
		return p.errf(&ApertureError{Msg: "malformed aperture definition " + strconv.Quote(rest)})
	}
	if err := p.Doc.DefineAperture(m[1], m[2], m[3]); err != nil {
		return p.errf(err)
	}
	return nil
}

// paramAM parses a macro definition: the name segment followed by
// primitive segments separated by the block terminator.
func (p *Parser) paramAM(body string) error {
	segs := strings.Split(body, BlockTrailer)
	name := strings.TrimSpace(segs[0])
	if name == "" {
		return p.errf(&ApertureError{Msg: "macro definition without a name"})
	}
	prims := make([]string, 0, len(segs)-1)
	for _, s := range segs[1:] {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		prims = append(prims, s)
	}
	if err := p.Doc.DefineMacro(name, prims); err != nil {
		return p.errf(err)
	}
	return nil
}
