package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/kpango/glg"

	"github.com/MacroFab/DataGerber/configurator"
	"github.com/MacroFab/DataGerber/document"
	"github.com/MacroFab/DataGerber/parser"
	"github.com/MacroFab/DataGerber/storage"
)

// loadDocument parses one command-stream file with the configured lenient
// switches.
func loadDocument(path string) (*document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc := document.New()
	doc.IgnoreInvalidCodes = cfg.GetBool(configurator.CfgParserIgnoreInvalidCodes)
	doc.IgnoreBlankApertures = cfg.GetBool(configurator.CfgParserIgnoreBlankApertures)

	p := parser.New(doc)

	if cfg.GetBool(configurator.CfgParserSaveIntermediate) {
		st := storage.NewStorage()
		if err := st.Feed(f); err != nil {
			return nil, err
		}
		dump := cfg.GetString(configurator.CfgParserIntermediateFile)
		if werr := os.WriteFile(dump, []byte(strings.Join(st.ToArray(), "\n")+"\n"), 0644); werr != nil {
			glg.Warnf("intermediate dump %s: %v", dump, werr)
		}
		if err := p.Parse(st); err != nil {
			return nil, err
		}
	} else if err := p.ParseReader(f); err != nil {
		return nil, err
	}

	if !p.Halted() {
		glg.Warnf("%s: stream has no program-end marker", path)
	}
	if msg := doc.LastError(); msg != "" {
		glg.Warnf("%s: %s", path, msg)
	}
	return doc, nil
}

func unitsString(doc *document.Document) string {
	if !doc.UnitsKnown() {
		return "unknown"
	}
	return fmt.Sprint(doc.Units)
}
