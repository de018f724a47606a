package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MacroFab/DataGerber/configurator"
	"github.com/MacroFab/DataGerber/document"
)

var infoCmd = &cobra.Command{
	Use:   "info <gerber-file>",
	Short: "Show format, apertures and function counts of a command stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("File:     %s\n", args[0])
	fmt.Printf("Units:    %s\n", unitsString(doc))
	f := doc.Format
	if f.DigitsKnown() {
		fmt.Printf("Format:   %v %v %d.%d\n", f.Zero, f.Mode, f.IntDigits, f.DecDigits)
	} else {
		fmt.Printf("Format:   not declared\n")
	}

	if cfg.GetBool(configurator.CfgCommonPrintAperturesInfo) {
		fmt.Printf("Apertures: %d\n", doc.Apertures.Len())
		for _, code := range doc.Apertures.Codes() {
			ap, _ := doc.Apertures.Get(code)
			fmt.Printf("  %s\n", ap)
		}
		if doc.Macros.Len() > 0 {
			fmt.Printf("Macros:   %v\n", doc.Macros.Names())
		}
	}

	if cfg.GetBool(configurator.CfgCommonPrintRegionsInfo) && len(doc.Regions) > 0 {
		fmt.Printf("Regions:  %d\n", len(doc.Regions))
		for i, r := range doc.Regions {
			fmt.Printf("  region %d: %d vertices\n", i, len(r.Contour))
		}
	}

	if cfg.GetBool(configurator.CfgCommonPrintStatistic) {
		var selects, params, commands int
		for _, fn := range doc.Functions() {
			switch fn.(type) {
			case *document.ApertureSelect:
				selects++
			case *document.ParamCall:
				params++
			case *document.Command:
				commands++
			}
		}
		fmt.Printf("Functions: %d (%d commands, %d selections, %d parameters)\n",
			doc.Len(), commands, selects, params)
	}
	return nil
}
