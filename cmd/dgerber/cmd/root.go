package cmd

import (
	"fmt"
	"os"

	"github.com/kpango/glg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MacroFab/DataGerber/configurator"
)

var (
	// Global flags
	verbose             bool
	ignoreInvalidCodes  bool
	ignoreBlankAperture bool
)

var cfg = viper.New()

var rootCmd = &cobra.Command{
	Use:   "dgerber",
	Short: "Photoplotter command-stream inspector",
	Long: `Parses RS-274X photoplotter command streams and reports on their
format, apertures, function log and bounding box.

Examples:
  dgerber info board-top.gbr            # Header, apertures and counts
  dgerber bounds board-top.gbr          # Bounding box of the drawn image
  dgerber info --lenient legacy.gbr     # Tolerate deprecated shorthand`,
	Version: "1.0.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&ignoreInvalidCodes, "lenient", false,
		"tolerate unrecognized function codes and bare operation codes")
	rootCmd.PersistentFlags().BoolVar(&ignoreBlankAperture, "ignore-blank-apertures", false,
		"skip bounding-box extension for draws with zero-size apertures")
}

func initConfig() {
	configurator.SetDefaults(cfg)
	if err := configurator.ProcessConfigFile(cfg); err != nil {
		glg.Debugf("no config file, using defaults: %v", err)
	}
	if rootCmd.PersistentFlags().Changed("lenient") {
		cfg.Set(configurator.CfgParserIgnoreInvalidCodes, ignoreInvalidCodes)
	}
	if rootCmd.PersistentFlags().Changed("ignore-blank-apertures") {
		cfg.Set(configurator.CfgParserIgnoreBlankApertures, ignoreBlankAperture)
	}
	if verbose {
		configurator.DiagnosticAllCfgPrint(cfg)
	} else {
		glg.Get().SetLevel(glg.WARN)
	}
}
