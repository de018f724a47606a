package configurator

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	CfgCommonPrintAperturesInfo string = "common.PrintAperturesInfo"
	CfgCommonPrintRegionsInfo   string = "common.PrintRegionsInfo"
	CfgCommonPrintStatistic     string = "common.PrintStatistic"

	CfgParserIgnoreInvalidCodes   string = "parser.IgnoreInvalidCodes"
	CfgParserIgnoreBlankApertures string = "parser.IgnoreBlankApertures"
	CfgParserSaveIntermediate     string = "parser.SaveIntermediate"
	CfgParserIntermediateFile     string = "parser.IntermediateFile"
)

func SetDefaults(v *viper.Viper) {
	v.SetConfigName("config") // no need to include file extension
	v.AddConfigPath(".")      // set the path of your config file
	v.SetConfigType("toml")

	// diagnostic messages
	v.SetDefault(CfgCommonPrintAperturesInfo, true)
	v.SetDefault(CfgCommonPrintRegionsInfo, true)
	v.SetDefault(CfgCommonPrintStatistic, true)

	// lenient-parse switches
	v.SetDefault(CfgParserIgnoreInvalidCodes, false)
	v.SetDefault(CfgParserIgnoreBlankApertures, false)

	//
	v.SetDefault(CfgParserSaveIntermediate, false)
	v.SetDefault(CfgParserIntermediateFile, "out.lines")
}

func ProcessConfigFile(v *viper.Viper) error {
	return v.ReadInConfig()
}

func DiagnosticAllCfgPrint(v *viper.Viper) {
	c := v.AllSettings()
	for key, data := range c {
		fmt.Println(key, ":", data)
	}
	fmt.Println()
}
