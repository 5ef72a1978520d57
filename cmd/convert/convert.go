// Package convert handles auto-detected statement conversion
package convert

import (
	"github.com/spf13/cobra"

	"spendsense/statement-csv/cmd/common"
	"spendsense/statement-csv/cmd/root"
	"spendsense/statement-csv/internal/unifiedparser"
)

var excelOutput bool

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a PDF statement to CSV or Excel",
	Long: `Convert a PDF credit card statement to CSV format.
The statement layout is detected automatically.`,
	Run: convertFunc,
}

func init() {
	Cmd.Flags().BoolVar(&excelOutput, "excel", false, "Write an Excel workbook instead of CSV")
}

func convertFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	root.Log.Info("Convert command called")
	logger.Infof("Input file: %s", root.SharedFlags.Input)
	logger.Infof("Output file: %s", root.SharedFlags.Output)

	p := unifiedparser.NewAdapter(logger, nil)
	if excelOutput {
		common.ProcessFileToExcel(p, root.SharedFlags.Input, root.SharedFlags.Output, root.SharedFlags.Validate, logger)
	} else {
		common.ProcessFile(p, root.SharedFlags.Input, root.SharedFlags.Output, root.SharedFlags.Validate, logger)
	}
	root.Log.Info("Statement conversion completed successfully!")
}
