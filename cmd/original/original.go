// Package original handles conversion of single-line statement layouts
package original

import (
	"github.com/spf13/cobra"

	"spendsense/statement-csv/cmd/common"
	"spendsense/statement-csv/cmd/root"
	"spendsense/statement-csv/internal/models"
	"spendsense/statement-csv/internal/unifiedparser"
)

// Cmd represents the original command
var Cmd = &cobra.Command{
	Use:   "original",
	Short: "Convert a single-line layout statement to CSV",
	Long: `Convert a PDF statement in the single-line layout to CSV format,
skipping layout detection.`,
	Run: originalFunc,
}

func originalFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	root.Log.Info("Original convert command called")
	logger.Infof("Input file: %s", root.SharedFlags.Input)
	logger.Infof("Output file: %s", root.SharedFlags.Output)

	p := unifiedparser.NewAdapter(logger, nil)
	p.SetFormat(models.FormatOriginal)
	common.ProcessFile(p, root.SharedFlags.Input, root.SharedFlags.Output, root.SharedFlags.Validate, logger)
	root.Log.Info("Statement conversion completed successfully!")
}
