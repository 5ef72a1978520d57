// Package rbc handles conversion of RBC block statement layouts
package rbc

import (
	"github.com/spf13/cobra"

	"spendsense/statement-csv/cmd/common"
	"spendsense/statement-csv/cmd/root"
	"spendsense/statement-csv/internal/models"
	"spendsense/statement-csv/internal/unifiedparser"
)

// Cmd represents the rbc command
var Cmd = &cobra.Command{
	Use:   "rbc",
	Short: "Convert an RBC block layout statement to CSV",
	Long: `Convert a PDF statement in the RBC multi-line block layout to CSV
format, skipping layout detection.`,
	Run: rbcFunc,
}

func rbcFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	root.Log.Info("RBC convert command called")
	logger.Infof("Input file: %s", root.SharedFlags.Input)
	logger.Infof("Output file: %s", root.SharedFlags.Output)

	p := unifiedparser.NewAdapter(logger, nil)
	p.SetFormat(models.FormatRbc)
	common.ProcessFile(p, root.SharedFlags.Input, root.SharedFlags.Output, root.SharedFlags.Validate, logger)
	root.Log.Info("Statement conversion completed successfully!")
}
