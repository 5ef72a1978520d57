// Package detect reports the detected layout of a PDF statement
package detect

import (
	"fmt"

	"github.com/spf13/cobra"

	"spendsense/statement-csv/cmd/root"
	"spendsense/statement-csv/internal/detector"
	"spendsense/statement-csv/internal/logging"
	"spendsense/statement-csv/internal/pdfextract"
)

// Cmd represents the detect command
var Cmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect the layout of a PDF statement",
	Long:  `Sample the first pages of a PDF statement and print the detected layout.`,
	Run:   detectFunc,
}

func detectFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	logger.Infof("Input file: %s", root.SharedFlags.Input)

	extractor := pdfextract.DefaultExtractor()
	doc, err := extractor.Open(root.SharedFlags.Input)
	if err != nil {
		logger.Fatalf("Error opening PDF file: %v", err)
	}
	defer func() {
		if err := doc.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close document",
				logging.Field{Key: logging.FieldFile, Value: root.SharedFlags.Input})
		}
	}()

	format := detector.DetectDocument(doc, logger)
	fmt.Println(string(format))
}
