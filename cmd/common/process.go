// Package common contains shared functionality for command handlers
package common

import (
	"fmt"

	"spendsense/statement-csv/internal/logging"
	"spendsense/statement-csv/internal/models"
	"spendsense/statement-csv/internal/parsererror"
)

// ProcessFile processes a single statement file using the given parser and
// exits the process on failure.
func ProcessFile(p models.Parser, inputFile, outputFile string, validate bool, log logging.Logger) {
	if err := ProcessFileWithError(p, inputFile, outputFile, validate, log); err != nil {
		log.Fatalf("%v", err)
	}
	log.Info("Conversion completed successfully!")
}

// ProcessFileWithError processes a single statement file using the given
// parser and returns any failure instead of exiting.
func ProcessFileWithError(p models.Parser, inputFile, outputFile string, validate bool, log logging.Logger) error {
	p.SetLogger(log)

	if validate {
		log.Info("Validating format...")
		valid, err := p.ValidateFormat(inputFile)
		if err != nil {
			return fmt.Errorf("error validating file: %w", err)
		}
		if !valid {
			return &parsererror.InvalidFormatError{
				FilePath:       inputFile,
				ExpectedFormat: "PDF statement",
				Msg:            "validation failed",
			}
		}
		log.Info("Validation successful.")
	}

	if err := p.ConvertToCSV(inputFile, outputFile); err != nil {
		return fmt.Errorf("error converting to CSV: %w", err)
	}
	return nil
}
