package common

import (
	"os"

	"spendsense/statement-csv/internal/excel"
	"spendsense/statement-csv/internal/logging"
	"spendsense/statement-csv/internal/models"
)

// ProcessFileToExcel parses a single statement file and writes an Excel
// workbook with summary sheets instead of CSV.
func ProcessFileToExcel(p models.Parser, inputFile, outputFile string, validate bool, log logging.Logger) {
	p.SetLogger(log)

	if validate {
		log.Info("Validating format...")
		valid, err := p.ValidateFormat(inputFile)
		if err != nil {
			log.Fatalf("Error validating file: %v", err)
		}
		if !valid {
			log.Fatal("The file is not in a valid format")
		}
		log.Info("Validation successful.")
	}

	file, err := os.Open(inputFile) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		log.Fatalf("Error opening input file: %v", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close input file")
		}
	}()

	transactions, format, err := p.Parse(file)
	if err != nil {
		log.Fatalf("Error parsing statement: %v", err)
	}
	if len(transactions) == 0 {
		log.Fatal("No transactions recognized in the statement")
	}

	if err := excel.WriteTransactions(transactions, outputFile, format, true); err != nil {
		log.Fatalf("Error writing Excel workbook: %v", err)
	}
	log.Info("Excel export completed successfully!")
}
