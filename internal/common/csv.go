// Package common provides shared functionality across different parsers.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"spendsense/statement-csv/internal/logging"
	"spendsense/statement-csv/internal/models"

	"github.com/gocarina/gocsv"
)

var log = logging.GetLogger()

// Delimiter is the global CSV delimiter, configurable via SetDelimiter or the
// CSV_DELIMITER environment variable.
var Delimiter rune = ','

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter allows setting the delimiter for CSV output
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// SetLogger allows setting a configured logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// WriteTransactionsToCSV writes transactions to a CSV file in the unified
// export layout, stably sorted by date then description. All parsers use this
// function so that CSV output is identical regardless of the source format.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.Info("Writing transactions to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	sorted := models.SortForExport(transactions)

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(&sorted, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal transactions to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.Info("Successfully wrote transactions to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(sorted)})

	return nil
}

// ReadTransactionsFromCSV reads a unified-layout CSV back into transactions.
func ReadTransactionsFromCSV(csvFile string) ([]models.Transaction, error) {
	log.Info("Reading CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile})

	file, err := os.Open(csvFile)
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var transactions []models.Transaction
	if err := gocsv.UnmarshalCSV(newDelimitedReader(file), &transactions); err != nil {
		log.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.Info("Successfully read CSV data",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return transactions, nil
}

func newDelimitedReader(file *os.File) *csv.Reader {
	r := csv.NewReader(file)
	r.Comma = Delimiter
	return r
}
