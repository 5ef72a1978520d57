package models

import (
	"io"

	"spendsense/statement-csv/internal/logging"
)

// Parser defines the interface for all statement parser implementations.
type Parser interface {
	// Parse reads a PDF statement from r and returns the parsed transactions
	// together with the format that produced them. A document that yields no
	// transactions is not an error; it returns an empty slice and FormatUnknown.
	Parse(r io.Reader) ([]Transaction, FormatType, error)
	ConvertToCSV(inputFile, outputFile string) error
	WriteToCSV(transactions []Transaction, csvFile string) error
	SetLogger(logger logging.Logger)
	ValidateFormat(file string) (bool, error)
}
