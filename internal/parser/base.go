// Package parser provides the base parser functionality shared by the
// statement parser implementations.
package parser

import (
	"spendsense/statement-csv/internal/common"
	"spendsense/statement-csv/internal/logging"
	"spendsense/statement-csv/internal/models"
)

// BaseParser provides common functionality for all parser implementations.
// Parsers embed BaseParser to inherit logger handling and CSV writing:
//
//	type MyParser struct {
//		parser.BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a new BaseParser instance with the provided logger.
// If logger is nil, the default logger is used.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return BaseParser{logger: logger}
}

// SetLogger allows parsers to replace their logging instance.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// WriteToCSV writes transactions with the standardized unified CSV writer so
// that every parser produces identical output files.
func (b *BaseParser) WriteToCSV(transactions []models.Transaction, csvFile string) error {
	b.logger.Info("Writing transactions to CSV using common writer",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	return common.WriteTransactionsToCSV(transactions, csvFile)
}
