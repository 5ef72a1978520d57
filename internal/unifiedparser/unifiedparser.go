// Package unifiedparser dispatches a statement document to the parser that
// matches its detected layout and owns the fallback policy when detection is
// inconclusive.
package unifiedparser

import (
	"spendsense/statement-csv/internal/detector"
	"spendsense/statement-csv/internal/logging"
	"spendsense/statement-csv/internal/models"
	"spendsense/statement-csv/internal/originalparser"
	"spendsense/statement-csv/internal/pdfextract"
	"spendsense/statement-csv/internal/rbcparser"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
		originalparser.SetLogger(logger)
		rbcparser.SetLogger(logger)
	}
}

// ParseDocument detects the document's layout and runs the matching parser.
//
// When detection is inconclusive the original-format parser is attempted
// first, then the RBC parser; the first one to yield records wins. A document
// neither parser can read returns an empty slice tagged FormatUnknown — total
// failure is represented in the result, never as an error crossing this
// boundary.
func ParseDocument(doc pdfextract.Document, yTol float64) ([]models.Transaction, models.FormatType) {
	format := detector.DetectDocument(doc, log)
	log.Info("Detected statement format",
		logging.Field{Key: logging.FieldFormat, Value: string(format)})

	switch format {
	case models.FormatOriginal:
		return originalparser.ParseDocument(doc, yTol), models.FormatOriginal
	case models.FormatRbc:
		return rbcparser.ParseDocument(doc, yTol), models.FormatRbc
	}

	// Inconclusive detection: ordered fallback on explicit empty results.
	if txs := originalparser.ParseDocument(doc, yTol); len(txs) > 0 {
		log.Info("Fallback parse succeeded",
			logging.Field{Key: logging.FieldFormat, Value: string(models.FormatOriginal)},
			logging.Field{Key: logging.FieldCount, Value: len(txs)})
		return txs, models.FormatOriginal
	}
	if txs := rbcparser.ParseDocument(doc, yTol); len(txs) > 0 {
		log.Info("Fallback parse succeeded",
			logging.Field{Key: logging.FieldFormat, Value: string(models.FormatRbc)},
			logging.Field{Key: logging.FieldCount, Value: len(txs)})
		return txs, models.FormatRbc
	}

	log.Warn("No parser produced transactions for document")
	return []models.Transaction{}, models.FormatUnknown
}

// ParseDocumentAs runs a specific parser over doc, skipping detection.
// FormatUnknown falls back to detection via ParseDocument.
func ParseDocumentAs(doc pdfextract.Document, format models.FormatType, yTol float64) ([]models.Transaction, models.FormatType) {
	switch format {
	case models.FormatOriginal:
		return originalparser.ParseDocument(doc, yTol), models.FormatOriginal
	case models.FormatRbc:
		return rbcparser.ParseDocument(doc, yTol), models.FormatRbc
	}
	return ParseDocument(doc, yTol)
}

// ParseFile opens the file with the given extractor and parses it. Open
// failures degrade to an empty result: an unreadable document has no
// transactions, it is not a fatal condition at this layer.
func ParseFile(path string, extractor pdfextract.Extractor, yTol float64) ([]models.Transaction, models.FormatType) {
	return ParseFileAs(path, models.FormatUnknown, extractor, yTol)
}

// ParseFileAs is ParseFile with a pinned layout; FormatUnknown auto-detects.
func ParseFileAs(path string, format models.FormatType, extractor pdfextract.Extractor, yTol float64) ([]models.Transaction, models.FormatType) {
	doc, err := extractor.Open(path)
	if err != nil {
		log.WithError(err).Warn("Could not open document",
			logging.Field{Key: logging.FieldFile, Value: path})
		return []models.Transaction{}, models.FormatUnknown
	}
	defer func() {
		if err := doc.Close(); err != nil {
			log.WithError(err).Warn("Failed to close document",
				logging.Field{Key: logging.FieldFile, Value: path})
		}
	}()
	return ParseDocumentAs(doc, format, yTol)
}
