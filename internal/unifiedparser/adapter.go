package unifiedparser

import (
	"fmt"
	"io"
	"os"

	"spendsense/statement-csv/internal/logging"
	"spendsense/statement-csv/internal/models"
	"spendsense/statement-csv/internal/parser"
	"spendsense/statement-csv/internal/parsererror"
	"spendsense/statement-csv/internal/pdfextract"
)

// Adapter implements the models.Parser interface over the unified dispatcher.
type Adapter struct {
	parser.BaseParser
	extractor  pdfextract.Extractor
	yTolerance float64
	format     models.FormatType
}

// NewAdapter creates a new adapter with dependency injection. A nil extractor
// selects the in-process PDF reader.
func NewAdapter(logger logging.Logger, extractor pdfextract.Extractor) *Adapter {
	if extractor == nil {
		extractor = pdfextract.DefaultExtractor()
	}
	return &Adapter{
		BaseParser: parser.NewBaseParser(logger),
		extractor:  extractor,
		yTolerance: pdfextract.DefaultYTolerance,
	}
}

// SetYTolerance overrides the word-clustering vertical tolerance.
func (a *Adapter) SetYTolerance(yTol float64) {
	if yTol > 0 {
		a.yTolerance = yTol
	}
}

// SetFormat pins the adapter to one statement layout instead of detecting it.
// FormatUnknown restores auto-detection.
func (a *Adapter) SetFormat(format models.FormatType) {
	a.format = format
}

// Parse reads a PDF statement from r by spooling it to a temporary file, since
// PDF readers need random access, and runs the unified dispatcher over it.
func (a *Adapter) Parse(r io.Reader) ([]models.Transaction, models.FormatType, error) {
	tempFile, err := os.CreateTemp("", "*.pdf")
	if err != nil {
		return nil, models.FormatUnknown, fmt.Errorf("failed to create temporary PDF file: %w", err)
	}
	defer func() {
		if err := os.Remove(tempFile.Name()); err != nil {
			a.GetLogger().WithError(err).Warn("Failed to remove temporary file",
				logging.Field{Key: logging.FieldFile, Value: tempFile.Name()})
		}
	}()

	if _, err := io.Copy(tempFile, r); err != nil {
		_ = tempFile.Close()
		return nil, models.FormatUnknown, fmt.Errorf("failed to write temporary PDF file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return nil, models.FormatUnknown, fmt.Errorf("failed to close temporary PDF file: %w", err)
	}

	transactions, format := ParseFileAs(tempFile.Name(), a.format, a.extractor, a.yTolerance)
	return transactions, format, nil
}

// ConvertToCSV parses a statement file and writes the unified CSV.
func (a *Adapter) ConvertToCSV(inputFile, outputFile string) error {
	file, err := os.Open(inputFile) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return fmt.Errorf("error opening input file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			a.GetLogger().WithError(err).Warn("Failed to close input file",
				logging.Field{Key: logging.FieldFile, Value: inputFile})
		}
	}()

	transactions, format, err := a.Parse(file)
	if err != nil {
		return err
	}
	if len(transactions) == 0 {
		return &parsererror.DataExtractionError{
			FilePath:  inputFile,
			FieldName: "transactions",
			Reason:    "no transactions recognized in any supported statement layout",
		}
	}

	a.GetLogger().Info("Parsed statement",
		logging.Field{Key: logging.FieldFile, Value: inputFile},
		logging.Field{Key: logging.FieldFormat, Value: string(format)},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	return a.WriteToCSV(transactions, outputFile)
}

// ValidateFormat checks whether the file is a readable PDF the detector can
// classify or a parser can read.
func (a *Adapter) ValidateFormat(file string) (bool, error) {
	a.GetLogger().Info("Validating PDF statement",
		logging.Field{Key: logging.FieldFile, Value: file})

	doc, err := a.extractor.Open(file)
	if err != nil {
		a.GetLogger().WithError(err).Error("PDF validation failed")
		return false, nil
	}
	defer func() {
		_ = doc.Close()
	}()
	return doc.PageCount() > 0, nil
}
