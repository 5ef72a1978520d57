package pdfextract

import "os"

// DefaultExtractor selects the extractor implementation from the
// PDF_EXTRACTOR environment variable: "pdftotext" runs the poppler tools,
// anything else uses the in-process reader.
func DefaultExtractor() Extractor {
	if os.Getenv("PDF_EXTRACTOR") == "pdftotext" {
		return NewCommandExtractor()
	}
	return NewReaderExtractor()
}
