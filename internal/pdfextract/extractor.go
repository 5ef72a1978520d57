// Package pdfextract provides the document text and word-box extraction the
// statement parsers consume, behind an interface so that parsers can be tested
// without real PDF files.
package pdfextract

// Word is a positioned text fragment on a page. X0 is the horizontal start of
// the fragment; Top grows downward so that sorting ascending Top walks the
// page top to bottom.
type Word struct {
	Text string
	X0   float64
	Top  float64
}

// Document is an open statement document. Pages are zero-indexed.
type Document interface {
	// PageCount returns the number of pages in the document.
	PageCount() int
	// ExtractText returns the raw text of a page. It may return an empty
	// string for pages whose text layer is unusable.
	ExtractText(page int) (string, error)
	// ExtractWords returns the positioned word boxes of a page. Used as a
	// fallback when ExtractText yields nothing.
	ExtractWords(page int) ([]Word, error)
	// Close releases the underlying file.
	Close() error
}

// Extractor opens statement documents from disk.
type Extractor interface {
	Open(path string) (Document, error)
}

// MockDocument implements Document with predefined page content for tests.
type MockDocument struct {
	PageTexts []string
	PageWords [][]Word
	TextErr   error
}

// NewMockDocument creates a MockDocument serving the given page texts.
func NewMockDocument(pageTexts ...string) *MockDocument {
	return &MockDocument{PageTexts: pageTexts}
}

func (d *MockDocument) PageCount() int {
	if len(d.PageWords) > len(d.PageTexts) {
		return len(d.PageWords)
	}
	return len(d.PageTexts)
}

func (d *MockDocument) ExtractText(page int) (string, error) {
	if d.TextErr != nil {
		return "", d.TextErr
	}
	if page < 0 || page >= len(d.PageTexts) {
		return "", nil
	}
	return d.PageTexts[page], nil
}

func (d *MockDocument) ExtractWords(page int) ([]Word, error) {
	if page < 0 || page >= len(d.PageWords) {
		return nil, nil
	}
	return d.PageWords[page], nil
}

func (d *MockDocument) Close() error { return nil }

// MockExtractor implements Extractor returning a fixed document or error.
type MockExtractor struct {
	Doc Document
	Err error
}

func (e *MockExtractor) Open(path string) (Document, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	return e.Doc, nil
}
