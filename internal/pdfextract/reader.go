package pdfextract

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// wordGap is the maximum horizontal distance, in points, between two text
// runs that still belong to the same printed word.
const wordGap = 1.5

// ReaderExtractor opens PDFs in-process with the ledongthuc/pdf reader.
// This is the default production extractor.
type ReaderExtractor struct{}

// NewReaderExtractor creates a new in-process PDF extractor.
func NewReaderExtractor() *ReaderExtractor {
	return &ReaderExtractor{}
}

// Open opens the PDF at path. The returned document must be closed.
func (e *ReaderExtractor) Open(path string) (Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening PDF: %w", err)
	}
	return &readerDocument{file: f, reader: r}, nil
}

type readerDocument struct {
	file   *os.File
	reader *pdf.Reader
}

func (d *readerDocument) PageCount() int {
	return d.reader.NumPage()
}

// ExtractText rebuilds the page's text line by line from the reader's
// row-grouped output. Runs inside a row are merged into words on the same
// gap rule ExtractWords uses, so both paths produce comparable lines.
func (d *readerDocument) ExtractText(page int) (string, error) {
	p := d.reader.Page(page + 1)
	if p.V.IsNull() {
		return "", nil
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return "", fmt.Errorf("error extracting page text: %w", err)
	}
	var b strings.Builder
	for _, row := range rows {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(joinRuns(row.Content))
	}
	return b.String(), nil
}

// joinRuns concatenates a row's text runs, inserting spaces only at word
// boundaries (horizontal gaps wider than wordGap).
func joinRuns(runs []pdf.Text) string {
	var b strings.Builder
	var prevEnd float64
	for i, run := range runs {
		if i > 0 && run.X-prevEnd > wordGap {
			b.WriteByte(' ')
		}
		b.WriteString(run.S)
		prevEnd = run.X + run.W
	}
	return b.String()
}

// ExtractWords assembles the page's raw text runs into positioned words.
// Runs sharing a baseline are merged while the horizontal gap between them
// stays below wordGap. PDF coordinates grow upward, so Top is the negated Y
// to give the top-to-bottom order the line clustering expects.
func (d *readerDocument) ExtractWords(page int) ([]Word, error) {
	p := d.reader.Page(page + 1)
	if p.V.IsNull() {
		return nil, nil
	}
	runs := p.Content().Text
	if len(runs) == 0 {
		return nil, nil
	}

	sorted := make([]pdf.Text, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var words []Word
	var cur *Word
	var curEnd float64
	for _, run := range sorted {
		top := -run.Y
		if cur != nil && top == cur.Top && run.X-curEnd <= wordGap {
			cur.Text += run.S
			curEnd = run.X + run.W
			continue
		}
		if cur != nil {
			words = append(words, *cur)
		}
		cur = &Word{Text: run.S, X0: run.X, Top: top}
		curEnd = run.X + run.W
	}
	if cur != nil {
		words = append(words, *cur)
	}
	return words, nil
}

func (d *readerDocument) Close() error {
	return d.file.Close()
}
