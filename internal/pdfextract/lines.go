package pdfextract

import (
	"math"
	"sort"
	"strings"
)

// DefaultYTolerance is the vertical-pixel threshold under which two words are
// considered to sit on the same printed row.
const DefaultYTolerance = 3

// LinesFromWords reconstructs a page's text lines from its word boxes. Words
// are bucketed by round(Top/yTol) so that minor baseline jitter collapses to
// one row, then joined left to right with single spaces. Buckets are emitted
// in top-to-bottom order.
func LinesFromWords(words []Word, yTol float64) []string {
	if len(words) == 0 {
		return nil
	}
	if yTol <= 0 {
		yTol = DefaultYTolerance
	}

	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		ki := math.Round(sorted[i].Top / yTol)
		kj := math.Round(sorted[j].Top / yTol)
		if ki != kj {
			return ki < kj
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var lines []string
	var current []string
	curKey := math.Inf(-1)
	for _, w := range sorted {
		key := math.Round(w.Top / yTol)
		if key != curKey && len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = current[:0]
		}
		curKey = key
		current = append(current, w.Text)
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

// PageLines returns a page's text as ordered lines, falling back to word
// clustering when direct text extraction yields nothing usable. Extraction
// failures degrade to an empty result rather than an error.
func PageLines(doc Document, page int, yTol float64) []string {
	text, err := doc.ExtractText(page)
	if err == nil && strings.TrimSpace(text) != "" {
		return splitLines(text)
	}
	words, err := doc.ExtractWords(page)
	if err != nil {
		return nil
	}
	return LinesFromWords(words, yTol)
}

// DocumentLines returns every non-empty line of the document in page order.
func DocumentLines(doc Document, yTol float64) []string {
	var lines []string
	for page := 0; page < doc.PageCount(); page++ {
		for _, line := range PageLines(doc, page, yTol) {
			line = strings.TrimRight(line, " \t\r")
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
