package pdfextract

import (
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

var pagesLineRe = regexp.MustCompile(`(?m)^Pages:\s+(\d+)`)

// CommandExtractor shells out to the poppler pdftotext/pdfinfo tools. It is an
// alternative to ReaderExtractor for PDFs whose text layer the in-process
// reader cannot decode; it requires poppler-utils to be installed.
type CommandExtractor struct{}

// NewCommandExtractor creates a pdftotext-backed extractor.
func NewCommandExtractor() *CommandExtractor {
	return &CommandExtractor{}
}

// Open probes the document with pdfinfo and returns a lazy page reader.
func (e *CommandExtractor) Open(path string) (Document, error) {
	out, err := exec.Command("pdfinfo", path).Output()
	if err != nil {
		return nil, fmt.Errorf("error running pdfinfo: %w", err)
	}
	m := pagesLineRe.FindSubmatch(out)
	if m == nil {
		return nil, fmt.Errorf("pdfinfo reported no page count for %s", path)
	}
	pages, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return nil, fmt.Errorf("error parsing page count: %w", err)
	}
	return &commandDocument{path: path, pages: pages}, nil
}

type commandDocument struct {
	path  string
	pages int
}

func (d *commandDocument) PageCount() int {
	return d.pages
}

func (d *commandDocument) ExtractText(page int) (string, error) {
	n := strconv.Itoa(page + 1)
	cmd := exec.Command("pdftotext", "-layout", "-f", n, "-l", n, d.path, "-")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running pdftotext: %w", err)
	}
	// pdftotext terminates each page with a form feed
	return strings.TrimRight(out.String(), "\f"), nil
}

// ExtractWords is not available through pdftotext; callers fall back to the
// text path only.
func (d *commandDocument) ExtractWords(page int) ([]Word, error) {
	return nil, fmt.Errorf("word extraction not supported by pdftotext")
}

func (d *commandDocument) Close() error { return nil }
