// Package rbcparser extracts transactions from RBC-layout statements, where a
// transaction spans a block of lines: a header with paired transaction and
// posting dates, an optional foreign-currency line, and the amount either on
// the header or on a following line.
package rbcparser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"spendsense/statement-csv/internal/currencyutils"
	"spendsense/statement-csv/internal/logging"
	"spendsense/statement-csv/internal/models"
	"spendsense/statement-csv/internal/pdfextract"
	"spendsense/statement-csv/internal/textutils"

	"github.com/shopspring/decimal"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

const (
	// DefaultFallbackYear is assumed when no four-digit year appears in the
	// statement's leading lines.
	DefaultFallbackYear = 2025
	// yearScanLines bounds the header scan for year inference.
	yearScanLines = 80
)

// monthNumbers maps the fixed RBC month abbreviations to zero-padded numbers.
var monthNumbers = map[string]string{
	"JAN": "01", "FEB": "02", "MAR": "03", "APR": "04",
	"MAY": "05", "JUN": "06", "JUL": "07", "AUG": "08",
	"SEP": "09", "OCT": "10", "NOV": "11", "DEC": "12",
}

// balanceLabels start the running-balance lines that must never be read as a
// transaction amount.
var balanceLabels = []string{"TOTAL ACCOUNT BALANCE", "NEW BALANCE"}

// The patterns are the ported block grammar; they must not be "improved", the
// statement format is externally fixed.
var (
	txStartRe = regexp.MustCompile(
		`^(JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC) ` +
			`\d{2} (JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC) \d{2} `)
	headerRe    = regexp.MustCompile(`^([A-Z]{3}) (\d{2}) ([A-Z]{3}) (\d{2}) (.+)$`)
	fxRe        = regexp.MustCompile(`^Foreign Currency\s*-\s*([A-Z]{3})\s+([\d,]+\.\d{2})\s+Exchange rate\s*-\s*([.\d]+)$`)
	cadAnchorRe = regexp.MustCompile(`^(-?)\$\s*([\d,]+\.\d{2})$`)
	cadSearchRe = regexp.MustCompile(`(-?)\$\s*([\d,]+\.\d{2})`)
	yearRe      = regexp.MustCompile(`\b(20\d{2})\b`)
)

// ParseDocument gathers the document's full ordered line stream and parses it.
// Block grouping accumulates across page boundaries, so the stream must cover
// the whole document in order.
func ParseDocument(doc pdfextract.Document, yTol float64) []models.Transaction {
	return ParseLines(pdfextract.DocumentLines(doc, yTol))
}

// ParseLines groups the line stream into per-transaction blocks and parses
// each block. Blocks with no resolvable amount are dropped without error.
func ParseLines(lines []string) []models.Transaction {
	year := InferYear(lines, DefaultFallbackYear)
	groups := GroupBlocks(lines)

	var transactions []models.Transaction
	for _, group := range groups {
		if tx, ok := parseBlock(group, year); ok {
			transactions = append(transactions, tx)
		}
	}
	log.Debug("Parsed RBC blocks",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: "year", Value: year})
	return transactions
}

// InferYear scans the leading lines for four-digit years and returns the
// maximum found, or fallback when none appears. RBC lines encode only
// month and day; the statement header supplies the year, and the maximum
// covers December-to-January billing cycles where two years appear.
func InferYear(lines []string, fallback int) int {
	limit := len(lines)
	if limit > yearScanLines {
		limit = yearScanLines
	}
	year := 0
	for _, line := range lines[:limit] {
		for _, m := range yearRe.FindAllStringSubmatch(line, -1) {
			if y, err := strconv.Atoi(m[1]); err == nil && y > year {
				year = y
			}
		}
	}
	if year == 0 {
		return fallback
	}
	return year
}

// GroupBlocks splits the ordered line stream into per-transaction blocks.
// A line opens a new block iff it matches the record-start anchor; any other
// line is appended to the currently open block and discarded when no block is
// open yet. The trailing open block is closed at end of input.
func GroupBlocks(lines []string) [][]string {
	var groups [][]string
	var current []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if txStartRe.MatchString(trimmed) {
			if current != nil {
				groups = append(groups, current)
			}
			current = []string{trimmed}
		} else if current != nil {
			current = append(current, trimmed)
		}
	}
	if current != nil {
		groups = append(groups, current)
	}
	return groups
}

func parseBlock(group []string, year int) (models.Transaction, bool) {
	txDate, postingDate, description, ok := parseHeader(group[0], year)
	if !ok {
		return models.Transaction{}, false
	}

	fxCurrency, fxAmount, fxRate, haveFx := "", decimal.Zero, decimal.Zero, false
	for _, line := range group[1:] {
		if !strings.HasPrefix(line, "Foreign Currency") {
			continue
		}
		if cur, amt, rate, ok := parseFxLine(line); ok {
			fxCurrency, fxAmount, fxRate, haveFx = cur, amt, rate, true
			break
		}
	}

	cadAmount, haveCad := parseCadAmount(group[0])
	if !haveCad {
		for _, line := range group[1:] {
			if isBalanceLine(line) {
				continue
			}
			if val, ok := parseCadAmount(line); ok {
				cadAmount, haveCad = val, true
			}
		}
	}
	if !haveCad {
		return models.Transaction{}, false
	}

	currency := "CAD"
	originalAmount := cadAmount
	rate := decimal.NewFromInt(1)
	if haveFx {
		// Re-sign the captured foreign magnitude to match the CAD amount.
		currency = fxCurrency
		rate = fxRate
		if cadAmount.IsNegative() {
			originalAmount = fxAmount.Neg()
		} else {
			originalAmount = fxAmount
		}
	}

	return models.Transaction{
		Date:            txDate,
		Description:     description,
		AmountCAD:       cadAmount,
		Currency:        currency,
		OriginalAmount:  originalAmount,
		ExchangeRate:    rate,
		PostingDate:     postingDate,
		MerchantCountry: textutils.InferCountry(description),
		Notes:           "",
		Format:          models.FormatRbc,
	}, true
}

func parseHeader(line string, year int) (txDate, postingDate, description string, ok bool) {
	m := headerRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", "", "", false
	}
	m1, ok1 := monthNumbers[m[1]]
	m2, ok2 := monthNumbers[m[3]]
	if !ok1 || !ok2 {
		return "", "", "", false
	}
	txDate = fmt.Sprintf("%d-%s-%s", year, m1, m[2])
	postingDate = fmt.Sprintf("%d-%s-%s", year, m2, m[4])
	return txDate, postingDate, strings.TrimSpace(m[5]), true
}

func parseFxLine(line string) (currency string, amount, rate decimal.Decimal, ok bool) {
	m := fxRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", decimal.Zero, decimal.Zero, false
	}
	amount, err := currencyutils.ParseAmount(m[2])
	if err != nil {
		return "", decimal.Zero, decimal.Zero, false
	}
	rate, err = decimal.NewFromString(m[3])
	if err != nil {
		return "", decimal.Zero, decimal.Zero, false
	}
	return m[1], amount, rate, true
}

// parseCadAmount reads a CAD amount off a line: a whole-line match first,
// then a substring match anywhere on the line.
func parseCadAmount(line string) (decimal.Decimal, bool) {
	line = strings.TrimSpace(line)
	m := cadAnchorRe.FindStringSubmatch(line)
	if m == nil {
		m = cadSearchRe.FindStringSubmatch(line)
	}
	if m == nil {
		return decimal.Zero, false
	}
	val, err := currencyutils.ParseAmount(m[2])
	if err != nil {
		return decimal.Zero, false
	}
	if m[1] == "-" {
		val = val.Neg()
	}
	return val, true
}

func isBalanceLine(line string) bool {
	for _, label := range balanceLabels {
		if strings.HasPrefix(line, label) {
			return true
		}
	}
	return false
}
