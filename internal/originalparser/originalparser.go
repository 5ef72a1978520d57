// Package originalparser extracts transactions from statements in the
// original layout, where each transaction occupies a single text line holding
// a date, a description, an amount and an optional cardmember name.
package originalparser

import (
	"regexp"
	"strings"

	"spendsense/statement-csv/internal/currencyutils"
	"spendsense/statement-csv/internal/dateutils"
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

// The patterns are the ported line grammar; they must not be "improved", the
// statement format is externally fixed.
var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{1,2}\s+[A-Za-z]{3}\.?\s+\d{2,4}\b`),
		regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
	}
	amountRe       = regexp.MustCompile(`\(?-?\$?\s*[\d.,]+(?:\.\d{2}|,\d{2})?\)?`)
	digitRe        = regexp.MustCompile(`\d`)
	headerSingleRe = regexp.MustCompile(`(?i)^-?\s*\d{1,2}\s+[A-Za-z]{3}\.?$`)
	headerRangeRe  = regexp.MustCompile(`(?i)\b\d{1,2}\s+[A-Za-z]{3}\.?\s+\d{4}\s*-\s*\d{1,2}\s+[A-Za-z]{3}\.?\s+\d{4}\b`)
)

// cardmemberHints are the known cardmember name literals, longest first so
// that a full name wins over its components at the same position.
var cardmemberHints = []string{"JASON DIMAND", "GRIGORII VOLK", "GRIGORII", "JASON"}

// flexibleMarker is the trailing flexible-payment flag token.
const flexibleMarker = " FS"

// ParseDocument runs the line parser over every page of the document.
func ParseDocument(doc pdfextract.Document, yTol float64) []models.Transaction {
	return ParseLines(pdfextract.DocumentLines(doc, yTol))
}

// ParseLines classifies each line independently and returns the transactions
// found. Lines that are not transactions (page headers, date-range banners,
// amounts that are really years) are silently skipped; that is the dominant
// path through unstructured statement text, not an error.
func ParseLines(lines []string) []models.Transaction {
	var transactions []models.Transaction
	for _, raw := range lines {
		if tx, ok := parseLine(raw); ok {
			transactions = append(transactions, tx)
		}
	}
	log.Debug("Parsed original-format lines",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return transactions
}

func parseLine(raw string) (models.Transaction, bool) {
	line := textutils.CollapseWhitespace(raw)
	if line == "" {
		return models.Transaction{}, false
	}
	if headerRangeRe.MatchString(line) {
		return models.Transaction{}, false
	}

	var dateStr string
	for _, re := range datePatterns {
		if m := re.FindString(line); m != "" {
			dateStr = m
			break
		}
	}
	if dateStr == "" {
		return models.Transaction{}, false
	}

	var amounts []string
	for _, m := range amountRe.FindAllString(line, -1) {
		if digitRe.MatchString(m) {
			amounts = append(amounts, m)
		}
	}
	if len(amounts) == 0 {
		// No amount means a header fragment or other noise, never a record.
		return models.Transaction{}, false
	}
	// The amount column is rightmost in the source layout and descriptions may
	// contain digit-like substrings, so the last candidate is the amount.
	amountText := amounts[len(amounts)-1]

	foundCM := ""
	lastPos := -1
	for _, cm := range cardmemberHints {
		if pos := strings.LastIndex(line, cm); pos > lastPos {
			lastPos = pos
			foundCM = cm
		}
	}

	start := strings.Index(line, dateStr) + len(dateStr)
	end := strings.LastIndex(line, amountText)
	description := ""
	if end > start {
		description = strings.TrimSpace(line[start:end])
	}
	if foundCM != "" && strings.Contains(description, foundCM) {
		description = strings.TrimSpace(description[:strings.LastIndex(description, foundCM)])
	}
	description = strings.TrimSpace(strings.TrimRight(description, "-"))

	if headerSingleRe.MatchString(description) {
		return models.Transaction{}, false
	}

	flexible := strings.HasSuffix(description, flexibleMarker) || strings.HasSuffix(line, flexibleMarker)

	amount, err := currencyutils.ParseAmount(amountText)
	if err != nil {
		// Year guard or malformed residue: skip the candidate line entirely.
		log.Debug("Rejected amount candidate",
			logging.Field{Key: logging.FieldLine, Value: line},
			logging.Field{Key: logging.FieldReason, Value: err.Error()})
		return models.Transaction{}, false
	}

	date, err := dateutils.Normalize(dateStr)
	if err != nil {
		return models.Transaction{}, false
	}

	notes := ""
	if flexible {
		notes = "FS"
	}

	// Statements in this layout are already denominated consistently; no FX
	// conversion is modeled here.
	return models.Transaction{
		Date:           date,
		Description:    description,
		AmountCAD:      amount,
		Currency:       "USD",
		OriginalAmount: amount,
		ExchangeRate:   decimal.NewFromInt(1),
		Cardmember:     foundCM,
		Notes:          notes,
		Format:         models.FormatOriginal,
	}, true
}
