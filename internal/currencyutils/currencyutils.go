// Package currencyutils parses the amount encodings found in statement text.
package currencyutils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrYearNotAmount is returned when a candidate amount is a bare four-digit
// value in the 2000-2099 range with no decimal point. Statement headers carry
// years in the amount column's grammar, and without this guard a stray "2024"
// would be read as $2024.00. Callers skip the candidate instead of emitting a
// record.
var ErrYearNotAmount = errors.New("statement year captured as amount")

var nonAmountChars = regexp.MustCompile(`[^\d.]`)

// ParseAmount converts a raw amount substring to a signed decimal.
//
// Handled encodings, applied in order: a leading "-" or a full parenthesis
// wrap marks the value negative; currency markers ("$", "USD"), spaces and
// parentheses are stripped; a "," with no "." present acts as the decimal
// point; remaining commas are thousands separators. An empty residue parses
// as zero. The year guard fires after numeric parsing, on the original text.
func ParseAmount(text string) (decimal.Decimal, error) {
	t := strings.ReplaceAll(text, "USD", "")
	t = strings.ReplaceAll(t, " ", " ")
	t = strings.TrimSpace(t)

	neg := strings.HasPrefix(t, "-") || (strings.HasPrefix(t, "(") && strings.HasSuffix(t, ")"))

	if strings.Contains(t, ",") && !strings.Contains(t, ".") {
		t = strings.ReplaceAll(t, ",", ".")
	}
	replacer := strings.NewReplacer("(", "", ")", "", "$", "", " ", "", ",", "")
	t = replacer.Replace(t)

	if t == "" || t == "-" {
		return decimal.Zero, nil
	}

	val, err := decimal.NewFromString(t)
	if err != nil {
		digits := nonAmountChars.ReplaceAllString(t, "")
		if digits == "" {
			val = decimal.Zero
		} else if val, err = decimal.NewFromString(digits); err != nil {
			return decimal.Zero, err
		}
	}

	if !strings.Contains(text, ".") &&
		val.GreaterThanOrEqual(decimal.NewFromInt(2000)) &&
		val.LessThanOrEqual(decimal.NewFromInt(2099)) {
		return decimal.Zero, ErrYearNotAmount
	}

	if neg {
		return val.Abs().Neg(), nil
	}
	return val, nil
}
