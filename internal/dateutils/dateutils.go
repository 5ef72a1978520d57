// Package dateutils normalizes the date encodings found in statement text.
package dateutils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidCalendarDate is returned when a date string matches a known
// pattern but names an impossible calendar day, e.g. "31 Feb 2024".
var ErrInvalidCalendarDate = errors.New("invalid calendar date")

// Months maps the fixed three-letter abbreviations to month numbers.
var Months = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "May": 5, "Jun": 6,
	"Jul": 7, "Aug": 8, "Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

var (
	longFormRe  = regexp.MustCompile(`^\s*(\d{1,2})\s+([A-Za-z]{3})\.?\s+(\d{2,4})\s*$`)
	slashFormRe = regexp.MustCompile(`^\s*(\d{1,2})/(\d{1,2})/(\d{2,4})\s*$`)
)

// Normalize converts a statement date string to ISO YYYY-MM-DD.
//
// Two surface forms are recognized: "D Mon YY[YY]" and "D/M/YY[YY]". Two-digit
// years are always interpreted as 20YY. For the slash form, a month above 12
// with a day of 12 or less is treated as a swapped day/month pair. Input that
// matches neither form passes through trimmed and unchanged; callers must
// tolerate non-ISO strings in pathological inputs. A long-form date that fails
// calendar validation returns ErrInvalidCalendarDate so that the caller can
// reject the surrounding line; a slash-form date that fails validation passes
// through trimmed, matching the source grammar's tolerance.
func Normalize(s string) (string, error) {
	if m := longFormRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		abbr := strings.ToUpper(m[2][:1]) + strings.ToLower(m[2][1:])
		if month, ok := Months[abbr]; ok {
			if !validDay(year, month, day) {
				return "", fmt.Errorf("%w: %q", ErrInvalidCalendarDate, strings.TrimSpace(s))
			}
			return isoDate(year, month, day), nil
		}
		return strings.TrimSpace(s), nil
	}

	if m := slashFormRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		if month > 12 && day <= 12 {
			day, month = month, day
		}
		if month < 1 || month > 12 || !validDay(year, month, day) {
			return strings.TrimSpace(s), nil
		}
		return isoDate(year, month, day), nil
	}

	return strings.TrimSpace(s), nil
}

// IsISO reports whether s is a fully resolved ISO calendar date.
func IsISO(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validDay(year, month, day int) bool {
	if day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

func isoDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
