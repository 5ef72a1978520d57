// Package textutils provides text extraction and manipulation utilities.
package textutils

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CollapseWhitespace replaces internal whitespace runs with single spaces and
// trims the ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// CountryCodes is the closed set of merchant country codes that appear as
// trailing description tokens in RBC statements.
var CountryCodes = map[string]bool{
	"CAN": true, "USA": true, "POL": true, "DEU": true, "ESP": true,
	"CZE": true, "HUN": true, "CHE": true, "AUT": true, "LTU": true,
	"LVA": true, "EST": true, "GRC": true, "FRA": true, "ITA": true,
	"GBR": true, "IRL": true, "NLD": true, "BEL": true, "PRT": true,
	"SVK": true, "SVN": true, "HRV": true, "ROU": true, "BGR": true,
	"MNE": true, "SRB": true, "BIH": true, "MKD": true, "ALB": true,
	"CYP": true, "MLT": true, "SWE": true, "NOR": true, "FIN": true,
	"DNK": true, "ISL": true, "TUR": true,
}

// InferCountry scans description tokens from the end and returns the first
// one that exactly matches a known country code. Country codes trail the
// merchant name in these statements, so only the last matching token counts.
func InferCountry(description string) string {
	tokens := strings.Fields(description)
	for i := len(tokens) - 1; i >= 0; i-- {
		if CountryCodes[tokens[i]] {
			return tokens[i]
		}
	}
	return ""
}
