package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Internal runs", "STARBUCKS   COFFEE\t#123", "STARBUCKS COFFEE #123"},
		{"Leading and trailing", "  AMAZON.CA  ", "AMAZON.CA"},
		{"Newlines", "LINE\nBREAK", "LINE BREAK"},
		{"Already clean", "CLEAN", "CLEAN"},
		{"Empty", "", ""},
		{"Only whitespace", " \t\n ", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CollapseWhitespace(tc.input))
		})
	}
}

func TestInferCountry(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expected    string
	}{
		{"Trailing code", "AMAZON.CA TORONTO CAN", "CAN"},
		{"Code mid-string ignored when later token matches", "CAN AIR FRANCE PARIS FRA", "FRA"},
		{"Code only mid-string still found", "USA PARKING LOT 42", "USA"},
		{"No code", "LOCAL GROCERY STORE", ""},
		{"Lowercase not a code", "coffee can opener", ""},
		{"Empty description", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, InferCountry(tc.description))
		})
	}
}
