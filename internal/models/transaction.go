// Package models provides the data structures used throughout the application.
package models

import (
	"sort"

	"github.com/shopspring/decimal"

	"spendsense/statement-csv/internal/parsererror"
)

// FormatType identifies which statement layout a transaction was parsed from.
type FormatType string

const (
	// FormatOriginal marks transactions from the original statement layout.
	FormatOriginal FormatType = "original"
	// FormatRbc marks transactions from the RBC statement layout.
	FormatRbc FormatType = "rbc"
	// FormatUnknown marks an inconclusive parse.
	FormatUnknown FormatType = "unknown"
)

// Transaction is the unified record produced by every statement parser.
// Amounts are always carried in the statement's home currency (CAD) with the
// sign convention: positive = spending/charge, negative = payment/credit.
// Records are constructed once by a parser and never mutated afterwards.
type Transaction struct {
	Date            string          `csv:"Date"`             // Transaction date, ISO YYYY-MM-DD
	Description     string          `csv:"Description"`      // Whitespace-normalized merchant/memo text
	AmountCAD       decimal.Decimal `csv:"Amount_CAD"`       // Signed amount in CAD
	Currency        string          `csv:"Currency"`         // Original transaction currency
	OriginalAmount  decimal.Decimal `csv:"Original_Amount"`  // Signed amount in Currency
	ExchangeRate    decimal.Decimal `csv:"Exchange_Rate"`    // Positive rate, 1 when Currency is the base
	Cardmember      string          `csv:"Cardmember"`       // Original layout only
	PostingDate     string          `csv:"Posting_Date"`     // RBC layout only, ISO YYYY-MM-DD
	MerchantCountry string          `csv:"Merchant_Country"` // RBC layout only, 3-letter code
	Notes           string          `csv:"Notes"`            // Annotation such as the flexible-payment flag, never null
	Format          FormatType      `csv:"Format"`           // Which parser produced the record
}

// IsSpending reports whether the transaction is a charge (positive CAD amount).
func (t *Transaction) IsSpending() bool {
	return t.AmountCAD.GreaterThan(decimal.Zero)
}

// IsPayment reports whether the transaction is a payment or credit (negative CAD amount).
func (t *Transaction) IsPayment() bool {
	return t.AmountCAD.LessThan(decimal.Zero)
}

// MarshalCSV renders the record in the unified export layout: amounts with two
// decimal places, the exchange rate with six.
func (t *Transaction) MarshalCSV() ([]string, error) {
	return []string{
		t.Date,
		t.Description,
		t.AmountCAD.StringFixed(2),
		t.Currency,
		t.OriginalAmount.StringFixed(2),
		t.ExchangeRate.StringFixed(6),
		t.Cardmember,
		t.PostingDate,
		t.MerchantCountry,
		t.Notes,
		string(t.Format),
	}, nil
}

func (t *Transaction) UnmarshalCSV(record []string) error {
	t.Date = record[0]
	t.Description = record[1]
	var err error
	t.AmountCAD, err = decimal.NewFromString(record[2])
	if err != nil {
		return &parsererror.ParseError{Parser: "csv", Field: "Amount_CAD", Value: record[2], Err: err}
	}
	t.Currency = record[3]
	t.OriginalAmount, err = decimal.NewFromString(record[4])
	if err != nil {
		return &parsererror.ParseError{Parser: "csv", Field: "Original_Amount", Value: record[4], Err: err}
	}
	t.ExchangeRate, err = decimal.NewFromString(record[5])
	if err != nil {
		return &parsererror.ParseError{Parser: "csv", Field: "Exchange_Rate", Value: record[5], Err: err}
	}
	t.Cardmember = record[6]
	t.PostingDate = record[7]
	t.MerchantCountry = record[8]
	t.Notes = record[9]
	t.Format = FormatType(record[10])
	return nil
}

// SortForExport orders a copy of the transactions by (Date, Description) with
// a stable sort, leaving the parse-order slice untouched.
func SortForExport(transactions []Transaction) []Transaction {
	sorted := make([]Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].Description < sorted[j].Description
	})
	return sorted
}
