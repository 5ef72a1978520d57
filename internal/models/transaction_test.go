package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendsense/statement-csv/internal/parsererror"
)

func TestIsSpendingAndIsPayment(t *testing.T) {
	spend := Transaction{AmountCAD: decimal.NewFromFloat(12.45)}
	payment := Transaction{AmountCAD: decimal.NewFromFloat(-500)}
	zero := Transaction{}

	assert.True(t, spend.IsSpending())
	assert.False(t, spend.IsPayment())
	assert.True(t, payment.IsPayment())
	assert.False(t, payment.IsSpending())
	assert.False(t, zero.IsSpending())
	assert.False(t, zero.IsPayment())
}

func TestMarshalCSVFixedPrecision(t *testing.T) {
	tx := Transaction{
		Date:           "2024-01-15",
		Description:    "AMAZON.CA TORONTO CAN",
		AmountCAD:      decimal.NewFromFloat(45.9),
		Currency:       "USD",
		OriginalAmount: decimal.NewFromFloat(32.5),
		ExchangeRate:   decimal.NewFromFloat(1.41),
		Format:         FormatRbc,
	}

	record, err := tx.MarshalCSV()

	require.NoError(t, err)
	require.Len(t, record, 11)
	assert.Equal(t, "45.90", record[2])
	assert.Equal(t, "32.50", record[4])
	assert.Equal(t, "1.410000", record[5])
	assert.Equal(t, "rbc", record[10])
}

func TestUnmarshalCSVRoundTrip(t *testing.T) {
	original := Transaction{
		Date:            "2024-01-15",
		Description:     "AMAZON.CA TORONTO CAN",
		AmountCAD:       decimal.NewFromFloat(45.99),
		Currency:        "USD",
		OriginalAmount:  decimal.NewFromFloat(32.50),
		ExchangeRate:    decimal.NewFromFloat(1.41),
		PostingDate:     "2024-01-16",
		MerchantCountry: "CAN",
		Format:          FormatRbc,
	}
	record, err := original.MarshalCSV()
	require.NoError(t, err)

	var decoded Transaction
	require.NoError(t, decoded.UnmarshalCSV(record))

	assert.Equal(t, original.Date, decoded.Date)
	assert.Equal(t, original.Description, decoded.Description)
	assert.True(t, original.AmountCAD.Equal(decoded.AmountCAD))
	assert.True(t, original.ExchangeRate.Equal(decoded.ExchangeRate))
	assert.Equal(t, original.Format, decoded.Format)
}

func TestUnmarshalCSVBadAmount(t *testing.T) {
	var tx Transaction
	record := []string{"2024-01-15", "X", "not-a-number", "CAD", "0", "1", "", "", "", "", "rbc"}

	err := tx.UnmarshalCSV(record)

	var parseErr *parsererror.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "Amount_CAD", parseErr.Field)
	assert.Equal(t, "not-a-number", parseErr.Value)
}

func TestSortForExport(t *testing.T) {
	transactions := []Transaction{
		{Date: "2024-01-16", Description: "B"},
		{Date: "2024-01-15", Description: "Z"},
		{Date: "2024-01-16", Description: "A"},
	}

	sorted := SortForExport(transactions)

	assert.Equal(t, "Z", sorted[0].Description)
	assert.Equal(t, "A", sorted[1].Description)
	assert.Equal(t, "B", sorted[2].Description)
	// The input slice is left in parse order.
	assert.Equal(t, "B", transactions[0].Description)
}
