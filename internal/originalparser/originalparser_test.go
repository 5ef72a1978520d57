package originalparser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendsense/statement-csv/internal/models"
	"spendsense/statement-csv/internal/pdfextract"
)

func TestParseLinesSingleTransaction(t *testing.T) {
	lines := []string{"15 Jan 2024 STARBUCKS COFFEE #123 12.45"}

	transactions := ParseLines(lines)

	require.Len(t, transactions, 1)
	tx := transactions[0]
	assert.Equal(t, "2024-01-15", tx.Date)
	assert.Equal(t, "STARBUCKS COFFEE #123", tx.Description)
	assert.True(t, decimal.NewFromFloat(12.45).Equal(tx.AmountCAD))
	assert.Equal(t, "USD", tx.Currency)
	assert.True(t, decimal.NewFromInt(1).Equal(tx.ExchangeRate))
	assert.True(t, tx.OriginalAmount.Equal(tx.AmountCAD))
	assert.Empty(t, tx.Cardmember)
	assert.Equal(t, models.FormatOriginal, tx.Format)
}

func TestParseLinesCardmember(t *testing.T) {
	lines := []string{"3 Feb 2024 UBER TRIP JASON DIMAND 24.50"}

	transactions := ParseLines(lines)

	require.Len(t, transactions, 1)
	tx := transactions[0]
	assert.Equal(t, "2024-02-03", tx.Date)
	assert.Equal(t, "JASON DIMAND", tx.Cardmember)
	// The cardmember tail is trimmed off the description.
	assert.Equal(t, "UBER TRIP", tx.Description)
}

func TestParseLinesFullNameWinsOverComponent(t *testing.T) {
	lines := []string{"3 Feb 2024 PAYMENT GRIGORII VOLK 100.00"}

	transactions := ParseLines(lines)

	require.Len(t, transactions, 1)
	assert.Equal(t, "GRIGORII VOLK", transactions[0].Cardmember)
}

func TestParseLinesFlexibleFlag(t *testing.T) {
	lines := []string{"15 Jan 2024 AIR CANADA TICKET 845.00 FS"}

	transactions := ParseLines(lines)

	require.Len(t, transactions, 1)
	assert.Equal(t, "FS", transactions[0].Notes)
}

func TestParseLinesNegativeAmount(t *testing.T) {
	lines := []string{"20 Jan 2024 PAYMENT RECEIVED -500.00"}

	transactions := ParseLines(lines)

	require.Len(t, transactions, 1)
	assert.True(t, decimal.NewFromInt(-500).Equal(transactions[0].AmountCAD))
	assert.True(t, transactions[0].IsPayment())
}

func TestParseLinesRightmostAmountWins(t *testing.T) {
	// Descriptions can carry digit runs; the amount column is rightmost.
	lines := []string{"15 Jan 2024 HOTEL 4 NIGHTS ROOM 217 312.80"}

	transactions := ParseLines(lines)

	require.Len(t, transactions, 1)
	assert.True(t, decimal.NewFromFloat(312.80).Equal(transactions[0].AmountCAD))
	assert.Equal(t, "HOTEL 4 NIGHTS ROOM 217", transactions[0].Description)
}

func TestParseLinesSkipsNonTransactions(t *testing.T) {
	lines := []string{
		"",
		"MONTHLY STATEMENT",
		"15 Jan 2024 - 14 Feb 2024",      // date-range banner
		"Account activity with no date",   // no date
		"15 Jan 2024 opening page 2024",   // amount is really a year
		"15 Jan 2024",                     // date with no amount
	}

	assert.Empty(t, ParseLines(lines))
}

func TestParseLinesInvalidCalendarDateRejected(t *testing.T) {
	lines := []string{"31 Feb 2024 GHOST CHARGE 10.00"}

	assert.Empty(t, ParseLines(lines))
}

func TestParseLinesSlashDate(t *testing.T) {
	lines := []string{"15/1/2024 GROCERY MART 88.20"}

	transactions := ParseLines(lines)

	require.Len(t, transactions, 1)
	assert.Equal(t, "2024-01-15", transactions[0].Date)
}

func TestParseDocument(t *testing.T) {
	doc := pdfextract.NewMockDocument(
		"15 Jan 2024 STARBUCKS COFFEE #123 12.45\n16 Jan 2024 GROCERY MART 88.20",
		"17 Jan 2024 UBER TRIP JASON DIMAND 24.50",
	)

	transactions := ParseDocument(doc, pdfextract.DefaultYTolerance)

	require.Len(t, transactions, 3)
	assert.Equal(t, "2024-01-15", transactions[0].Date)
	assert.Equal(t, "2024-01-17", transactions[2].Date)
}
