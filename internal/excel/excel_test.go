package excel

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"spendsense/statement-csv/internal/models"
	"spendsense/statement-csv/internal/stats"
)

func rbcTransactions() []models.Transaction {
	return []models.Transaction{
		{
			Date:            "2024-01-15",
			Description:     "AMAZON.CA TORONTO CAN",
			AmountCAD:       decimal.NewFromFloat(45.99),
			Currency:        "CAD",
			OriginalAmount:  decimal.NewFromFloat(45.99),
			ExchangeRate:    decimal.NewFromInt(1),
			PostingDate:     "2024-01-16",
			MerchantCountry: "CAN",
			Format:          models.FormatRbc,
		},
		{
			Date:           "2024-01-20",
			Description:    "PAYMENT - THANK YOU",
			AmountCAD:      decimal.NewFromInt(-500),
			Currency:       "CAD",
			OriginalAmount: decimal.NewFromInt(-500),
			ExchangeRate:   decimal.NewFromInt(1),
			Format:         models.FormatRbc,
		},
	}
}

func originalTransactions() []models.Transaction {
	return []models.Transaction{
		{
			Date:           "2024-01-15",
			Description:    "STARBUCKS COFFEE #123",
			AmountCAD:      decimal.NewFromFloat(12.45),
			Currency:       "USD",
			OriginalAmount: decimal.NewFromFloat(12.45),
			ExchangeRate:   decimal.NewFromInt(1),
			Cardmember:     "JASON DIMAND",
			Format:         models.FormatOriginal,
		},
	}
}

func TestWriteTransactionsRbc(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, WriteTransactions(rbcTransactions(), path, models.FormatRbc, true))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, f.Close())
	}()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, transactionsSheet)
	assert.Contains(t, sheets, summarySheet)
	assert.Contains(t, sheets, currencySheet)

	header, err := f.GetCellValue(transactionsSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)

	desc, err := f.GetCellValue(transactionsSheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "AMAZON.CA TORONTO CAN", desc)

	country, err := f.GetCellValue(transactionsSheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "CAN", country)

	netLabel, err := f.GetCellValue(summarySheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Net", netLabel)
}

func TestWriteTransactionsOriginal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, WriteTransactions(originalTransactions(), path, models.FormatOriginal, true))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, f.Close())
	}()

	cardmember, err := f.GetCellValue(transactionsSheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "JASON DIMAND", cardmember)

	category, err := f.GetCellValue(summarySheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "JASON DIMAND", category)

	totalLabel, err := f.GetCellValue(summarySheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", totalLabel)
}

func TestWriteTransactionsWithoutSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, WriteTransactions(rbcTransactions(), path, models.FormatRbc, false))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, f.Close())
	}()

	assert.NotContains(t, f.GetSheetList(), summarySheet)
}

func TestWriteTransactionsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, WriteTransactions(originalTransactions(), path, models.FormatUnknown, true))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, f.Close())
	}()

	header, err := f.GetCellValue(transactionsSheet, "C1")
	require.NoError(t, err)
	assert.Equal(t, "Amount_CAD", header)
}

func TestWriteTransactionsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	assert.Error(t, WriteTransactions(nil, path, models.FormatRbc, true))
}

func TestSummaryFeedsExcel(t *testing.T) {
	// The summary sheet mirrors the stats breakdown.
	summary := stats.Compute(rbcTransactions(), models.FormatRbc)
	assert.True(t, decimal.NewFromFloat(45.99).Equal(summary.Totals[stats.CategorySpending]))
	assert.True(t, decimal.NewFromInt(-500).Equal(summary.Totals[stats.CategoryPayments]))
}
