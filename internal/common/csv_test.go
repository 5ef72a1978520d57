package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendsense/statement-csv/internal/models"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			Date:           "2024-01-16",
			Description:    "GROCERY MART",
			AmountCAD:      decimal.NewFromFloat(88.20),
			Currency:       "USD",
			OriginalAmount: decimal.NewFromFloat(88.20),
			ExchangeRate:   decimal.NewFromInt(1),
			Format:         models.FormatOriginal,
		},
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
	}
}

func TestWriteTransactionsToCSV(t *testing.T) {
	dir := t.TempDir()
	csvFile := filepath.Join(dir, "out.csv")

	require.NoError(t, WriteTransactionsToCSV(sampleTransactions(), csvFile))

	data, err := os.ReadFile(csvFile) // #nosec G304 -- test-owned path
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t,
		"Date,Description,Amount_CAD,Currency,Original_Amount,Exchange_Rate,Cardmember,Posting_Date,Merchant_Country,Notes,Format",
		strings.TrimSpace(lines[0]))
	// Rows come out sorted by date.
	assert.Contains(t, lines[1], "AMAZON.CA TORONTO CAN")
	assert.Contains(t, lines[2], "GROCERY MART")
}

func TestWriteTransactionsToCSVCreatesDir(t *testing.T) {
	dir := t.TempDir()
	csvFile := filepath.Join(dir, "nested", "deeper", "out.csv")

	require.NoError(t, WriteTransactionsToCSV(sampleTransactions(), csvFile))
	assert.FileExists(t, csvFile)
}

func TestWriteTransactionsToCSVNil(t *testing.T) {
	assert.Error(t, WriteTransactionsToCSV(nil, filepath.Join(t.TempDir(), "out.csv")))
}

func TestWriteTransactionsToCSVEmpty(t *testing.T) {
	csvFile := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, WriteTransactionsToCSV([]models.Transaction{}, csvFile))
	assert.FileExists(t, csvFile)
}

func TestReadTransactionsFromCSVRoundTrip(t *testing.T) {
	csvFile := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteTransactionsToCSV(sampleTransactions(), csvFile))

	transactions, err := ReadTransactionsFromCSV(csvFile)

	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "AMAZON.CA TORONTO CAN", transactions[0].Description)
	assert.True(t, decimal.NewFromFloat(45.99).Equal(transactions[0].AmountCAD))
	assert.Equal(t, models.FormatRbc, transactions[0].Format)
	assert.Equal(t, "2024-01-16", transactions[1].Date)
}

func TestReadTransactionsFromCSVMissingFile(t *testing.T) {
	_, err := ReadTransactionsFromCSV(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestSetDelimiter(t *testing.T) {
	original := Delimiter
	defer SetDelimiter(original)

	SetDelimiter(';')
	assert.Equal(t, ';', Delimiter)

	csvFile := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteTransactionsToCSV(sampleTransactions(), csvFile))

	data, err := os.ReadFile(csvFile) // #nosec G304 -- test-owned path
	require.NoError(t, err)
	header := strings.SplitN(string(data), "\n", 2)[0]
	assert.Contains(t, header, "Date;Description")
}
