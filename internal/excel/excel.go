// Package excel exports parsed statements to Excel workbooks with
// format-specific sheets and optional summaries.
package excel

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"spendsense/statement-csv/internal/logging"
	"spendsense/statement-csv/internal/models"
	"spendsense/statement-csv/internal/stats"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

const (
	transactionsSheet = "Transactions"
	summarySheet      = "Summary"
	currencySheet     = "Summary_by_Currency"
	moneyFormat       = `$#,##0.00;[Red]-$#,##0.00`
)

// WriteTransactions writes the transactions to an Excel workbook at path.
// The sheet layout follows the statement format; includeSummary adds the
// format's summary sheets.
func WriteTransactions(transactions []models.Transaction, path string, format models.FormatType, includeSummary bool) error {
	if len(transactions) == 0 {
		return fmt.Errorf("no transactions to write")
	}

	log.Info("Writing transactions to Excel file",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: logging.FieldFormat, Value: string(format)})

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", transactionsSheet); err != nil {
		return fmt.Errorf("error naming transactions sheet: %w", err)
	}

	sorted := models.SortForExport(transactions)

	var err error
	switch format {
	case models.FormatOriginal:
		err = writeOriginalSheets(f, sorted, includeSummary)
	case models.FormatRbc:
		err = writeRbcSheets(f, sorted, includeSummary)
	default:
		err = writeGenericSheet(f, sorted)
	}
	if err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error saving workbook: %w", err)
	}
	return nil
}

func writeOriginalSheets(f *excelize.File, transactions []models.Transaction, includeSummary bool) error {
	headers := []string{"Date", "Description", "Cardmember", "Amount", "Currency", "Notes"}
	if err := writeHeader(f, transactionsSheet, headers); err != nil {
		return err
	}
	for i, tx := range transactions {
		row := i + 2
		cells := []interface{}{tx.Date, tx.Description, tx.Cardmember, amountCell(tx.AmountCAD), tx.Currency, tx.Notes}
		if err := writeRow(f, transactionsSheet, row, cells); err != nil {
			return err
		}
	}
	if err := styleMoneyColumn(f, transactionsSheet, "D", len(transactions)); err != nil {
		return err
	}
	if err := freezeHeader(f, transactionsSheet); err != nil {
		return err
	}

	if !includeSummary {
		return nil
	}

	summary := stats.Compute(transactions, models.FormatOriginal)
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("error creating summary sheet: %w", err)
	}
	if err := writeHeader(f, summarySheet, []string{"Category", "Total_CAD"}); err != nil {
		return err
	}
	row := 2
	for _, key := range sortedKeys(summary.Totals) {
		if err := writeRow(f, summarySheet, row, []interface{}{key, amountCell(summary.Totals[key])}); err != nil {
			return err
		}
		row++
	}
	if err := writeRow(f, summarySheet, row, []interface{}{"TOTAL", amountCell(summary.TotalAmount)}); err != nil {
		return err
	}
	return styleMoneyColumn(f, summarySheet, "B", row-1)
}

func writeRbcSheets(f *excelize.File, transactions []models.Transaction, includeSummary bool) error {
	headers := []string{"Date", "Posting_Date", "Description", "Country", "Currency", "Original_Amount", "CAD_Amount", "Exchange_Rate"}
	if err := writeHeader(f, transactionsSheet, headers); err != nil {
		return err
	}
	for i, tx := range transactions {
		row := i + 2
		cells := []interface{}{
			tx.Date, tx.PostingDate, tx.Description, tx.MerchantCountry,
			tx.Currency, amountCell(tx.OriginalAmount), amountCell(tx.AmountCAD),
			rateCell(tx.ExchangeRate),
		}
		if err := writeRow(f, transactionsSheet, row, cells); err != nil {
			return err
		}
	}
	for _, col := range []string{"F", "G"} {
		if err := styleMoneyColumn(f, transactionsSheet, col, len(transactions)); err != nil {
			return err
		}
	}
	if err := freezeHeader(f, transactionsSheet); err != nil {
		return err
	}

	if !includeSummary {
		return nil
	}

	summary := stats.Compute(transactions, models.FormatRbc)
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("error creating summary sheet: %w", err)
	}
	if err := writeHeader(f, summarySheet, []string{"Category", "Total_CAD"}); err != nil {
		return err
	}
	spending := summary.Totals[stats.CategorySpending]
	payments := summary.Totals[stats.CategoryPayments]
	rows := []struct {
		label string
		value interface{}
	}{
		{stats.CategorySpending, amountCell(spending)},
		{stats.CategoryPayments, amountCell(payments.Abs())},
		{"Net", amountCell(summary.TotalAmount)},
	}
	for i, r := range rows {
		if err := writeRow(f, summarySheet, i+2, []interface{}{r.label, r.value}); err != nil {
			return err
		}
	}
	if err := styleMoneyColumn(f, summarySheet, "B", len(rows)); err != nil {
		return err
	}

	return writeCurrencySummary(f, transactions)
}

func writeCurrencySummary(f *excelize.File, transactions []models.Transaction) error {
	type currencyTotal struct {
		original decimal.Decimal
		cad      decimal.Decimal
	}
	totals := map[string]*currencyTotal{}
	for _, tx := range transactions {
		t, ok := totals[tx.Currency]
		if !ok {
			t = &currencyTotal{}
			totals[tx.Currency] = t
		}
		t.original = t.original.Add(tx.OriginalAmount)
		t.cad = t.cad.Add(tx.AmountCAD)
	}

	if _, err := f.NewSheet(currencySheet); err != nil {
		return fmt.Errorf("error creating currency sheet: %w", err)
	}
	if err := writeHeader(f, currencySheet, []string{"Currency", "Original_Amount", "CAD_Amount"}); err != nil {
		return err
	}
	row := 2
	for _, cur := range sortedKeys(totals) {
		t := totals[cur]
		cells := []interface{}{cur, amountCell(t.original), amountCell(t.cad)}
		if err := writeRow(f, currencySheet, row, cells); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeGenericSheet(f *excelize.File, transactions []models.Transaction) error {
	headers := []string{"Date", "Description", "Amount_CAD", "Currency", "Original_Amount", "Exchange_Rate", "Notes"}
	if err := writeHeader(f, transactionsSheet, headers); err != nil {
		return err
	}
	for i, tx := range transactions {
		row := i + 2
		cells := []interface{}{
			tx.Date, tx.Description, amountCell(tx.AmountCAD), tx.Currency,
			amountCell(tx.OriginalAmount), rateCell(tx.ExchangeRate), tx.Notes,
		}
		if err := writeRow(f, transactionsSheet, row, cells); err != nil {
			return err
		}
	}
	return freezeHeader(f, transactionsSheet)
}
