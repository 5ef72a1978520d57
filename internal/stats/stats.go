// Package stats computes the read-only aggregates reported alongside a parse:
// totals, a per-category breakdown, and the covered date range.
package stats

import (
	"github.com/shopspring/decimal"

	"spendsense/statement-csv/internal/models"
)

// Category labels for the RBC breakdown.
const (
	CategorySpending = "Spending"
	CategoryPayments = "Payments"
	// CategoryUnknown groups original-format records with no cardmember.
	CategoryUnknown = "Unknown"
)

// Summary aggregates one parse run. Amounts are CAD.
type Summary struct {
	TransactionCount int                        `json:"transaction_count"`
	TotalAmount      decimal.Decimal            `json:"total_amount"`
	Totals           map[string]decimal.Decimal `json:"totals"`
	MinDate          string                     `json:"min_date,omitempty"`
	MaxDate          string                     `json:"max_date,omitempty"`
}

// Compute builds the summary for a parsed document. For the original layout
// the breakdown is per cardmember; for the RBC layout it splits spending from
// payments. The input slice is never modified.
func Compute(transactions []models.Transaction, format models.FormatType) Summary {
	summary := Summary{
		TransactionCount: len(transactions),
		TotalAmount:      decimal.Zero,
		Totals:           map[string]decimal.Decimal{},
	}

	for _, tx := range transactions {
		summary.TotalAmount = summary.TotalAmount.Add(tx.AmountCAD)

		switch format {
		case models.FormatOriginal:
			key := tx.Cardmember
			if key == "" {
				key = CategoryUnknown
			}
			summary.Totals[key] = summary.Totals[key].Add(tx.AmountCAD)
		case models.FormatRbc:
			if tx.IsSpending() {
				summary.Totals[CategorySpending] = summary.Totals[CategorySpending].Add(tx.AmountCAD)
			} else if tx.IsPayment() {
				summary.Totals[CategoryPayments] = summary.Totals[CategoryPayments].Add(tx.AmountCAD)
			}
		}

		if summary.MinDate == "" || tx.Date < summary.MinDate {
			summary.MinDate = tx.Date
		}
		if summary.MaxDate == "" || tx.Date > summary.MaxDate {
			summary.MaxDate = tx.Date
		}
	}
	return summary
}
