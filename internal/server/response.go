package server

import (
	"spendsense/statement-csv/internal/models"
	"spendsense/statement-csv/internal/stats"
)

// processResponse is the JSON body returned by the process endpoint.
type processResponse struct {
	SessionID        string             `json:"session_id"`
	FormatType       string             `json:"format_type"`
	TotalAmount      float64            `json:"total_amount"`
	TransactionCount int                `json:"transaction_count"`
	Totals           map[string]float64 `json:"totals"`
	DateRange        dateRange          `json:"date_range"`
	Transactions     []transactionBody  `json:"transactions"`
}

type dateRange struct {
	MinDate string `json:"min_date"`
	MaxDate string `json:"max_date"`
}

type transactionBody struct {
	Date            string  `json:"date"`
	Description     string  `json:"description"`
	AmountCAD       float64 `json:"amount_cad"`
	Currency        string  `json:"currency"`
	OriginalAmount  float64 `json:"original_amount"`
	ExchangeRate    float64 `json:"exchange_rate"`
	Cardmember      string  `json:"cardmember"`
	PostingDate     string  `json:"posting_date"`
	MerchantCountry string  `json:"merchant_country"`
	Notes           string  `json:"notes"`
	FormatType      string  `json:"format_type"`
}

func totalsJSON(summary stats.Summary) map[string]float64 {
	totals := make(map[string]float64, len(summary.Totals))
	for key, value := range summary.Totals {
		totals[key] = value.InexactFloat64()
	}
	return totals
}

func transactionsJSON(transactions []models.Transaction) []transactionBody {
	bodies := make([]transactionBody, 0, len(transactions))
	for _, tx := range transactions {
		bodies = append(bodies, transactionBody{
			Date:            tx.Date,
			Description:     tx.Description,
			AmountCAD:       tx.AmountCAD.InexactFloat64(),
			Currency:        tx.Currency,
			OriginalAmount:  tx.OriginalAmount.InexactFloat64(),
			ExchangeRate:    tx.ExchangeRate.InexactFloat64(),
			Cardmember:      tx.Cardmember,
			PostingDate:     tx.PostingDate,
			MerchantCountry: tx.MerchantCountry,
			Notes:           tx.Notes,
			FormatType:      string(tx.Format),
		})
	}
	return bodies
}
