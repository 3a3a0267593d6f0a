package ingest

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sells-group/salesmix/internal/model"
)

// naValues are cell spellings treated as missing, as spreadsheet exports
// commonly write them.
var naValues = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true, "N/A": true,
	"NA": true, "NULL": true, "NaN": true, "None": true, "n/a": true, "nan": true, "null": true,
}

func isMissing(v string) bool {
	return naValues[strings.TrimSpace(v)]
}

// CleanStats counts the rows Clean dropped, per reason.
type CleanStats struct {
	Total              int `json:"total"`
	Kept               int `json:"kept"`
	MissingIdentifiers int `json:"missing_identifiers"`
	InvalidAmount      int `json:"invalid_amount"`
	NonPositiveAmount  int `json:"non_positive_amount"`
	MissingCategory    int `json:"missing_category"`
	UnknownDate        int `json:"unknown_date"`
}

// Dropped returns the number of rows removed.
func (s CleanStats) Dropped() int {
	return s.Total - s.Kept
}

// Clean converts a normalized table into transactions. dates must be the
// parsed date column (nil when the table has none). Malformed rows are
// dropped, never reported as errors.
func Clean(t *model.Table, dates []time.Time) ([]model.Transaction, CleanStats) {
	var (
		customerIdx = t.ColumnIndex(model.ColCustomerID)
		productIdx  = t.ColumnIndex(model.ColProductID)
		categoryIdx = t.ColumnIndex(model.ColProductCategory)
		amountIdx   = t.ColumnIndex(model.ColSalesAmount)
		cityIdx     = t.ColumnIndex(model.ColCity)
		stateIdx    = t.ColumnIndex(model.ColState)
		locationIdx = t.ColumnIndex(model.ColLocation)
	)
	deriveLocation := locationIdx < 0 && cityIdx >= 0 && stateIdx >= 0

	stats := CleanStats{Total: len(t.Rows)}
	out := make([]model.Transaction, 0, len(t.Rows))

	for i, row := range t.Rows {
		customer := t.Value(row, customerIdx)
		product := t.Value(row, productIdx)
		rawAmount := t.Value(row, amountIdx)
		if isMissing(customer) || isMissing(product) || isMissing(rawAmount) {
			stats.MissingIdentifiers++
			continue
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(rawAmount))
		if err != nil {
			stats.InvalidAmount++
			continue
		}
		if !amount.IsPositive() {
			stats.NonPositiveAmount++
			continue
		}

		category := t.Value(row, categoryIdx)
		if isMissing(category) {
			stats.MissingCategory++
			continue
		}

		tx := model.Transaction{
			CustomerID:      strings.TrimSpace(customer),
			ProductID:       strings.TrimSpace(product),
			ProductCategory: strings.TrimSpace(category),
			SalesAmount:     amount,
			City:            locationField(t.Value(row, cityIdx)),
			State:           locationField(t.Value(row, stateIdx)),
		}
		if i < len(dates) {
			tx.TransactionDate = dates[i]
		}
		if !tx.HasDate() {
			stats.UnknownDate++
		}

		if deriveLocation {
			tx.Location = joinLocation(tx.City, tx.State)
		} else {
			tx.Location = locationField(t.Value(row, locationIdx))
		}

		out = append(out, tx)
	}

	stats.Kept = len(out)
	return out, stats
}

func locationField(v string) string {
	if isMissing(v) {
		return ""
	}
	return strings.TrimSpace(v)
}

// joinLocation builds "City, State", or whichever part is present.
func joinLocation(city, state string) string {
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}
