package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canonical column names of the sales table.
const (
	ColCustomerID      = "customer_id"
	ColProductID       = "product_id"
	ColProductCategory = "product_category"
	ColTransactionDate = "transaction_date"
	ColSalesAmount     = "sales_amount"
	ColCity            = "city"
	ColState           = "state"
	ColLocation        = "location"
)

// Transaction is one cleaned sales row.
type Transaction struct {
	CustomerID      string          `json:"customer_id"`
	ProductID       string          `json:"product_id"`
	ProductCategory string          `json:"product_category"`
	TransactionDate time.Time       `json:"transaction_date"` // zero when the date is unknown
	SalesAmount     decimal.Decimal `json:"sales_amount"`
	City            string          `json:"city,omitempty"`
	State           string          `json:"state,omitempty"`
	Location        string          `json:"location,omitempty"`
}

// HasDate reports whether the transaction date was parsed.
func (t Transaction) HasDate() bool {
	return !t.TransactionDate.IsZero()
}

// Record is a transaction enriched with the buyer's business classification.
type Record struct {
	Transaction
	BusinessCategory    string `json:"business_category"`
	BusinessSubCategory string `json:"business_sub_category"`
}

// Table is a raw header + rows table as read from an input file.
type Table struct {
	Header []string
	Rows   [][]string
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		Header: append([]string(nil), t.Header...),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// ColumnIndex returns the index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Value safely retrieves a cell, returning "" for short rows or a negative index.
func (t *Table) Value(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
