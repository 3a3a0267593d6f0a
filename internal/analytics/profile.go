package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/salesmix/internal/model"
)

// CustomerProfile summarizes one customer's purchases. Business category,
// location and state come from the customer's first record.
type CustomerProfile struct {
	CustomerID       string
	BusinessCategory string
	Location         string
	State            string
	Categories       []string // distinct product categories, first-seen order
	Revenue          decimal.Decimal
	Transactions     int

	categorySet map[string]bool
}

// Buys reports whether the customer bought the product category.
func (p *CustomerProfile) Buys(category string) bool {
	return p.categorySet[category]
}

// Diversity is the number of distinct product categories bought.
func (p *CustomerProfile) Diversity() int {
	return len(p.Categories)
}

// Profiles builds one profile per customer in first-seen order.
func Profiles(records []model.Record) []*CustomerProfile {
	index := make(map[string]*CustomerProfile)
	var out []*CustomerProfile

	for _, r := range records {
		p, ok := index[r.CustomerID]
		if !ok {
			p = &CustomerProfile{
				CustomerID:       r.CustomerID,
				BusinessCategory: r.BusinessCategory,
				Location:         RecordLocation(r),
				State:            RecordState(r),
				Revenue:          decimal.Zero,
				categorySet:      make(map[string]bool),
			}
			index[r.CustomerID] = p
			out = append(out, p)
		}
		if !p.categorySet[r.ProductCategory] {
			p.categorySet[r.ProductCategory] = true
			p.Categories = append(p.Categories, r.ProductCategory)
		}
		p.Revenue = p.Revenue.Add(r.SalesAmount)
		p.Transactions++
	}
	return out
}

// RecordLocation returns the record's location, or "City, State" built from
// its parts when the location is blank.
func RecordLocation(r model.Record) string {
	if r.Location != "" {
		return r.Location
	}
	switch {
	case r.City != "" && r.State != "":
		return r.City + ", " + r.State
	case r.City != "":
		return r.City
	default:
		return r.State
	}
}

// RecordState returns the record's state, or the last comma-separated part of
// its location when no state was given.
func RecordState(r model.Record) string {
	if r.State != "" {
		return r.State
	}
	return StateFromLocation(r.Location)
}
