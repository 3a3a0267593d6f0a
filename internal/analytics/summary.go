package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/salesmix/internal/model"
)

// DateRange is the span of known transaction dates (YYYY-MM-DD). Both are
// empty when no date is known.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Summary holds headline statistics of a record set.
type Summary struct {
	TotalRevenue                decimal.Decimal `json:"total_revenue"`
	TotalTransactions           int             `json:"total_transactions"`
	UniqueCustomers             int             `json:"unique_customers"`
	UniqueProducts              int             `json:"unique_products"`
	UniqueBusinessCategories    int             `json:"unique_business_categories"`
	UniqueBusinessSubCategories int             `json:"unique_business_sub_categories,omitempty"`
	UniqueProductCategories     int             `json:"unique_product_categories"`
	AverageTransactionValue     decimal.Decimal `json:"average_transaction_value"`
	DateRange                   DateRange       `json:"date_range"`
}

// SummaryStatistics computes the summary of records. The sub-category count
// is only set when at least one record carries a sub-category.
func SummaryStatistics(records []model.Record) Summary {
	var (
		s          Summary
		customers  = make(map[string]bool)
		products   = make(map[string]bool)
		businesses = make(map[string]bool)
		subs       = make(map[string]bool)
		categories = make(map[string]bool)
		hasSub     bool
	)

	s.TotalRevenue = decimal.Zero
	for _, r := range records {
		s.TotalRevenue = s.TotalRevenue.Add(r.SalesAmount)
		customers[r.CustomerID] = true
		products[r.ProductID] = true
		businesses[r.BusinessCategory] = true
		subs[r.BusinessSubCategory] = true
		categories[r.ProductCategory] = true
		if r.BusinessSubCategory != "" && r.BusinessSubCategory != model.SubCategoryUnspecified {
			hasSub = true
		}

		if !r.HasDate() {
			continue
		}
		day := r.TransactionDate.Format("2006-01-02")
		if s.DateRange.Start == "" || day < s.DateRange.Start {
			s.DateRange.Start = day
		}
		if day > s.DateRange.End {
			s.DateRange.End = day
		}
	}

	s.TotalTransactions = len(records)
	s.UniqueCustomers = len(customers)
	s.UniqueProducts = len(products)
	s.UniqueBusinessCategories = len(businesses)
	s.UniqueProductCategories = len(categories)
	if hasSub {
		s.UniqueBusinessSubCategories = len(subs)
	}
	s.AverageTransactionValue = decimal.Zero
	if len(records) > 0 {
		s.AverageTransactionValue = s.TotalRevenue.Div(decimal.NewFromInt(int64(len(records))))
	}
	return s
}
