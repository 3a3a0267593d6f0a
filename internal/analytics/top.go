package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sells-group/salesmix/internal/model"
)

// Metric ranks combinations.
type Metric string

// Supported ranking metrics.
const (
	MetricRevenue  Metric = "revenue"
	MetricCount    Metric = "count"
	MetricAvgValue Metric = "avg_value"
)

// Combination aggregates one (business label, product category) group.
// BusinessCategory holds the sub-category label at LevelSubCategory.
type Combination struct {
	BusinessCategory string          `json:"business_category" csv:"business_category"`
	ProductCategory  string          `json:"product_category" csv:"product_category"`
	TotalRevenue     decimal.Decimal `json:"total_revenue" csv:"total_revenue"`
	AvgValue         decimal.Decimal `json:"avg_value" csv:"avg_value"`
	TransactionCount int             `json:"transaction_count" csv:"transaction_count"`
}

// Combinations returns every group in label order.
func Combinations(records []model.Record, level Level) []Combination {
	p := buildPivot(records, level)
	out := make([]Combination, 0, len(p.cells))
	for _, row := range p.rows {
		for _, col := range p.cols {
			c, ok := p.cells[[2]string{row, col}]
			if !ok {
				continue
			}
			out = append(out, Combination{
				BusinessCategory: row,
				ProductCategory:  col,
				TotalRevenue:     c.sum,
				AvgValue:         c.sum.Div(decimal.NewFromInt(int64(c.count))),
				TransactionCount: c.count,
			})
		}
	}
	return out
}

// TopCombinations returns at most n groups ranked descending by metric.
// Ties keep label order. An unrecognized metric ranks by revenue.
func TopCombinations(records []model.Record, n int, metric Metric, level Level) ([]Combination, error) {
	level, err := ParseLevel(string(level))
	if err != nil {
		return nil, err
	}

	combos := Combinations(records, level)
	less := func(a, b Combination) bool { return a.TotalRevenue.GreaterThan(b.TotalRevenue) }
	switch metric {
	case MetricCount:
		less = func(a, b Combination) bool { return a.TransactionCount > b.TransactionCount }
	case MetricAvgValue:
		less = func(a, b Combination) bool { return a.AvgValue.GreaterThan(b.AvgValue) }
	}
	sort.SliceStable(combos, func(i, j int) bool { return less(combos[i], combos[j]) })

	if n >= 0 && n < len(combos) {
		combos = combos[:n]
	}
	return combos, nil
}
