package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/sells-group/salesmix/internal/model"
)

// Period is a calendar bucket size.
type Period string

// Supported periods.
const (
	PeriodDay     Period = "day"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// ParsePeriod accepts a period name or its single-letter form (D, W, M, Q, Y).
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d", "day", "daily":
		return PeriodDay, nil
	case "w", "week", "weekly":
		return PeriodWeek, nil
	case "", "m", "month", "monthly":
		return PeriodMonth, nil
	case "q", "quarter", "quarterly":
		return PeriodQuarter, nil
	case "y", "year", "yearly", "annual":
		return PeriodYear, nil
	default:
		return "", eris.Errorf("analytics: unknown period %q", s)
	}
}

// Start truncates t to the beginning of its period. Weeks start on Monday.
func (p Period) Start(t time.Time) time.Time {
	y, m, d := t.Date()
	switch p {
	case PeriodDay:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case PeriodWeek:
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, time.UTC)
	case PeriodQuarter:
		return time.Date(y, ((m-1)/3)*3+1, 1, 0, 0, 0, 0, time.UTC)
	case PeriodYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	}
}

// TrendPoint is revenue of one (period, business, product) bucket.
type TrendPoint struct {
	Period           string          `json:"period" csv:"period"`
	BusinessCategory string          `json:"business_category" csv:"business_category"`
	ProductCategory  string          `json:"product_category" csv:"product_category"`
	SalesAmount      decimal.Decimal `json:"sales_amount" csv:"sales_amount"`
}

// Trends sums revenue per calendar period, business category and product
// category. Records with unknown dates are skipped. Periods are labeled by
// their start date (YYYY-MM-DD).
func Trends(records []model.Record, period Period) ([]TrendPoint, error) {
	period, err := ParsePeriod(string(period))
	if err != nil {
		return nil, err
	}

	type key struct {
		start            time.Time
		business, product string
	}
	sums := make(map[key]decimal.Decimal)
	for _, r := range records {
		if !r.HasDate() {
			continue
		}
		k := key{start: period.Start(r.TransactionDate), business: r.BusinessCategory, product: r.ProductCategory}
		sums[k] = sums[k].Add(r.SalesAmount)
	}

	keys := make([]key, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if !a.start.Equal(b.start) {
			return a.start.Before(b.start)
		}
		if a.business != b.business {
			return a.business < b.business
		}
		return a.product < b.product
	})

	out := make([]TrendPoint, len(keys))
	for i, k := range keys {
		out[i] = TrendPoint{
			Period:           k.start.Format("2006-01-02"),
			BusinessCategory: k.business,
			ProductCategory:  k.product,
			SalesAmount:      sums[k],
		}
	}
	return out, nil
}
