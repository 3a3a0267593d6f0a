package analytics

import (
	"time"

	"github.com/sells-group/salesmix/internal/model"
)

// Criteria narrows a record set. Empty lists and zero times do not filter.
type Criteria struct {
	BusinessCategories    []string
	BusinessSubCategories []string
	ProductCategories     []string
	From, To              time.Time // inclusive; compared by calendar day
}

// IsZero reports whether the criteria filter nothing.
func (c Criteria) IsZero() bool {
	return len(c.BusinessCategories) == 0 && len(c.BusinessSubCategories) == 0 &&
		len(c.ProductCategories) == 0 && c.From.IsZero() && c.To.IsZero()
}

// Filter returns the records matching every criterion. A date bound drops
// records with unknown dates.
func Filter(records []model.Record, c Criteria) []model.Record {
	if c.IsZero() {
		return records
	}

	business := toSet(c.BusinessCategories)
	subs := toSet(c.BusinessSubCategories)
	products := toSet(c.ProductCategories)
	from := dayStart(c.From)
	to := dayStart(c.To)

	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if business != nil && !business[r.BusinessCategory] {
			continue
		}
		if subs != nil && !subs[r.BusinessSubCategory] {
			continue
		}
		if products != nil && !products[r.ProductCategory] {
			continue
		}
		if !from.IsZero() || !to.IsZero() {
			if !r.HasDate() {
				continue
			}
			d := dayStart(r.TransactionDate)
			if !from.IsZero() && d.Before(from) {
				continue
			}
			if !to.IsZero() && d.After(to) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func dayStart(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return PeriodDay.Start(t)
}
