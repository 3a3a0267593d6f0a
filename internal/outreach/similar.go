// Package outreach finds businesses that buy a product category's peers but
// not the category itself, and ranks them as outreach targets.
package outreach

import (
	"sort"

	"github.com/sells-group/salesmix/internal/model"
)

// DefaultSimilarProducts is the number of co-purchased categories attached to a target.
const DefaultSimilarProducts = 3

// FindSimilarProducts returns the n product categories most often bought by
// customers who also buy category, counted per transaction. Ties are ordered
// by name. n <= 0 returns all.
func FindSimilarProducts(records []model.Record, category string, n int) []string {
	buyers := make(map[string]bool)
	for _, r := range records {
		if r.ProductCategory == category {
			buyers[r.CustomerID] = true
		}
	}

	counts := make(map[string]int)
	for _, r := range records {
		if buyers[r.CustomerID] && r.ProductCategory != category {
			counts[r.ProductCategory]++
		}
	}

	out := make([]string, 0, len(counts))
	for cat := range counts {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
