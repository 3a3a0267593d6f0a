package analytics

import (
	"sort"

	"github.com/sells-group/salesmix/internal/model"
)

// Opportunity is the category coverage gap of one business category.
type Opportunity struct {
	BusinessCategory        string  `json:"business_category" csv:"business_category"`
	ProductCategoriesBought int     `json:"product_categories_bought" csv:"product_categories_bought"`
	TotalProductCategories  int     `json:"total_product_categories" csv:"total_product_categories"`
	OpportunityScore        float64 `json:"opportunity_score" csv:"opportunity_score"`
}

// IdentifyOpportunities scores each business category by the share of
// product categories it has never bought, highest first.
func IdentifyOpportunities(records []model.Record) []Opportunity {
	all := make(map[string]bool)
	bought := make(map[string]map[string]bool)
	for _, r := range records {
		all[r.ProductCategory] = true
		set, ok := bought[r.BusinessCategory]
		if !ok {
			set = make(map[string]bool)
			bought[r.BusinessCategory] = set
		}
		set[r.ProductCategory] = true
	}

	names := make([]string, 0, len(bought))
	for name := range bought {
		names = append(names, name)
	}
	sort.Strings(names)

	total := len(all)
	out := make([]Opportunity, 0, len(names))
	for _, name := range names {
		n := len(bought[name])
		out = append(out, Opportunity{
			BusinessCategory:        name,
			ProductCategoriesBought: n,
			TotalProductCategories:  total,
			OpportunityScore:        float64(total-n) / float64(total),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].OpportunityScore > out[j].OpportunityScore })
	return out
}
