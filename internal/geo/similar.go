package geo

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sells-group/salesmix/internal/analytics"
	"github.com/sells-group/salesmix/internal/model"
)

// Query describes a nearby-prospect search.
type Query struct {
	BusinessCategory string
	ProductCategory  string
	// Location is "City, State" or a single token.
	Location string
	// RadiusMiles is accepted but not applied; matching is by location text.
	RadiusMiles float64
	Limit       int
}

// SimilarBusiness is a prospect that does not buy the query's product category.
type SimilarBusiness struct {
	CustomerID               string          `json:"customer_id" csv:"customer_id"`
	Location                 string          `json:"location" csv:"location"`
	BusinessCategory         string          `json:"business_category" csv:"business_category"`
	CurrentProductCategories int             `json:"current_product_categories" csv:"current_product_categories"`
	TotalRevenue             decimal.Decimal `json:"total_revenue" csv:"total_revenue"`
	OpportunityScore         int             `json:"opportunity_score" csv:"opportunity_score"`
}

// LocationToken returns the text a customer location must contain to match
// loc: the state of a "City, State" pair, otherwise the whole trimmed value.
func LocationToken(loc string) string {
	parts := strings.Split(loc, ",")
	if len(parts) == 2 {
		if state := strings.TrimSpace(parts[1]); state != "" {
			return state
		}
		return strings.TrimSpace(parts[0])
	}
	return strings.TrimSpace(loc)
}

// FindSimilarBusinesses finds customers near q.Location who do not buy
// q.ProductCategory. Customers of q.BusinessCategory are preferred; when none
// qualify, any matched customer is returned. Results are ordered by the
// number of categories already bought, fewest first.
func FindSimilarBusinesses(records []model.Record, q Query) []SimilarBusiness {
	if q.RadiusMiles > 0 {
		zap.L().Debug("geo: radius not applied, matching by location text",
			zap.Float64("radius_miles", q.RadiusMiles),
			zap.String("location", q.Location),
		)
	}

	token := LocationToken(q.Location)
	var nearby []*analytics.CustomerProfile
	for _, p := range analytics.Profiles(records) {
		if analytics.ContainsFold(p.Location, token) {
			nearby = append(nearby, p)
		}
	}

	out := collectSimilar(nearby, q, true)
	if len(out) == 0 {
		out = collectSimilar(nearby, q, false)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].OpportunityScore < out[j].OpportunityScore })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func collectSimilar(profiles []*analytics.CustomerProfile, q Query, sameCategory bool) []SimilarBusiness {
	out := []SimilarBusiness{}
	for _, p := range profiles {
		if p.Buys(q.ProductCategory) {
			continue
		}
		if sameCategory && p.BusinessCategory != q.BusinessCategory {
			continue
		}
		out = append(out, SimilarBusiness{
			CustomerID:               p.CustomerID,
			Location:                 p.Location,
			BusinessCategory:         p.BusinessCategory,
			CurrentProductCategories: p.Diversity(),
			TotalRevenue:             p.Revenue,
			OpportunityScore:         p.Diversity(),
		})
	}
	return out
}
