package outreach

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sells-group/salesmix/internal/analytics"
	"github.com/sells-group/salesmix/internal/model"
)

// TargetQuery selects outreach targets.
type TargetQuery struct {
	BusinessCategory string
	ProductCategory  string
	// Location keeps records whose location contains it (case-insensitive).
	Location string
	// State is used only when Location is empty.
	State string
	// SimilarProducts is the number of co-purchased categories to attach.
	SimilarProducts int
}

// Target is a business of the requested category that does not buy the
// requested product category.
type Target struct {
	CustomerID         string          `json:"customer_id" csv:"customer_id"`
	BusinessCategory   string          `json:"business_category" csv:"business_category"`
	Location           string          `json:"location" csv:"location"`
	CurrentProducts    string          `json:"current_products" csv:"current_products"`
	RecommendedProduct string          `json:"recommended_product" csv:"recommended_product"`
	SimilarProducts    string          `json:"similar_products" csv:"similar_products"`
	TotalRevenue       decimal.Decimal `json:"total_revenue" csv:"total_revenue"`
	ProductDiversity   int             `json:"product_diversity" csv:"product_diversity"`
	OpportunityScore   int             `json:"opportunity_score" csv:"opportunity_score"`
}

// Message returns the fields an outreach message is rendered from.
func (t Target) Message() model.OutreachMessage {
	return model.OutreachMessage{
		CustomerID:       t.CustomerID,
		BusinessCategory: t.BusinessCategory,
		ProductCategory:  t.RecommendedProduct,
		Location:         t.Location,
		CurrentProducts:  t.CurrentProducts,
		SimilarProducts:  t.SimilarProducts,
	}
}

// FilterLocation keeps records whose location contains location, or whose
// state contains state when location is empty. Both empty keeps everything.
func FilterLocation(records []model.Record, location, state string) []model.Record {
	location = strings.TrimSpace(location)
	state = strings.TrimSpace(state)
	if location == "" && state == "" {
		return records
	}

	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if location != "" {
			if analytics.ContainsFold(analytics.RecordLocation(r), location) {
				out = append(out, r)
			}
			continue
		}
		if analytics.ContainsFold(analytics.RecordState(r), state) {
			out = append(out, r)
		}
	}
	return out
}

// FindTargetBusinesses returns customers of q.BusinessCategory who do not buy
// q.ProductCategory, ordered by the number of categories already bought,
// fewest first. Similar products are co-purchases within the filtered records.
func FindTargetBusinesses(records []model.Record, q TargetQuery) []Target {
	filtered := FilterLocation(records, q.Location, q.State)

	n := q.SimilarProducts
	if n <= 0 {
		n = DefaultSimilarProducts
	}
	similar := strings.Join(FindSimilarProducts(filtered, q.ProductCategory, n), ", ")

	out := []Target{}
	for _, p := range analytics.Profiles(filtered) {
		if p.BusinessCategory != q.BusinessCategory || p.Buys(q.ProductCategory) {
			continue
		}
		out = append(out, Target{
			CustomerID:         p.CustomerID,
			BusinessCategory:   q.BusinessCategory,
			Location:           p.Location,
			CurrentProducts:    strings.Join(p.Categories, ", "),
			RecommendedProduct: q.ProductCategory,
			SimilarProducts:    similar,
			TotalRevenue:       p.Revenue,
			ProductDiversity:   p.Diversity(),
			OpportunityScore:   p.Diversity(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].OpportunityScore < out[j].OpportunityScore })
	return out
}
