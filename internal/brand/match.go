package brand

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sells-group/salesmix/internal/analytics"
	"github.com/sells-group/salesmix/internal/model"
)

// Recommendation limits.
const (
	productsPerCategory = 3
	maxRecommended      = 5
)

// Query filters and thresholds a brand match.
type Query struct {
	// BusinessCategories restricts customers to these categories; empty keeps all.
	BusinessCategories []string
	// Location keeps records whose location or state contains it.
	Location      string
	MinMatchScore float64
	// Policy scores opportunities; nil uses DefaultPolicy.
	Policy ScoringPolicy
}

// Match is a customer scored against a brand catalog.
type Match struct {
	CustomerID               string          `json:"customer_id" csv:"customer_id"`
	BusinessCategory         string          `json:"business_category" csv:"business_category"`
	Location                 string          `json:"location" csv:"location"`
	CurrentProductCategories string          `json:"current_product_categories" csv:"current_product_categories"`
	BrandProductCategories   string          `json:"brand_product_categories" csv:"brand_product_categories"`
	CategoryOverlap          int             `json:"category_overlap" csv:"category_overlap"`
	MatchScore               float64         `json:"match_score" csv:"match_score"`
	RecommendedProducts      string          `json:"recommended_products" csv:"recommended_products"`
	TotalRevenue             decimal.Decimal `json:"total_revenue" csv:"total_revenue"`
	ProductDiversity         int             `json:"product_diversity" csv:"product_diversity"`
	OpportunityScore         float64         `json:"opportunity_score" csv:"opportunity_score"`
}

// filterRecords applies the business category and location filters.
func filterRecords(records []model.Record, categories []string, location string) []model.Record {
	allowed := make(map[string]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}
	location = strings.TrimSpace(location)

	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if len(allowed) > 0 && !allowed[r.BusinessCategory] {
			continue
		}
		if location != "" &&
			!analytics.ContainsFold(analytics.RecordState(r), location) &&
			!analytics.ContainsFold(analytics.RecordLocation(r), location) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FindBusinessesForBrand scores every customer against the catalog's
// categories. match_score is the overlap divided by the larger of the
// customer's and the brand's category counts; customers below
// q.MinMatchScore are dropped. Results are ordered by opportunity score,
// lowest first, one row per customer.
func FindBusinessesForBrand(records []model.Record, catalog model.Catalog, q Query) []Match {
	policy := q.Policy
	if policy == nil {
		policy = DefaultPolicy()
	}

	brandCats := catalog.Categories()
	brandSet := make(map[string]bool, len(brandCats))
	for _, c := range brandCats {
		brandSet[c] = true
	}
	brandList := strings.Join(brandCats, ", ")

	out := []Match{}
	for _, p := range analytics.Profiles(filterRecords(records, q.BusinessCategories, q.Location)) {
		overlap := 0
		for _, c := range p.Categories {
			if brandSet[c] {
				overlap++
			}
		}

		score := 0.0
		if p.Diversity() > 0 {
			score = float64(overlap) / float64(max(p.Diversity(), len(brandCats)))
		}
		if score < q.MinMatchScore {
			continue
		}

		current := append([]string(nil), p.Categories...)
		sort.Strings(current)

		out = append(out, Match{
			CustomerID:               p.CustomerID,
			BusinessCategory:         p.BusinessCategory,
			Location:                 p.Location,
			CurrentProductCategories: strings.Join(current, ", "),
			BrandProductCategories:   brandList,
			CategoryOverlap:          overlap,
			MatchScore:               score,
			RecommendedProducts:      strings.Join(recommend(catalog, brandCats, p), " | "),
			TotalRevenue:             p.Revenue,
			ProductDiversity:         p.Diversity(),
			OpportunityScore:         policy.OpportunityScore(p.Diversity(), overlap),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].OpportunityScore < out[j].OpportunityScore })
	return out
}

// recommend picks up to three products from each brand category the customer
// already buys, capped at five; without overlap it falls back to the first
// five catalog products.
func recommend(catalog model.Catalog, brandCats []string, p *analytics.CustomerProfile) []string {
	var names []string
	for _, c := range brandCats {
		if p.Buys(c) {
			names = append(names, catalog.InCategory(c).Names(productsPerCategory)...)
		}
	}
	if len(names) == 0 {
		names = catalog.Names(maxRecommended)
	}
	if len(names) > maxRecommended {
		names = names[:maxRecommended]
	}
	return names
}

// Prospect is a brand match with an outreach message.
type Prospect struct {
	Match
	OutreachMessage string `json:"outreach_message" csv:"outreach_message"`
}

// GenerateBrandOutreachList matches customers to the brand and attaches an
// outreach message. At most limit rows are returned when limit > 0.
func GenerateBrandOutreachList(records []model.Record, catalog model.Catalog, q Query, limit int) []Prospect {
	matches := FindBusinessesForBrand(records, catalog, q)

	cats := catalog.Categories()
	if len(cats) > 2 {
		cats = cats[:2]
	}
	featured := strings.Join(cats, ", ")

	out := make([]Prospect, len(matches))
	for i, m := range matches {
		out[i] = Prospect{
			Match: m,
			OutreachMessage: fmt.Sprintf("Based on your current product mix (%s), we think you'd love our %s products!",
				m.CurrentProductCategories, featured),
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
