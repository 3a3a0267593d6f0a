package brand

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sells-group/salesmix/internal/model"
	"github.com/sells-group/salesmix/internal/outreach"
)

// CatalogQuery filters MatchCatalogToBuyers.
type CatalogQuery struct {
	Location string
	// BusinessCategory restricts targets; empty targets every business category.
	BusinessCategory string
}

// CatalogMatch is a customer who does not yet buy one of the brand's categories.
type CatalogMatch struct {
	CustomerID               string          `json:"customer_id" csv:"customer_id"`
	BusinessCategory         string          `json:"business_category" csv:"business_category"`
	Location                 string          `json:"location" csv:"location"`
	BrandCategory            string          `json:"brand_category" csv:"brand_category"`
	RecommendedBrandProducts string          `json:"recommended_brand_products" csv:"recommended_brand_products"`
	CurrentProducts          string          `json:"current_products" csv:"current_products"`
	SimilarProducts          string          `json:"similar_products" csv:"similar_products"`
	TotalRevenue             decimal.Decimal `json:"total_revenue" csv:"total_revenue"`
	OpportunityScore         int             `json:"opportunity_score" csv:"opportunity_score"`
	MatchReason              string          `json:"match_reason" csv:"match_reason"`
}

// Message returns the fields an outreach message is rendered from.
func (m CatalogMatch) Message() model.OutreachMessage {
	return model.OutreachMessage{
		CustomerID:       m.CustomerID,
		BusinessCategory: m.BusinessCategory,
		ProductCategory:  m.BrandCategory,
		Location:         m.Location,
		CurrentProducts:  m.CurrentProducts,
		SimilarProducts:  m.SimilarProducts,
	}
}

// MatchCatalogToBuyers runs an outreach target search for every catalog
// category. A customer appears once, under the first category that
// targeted it; results are ordered by opportunity score, lowest first.
func MatchCatalogToBuyers(records []model.Record, catalog model.Catalog, q CatalogQuery) []CatalogMatch {
	filtered := filterRecords(records, nil, q.Location)

	businesses := []string{q.BusinessCategory}
	if q.BusinessCategory == "" {
		businesses = businessCategories(filtered)
	}

	seen := make(map[string]bool)
	out := []CatalogMatch{}
	for _, cat := range catalog.Categories() {
		products := strings.Join(catalog.InCategory(cat).Names(maxRecommended), ", ")
		for _, business := range businesses {
			targets := outreach.FindTargetBusinesses(filtered, outreach.TargetQuery{
				BusinessCategory: business,
				ProductCategory:  cat,
			})
			for _, t := range targets {
				if seen[t.CustomerID] {
					continue
				}
				seen[t.CustomerID] = true
				out = append(out, CatalogMatch{
					CustomerID:               t.CustomerID,
					BusinessCategory:         t.BusinessCategory,
					Location:                 t.Location,
					BrandCategory:            cat,
					RecommendedBrandProducts: products,
					CurrentProducts:          t.CurrentProducts,
					SimilarProducts:          t.SimilarProducts,
					TotalRevenue:             t.TotalRevenue,
					OpportunityScore:         t.OpportunityScore,
					MatchReason:              fmt.Sprintf("Buys similar %s products", cat),
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].OpportunityScore < out[j].OpportunityScore })
	return out
}

func businessCategories(records []model.Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if !seen[r.BusinessCategory] {
			seen[r.BusinessCategory] = true
			out = append(out, r.BusinessCategory)
		}
	}
	return out
}

// CatalogProspect is a catalog match ranked for outreach.
type CatalogProspect struct {
	CatalogMatch
	OutreachPriority    float64 `json:"outreach_priority" csv:"outreach_priority"`
	PersonalizationNote string  `json:"personalization_note" csv:"personalization_note"`
}

// GenerateCatalogOutreachList ranks catalog matches for outreach. At most
// limit rows are returned when limit > 0.
func GenerateCatalogOutreachList(records []model.Record, catalog model.Catalog, q CatalogQuery, limit int) []CatalogProspect {
	matches := MatchCatalogToBuyers(records, catalog, q)

	scores := make([]float64, len(matches))
	for i, m := range matches {
		scores[i] = float64(m.OpportunityScore)
	}
	ranks := outreach.AverageRank(scores)

	out := make([]CatalogProspect, len(matches))
	for i, m := range matches {
		out[i] = CatalogProspect{
			CatalogMatch:     m,
			OutreachPriority: ranks[i],
			PersonalizationNote: fmt.Sprintf("Based on your current product mix (%s), we recommend %s products: %s",
				m.CurrentProducts, m.BrandCategory, m.RecommendedBrandProducts),
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
