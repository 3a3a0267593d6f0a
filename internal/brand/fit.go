package brand

import (
	"sort"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/sells-group/salesmix/internal/geo"
	"github.com/sells-group/salesmix/internal/model"
)

// FitWeights blends catalog coverage and buyer coverage into a fit score.
type FitWeights struct {
	Category float64
	Business float64
}

// DefaultFitWeights returns the 0.6 / 0.4 blend.
func DefaultFitWeights() FitWeights {
	return FitWeights{Category: 0.6, Business: 0.4}
}

// Validate checks the weights are non-negative and sum to 1.
func (w FitWeights) Validate() error {
	if w.Category < 0 || w.Business < 0 {
		return eris.New("brand: fit weights must be >= 0")
	}
	if sum := w.Category + w.Business; sum < 0.999 || sum > 1.001 {
		return eris.Errorf("brand: fit weights must sum to 1, got %.3f", sum)
	}
	return nil
}

// RegionalFit scores how well a state fits the brand.
type RegionalFit struct {
	State                 string  `json:"state" csv:"state"`
	TotalBusinesses       int     `json:"total_businesses" csv:"total_businesses"`
	BusinessesWithOverlap int     `json:"businesses_with_overlap" csv:"businesses_with_overlap"`
	OverlapPercentage     float64 `json:"overlap_percentage" csv:"overlap_percentage"`
	CategoryOverlap       int     `json:"category_overlap" csv:"category_overlap"`
	TotalBrandCategories  int     `json:"total_brand_categories" csv:"total_brand_categories"`
	FitScore              float64 `json:"fit_score" csv:"fit_score"`
}

// AnalyzeRegionalFit scores each state as
// w.Category * (share of brand categories sold in the state) +
// w.Business * (share of the state's businesses buying any brand category).
// Results are ordered by fit score, best first. Records without a state are
// ignored.
func AnalyzeRegionalFit(records []model.Record, catalog model.Catalog, w FitWeights) ([]RegionalFit, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	brandSet := make(map[string]bool)
	for _, c := range catalog.Categories() {
		brandSet[c] = true
	}

	type stateData struct {
		categories  map[string]bool
		businesses  map[string]bool
		overlapping map[string]bool
	}
	states := make(map[string]*stateData)
	for _, r := range records {
		state := geo.RecordState(r)
		if state == "" {
			continue
		}
		sd, ok := states[state]
		if !ok {
			sd = &stateData{
				categories:  make(map[string]bool),
				businesses:  make(map[string]bool),
				overlapping: make(map[string]bool),
			}
			states[state] = sd
		}
		sd.categories[r.ProductCategory] = true
		sd.businesses[r.CustomerID] = true
		if brandSet[r.ProductCategory] {
			sd.overlapping[r.CustomerID] = true
		}
	}

	out := make([]RegionalFit, 0, len(states))
	for state, sd := range states {
		overlap := 0
		for c := range sd.categories {
			if brandSet[c] {
				overlap++
			}
		}

		var categoryFit float64
		if len(brandSet) > 0 {
			categoryFit = float64(overlap) / float64(len(brandSet))
		}
		businessFit := float64(len(sd.overlapping)) / float64(len(sd.businesses))

		out = append(out, RegionalFit{
			State:                 state,
			TotalBusinesses:       len(sd.businesses),
			BusinessesWithOverlap: len(sd.overlapping),
			OverlapPercentage:     categoryFit * 100,
			CategoryOverlap:       overlap,
			TotalBrandCategories:  len(brandSet),
			FitScore:              w.Category*categoryFit + w.Business*businessFit,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].FitScore != out[j].FitScore {
			return out[i].FitScore > out[j].FitScore
		}
		return out[i].State < out[j].State
	})
	return out, nil
}

// NamedCount is a label with a count.
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CategoryFit describes the existing market for one brand category.
type CategoryFit struct {
	Category         string                `json:"category"`
	NumBuyers        int                   `json:"num_buyers"`
	TotalRevenue     decimal.Decimal       `json:"total_revenue"`
	AvgTransaction   decimal.Decimal       `json:"avg_transaction"`
	TopBusinessTypes []NamedCount          `json:"top_business_types"`
	TopLocations     []geo.LocationRevenue `json:"top_locations"`
}

// MarketFit summarizes how the brand's categories sell today.
type MarketFit struct {
	CategoryBreakdown []CategoryFit `json:"category_breakdown"`
	// MarketFitScore is total category buyers over all customers, as a
	// percentage capped at 100.
	MarketFitScore float64 `json:"market_fit_score"`
}

const marketFitTop = 5

// AnalyzeMarketFit describes buyers of each catalog category. Categories
// nobody buys are omitted.
func AnalyzeMarketFit(records []model.Record, catalog model.Catalog) MarketFit {
	customers := make(map[string]bool)
	for _, r := range records {
		customers[r.CustomerID] = true
	}

	fit := MarketFit{CategoryBreakdown: []CategoryFit{}}
	totalBuyers := 0
	for _, cat := range catalog.Categories() {
		var rows []model.Record
		buyers := make(map[string]bool)
		businessCounts := make(map[string]int)
		revenue := decimal.Zero
		for _, r := range records {
			if r.ProductCategory != cat {
				continue
			}
			rows = append(rows, r)
			buyers[r.CustomerID] = true
			businessCounts[r.BusinessCategory]++
			revenue = revenue.Add(r.SalesAmount)
		}
		if len(rows) == 0 {
			continue
		}

		totalBuyers += len(buyers)
		fit.CategoryBreakdown = append(fit.CategoryBreakdown, CategoryFit{
			Category:         cat,
			NumBuyers:        len(buyers),
			TotalRevenue:     revenue,
			AvgTransaction:   revenue.Div(decimal.NewFromInt(int64(len(rows)))),
			TopBusinessTypes: topCounts(businessCounts, marketFitTop),
			TopLocations:     geo.LocationInsights(rows, marketFitTop).TopSalesLocations,
		})
	}

	if len(customers) > 0 {
		fit.MarketFitScore = min(100, float64(totalBuyers)/float64(len(customers))*100)
	}
	return fit
}

func topCounts(counts map[string]int, n int) []NamedCount {
	out := make([]NamedCount, 0, len(counts))
	for name, c := range counts {
		out = append(out, NamedCount{Name: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
