package geo

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sells-group/salesmix/internal/analytics"
	"github.com/sells-group/salesmix/internal/model"
)

// DefaultTopLocations is the number of locations listed by LocationInsights.
const DefaultTopLocations = 10

// LocationCount is the number of distinct businesses at a location.
type LocationCount struct {
	Location   string `json:"location" csv:"location"`
	Businesses int    `json:"businesses" csv:"businesses"`
}

// LocationRevenue is the revenue generated at a location.
type LocationRevenue struct {
	Location string          `json:"location" csv:"location"`
	Revenue  decimal.Decimal `json:"revenue" csv:"revenue"`
}

// Insights ranks locations by business count and by revenue.
type Insights struct {
	TopLocations      []LocationCount   `json:"top_locations"`
	TopSalesLocations []LocationRevenue `json:"top_sales_locations"`
	TotalLocations    int               `json:"total_locations"`
}

// LocationInsights ranks the n busiest and n highest-revenue locations
// (DefaultTopLocations when n <= 0). Records without a location are ignored.
func LocationInsights(records []model.Record, n int) Insights {
	if n <= 0 {
		n = DefaultTopLocations
	}

	customers := make(map[string]map[string]bool)
	revenue := make(map[string]decimal.Decimal)
	for _, r := range records {
		loc := analytics.RecordLocation(r)
		if loc == "" {
			continue
		}
		set, ok := customers[loc]
		if !ok {
			set = make(map[string]bool)
			customers[loc] = set
		}
		set[r.CustomerID] = true
		revenue[loc] = revenue[loc].Add(r.SalesAmount)
	}

	locations := make([]string, 0, len(customers))
	for loc := range customers {
		locations = append(locations, loc)
	}
	sort.Strings(locations)

	counts := make([]LocationCount, len(locations))
	sales := make([]LocationRevenue, len(locations))
	for i, loc := range locations {
		counts[i] = LocationCount{Location: loc, Businesses: len(customers[loc])}
		sales[i] = LocationRevenue{Location: loc, Revenue: revenue[loc]}
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Businesses > counts[j].Businesses })
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].Revenue.GreaterThan(sales[j].Revenue) })

	return Insights{
		TopLocations:      counts[:min(n, len(counts))],
		TopSalesLocations: sales[:min(n, len(sales))],
		TotalLocations:    len(locations),
	}
}

// LocationOpportunity counts the businesses at a location and business
// category that buy a product category.
type LocationOpportunity struct {
	Location         string          `json:"location" csv:"location"`
	BusinessCategory string          `json:"business_category" csv:"business_category"`
	NumBusinesses    int             `json:"num_businesses" csv:"num_businesses"`
	TotalRevenue     decimal.Decimal `json:"total_revenue" csv:"total_revenue"`
}

// LocationOpportunities lists where productCategory sells, by number of
// buying businesses descending. n <= 0 returns every group.
func LocationOpportunities(records []model.Record, productCategory string, n int) []LocationOpportunity {
	type key struct{ location, business string }
	buyers := make(map[key]map[string]bool)
	revenue := make(map[key]decimal.Decimal)
	for _, r := range records {
		if r.ProductCategory != productCategory {
			continue
		}
		loc := analytics.RecordLocation(r)
		if loc == "" {
			continue
		}
		k := key{location: loc, business: r.BusinessCategory}
		if buyers[k] == nil {
			buyers[k] = make(map[string]bool)
		}
		buyers[k][r.CustomerID] = true
		revenue[k] = revenue[k].Add(r.SalesAmount)
	}

	keys := make([]key, 0, len(buyers))
	for k := range buyers {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].location != keys[j].location {
			return keys[i].location < keys[j].location
		}
		return keys[i].business < keys[j].business
	})

	out := make([]LocationOpportunity, len(keys))
	for i, k := range keys {
		out[i] = LocationOpportunity{
			Location:         k.location,
			BusinessCategory: k.business,
			NumBusinesses:    len(buyers[k]),
			TotalRevenue:     revenue[k],
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].NumBusinesses > out[j].NumBusinesses })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
