package geo

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sells-group/salesmix/internal/analytics"
	"github.com/sells-group/salesmix/internal/model"
)

// TopProductsPerState is the number of product categories kept per state.
const TopProductsPerState = 5

// StateProduct is the revenue and buyer count of a product category in a state.
type StateProduct struct {
	State           string          `json:"state" csv:"state"`
	ProductCategory string          `json:"product_category" csv:"product_category"`
	TotalRevenue    decimal.Decimal `json:"total_revenue" csv:"total_revenue"`
	NumBusinesses   int             `json:"num_businesses" csv:"num_businesses"`
}

// Preferences holds product preferences per state.
type Preferences struct {
	TopProductsByState map[string][]StateProduct `json:"top_products_by_state"`
	RegionalData       []StateProduct            `json:"regional_data"`
}

// States returns the states of p in sorted order.
func (p Preferences) States() []string {
	out := make([]string, 0, len(p.TopProductsByState))
	for s := range p.TopProductsByState {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// RecordState returns the normalized state of a record, falling back to the
// last part of its location.
func RecordState(r model.Record) string {
	return NormalizeState(analytics.RecordState(r))
}

// RegionalPreferences ranks product categories by revenue within each state.
// Records without a state are ignored.
func RegionalPreferences(records []model.Record) Preferences {
	type key struct{ state, product string }
	buyers := make(map[key]map[string]bool)
	revenue := make(map[key]decimal.Decimal)
	for _, r := range records {
		state := RecordState(r)
		if state == "" {
			continue
		}
		k := key{state: state, product: r.ProductCategory}
		if buyers[k] == nil {
			buyers[k] = make(map[string]bool)
		}
		buyers[k][r.CustomerID] = true
		revenue[k] = revenue[k].Add(r.SalesAmount)
	}

	rows := make([]StateProduct, 0, len(buyers))
	for k, set := range buyers {
		rows = append(rows, StateProduct{
			State:           k.state,
			ProductCategory: k.product,
			TotalRevenue:    revenue[k],
			NumBusinesses:   len(set),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].State != rows[j].State {
			return rows[i].State < rows[j].State
		}
		return rows[i].ProductCategory < rows[j].ProductCategory
	})

	prefs := Preferences{TopProductsByState: make(map[string][]StateProduct), RegionalData: rows}
	for _, row := range rows {
		prefs.TopProductsByState[row.State] = append(prefs.TopProductsByState[row.State], row)
	}
	for state, list := range prefs.TopProductsByState {
		sort.SliceStable(list, func(i, j int) bool { return list[i].TotalRevenue.GreaterThan(list[j].TotalRevenue) })
		if len(list) > TopProductsPerState {
			list = list[:TopProductsPerState]
		}
		prefs.TopProductsByState[state] = list
	}
	return prefs
}
