package brand

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/salesmix/internal/model"
)

func rec(customer, business, product, location string, amount int64) model.Record {
	return model.Record{
		Transaction: model.Transaction{
			CustomerID:      customer,
			ProductID:       customer + "-" + product,
			ProductCategory: product,
			SalesAmount:     decimal.NewFromInt(amount),
			Location:        location,
		},
		BusinessCategory:    business,
		BusinessSubCategory: model.SubCategoryUnspecified,
	}
}

func product(id, name, category string) model.BrandProduct {
	return model.BrandProduct{ProductID: id, ProductName: name, ProductCategory: category}
}

func customerIDs[T interface{ id() string }](rows []T) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.id()
	}
	return out
}

func (m Match) id() string        { return m.CustomerID }
func (m CatalogMatch) id() string { return m.CustomerID }
