package geo

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

func fixture() []model.Record {
	return []model.Record{
		rec("A1", "Retail", "Gifts", "Austin, TX", 100),
		rec("A1", "Retail", "Cards", "Austin, TX", 40),
		rec("A2", "Retail", "Toys", "Dallas, TX", 60),
		rec("A2", "Retail", "Books", "Dallas, TX", 20),
		rec("A2", "Retail", "Games", "Dallas, TX", 20),
		rec("A3", "Retail", "Books", "Houston, TX", 30),
		rec("H1", "Healthcare", "Masks", "Austin, TX", 500),
		rec("D1", "Retail", "Toys", "Denver, CO", 70),
	}
}
