package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sells-group/salesmix/internal/model"
)

func rec(customer, business, product string, amount int64) model.Record {
	return model.Record{
		Transaction: model.Transaction{
			CustomerID:      customer,
			ProductID:       customer + "-" + product,
			ProductCategory: product,
			SalesAmount:     decimal.NewFromInt(amount),
		},
		BusinessCategory:    business,
		BusinessSubCategory: model.SubCategoryUnspecified,
	}
}

func dated(r model.Record, y int, m time.Month, d int) model.Record {
	r.TransactionDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return r
}

// scenario is the three-row Retail fixture: C1 buys Gifts and Cards, C2 buys Gifts.
func scenario() []model.Record {
	return []model.Record{
		rec("C1", "Retail", "Gifts", 100),
		rec("C1", "Retail", "Cards", 50),
		rec("C2", "Retail", "Gifts", 200),
	}
}
