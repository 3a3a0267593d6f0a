// Package analytics aggregates enriched sales records into category
// matrices, rankings, opportunity scores, trends and summaries.
package analytics

import (
	"sort"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/sells-group/salesmix/internal/model"
)

// Level selects which business label rows are grouped by.
type Level string

// Supported grouping levels.
const (
	LevelCategory    Level = "category"
	LevelSubCategory Level = "sub_category"
)

// ParseLevel validates a level name. Empty means LevelCategory.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case "", LevelCategory:
		return LevelCategory, nil
	case LevelSubCategory:
		return LevelSubCategory, nil
	default:
		return "", eris.Errorf("analytics: unknown level %q (want category or sub_category)", s)
	}
}

// businessLabel returns the row label of r at the given level.
func businessLabel(r model.Record, level Level) string {
	if level == LevelSubCategory {
		return r.BusinessSubCategory
	}
	return r.BusinessCategory
}

type cell struct {
	sum   decimal.Decimal
	count int
}

type pivot struct {
	rows, cols []string
	cells      map[[2]string]*cell
}

func buildPivot(records []model.Record, level Level) *pivot {
	p := &pivot{cells: make(map[[2]string]*cell)}
	rowSeen := make(map[string]bool)
	colSeen := make(map[string]bool)

	for _, r := range records {
		row := businessLabel(r, level)
		col := r.ProductCategory
		if !rowSeen[row] {
			rowSeen[row] = true
			p.rows = append(p.rows, row)
		}
		if !colSeen[col] {
			colSeen[col] = true
			p.cols = append(p.cols, col)
		}
		key := [2]string{row, col}
		c, ok := p.cells[key]
		if !ok {
			c = &cell{}
			p.cells[key] = c
		}
		c.sum = c.sum.Add(r.SalesAmount)
		c.count++
	}

	sort.Strings(p.rows)
	sort.Strings(p.cols)
	if p.rows == nil {
		p.rows = []string{}
	}
	if p.cols == nil {
		p.cols = []string{}
	}
	return p
}

func (p *pivot) money(value func(*cell) decimal.Decimal) *model.Matrix {
	m := &model.Matrix{Rows: p.rows, Columns: p.cols, Values: make([][]decimal.Decimal, len(p.rows))}
	for i, row := range p.rows {
		m.Values[i] = make([]decimal.Decimal, len(p.cols))
		for j, col := range p.cols {
			if c, ok := p.cells[[2]string{row, col}]; ok {
				m.Values[i][j] = value(c)
			}
		}
	}
	return m
}

func (p *pivot) float(value func(*cell) float64) *model.FloatMatrix {
	m := &model.FloatMatrix{Rows: p.rows, Columns: p.cols, Values: make([][]float64, len(p.rows))}
	for i, row := range p.rows {
		m.Values[i] = make([]float64, len(p.cols))
		for j, col := range p.cols {
			if c, ok := p.cells[[2]string{row, col}]; ok {
				m.Values[i][j] = value(c)
			}
		}
	}
	return m
}

// CategoryMatrix sums revenue over business category x product category.
func CategoryMatrix(records []model.Record) *model.Matrix {
	return RevenueMatrix(records, LevelCategory)
}

// SubCategoryMatrix sums revenue over business sub-category x product category.
func SubCategoryMatrix(records []model.Record) *model.Matrix {
	return RevenueMatrix(records, LevelSubCategory)
}

// RevenueMatrix sums revenue at the given level. Pairs without sales are zero.
func RevenueMatrix(records []model.Record, level Level) *model.Matrix {
	return buildPivot(records, level).money(func(c *cell) decimal.Decimal { return c.sum })
}

// TransactionCountMatrix counts transactions at the given level.
func TransactionCountMatrix(records []model.Record, level Level) *model.FloatMatrix {
	return buildPivot(records, level).float(func(c *cell) float64 { return float64(c.count) })
}

// AverageValueMatrix averages transaction value at the given level.
func AverageValueMatrix(records []model.Record, level Level) *model.FloatMatrix {
	return buildPivot(records, level).float(func(c *cell) float64 {
		return c.sum.Div(decimal.NewFromInt(int64(c.count))).InexactFloat64()
	})
}
