package model

import "github.com/shopspring/decimal"

// Matrix is a dense pivot of money values. Rows and Columns are sorted and
// every (row, column) pair has a cell.
type Matrix struct {
	Rows    []string            `json:"rows"`
	Columns []string            `json:"columns"`
	Values  [][]decimal.Decimal `json:"values"`
}

// Cell returns the value at (row, col), or zero when either label is unknown.
func (m *Matrix) Cell(row, col string) decimal.Decimal {
	r, c := indexOf(m.Rows, row), indexOf(m.Columns, col)
	if r < 0 || c < 0 {
		return decimal.Zero
	}
	return m.Values[r][c]
}

// Total sums every cell.
func (m *Matrix) Total() decimal.Decimal {
	total := decimal.Zero
	for _, row := range m.Values {
		for _, v := range row {
			total = total.Add(v)
		}
	}
	return total
}

// FloatMatrix is a dense pivot of counts or ratios.
type FloatMatrix struct {
	Rows    []string    `json:"rows"`
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// Cell returns the value at (row, col), or zero when either label is unknown.
func (m *FloatMatrix) Cell(row, col string) float64 {
	r, c := indexOf(m.Rows, row), indexOf(m.Columns, col)
	if r < 0 || c < 0 {
		return 0
	}
	return m.Values[r][c]
}

func indexOf(labels []string, label string) int {
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return -1
}
