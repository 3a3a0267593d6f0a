package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/salesmix/internal/model"
)

// MatrixCorner is the header of the row-label column.
const MatrixCorner = "business_category"

// WriteMatrixCSV writes a money matrix with product categories as columns.
func WriteMatrixCSV(w io.Writer, m *model.Matrix) error {
	return writeGridCSV(w, m.Rows, m.Columns, func(i, j int) string {
		return m.Values[i][j].StringFixed(2)
	})
}

// WriteFloatMatrixCSV writes a count or average matrix.
func WriteFloatMatrixCSV(w io.Writer, m *model.FloatMatrix) error {
	return writeGridCSV(w, m.Rows, m.Columns, func(i, j int) string {
		return strconv.FormatFloat(m.Values[i][j], 'f', -1, 64)
	})
}

func writeGridCSV(w io.Writer, rows, cols []string, value func(i, j int) string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(append([]string{MatrixCorner}, cols...)); err != nil {
		return eris.Wrap(err, "export: write matrix header")
	}
	for i, row := range rows {
		record := make([]string, 0, len(cols)+1)
		record = append(record, row)
		for j := range cols {
			record = append(record, value(i, j))
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrap(err, "export: write matrix row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush matrix")
	}
	return nil
}

// MatrixSheet is one named sheet of an XLSX workbook.
type MatrixSheet struct {
	Name   string
	Matrix *model.Matrix
}

// WriteMatrixXLSX saves one sheet per matrix to path. Cells are numeric.
func WriteMatrixXLSX(path string, sheets ...MatrixSheet) error {
	if len(sheets) == 0 {
		return eris.New("export: no sheets to write")
	}

	f := xlsx.NewFile()
	for _, s := range sheets {
		sheet, err := f.AddSheet(s.Name)
		if err != nil {
			return eris.Wrapf(err, "export: add sheet %s", s.Name)
		}

		header := sheet.AddRow()
		header.AddCell().SetString(MatrixCorner)
		for _, col := range s.Matrix.Columns {
			header.AddCell().SetString(col)
		}

		for i, label := range s.Matrix.Rows {
			row := sheet.AddRow()
			row.AddCell().SetString(label)
			for j := range s.Matrix.Columns {
				row.AddCell().SetFloat(s.Matrix.Values[i][j].InexactFloat64())
			}
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}
	return nil
}
