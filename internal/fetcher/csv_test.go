package fetcher

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func collectRows(t *testing.T, rowCh <-chan []string, errCh <-chan error) ([][]string, error) {
	t.Helper()
	var rows [][]string
	for row := range rowCh {
		rows = append(rows, row)
	}
	// Drain error channel
	for err := range errCh {
		if err != nil {
			return rows, err
		}
	}
	return rows, nil
}

func TestStreamCSV_Basic(t *testing.T) {
	input := "a,b,c\n1,2,3\n4,5,6\n"
	rowCh, errCh := StreamCSV(context.Background(), strings.NewReader(input), CSVOptions{})
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a", "b", "c"}, rows[0])
	assert.Equal(t, []string{"4", "5", "6"}, rows[2])
}

func TestStreamCSV_PipeDelimited(t *testing.T) {
	input := "a|b|c\n1|2|3\n"
	rowCh, errCh := StreamCSV(context.Background(), strings.NewReader(input), CSVOptions{
		Delimiter: '|',
	})
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "2", "3"}, rows[1])
}

func TestStreamCSV_TrimSpace(t *testing.T) {
	input := " a , b , c \n 1 , 2 , 3 \n"
	rowCh, errCh := StreamCSV(context.Background(), strings.NewReader(input), CSVOptions{
		TrimSpace: true,
	})
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b", "c"}, rows[0])
	assert.Equal(t, []string{"1", "2", "3"}, rows[1])
}

func TestStreamCSV_Comment(t *testing.T) {
	input := "# exported 2024-01-01\na,b\n1,2\n"
	rowCh, errCh := StreamCSV(context.Background(), strings.NewReader(input), CSVOptions{
		Comment: '#',
	})
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b"}, rows[0])
}

func TestStreamCSV_ContextAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rowCh, errCh := StreamCSV(ctx, strings.NewReader("a,b\n1,2\n"), CSVOptions{})
	for range rowCh { //nolint:revive // drain
	}
	var gotErr error
	for err := range errCh {
		if err != nil {
			gotErr = err
		}
	}
	require.Error(t, gotErr)
	assert.Contains(t, gotErr.Error(), "context cancelled")
}

func TestStreamCSV_ReadError(t *testing.T) {
	r := io.MultiReader(strings.NewReader("a,b\n1,2\n"), &errReader{err: io.ErrUnexpectedEOF})

	rowCh, errCh := StreamCSV(context.Background(), r, CSVOptions{})
	for range rowCh { //nolint:revive // drain
	}
	var gotErr error
	for err := range errCh {
		if err != nil {
			gotErr = err
		}
	}
	require.Error(t, gotErr)
	assert.Contains(t, gotErr.Error(), "csv: read row")
}

type errReader struct{ err error }

func (r *errReader) Read([]byte) (int, error) { return 0, r.err }

func TestReadCSV_HeaderAndRows(t *testing.T) {
	input := " customer_id ,product_id\nC1,P1\n,\nC2,P2\n"
	tbl, err := ReadCSV(context.Background(), strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"customer_id", "product_id"}, tbl.Header)
	// Blank rows are skipped.
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"C2", "P2"}, tbl.Rows[1])
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(context.Background(), strings.NewReader(""), CSVOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing header row")
}

func TestReadCSV_StripsUTF8BOM(t *testing.T) {
	input := "\ufeffcustomer_id,amount\nC1,10\n"
	tbl, err := ReadCSV(context.Background(), strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, "customer_id", tbl.Header[0])
}

func TestReadCSV_UTF16WithBOM(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, err := enc.String("customer_id,city\nC1,Zürich\n")
	require.NoError(t, err)

	tbl, err := ReadCSV(context.Background(), strings.NewReader(encoded), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"customer_id", "city"}, tbl.Header)
	assert.Equal(t, "Zürich", tbl.Rows[0][1])
}

func TestReadCSV_Windows1252(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String("customer_id,city\nCafé Roma,Montréal\n")
	require.NoError(t, err)

	tbl, err := ReadCSV(context.Background(), strings.NewReader(encoded), CSVOptions{Charset: "windows-1252"})
	require.NoError(t, err)
	assert.Equal(t, "Café Roma", tbl.Rows[0][0])
	assert.Equal(t, "Montréal", tbl.Rows[0][1])
}

func TestReadCSV_UnknownCharset(t *testing.T) {
	_, err := ReadCSV(context.Background(), strings.NewReader("a\n1\n"), CSVOptions{Charset: "klingon-8"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported charset")
}
