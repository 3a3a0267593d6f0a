package fetcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte("customer_id,amount\nC1,10\n"), 0o644))

	tbl, err := ReadTable(context.Background(), path, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"customer_id", "amount"}, tbl.Header)
	assert.Len(t, tbl.Rows, 1)
}

func TestReadTable_SemicolonDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte("customer_id;amount\nC1;10,5\n"), 0o644))

	tbl, err := ReadTable(context.Background(), path, Options{CSV: CSVOptions{Delimiter: ';'}})
	require.NoError(t, err)
	assert.Equal(t, []string{"C1", "10,5"}, tbl.Rows[0])
}

func TestReadTable_XLSX(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {{"customer_id", "amount"}, {"C1", "10"}},
	})

	tbl, err := ReadTable(context.Background(), path, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"C1", "10"}, tbl.Rows[0])
}

func TestReadTable_MissingFileIsLoadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	_, err := ReadTable(context.Background(), path, Options{})
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, path, le.Path)
	assert.Equal(t, "open", le.Op)
	assert.Contains(t, err.Error(), "missing.csv")
}

func TestReadTable_EmptyFileIsLoadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := ReadTable(context.Background(), path, Options{})
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "read csv", le.Op)
}
