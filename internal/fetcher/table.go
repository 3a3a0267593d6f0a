package fetcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/salesmix/internal/model"
)

// LoadError reports a failed read of an input file. No partial table is
// returned alongside it.
type LoadError struct {
	Path string
	Op   string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("fetcher: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Options configures ReadTable.
type Options struct {
	CSV  CSVOptions
	XLSX XLSXOptions
}

// ReadTable loads a CSV, XLSX or JSON file (by extension) into a raw table.
// A ZIP archive holding exactly one such file is read transparently.
func ReadTable(ctx context.Context, path string, opts Options) (*model.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		t, err := readZIP(ctx, path, opts)
		if err != nil {
			var le *LoadError
			if errors.As(err, &le) {
				return nil, err
			}
			return nil, &LoadError{Path: path, Op: "read zip", Err: err}
		}
		return t, nil
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, &LoadError{Path: path, Op: "open", Err: eris.Wrap(err, "fetcher: open file")}
		}
		defer f.Close() //nolint:errcheck

		t, err := ReadJSON(ctx, f)
		if err != nil {
			return nil, &LoadError{Path: path, Op: "read json", Err: err}
		}
		return t, nil
	case ".xlsx", ".xlsm":
		t, err := ReadXLSX(path, opts.XLSX)
		if err != nil {
			return nil, &LoadError{Path: path, Op: "read xlsx", Err: err}
		}
		return t, nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, &LoadError{Path: path, Op: "open", Err: eris.Wrap(err, "fetcher: open file")}
		}
		defer f.Close() //nolint:errcheck

		t, err := ReadCSV(ctx, f, opts.CSV)
		if err != nil {
			return nil, &LoadError{Path: path, Op: "read csv", Err: err}
		}
		return t, nil
	}
}
