// Package export writes analytics results as CSV, JSON, XLSX or rendered
// outreach messages.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
)

// Format is an output format for row sets.
type Format string

// Supported row formats.
const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMessages Format = "messages"
	FormatTable    Format = "table"
)

// ParseFormat validates a format name. Empty means FormatTable.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatCSV, FormatJSON, FormatMessages, FormatTable:
		return f, nil
	case "email_list":
		return FormatMessages, nil
	default:
		return "", eris.Errorf("export: unknown format %q", s)
	}
}

// WriteCSV encodes rows as CSV with a header taken from the csv struct tags.
// An empty slice still writes the header.
func WriteCSV[T any](w io.Writer, rows []T) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if len(rows) == 0 {
		var zero T
		if err := enc.EncodeHeader(zero); err != nil {
			return eris.Wrap(err, "export: write csv header")
		}
	}
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return nil
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "export: write json")
	}
	return nil
}

// WriteRows writes rows in the given format (csv or json).
func WriteRows[T any](w io.Writer, format Format, rows []T) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatJSON:
		if rows == nil {
			rows = []T{}
		}
		return WriteJSON(w, rows)
	default:
		return eris.Errorf("export: format %q not supported for rows", format)
	}
}

// ToFile creates path and passes it to write, closing it afterwards.
func ToFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	if err := write(f); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return eris.Wrap(err, "export: close file")
	}
	return nil
}
