package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sells-group/salesmix/internal/export"
	"github.com/sells-group/salesmix/internal/model"
)

// addOutputFlags registers --format, --output and, when messages is set,
// --template.
func addOutputFlags(cmd *cobra.Command, formats string, messages bool) {
	f := cmd.Flags()
	f.String("format", "table", "output format: "+formats)
	f.String("output", "", "output file path (default: stdout)")
	if messages {
		f.String("template", "", "text/template file for --format messages (default built-in email)")
	}
}

// output writes rows in the format chosen by the command flags. table renders
// the human-readable form; messages may be nil when the rows carry no
// outreach message.
func output[T any](cmd *cobra.Command, rows []T, table func(io.Writer, []T) error, messages func(T) model.OutreachMessage) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	format, err := export.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	write := func(w io.Writer) error {
		switch format {
		case export.FormatTable:
			return table(w, rows)
		case export.FormatMessages:
			if messages == nil {
				return eris.Errorf("%s: --format messages is not supported", cmd.Name())
			}
			r, err := messageRenderer(cmd)
			if err != nil {
				return err
			}
			msgs := make([]model.OutreachMessage, len(rows))
			for i, row := range rows {
				msgs[i] = messages(row)
			}
			return export.WriteMessages(w, r, msgs)
		default:
			return export.WriteRows(w, format, rows)
		}
	}

	if outputPath == "" {
		return write(os.Stdout)
	}
	if err := export.ToFile(outputPath, write); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", len(rows), outputPath)
	return nil
}

// outputValue writes a single JSON document, or the table form.
func outputValue(cmd *cobra.Command, v any, table func(io.Writer) error) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	format, err := export.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	write := func(w io.Writer) error {
		switch format {
		case export.FormatTable:
			return table(w)
		case export.FormatJSON:
			return export.WriteJSON(w, v)
		default:
			return eris.Errorf("%s: --format must be table or json (got %q)", cmd.Name(), format)
		}
	}

	if outputPath == "" {
		return write(os.Stdout)
	}
	return export.ToFile(outputPath, write)
}

func messageRenderer(cmd *cobra.Command) (export.MessageRenderer, error) {
	path, _ := cmd.Flags().GetString("template")
	if path == "" {
		return export.NewTemplateRenderer("")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read template %s", path)
	}
	return export.NewTemplateRenderer(string(data))
}

// tableWriter accumulates the first write error so row loops stay flat.
type tableWriter struct {
	w   io.Writer
	err error
}

func (t *tableWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *tableWriter) rule(n int) {
	t.printf("%s\n", strings.Repeat("-", n))
}

func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	var result []byte
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}

	out := string(result) + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
