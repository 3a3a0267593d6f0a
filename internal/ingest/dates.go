package ingest

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDates parses a date column. The first layout that parses at least one
// value is applied to the whole column; when none does, each value is parsed
// permissively. Values that cannot be parsed become the zero time.
func ParseDates(values []string, layouts []string) []time.Time {
	for _, layout := range layouts {
		parsed, n := parseWithLayout(values, layout)
		if n > 0 {
			return parsed
		}
	}

	out := make([]time.Time, len(values))
	for i, v := range values {
		v = strings.TrimSpace(v)
		if isMissing(v) {
			continue
		}
		if ts, err := dateparse.ParseAny(v); err == nil {
			out[i] = ts
		}
	}
	return out
}

func parseWithLayout(values []string, layout string) ([]time.Time, int) {
	out := make([]time.Time, len(values))
	n := 0
	for i, v := range values {
		v = strings.TrimSpace(v)
		if isMissing(v) {
			continue
		}
		ts, err := time.Parse(layout, v)
		if err != nil {
			continue
		}
		out[i] = ts
		n++
	}
	return out, n
}
