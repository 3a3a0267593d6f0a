package classify

import (
	"fmt"
	"strings"

	"github.com/sells-group/salesmix/internal/model"
)

// SchemaError reports a mapping table without the columns it needs.
type SchemaError struct {
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("classify: mapping must contain customer and business category columns (missing %s). Found: %s",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

type mappingColumns struct {
	customer, category, sub int
}

// detectColumns finds the customer, category and optional sub-category
// columns by name fragments. The first matching column wins.
func detectColumns(header []string) mappingColumns {
	cols := mappingColumns{customer: -1, category: -1, sub: -1}
	for i, h := range header {
		lower := strings.ToLower(strings.TrimSpace(h))
		hasSub := strings.Contains(lower, "sub")
		hasCategory := strings.Contains(lower, "business") || strings.Contains(lower, "category")

		switch {
		case cols.customer < 0 && (strings.Contains(lower, "customer") || strings.Contains(lower, "client")):
			cols.customer = i
		case cols.sub < 0 && hasSub && hasCategory:
			cols.sub = i
		case cols.category < 0 && !hasSub && hasCategory:
			cols.category = i
		}
	}
	return cols
}

// LoadMapping reads a customer to business category table. Rows with a blank
// customer or category are skipped. A blank or missing sub-category leaves
// the class without one.
func LoadMapping(t *model.Table) (model.BusinessMapping, error) {
	cols := detectColumns(t.Header)

	var missing []string
	if cols.customer < 0 {
		missing = append(missing, "customer")
	}
	if cols.category < 0 {
		missing = append(missing, "business_category")
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing, Found: t.Header}
	}

	mapping := make(model.BusinessMapping, len(t.Rows))
	for _, row := range t.Rows {
		id := strings.TrimSpace(t.Value(row, cols.customer))
		category := strings.TrimSpace(t.Value(row, cols.category))
		if id == "" || category == "" {
			continue
		}
		class := model.NewBusinessClass(category)
		if sub := strings.TrimSpace(t.Value(row, cols.sub)); sub != "" {
			class = class.WithSub(sub)
		}
		mapping[id] = class
	}
	return mapping, nil
}
