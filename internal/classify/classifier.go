package classify

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/sells-group/salesmix/internal/model"
)

type foldedRule struct {
	name     string
	keywords []string
}

// Classifier matches customer names against a taxonomy's keywords.
type Classifier struct {
	taxonomy *Taxonomy
	rules    []foldedRule
}

// NewClassifier builds a classifier over tax. A nil taxonomy uses the default.
func NewClassifier(tax *Taxonomy) *Classifier {
	if tax == nil {
		tax = DefaultTaxonomy()
	}

	fold := cases.Fold()
	rules := make([]foldedRule, 0, len(tax.Categories))
	for _, c := range tax.Categories {
		r := foldedRule{name: c.Name}
		for _, kw := range c.Keywords {
			if kw = strings.TrimSpace(kw); kw != "" {
				r.keywords = append(r.keywords, fold.String(kw))
			}
		}
		rules = append(rules, r)
	}
	return &Classifier{taxonomy: tax, rules: rules}
}

// Taxonomy returns the taxonomy the classifier was built with.
func (c *Classifier) Taxonomy() *Taxonomy {
	return c.taxonomy
}

// ClassifyByKeyword returns the first category, in taxonomy order, with a
// keyword contained in name (case-insensitive).
func (c *Classifier) ClassifyByKeyword(name string) (string, bool) {
	folded := cases.Fold().String(name)
	for _, r := range c.rules {
		for _, kw := range r.keywords {
			if strings.Contains(folded, kw) {
				return r.name, true
			}
		}
	}
	return "", false
}

// BuildMapping classifies every customer. File entries with a category take
// precedence; remaining customers are keyword-classified when useKeywords is set and
// default to "Other" otherwise. Keyword results carry no sub-category.
func (c *Classifier) BuildMapping(customerIDs []string, fileMapping model.BusinessMapping, useKeywords bool) model.BusinessMapping {
	out := fileMapping.Clone()

	for _, id := range customerIDs {
		if class, ok := out[id]; ok && strings.TrimSpace(class.Category) != "" {
			continue
		}
		category := model.CategoryOther
		if useKeywords {
			if matched, ok := c.ClassifyByKeyword(id); ok {
				category = matched
			}
		}
		out[id] = model.NewBusinessClass(category)
	}
	return out
}

// UniqueCustomers returns the distinct customer ids in first-seen order.
func UniqueCustomers(txns []model.Transaction) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tx := range txns {
		if seen[tx.CustomerID] {
			continue
		}
		seen[tx.CustomerID] = true
		out = append(out, tx.CustomerID)
	}
	return out
}
