// Package classify assigns business categories to customers from a mapping
// file or by keyword matching on the customer name.
package classify

import (
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/salesmix/internal/model"
)

// CategoryRule is one business category with its matching keywords.
type CategoryRule struct {
	Name          string   `yaml:"name" json:"name"`
	Keywords      []string `yaml:"keywords" json:"keywords,omitempty"`
	SubCategories []string `yaml:"sub_categories,omitempty" json:"sub_categories,omitempty"`
}

// Taxonomy is an ordered list of category rules. Order decides which
// category wins when a name matches keywords of several.
type Taxonomy struct {
	Categories []CategoryRule `yaml:"categories" json:"categories"`
}

// Names returns the category names in declared order.
func (t *Taxonomy) Names() []string {
	out := make([]string, len(t.Categories))
	for i, c := range t.Categories {
		out[i] = c.Name
	}
	return out
}

// DefaultTaxonomy returns the built-in taxonomy.
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{Categories: []CategoryRule{
		{Name: "Retail", Keywords: []string{"retail", "store", "shop", "market", "outlet", "merchant"}},
		{Name: "Healthcare", Keywords: []string{"health", "medical", "hospital", "clinic", "pharmacy", "doctor", "nurse"}},
		{Name: "Manufacturing", Keywords: []string{"manufacturing", "factory", "production", "industrial", "manufacturer"}},
		{Name: "Technology", Keywords: []string{"tech", "software", "IT", "computer", "digital", "technology", "tech company"}},
		{Name: "Finance", Keywords: []string{"bank", "financial", "finance", "investment", "accounting", "insurance"}},
		{Name: "Education", Keywords: []string{"school", "university", "education", "college", "academy", "learning"}},
		{Name: "Real Estate", Keywords: []string{"real estate", "property", "realty", "housing", "construction"}},
		{Name: "Hospitality", Keywords: []string{"hotel", "restaurant", "hospitality", "catering", "tourism"}},
		{Name: "Transportation", Keywords: []string{"transport", "logistics", "shipping", "delivery", "freight"}},
		{Name: "Construction", Keywords: []string{"construction", "contractor", "building", "architect"}},
		{Name: "Food & Beverage", Keywords: []string{"food", "restaurant", "cafe", "beverage", "catering"}},
		{Name: "Professional Services", Keywords: []string{"consulting", "legal", "law", "advisory", "services"}},
		{Name: model.CategoryOther},
	}}
}

// LoadTaxonomy reads a taxonomy from a YAML file with a top-level
// "categories" list.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "classify: read taxonomy %s", path)
	}

	var tax Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return nil, eris.Wrap(err, "classify: parse taxonomy")
	}
	if err := tax.validate(); err != nil {
		return nil, err
	}
	return &tax, nil
}

// Write encodes the taxonomy as YAML in the form LoadTaxonomy reads.
func (t *Taxonomy) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return eris.Wrap(err, "classify: encode taxonomy")
	}
	if err := enc.Close(); err != nil {
		return eris.Wrap(err, "classify: encode taxonomy")
	}
	return nil
}

func (t *Taxonomy) validate() error {
	if len(t.Categories) == 0 {
		return eris.New("classify: taxonomy has no categories")
	}
	seen := make(map[string]bool, len(t.Categories))
	for i, c := range t.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return eris.Errorf("classify: taxonomy category %d has no name", i)
		}
		if seen[name] {
			return eris.Errorf("classify: duplicate taxonomy category %q", name)
		}
		seen[name] = true
		t.Categories[i].Name = name
	}
	return nil
}
