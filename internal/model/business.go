package model

// Default business labels.
const (
	// CategoryOther is assigned when a mapping is built and nothing classified the customer.
	CategoryOther = "Other"
	// CategoryUnknown is assigned at merge time to customers absent from the mapping.
	CategoryUnknown = "Unknown"
	// SubCategoryUnspecified is the enriched sub-category when the mapping carries none.
	SubCategoryUnspecified = "Unspecified"
)

// BusinessClass is the classification of one customer.
type BusinessClass struct {
	Category    string `json:"business_category"`
	SubCategory string `json:"business_sub_category,omitempty"`
	HasSub      bool   `json:"-"`
}

// NewBusinessClass returns a classification without a sub-category.
func NewBusinessClass(category string) BusinessClass {
	return BusinessClass{Category: category}
}

// WithSub returns a copy of c carrying the given sub-category.
func (c BusinessClass) WithSub(sub string) BusinessClass {
	c.SubCategory = sub
	c.HasSub = sub != ""
	return c
}

// BusinessMapping maps customer id to its classification.
type BusinessMapping map[string]BusinessClass

// Clone returns a shallow copy of the mapping.
func (m BusinessMapping) Clone() BusinessMapping {
	out := make(BusinessMapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
