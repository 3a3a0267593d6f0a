package model

// BrandProduct is one entry of an external brand catalog.
type BrandProduct struct {
	ProductID       string `csv:"product_id" json:"product_id"`
	ProductName     string `csv:"product_name" json:"product_name"`
	ProductCategory string `csv:"product_category" json:"product_category"`
	ProductType     string `csv:"product_type,omitempty" json:"product_type,omitempty"`
}

// Catalog is an ordered brand catalog.
type Catalog []BrandProduct

// Categories returns the distinct product categories in first-seen order.
func (c Catalog) Categories() []string {
	seen := make(map[string]bool, len(c))
	var out []string
	for _, p := range c {
		if seen[p.ProductCategory] {
			continue
		}
		seen[p.ProductCategory] = true
		out = append(out, p.ProductCategory)
	}
	return out
}

// InCategory returns the catalog products of the given category, in catalog order.
func (c Catalog) InCategory(category string) Catalog {
	var out Catalog
	for _, p := range c {
		if p.ProductCategory == category {
			out = append(out, p)
		}
	}
	return out
}

// Names returns the product names of the first n products (all when n <= 0).
func (c Catalog) Names(n int) []string {
	if n <= 0 || n > len(c) {
		n = len(c)
	}
	out := make([]string, 0, n)
	for _, p := range c[:n] {
		out = append(out, p.ProductName)
	}
	return out
}
