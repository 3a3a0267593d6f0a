package model

// OutreachMessage carries the fields an outreach message is rendered from.
type OutreachMessage struct {
	CustomerID       string
	BusinessCategory string
	ProductCategory  string
	Location         string
	CurrentProducts  string
	SimilarProducts  string
}
