// Package session holds the working state of one analysis run: the cleaned
// sales table, the business mapping and the enriched records derived from
// them.
package session

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/salesmix/internal/classify"
	"github.com/sells-group/salesmix/internal/ingest"
	"github.com/sells-group/salesmix/internal/model"
)

// Session caches the enriched table and rebuilds it after any input changes.
// It is not safe for concurrent mutation; share a Snapshot instead.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	sales    []model.Transaction
	mapping  model.BusinessMapping
	enriched []model.Record
}

// New returns an empty session with a fresh id.
func New() *Session {
	return &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
	}
}

// SetSales replaces the sales table and drops the enriched cache.
func (s *Session) SetSales(txns []model.Transaction) {
	s.sales = txns
	s.enriched = nil
}

// Sales returns the cleaned sales table.
func (s *Session) Sales() []model.Transaction {
	return s.sales
}

// SetMapping replaces the business mapping and drops the enriched cache.
func (s *Session) SetMapping(m model.BusinessMapping) {
	s.mapping = m
	s.enriched = nil
}

// Mapping returns the current business mapping, nil when none was set.
func (s *Session) Mapping() model.BusinessMapping {
	return s.mapping
}

// HasMapping reports whether a business mapping was set.
func (s *Session) HasMapping() bool {
	return s.mapping != nil
}

// AutoClassify builds a mapping for every customer in the sales table,
// starting from the current mapping as the file mapping.
func (s *Session) AutoClassify(c *classify.Classifier, useKeywords bool) model.BusinessMapping {
	ids := classify.UniqueCustomers(s.sales)
	m := c.BuildMapping(ids, s.mapping, useKeywords)

	zap.L().Debug("session: auto-classified customers",
		zap.String("session_id", s.ID.String()),
		zap.Int("customers", len(ids)),
		zap.Bool("use_keywords", useKeywords),
	)

	s.SetMapping(m)
	return m
}

// Enriched returns the sales table joined with the mapping. Without a mapping
// every record is labeled "Unknown".
func (s *Session) Enriched() []model.Record {
	if s.enriched == nil {
		s.enriched = ingest.MergeBusinessCategories(s.sales, s.mapping)
	}
	return s.enriched
}

// Snapshot is an immutable copy of a session's state.
type Snapshot struct {
	SessionID string
	Records   []model.Record
	Mapping   model.BusinessMapping
}

// Snapshot returns a deep copy of the enriched records and mapping.
func (s *Session) Snapshot() *Snapshot {
	records := s.Enriched()
	out := &Snapshot{
		SessionID: s.ID.String(),
		Records:   make([]model.Record, len(records)),
	}
	copy(out.Records, records)
	if s.mapping != nil {
		out.Mapping = s.mapping.Clone()
	}
	return out
}
