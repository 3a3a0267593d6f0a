package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/salesmix/internal/analytics"
	"github.com/sells-group/salesmix/internal/model"
)

const dateParam = "2006-01-02"

type recordsKey struct{}

// withRecords applies the dashboard filters (business_category,
// sub_category, product_category, from, to) before the handler runs.
func (s *Server) withRecords(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := criteriaFromQuery(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withFiltered(r.Context(), s.snap.Records, c)))
	})
}

// withWindow applies only sub_category, from and to. The prospect routes
// read business_category and product_category as search terms, so those
// two must not narrow the records they search.
func (s *Server) withWindow(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := criteriaFromQuery(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		c.BusinessCategories = nil
		c.ProductCategories = nil

		next.ServeHTTP(w, r.WithContext(withFiltered(r.Context(), s.snap.Records, c)))
	})
}

func withFiltered(ctx context.Context, records []model.Record, c analytics.Criteria) context.Context {
	return context.WithValue(ctx, recordsKey{}, analytics.Filter(records, c))
}

func criteriaFromQuery(r *http.Request) (analytics.Criteria, error) {
	q := r.URL.Query()
	c := analytics.Criteria{
		BusinessCategories:    splitList(q.Get("business_category")),
		BusinessSubCategories: splitList(q.Get("sub_category")),
		ProductCategories:     splitList(q.Get("product_category")),
	}

	var err error
	if c.From, err = dateValue(q.Get("from")); err != nil {
		return c, err
	}
	if c.To, err = dateValue(q.Get("to")); err != nil {
		return c, err
	}
	return c, nil
}

func dateValue(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateParam, v)
	if err != nil {
		return time.Time{}, eris.Errorf("api: invalid date %q, want YYYY-MM-DD", v)
	}
	return t, nil
}

