// Package api serves read-only analytics over a session snapshot as JSON.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/salesmix/internal/analytics"
	"github.com/sells-group/salesmix/internal/classify"
	"github.com/sells-group/salesmix/internal/geo"
	"github.com/sells-group/salesmix/internal/model"
	"github.com/sells-group/salesmix/internal/outreach"
	"github.com/sells-group/salesmix/internal/session"
)

// Defaults are used when a request leaves a parameter out.
type Defaults struct {
	TopN            int
	Metric          string
	Period          string
	RadiusMiles     float64
	Recommendations int
	TopLocations    int
	MaxResults      int
	SimilarProducts int
}

// Server answers analytics queries against one snapshot.
type Server struct {
	snap     *session.Snapshot
	taxonomy *classify.Taxonomy
	defaults Defaults
}

// NewServer returns a server over snap. A nil taxonomy serves the built-in one.
func NewServer(snap *session.Snapshot, tax *classify.Taxonomy, d Defaults) *Server {
	if tax == nil {
		tax = classify.DefaultTaxonomy()
	}
	return &Server{snap: snap, taxonomy: tax, defaults: d}
}

// Router builds the HTTP routes. allowedOrigins configures CORS.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Get("/taxonomy", s.getTaxonomy)
	r.Group(func(r chi.Router) {
		r.Use(s.withRecords)
		r.Get("/summary", s.summary)
		r.Get("/matrix", s.matrix)
		r.Get("/top", s.top)
		r.Get("/opportunities", s.opportunities)
		r.Get("/trends", s.trends)
		r.Get("/locations", s.locations)
	})
	r.Group(func(r chi.Router) {
		r.Use(s.withWindow)
		r.Get("/similar", s.similar)
		r.Get("/outreach", s.outreach)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Debug("api: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"session_id": s.snap.SessionID,
		"records":    len(s.snap.Records),
	})
}

func (s *Server) getTaxonomy(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.taxonomy)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analytics.SummaryStatistics(recordsFrom(r)))
}

func (s *Server) matrix(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	level, err := analytics.ParseLevel(q.Get("level"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	records := recordsFrom(r)
	switch analytics.Metric(q.Get("value")) {
	case "", analytics.MetricRevenue:
		writeJSON(w, http.StatusOK, analytics.RevenueMatrix(records, level))
	case analytics.MetricCount:
		writeJSON(w, http.StatusOK, analytics.TransactionCountMatrix(records, level))
	case analytics.MetricAvgValue:
		writeJSON(w, http.StatusOK, analytics.AverageValueMatrix(records, level))
	default:
		writeError(w, http.StatusBadRequest, eris.Errorf("api: unknown matrix value %q", q.Get("value")))
	}
}

func (s *Server) top(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	n, err := intParam(q.Get("n"), s.defaults.TopN)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	level, err := analytics.ParseLevel(q.Get("level"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	metric := q.Get("metric")
	if metric == "" {
		metric = s.defaults.Metric
	}

	combos, err := analytics.TopCombinations(recordsFrom(r), n, analytics.Metric(metric), level)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(combos))
}

func (s *Server) opportunities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(analytics.IdentifyOpportunities(recordsFrom(r))))
}

func (s *Server) trends(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = s.defaults.Period
	}
	p, err := analytics.ParsePeriod(period)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	points, err := analytics.Trends(recordsFrom(r), p)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(points))
}

func (s *Server) locations(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r.URL.Query().Get("n"), s.defaults.TopLocations)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, geo.LocationInsights(recordsFrom(r), n))
}

func (s *Server) similar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := geo.Query{
		BusinessCategory: q.Get("business_category"),
		ProductCategory:  q.Get("product_category"),
		Location:         q.Get("location"),
		RadiusMiles:      s.defaults.RadiusMiles,
	}
	if query.ProductCategory == "" || query.Location == "" {
		writeError(w, http.StatusBadRequest, eris.New("api: product_category and location are required"))
		return
	}

	var err error
	if query.Limit, err = intParam(q.Get("limit"), s.defaults.Recommendations); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if v := q.Get("radius"); v != "" {
		if query.RadiusMiles, err = strconv.ParseFloat(v, 64); err != nil {
			writeError(w, http.StatusBadRequest, eris.Errorf("api: invalid radius %q", v))
			return
		}
	}

	writeJSON(w, http.StatusOK, nonNil(geo.FindSimilarBusinesses(recordsFrom(r), query)))
}

func (s *Server) outreach(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := outreach.TargetQuery{
		BusinessCategory: q.Get("business_category"),
		ProductCategory:  q.Get("product_category"),
		Location:         q.Get("location"),
		State:            q.Get("state"),
		SimilarProducts:  s.defaults.SimilarProducts,
	}
	if query.ProductCategory == "" {
		writeError(w, http.StatusBadRequest, eris.New("api: product_category is required"))
		return
	}
	limit, err := intParam(q.Get("limit"), s.defaults.MaxResults)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, nonNil(outreach.GenerateOutreachList(recordsFrom(r), query, limit)))
}

func intParam(v string, fallback int) (int, error) {
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, eris.Errorf("api: invalid count %q", v)
	}
	return n, nil
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// recordsFrom returns the filtered records stored by withRecords.
func recordsFrom(r *http.Request) []model.Record {
	records, _ := r.Context().Value(recordsKey{}).([]model.Record)
	return records
}
