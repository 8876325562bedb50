// Package cache decorates a provider registry with a response cache for the
// read-only lookups. Failures are never cached.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"searchorder/internal/providers"
	"searchorder/pkg/platform/sentinel"
)

// Metrics counts cache outcomes per lookup.
type Metrics struct {
	Hits   *prometheus.CounterVec
	Misses *prometheus.CounterVec
}

// NewMetrics registers cache metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Hits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "searchorder_provider_cache_hits_total",
			Help: "Provider lookups served from cache",
		}, []string{"lookup"}),
		Misses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "searchorder_provider_cache_misses_total",
			Help: "Provider lookups that went upstream",
		}, []string{"lookup"}),
	}
}

func (m *Metrics) hit(lookup string) {
	if m == nil {
		return
	}
	m.Hits.WithLabelValues(lookup).Inc()
}

func (m *Metrics) miss(lookup string) {
	if m == nil {
		return
	}
	m.Misses.WithLabelValues(lookup).Inc()
}

// Registry is a caching providers.Registry.
type Registry struct {
	next    providers.Registry
	store   Store
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for store failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMetrics sets hit/miss counters.
func WithMetrics(m *Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// New wraps next with store.
func New(next providers.Registry, store Store, opts ...Option) *Registry {
	r := &Registry{next: next, store: store, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

var _ providers.Registry = (*Registry)(nil)

// SearchBankruptcyMatches implements providers.Registry.
func (r *Registry) SearchBankruptcyMatches(ctx context.Context, q providers.BankruptcyQuery) ([]providers.BankruptcyRecord, error) {
	return cached(ctx, r, "bankruptcy", q, func() ([]providers.BankruptcyRecord, error) {
		return r.next.SearchBankruptcyMatches(ctx, q)
	})
}

// SearchRelatedEntityMatches implements providers.Registry.
func (r *Registry) SearchRelatedEntityMatches(ctx context.Context, q providers.RelatedEntityQuery) ([]providers.RelatedRecord, error) {
	return cached(ctx, r, "related_entities", q, func() ([]providers.RelatedRecord, error) {
		return r.next.SearchRelatedEntityMatches(ctx, q)
	})
}

// SearchCourtMatches implements providers.Registry.
func (r *Registry) SearchCourtMatches(ctx context.Context, q providers.CourtQuery) ([]providers.CourtRecord, error) {
	return cached(ctx, r, "court", q, func() ([]providers.CourtRecord, error) {
		return r.next.SearchCourtMatches(ctx, q)
	})
}

// SearchLandTitlePersonNames implements providers.Registry.
func (r *Registry) SearchLandTitlePersonNames(ctx context.Context, q providers.LandTitlePersonQuery) ([]string, error) {
	return cached(ctx, r, "land_title_person_names", q, func() ([]string, error) {
		return r.next.SearchLandTitlePersonNames(ctx, q)
	})
}

// GetLandTitleCounts implements providers.Registry.
func (r *Registry) GetLandTitleCounts(ctx context.Context, q providers.LandTitleCountsQuery) (providers.LandTitleCounts, error) {
	return cached(ctx, r, "land_title_counts", q, func() (providers.LandTitleCounts, error) {
		return r.next.GetLandTitleCounts(ctx, q)
	})
}

// SearchOrganisationByName implements providers.Registry.
func (r *Registry) SearchOrganisationByName(ctx context.Context, term string) ([]providers.OrgSuggestion, error) {
	return cached(ctx, r, "organisations", term, func() ([]providers.OrgSuggestion, error) {
		return r.next.SearchOrganisationByName(ctx, term)
	})
}

// CheckDataAvailability is passed through; officer extracts seed directors
// once per order and must be current.
func (r *Registry) CheckDataAvailability(ctx context.Context, id, dataType string) (providers.Availability, error) {
	return r.next.CheckDataAvailability(ctx, id, dataType)
}

func cached[T any](ctx context.Context, r *Registry, lookup string, query any, fetch func() (T, error)) (T, error) {
	key, err := cacheKey(lookup, query)
	if err != nil {
		return fetch()
	}

	blob, err := r.store.Get(ctx, key)
	switch {
	case err == nil:
		var v T
		if jsonErr := json.Unmarshal(blob, &v); jsonErr == nil {
			r.metrics.hit(lookup)
			return v, nil
		}
		r.logger.WarnContext(ctx, "discarding undecodable cache entry", "lookup", lookup)
	case !errors.Is(err, sentinel.ErrCacheMiss):
		r.logger.WarnContext(ctx, "provider cache read failed", "lookup", lookup, "error", err)
	}

	r.metrics.miss(lookup)
	v, err := fetch()
	if err != nil {
		return v, err
	}
	if blob, encErr := json.Marshal(v); encErr == nil {
		if setErr := r.store.Set(ctx, key, blob); setErr != nil {
			r.logger.WarnContext(ctx, "provider cache write failed", "lookup", lookup, "error", setErr)
		}
	}
	return v, nil
}

func cacheKey(lookup string, query any) (string, error) {
	blob, err := json.Marshal(query)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(blob)
	return lookup + ":" + hex.EncodeToString(sum[:]), nil
}
