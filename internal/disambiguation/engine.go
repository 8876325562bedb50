// Package disambiguation turns registry lookups into labelled, de-duplicated
// candidates. A fetch always ends with something selectable: when a registry
// returns nothing or fails, the typed identity is offered as a fallback.
package disambiguation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"searchorder/internal/catalog"
	"searchorder/internal/disambiguation/metrics"
	"searchorder/internal/providers"
	dErrors "searchorder/pkg/domain-errors"
)

// Request describes one candidate fetch.
type Request struct {
	Identity Identity
	Kind     catalog.SearchKind
	// States scopes land-title person searches.
	States []catalog.State
}

// Result is the outcome of a fetch. Candidates is never empty; Err carries
// the provider failure when the fallback was used because of one.
type Result struct {
	Candidates []Candidate
	Err        error
}

// FallbackOnly reports whether the registry offered nothing usable.
func (r Result) FallbackOnly() bool {
	return !HasAPICandidates(r.Candidates)
}

// Engine fetches candidates from the registries.
type Engine struct {
	registry providers.Registry
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	maxState int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics sets the engine metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// WithStateConcurrency bounds concurrent per-state lookups.
func WithStateConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxState = n
		}
	}
}

// New creates an engine over a registry.
func New(registry providers.Registry, opts ...Option) (*Engine, error) {
	if registry == nil {
		return nil, errors.New("provider registry is required")
	}
	e := &Engine{
		registry: registry,
		logger:   slog.Default(),
		tracer:   otel.Tracer("searchorder/disambiguation"),
		maxState: len(catalog.States()),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// Fetch runs the lookup for req and never fails outright.
func (e *Engine) Fetch(ctx context.Context, req Request) Result {
	ctx, span := e.tracer.Start(ctx, "disambiguation.fetch", trace.WithAttributes(
		attribute.String("search.kind", string(req.Kind)),
		attribute.Int("search.states", len(req.States)),
	))
	defer span.End()

	start := time.Now()
	candidates, err := e.lookup(ctx, req)
	e.metrics.ObserveFetchLatency(string(req.Kind), time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		e.metrics.IncrementFallback(string(req.Kind), "error")
		e.logger.WarnContext(ctx, "candidate lookup failed; offering fallback",
			"kind", req.Kind,
			"category", providers.GetCategory(err),
			"error", err,
		)
		return Result{Candidates: []Candidate{FallbackCandidate(req.Identity)}, Err: err}
	}
	if len(candidates) == 0 {
		e.metrics.IncrementFallback(string(req.Kind), "empty")
		return Result{Candidates: []Candidate{FallbackCandidate(req.Identity)}}
	}
	span.SetAttributes(attribute.Int("candidates", len(candidates)))
	return Result{Candidates: DedupeLabels(candidates)}
}

func (e *Engine) lookup(ctx context.Context, req Request) ([]Candidate, error) {
	if !req.Identity.Usable() {
		return nil, dErrors.New(dErrors.CodeValidation, "a last name is required to search")
	}
	switch req.Kind {
	case catalog.KindBankruptcy:
		return e.bankruptcy(ctx, req.Identity)
	case catalog.KindRelatedEntities:
		return e.relatedEntities(ctx, req.Identity)
	case catalog.KindCourtCriminal:
		return e.court(ctx, req.Identity, catalog.CourtCriminal)
	case catalog.KindCourtCivil:
		return e.court(ctx, req.Identity, catalog.CourtCivil)
	case catalog.KindLandTitlePerson:
		return e.landTitlePersons(ctx, req.Identity, req.States)
	default:
		return nil, dErrors.Newf(dErrors.CodeValidation, "search kind %q has no candidate lookup", req.Kind)
	}
}

func (e *Engine) bankruptcy(ctx context.Context, id Identity) ([]Candidate, error) {
	records, err := e.registry.SearchBankruptcyMatches(ctx, providers.BankruptcyQuery{
		FirstName:   id.FirstName,
		LastName:    id.LastName,
		DateOfBirth: ToDashed(id.DateOfBirth),
	})
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, 0, len(records))
	for _, r := range records {
		name := strings.ToUpper(JoinName(r.FirstName, r.LastName))
		out = append(out, Candidate{
			Provider:    providers.ProviderBankruptcy,
			Label:       JoinLabel(name, dobField(r.DateOfBirth), r.State, r.Suburb),
			Raw:         r,
			IdentityKey: recordKey(providers.ProviderBankruptcy, r.ID),
		})
	}
	return out, nil
}

func (e *Engine) relatedEntities(ctx context.Context, id Identity) ([]Candidate, error) {
	from, to := DOBRange(id)
	records, err := e.registry.SearchRelatedEntityMatches(ctx, providers.RelatedEntityQuery{
		FirstName: id.FirstName,
		LastName:  id.LastName,
		DobFrom:   from,
		DobTo:     to,
	})
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, 0, len(records))
	for _, r := range records {
		out = append(out, Candidate{
			Provider:    providers.ProviderRelatedEntities,
			Label:       JoinLabel(strings.ToUpper(r.Name), dobField(r.DateOfBirth), r.State, r.Suburb),
			Raw:         r,
			IdentityKey: recordKey(providers.ProviderRelatedEntities, r.ID),
		})
	}
	return out, nil
}

// court queries one court type; records self-describe their type and anything
// of the other type is dropped.
func (e *Engine) court(ctx context.Context, id Identity, courtType catalog.CourtType) ([]Candidate, error) {
	records, err := e.registry.SearchCourtMatches(ctx, providers.CourtQuery{
		FirstName: id.FirstName,
		LastName:  id.LastName,
		CourtType: string(courtType),
	})
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, 0, len(records))
	for _, r := range records {
		if !strings.EqualFold(strings.TrimSpace(r.CaseType), string(courtType)) {
			continue
		}
		out = append(out, Candidate{
			Provider:    providers.ProviderCourt,
			Label:       JoinLabel(strings.ToUpper(r.Name), string(courtType), r.Court, r.CaseNumber),
			Raw:         r,
			IdentityKey: recordKey(providers.ProviderCourt, r.ID),
		})
	}
	return out, nil
}

// SearchOrganisations passes an organisation name search through.
func (e *Engine) SearchOrganisations(ctx context.Context, term string) ([]providers.OrgSuggestion, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < 2 {
		return nil, dErrors.New(dErrors.CodeValidation, "search term must be at least 2 characters")
	}
	ctx, span := e.tracer.Start(ctx, "disambiguation.search_organisations")
	defer span.End()

	results, err := e.registry.SearchOrganisationByName(ctx, term)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "organisation search failed")
		return nil, dErrors.Wrap(err, dErrors.CodeProvider, "organisation search failed")
	}
	return results, nil
}

// JoinName joins name parts with single spaces.
func JoinName(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func dobField(raw string) string {
	if d := ToDisplay(raw); d != "" {
		return "DOB: " + d
	}
	return ""
}

func recordKey(provider, id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", provider, id)
}
