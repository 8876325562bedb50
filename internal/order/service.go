package order

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"searchorder/internal/catalog"
	"searchorder/internal/disambiguation"
	"searchorder/internal/dispatch"
	platformmetrics "searchorder/internal/platform/metrics"
	"searchorder/internal/pricing"
	"searchorder/internal/providers"
	"searchorder/internal/selection"
	"searchorder/internal/subject"
	dErrors "searchorder/pkg/domain-errors"
	"searchorder/pkg/platform/sentinel"
)

// Service addresses wizards by order ID.
type Service struct {
	store   Store
	deps    Deps
	logger  *slog.Logger
	metrics *platformmetrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the process-wide metrics.
func WithMetrics(m *platformmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService creates an order service over a wizard store.
func NewService(store Store, deps Deps, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("order store is required")
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}
	s := &Service{store: store, deps: deps.withDefaults(), logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if deps.Logger == nil {
		s.deps.Logger = s.logger
	}
	return s, nil
}

func (s *Service) wizard(ctx context.Context, id string) (*Wizard, error) {
	w, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "order %s not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load order")
	}
	return w, nil
}

// withWizard runs fn on the order and returns its summary.
func (s *Service) withWizard(ctx context.Context, id string, fn func(*Wizard) error) (Summary, error) {
	w, err := s.wizard(ctx, id)
	if err != nil {
		return Summary{}, err
	}
	if err := fn(w); err != nil {
		return Summary{}, err
	}
	return w.Summary(), nil
}

// Create starts an order for a subject category.
func (s *Service) Create(ctx context.Context, kind catalog.SubjectKind) (Summary, error) {
	w, err := NewWizard(uuid.NewString(), kind, s.deps)
	if err != nil {
		return Summary{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create order")
	}
	if err := s.store.Save(ctx, w); err != nil {
		return Summary{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save order")
	}
	s.metrics.IncrementOrdersCreated()
	s.logger.InfoContext(ctx, "order created", "order_id", w.ID(), "category", kind)
	return w.Summary(), nil
}

// Get returns an order summary.
func (s *Service) Get(ctx context.Context, id string) (Summary, error) {
	return s.withWizard(ctx, id, func(*Wizard) error { return nil })
}

// Delete discards an order.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.wizard(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete order")
	}
	s.metrics.DecrementOrdersActive()
	return nil
}

// SetCategory switches the subject category of an order.
func (s *Service) SetCategory(ctx context.Context, id string, kind catalog.SubjectKind) (Summary, error) {
	return s.withWizard(ctx, id, func(w *Wizard) error { return w.SetCategory(ctx, kind) })
}

// SetIndividual sets an individual subject.
func (s *Service) SetIndividual(ctx context.Context, id string, in subject.Individual) (Summary, error) {
	return s.withWizard(ctx, id, func(w *Wizard) error { return w.SetIndividual(ctx, in) })
}

// SelectOrganisation sets an organisation subject.
func (s *Service) SelectOrganisation(ctx context.Context, id string, org providers.OrgSuggestion) (Summary, error) {
	return s.withWizard(ctx, id, func(w *Wizard) error { return w.SelectOrganisation(ctx, org) })
}

// ResetSubject clears the subject of an order.
func (s *Service) ResetSubject(ctx context.Context, id string) (Summary, error) {
	return s.withWizard(ctx, id, func(w *Wizard) error { return w.ResetSubject(ctx) })
}

// SearchOrganisations suggests organisations by name.
func (s *Service) SearchOrganisations(ctx context.Context, term string) ([]providers.OrgSuggestion, error) {
	return s.deps.Fetcher.SearchOrganisations(ctx, term)
}

// ToggleSearch flips a catalog entry.
func (s *Service) ToggleSearch(ctx context.Context, id string, code catalog.Code) (Summary, error) {
	return s.withWizard(ctx, id, func(w *Wizard) error {
		_, err := w.ToggleSearch(ctx, code)
		return err
	})
}

// ToggleSelectAll flips every visible entry of a category.
func (s *Service) ToggleSelectAll(ctx context.Context, id string, cat catalog.Category) (Summary, error) {
	return s.withWizard(ctx, id, func(w *Wizard) error {
		_, err := w.ToggleSelectAll(ctx, cat)
		return err
	})
}

// ResetCategory clears a category.
func (s *Service) ResetCategory(ctx context.Context, id string, cat catalog.Category) (Summary, error) {
	return s.withWizard(ctx, id, func(w *Wizard) error { return w.Reset(ctx, cat) })
}

// SetOption changes an order option.
func (s *Service) SetOption(ctx context.Context, id string, field selection.Field, value string) (Summary, error) {
	return s.withWizard(ctx, id, func(w *Wizard) error { return w.SetSubOption(ctx, field, value) })
}

// ActiveDisambiguation returns the open dialog of an order.
func (s *Service) ActiveDisambiguation(ctx context.Context, id string) (*disambiguation.Session, error) {
	w, err := s.wizard(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess, ok := w.ActiveDisambiguation(); ok {
		return &sess, nil
	}
	return nil, nil
}

// ConfirmDisambiguation resolves the open dialog.
func (s *Service) ConfirmDisambiguation(ctx context.Context, id, sessionID string, keys []string) (Summary, error) {
	return s.withWizard(ctx, id, func(w *Wizard) error { return w.ConfirmDisambiguation(ctx, sessionID, keys) })
}

// CancelDisambiguation skips the open dialog.
func (s *Service) CancelDisambiguation(ctx context.Context, id, sessionID string) (Summary, error) {
	return s.withWizard(ctx, id, func(w *Wizard) error { return w.CancelDisambiguation(ctx, sessionID) })
}

// RefreshLandTitleCounts refreshes title counts.
func (s *Service) RefreshLandTitleCounts(ctx context.Context, id string) (Summary, error) {
	return s.withWizard(ctx, id, func(w *Wizard) error { return w.RefreshLandTitleCounts(ctx) })
}

// Price returns the price breakdown of an order.
func (s *Service) Price(ctx context.Context, id string) (pricing.Breakdown, error) {
	w, err := s.wizard(ctx, id)
	if err != nil {
		return pricing.Breakdown{}, err
	}
	return w.PriceBreakdown(), nil
}

// Submit starts dispatch and returns the initial job list.
func (s *Service) Submit(ctx context.Context, id string) ([]dispatch.Job, error) {
	w, err := s.wizard(ctx, id)
	if err != nil {
		return nil, err
	}
	batch, err := w.SubmitOrder(ctx)
	if err != nil {
		return nil, err
	}
	return batch.Jobs(), nil
}

// Jobs returns the job progress of a submitted order.
func (s *Service) Jobs(ctx context.Context, id string) ([]dispatch.Job, error) {
	w, err := s.wizard(ctx, id)
	if err != nil {
		return nil, err
	}
	batch := w.Batch()
	if batch == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "order has not been submitted")
	}
	return batch.Jobs(), nil
}
