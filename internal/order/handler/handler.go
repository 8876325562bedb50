package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"searchorder/internal/catalog"
	"searchorder/internal/disambiguation"
	"searchorder/internal/dispatch"
	"searchorder/internal/order"
	"searchorder/internal/pricing"
	"searchorder/internal/providers"
	"searchorder/internal/selection"
	"searchorder/internal/subject"
	dErrors "searchorder/pkg/domain-errors"
	"searchorder/pkg/platform/httputil"
	"searchorder/pkg/requestcontext"
)

// Service defines the order operations the HTTP layer exposes.
type Service interface {
	Create(ctx context.Context, kind catalog.SubjectKind) (order.Summary, error)
	Get(ctx context.Context, id string) (order.Summary, error)
	Delete(ctx context.Context, id string) error
	SetCategory(ctx context.Context, id string, kind catalog.SubjectKind) (order.Summary, error)
	SetIndividual(ctx context.Context, id string, in subject.Individual) (order.Summary, error)
	SelectOrganisation(ctx context.Context, id string, org providers.OrgSuggestion) (order.Summary, error)
	ResetSubject(ctx context.Context, id string) (order.Summary, error)
	SearchOrganisations(ctx context.Context, term string) ([]providers.OrgSuggestion, error)
	ToggleSearch(ctx context.Context, id string, code catalog.Code) (order.Summary, error)
	ToggleSelectAll(ctx context.Context, id string, cat catalog.Category) (order.Summary, error)
	ResetCategory(ctx context.Context, id string, cat catalog.Category) (order.Summary, error)
	SetOption(ctx context.Context, id string, field selection.Field, value string) (order.Summary, error)
	ActiveDisambiguation(ctx context.Context, id string) (*disambiguation.Session, error)
	ConfirmDisambiguation(ctx context.Context, id, sessionID string, keys []string) (order.Summary, error)
	CancelDisambiguation(ctx context.Context, id, sessionID string) (order.Summary, error)
	RefreshLandTitleCounts(ctx context.Context, id string) (order.Summary, error)
	Price(ctx context.Context, id string) (pricing.Breakdown, error)
	Submit(ctx context.Context, id string) ([]dispatch.Job, error)
	Jobs(ctx context.Context, id string) ([]dispatch.Job, error)
}

// Handler serves the order wizard over HTTP.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// New creates an order Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// Register registers the order routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/organisations", h.handleSearchOrganisations)
	r.Post("/orders", h.handleCreate)
	r.Route("/orders/{orderID}", func(r chi.Router) {
		r.Use(withOrderID)
		r.Get("/", h.handleGet)
		r.Delete("/", h.handleDelete)
		r.Put("/category", h.handleSetCategory)
		r.Put("/subject/individual", h.handleSetIndividual)
		r.Put("/subject/organisation", h.handleSelectOrganisation)
		r.Delete("/subject", h.handleResetSubject)
		r.Post("/searches/{code}", h.handleToggleSearch)
		r.Post("/categories/{category}/all", h.handleToggleSelectAll)
		r.Delete("/categories/{category}", h.handleResetCategory)
		r.Put("/options", h.handleSetOption)
		r.Get("/disambiguation", h.handleActiveDisambiguation)
		r.Post("/disambiguation/confirm", h.handleConfirm)
		r.Post("/disambiguation/cancel", h.handleCancel)
		r.Post("/land-title/counts", h.handleRefreshCounts)
		r.Get("/price", h.handlePrice)
		r.Post("/submit", h.handleSubmit)
		r.Get("/jobs", h.handleJobs)
	})
}

func withOrderID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithOrderID(r.Context(), chi.URLParam(r, "orderID"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// fail logs and writes a service error. Client errors log at WARN, the rest
// at ERROR.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"order_id", requestcontext.OrderID(ctx),
		"error", err,
	}
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}

func (h *Handler) writeSummary(ctx context.Context, w http.ResponseWriter, status int, msg string, s order.Summary, err error) {
	if err != nil {
		h.fail(ctx, w, msg, err)
		return
	}
	httputil.WriteJSON(w, status, FromSummary(s))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateOrderRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	s, err := h.service.Create(ctx, req.kind)
	h.writeSummary(ctx, w, http.StatusCreated, "failed to create order", s, err)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, err := h.service.Get(ctx, requestcontext.OrderID(ctx))
	h.writeSummary(ctx, w, http.StatusOK, "failed to load order", s, err)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Delete(ctx, requestcontext.OrderID(ctx)); err != nil {
		h.fail(ctx, w, "failed to delete order", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSetCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[SetCategoryRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	s, err := h.service.SetCategory(ctx, requestcontext.OrderID(ctx), req.kind)
	h.writeSummary(ctx, w, http.StatusOK, "failed to set category", s, err)
}

func (h *Handler) handleSetIndividual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[SetIndividualRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	s, err := h.service.SetIndividual(ctx, requestcontext.OrderID(ctx), req.individual())
	h.writeSummary(ctx, w, http.StatusOK, "failed to set individual", s, err)
}

func (h *Handler) handleSelectOrganisation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[SelectOrganisationRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	s, err := h.service.SelectOrganisation(ctx, requestcontext.OrderID(ctx), req.suggestion())
	h.writeSummary(ctx, w, http.StatusOK, "failed to select organisation", s, err)
}

func (h *Handler) handleResetSubject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, err := h.service.ResetSubject(ctx, requestcontext.OrderID(ctx))
	h.writeSummary(ctx, w, http.StatusOK, "failed to reset subject", s, err)
}

func (h *Handler) handleSearchOrganisations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "q is required"))
		return
	}
	orgs, err := h.service.SearchOrganisations(ctx, term)
	if err != nil {
		h.fail(ctx, w, "organisation search failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OrganisationsResponse{Organisations: nonNil(orgs)})
}

func (h *Handler) handleToggleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := catalog.Code(chi.URLParam(r, "code"))
	s, err := h.service.ToggleSearch(ctx, requestcontext.OrderID(ctx), code)
	h.writeSummary(ctx, w, http.StatusOK, "failed to toggle search", s, err)
}

func (h *Handler) categoryParam(w http.ResponseWriter, r *http.Request) (catalog.Category, bool) {
	cat, err := catalog.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return cat, true
}

func (h *Handler) handleToggleSelectAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cat, ok := h.categoryParam(w, r)
	if !ok {
		return
	}
	s, err := h.service.ToggleSelectAll(ctx, requestcontext.OrderID(ctx), cat)
	h.writeSummary(ctx, w, http.StatusOK, "failed to toggle category", s, err)
}

func (h *Handler) handleResetCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cat, ok := h.categoryParam(w, r)
	if !ok {
		return
	}
	s, err := h.service.ResetCategory(ctx, requestcontext.OrderID(ctx), cat)
	h.writeSummary(ctx, w, http.StatusOK, "failed to reset category", s, err)
}

func (h *Handler) handleSetOption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[SetOptionRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	s, err := h.service.SetOption(ctx, requestcontext.OrderID(ctx), req.field(), req.Value)
	h.writeSummary(ctx, w, http.StatusOK, "failed to set option", s, err)
}

func (h *Handler) handleActiveDisambiguation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := h.service.ActiveDisambiguation(ctx, requestcontext.OrderID(ctx))
	if err != nil {
		h.fail(ctx, w, "failed to load disambiguation", err)
		return
	}
	if sess == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sess)
}

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[ConfirmRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	s, err := h.service.ConfirmDisambiguation(ctx, requestcontext.OrderID(ctx), req.SessionID, req.CandidateKeys)
	h.writeSummary(ctx, w, http.StatusOK, "failed to confirm disambiguation", s, err)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CancelRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	s, err := h.service.CancelDisambiguation(ctx, requestcontext.OrderID(ctx), req.SessionID)
	h.writeSummary(ctx, w, http.StatusOK, "failed to cancel disambiguation", s, err)
}

func (h *Handler) handleRefreshCounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, err := h.service.RefreshLandTitleCounts(ctx, requestcontext.OrderID(ctx))
	h.writeSummary(ctx, w, http.StatusOK, "failed to refresh land title counts", s, err)
}

func (h *Handler) handlePrice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	b, err := h.service.Price(ctx, requestcontext.OrderID(ctx))
	if err != nil {
		h.fail(ctx, w, "failed to price order", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromBreakdown(b))
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobs, err := h.service.Submit(ctx, requestcontext.OrderID(ctx))
	if err != nil {
		h.fail(ctx, w, "failed to submit order", err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, JobsResponse{Jobs: nonNil(jobs)})
}

func (h *Handler) handleJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobs, err := h.service.Jobs(ctx, requestcontext.OrderID(ctx))
	if err != nil {
		h.fail(ctx, w, "failed to load jobs", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, JobsResponse{Jobs: nonNil(jobs)})
}
