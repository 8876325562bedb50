// Package order hosts the per-order wizard: subject entry, search selection,
// the disambiguation dialogs, pricing and submission.
package order

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"searchorder/internal/catalog"
	"searchorder/internal/director"
	"searchorder/internal/disambiguation"
	"searchorder/internal/dispatch"
	"searchorder/internal/order/metrics"
	"searchorder/internal/pricing"
	"searchorder/internal/providers"
	"searchorder/internal/resolution"
	"searchorder/internal/selection"
	"searchorder/internal/sequencer"
	seqmetrics "searchorder/internal/sequencer/metrics"
	"searchorder/internal/subject"
	dErrors "searchorder/pkg/domain-errors"
)

// Runner executes a fetch task. The default runs it on its own goroutine.
type Runner func(task func())

// Deps are the collaborators shared by every wizard.
type Deps struct {
	Catalog          *catalog.Catalog
	Fetcher          CandidateFetcher
	Registry         LookupRegistry
	Submitter        Submitter
	Policy           pricing.Policy
	Logger           *slog.Logger
	Metrics          *metrics.Metrics
	SequencerMetrics *seqmetrics.Metrics
	Runner           Runner
	// CountConcurrency bounds concurrent land-title counts lookups.
	CountConcurrency int
}

func (d Deps) validate() error {
	switch {
	case d.Catalog == nil:
		return errors.New("catalog is required")
	case d.Fetcher == nil:
		return errors.New("candidate fetcher is required")
	case d.Registry == nil:
		return errors.New("lookup registry is required")
	case d.Submitter == nil:
		return errors.New("submitter is required")
	}
	return nil
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Runner == nil {
		d.Runner = func(task func()) { go task() }
	}
	if d.Policy == "" {
		d.Policy = pricing.FallbackBillsOne
	}
	if d.CountConcurrency <= 0 {
		d.CountConcurrency = len(catalog.States())
	}
	return d
}

// Wizard is one order. All methods are safe for concurrent use; fetches run
// outside the lock and deliver their results back under it.
type Wizard struct {
	id   string
	deps Deps

	mu        sync.Mutex
	kind      catalog.SubjectKind
	holder    subject.Holder
	sel       *selection.Model
	seq       *sequencer.Sequencer
	counts    map[resolution.CountKey]storedCounts
	directors []director.Director
	seededFor string
	// epoch changes whenever the subject or category changes so results of
	// slow lookups started before can be discarded.
	epoch int
	// seeding holds the epoch whose director list is still loading; the
	// sequencer is not advanced until it arrives.
	seeding int
	batch *dispatch.Batch
}

// NewWizard creates an empty order for a subject category.
func NewWizard(id string, kind catalog.SubjectKind, deps Deps) (*Wizard, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	deps = deps.withDefaults()
	seq, err := sequencer.New(deps.Catalog,
		sequencer.WithLogger(deps.Logger.With("order_id", id)),
		sequencer.WithMetrics(deps.SequencerMetrics),
	)
	if err != nil {
		return nil, err
	}
	return &Wizard{
		id:     id,
		deps:   deps,
		kind:   kind,
		sel:    selection.New(deps.Catalog, kind),
		seq:    seq,
		counts: make(map[resolution.CountKey]storedCounts),
	}, nil
}

// ID is the order ID.
func (w *Wizard) ID() string {
	return w.id
}

func (w *Wizard) checkOpen() error {
	if w.batch != nil {
		return dErrors.New(dErrors.CodeValidation, "order has been submitted")
	}
	return nil
}

// advance runs the sequencer after a mutation and starts any fetch it asks
// for. Must be called with the lock held.
func (w *Wizard) advance(ctx context.Context) {
	if w.seeding != 0 && w.seeding == w.epoch {
		return
	}
	req := w.seq.Next(ctx, w.sel, w.holder.Current())
	w.launch(ctx, req)
	if w.seq.Stage() == sequencer.StageDone && len(w.sel.Active()) > 0 && len(w.sel.Pending()) == 0 {
		w.holder.Confirm()
	}
}

func (w *Wizard) launch(ctx context.Context, req *sequencer.FetchRequest) {
	if req == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	r := *req
	w.deps.Runner(func() {
		res := w.deps.Fetcher.Fetch(ctx, r.Request)
		w.mu.Lock()
		defer w.mu.Unlock()
		w.seq.Deliver(ctx, sequencer.FetchResult{
			SessionID:  r.SessionID,
			Generation: r.Generation,
			Result:     res,
		})
	})
}

// resetResolution discards every disambiguation decision and count and
// stages active searches again so they are resolved for the new identity.
func (w *Wizard) resetResolution(ctx context.Context) {
	w.seq.Reset()
	w.counts = make(map[resolution.CountKey]storedCounts)
	w.epoch++
	for _, code := range w.sel.Active() {
		if e, ok := w.deps.Catalog.Entry(code); ok && e.RequiresDisambiguation {
			w.restage(ctx, code)
		}
	}
}

// restage moves an active entry back to staged.
func (w *Wizard) restage(ctx context.Context, code catalog.Code) {
	if !w.sel.IsActive(code) {
		return
	}
	if err := w.sel.Deactivate(code); err != nil {
		w.deps.Logger.WarnContext(ctx, "failed to restage search", "order_id", w.id, "code", code, "error", err)
		return
	}
	if _, err := w.sel.Toggle(code); err != nil {
		w.deps.Logger.WarnContext(ctx, "failed to restage search", "order_id", w.id, "code", code, "error", err)
	}
}

func (w *Wizard) applyChanges(changes []selection.Change) {
	for _, c := range changes {
		if c.Kind == selection.ChangeStaged || c.Kind == selection.ChangeActivated {
			w.seq.Reopen(w.sel, c.Code)
		}
	}
}

// SetCategory switches between organisation and individual orders. A change
// discards the subject, selection, sessions and directors.
func (w *Wizard) SetCategory(ctx context.Context, kind catalog.SubjectKind) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkOpen(); err != nil {
		return err
	}
	if kind == w.kind {
		return nil
	}
	w.kind = kind
	w.holder.Reset()
	w.sel = selection.New(w.deps.Catalog, kind)
	w.seq.Reset()
	w.counts = make(map[resolution.CountKey]storedCounts)
	w.directors = nil
	w.seededFor = ""
	w.epoch++
	w.deps.Logger.InfoContext(ctx, "order category changed", "order_id", w.id, "category", kind)
	return nil
}

// SetIndividual sets the person the order is about.
func (w *Wizard) SetIndividual(ctx context.Context, in subject.Individual) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkOpen(); err != nil {
		return err
	}
	if w.kind != catalog.SubjectIndividual {
		return dErrors.Newf(dErrors.CodeValidation, "order category is %s", w.kind)
	}
	if err := w.holder.SetIndividual(in); err != nil {
		return err
	}
	w.resetResolution(ctx)
	w.advance(ctx)
	return nil
}

// SearchOrganisations suggests organisations for a name fragment.
func (w *Wizard) SearchOrganisations(ctx context.Context, term string) ([]providers.OrgSuggestion, error) {
	return w.deps.Fetcher.SearchOrganisations(ctx, term)
}

// SelectOrganisation sets the organisation the order is about. Its director
// list is loaded from the registry the first time the organisation is
// chosen; a failed load leaves the order without directors.
func (w *Wizard) SelectOrganisation(ctx context.Context, s providers.OrgSuggestion) error {
	w.mu.Lock()
	if err := w.checkOpen(); err != nil {
		w.mu.Unlock()
		return err
	}
	if w.kind != catalog.SubjectOrganisation {
		w.mu.Unlock()
		return dErrors.Newf(dErrors.CodeValidation, "order category is %s", w.kind)
	}
	if err := w.holder.SetOrganisation(subject.Organisation{ABN: s.ABN, ACN: s.ACN, Name: s.Name}); err != nil {
		w.mu.Unlock()
		return err
	}
	org := w.holder.Current().Organisation
	key := org.ABN
	if key == "" {
		key = org.ACN
	}
	w.resetResolution(ctx)
	seed := w.seededFor != key
	epoch := w.epoch
	if seed {
		w.seeding = epoch
	}
	w.mu.Unlock()

	var directors []director.Director
	loaded := false
	if seed {
		directors, loaded = w.loadDirectors(ctx, key)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seeding == epoch {
		w.seeding = 0
	}
	if w.epoch != epoch {
		return nil
	}
	if loaded {
		w.directors = directors
		w.seededFor = key
	} else if seed {
		w.directors = nil
	}
	w.seq.SetDirectors(w.directors)
	w.advance(ctx)
	return nil
}

func (w *Wizard) loadDirectors(ctx context.Context, id string) ([]director.Director, bool) {
	avail, err := w.deps.Registry.CheckDataAvailability(ctx, id, providers.DataTypeASICCurrent)
	if err != nil {
		w.deps.Metrics.IncrementDirectorSeedFailure()
		w.deps.Logger.WarnContext(ctx, "failed to load director extract",
			"order_id", w.id,
			"organisation", id,
			"error", err,
		)
		return nil, false
	}
	if !avail.Available || avail.Data == nil {
		return nil, true
	}
	ds := director.FromOfficers(avail.Data.Officers)
	w.deps.Logger.InfoContext(ctx, "director extract loaded",
		"order_id", w.id,
		"organisation", id,
		"directors", len(ds),
	)
	return ds, true
}

// ResetSubject clears the subject and every decision tied to it. Selected
// searches stay selected and are resolved again for the next subject.
func (w *Wizard) ResetSubject(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkOpen(); err != nil {
		return err
	}
	w.holder.Reset()
	w.resetResolution(ctx)
	w.directors = nil
	w.seededFor = ""
	w.advance(ctx)
	return nil
}

// ToggleSearch flips one catalog entry.
func (w *Wizard) ToggleSearch(ctx context.Context, code catalog.Code) ([]selection.Change, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkOpen(); err != nil {
		return nil, err
	}
	var changes []selection.Change
	if code.IsSelectAll() {
		cat, err := catalog.ParseCategory(strings.TrimSuffix(string(code), ":ALL"))
		if err != nil {
			return nil, err
		}
		cs, err := w.sel.ToggleSelectAll(cat)
		if err != nil {
			return nil, err
		}
		changes = cs
	} else {
		c, err := w.sel.Toggle(code)
		if err != nil {
			return nil, err
		}
		changes = []selection.Change{c}
	}
	w.applyChanges(changes)
	w.advance(ctx)
	return changes, nil
}

// ToggleSelectAll flips every visible entry of a category.
func (w *Wizard) ToggleSelectAll(ctx context.Context, cat catalog.Category) ([]selection.Change, error) {
	return w.ToggleSearch(ctx, catalog.SelectAllCode(cat))
}

// Reset clears one category.
func (w *Wizard) Reset(ctx context.Context, cat catalog.Category) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkOpen(); err != nil {
		return err
	}
	if _, err := w.sel.Reset(cat); err != nil {
		return err
	}
	w.advance(ctx)
	return nil
}

// SetSubOption changes an order option. Options that change what a lookup
// would return send the affected searches through disambiguation again.
func (w *Wizard) SetSubOption(ctx context.Context, field selection.Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkOpen(); err != nil {
		return err
	}
	if err := w.sel.SetSubOption(field, value); err != nil {
		return err
	}
	switch field {
	case selection.FieldCourtType:
		w.restageKind(ctx, catalog.KindCourt, false)
	case selection.FieldLandTitleStates:
		w.restageKind(ctx, catalog.KindLandTitlePerson, true)
	case selection.FieldDirectorScope:
		for _, e := range w.deps.Catalog.Entries() {
			if e.PerDirector && w.sel.IsSelectedOrPending(e.Code) {
				if e.RequiresDisambiguation {
					w.restage(ctx, e.Code)
				}
				w.seq.Reopen(w.sel, e.Code)
			}
		}
	}
	w.advance(ctx)
	return nil
}

// restageKind stages the disambiguated entries of a kind again, reopening
// their sessions when reopen is set.
func (w *Wizard) restageKind(ctx context.Context, kind catalog.SearchKind, reopen bool) {
	for _, e := range w.deps.Catalog.ByKind(kind) {
		if !e.RequiresDisambiguation || !w.sel.IsSelectedOrPending(e.Code) {
			continue
		}
		w.restage(ctx, e.Code)
		if reopen {
			w.seq.Reopen(w.sel, e.Code)
		}
	}
}

// ActiveDisambiguation returns the open dialog, if any.
func (w *Wizard) ActiveDisambiguation() (disambiguation.Session, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq.Active()
}

// ConfirmDisambiguation resolves the open dialog with the chosen candidates.
func (w *Wizard) ConfirmDisambiguation(ctx context.Context, sessionID string, keys []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkOpen(); err != nil {
		return err
	}
	req, err := w.seq.Confirm(ctx, w.sel, w.holder.Current(), sessionID, keys)
	if err != nil {
		return err
	}
	w.launch(ctx, req)
	w.advance(ctx)
	return nil
}

// CancelDisambiguation skips the open dialog.
func (w *Wizard) CancelDisambiguation(ctx context.Context, sessionID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkOpen(); err != nil {
		return err
	}
	req, err := w.seq.Cancel(ctx, w.sel, w.holder.Current(), sessionID)
	if err != nil {
		return err
	}
	w.launch(ctx, req)
	w.advance(ctx)
	return nil
}

func (w *Wizard) resolution() resolution.Snapshot {
	return w.seq.Resolution().WithCounts(w.currentCounts())
}

// PriceBreakdown prices the current selection.
func (w *Wizard) PriceBreakdown() pricing.Breakdown {
	w.mu.Lock()
	defer w.mu.Unlock()
	return pricing.ComputeTotal(w.deps.Catalog, w.sel.Snapshot(), w.resolution(), w.deps.Policy)
}

// SubmitOrder validates the order, freezes it and starts dispatch.
func (w *Wizard) SubmitOrder(ctx context.Context) (*dispatch.Batch, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.batch != nil {
		return nil, dErrors.New(dErrors.CodeConflict, "order has already been submitted")
	}
	if err := w.validateSubmit(); err != nil {
		return nil, err
	}

	w.sel.Freeze()
	w.holder.Confirm()
	snap := w.sel.Snapshot()
	res := w.resolution()
	breakdown := pricing.ComputeTotal(w.deps.Catalog, snap, res, w.deps.Policy)
	jobs := dispatch.BuildJobs(w.deps.Catalog, snap, w.holder.Current(), res, w.deps.Policy)

	w.batch = w.deps.Submitter.Submit(ctx, jobs)
	w.deps.Metrics.ObserveSubmitted(breakdown.Total)
	w.deps.Logger.InfoContext(ctx, "order submitted",
		"order_id", w.id,
		"batch_id", w.batch.ID,
		"jobs", len(jobs),
		"total", breakdown.Total.StringFixed(2),
	)
	return w.batch, nil
}

func (w *Wizard) validateSubmit() error {
	if w.holder.Current().IsZero() {
		return dErrors.New(dErrors.CodeValidation, "a subject is required")
	}
	if _, open := w.seq.Active(); open || len(w.sel.Pending()) > 0 {
		return dErrors.New(dErrors.CodeValidation, "disambiguation is still in progress")
	}
	active := w.sel.Active()
	if len(active) == 0 {
		return dErrors.New(dErrors.CodeValidation, "select at least one search")
	}
	lt := w.sel.LandTitle()
	for _, code := range active {
		e, _ := w.deps.Catalog.Entry(code)
		switch e.Pricing {
		case catalog.PricingPerAsicType:
			if len(w.sel.AsicTypes()) == 0 {
				return dErrors.New(dErrors.CodeValidation, "choose at least one ASIC extract type")
			}
		case catalog.PricingPerJurisdiction:
			if len(lt.States) == 0 {
				return dErrors.New(dErrors.CodeValidation, "choose at least one land title state")
			}
		}
		switch {
		case e.Kind == catalog.KindLandTitleReference && lt.Reference == "":
			return dErrors.New(dErrors.CodeValidation, "a title reference is required")
		case e.Kind == catalog.KindLandTitleAddress && lt.Address == "":
			return dErrors.New(dErrors.CodeValidation, "a property address is required")
		}
	}
	return nil
}

// Batch returns the dispatch batch once the order is submitted.
func (w *Wizard) Batch() *dispatch.Batch {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.batch
}

// State reports what the order screen should show.
func (w *Wizard) State() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state()
}

func (w *Wizard) state() WizardState {
	if w.batch != nil {
		return Submitting{Batch: w.batch}
	}
	if s, ok := w.seq.Active(); ok {
		return AwaitingDisambiguation{Session: s}
	}
	if len(w.sel.Active()) > 0 {
		return Pricing{Breakdown: pricing.ComputeTotal(w.deps.Catalog, w.sel.Snapshot(), w.resolution(), w.deps.Policy)}
	}
	if subj := w.holder.Current(); !subj.IsZero() {
		return SelectingSearches{Subject: subj}
	}
	return Idle{}
}

// Summary reads the whole wizard under one lock.
func (w *Wizard) Summary() Summary {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := Summary{
		ID:        w.id,
		Category:  w.kind,
		State:     w.state(),
		Stage:     w.seq.Stage(),
		Subject:   w.holder.Current(),
		Selection: w.sel.Snapshot(),
		Directors: w.seq.Directors(),
		Sessions:  w.seq.Sessions(),
		Price:     pricing.ComputeTotal(w.deps.Catalog, w.sel.Snapshot(), w.resolution(), w.deps.Policy),
		Submitted: w.batch != nil,
	}
	if active, ok := w.seq.Active(); ok {
		s.Active = &active
	}
	return s
}
