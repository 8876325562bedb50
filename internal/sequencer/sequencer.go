// Package sequencer drives the one-modal-at-a-time disambiguation flow. It
// decides which session is open next, accepts fetch results and user
// decisions, and activates staged selections once their lookups resolve.
//
// The sequencer is not safe for concurrent use; the order wizard serialises
// access to it.
package sequencer

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"

	"github.com/google/uuid"

	"searchorder/internal/catalog"
	"searchorder/internal/director"
	"searchorder/internal/disambiguation"
	"searchorder/internal/providers"
	"searchorder/internal/resolution"
	"searchorder/internal/selection"
	"searchorder/internal/sequencer/metrics"
	"searchorder/internal/subject"
	dErrors "searchorder/pkg/domain-errors"
)

// FetchRequest asks the caller to fetch candidates for the active session.
type FetchRequest struct {
	SessionID  string
	Generation int
	Request    disambiguation.Request
}

// FetchResult hands a completed fetch back to the sequencer.
type FetchResult struct {
	SessionID  string
	Generation int
	Result     disambiguation.Result
}

type sessionKey struct {
	owner disambiguation.Owner
	kind  catalog.SearchKind
}

// Sequencer is the modal sequence state machine.
type Sequencer struct {
	cat     *catalog.Catalog
	logger  *slog.Logger
	metrics *metrics.Metrics
	newID   func() string

	stage     Stage
	subjectID disambiguation.Identity
	sessions  map[sessionKey]disambiguation.Session
	active    *sessionKey
	directors []director.Director
	walks     map[catalog.Code]director.Iterator
	completed map[catalog.Code][]director.Slot
	recorded  map[catalog.Code]bool
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLogger sets the sequencer logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequencer) {
		s.logger = logger
	}
}

// WithMetrics sets the sequencer metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Sequencer) {
		s.metrics = m
	}
}

// WithIDGenerator replaces the session ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Sequencer) {
		s.newID = fn
	}
}

// New creates an idle sequencer.
func New(cat *catalog.Catalog, opts ...Option) (*Sequencer, error) {
	if cat == nil {
		return nil, errors.New("catalog is required")
	}
	s := &Sequencer{
		cat:    cat,
		logger: slog.Default(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.Reset()
	return s, nil
}

// Reset discards every session, walk and director.
func (s *Sequencer) Reset() {
	s.stage = StageIdle
	s.subjectID = disambiguation.Identity{}
	s.sessions = make(map[sessionKey]disambiguation.Session)
	s.active = nil
	s.directors = nil
	s.walks = make(map[catalog.Code]director.Iterator)
	s.completed = make(map[catalog.Code][]director.Slot)
	s.recorded = make(map[catalog.Code]bool)
}

// SetDirectors replaces the director list and drops any director walks.
func (s *Sequencer) SetDirectors(ds []director.Director) {
	s.directors = slices.Clone(ds)
	for k := range s.sessions {
		if k.owner.Kind == disambiguation.OwnerDirector {
			delete(s.sessions, k)
		}
	}
	if s.active != nil && s.active.owner.Kind == disambiguation.OwnerDirector {
		s.active = nil
	}
	clear(s.walks)
	clear(s.completed)
	clear(s.recorded)
}

// Directors returns the current director list.
func (s *Sequencer) Directors() []director.Director {
	return slices.Clone(s.directors)
}

// Stage returns the current state.
func (s *Sequencer) Stage() Stage {
	return s.stage
}

// Active returns the open session, if any.
func (s *Sequencer) Active() (disambiguation.Session, bool) {
	if s.active == nil {
		return disambiguation.Session{}, false
	}
	return s.sessions[*s.active].Clone(), true
}

// Walk returns the in-progress director walk of an entry.
func (s *Sequencer) Walk(code catalog.Code) (director.Iterator, bool) {
	it, ok := s.walks[code]
	return it, ok
}

// Sessions returns every known session, subject first, then directors by
// index, then by stage order.
func (s *Sequencer) Sessions() []disambiguation.Session {
	keys := slices.Collect(maps.Keys(s.sessions))
	slices.SortFunc(keys, compareKeys)
	out := make([]disambiguation.Session, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.sessions[k].Clone())
	}
	return out
}

func compareKeys(a, b sessionKey) int {
	if a.owner.Kind != b.owner.Kind {
		if a.owner.Kind == disambiguation.OwnerSubject {
			return -1
		}
		return 1
	}
	if a.owner.Index != b.owner.Index {
		return a.owner.Index - b.owner.Index
	}
	return stageRank(a.kind) - stageRank(b.kind)
}

func stageRank(kind catalog.SearchKind) int {
	for i, d := range priority {
		if d.session == kind {
			return i
		}
	}
	return len(priority)
}

// Next advances the sequence to the highest-priority stage that still needs
// a decision. It returns a fetch request when a session was (re)opened and
// nil when the open session is unchanged or the sequence is idle or done.
// An open session of lower priority than a newly qualifying stage is
// suspended and reopened later.
func (s *Sequencer) Next(ctx context.Context, sel *selection.Model, subj subject.Subject) *FetchRequest {
	if subj.IsZero() {
		s.suspendActive()
		s.stage = StageIdle
		return nil
	}
	s.subjectID = disambiguation.IdentityFromIndividual(subj.Individual)
	s.recordZeroFriction(sel)
	s.settle(ctx, sel)

	for _, def := range priority {
		if !def.applies(sel.CourtType()) {
			continue
		}
		for _, e := range s.stageEntries(def, sel) {
			if e.PerDirector {
				if target, ok := s.walkTarget(ctx, sel, def, e); ok {
					return s.open(ctx, def.stage, target, e.Code, sel)
				}
				continue
			}
			key := sessionKey{owner: disambiguation.SubjectOwner, kind: def.session}
			if sess, ok := s.sessions[key]; ok && sess.Status.Terminal() {
				continue
			}
			return s.open(ctx, def.stage, key, e.Code, sel)
		}
	}

	s.suspendActive()
	if s.stage != StageDone {
		s.logger.DebugContext(ctx, "disambiguation sequence complete")
	}
	s.stage = StageDone
	return nil
}

// stageEntries returns the selected or staged entries served by a stage,
// subject entries for individuals and director entries for organisations.
func (s *Sequencer) stageEntries(def stageDef, sel *selection.Model) []catalog.Entry {
	perDirector := sel.SubjectKind() == catalog.SubjectOrganisation
	var out []catalog.Entry
	for _, e := range s.cat.ByKind(def.entries) {
		if !e.RequiresDisambiguation || e.PerDirector != perDirector {
			continue
		}
		if !e.VisibleTo(sel.SubjectKind()) || !sel.IsSelectedOrPending(e.Code) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// walkTarget returns the session key of the director awaiting a decision
// for a per-director entry, starting the walk if needed. A walk with no
// searchable director completes immediately.
func (s *Sequencer) walkTarget(ctx context.Context, sel *selection.Model, def stageDef, e catalog.Entry) (sessionKey, bool) {
	if _, done := s.completed[e.Code]; done {
		return sessionKey{}, false
	}
	it, ok := s.walks[e.Code]
	if !ok {
		it = director.Start(e.Code, def.session, director.InScope(s.directors, sel.DirectorScope()))
		s.logger.DebugContext(ctx, "director walk started",
			"code", e.Code,
			"directors", it.Len(),
		)
	}
	if it.Done() {
		s.finishWalk(ctx, sel, it)
		return sessionKey{}, false
	}
	s.walks[e.Code] = it
	d, _ := it.Current()
	return sessionKey{owner: disambiguation.DirectorOwner(d.Index), kind: def.session}, true
}

// open makes key the active session. Reopening the already active session
// is a no-op.
func (s *Sequencer) open(ctx context.Context, stage Stage, key sessionKey, code catalog.Code, sel *selection.Model) *FetchRequest {
	if s.active != nil && *s.active == key {
		return nil
	}
	s.suspendActive()

	sess, ok := s.sessions[key]
	if !ok {
		sess = disambiguation.Session{ID: s.newID(), Owner: key.owner, Kind: key.kind}
	}
	sess.Code = code
	sess.Status = disambiguation.StatusLoading
	sess.ErrorMessage = ""
	sess.Generation++
	s.sessions[key] = sess
	s.active = &key
	s.stage = stage
	s.metrics.IncrementStageEntry(string(stage))

	req := disambiguation.Request{Kind: key.kind, Identity: s.identity(key.owner)}
	if key.kind == catalog.KindLandTitlePerson {
		req.States = sel.LandTitle().States
	}
	s.logger.DebugContext(ctx, "disambiguation session opened",
		"stage", stage,
		"session_id", sess.ID,
		"owner", key.owner.Kind,
		"director_index", key.owner.Index,
		"generation", sess.Generation,
	)
	return &FetchRequest{SessionID: sess.ID, Generation: sess.Generation, Request: req}
}

func (s *Sequencer) identity(owner disambiguation.Owner) disambiguation.Identity {
	if owner.Kind == disambiguation.OwnerDirector {
		for _, d := range s.directors {
			if d.Index == owner.Index {
				return d.Identity()
			}
		}
		return disambiguation.Identity{}
	}
	return s.subjectID
}

// suspendActive closes the open session without a decision. Its in-flight
// fetch becomes stale and it is reopened when its stage comes round again.
func (s *Sequencer) suspendActive() {
	if s.active == nil {
		return
	}
	sess := s.sessions[*s.active]
	if !sess.Status.Terminal() {
		sess.Status = disambiguation.StatusPending
		s.sessions[*s.active] = sess
	}
	s.active = nil
}

// recordZeroFriction resolves active no-lookup entries (PPSR) on the spot.
func (s *Sequencer) recordZeroFriction(sel *selection.Model) {
	for _, code := range sel.Active() {
		e, ok := s.cat.Entry(code)
		if !ok || !e.IsPPSR() || s.recorded[code] {
			continue
		}
		if e.PerDirector {
			s.completed[code] = director.RecordAll(director.InScope(s.directors, sel.DirectorScope()))
		}
		s.recorded[code] = true
	}
}

// settle activates staged entries whose lookups are all resolved.
func (s *Sequencer) settle(ctx context.Context, sel *selection.Model) {
	for _, code := range sel.Pending() {
		e, ok := s.cat.Entry(code)
		if !ok {
			continue
		}
		if e.PerDirector {
			if _, done := s.completed[code]; done {
				s.activate(ctx, sel, code)
			}
			continue
		}
		if s.subjectResolved(e, sel.CourtType()) {
			s.activate(ctx, sel, code)
		}
	}
}

func (s *Sequencer) subjectResolved(e catalog.Entry, courtType catalog.CourtType) bool {
	for _, kind := range sessionKinds(e, courtType) {
		sess, ok := s.sessions[sessionKey{owner: disambiguation.SubjectOwner, kind: kind}]
		if !ok || sess.Status != disambiguation.StatusResolved {
			return false
		}
	}
	return true
}

func (s *Sequencer) activate(ctx context.Context, sel *selection.Model, code catalog.Code) {
	if err := sel.Activate(code); err != nil {
		s.logger.WarnContext(ctx, "failed to activate resolved entry",
			"code", code,
			"error", err,
		)
	}
}

func (s *Sequencer) finishWalk(ctx context.Context, sel *selection.Model, it director.Iterator) {
	s.completed[it.Code()] = it.Slots()
	delete(s.walks, it.Code())
	s.logger.DebugContext(ctx, "director walk complete", "code", it.Code())
	if sel.IsSelectedOrPending(it.Code()) {
		s.activate(ctx, sel, it.Code())
	}
}

// Deliver stores a fetch result on the session it was issued for. Results
// for a session that is no longer active or has since been reopened are
// dropped; Deliver reports whether the result was applied.
func (s *Sequencer) Deliver(ctx context.Context, res FetchResult) bool {
	if s.active == nil {
		s.dropStale(ctx, res, "no active session")
		return false
	}
	key := *s.active
	sess := s.sessions[key]
	switch {
	case sess.ID != res.SessionID:
		s.dropStale(ctx, res, "session changed")
		return false
	case sess.Generation != res.Generation:
		s.dropStale(ctx, res, "session reopened")
		return false
	case sess.Status != disambiguation.StatusLoading:
		s.dropStale(ctx, res, "session not loading")
		return false
	}

	sess.Candidates = slices.Clone(res.Result.Candidates)
	sess.Selected = disambiguation.Preselect(sess.Selected, sess.Candidates)
	if res.Result.Err != nil {
		sess.Status = disambiguation.StatusError
		sess.ErrorMessage = errorMessage(res.Result.Err)
	} else {
		sess.Status = disambiguation.StatusPending
		sess.ErrorMessage = ""
	}
	s.sessions[key] = sess
	return true
}

func (s *Sequencer) dropStale(ctx context.Context, res FetchResult, reason string) {
	s.metrics.IncrementStaleResult()
	s.logger.DebugContext(ctx, "dropping stale fetch result",
		"session_id", res.SessionID,
		"generation", res.Generation,
		"reason", reason,
	)
}

func errorMessage(err error) string {
	var de *dErrors.Error
	var pe *providers.ProviderError
	if errors.As(err, &de) && !errors.As(err, &pe) {
		return de.Message
	}
	return providers.UserMessage(err)
}

// requireActive returns the active session when it has the given ID. Any
// other ID is a sequencing defect in the caller.
func (s *Sequencer) requireActive(ctx context.Context, sessionID, op string) (sessionKey, disambiguation.Session, error) {
	if s.active != nil {
		if sess := s.sessions[*s.active]; sess.ID == sessionID {
			return *s.active, sess, nil
		}
	}
	s.metrics.IncrementSequenceError()
	s.logger.ErrorContext(ctx, "decision for a session that is not active",
		"op", op,
		"session_id", sessionID,
		"stage", s.stage,
	)
	return sessionKey{}, disambiguation.Session{}, dErrors.Newf(dErrors.CodeInvariantViolation, "session %s is not active", sessionID)
}

// Confirm resolves the active session with the chosen candidates and moves
// the sequence on.
func (s *Sequencer) Confirm(ctx context.Context, sel *selection.Model, subj subject.Subject, sessionID string, keys []string) (*FetchRequest, error) {
	key, sess, err := s.requireActive(ctx, sessionID, "confirm")
	if err != nil {
		return nil, err
	}
	if sess.Status == disambiguation.StatusLoading {
		return nil, dErrors.New(dErrors.CodeValidation, "candidates are still loading")
	}
	if len(keys) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "choose at least one candidate")
	}
	chosen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if _, ok := sess.Candidate(k); !ok {
			return nil, dErrors.Newf(dErrors.CodeValidation, "unknown candidate %q", k)
		}
		chosen[k] = true
	}
	var selected []disambiguation.Candidate
	for _, c := range sess.Candidates {
		if chosen[c.IdentityKey] {
			selected = append(selected, c)
		}
	}

	sess.Selected = selected
	sess.Status = disambiguation.StatusResolved
	sess.ErrorMessage = ""
	s.sessions[key] = sess
	s.active = nil
	s.metrics.IncrementDecision(string(s.stage), "confirmed")
	s.logger.InfoContext(ctx, "disambiguation confirmed",
		"stage", s.stage,
		"session_id", sess.ID,
		"selected", len(selected),
	)

	if key.owner.Kind == disambiguation.OwnerDirector {
		s.advanceWalk(ctx, sel, sess.Code, director.Slot{
			Status:  director.SlotResolved,
			Matches: selected,
			Offered: sess.Offered(),
		})
	}
	return s.Next(ctx, sel, subj), nil
}

// Cancel skips the active session. A subject skip deselects the entries
// that needed it; a director skip leaves a null slot and moves to the next
// director.
func (s *Sequencer) Cancel(ctx context.Context, sel *selection.Model, subj subject.Subject, sessionID string) (*FetchRequest, error) {
	key, sess, err := s.requireActive(ctx, sessionID, "cancel")
	if err != nil {
		return nil, err
	}
	sess.Status = disambiguation.StatusSkipped
	s.sessions[key] = sess
	s.active = nil
	s.metrics.IncrementDecision(string(s.stage), "cancelled")
	s.logger.InfoContext(ctx, "disambiguation cancelled",
		"stage", s.stage,
		"session_id", sess.ID,
	)

	if key.owner.Kind == disambiguation.OwnerDirector {
		s.advanceWalk(ctx, sel, sess.Code, director.Slot{
			Status:  director.SlotSkipped,
			Offered: sess.Offered(),
		})
	} else {
		s.deselectFor(ctx, sel, key.kind)
	}
	return s.Next(ctx, sel, subj), nil
}

func (s *Sequencer) deselectFor(ctx context.Context, sel *selection.Model, kind catalog.SearchKind) {
	for _, e := range s.cat.Entries() {
		if !e.RequiresDisambiguation || e.PerDirector || !sel.IsSelectedOrPending(e.Code) {
			continue
		}
		if !slices.Contains(sessionKinds(e, sel.CourtType()), kind) {
			continue
		}
		if err := sel.Deactivate(e.Code); err != nil {
			s.logger.WarnContext(ctx, "failed to deselect skipped entry",
				"code", e.Code,
				"error", err,
			)
		}
	}
}

func (s *Sequencer) advanceWalk(ctx context.Context, sel *selection.Model, code catalog.Code, slot director.Slot) {
	it, ok := s.walks[code]
	if !ok {
		return
	}
	it = it.Advance(slot)
	if it.Done() {
		s.finishWalk(ctx, sel, it)
		return
	}
	s.walks[code] = it
}

// Reopen makes a previously decided entry go through its lookups again. The
// wizard calls it when an entry is staged or activated; earlier choices stay
// on the sessions so they are preselected when the candidates come back.
func (s *Sequencer) Reopen(sel *selection.Model, code catalog.Code) {
	e, ok := s.cat.Entry(code)
	if !ok {
		return
	}
	if e.IsPPSR() {
		delete(s.recorded, code)
		delete(s.completed, code)
		return
	}
	if e.PerDirector {
		delete(s.completed, code)
		delete(s.walks, code)
		return
	}
	for _, kind := range sessionKinds(e, sel.CourtType()) {
		key := sessionKey{owner: disambiguation.SubjectOwner, kind: kind}
		if sess, ok := s.sessions[key]; ok && sess.Status.Terminal() {
			sess.Status = disambiguation.StatusPending
			s.sessions[key] = sess
		}
	}
}

// Resolution builds the read model of every decision taken so far.
func (s *Sequencer) Resolution() resolution.Snapshot {
	b := resolution.NewBuilder().Directors(s.directors)
	for k, sess := range s.sessions {
		if k.owner.Kind != disambiguation.OwnerSubject || !sess.Status.Terminal() {
			continue
		}
		b.Outcome(resolution.Outcome{
			Kind:     sess.Kind,
			Status:   sess.Status,
			Selected: sess.Selected,
			Offered:  sess.Offered(),
		})
	}
	for code, slots := range s.completed {
		b.Slots(code, slots)
	}
	for code := range s.recorded {
		b.Recorded(code)
	}
	return b.Build()
}
