package order

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"searchorder/internal/catalog"
	"searchorder/internal/disambiguation"
	"searchorder/internal/dispatch"
	"searchorder/internal/order/metrics"
	"searchorder/internal/providers"
	"searchorder/internal/providers/mocks"
	"searchorder/internal/selection"
	"searchorder/internal/sequencer"
	"searchorder/internal/subject"
	dErrors "searchorder/pkg/domain-errors"
)

// =============================================================================
// Wizard Test Suite
// =============================================================================
// Fetches are queued instead of run on goroutines so each test decides when
// results arrive. Candidate labels carry the subject's last name so stale
// deliveries are easy to spot.

type WizardSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	registry *mocks.MockRegistry
	creator  *mocks.MockReportCreator
	fetcher  *fakeFetcher
	queue    *taskQueue
	metrics  *metrics.Metrics
	deps     Deps
	wizard   *Wizard
}

func TestWizardSuite(t *testing.T) {
	suite.Run(t, new(WizardSuite))
}

func (s *WizardSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.registry = mocks.NewMockRegistry(s.ctrl)
	s.creator = mocks.NewMockReportCreator(s.ctrl)
	s.fetcher = &fakeFetcher{}
	s.queue = &taskQueue{}
	s.metrics = metrics.New(prometheus.NewRegistry())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher, err := dispatch.New(s.creator, dispatch.WithLogger(logger))
	s.Require().NoError(err)

	s.deps = Deps{
		Catalog:   catalog.Default(),
		Fetcher:   s.fetcher,
		Registry:  s.registry,
		Submitter: dispatcher,
		Logger:    logger,
		Metrics:   s.metrics,
		Runner:    s.queue.run,
	}
	s.wizard = s.newWizard(catalog.SubjectIndividual)
}

func (s *WizardSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *WizardSuite) newWizard(kind catalog.SubjectKind) *Wizard {
	w, err := NewWizard("order-1", kind, s.deps)
	s.Require().NoError(err)
	return w
}

type taskQueue struct {
	mu    sync.Mutex
	tasks []func()
}

func (q *taskQueue) run(task func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
}

// drain runs queued fetches, including ones queued by earlier deliveries.
func (q *taskQueue) drain() int {
	n := 0
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return n
		}
		task := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.mu.Unlock()
		task()
		n++
	}
}

type fakeFetcher struct {
	mu       sync.Mutex
	requests []disambiguation.Request
	orgs     []providers.OrgSuggestion
}

func (f *fakeFetcher) Fetch(_ context.Context, req disambiguation.Request) disambiguation.Result {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	name := strings.ToUpper(req.Identity.LastName)
	return disambiguation.Result{Candidates: []disambiguation.Candidate{
		{Provider: "registry", Label: name + " ONE", IdentityKey: name + ":1"},
		{Provider: "registry", Label: name + " TWO", IdentityKey: name + ":2"},
		disambiguation.FallbackCandidate(req.Identity),
	}}
}

func (f *fakeFetcher) SearchOrganisations(_ context.Context, term string) ([]providers.OrgSuggestion, error) {
	var out []providers.OrgSuggestion
	for _, o := range f.orgs {
		if strings.Contains(strings.ToUpper(o.Name), strings.ToUpper(term)) {
			out = append(out, o)
		}
	}
	return out, nil
}

var (
	jane = subject.Individual{FirstName: "Jane", LastName: "Citizen", DateOfBirth: "05/03/1980"}
	john = subject.Individual{FirstName: "John", LastName: "Smith"}
	acme = providers.OrgSuggestion{ABN: "51 824 753 556", Name: "ACME PTY LTD"}
)

func (s *WizardSuite) activeSession() disambiguation.Session {
	sess, ok := s.wizard.ActiveDisambiguation()
	s.Require().True(ok, "expected an open disambiguation dialog")
	return sess
}

func (s *WizardSuite) total() string {
	return s.wizard.PriceBreakdown().Total.StringFixed(2)
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *WizardSuite) TestNewWizard() {
	s.Run("missing catalog returns error", func() {
		deps := s.deps
		deps.Catalog = nil
		_, err := NewWizard("x", catalog.SubjectIndividual, deps)
		s.ErrorContains(err, "catalog is required")
	})

	s.Run("missing submitter returns error", func() {
		deps := s.deps
		deps.Submitter = nil
		_, err := NewWizard("x", catalog.SubjectIndividual, deps)
		s.ErrorContains(err, "submitter is required")
	})

	s.Run("new wizard is idle", func() {
		s.Equal("idle", s.wizard.State().Name())
		s.Equal(sequencer.StageIdle, s.wizard.Summary().Stage)
	})
}

// =============================================================================
// Individual Flow
// =============================================================================

func (s *WizardSuite) TestIndividualBankruptcyFlow() {
	s.Require().NoError(s.wizard.SetIndividual(s.ctx, jane))
	s.Equal("selecting_searches", s.wizard.State().Name())
	s.Equal("1980-03-05", s.wizard.Summary().Subject.Individual.DateOfBirth)

	_, err := s.wizard.ToggleSearch(s.ctx, catalog.CodeIndividualBankruptcy)
	s.Require().NoError(err)
	s.Equal(disambiguation.StatusLoading, s.activeSession().Status)
	s.Equal("awaiting_disambiguation", s.wizard.State().Name())

	s.Equal(1, s.queue.drain())
	sess := s.activeSession()
	s.Equal(disambiguation.StatusPending, sess.Status)
	s.Len(sess.Candidates, 3)
	s.Equal(catalog.KindBankruptcy, s.fetcher.requests[0].Kind)

	s.Require().NoError(s.wizard.ConfirmDisambiguation(s.ctx, sess.ID, []string{"CITIZEN:1", "CITIZEN:2"}))

	summary := s.wizard.Summary()
	s.Equal(sequencer.StageDone, summary.Stage)
	s.Nil(summary.Active)
	s.True(summary.Subject.Confirmed)
	s.Equal([]catalog.Code{catalog.CodeIndividualBankruptcy}, summary.Selection.Active)
	s.Equal("80.00", s.total())
	s.Equal("pricing", summary.State.Name())
}

func (s *WizardSuite) TestConfirmedSubjectRejectsIdentityChange() {
	s.Require().NoError(s.wizard.SetIndividual(s.ctx, jane))
	_, err := s.wizard.ToggleSearch(s.ctx, catalog.CodeIndividualPPSR)
	s.Require().NoError(err)
	s.True(s.wizard.Summary().Subject.Confirmed)

	err = s.wizard.SetIndividual(s.ctx, john)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	s.Require().NoError(s.wizard.ResetSubject(s.ctx))
	s.Require().NoError(s.wizard.SetIndividual(s.ctx, john))
	s.Equal("Smith", s.wizard.Summary().Subject.Individual.LastName)
}

func (s *WizardSuite) TestCancelDisambiguationDeselects() {
	s.Require().NoError(s.wizard.SetIndividual(s.ctx, jane))
	_, err := s.wizard.ToggleSearch(s.ctx, catalog.CodeIndividualBankruptcy)
	s.Require().NoError(err)
	s.queue.drain()

	s.Require().NoError(s.wizard.CancelDisambiguation(s.ctx, s.activeSession().ID))

	summary := s.wizard.Summary()
	s.Empty(summary.Selection.Active)
	s.Empty(summary.Selection.Pending)
	s.Equal("0.00", s.total())
}

func (s *WizardSuite) TestConfirmUnknownSessionIsInvariantViolation() {
	s.Require().NoError(s.wizard.SetIndividual(s.ctx, jane))
	_, err := s.wizard.ToggleSearch(s.ctx, catalog.CodeIndividualBankruptcy)
	s.Require().NoError(err)
	s.queue.drain()

	err = s.wizard.ConfirmDisambiguation(s.ctx, "not-a-session", []string{"CITIZEN:1"})
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func (s *WizardSuite) TestStaleFetchAfterSubjectChange() {
	s.Require().NoError(s.wizard.SetIndividual(s.ctx, jane))
	_, err := s.wizard.ToggleSearch(s.ctx, catalog.CodeIndividualBankruptcy)
	s.Require().NoError(err)

	// Jane's fetch is still queued when the identity changes.
	s.Require().NoError(s.wizard.SetIndividual(s.ctx, john))
	s.Equal(2, s.queue.drain())

	sess := s.activeSession()
	s.Equal(disambiguation.StatusPending, sess.Status)
	for _, c := range sess.Candidates {
		s.NotContains(c.Label, "CITIZEN")
	}
	_, ok := sess.Candidate("SMITH:1")
	s.True(ok)
}

func (s *WizardSuite) TestSetCategoryClearsOrder() {
	s.Require().NoError(s.wizard.SetIndividual(s.ctx, jane))
	_, err := s.wizard.ToggleSearch(s.ctx, catalog.CodeIndividualPPSR)
	s.Require().NoError(err)

	s.Require().NoError(s.wizard.SetCategory(s.ctx, catalog.SubjectOrganisation))

	summary := s.wizard.Summary()
	s.Equal(catalog.SubjectOrganisation, summary.Category)
	s.True(summary.Subject.IsZero())
	s.Empty(summary.Selection.Active)

	err = s.wizard.SetIndividual(s.ctx, jane)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *WizardSuite) TestSelectAllCode() {
	s.Require().NoError(s.wizard.SetIndividual(s.ctx, jane))
	changes, err := s.wizard.ToggleSearch(s.ctx, catalog.SelectAllCode(catalog.CategoryIndividual))
	s.Require().NoError(err)
	s.NotEmpty(changes)

	summary := s.wizard.Summary()
	s.Contains(summary.Selection.Active, catalog.CodeIndividualPPSR)
	s.Contains(summary.Selection.Pending, catalog.CodeIndividualBankruptcy)
}

// =============================================================================
// Organisation Flow
// =============================================================================

func (s *WizardSuite) TestOrganisationDirectorsSeededOnce() {
	s.wizard = s.newWizard(catalog.SubjectOrganisation)
	s.registry.EXPECT().
		CheckDataAvailability(gomock.Any(), "51824753556", providers.DataTypeASICCurrent).
		Return(providers.Availability{Available: true, Data: &providers.AvailabilityData{Officers: []providers.Officer{
			{FirstName: "Ann", LastName: "Lee", Role: "Director", Status: "Current"},
			{FirstName: "Bob", LastName: "Ray", Role: "Secretary", Status: "Current"},
			{FirstName: "Cal", LastName: "Poe", Role: "Director", Status: "Past"},
		}}}, nil).
		Times(1)

	s.Require().NoError(s.wizard.SelectOrganisation(s.ctx, acme))
	s.Require().NoError(s.wizard.SelectOrganisation(s.ctx, acme))

	summary := s.wizard.Summary()
	s.Equal("51824753556", summary.Subject.Organisation.ABN)
	s.Require().Len(summary.Directors, 2)
	s.Equal("Ann", summary.Directors[0].FirstName)
}

func (s *WizardSuite) TestDirectorSeedFailureLeavesNoDirectors() {
	s.wizard = s.newWizard(catalog.SubjectOrganisation)
	s.registry.EXPECT().
		CheckDataAvailability(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(providers.Availability{}, errors.New("timeout"))

	s.Require().NoError(s.wizard.SelectOrganisation(s.ctx, acme))

	s.Empty(s.wizard.Summary().Directors)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.DirectorSeedFailures))
}

func (s *WizardSuite) TestDirectorSearchWaitsForSeeding() {
	s.wizard = s.newWizard(catalog.SubjectOrganisation)
	s.registry.EXPECT().
		CheckDataAvailability(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string) (providers.Availability, error) {
			// toggled while the extract is still loading
			_, err := s.wizard.ToggleSearch(ctx, catalog.CodeDirectorBankruptcy)
			s.Require().NoError(err)
			s.NotContains(s.wizard.Summary().Selection.Active, catalog.CodeDirectorBankruptcy)
			s.Equal("0.00", s.total())
			return providers.Availability{Available: true, Data: &providers.AvailabilityData{Officers: []providers.Officer{
				{FirstName: "Ann", LastName: "Lee", Role: "Director", Status: "Current"},
			}}}, nil
		})

	s.Require().NoError(s.wizard.SelectOrganisation(s.ctx, acme))
	s.NotContains(s.wizard.Summary().Selection.Active, catalog.CodeDirectorBankruptcy)

	s.Equal(1, s.queue.drain())
	sess := s.activeSession()
	s.Equal(disambiguation.OwnerDirector, sess.Owner.Kind)
	s.Require().NoError(s.wizard.ConfirmDisambiguation(s.ctx, sess.ID, []string{"LEE:1"}))
	s.Equal("40.00", s.total())
}

func (s *WizardSuite) TestDirectorBankruptcyWalk() {
	s.wizard = s.newWizard(catalog.SubjectOrganisation)
	s.registry.EXPECT().
		CheckDataAvailability(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(providers.Availability{Available: true, Data: &providers.AvailabilityData{Officers: []providers.Officer{
			{FirstName: "Ann", LastName: "Lee", Role: "Director", Status: "Current"},
		}}}, nil)

	s.Require().NoError(s.wizard.SelectOrganisation(s.ctx, acme))
	_, err := s.wizard.ToggleSearch(s.ctx, catalog.CodeDirectorBankruptcy)
	s.Require().NoError(err)
	s.queue.drain()

	sess := s.activeSession()
	s.Equal(disambiguation.OwnerDirector, sess.Owner.Kind)
	s.Require().NoError(s.wizard.ConfirmDisambiguation(s.ctx, sess.ID, []string{"LEE:1"}))

	summary := s.wizard.Summary()
	s.Equal(sequencer.StageDone, summary.Stage)
	s.Contains(summary.Selection.Active, catalog.CodeDirectorBankruptcy)
	s.Equal("40.00", s.total())
}

func (s *WizardSuite) TestSearchOrganisations() {
	s.fetcher.orgs = []providers.OrgSuggestion{acme, {ABN: "1", Name: "OTHER CO"}}
	got, err := s.wizard.SearchOrganisations(s.ctx, "acme")
	s.Require().NoError(err)
	s.Equal([]providers.OrgSuggestion{acme}, got)
}

// =============================================================================
// Land Title Counts
// =============================================================================

func (s *WizardSuite) TestRefreshLandTitleCounts() {
	s.Require().NoError(s.wizard.SetIndividual(s.ctx, jane))
	s.Require().NoError(s.wizard.SetSubOption(s.ctx, selection.FieldLandTitleStates, "NSW,VIC"))
	s.Require().NoError(s.wizard.SetSubOption(s.ctx, selection.FieldLandTitleAddress, "1 George St"))
	_, err := s.wizard.ToggleSearch(s.ctx, catalog.CodeLandTitleAddress)
	s.Require().NoError(err)
	// NSW 15 + 27, VIC 12.50 + 24
	s.Equal("78.50", s.total())

	s.registry.EXPECT().
		GetLandTitleCounts(gomock.Any(), providers.LandTitleCountsQuery{
			Kind: string(catalog.KindLandTitleAddress), State: "NSW", Address: "1 George St",
		}).
		Return(providers.LandTitleCounts{Current: 2, Historical: 1}, nil)
	s.registry.EXPECT().
		GetLandTitleCounts(gomock.Any(), providers.LandTitleCountsQuery{
			Kind: string(catalog.KindLandTitleAddress), State: "VIC", Address: "1 George St",
		}).
		Return(providers.LandTitleCounts{}, errors.New("registry down"))

	s.Require().NoError(s.wizard.RefreshLandTitleCounts(s.ctx))

	// NSW 15 + 2*27, VIC keeps its placeholder
	s.Equal("105.50", s.total())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CountLookupFailures.WithLabelValues("VIC")))
}

func (s *WizardSuite) TestAddressChangeDropsCounts() {
	s.Require().NoError(s.wizard.SetIndividual(s.ctx, jane))
	s.Require().NoError(s.wizard.SetSubOption(s.ctx, selection.FieldLandTitleStates, "NSW"))
	s.Require().NoError(s.wizard.SetSubOption(s.ctx, selection.FieldLandTitleAddress, "1 George St"))
	_, err := s.wizard.ToggleSearch(s.ctx, catalog.CodeLandTitleAddress)
	s.Require().NoError(err)
	s.Equal("42.00", s.total())

	s.registry.EXPECT().
		GetLandTitleCounts(gomock.Any(), providers.LandTitleCountsQuery{
			Kind: string(catalog.KindLandTitleAddress), State: "NSW", Address: "1 George St",
		}).
		Return(providers.LandTitleCounts{Current: 5}, nil)
	s.Require().NoError(s.wizard.RefreshLandTitleCounts(s.ctx))
	s.Equal("150.00", s.total())

	s.Require().NoError(s.wizard.SetSubOption(s.ctx, selection.FieldLandTitleAddress, "99 Other Rd"))
	s.Equal("42.00", s.total(), "counts of the old address are not billed")

	s.registry.EXPECT().
		GetLandTitleCounts(gomock.Any(), providers.LandTitleCountsQuery{
			Kind: string(catalog.KindLandTitleAddress), State: "NSW", Address: "99 Other Rd",
		}).
		Return(providers.LandTitleCounts{Current: 2}, nil)
	s.Require().NoError(s.wizard.RefreshLandTitleCounts(s.ctx))
	s.Equal("69.00", s.total())
}

func (s *WizardSuite) TestProprietorChangeDropsCounts() {
	s.Require().NoError(s.wizard.SetIndividual(s.ctx, jane))
	s.Require().NoError(s.wizard.SetSubOption(s.ctx, selection.FieldLandTitleStates, "NSW"))
	_, err := s.wizard.ToggleSearch(s.ctx, catalog.CodeLandTitleIndividual)
	s.Require().NoError(err)
	s.queue.drain()
	s.Require().NoError(s.wizard.ConfirmDisambiguation(s.ctx, s.activeSession().ID, []string{"CITIZEN:1"}))
	placeholder := s.total()

	s.registry.EXPECT().
		GetLandTitleCounts(gomock.Any(), providers.LandTitleCountsQuery{
			Kind: string(catalog.KindLandTitlePerson), State: "NSW", Name: "CITIZEN ONE",
		}).
		Return(providers.LandTitleCounts{Current: 4}, nil)
	s.Require().NoError(s.wizard.RefreshLandTitleCounts(s.ctx))
	s.NotEqual(placeholder, s.total())

	// choosing the states again reopens the proprietor dialog
	s.Require().NoError(s.wizard.SetSubOption(s.ctx, selection.FieldLandTitleStates, "NSW"))
	s.queue.drain()
	s.Require().NoError(s.wizard.ConfirmDisambiguation(s.ctx, s.activeSession().ID, []string{"CITIZEN:2"}))

	s.Contains(s.wizard.Summary().Selection.Active, catalog.CodeLandTitleIndividual)
	s.Equal(placeholder, s.total(), "counts of the previous proprietor are not billed")
}

func (s *WizardSuite) TestRefreshWithoutLandTitleSearchesIsNoop() {
	s.Require().NoError(s.wizard.SetIndividual(s.ctx, jane))
	s.NoError(s.wizard.RefreshLandTitleCounts(s.ctx))
}

// =============================================================================
// Submission
// =============================================================================

func (s *WizardSuite) TestSubmitValidation() {
	s.Run("subject is required", func() {
		w := s.newWizard(catalog.SubjectIndividual)
		_, err := w.SubmitOrder(s.ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.ErrorContains(err, "subject")
	})

	s.Run("at least one search is required", func() {
		w := s.newWizard(catalog.SubjectIndividual)
		s.Require().NoError(w.SetIndividual(s.ctx, jane))
		_, err := w.SubmitOrder(s.ctx)
		s.ErrorContains(err, "select at least one search")
	})

	s.Run("open disambiguation blocks submission", func() {
		w := s.newWizard(catalog.SubjectIndividual)
		s.Require().NoError(w.SetIndividual(s.ctx, jane))
		_, err := w.ToggleSearch(s.ctx, catalog.CodeIndividualBankruptcy)
		s.Require().NoError(err)
		_, err = w.SubmitOrder(s.ctx)
		s.ErrorContains(err, "disambiguation is still in progress")
	})

	s.Run("land title address needs an address", func() {
		w := s.newWizard(catalog.SubjectIndividual)
		s.Require().NoError(w.SetIndividual(s.ctx, jane))
		s.Require().NoError(w.SetSubOption(s.ctx, selection.FieldLandTitleStates, "QLD"))
		_, err := w.ToggleSearch(s.ctx, catalog.CodeLandTitleAddress)
		s.Require().NoError(err)
		_, err = w.SubmitOrder(s.ctx)
		s.ErrorContains(err, "a property address is required")
	})
}

func (s *WizardSuite) TestSubmitFreezesOrder() {
	s.creator.EXPECT().
		CreateReportJob(gomock.Any(), gomock.Any()).
		Return(providers.ReportResult{Report: "report-1.pdf"}, nil)

	s.Require().NoError(s.wizard.SetIndividual(s.ctx, jane))
	_, err := s.wizard.ToggleSearch(s.ctx, catalog.CodeIndividualPPSR)
	s.Require().NoError(err)

	batch, err := s.wizard.SubmitOrder(s.ctx)
	s.Require().NoError(err)
	jobs := batch.Wait()
	s.Require().Len(jobs, 1)
	s.Equal(dispatch.StatusDone, jobs[0].Status)
	s.Equal("report-1.pdf", jobs[0].ResultRef)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.OrdersSubmitted))

	s.Equal("submitting", s.wizard.State().Name())
	s.True(s.wizard.Summary().Submitted)

	_, err = s.wizard.SubmitOrder(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = s.wizard.ToggleSearch(s.ctx, catalog.CodeIndividualBankruptcy)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.True(dErrors.HasCode(s.wizard.ResetSubject(s.ctx), dErrors.CodeValidation))
}
