package selection

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"searchorder/internal/catalog"
	dErrors "searchorder/pkg/domain-errors"
)

// =============================================================================
// Selection Model Test Suite
// =============================================================================

type SelectionSuite struct {
	suite.Suite
	cat *catalog.Catalog
}

func TestSelectionSuite(t *testing.T) {
	suite.Run(t, new(SelectionSuite))
}

func (s *SelectionSuite) SetupSuite() {
	s.cat = catalog.Default()
}

func (s *SelectionSuite) org() *Model {
	return New(s.cat, catalog.SubjectOrganisation)
}

func (s *SelectionSuite) individual() *Model {
	return New(s.cat, catalog.SubjectIndividual)
}

// =============================================================================
// Toggle Tests
// =============================================================================

func (s *SelectionSuite) TestToggle() {
	s.Run("plain entry activates immediately", func() {
		m := s.org()
		ch, err := m.Toggle(catalog.CodeCourt)
		s.Require().NoError(err)
		s.Equal(ChangeActivated, ch.Kind)
		s.True(m.IsActive(catalog.CodeCourt))
	})

	s.Run("second toggle deactivates", func() {
		m := s.org()
		_, _ = m.Toggle(catalog.CodeCourt)
		ch, err := m.Toggle(catalog.CodeCourt)
		s.Require().NoError(err)
		s.Equal(ChangeDeactivated, ch.Kind)
		s.False(m.IsActive(catalog.CodeCourt))
	})

	s.Run("disambiguation entry is staged not activated", func() {
		m := s.individual()
		ch, err := m.Toggle(catalog.CodeIndividualBankruptcy)
		s.Require().NoError(err)
		s.Equal(ChangeStaged, ch.Kind)
		s.False(m.IsActive(catalog.CodeIndividualBankruptcy))
		s.True(m.IsPending(catalog.CodeIndividualBankruptcy))
	})

	s.Run("toggling a staged entry unstages it", func() {
		m := s.individual()
		_, _ = m.Toggle(catalog.CodeIndividualBankruptcy)
		ch, err := m.Toggle(catalog.CodeIndividualBankruptcy)
		s.Require().NoError(err)
		s.Equal(ChangeUnstaged, ch.Kind)
		s.False(m.IsSelectedOrPending(catalog.CodeIndividualBankruptcy))
	})

	s.Run("PPSR activates with no friction", func() {
		m := s.individual()
		ch, err := m.Toggle(catalog.CodeIndividualPPSR)
		s.Require().NoError(err)
		s.Equal(ChangeActivated, ch.Kind)
	})

	s.Run("ASIC defaults to the current extract", func() {
		m := s.org()
		_, err := m.Toggle(catalog.CodeASIC)
		s.Require().NoError(err)
		s.Equal([]catalog.AsicType{catalog.AsicCurrent}, m.AsicTypes())
	})

	s.Run("unknown code is a validation error", func() {
		_, err := s.org().Toggle("BOGUS")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("entry hidden from the subject kind is rejected", func() {
		_, err := s.org().Toggle(catalog.CodeIndividualBankruptcy)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("frozen selection rejects toggles", func() {
		m := s.org()
		m.Freeze()
		_, err := m.Toggle(catalog.CodeCourt)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

// =============================================================================
// Select-All Invariant Tests
// =============================================================================

func (s *SelectionSuite) TestSelectAllInvariant() {
	s.Run("present once every visible entry is active", func() {
		m := s.org()
		for _, code := range []catalog.Code{catalog.CodeASIC, catalog.CodeATO, catalog.CodeCourt} {
			_, _ = m.Toggle(code)
			s.False(m.HasSelectAll(catalog.CategoryOrganisation))
		}
		_, _ = m.Toggle(catalog.CodePPSR)
		s.True(m.HasSelectAll(catalog.CategoryOrganisation))
	})

	s.Run("removing any entry removes it immediately", func() {
		m := s.org()
		_, err := m.ToggleSelectAll(catalog.CategoryOrganisation)
		s.Require().NoError(err)
		s.Require().True(m.HasSelectAll(catalog.CategoryOrganisation))

		_, _ = m.Toggle(catalog.CodeATO)
		s.False(m.HasSelectAll(catalog.CategoryOrganisation))
	})

	s.Run("toggle select-all off clears the category", func() {
		m := s.org()
		_, _ = m.ToggleSelectAll(catalog.CategoryOrganisation)
		changes, err := m.ToggleSelectAll(catalog.CategoryOrganisation)
		s.Require().NoError(err)
		s.Len(changes, 4)
		s.Empty(m.Active())
	})

	s.Run("staged entries do not count as selected", func() {
		m := s.individual()
		changes, err := m.ToggleSelectAll(catalog.CategoryIndividual)
		s.Require().NoError(err)
		s.Len(changes, 4)
		s.False(m.HasSelectAll(catalog.CategoryIndividual))
		s.Equal([]catalog.Code{catalog.CodeIndividualPPSR}, m.Active())

		for _, code := range m.Pending() {
			s.Require().NoError(m.Activate(code))
		}
		s.True(m.HasSelectAll(catalog.CategoryIndividual))
	})

	s.Run("empty visible category never holds it", func() {
		m := s.individual()
		_, err := m.ToggleSelectAll(catalog.CategoryOrganisation)
		s.Require().NoError(err)
		s.False(m.HasSelectAll(catalog.CategoryOrganisation))
	})

	s.Run("satisfied add-ons are excluded from additional select-all", func() {
		m := s.org()
		_, _ = m.Toggle(catalog.CodeLandTitleOrganisation)

		for _, e := range m.Visible(catalog.CategoryAdditional) {
			s.NotEqual(catalog.CodeAddLandTitleOrganisation, e.Code)
		}

		changes, err := m.ToggleSelectAll(catalog.CategoryAdditional)
		s.Require().NoError(err)
		for _, ch := range changes {
			s.NotEqual(catalog.CodeAddLandTitleOrganisation, ch.Code)
		}
		s.False(m.IsSelectedOrPending(catalog.CodeAddLandTitleOrganisation))
	})

	s.Run("pseudo code toggles the whole category", func() {
		m := s.org()
		_, err := m.Toggle(catalog.SelectAllCode(catalog.CategoryOrganisation))
		s.Require().NoError(err)
		s.True(m.HasSelectAll(catalog.CategoryOrganisation))
	})
}

// =============================================================================
// Sub-option Tests
// =============================================================================

func (s *SelectionSuite) TestSetSubOption() {
	s.Run("land title states keep canonical order without duplicates", func() {
		m := s.org()
		s.Require().NoError(m.SetSubOption(FieldLandTitleStates, "qld, nsw,QLD"))
		s.Equal([]catalog.State{catalog.StateNSW, catalog.StateQLD}, m.LandTitle().States)
	})

	s.Run("asic types replace the set", func() {
		m := s.org()
		s.Require().NoError(m.SetSubOption(FieldAsicTypes, "documents,historical"))
		s.Equal([]catalog.AsicType{catalog.AsicHistorical, catalog.AsicDocuments}, m.AsicTypes())
	})

	s.Run("add-on flag parses booleans", func() {
		m := s.org()
		s.Require().NoError(m.SetSubOption(FieldLandTitleAddOn, "true"))
		s.True(m.LandTitle().AddOn)
		s.True(dErrors.HasCode(m.SetSubOption(FieldLandTitleAddOn, "maybe"), dErrors.CodeValidation))
	})

	s.Run("unknown field is a validation error", func() {
		err := s.org().SetSubOption("colour", "blue")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("invalid court type is a validation error", func() {
		err := s.individual().SetSubOption(FieldCourtType, "traffic")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

// =============================================================================
// Reset and Snapshot Tests
// =============================================================================

func (s *SelectionSuite) TestReset() {
	m := s.individual()
	_, _ = m.Toggle(catalog.CodeIndividualPPSR)
	_, _ = m.Toggle(catalog.CodeIndividualCourt)
	s.Require().NoError(m.SetSubOption(FieldCourtType, "CIVIL"))

	changes, err := m.Reset(catalog.CategoryIndividual)
	s.Require().NoError(err)
	s.Len(changes, 2)
	s.Empty(m.Active())
	s.Empty(m.Pending())
	s.Equal(catalog.CourtAll, m.CourtType())
}

func (s *SelectionSuite) TestSnapshotIsDetached() {
	m := s.org()
	_, _ = m.Toggle(catalog.CodeCourt)
	s.Require().NoError(m.SetSubOption(FieldLandTitleStates, "NSW"))

	snap := m.Snapshot()
	_, _ = m.Toggle(catalog.CodeATO)
	s.Require().NoError(m.SetSubOption(FieldLandTitleStates, "VIC"))

	s.Equal([]catalog.Code{catalog.CodeCourt}, snap.Active)
	s.Equal([]catalog.State{catalog.StateNSW}, snap.LandTitle.States)
	s.True(snap.IsActive(catalog.CodeCourt))
	s.False(snap.IsActive(catalog.CodeATO))
}
