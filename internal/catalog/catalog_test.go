package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "searchorder/pkg/domain-errors"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	t.Run("lookup by code", func(t *testing.T) {
		e, ok := c.Entry(CodeIndividualBankruptcy)
		require.True(t, ok)
		assert.Equal(t, CategoryIndividual, e.Category)
		assert.True(t, e.RequiresDisambiguation)
		assert.True(t, e.BasePrice.Equal(decimal.RequireFromString("40")))
	})

	t.Run("unknown code is a validation error", func(t *testing.T) {
		_, err := c.Lookup("NOPE")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("category order follows the catalog", func(t *testing.T) {
		var codes []Code
		for _, e := range c.InCategory(CategoryOrganisation) {
			codes = append(codes, e.Code)
		}
		assert.Equal(t, []Code{CodeASIC, CodeATO, CodeCourt, CodePPSR}, codes)
	})

	t.Run("visibility filters by subject kind", func(t *testing.T) {
		var codes []Code
		for _, e := range c.Visible(CategoryLandTitle, SubjectIndividual) {
			codes = append(codes, e.Code)
		}
		assert.Equal(t, []Code{CodeLandTitleReference, CodeLandTitleAddress, CodeLandTitleIndividual}, codes)
		assert.Empty(t, c.Visible(CategoryOrganisation, SubjectIndividual))
	})

	t.Run("NSW tariff", func(t *testing.T) {
		tariff, ok := c.StateTariff(StateNSW)
		require.True(t, ok)
		assert.Equal(t, "15.00", tariff.Locator.StringFixed(2))
		assert.Equal(t, "27.00", tariff.TitleSearchFull.Title.StringFixed(2))
		assert.Equal(t, "35.00", tariff.TitleSearchFull.Historical.StringFixed(2))
	})

	t.Run("every state is priced", func(t *testing.T) {
		for _, s := range States() {
			_, ok := c.StateTariff(s)
			assert.True(t, ok, s)
		}
	})

	t.Run("entries copy is detached", func(t *testing.T) {
		entries := c.Entries()
		entries[0].DisplayName = "mutated"
		e, _ := c.Entry(entries[0].Code)
		assert.NotEqual(t, "mutated", e.DisplayName)
	})
}

func TestNewRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"duplicate code", []Entry{{Code: "A"}, {Code: "A"}}},
		{"empty code", []Entry{{Code: ""}}},
		{"select-all code", []Entry{{Code: "organisation:ALL"}}},
		{"dangling satisfied-by", []Entry{{Code: "A", SatisfiedBy: "B"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries, DefaultTariffs())
			assert.Error(t, err)
		})
	}
}

func TestParsers(t *testing.T) {
	s, err := ParseState(" nsw ")
	require.NoError(t, err)
	assert.Equal(t, StateNSW, s)

	_, err = ParseState("XX")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	ct, err := ParseCourtType("civil")
	require.NoError(t, err)
	assert.Equal(t, []CourtType{CourtCivil}, ct.Covers())
	assert.Equal(t, []CourtType{CourtCriminal, CourtCivil}, CourtAll.Covers())

	_, err = ParseDetailTier("everything")
	assert.Error(t, err)

	assert.True(t, SelectAllCode(CategoryAdditional).IsSelectAll())
	assert.False(t, CodeASIC.IsSelectAll())
}
