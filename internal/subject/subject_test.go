package subject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchorder/internal/catalog"
	dErrors "searchorder/pkg/domain-errors"
)

func TestSetIndividual(t *testing.T) {
	t.Run("normalizes slash dates to ISO", func(t *testing.T) {
		var h Holder
		require.NoError(t, h.SetIndividual(Individual{FirstName: " Jane ", LastName: "Citizen", DateOfBirth: "05/03/1980"}))

		s := h.Current()
		assert.Equal(t, catalog.SubjectIndividual, s.Kind)
		assert.Equal(t, "1980-03-05", s.Individual.DateOfBirth)
		assert.Equal(t, "Jane Citizen", s.DisplayName())
	})

	t.Run("requires a last name", func(t *testing.T) {
		var h Holder
		err := h.SetIndividual(Individual{FirstName: "Jane"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects unparseable dates", func(t *testing.T) {
		var h Holder
		err := h.SetIndividual(Individual{LastName: "Citizen", DateOfBirth: "31/02/1980"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects reversed birth year range", func(t *testing.T) {
		var h Holder
		err := h.SetIndividual(Individual{LastName: "Citizen", BirthYearRange: &BirthYearRange{From: 1990, To: 1980}})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1980-03-05", "1980-03-05"},
		{"05/03/1980", "1980-03-05"},
		{"05-03-1980", "1980-03-05"},
		{"5/3/1980", "1980-03-05"},
		{" 05/03/1980 ", "1980-03-05"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, raw := range []string{"", "March 1980", "1980/03/05"} {
		_, err := NormalizeDate(raw)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), raw)
	}
}

func TestLock(t *testing.T) {
	var h Holder
	require.NoError(t, h.SetOrganisation(Organisation{ABN: "51 824 753 556", Name: "Acme Pty Ltd"}))
	assert.Equal(t, "51824753556", h.Current().Organisation.ABN)

	h.Confirm()
	require.True(t, h.Locked())

	err := h.SetIndividual(Individual{LastName: "Citizen"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Equal(t, "Acme Pty Ltd", h.Current().DisplayName())

	h.Reset()
	assert.False(t, h.Locked())
	assert.True(t, h.Current().IsZero())
	require.NoError(t, h.SetIndividual(Individual{LastName: "Citizen"}))
}

func TestCurrentReturnsDetachedCopy(t *testing.T) {
	var h Holder
	require.NoError(t, h.SetIndividual(Individual{LastName: "Citizen", BirthYearRange: &BirthYearRange{From: 1970, To: 1975}}))

	s := h.Current()
	s.Individual.BirthYearRange.From = 1900

	assert.Equal(t, 1970, h.Current().Individual.BirthYearRange.From)
}
