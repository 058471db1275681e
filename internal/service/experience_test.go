package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
)

func experienceFixture(t *testing.T) (*ExperienceService, *fakeExperiences, uuid.UUID, uuid.UUID) {
	t.Helper()

	ownerID := uuid.New()
	portfolio := &domain.Portfolio{ID: uuid.New(), UserID: ownerID}
	experiences := newFakeExperiences()

	svc := NewExperienceService(newFakePortfolios(portfolio), experiences)
	return svc, experiences, ownerID, portfolio.ID
}

func TestExperienceCreate_AppendsAtEnd(t *testing.T) {
	svc, _, ownerID, portfolioID := experienceFixture(t)

	first, err := svc.Create(context.Background(), ownerID, portfolioID, CreateExperienceInput{
		Title:     "Engineer",
		Company:   "Acme",
		StartDate: "2020-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, first.OrderIndex)
	assert.Equal(t, "2020-01-01", first.StartDate.String())

	second, err := svc.Create(context.Background(), ownerID, portfolioID, CreateExperienceInput{
		Title:     "Senior Engineer",
		Company:   "Acme",
		StartDate: "2022-03-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.OrderIndex)
}

func TestExperienceCreate_Validation(t *testing.T) {
	svc, _, ownerID, portfolioID := experienceFixture(t)

	tests := []struct {
		name  string
		input CreateExperienceInput
		field string
	}{
		{
			name:  "blank title",
			input: CreateExperienceInput{Title: "   ", Company: "Acme", StartDate: "2020-01"},
			field: "title",
		},
		{
			name:  "blank company",
			input: CreateExperienceInput{Title: "Engineer", Company: "", StartDate: "2020-01"},
			field: "company",
		},
		{
			name:  "title too long",
			input: CreateExperienceInput{Title: strings.Repeat("x", 101), Company: "Acme", StartDate: "2020-01"},
			field: "title",
		},
		{
			name:  "malformed date",
			input: CreateExperienceInput{Title: "Engineer", Company: "Acme", StartDate: "January 2020"},
			field: "start_date",
		},
		{
			name:  "impossible date",
			input: CreateExperienceInput{Title: "Engineer", Company: "Acme", StartDate: "2026-02-30"},
			field: "start_date",
		},
		{
			name:  "future start",
			input: CreateExperienceInput{Title: "Engineer", Company: "Acme", StartDate: "2099-01-01"},
			field: "start_date",
		},
		{
			name:  "end before start",
			input: CreateExperienceInput{Title: "Engineer", Company: "Acme", StartDate: "2022-05", EndDate: strp("2021-01")},
			field: "end_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), ownerID, portfolioID, tt.input)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestExperienceCreate_CurrentPositionDropsEndDate(t *testing.T) {
	svc, _, ownerID, portfolioID := experienceFixture(t)

	e, err := svc.Create(context.Background(), ownerID, portfolioID, CreateExperienceInput{
		Title:     "Engineer",
		Company:   "Acme",
		StartDate: "2020-01",
		EndDate:   strp("2023-06"),
		IsCurrent: true,
	})
	require.NoError(t, err)
	assert.True(t, e.IsCurrent)
	assert.Nil(t, e.EndDate)
}

func TestExperienceUpdate_PartialChange(t *testing.T) {
	svc, _, ownerID, portfolioID := experienceFixture(t)

	e, err := svc.Create(context.Background(), ownerID, portfolioID, CreateExperienceInput{
		Title:     "Engineer",
		Company:   "Acme",
		StartDate: "2020-01",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), ownerID, portfolioID, e.ID, UpdateExperienceInput{
		Title: strp("Staff Engineer"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", updated.Title)
	assert.Equal(t, "Acme", updated.Company)
}

func TestExperienceUpdate_NoEffectiveChangeIsNoop(t *testing.T) {
	svc, _, ownerID, portfolioID := experienceFixture(t)

	e, err := svc.Create(context.Background(), ownerID, portfolioID, CreateExperienceInput{
		Title:     "Engineer",
		Company:   "Acme",
		StartDate: "2020-01",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), ownerID, portfolioID, e.ID, UpdateExperienceInput{
		Title: strp("Engineer"),
	})
	assert.ErrorIs(t, err, domain.ErrNoop)

	_, err = svc.Update(context.Background(), ownerID, portfolioID, e.ID, UpdateExperienceInput{})
	assert.ErrorIs(t, err, domain.ErrNoop)
}

func TestExperienceUpdate_SettingCurrentClearsEndDate(t *testing.T) {
	svc, _, ownerID, portfolioID := experienceFixture(t)

	e, err := svc.Create(context.Background(), ownerID, portfolioID, CreateExperienceInput{
		Title:     "Engineer",
		Company:   "Acme",
		StartDate: "2020-01",
		EndDate:   strp("2023-06"),
	})
	require.NoError(t, err)
	require.NotNil(t, e.EndDate)

	current := true
	updated, err := svc.Update(context.Background(), ownerID, portfolioID, e.ID, UpdateExperienceInput{
		IsCurrent: &current,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsCurrent)
	assert.Nil(t, updated.EndDate)
}

func TestExperienceUpdate_EmptyEndDateClears(t *testing.T) {
	svc, _, ownerID, portfolioID := experienceFixture(t)

	e, err := svc.Create(context.Background(), ownerID, portfolioID, CreateExperienceInput{
		Title:     "Engineer",
		Company:   "Acme",
		StartDate: "2020-01",
		EndDate:   strp("2023-06"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), ownerID, portfolioID, e.ID, UpdateExperienceInput{
		EndDate: strp(""),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.EndDate)
}

func TestExperienceUpdate_EndValidatedAgainstNewStart(t *testing.T) {
	svc, _, ownerID, portfolioID := experienceFixture(t)

	e, err := svc.Create(context.Background(), ownerID, portfolioID, CreateExperienceInput{
		Title:     "Engineer",
		Company:   "Acme",
		StartDate: "2020-01",
	})
	require.NoError(t, err)

	// Both dates move in one request; the end must be checked against the
	// incoming start, not the stored one.
	_, err = svc.Update(context.Background(), ownerID, portfolioID, e.ID, UpdateExperienceInput{
		StartDate: strp("2024-01"),
		EndDate:   strp("2023-01"),
	})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "end_date", vErr.Field)
}

func TestExperienceAccessControl(t *testing.T) {
	svc, _, ownerID, portfolioID := experienceFixture(t)

	e, err := svc.Create(context.Background(), ownerID, portfolioID, CreateExperienceInput{
		Title:     "Engineer",
		Company:   "Acme",
		StartDate: "2020-01",
	})
	require.NoError(t, err)

	stranger := uuid.New()

	_, err = svc.List(context.Background(), stranger, portfolioID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Update(context.Background(), stranger, portfolioID, e.ID, UpdateExperienceInput{Title: strp("X")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.Delete(context.Background(), stranger, portfolioID, e.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.List(context.Background(), ownerID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExperienceUpdate_UnknownEntry(t *testing.T) {
	svc, _, ownerID, portfolioID := experienceFixture(t)

	_, err := svc.Update(context.Background(), ownerID, portfolioID, uuid.New(), UpdateExperienceInput{Title: strp("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
