package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
)

func portfolioFixture(t *testing.T, username string) (*PortfolioService, *fakePortfolioStore, uuid.UUID) {
	t.Helper()

	user := &domain.User{ID: uuid.New(), GitHubID: "1"}
	if username != "" {
		user.Username = &username
	}

	store := &fakePortfolioStore{fakePortfolios: newFakePortfolios()}
	svc := NewPortfolioService(store, newFakeUsers(user))
	return svc, store, user.ID
}

func TestPortfolioCreate_SlugFromUsername(t *testing.T) {
	svc, _, userID := portfolioFixture(t, "Denis Mukonin")

	p, err := svc.Create(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, "denis-mukonin", p.Slug)
	assert.Equal(t, "My Portfolio", p.Title)
	assert.Equal(t, domain.TemplateMinimal, p.Template)
	assert.False(t, p.IsPublished)
}

func TestPortfolioCreate_SecondPortfolioGetsSuffix(t *testing.T) {
	svc, store, userID := portfolioFixture(t, "denis")

	_, err := svc.Create(context.Background(), userID)
	require.NoError(t, err)

	store.countByUser = 1
	second, err := svc.Create(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "denis-2", second.Slug)
}

func TestPortfolioCreate_RetriesOnSlugConflict(t *testing.T) {
	svc, store, userID := portfolioFixture(t, "denis")
	store.createErrs = []error{domain.ErrConflict, domain.ErrConflict}

	p, err := svc.Create(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "denis-3", p.Slug)
}

func TestPortfolioCreate_GivesUpAfterRetries(t *testing.T) {
	svc, store, userID := portfolioFixture(t, "denis")
	for i := 0; i < maxSlugRetries; i++ {
		store.createErrs = append(store.createErrs, domain.ErrConflict)
	}

	_, err := svc.Create(context.Background(), userID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConflict, "exhaustion is a server fault, not a client conflict")
}

func TestPortfolioCreate_NonConflictErrorAborts(t *testing.T) {
	svc, store, userID := portfolioFixture(t, "denis")
	store.createErrs = []error{domain.ErrInvalidInput}

	_, err := svc.Create(context.Background(), userID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.created)
}

func TestPortfolioUpdate_PartialFields(t *testing.T) {
	svc, _, userID := portfolioFixture(t, "denis")

	p, err := svc.Create(context.Background(), userID)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), userID, p.ID, UpdatePortfolioInput{
		Title:    strp("Backend Work"),
		Template: strp("tech"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend Work", updated.Title)
	assert.Equal(t, domain.TemplateTech, updated.Template)
	assert.Equal(t, p.Slug, updated.Slug)
}

func TestPortfolioUpdate_RejectsBadSlugAndTemplate(t *testing.T) {
	svc, _, userID := portfolioFixture(t, "denis")

	p, err := svc.Create(context.Background(), userID)
	require.NoError(t, err)

	for _, bad := range []string{"ab", "Has-Caps", "double--hyphen", "-edge", "edge-"} {
		_, err = svc.Update(context.Background(), userID, p.ID, UpdatePortfolioInput{Slug: strp(bad)})
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr, "slug %q", bad)
		assert.Equal(t, "slug", vErr.Field)
	}

	_, err = svc.Update(context.Background(), userID, p.ID, UpdatePortfolioInput{Template: strp("brutalist")})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "template", vErr.Field)
}

func TestPortfolioPublish_Idempotent(t *testing.T) {
	svc, _, userID := portfolioFixture(t, "denis")

	p, err := svc.Create(context.Background(), userID)
	require.NoError(t, err)

	published, err := svc.Publish(context.Background(), userID, p.ID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	again, err := svc.Publish(context.Background(), userID, p.ID)
	require.NoError(t, err)
	assert.True(t, again.IsPublished)
}

func TestPortfolioAccessControl(t *testing.T) {
	svc, _, userID := portfolioFixture(t, "denis")

	p, err := svc.Create(context.Background(), userID)
	require.NoError(t, err)

	stranger := uuid.New()

	_, err = svc.Get(context.Background(), stranger, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Get(context.Background(), userID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Delete(context.Background(), stranger, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
