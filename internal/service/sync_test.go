package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
	"github.com/DenisMukonin/Project-Portfolio/internal/github"
)

type syncFixture struct {
	svc       *SyncService
	projects  *fakeSyncProjects
	locks     *fakeLocker
	source    *fakeRepoSource
	userID    uuid.UUID
	portfolio uuid.UUID
}

func newSyncFixture(t *testing.T, remote []github.Repo) *syncFixture {
	t.Helper()

	token := "gho_test"
	user := &domain.User{ID: uuid.New(), GitHubID: "1", GitHubToken: &token}
	portfolio := &domain.Portfolio{ID: uuid.New(), UserID: user.ID}

	projects := &fakeSyncProjects{}
	locks := newFakeLocker()
	source := &fakeRepoSource{repos: remote}

	svc := NewSyncService(newFakePortfolios(portfolio), newFakeUsers(user), projects, source, locks, time.Minute)
	return &syncFixture{
		svc:       svc,
		projects:  projects,
		locks:     locks,
		source:    source,
		userID:    user.ID,
		portfolio: portfolio.ID,
	}
}

func strp(s string) *string { return &s }

func TestSync_ImportsNewRepos(t *testing.T) {
	fx := newSyncFixture(t, []github.Repo{
		{ID: 101, Name: "alpha", Description: strp("first"), HTMLURL: strp("https://github.com/u/alpha"), Language: strp("Go"), Stars: 4},
		{ID: 102, Name: "beta"},
	})

	result, err := fx.svc.Sync(context.Background(), fx.userID, fx.portfolio)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 2, result.Total)

	require.Len(t, fx.projects.created, 2)
	first := fx.projects.created[0]
	assert.Equal(t, "alpha", first.Name)
	assert.Equal(t, "101", *first.GitHubRepoID)
	assert.Equal(t, 4, first.Stars)
	assert.True(t, first.IsVisible)
	assert.Equal(t, 0, first.OrderIndex)
	assert.Equal(t, 1, fx.projects.created[1].OrderIndex)
}

func TestSync_SecondRunUpdatesInPlace(t *testing.T) {
	fx := newSyncFixture(t, []github.Repo{
		{ID: 101, Name: "alpha", Stars: 4},
	})

	_, err := fx.svc.Sync(context.Background(), fx.userID, fx.portfolio)
	require.NoError(t, err)

	fx.source.repos[0].Stars = 9
	fx.source.repos[0].Name = "alpha-renamed"

	result, err := fx.svc.Sync(context.Background(), fx.userID, fx.portfolio)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Updated)
	require.Len(t, fx.projects.updated, 1)
	assert.Equal(t, "alpha-renamed", fx.projects.updated[0].Name)
	assert.Equal(t, 9, fx.projects.updated[0].Stars)

	// No duplicate row appeared for the same repository id.
	all, err := fx.projects.ListByPortfolio(context.Background(), fx.portfolio)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSync_UpdateKeepsManualFields(t *testing.T) {
	fx := newSyncFixture(t, []github.Repo{
		{ID: 101, Name: "alpha"},
	})

	repoID := "101"
	fx.projects.projects = []domain.Project{{
		ID:           uuid.New(),
		PortfolioID:  fx.portfolio,
		GitHubRepoID: &repoID,
		Name:         "old-name",
		IsVisible:    false,
		OrderIndex:   3,
	}}

	result, err := fx.svc.Sync(context.Background(), fx.userID, fx.portfolio)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	require.Len(t, fx.projects.updated, 1)
	got := fx.projects.updated[0]
	assert.Equal(t, "alpha", got.Name)
	assert.False(t, got.IsVisible, "visibility is curated by the owner, not the reconciler")
	assert.Equal(t, 3, got.OrderIndex)
}

func TestSync_AppendsAfterMaxOrderIndex(t *testing.T) {
	fx := newSyncFixture(t, []github.Repo{
		{ID: 200, Name: "new-repo"},
	})

	fx.projects.projects = []domain.Project{
		{ID: uuid.New(), PortfolioID: fx.portfolio, Name: "manual", OrderIndex: 5},
	}

	_, err := fx.svc.Sync(context.Background(), fx.userID, fx.portfolio)
	require.NoError(t, err)

	require.Len(t, fx.projects.created, 1)
	assert.Equal(t, 6, fx.projects.created[0].OrderIndex)
}

func TestSync_ConcurrentRunRejected(t *testing.T) {
	fx := newSyncFixture(t, nil)

	held, err := fx.locks.AcquireLock(context.Background(), "sync:"+fx.portfolio.String(), time.Minute)
	require.NoError(t, err)
	require.True(t, held)

	_, err = fx.svc.Sync(context.Background(), fx.userID, fx.portfolio)
	assert.ErrorIs(t, err, domain.ErrSyncInProgress)
}

func TestSync_ReleasesLockAfterRun(t *testing.T) {
	fx := newSyncFixture(t, nil)

	_, err := fx.svc.Sync(context.Background(), fx.userID, fx.portfolio)
	require.NoError(t, err)

	assert.Empty(t, fx.locks.held)
	assert.Equal(t, fx.locks.acquired, fx.locks.released)
}

func TestSync_ReleasesLockOnFailure(t *testing.T) {
	fx := newSyncFixture(t, nil)
	fx.source.err = domain.ErrRateLimited

	_, err := fx.svc.Sync(context.Background(), fx.userID, fx.portfolio)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Empty(t, fx.locks.held)
}

func TestSync_MissingTokenIsExpiredCredential(t *testing.T) {
	user := &domain.User{ID: uuid.New(), GitHubID: "1"}
	portfolio := &domain.Portfolio{ID: uuid.New(), UserID: user.ID}

	svc := NewSyncService(newFakePortfolios(portfolio), newFakeUsers(user), &fakeSyncProjects{}, &fakeRepoSource{}, newFakeLocker(), time.Minute)

	_, err := svc.Sync(context.Background(), user.ID, portfolio.ID)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestSync_ForeignPortfolio(t *testing.T) {
	fx := newSyncFixture(t, nil)

	_, err := fx.svc.Sync(context.Background(), uuid.New(), fx.portfolio)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, fx.locks.acquired, "ownership is checked before taking the lock")
}

func TestSync_CreateConflictCountsAsUpdate(t *testing.T) {
	fx := newSyncFixture(t, []github.Repo{
		{ID: 300, Name: "raced"},
	})
	fx.projects.createErr = domain.ErrConflict

	result, err := fx.svc.Sync(context.Background(), fx.userID, fx.portfolio)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Updated)
}

func TestSync_ManyReposKeepOrderStable(t *testing.T) {
	var remote []github.Repo
	for i := 0; i < 10; i++ {
		remote = append(remote, github.Repo{ID: int64(1000 + i), Name: "repo-" + strconv.Itoa(i)})
	}
	fx := newSyncFixture(t, remote)

	result, err := fx.svc.Sync(context.Background(), fx.userID, fx.portfolio)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Imported)

	for i, created := range fx.projects.created {
		assert.Equal(t, i, created.OrderIndex)
	}
}
