package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
	"github.com/DenisMukonin/Project-Portfolio/internal/github"
)

// RepoSource lists the remote repositories owned by a token's user.
type RepoSource interface {
	ListOwnedRepos(ctx context.Context, token string) ([]github.Repo, error)
}

// SyncProjectStore defines the project data access interface consumed by the
// sync reconciler.
type SyncProjectStore interface {
	ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]domain.Project, error)
	Create(ctx context.Context, p domain.Project) (*domain.Project, error)
	UpdateSyncFields(ctx context.Context, p domain.Project) error
}

// SyncLocker serializes sync runs per portfolio across server instances.
type SyncLocker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

// SyncResult reports the outcome of one reconciliation pass.
type SyncResult struct {
	Success  bool `json:"success"`
	Imported int  `json:"imported"`
	Updated  int  `json:"updated"`
	Total    int  `json:"total"`
}

// SyncService reconciles a user's remote repository list into the
// portfolio's projects, keyed by repository id.
type SyncService struct {
	portfolios PortfolioFinder
	users      UserStore
	projects   SyncProjectStore
	repos      RepoSource
	locks      SyncLocker
	lockTTL    time.Duration
}

// NewSyncService creates a new SyncService.
func NewSyncService(portfolios PortfolioFinder, users UserStore, projects SyncProjectStore, repos RepoSource, locks SyncLocker, lockTTL time.Duration) *SyncService {
	return &SyncService{
		portfolios: portfolios,
		users:      users,
		projects:   projects,
		repos:      repos,
		locks:      locks,
		lockTTL:    lockTTL,
	}
}

// Sync merges the caller's remote repository list into the portfolio.
// Matched rows get their mirrored fields refreshed in place; unknown repos
// are appended after the current maximum order index. Progress already
// written before a failure is kept: sync is idempotent per repository id,
// so the caller can simply re-invoke it.
func (s *SyncService) Sync(ctx context.Context, userID, portfolioID uuid.UUID) (*SyncResult, error) {
	if _, err := authorizePortfolio(ctx, s.portfolios, portfolioID, userID); err != nil {
		return nil, err
	}

	lockKey := "sync:" + portfolioID.String()
	acquired, err := s.locks.AcquireLock(ctx, lockKey, s.lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, domain.ErrSyncInProgress
	}
	defer func() {
		if err := s.locks.ReleaseLock(context.WithoutCancel(ctx), lockKey); err != nil {
			slog.Warn("release sync lock failed", "portfolio_id", portfolioID, "error", err)
		}
	}()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.GitHubToken == nil || *user.GitHubToken == "" {
		return nil, fmt.Errorf("no stored github token: %w", domain.ErrTokenExpired)
	}

	remote, err := s.repos.ListOwnedRepos(ctx, *user.GitHubToken)
	if err != nil {
		return nil, err
	}

	existing, err := s.projects.ListByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	byRepoID := make(map[string]domain.Project, len(existing))
	maxOrderIndex := -1
	for _, p := range existing {
		if p.GitHubRepoID != nil {
			byRepoID[*p.GitHubRepoID] = p
		}
		if p.OrderIndex > maxOrderIndex {
			maxOrderIndex = p.OrderIndex
		}
	}

	result := &SyncResult{Total: len(remote)}
	for _, repo := range remote {
		repoID := strconv.FormatInt(repo.ID, 10)

		if current, ok := byRepoID[repoID]; ok {
			current.Name = repo.Name
			current.Description = repo.Description
			current.URL = repo.HTMLURL
			current.Language = repo.Language
			current.Stars = repo.Stars
			if err := s.projects.UpdateSyncFields(ctx, current); err != nil {
				return nil, err
			}
			result.Updated++
			continue
		}

		maxOrderIndex++
		_, err := s.projects.Create(ctx, domain.Project{
			PortfolioID:  portfolioID,
			GitHubRepoID: &repoID,
			Name:         repo.Name,
			Description:  repo.Description,
			URL:          repo.HTMLURL,
			Language:     repo.Language,
			Stars:        repo.Stars,
			IsVisible:    true,
			OrderIndex:   maxOrderIndex,
		})
		if err != nil {
			// The store-level unique key on (portfolio, repo id) means a
			// concurrent writer beat us to this repo; the next pass will
			// refresh it as an update.
			if errors.Is(err, domain.ErrConflict) {
				maxOrderIndex--
				result.Updated++
				continue
			}
			return nil, err
		}
		result.Imported++
	}

	result.Success = true
	return result, nil
}
