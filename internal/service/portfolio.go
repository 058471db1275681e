package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
	"github.com/DenisMukonin/Project-Portfolio/internal/slug"
)

// maxSlugRetries bounds the retry loop absorbing slug allocation races
// between concurrent provisioning requests.
const maxSlugRetries = 5

// PortfolioFinder is the minimal interface every nested-resource service
// uses to re-derive ownership from the portfolio row on each call.
type PortfolioFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Portfolio, error)
}

// PortfolioStore defines the portfolio data access interface consumed by
// PortfolioService.
type PortfolioStore interface {
	PortfolioFinder
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Portfolio, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	Create(ctx context.Context, p domain.Portfolio) (*domain.Portfolio, error)
	Update(ctx context.Context, p domain.Portfolio) (*domain.Portfolio, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*domain.Portfolio, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// authorizePortfolio loads the portfolio and verifies the caller owns it.
// Missing portfolios yield ErrNotFound, foreign ones ErrForbidden.
func authorizePortfolio(ctx context.Context, store PortfolioFinder, portfolioID, userID uuid.UUID) (*domain.Portfolio, error) {
	p, err := store.FindByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// PortfolioService handles portfolio lifecycle logic.
type PortfolioService struct {
	portfolios PortfolioStore
	users      UserStore
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(portfolios PortfolioStore, users UserStore) *PortfolioService {
	return &PortfolioService{portfolios: portfolios, users: users}
}

// List returns the caller's portfolios, newest first.
func (s *PortfolioService) List(ctx context.Context, userID uuid.UUID) ([]domain.Portfolio, error) {
	return s.portfolios.ListByUser(ctx, userID)
}

// Get returns one portfolio after an ownership check.
func (s *PortfolioService) Get(ctx context.Context, userID, portfolioID uuid.UUID) (*domain.Portfolio, error) {
	return authorizePortfolio(ctx, s.portfolios, portfolioID, userID)
}

// Create provisions a new portfolio with a slug derived from the username.
// Slug allocation retries on uniqueness conflicts with a fresh candidate and
// fails closed after maxSlugRetries; any other error aborts immediately.
func (s *PortfolioService) Create(ctx context.Context, userID uuid.UUID) (*domain.Portfolio, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var username string
	if user.Username != nil {
		username = *user.Username
	}
	base := slug.Make(username)

	existing, err := s.portfolios.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxSlugRetries; attempt++ {
		candidate := slug.Candidate(base, existing+attempt)

		created, err := s.portfolios.Create(ctx, domain.Portfolio{
			UserID:   userID,
			Title:    "My Portfolio",
			Slug:     candidate,
			Template: domain.TemplateMinimal,
		})
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("generate unique slug: exhausted %d candidates", maxSlugRetries)
}

// UpdatePortfolioInput carries a partial portfolio update; nil fields are
// left untouched.
type UpdatePortfolioInput struct {
	Title       *string
	Subtitle    *string
	Description *string
	Slug        *string
	Template    *string
}

// Update applies a partial update to the caller's portfolio.
func (s *PortfolioService) Update(ctx context.Context, userID, portfolioID uuid.UUID, input UpdatePortfolioInput) (*domain.Portfolio, error) {
	p, err := authorizePortfolio(ctx, s.portfolios, portfolioID, userID)
	if err != nil {
		return nil, err
	}

	updated := *p

	if input.Title != nil {
		title, err := trimRequired("title", *input.Title, maxTitleLen)
		if err != nil {
			return nil, err
		}
		updated.Title = title
	}
	if input.Subtitle != nil {
		subtitle, err := trimOptional("subtitle", input.Subtitle, maxTitleLen)
		if err != nil {
			return nil, err
		}
		updated.Subtitle = subtitle
	}
	if input.Description != nil {
		description, err := trimOptional("description", input.Description, maxDescriptionLen)
		if err != nil {
			return nil, err
		}
		updated.Description = description
	}
	if input.Slug != nil {
		if !slug.IsValid(*input.Slug) {
			return nil, &domain.ValidationError{Field: "slug", Message: "must be 3-50 lowercase letters, digits, or hyphens"}
		}
		updated.Slug = *input.Slug
	}
	if input.Template != nil {
		if !domain.IsValidTemplate(*input.Template) {
			return nil, &domain.ValidationError{Field: "template", Message: "unknown template"}
		}
		updated.Template = domain.Template(*input.Template)
	}

	return s.portfolios.Update(ctx, updated)
}

// Publish makes the portfolio publicly visible. Publishing an already
// published portfolio is a no-op returning the current row.
func (s *PortfolioService) Publish(ctx context.Context, userID, portfolioID uuid.UUID) (*domain.Portfolio, error) {
	p, err := authorizePortfolio(ctx, s.portfolios, portfolioID, userID)
	if err != nil {
		return nil, err
	}
	if p.IsPublished {
		return p, nil
	}
	return s.portfolios.SetPublished(ctx, portfolioID, true)
}

// Delete removes the caller's portfolio and all nested records.
func (s *PortfolioService) Delete(ctx context.Context, userID, portfolioID uuid.UUID) error {
	if _, err := authorizePortfolio(ctx, s.portfolios, portfolioID, userID); err != nil {
		return err
	}
	return s.portfolios.Delete(ctx, portfolioID)
}
