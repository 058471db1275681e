package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
)

// ProjectStore defines the project data access interface consumed by
// ProjectService.
type ProjectStore interface {
	ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]domain.Project, error)
	FindByID(ctx context.Context, portfolioID, id uuid.UUID) (*domain.Project, error)
	Create(ctx context.Context, p domain.Project) (*domain.Project, error)
	Update(ctx context.Context, p domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, portfolioID, id uuid.UUID) error
	NextOrderIndex(ctx context.Context, portfolioID uuid.UUID) (int, error)
}

// ProjectService handles manually curated project CRUD. Repository-mirrored
// rows are additionally maintained by the sync reconciler.
type ProjectService struct {
	portfolios PortfolioFinder
	projects   ProjectStore
}

// NewProjectService creates a new ProjectService.
func NewProjectService(portfolios PortfolioFinder, projects ProjectStore) *ProjectService {
	return &ProjectService{portfolios: portfolios, projects: projects}
}

// List returns the portfolio's projects ordered by position.
func (s *ProjectService) List(ctx context.Context, userID, portfolioID uuid.UUID) ([]domain.Project, error) {
	if _, err := authorizePortfolio(ctx, s.portfolios, portfolioID, userID); err != nil {
		return nil, err
	}
	return s.projects.ListByPortfolio(ctx, portfolioID)
}

// CreateProjectInput carries a new manually added project.
type CreateProjectInput struct {
	Name        string
	Description *string
	URL         *string
	Language    *string
}

// Create validates and appends a new manual project at the end of the
// collection.
func (s *ProjectService) Create(ctx context.Context, userID, portfolioID uuid.UUID, input CreateProjectInput) (*domain.Project, error) {
	if _, err := authorizePortfolio(ctx, s.portfolios, portfolioID, userID); err != nil {
		return nil, err
	}

	name, err := trimRequired("name", input.Name, maxNameLen)
	if err != nil {
		return nil, err
	}
	description, err := trimOptional("description", input.Description, maxDescriptionLen)
	if err != nil {
		return nil, err
	}
	url, err := trimOptional("url", input.URL, maxURLLen)
	if err != nil {
		return nil, err
	}
	language, err := trimOptional("language", input.Language, maxNameLen)
	if err != nil {
		return nil, err
	}

	orderIndex, err := s.projects.NextOrderIndex(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	return s.projects.Create(ctx, domain.Project{
		PortfolioID: portfolioID,
		Name:        name,
		Description: description,
		URL:         url,
		Language:    language,
		IsVisible:   true,
		OrderIndex:  orderIndex,
	})
}

// UpdateProjectInput carries a partial project update; nil fields are left
// untouched.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	URL         *string
	Language    *string
	IsVisible   *bool
}

// Update validates and applies a partial update. A request that changes
// nothing beyond the timestamp is rejected as a no-op.
func (s *ProjectService) Update(ctx context.Context, userID, portfolioID, projectID uuid.UUID, input UpdateProjectInput) (*domain.Project, error) {
	if _, err := authorizePortfolio(ctx, s.portfolios, portfolioID, userID); err != nil {
		return nil, err
	}

	existing, err := s.projects.FindByID(ctx, portfolioID, projectID)
	if err != nil {
		return nil, err
	}

	updated := *existing

	if input.Name != nil {
		name, err := trimRequired("name", *input.Name, maxNameLen)
		if err != nil {
			return nil, err
		}
		updated.Name = name
	}
	if input.Description != nil {
		description, err := trimOptional("description", input.Description, maxDescriptionLen)
		if err != nil {
			return nil, err
		}
		updated.Description = description
	}
	if input.URL != nil {
		url, err := trimOptional("url", input.URL, maxURLLen)
		if err != nil {
			return nil, err
		}
		updated.URL = url
	}
	if input.Language != nil {
		language, err := trimOptional("language", input.Language, maxNameLen)
		if err != nil {
			return nil, err
		}
		updated.Language = language
	}
	if input.IsVisible != nil {
		updated.IsVisible = *input.IsVisible
	}

	if projectEqual(existing, &updated) {
		return nil, domain.ErrNoop
	}

	return s.projects.Update(ctx, updated)
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, userID, portfolioID, projectID uuid.UUID) error {
	if _, err := authorizePortfolio(ctx, s.portfolios, portfolioID, userID); err != nil {
		return err
	}
	return s.projects.Delete(ctx, portfolioID, projectID)
}

func projectEqual(a, b *domain.Project) bool {
	return a.Name == b.Name &&
		strEq(a.Description, b.Description) &&
		strEq(a.URL, b.URL) &&
		strEq(a.Language, b.Language) &&
		a.IsVisible == b.IsVisible
}
