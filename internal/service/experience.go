package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
)

// ExperienceStore defines the experience data access interface consumed by
// ExperienceService.
type ExperienceStore interface {
	ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]domain.Experience, error)
	FindByID(ctx context.Context, portfolioID, id uuid.UUID) (*domain.Experience, error)
	Create(ctx context.Context, e domain.Experience) (*domain.Experience, error)
	Update(ctx context.Context, e domain.Experience) (*domain.Experience, error)
	Delete(ctx context.Context, portfolioID, id uuid.UUID) error
	NextOrderIndex(ctx context.Context, portfolioID uuid.UUID) (int, error)
}

// ExperienceService handles work experience CRUD with the shared timeline
// validation rules.
type ExperienceService struct {
	portfolios  PortfolioFinder
	experiences ExperienceStore
}

// NewExperienceService creates a new ExperienceService.
func NewExperienceService(portfolios PortfolioFinder, experiences ExperienceStore) *ExperienceService {
	return &ExperienceService{portfolios: portfolios, experiences: experiences}
}

// List returns the portfolio's experiences ordered by position.
func (s *ExperienceService) List(ctx context.Context, userID, portfolioID uuid.UUID) ([]domain.Experience, error) {
	if _, err := authorizePortfolio(ctx, s.portfolios, portfolioID, userID); err != nil {
		return nil, err
	}
	return s.experiences.ListByPortfolio(ctx, portfolioID)
}

// CreateExperienceInput carries a new experience entry. Dates accept
// YYYY-MM or YYYY-MM-DD.
type CreateExperienceInput struct {
	Title       string
	Company     string
	Location    *string
	StartDate   string
	EndDate     *string
	IsCurrent   bool
	Description *string
}

// Create validates and appends a new experience at the end of the collection.
func (s *ExperienceService) Create(ctx context.Context, userID, portfolioID uuid.UUID, input CreateExperienceInput) (*domain.Experience, error) {
	if _, err := authorizePortfolio(ctx, s.portfolios, portfolioID, userID); err != nil {
		return nil, err
	}

	title, err := trimRequired("title", input.Title, maxTitleLen)
	if err != nil {
		return nil, err
	}
	company, err := trimRequired("company", input.Company, maxCompanyLen)
	if err != nil {
		return nil, err
	}
	location, err := trimOptional("location", input.Location, maxLocationLen)
	if err != nil {
		return nil, err
	}
	description, err := trimOptional("description", input.Description, maxDescriptionLen)
	if err != nil {
		return nil, err
	}
	start, err := parseStartDate("start_date", input.StartDate)
	if err != nil {
		return nil, err
	}

	// A current position never stores an end date, even when one is supplied.
	var end *domain.Date
	if !input.IsCurrent && input.EndDate != nil && *input.EndDate != "" {
		end, err = parseEndDate("end_date", *input.EndDate, start)
		if err != nil {
			return nil, err
		}
	}

	orderIndex, err := s.experiences.NextOrderIndex(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	return s.experiences.Create(ctx, domain.Experience{
		PortfolioID: portfolioID,
		Title:       title,
		Company:     company,
		Location:    location,
		StartDate:   start,
		EndDate:     end,
		IsCurrent:   input.IsCurrent,
		Description: description,
		OrderIndex:  orderIndex,
	})
}

// UpdateExperienceInput carries a partial experience update; nil fields are
// left untouched. An empty EndDate string clears the stored end date.
type UpdateExperienceInput struct {
	Title       *string
	Company     *string
	Location    *string
	StartDate   *string
	EndDate     *string
	IsCurrent   *bool
	Description *string
}

// Update validates and applies a partial update. A request that changes
// nothing beyond the timestamp is rejected as a no-op.
func (s *ExperienceService) Update(ctx context.Context, userID, portfolioID, experienceID uuid.UUID, input UpdateExperienceInput) (*domain.Experience, error) {
	if _, err := authorizePortfolio(ctx, s.portfolios, portfolioID, userID); err != nil {
		return nil, err
	}

	existing, err := s.experiences.FindByID(ctx, portfolioID, experienceID)
	if err != nil {
		return nil, err
	}

	updated := *existing

	if input.Title != nil {
		title, err := trimRequired("title", *input.Title, maxTitleLen)
		if err != nil {
			return nil, err
		}
		updated.Title = title
	}
	if input.Company != nil {
		company, err := trimRequired("company", *input.Company, maxCompanyLen)
		if err != nil {
			return nil, err
		}
		updated.Company = company
	}
	if input.Location != nil {
		location, err := trimOptional("location", input.Location, maxLocationLen)
		if err != nil {
			return nil, err
		}
		updated.Location = location
	}
	if input.Description != nil {
		description, err := trimOptional("description", input.Description, maxDescriptionLen)
		if err != nil {
			return nil, err
		}
		updated.Description = description
	}
	if input.StartDate != nil {
		start, err := parseStartDate("start_date", *input.StartDate)
		if err != nil {
			return nil, err
		}
		updated.StartDate = start
	}
	if input.IsCurrent != nil {
		updated.IsCurrent = *input.IsCurrent
	}

	switch {
	case updated.IsCurrent:
		// The flag always wins over any end date in the same request.
		updated.EndDate = nil
	case input.EndDate != nil:
		if *input.EndDate == "" {
			updated.EndDate = nil
		} else {
			// The effective start is the new one when supplied, otherwise
			// the stored one.
			end, err := parseEndDate("end_date", *input.EndDate, updated.StartDate)
			if err != nil {
				return nil, err
			}
			updated.EndDate = end
		}
	}

	if experienceEqual(existing, &updated) {
		return nil, domain.ErrNoop
	}

	return s.experiences.Update(ctx, updated)
}

// Delete removes an experience entry.
func (s *ExperienceService) Delete(ctx context.Context, userID, portfolioID, experienceID uuid.UUID) error {
	if _, err := authorizePortfolio(ctx, s.portfolios, portfolioID, userID); err != nil {
		return err
	}
	return s.experiences.Delete(ctx, portfolioID, experienceID)
}

func experienceEqual(a, b *domain.Experience) bool {
	return a.Title == b.Title &&
		a.Company == b.Company &&
		strEq(a.Location, b.Location) &&
		a.StartDate.Equal(b.StartDate.Time) &&
		dateEq(a.EndDate, b.EndDate) &&
		a.IsCurrent == b.IsCurrent &&
		strEq(a.Description, b.Description)
}
