package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
)

// EducationStore defines the education data access interface consumed by
// EducationService.
type EducationStore interface {
	ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]domain.Education, error)
	FindByID(ctx context.Context, portfolioID, id uuid.UUID) (*domain.Education, error)
	Create(ctx context.Context, e domain.Education) (*domain.Education, error)
	Update(ctx context.Context, e domain.Education) (*domain.Education, error)
	Delete(ctx context.Context, portfolioID, id uuid.UUID) error
	NextOrderIndex(ctx context.Context, portfolioID uuid.UUID) (int, error)
}

// EducationService handles education CRUD with the shared timeline
// validation rules.
type EducationService struct {
	portfolios PortfolioFinder
	education  EducationStore
}

// NewEducationService creates a new EducationService.
func NewEducationService(portfolios PortfolioFinder, education EducationStore) *EducationService {
	return &EducationService{portfolios: portfolios, education: education}
}

// List returns the portfolio's education entries ordered by position.
func (s *EducationService) List(ctx context.Context, userID, portfolioID uuid.UUID) ([]domain.Education, error) {
	if _, err := authorizePortfolio(ctx, s.portfolios, portfolioID, userID); err != nil {
		return nil, err
	}
	return s.education.ListByPortfolio(ctx, portfolioID)
}

// CreateEducationInput carries a new education entry. Dates accept YYYY-MM
// or YYYY-MM-DD.
type CreateEducationInput struct {
	School       string
	Degree       string
	FieldOfStudy *string
	StartDate    string
	EndDate      *string
	IsCurrent    bool
	Description  *string
}

// Create validates and appends a new education entry at the end of the
// collection.
func (s *EducationService) Create(ctx context.Context, userID, portfolioID uuid.UUID, input CreateEducationInput) (*domain.Education, error) {
	if _, err := authorizePortfolio(ctx, s.portfolios, portfolioID, userID); err != nil {
		return nil, err
	}

	school, err := trimRequired("school", input.School, maxSchoolLen)
	if err != nil {
		return nil, err
	}
	degree, err := trimRequired("degree", input.Degree, maxDegreeLen)
	if err != nil {
		return nil, err
	}
	fieldOfStudy, err := trimOptional("field_of_study", input.FieldOfStudy, maxFieldLen)
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

	var end *domain.Date
	if !input.IsCurrent && input.EndDate != nil && *input.EndDate != "" {
		end, err = parseEndDate("end_date", *input.EndDate, start)
		if err != nil {
			return nil, err
		}
	}

	orderIndex, err := s.education.NextOrderIndex(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	return s.education.Create(ctx, domain.Education{
		PortfolioID:  portfolioID,
		School:       school,
		Degree:       degree,
		FieldOfStudy: fieldOfStudy,
		StartDate:    start,
		EndDate:      end,
		IsCurrent:    input.IsCurrent,
		Description:  description,
		OrderIndex:   orderIndex,
	})
}

// UpdateEducationInput carries a partial education update; nil fields are
// left untouched. An empty EndDate string clears the stored end date.
type UpdateEducationInput struct {
	School       *string
	Degree       *string
	FieldOfStudy *string
	StartDate    *string
	EndDate      *string
	IsCurrent    *bool
	Description  *string
}

// Update validates and applies a partial update. A request that changes
// nothing beyond the timestamp is rejected as a no-op.
func (s *EducationService) Update(ctx context.Context, userID, portfolioID, educationID uuid.UUID, input UpdateEducationInput) (*domain.Education, error) {
	if _, err := authorizePortfolio(ctx, s.portfolios, portfolioID, userID); err != nil {
		return nil, err
	}

	existing, err := s.education.FindByID(ctx, portfolioID, educationID)
	if err != nil {
		return nil, err
	}

	updated := *existing

	if input.School != nil {
		school, err := trimRequired("school", *input.School, maxSchoolLen)
		if err != nil {
			return nil, err
		}
		updated.School = school
	}
	if input.Degree != nil {
		degree, err := trimRequired("degree", *input.Degree, maxDegreeLen)
		if err != nil {
			return nil, err
		}
		updated.Degree = degree
	}
	if input.FieldOfStudy != nil {
		fieldOfStudy, err := trimOptional("field_of_study", input.FieldOfStudy, maxFieldLen)
		if err != nil {
			return nil, err
		}
		updated.FieldOfStudy = fieldOfStudy
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
		updated.EndDate = nil
	case input.EndDate != nil:
		if *input.EndDate == "" {
			updated.EndDate = nil
		} else {
			end, err := parseEndDate("end_date", *input.EndDate, updated.StartDate)
			if err != nil {
				return nil, err
			}
			updated.EndDate = end
		}
	}

	if educationEqual(existing, &updated) {
		return nil, domain.ErrNoop
	}

	return s.education.Update(ctx, updated)
}

// Delete removes an education entry.
func (s *EducationService) Delete(ctx context.Context, userID, portfolioID, educationID uuid.UUID) error {
	if _, err := authorizePortfolio(ctx, s.portfolios, portfolioID, userID); err != nil {
		return err
	}
	return s.education.Delete(ctx, portfolioID, educationID)
}

func educationEqual(a, b *domain.Education) bool {
	return a.School == b.School &&
		a.Degree == b.Degree &&
		strEq(a.FieldOfStudy, b.FieldOfStudy) &&
		a.StartDate.Equal(b.StartDate.Time) &&
		dateEq(a.EndDate, b.EndDate) &&
		a.IsCurrent == b.IsCurrent &&
		strEq(a.Description, b.Description)
}
