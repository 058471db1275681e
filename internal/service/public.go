package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
)

// PublicPortfolioStore resolves published portfolios by slug.
type PublicPortfolioStore interface {
	FindPublishedBySlug(ctx context.Context, slug string) (*domain.Portfolio, error)
}

// VisibleProjectLister lists only publicly visible projects.
type VisibleProjectLister interface {
	ListVisibleByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]domain.Project, error)
}

// ExperienceLister lists a portfolio's experiences.
type ExperienceLister interface {
	ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]domain.Experience, error)
}

// EducationLister lists a portfolio's education entries.
type EducationLister interface {
	ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]domain.Education, error)
}

// PublicPortfolioInfo is the portfolio subset exposed on public pages.
type PublicPortfolioInfo struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Subtitle    *string         `json:"subtitle"`
	Description *string         `json:"description"`
	Slug        string          `json:"slug"`
	Template    domain.Template `json:"template"`
}

// PublicPortfolio is the full public page payload.
type PublicPortfolio struct {
	Portfolio   PublicPortfolioInfo   `json:"portfolio"`
	User        *domain.PublicProfile `json:"user"`
	Projects    []domain.Project      `json:"projects"`
	Experiences []domain.Experience   `json:"experiences"`
	Education   []domain.Education    `json:"education"`
}

// PublicService assembles public portfolio pages.
type PublicService struct {
	portfolios  PublicPortfolioStore
	users       UserStore
	projects    VisibleProjectLister
	experiences ExperienceLister
	education   EducationLister
}

// NewPublicService creates a new PublicService.
func NewPublicService(portfolios PublicPortfolioStore, users UserStore, projects VisibleProjectLister, experiences ExperienceLister, education EducationLister) *PublicService {
	return &PublicService{
		portfolios:  portfolios,
		users:       users,
		projects:    projects,
		experiences: experiences,
		education:   education,
	}
}

// Get returns the published portfolio for a slug together with the owner's
// public profile and ordered child collections. Unpublished and absent
// portfolios are indistinguishable.
func (s *PublicService) Get(ctx context.Context, slug string) (*PublicPortfolio, error) {
	p, err := s.portfolios.FindPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	result := &PublicPortfolio{
		Portfolio: PublicPortfolioInfo{
			ID:          p.ID,
			Title:       p.Title,
			Subtitle:    p.Subtitle,
			Description: p.Description,
			Slug:        p.Slug,
			Template:    p.Template,
		},
	}

	if owner, err := s.users.FindByID(ctx, p.UserID); err == nil {
		profile := owner.PublicProfile()
		result.User = &profile
	}

	if result.Projects, err = s.projects.ListVisibleByPortfolio(ctx, p.ID); err != nil {
		return nil, err
	}
	if result.Experiences, err = s.experiences.ListByPortfolio(ctx, p.ID); err != nil {
		return nil, err
	}
	if result.Education, err = s.education.ListByPortfolio(ctx, p.ID); err != nil {
		return nil, err
	}

	return result, nil
}
