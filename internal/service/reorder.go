package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
)

// CollectionKind names an ordered child collection of a portfolio.
type CollectionKind string

const (
	KindProjects    CollectionKind = "projects"
	KindExperiences CollectionKind = "experiences"
	KindEducation   CollectionKind = "education"
)

// OrderedCollection is an ordered child table that supports the reorder
// contract: a bulk id lookup for membership validation and an atomic
// application of new positions.
type OrderedCollection interface {
	ListIDs(ctx context.Context, portfolioID uuid.UUID) ([]uuid.UUID, error)
	UpdateOrders(ctx context.Context, portfolioID uuid.UUID, updates []domain.OrderUpdate) (int, error)
}

// ReorderService validates and atomically persists permutations of a child
// collection's order indices. All preconditions are checked before any
// write; a failing request leaves every order index untouched.
type ReorderService struct {
	portfolios  PortfolioFinder
	collections map[CollectionKind]OrderedCollection
}

// NewReorderService creates a ReorderService covering the three ordered
// collections.
func NewReorderService(portfolios PortfolioFinder, projects, experiences, education OrderedCollection) *ReorderService {
	return &ReorderService{
		portfolios: portfolios,
		collections: map[CollectionKind]OrderedCollection{
			KindProjects:    projects,
			KindExperiences: experiences,
			KindEducation:   education,
		},
	}
}

// Reorder applies all index updates for one collection as a single atomic
// unit, or none. Partial reorders are legal: the submitted set need not
// cover the whole collection, and indices need not be contiguous.
func (s *ReorderService) Reorder(ctx context.Context, userID, portfolioID uuid.UUID, kind CollectionKind, updates []domain.OrderUpdate) (int, error) {
	if _, err := authorizePortfolio(ctx, s.portfolios, portfolioID, userID); err != nil {
		return 0, err
	}

	collection, ok := s.collections[kind]
	if !ok {
		return 0, fmt.Errorf("%w: unknown collection %q", domain.ErrInvalidInput, kind)
	}

	if len(updates) == 0 {
		return 0, &domain.ValidationError{Field: "orders", Message: "must not be empty"}
	}

	seen := make(map[uuid.UUID]struct{}, len(updates))
	for _, u := range updates {
		if u.OrderIndex < 0 {
			return 0, &domain.ValidationError{Field: "orders", Message: fmt.Sprintf("negative order index for %s", u.ID)}
		}
		if _, dup := seen[u.ID]; dup {
			return 0, &domain.ValidationError{Field: "orders", Message: fmt.Sprintf("duplicate id %s", u.ID)}
		}
		seen[u.ID] = struct{}{}
	}

	existingIDs, err := collection.ListIDs(ctx, portfolioID)
	if err != nil {
		return 0, err
	}
	existing := make(map[uuid.UUID]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = struct{}{}
	}
	for _, u := range updates {
		if _, ok := existing[u.ID]; !ok {
			return 0, &domain.ValidationError{Field: "orders", Message: fmt.Sprintf("%s does not belong to this portfolio", u.ID)}
		}
	}

	return collection.UpdateOrders(ctx, portfolioID, updates)
}
