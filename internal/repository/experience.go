package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
)

const experienceColumns = `id, portfolio_id, title, company, location, start_date, end_date,
	is_current, description, order_index, created_at, updated_at`

// ExperienceRepository handles work experience data access operations.
type ExperienceRepository struct {
	db *sqlx.DB
}

// NewExperienceRepository creates a new ExperienceRepository.
func NewExperienceRepository(db *sqlx.DB) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

// ListByPortfolio returns every experience of a portfolio ordered by position.
func (r *ExperienceRepository) ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]domain.Experience, error) {
	experiences := []domain.Experience{}
	err := r.db.SelectContext(ctx, &experiences,
		`SELECT `+experienceColumns+` FROM experiences WHERE portfolio_id = $1 ORDER BY order_index ASC`,
		portfolioID)
	if err != nil {
		return nil, fmt.Errorf("list experiences for portfolio %s: %w", portfolioID, err)
	}
	return experiences, nil
}

// FindByID retrieves an experience scoped to its portfolio.
func (r *ExperienceRepository) FindByID(ctx context.Context, portfolioID, id uuid.UUID) (*domain.Experience, error) {
	var e domain.Experience
	err := r.db.GetContext(ctx, &e,
		`SELECT `+experienceColumns+` FROM experiences WHERE id = $1 AND portfolio_id = $2`,
		id, portfolioID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find experience %s: %w", id, err)
	}
	return &e, nil
}

// Create inserts a new experience row.
func (r *ExperienceRepository) Create(ctx context.Context, e domain.Experience) (*domain.Experience, error) {
	var result domain.Experience
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO experiences (portfolio_id, title, company, location, start_date, end_date,
		                          is_current, description, order_index)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+experienceColumns,
		e.PortfolioID, e.Title, e.Company, e.Location, e.StartDate, e.EndDate,
		e.IsCurrent, e.Description, e.OrderIndex,
	).StructScan(&result)
	if err != nil {
		return nil, fmt.Errorf("create experience: %w", err)
	}
	return &result, nil
}

// Update persists the editable experience fields.
func (r *ExperienceRepository) Update(ctx context.Context, e domain.Experience) (*domain.Experience, error) {
	var result domain.Experience
	err := r.db.QueryRowxContext(ctx,
		`UPDATE experiences
		 SET title = $2, company = $3, location = $4, start_date = $5, end_date = $6,
		     is_current = $7, description = $8, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+experienceColumns,
		e.ID, e.Title, e.Company, e.Location, e.StartDate, e.EndDate,
		e.IsCurrent, e.Description,
	).StructScan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update experience %s: %w", e.ID, err)
	}
	return &result, nil
}

// Delete removes an experience scoped to its portfolio.
func (r *ExperienceRepository) Delete(ctx context.Context, portfolioID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM experiences WHERE id = $1 AND portfolio_id = $2`, id, portfolioID)
	if err != nil {
		return fmt.Errorf("delete experience %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListIDs returns all experience ids in the portfolio scope.
func (r *ExperienceRepository) ListIDs(ctx context.Context, portfolioID uuid.UUID) ([]uuid.UUID, error) {
	return listIDs(ctx, r.db, "experiences", portfolioID)
}

// UpdateOrders applies a validated reorder atomically.
func (r *ExperienceRepository) UpdateOrders(ctx context.Context, portfolioID uuid.UUID, updates []domain.OrderUpdate) (int, error) {
	return updateOrders(ctx, r.db, "experiences", portfolioID, updates)
}

// NextOrderIndex returns the position for a newly appended experience.
func (r *ExperienceRepository) NextOrderIndex(ctx context.Context, portfolioID uuid.UUID) (int, error) {
	return nextOrderIndex(ctx, r.db, "experiences", portfolioID)
}
