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

const educationColumns = `id, portfolio_id, school, degree, field_of_study, start_date, end_date,
	is_current, description, order_index, created_at, updated_at`

// EducationRepository handles education data access operations.
type EducationRepository struct {
	db *sqlx.DB
}

// NewEducationRepository creates a new EducationRepository.
func NewEducationRepository(db *sqlx.DB) *EducationRepository {
	return &EducationRepository{db: db}
}

// ListByPortfolio returns every education entry of a portfolio ordered by position.
func (r *EducationRepository) ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]domain.Education, error) {
	entries := []domain.Education{}
	err := r.db.SelectContext(ctx, &entries,
		`SELECT `+educationColumns+` FROM education WHERE portfolio_id = $1 ORDER BY order_index ASC`,
		portfolioID)
	if err != nil {
		return nil, fmt.Errorf("list education for portfolio %s: %w", portfolioID, err)
	}
	return entries, nil
}

// FindByID retrieves an education entry scoped to its portfolio.
func (r *EducationRepository) FindByID(ctx context.Context, portfolioID, id uuid.UUID) (*domain.Education, error) {
	var e domain.Education
	err := r.db.GetContext(ctx, &e,
		`SELECT `+educationColumns+` FROM education WHERE id = $1 AND portfolio_id = $2`,
		id, portfolioID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find education %s: %w", id, err)
	}
	return &e, nil
}

// Create inserts a new education row.
func (r *EducationRepository) Create(ctx context.Context, e domain.Education) (*domain.Education, error) {
	var result domain.Education
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO education (portfolio_id, school, degree, field_of_study, start_date, end_date,
		                        is_current, description, order_index)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+educationColumns,
		e.PortfolioID, e.School, e.Degree, e.FieldOfStudy, e.StartDate, e.EndDate,
		e.IsCurrent, e.Description, e.OrderIndex,
	).StructScan(&result)
	if err != nil {
		return nil, fmt.Errorf("create education: %w", err)
	}
	return &result, nil
}

// Update persists the editable education fields.
func (r *EducationRepository) Update(ctx context.Context, e domain.Education) (*domain.Education, error) {
	var result domain.Education
	err := r.db.QueryRowxContext(ctx,
		`UPDATE education
		 SET school = $2, degree = $3, field_of_study = $4, start_date = $5, end_date = $6,
		     is_current = $7, description = $8, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+educationColumns,
		e.ID, e.School, e.Degree, e.FieldOfStudy, e.StartDate, e.EndDate,
		e.IsCurrent, e.Description,
	).StructScan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update education %s: %w", e.ID, err)
	}
	return &result, nil
}

// Delete removes an education entry scoped to its portfolio.
func (r *EducationRepository) Delete(ctx context.Context, portfolioID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM education WHERE id = $1 AND portfolio_id = $2`, id, portfolioID)
	if err != nil {
		return fmt.Errorf("delete education %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListIDs returns all education ids in the portfolio scope.
func (r *EducationRepository) ListIDs(ctx context.Context, portfolioID uuid.UUID) ([]uuid.UUID, error) {
	return listIDs(ctx, r.db, "education", portfolioID)
}

// UpdateOrders applies a validated reorder atomically.
func (r *EducationRepository) UpdateOrders(ctx context.Context, portfolioID uuid.UUID, updates []domain.OrderUpdate) (int, error) {
	return updateOrders(ctx, r.db, "education", portfolioID, updates)
}

// NextOrderIndex returns the position for a newly appended education entry.
func (r *EducationRepository) NextOrderIndex(ctx context.Context, portfolioID uuid.UUID) (int, error) {
	return nextOrderIndex(ctx, r.db, "education", portfolioID)
}
