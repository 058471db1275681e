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

const portfolioColumns = `id, user_id, title, subtitle, description, slug, template,
	is_published, created_at, updated_at`

// PortfolioRepository handles portfolio data access operations.
type PortfolioRepository struct {
	db *sqlx.DB
}

// NewPortfolioRepository creates a new PortfolioRepository.
func NewPortfolioRepository(db *sqlx.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// FindByID retrieves a portfolio by its ID.
func (r *PortfolioRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Portfolio, error) {
	var p domain.Portfolio
	err := r.db.GetContext(ctx, &p,
		`SELECT `+portfolioColumns+` FROM portfolios WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find portfolio by id %s: %w", id, err)
	}
	return &p, nil
}

// FindPublishedBySlug retrieves a published portfolio by slug. Unpublished
// portfolios are indistinguishable from absent ones.
func (r *PortfolioRepository) FindPublishedBySlug(ctx context.Context, slug string) (*domain.Portfolio, error) {
	var p domain.Portfolio
	err := r.db.GetContext(ctx, &p,
		`SELECT `+portfolioColumns+` FROM portfolios WHERE slug = $1 AND is_published = true`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find portfolio by slug %q: %w", slug, err)
	}
	return &p, nil
}

// ListByUser returns all portfolios owned by a user, newest first.
func (r *PortfolioRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Portfolio, error) {
	portfolios := []domain.Portfolio{}
	err := r.db.SelectContext(ctx, &portfolios,
		`SELECT `+portfolioColumns+` FROM portfolios WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list portfolios for user %s: %w", userID, err)
	}
	return portfolios, nil
}

// CountByUser returns how many portfolios a user owns.
func (r *PortfolioRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT count(*) FROM portfolios WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("count portfolios for user %s: %w", userID, err)
	}
	return n, nil
}

// Create inserts a new portfolio. A slug collision surfaces as ErrConflict so
// the provisioning retry loop can distinguish it from other failures.
func (r *PortfolioRepository) Create(ctx context.Context, p domain.Portfolio) (*domain.Portfolio, error) {
	var result domain.Portfolio
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO portfolios (user_id, title, slug, template)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+portfolioColumns,
		p.UserID, p.Title, p.Slug, p.Template,
	).StructScan(&result)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, fmt.Errorf("slug %q taken: %w", p.Slug, domain.ErrConflict)
		}
		return nil, fmt.Errorf("create portfolio: %w", err)
	}
	return &result, nil
}

// Update persists the editable portfolio fields.
func (r *PortfolioRepository) Update(ctx context.Context, p domain.Portfolio) (*domain.Portfolio, error) {
	var result domain.Portfolio
	err := r.db.QueryRowxContext(ctx,
		`UPDATE portfolios
		 SET title = $2, subtitle = $3, description = $4, slug = $5, template = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+portfolioColumns,
		p.ID, p.Title, p.Subtitle, p.Description, p.Slug, p.Template,
	).StructScan(&result)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, fmt.Errorf("slug %q taken: %w", p.Slug, domain.ErrConflict)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update portfolio %s: %w", p.ID, err)
	}
	return &result, nil
}

// SetPublished flips the publication flag.
func (r *PortfolioRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*domain.Portfolio, error) {
	var result domain.Portfolio
	err := r.db.QueryRowxContext(ctx,
		`UPDATE portfolios SET is_published = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+portfolioColumns,
		id, published,
	).StructScan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("publish portfolio %s: %w", id, err)
	}
	return &result, nil
}

// Delete removes a portfolio; child records cascade.
func (r *PortfolioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM portfolios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete portfolio %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
