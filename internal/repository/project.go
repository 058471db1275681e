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

const projectColumns = `id, portfolio_id, github_repo_id, name, description, url, language,
	stars, is_visible, order_index, created_at, updated_at`

// ProjectRepository handles project data access operations.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ListByPortfolio returns every project of a portfolio ordered by position.
func (r *ProjectRepository) ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]domain.Project, error) {
	projects := []domain.Project{}
	err := r.db.SelectContext(ctx, &projects,
		`SELECT `+projectColumns+` FROM projects WHERE portfolio_id = $1 ORDER BY order_index ASC`,
		portfolioID)
	if err != nil {
		return nil, fmt.Errorf("list projects for portfolio %s: %w", portfolioID, err)
	}
	return projects, nil
}

// ListVisibleByPortfolio returns the publicly visible projects ordered by position.
func (r *ProjectRepository) ListVisibleByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]domain.Project, error) {
	projects := []domain.Project{}
	err := r.db.SelectContext(ctx, &projects,
		`SELECT `+projectColumns+` FROM projects
		 WHERE portfolio_id = $1 AND is_visible = true ORDER BY order_index ASC`,
		portfolioID)
	if err != nil {
		return nil, fmt.Errorf("list visible projects for portfolio %s: %w", portfolioID, err)
	}
	return projects, nil
}

// FindByID retrieves a project scoped to its portfolio.
func (r *ProjectRepository) FindByID(ctx context.Context, portfolioID, id uuid.UUID) (*domain.Project, error) {
	var p domain.Project
	err := r.db.GetContext(ctx, &p,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND portfolio_id = $2`,
		id, portfolioID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find project %s: %w", id, err)
	}
	return &p, nil
}

// Create inserts a new project row.
func (r *ProjectRepository) Create(ctx context.Context, p domain.Project) (*domain.Project, error) {
	var result domain.Project
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO projects (portfolio_id, github_repo_id, name, description, url, language,
		                       stars, is_visible, order_index)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+projectColumns,
		p.PortfolioID, p.GitHubRepoID, p.Name, p.Description, p.URL, p.Language,
		p.Stars, p.IsVisible, p.OrderIndex,
	).StructScan(&result)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, fmt.Errorf("repo %v already linked: %w", p.GitHubRepoID, domain.ErrConflict)
		}
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &result, nil
}

// Update persists the manually editable project fields.
func (r *ProjectRepository) Update(ctx context.Context, p domain.Project) (*domain.Project, error) {
	var result domain.Project
	err := r.db.QueryRowxContext(ctx,
		`UPDATE projects
		 SET name = $2, description = $3, url = $4, language = $5, is_visible = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+projectColumns,
		p.ID, p.Name, p.Description, p.URL, p.Language, p.IsVisible,
	).StructScan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update project %s: %w", p.ID, err)
	}
	return &result, nil
}

// UpdateSyncFields overwrites the repository-mirrored fields in place.
// Position, visibility, and manual annotations are never touched by sync.
func (r *ProjectRepository) UpdateSyncFields(ctx context.Context, p domain.Project) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE projects
		 SET name = $2, description = $3, url = $4, language = $5, stars = $6, updated_at = NOW()
		 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.URL, p.Language, p.Stars)
	if err != nil {
		return fmt.Errorf("sync-update project %s: %w", p.ID, err)
	}
	return nil
}

// Delete removes a project scoped to its portfolio.
func (r *ProjectRepository) Delete(ctx context.Context, portfolioID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = $1 AND portfolio_id = $2`, id, portfolioID)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListIDs returns all project ids in the portfolio scope.
func (r *ProjectRepository) ListIDs(ctx context.Context, portfolioID uuid.UUID) ([]uuid.UUID, error) {
	return listIDs(ctx, r.db, "projects", portfolioID)
}

// UpdateOrders applies a validated reorder atomically.
func (r *ProjectRepository) UpdateOrders(ctx context.Context, portfolioID uuid.UUID, updates []domain.OrderUpdate) (int, error) {
	return updateOrders(ctx, r.db, "projects", portfolioID, updates)
}

// NextOrderIndex returns the position for a newly appended project.
func (r *ProjectRepository) NextOrderIndex(ctx context.Context, portfolioID uuid.UUID) (int, error) {
	return nextOrderIndex(ctx, r.db, "projects", portfolioID)
}
