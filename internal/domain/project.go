package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project is a portfolio entry. GitHubRepoID is set for rows managed by the
// sync reconciler and nil for manually created projects; at most one row per
// portfolio may reference a given repository id.
type Project struct {
	ID           uuid.UUID `json:"id" db:"id"`
	PortfolioID  uuid.UUID `json:"portfolio_id" db:"portfolio_id"`
	GitHubRepoID *string   `json:"github_repo_id,omitempty" db:"github_repo_id"`
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description,omitempty" db:"description"`
	URL          *string   `json:"url,omitempty" db:"url"`
	Language     *string   `json:"language,omitempty" db:"language"`
	Stars        int       `json:"stars" db:"stars"`
	IsVisible    bool      `json:"is_visible" db:"is_visible"`
	OrderIndex   int       `json:"order_index" db:"order_index"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
