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

const userColumns = `id, github_id, email, name, username, avatar_url, bio, title,
	social_links, github_token, created_at, updated_at`

// UserRepository handles user data access operations.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID retrieves a user by their ID.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user by id %s: %w", id, err)
	}
	return &user, nil
}

// Upsert creates a new user or refreshes login-derived fields of an existing
// one keyed by github_id. Profile fields the user edits in-app (bio, title,
// social links) are left untouched on conflict.
func (r *UserRepository) Upsert(ctx context.Context, user domain.User) (*domain.User, error) {
	var result domain.User
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO users (github_id, email, name, username, avatar_url, github_token)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (github_id)
		 DO UPDATE SET email = EXCLUDED.email,
		               username = EXCLUDED.username,
		               avatar_url = EXCLUDED.avatar_url,
		               github_token = EXCLUDED.github_token,
		               updated_at = NOW()
		 RETURNING `+userColumns,
		user.GitHubID, user.Email, user.Name, user.Username, user.AvatarURL, user.GitHubToken,
	).StructScan(&result)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return &result, nil
}

// UpdateProfile persists the editable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, user domain.User) (*domain.User, error) {
	var result domain.User
	err := r.db.QueryRowxContext(ctx,
		`UPDATE users
		 SET name = $2, title = $3, bio = $4, social_links = $5, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		user.ID, user.Name, user.Title, user.Bio, user.SocialLinks,
	).StructScan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update user profile %s: %w", user.ID, err)
	}
	return &result, nil
}

// Delete removes a user; owned portfolios and their children cascade.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
