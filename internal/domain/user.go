package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SocialLinks maps a social platform name (e.g. "github", "linkedin") to a URL.
// Stored as a jsonb column.
type SocialLinks map[string]string

// Value implements driver.Valuer for jsonb storage.
func (s SocialLinks) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for jsonb retrieval.
func (s *SocialLinks) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = SocialLinks{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("scan social links: unsupported type %T", src)
	}
}

// User represents an authenticated user. The GitHub token is persisted for
// repository sync and never serialized to API responses.
type User struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	GitHubID    string      `json:"github_id" db:"github_id"`
	Email       *string     `json:"email,omitempty" db:"email"`
	Name        *string     `json:"name,omitempty" db:"name"`
	Username    *string     `json:"username,omitempty" db:"username"`
	AvatarURL   *string     `json:"avatar_url,omitempty" db:"avatar_url"`
	Bio         *string     `json:"bio,omitempty" db:"bio"`
	Title       *string     `json:"title,omitempty" db:"title"`
	SocialLinks SocialLinks `json:"social_links" db:"social_links"`
	GitHubToken *string     `json:"-" db:"github_token"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// PublicProfile is the owner subset exposed on public portfolio pages.
type PublicProfile struct {
	Name        *string     `json:"name"`
	Title       *string     `json:"title"`
	Bio         *string     `json:"bio"`
	AvatarURL   *string     `json:"avatar_url"`
	SocialLinks SocialLinks `json:"social_links"`
}

// PublicProfile returns the publicly visible subset of the user's profile.
func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{
		Name:        u.Name,
		Title:       u.Title,
		Bio:         u.Bio,
		AvatarURL:   u.AvatarURL,
		SocialLinks: u.SocialLinks,
	}
}
