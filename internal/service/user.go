package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
)

// ProfileStore defines the user data access interface consumed by
// UserService.
type ProfileStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, user domain.User) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserService handles profile management.
type UserService struct {
	users ProfileStore
}

// NewUserService creates a new UserService.
func NewUserService(users ProfileStore) *UserService {
	return &UserService{users: users}
}

// UpdateProfileInput carries a partial profile update; nil fields are left
// untouched, blank strings clear the stored value.
type UpdateProfileInput struct {
	Name        *string
	Title       *string
	Bio         *string
	SocialLinks *domain.SocialLinks
}

// UpdateProfile validates and applies a partial profile update. A request
// that changes nothing beyond the timestamp is rejected as a no-op.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	existing, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := *existing

	if input.Name != nil {
		name, err := trimOptional("name", input.Name, maxNameLen)
		if err != nil {
			return nil, err
		}
		updated.Name = name
	}
	if input.Title != nil {
		title, err := trimOptional("title", input.Title, maxNameLen)
		if err != nil {
			return nil, err
		}
		updated.Title = title
	}
	if input.Bio != nil {
		bio, err := trimOptional("bio", input.Bio, maxBioLen)
		if err != nil {
			return nil, err
		}
		updated.Bio = bio
	}
	if input.SocialLinks != nil {
		links := *input.SocialLinks
		for platform, url := range links {
			if len(url) > maxURLLen {
				return nil, &domain.ValidationError{Field: "social_links." + platform, Message: "url too long"}
			}
		}
		updated.SocialLinks = links
	}

	if profileEqual(existing, &updated) {
		return nil, domain.ErrNoop
	}

	return s.users.UpdateProfile(ctx, updated)
}

// DeleteAccount removes the user and, via cascade, every owned portfolio.
func (s *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return s.users.Delete(ctx, userID)
}

func profileEqual(a, b *domain.User) bool {
	if !strEq(a.Name, b.Name) || !strEq(a.Title, b.Title) || !strEq(a.Bio, b.Bio) {
		return false
	}
	if len(a.SocialLinks) != len(b.SocialLinks) {
		return false
	}
	for k, v := range a.SocialLinks {
		if b.SocialLinks[k] != v {
			return false
		}
	}
	return true
}
