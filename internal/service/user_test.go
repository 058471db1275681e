package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
)

type fakeProfiles struct {
	*fakeUsers
	deleted []uuid.UUID
}

func (f *fakeProfiles) UpdateProfile(_ context.Context, user domain.User) (*domain.User, error) {
	f.byID[user.ID] = &user
	return &user, nil
}

func (f *fakeProfiles) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func userFixture(t *testing.T) (*UserService, *fakeProfiles, uuid.UUID) {
	t.Helper()

	bio := "Go developer"
	user := &domain.User{ID: uuid.New(), GitHubID: "1", Bio: &bio}
	profiles := &fakeProfiles{fakeUsers: newFakeUsers(user)}

	return NewUserService(profiles), profiles, user.ID
}

func TestUpdateProfile_AppliesPresentFields(t *testing.T) {
	svc, _, userID := userFixture(t)

	updated, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileInput{
		Name:  strp("Denis"),
		Title: strp("Backend Engineer"),
		SocialLinks: &domain.SocialLinks{
			"twitter": "https://twitter.com/denis",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Denis", *updated.Name)
	assert.Equal(t, "Backend Engineer", *updated.Title)
	assert.Equal(t, "Go developer", *updated.Bio)
	assert.Equal(t, "https://twitter.com/denis", updated.SocialLinks["twitter"])
}

func TestUpdateProfile_BlankStringClearsField(t *testing.T) {
	svc, _, userID := userFixture(t)

	updated, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileInput{
		Bio: strp("  "),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Bio)
}

func TestUpdateProfile_NoChangeIsNoop(t *testing.T) {
	svc, _, userID := userFixture(t)

	_, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileInput{
		Bio: strp("Go developer"),
	})
	assert.ErrorIs(t, err, domain.ErrNoop)

	_, err = svc.UpdateProfile(context.Background(), userID, UpdateProfileInput{})
	assert.ErrorIs(t, err, domain.ErrNoop)
}

func TestUpdateProfile_LengthCeilings(t *testing.T) {
	svc, _, userID := userFixture(t)

	_, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileInput{
		Name: strp(strings.Repeat("x", maxNameLen+1)),
	})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)

	_, err = svc.UpdateProfile(context.Background(), userID, UpdateProfileInput{
		SocialLinks: &domain.SocialLinks{"blog": strings.Repeat("y", maxURLLen+1)},
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "social_links.blog", vErr.Field)
}

func TestDeleteAccount(t *testing.T) {
	svc, profiles, userID := userFixture(t)

	require.NoError(t, svc.DeleteAccount(context.Background(), userID))
	assert.Equal(t, []uuid.UUID{userID}, profiles.deleted)

	err := svc.DeleteAccount(context.Background(), userID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
