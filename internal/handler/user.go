package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
	"github.com/DenisMukonin/Project-Portfolio/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type updateProfileRequest struct {
	Name        *string             `json:"name"`
	Title       *string             `json:"title"`
	Bio         *string             `json:"bio"`
	SocialLinks *domain.SocialLinks `json:"social_links"`
}

// Update applies a partial profile update.
func (h *UserHandler) Update(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var body updateProfileRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), uid, service.UpdateProfileInput{
		Name:        body.Name,
		Title:       body.Title,
		Bio:         body.Bio,
		SocialLinks: body.SocialLinks,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Delete removes the account and everything it owns.
func (h *UserHandler) Delete(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	if err := h.users.DeleteAccount(c.Request().Context(), uid); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
