package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
	"github.com/DenisMukonin/Project-Portfolio/internal/service"
	"github.com/DenisMukonin/Project-Portfolio/internal/slug"
)

// PublicHandler serves published portfolio pages by slug.
type PublicHandler struct {
	public *service.PublicService
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(public *service.PublicService) *PublicHandler {
	return &PublicHandler{public: public}
}

// Get returns the published portfolio behind a slug. Slugs that could never
// have been issued are rejected without touching the store.
func (h *PublicHandler) Get(c echo.Context) error {
	s := c.Param("slug")
	if !slug.IsValid(s) {
		return domain.ErrNotFound
	}

	page, err := h.public.Get(c.Request().Context(), s)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}
