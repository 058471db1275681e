package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
	"github.com/DenisMukonin/Project-Portfolio/internal/service"
)

// PortfolioHandler handles portfolio lifecycle endpoints.
type PortfolioHandler struct {
	portfolios *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolios *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolios: portfolios}
}

// List returns the caller's portfolios.
func (h *PortfolioHandler) List(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	portfolios, err := h.portfolios.List(c.Request().Context(), uid)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, portfolios)
}

// Get returns one owned portfolio.
func (h *PortfolioHandler) Get(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	p, err := h.portfolios.Get(c.Request().Context(), uid, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, p)
}

// Create provisions a new portfolio with defaults.
func (h *PortfolioHandler) Create(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	p, err := h.portfolios.Create(c.Request().Context(), uid)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, p)
}

type updatePortfolioRequest struct {
	Title       *string `json:"title"`
	Subtitle    *string `json:"subtitle"`
	Description *string `json:"description"`
	Slug        *string `json:"slug"`
	Template    *string `json:"template"`
}

// Update applies a partial update to an owned portfolio.
func (h *PortfolioHandler) Update(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var body updatePortfolioRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}

	p, err := h.portfolios.Update(c.Request().Context(), uid, id, service.UpdatePortfolioInput{
		Title:       body.Title,
		Subtitle:    body.Subtitle,
		Description: body.Description,
		Slug:        body.Slug,
		Template:    body.Template,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, p)
}

// Publish makes the portfolio publicly visible.
func (h *PortfolioHandler) Publish(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	p, err := h.portfolios.Publish(c.Request().Context(), uid, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, p)
}

// Delete removes a portfolio and its nested records.
func (h *PortfolioHandler) Delete(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.portfolios.Delete(c.Request().Context(), uid, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Templates returns the template catalog.
func Templates(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.TemplateCatalog)
}
