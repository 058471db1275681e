package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
	"github.com/DenisMukonin/Project-Portfolio/internal/service"
)

// AnalyticsHandler handles the owner stats and public track endpoints.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Stats returns view analytics for an owned portfolio.
func (h *AnalyticsHandler) Stats(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	portfolioID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	stats, err := h.analytics.Stats(c.Request().Context(), uid, portfolioID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}

type trackRequest struct {
	PortfolioID string `json:"portfolio_id"`
}

// Track records one public page view. The portfolio comes from the body, the
// user agent and referrer from the request headers; the client IP keys the
// cooldown window.
func (h *AnalyticsHandler) Track(c echo.Context) error {
	var body trackRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}

	portfolioID, err := uuid.Parse(body.PortfolioID)
	if err != nil {
		return &domain.ValidationError{Field: "portfolio_id", Message: "must be a valid UUID"}
	}

	input := service.TrackInput{
		PortfolioID: portfolioID,
		ClientIP:    c.RealIP(),
	}
	if ua := c.Request().UserAgent(); ua != "" {
		input.UserAgent = &ua
	}
	if ref := c.Request().Referer(); ref != "" {
		input.Referrer = &ref
	}

	if err := h.analytics.Track(c.Request().Context(), input); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]bool{"tracked": true})
}
