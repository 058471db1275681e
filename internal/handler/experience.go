package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
	"github.com/DenisMukonin/Project-Portfolio/internal/service"
)

// ExperienceHandler handles experience endpoints nested under a portfolio.
type ExperienceHandler struct {
	experiences *service.ExperienceService
}

// NewExperienceHandler creates a new ExperienceHandler.
func NewExperienceHandler(experiences *service.ExperienceService) *ExperienceHandler {
	return &ExperienceHandler{experiences: experiences}
}

// List returns the portfolio's experiences ordered by position.
func (h *ExperienceHandler) List(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	portfolioID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	experiences, err := h.experiences.List(c.Request().Context(), uid, portfolioID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, experiences)
}

type createExperienceRequest struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    *string `json:"location"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	IsCurrent   bool    `json:"is_current"`
	Description *string `json:"description"`
}

// Create adds a new experience entry.
func (h *ExperienceHandler) Create(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	portfolioID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var body createExperienceRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}

	e, err := h.experiences.Create(c.Request().Context(), uid, portfolioID, service.CreateExperienceInput{
		Title:       body.Title,
		Company:     body.Company,
		Location:    body.Location,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		IsCurrent:   body.IsCurrent,
		Description: body.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, e)
}

type updateExperienceRequest struct {
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	Location    *string `json:"location"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	IsCurrent   *bool   `json:"is_current"`
	Description *string `json:"description"`
}

// Update applies a partial update to an experience entry.
func (h *ExperienceHandler) Update(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	portfolioID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	experienceID, err := pathUUID(c, "experienceId")
	if err != nil {
		return err
	}

	var body updateExperienceRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}

	e, err := h.experiences.Update(c.Request().Context(), uid, portfolioID, experienceID, service.UpdateExperienceInput{
		Title:       body.Title,
		Company:     body.Company,
		Location:    body.Location,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		IsCurrent:   body.IsCurrent,
		Description: body.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, e)
}

// Delete removes an experience entry.
func (h *ExperienceHandler) Delete(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	portfolioID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	experienceID, err := pathUUID(c, "experienceId")
	if err != nil {
		return err
	}

	if err := h.experiences.Delete(c.Request().Context(), uid, portfolioID, experienceID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
