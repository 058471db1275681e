package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
	"github.com/DenisMukonin/Project-Portfolio/internal/service"
)

// EducationHandler handles education endpoints nested under a portfolio.
type EducationHandler struct {
	education *service.EducationService
}

// NewEducationHandler creates a new EducationHandler.
func NewEducationHandler(education *service.EducationService) *EducationHandler {
	return &EducationHandler{education: education}
}

// List returns the portfolio's education entries ordered by position.
func (h *EducationHandler) List(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	portfolioID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	entries, err := h.education.List(c.Request().Context(), uid, portfolioID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entries)
}

type createEducationRequest struct {
	School       string  `json:"school"`
	Degree       string  `json:"degree"`
	FieldOfStudy *string `json:"field_of_study"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date"`
	IsCurrent    bool    `json:"is_current"`
	Description  *string `json:"description"`
}

// Create adds a new education entry.
func (h *EducationHandler) Create(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	portfolioID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var body createEducationRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}

	e, err := h.education.Create(c.Request().Context(), uid, portfolioID, service.CreateEducationInput{
		School:       body.School,
		Degree:       body.Degree,
		FieldOfStudy: body.FieldOfStudy,
		StartDate:    body.StartDate,
		EndDate:      body.EndDate,
		IsCurrent:    body.IsCurrent,
		Description:  body.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, e)
}

type updateEducationRequest struct {
	School       *string `json:"school"`
	Degree       *string `json:"degree"`
	FieldOfStudy *string `json:"field_of_study"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	IsCurrent    *bool   `json:"is_current"`
	Description  *string `json:"description"`
}

// Update applies a partial update to an education entry.
func (h *EducationHandler) Update(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	portfolioID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	educationID, err := pathUUID(c, "educationId")
	if err != nil {
		return err
	}

	var body updateEducationRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}

	e, err := h.education.Update(c.Request().Context(), uid, portfolioID, educationID, service.UpdateEducationInput{
		School:       body.School,
		Degree:       body.Degree,
		FieldOfStudy: body.FieldOfStudy,
		StartDate:    body.StartDate,
		EndDate:      body.EndDate,
		IsCurrent:    body.IsCurrent,
		Description:  body.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, e)
}

// Delete removes an education entry.
func (h *EducationHandler) Delete(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	portfolioID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	educationID, err := pathUUID(c, "educationId")
	if err != nil {
		return err
	}

	if err := h.education.Delete(c.Request().Context(), uid, portfolioID, educationID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
