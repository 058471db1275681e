package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
	"github.com/DenisMukonin/Project-Portfolio/internal/service"
)

// ProjectHandler handles project endpoints nested under a portfolio.
type ProjectHandler struct {
	projects *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// List returns the portfolio's projects ordered by position.
func (h *ProjectHandler) List(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	portfolioID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	projects, err := h.projects.List(c.Request().Context(), uid, portfolioID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, projects)
}

type createProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	Language    *string `json:"language"`
}

// Create adds a manually curated project.
func (h *ProjectHandler) Create(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	portfolioID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var body createProjectRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}

	p, err := h.projects.Create(c.Request().Context(), uid, portfolioID, service.CreateProjectInput{
		Name:        body.Name,
		Description: body.Description,
		URL:         body.URL,
		Language:    body.Language,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, p)
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	Language    *string `json:"language"`
	IsVisible   *bool   `json:"is_visible"`
}

// Update applies a partial update to a project.
func (h *ProjectHandler) Update(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	portfolioID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	projectID, err := pathUUID(c, "projectId")
	if err != nil {
		return err
	}

	var body updateProjectRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}

	p, err := h.projects.Update(c.Request().Context(), uid, portfolioID, projectID, service.UpdateProjectInput{
		Name:        body.Name,
		Description: body.Description,
		URL:         body.URL,
		Language:    body.Language,
		IsVisible:   body.IsVisible,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, p)
}

// Delete removes a project.
func (h *ProjectHandler) Delete(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	portfolioID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	projectID, err := pathUUID(c, "projectId")
	if err != nil {
		return err
	}

	if err := h.projects.Delete(c.Request().Context(), uid, portfolioID, projectID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
