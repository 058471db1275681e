package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
	"github.com/DenisMukonin/Project-Portfolio/internal/service"
)

// ReorderHandler handles the reorder endpoints of all ordered collections.
type ReorderHandler struct {
	reorder *service.ReorderService
}

// NewReorderHandler creates a new ReorderHandler.
func NewReorderHandler(reorder *service.ReorderService) *ReorderHandler {
	return &ReorderHandler{reorder: reorder}
}

type reorderEntry struct {
	ID         string `json:"id"`
	OrderIndex int    `json:"orderIndex"`
}

type reorderRequest struct {
	Orders []reorderEntry `json:"orders"`
}

type reorderResponse struct {
	Updated int `json:"updated"`
}

// Projects reorders the portfolio's projects.
func (h *ReorderHandler) Projects(c echo.Context) error {
	return h.handle(c, service.KindProjects)
}

// Experiences reorders the portfolio's experiences.
func (h *ReorderHandler) Experiences(c echo.Context) error {
	return h.handle(c, service.KindExperiences)
}

// Education reorders the portfolio's education entries.
func (h *ReorderHandler) Education(c echo.Context) error {
	return h.handle(c, service.KindEducation)
}

func (h *ReorderHandler) handle(c echo.Context, kind service.CollectionKind) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	portfolioID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var body reorderRequest
	if err := c.Bind(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}

	updates := make([]domain.OrderUpdate, 0, len(body.Orders))
	for _, entry := range body.Orders {
		id, err := uuid.Parse(entry.ID)
		if err != nil {
			return &domain.ValidationError{Field: "orders", Message: fmt.Sprintf("%q is not a valid UUID", entry.ID)}
		}
		updates = append(updates, domain.OrderUpdate{ID: id, OrderIndex: entry.OrderIndex})
	}

	updated, err := h.reorder.Reorder(c.Request().Context(), uid, portfolioID, kind, updates)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reorderResponse{Updated: updated})
}
