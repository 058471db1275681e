package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DenisMukonin/Project-Portfolio/internal/service"
)

// SyncHandler handles the GitHub repository sync endpoint.
type SyncHandler struct {
	sync *service.SyncService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(sync *service.SyncService) *SyncHandler {
	return &SyncHandler{sync: sync}
}

// Sync reconciles the caller's GitHub repositories into the portfolio.
func (h *SyncHandler) Sync(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	portfolioID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.sync.Sync(c.Request().Context(), uid, portfolioID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
