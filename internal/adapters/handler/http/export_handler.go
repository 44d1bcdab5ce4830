package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RishabJha134/habitforge-engine/internal/adapters/handler/http/middleware"
	"github.com/RishabJha134/habitforge-engine/internal/core/domain"
	"github.com/RishabJha134/habitforge-engine/internal/core/services"
)

type ExportHandler struct {
	svc *services.ExportService
}

func NewExportHandler(svc *services.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

func (h *ExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/export", h.Export)
}

// Export returns the caller's profile (password redacted) and habit list as a
// downloadable JSON document.
func (h *ExportHandler) Export(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	data, err := h.svc.Export(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="habitforge-export.json"`)
	c.JSON(http.StatusOK, data)
}
