package handler

import (
	"context"
	"net/http"
	"strconv"

	"forecast-locator-api/internal/models"

	"github.com/gin-gonic/gin"
)

// PointsHandler handles forecast grid discovery for raw coordinates
type PointsHandler struct {
	service PointsService
}

// PointsService interface for dependency injection
type PointsService interface {
	PointsMetadata(context.Context, float64, float64) (*models.GridMetadata, error)
}

// NewPointsHandler creates a new points handler
func NewPointsHandler(svc PointsService) *PointsHandler {
	return &PointsHandler{service: svc}
}

// Points godoc
// @Summary Discover the forecast grid for coordinates
// @Tags points
// @Produce json
// @Param lat query number true "Latitude in decimal degrees" example(40.7484)
// @Param lon query number true "Longitude in decimal degrees" example(-73.9967)
// @Success 200 {object} models.GridMetadata
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /points [get]
func (h *PointsHandler) Points(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lon'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	grid, err := h.service.PointsMetadata(c.Request.Context(), lat, lon)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, grid)
}
