package handler

import (
	"context"
	"net/http"

	"forecast-locator-api/internal/models"

	"github.com/gin-gonic/gin"
)

// ZipPointHandler handles ZIP code resolution requests
type ZipPointHandler struct {
	service ZipPointService
}

// ZipPointService interface for dependency injection
type ZipPointService interface {
	Coordinates(context.Context, string) (*models.Coordinates, error)
	ResolveZip(context.Context, string) (*models.ZipPoint, error)
	ListByOffice(context.Context, string) ([]models.ZipPoint, error)
}

// NewZipPointHandler creates a new ZIP point handler
func NewZipPointHandler(svc ZipPointService) *ZipPointHandler {
	return &ZipPointHandler{service: svc}
}

// Coordinates godoc
// @Summary Geocode a ZIP code
// @Description Resolve a 5-digit U.S. ZIP code to latitude and longitude
// @Tags zip
// @Produce json
// @Param zip path string true "5-digit ZIP code" example(10001)
// @Success 200 {object} models.Coordinates
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /zip/{zip}/coordinates [get]
func (h *ZipPointHandler) Coordinates(c *gin.Context) {
	coords, err := h.service.Coordinates(c.Request.Context(), c.Param("zip"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, coords)
}

// Points godoc
// @Summary Resolve a ZIP code to its forecast grid
// @Description Geocode a ZIP code and discover the NWS office, grid cell and forecast endpoints covering it
// @Tags zip
// @Produce json
// @Param zip path string true "5-digit ZIP code" example(10001)
// @Success 200 {object} models.ZipPoint
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /zip/{zip}/points [get]
func (h *ZipPointHandler) Points(c *gin.Context) {
	point, err := h.service.ResolveZip(c.Request.Context(), c.Param("zip"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, point)
}

// ListByOffice godoc
// @Summary List recorded ZIP codes of a forecast office
// @Tags offices
// @Produce json
// @Param office path string true "NWS office identifier" example(OKX)
// @Success 200 {array} models.ZipPoint
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /offices/{office}/zips [get]
func (h *ZipPointHandler) ListByOffice(c *gin.Context) {
	points, err := h.service.ListByOffice(c.Request.Context(), c.Param("office"))
	if err != nil {
		respondError(c, err)
		return
	}

	if points == nil {
		points = []models.ZipPoint{}
	}

	c.JSON(http.StatusOK, points)
}
