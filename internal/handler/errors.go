package handler

import (
	"errors"
	"net/http"

	"forecast-locator-api/internal/resolver"
	"forecast-locator-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondError maps service and resolver failures onto HTTP statuses.
// Messages for 5xx responses never include internal error text.
func respondError(c *gin.Context, err error) {
	var (
		notFound  *resolver.NotFoundError
		transport *resolver.TransportError
		invalid   *resolver.InvalidDataError
	)

	switch {
	case errors.Is(err, service.ErrInvalidZipCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "ZIP code must be 5 digits"})
	case errors.Is(err, service.ErrInvalidOffice):
		c.JSON(http.StatusBadRequest, gin.H{"error": "office must be a 3-letter NWS identifier"})
	case errors.Is(err, service.ErrInvalidCoordinates):
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude must be within [-90, 90] and longitude within [-180, 180]"})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no places found for ZIP code"})
	case errors.As(err, &transport) && transport.StatusCode == http.StatusNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "location not known to upstream service"})
	case errors.As(err, &transport):
		logFailure(c, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream service unavailable"})
	case errors.As(err, &invalid):
		logFailure(c, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream service returned invalid data"})
	case errors.Is(err, service.ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage is not configured"})
	default:
		logFailure(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func logFailure(c *gin.Context, err error) {
	zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
}
