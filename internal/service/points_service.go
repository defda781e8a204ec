package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"forecast-locator-api/internal/models"
)

// ErrInvalidCoordinates is returned for latitude/longitude outside the valid range
var ErrInvalidCoordinates = errors.New("service: invalid coordinates")

// PointsService looks up forecast grid metadata for arbitrary coordinates
type PointsService struct {
	resolver PointsResolver
}

// PointsResolver interface for dependency injection
type PointsResolver interface {
	PointsMetadata(ctx context.Context, coords models.Coordinates) (models.GridMetadata, error)
}

// NewPointsService creates a new points service
func NewPointsService(resolver PointsResolver) *PointsService {
	return &PointsService{resolver: resolver}
}

// PointsMetadata discovers the forecast grid covering lat/lon
func (s *PointsService) PointsMetadata(ctx context.Context, lat, lon float64) (*models.GridMetadata, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("%w: latitude %f", ErrInvalidCoordinates, lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: longitude %f", ErrInvalidCoordinates, lon)
	}

	grid, err := s.resolver.PointsMetadata(ctx, models.Coordinates{Latitude: lat, Longitude: lon})
	if err != nil {
		return nil, fmt.Errorf("service: failed to get points metadata: %w", err)
	}

	return &grid, nil
}
