package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"forecast-locator-api/internal/models"

	"github.com/rs/zerolog"
)

var (
	// ErrInvalidZipCode is returned for input that is not a 5-digit U.S. ZIP code.
	ErrInvalidZipCode = errors.New("service: ZIP code must be 5 digits")
	// ErrInvalidOffice is returned for input that is not a 3-letter NWS office identifier.
	ErrInvalidOffice = errors.New("service: office must be a 3-letter NWS identifier")
	// ErrStorageDisabled is returned by lookups that need the database when none is configured.
	ErrStorageDisabled = errors.New("service: storage is not configured")
)

var (
	zipCodePattern = regexp.MustCompile(`^[0-9]{5}$`)
	officePattern  = regexp.MustCompile(`^[A-Z]{3}$`)
)

// ZipPointService contains the business logic for resolving ZIP codes to forecast grids
type ZipPointService struct {
	resolver ZipResolver
	repo     ZipPointRepository
}

// ZipResolver is the subset of the location resolver used by ZipPointService
type ZipResolver interface {
	ZipToCoordinates(ctx context.Context, zipCode string) (models.Coordinates, error)
	ResolveZip(ctx context.Context, zipCode string) (models.ZipPoint, error)
}

// ZipPointRepository interface for dependency injection
type ZipPointRepository interface {
	UpsertZipPoint(ctx context.Context, point models.ZipPoint) error
	ListZipPointsByOffice(ctx context.Context, office string) ([]models.ZipPoint, error)
}

// NewZipPointService creates a new ZIP point service. repo may be nil, in
// which case resolutions are not recorded.
func NewZipPointService(resolver ZipResolver, repo ZipPointRepository) *ZipPointService {
	return &ZipPointService{resolver: resolver, repo: repo}
}

func normalizeZip(zipCode string) (string, error) {
	zipCode = strings.TrimSpace(zipCode)
	if !zipCodePattern.MatchString(zipCode) {
		return "", fmt.Errorf("%w: %q", ErrInvalidZipCode, zipCode)
	}
	return zipCode, nil
}

// Coordinates geocodes a ZIP code
func (s *ZipPointService) Coordinates(ctx context.Context, zipCode string) (*models.Coordinates, error) {
	zipCode, err := normalizeZip(zipCode)
	if err != nil {
		return nil, err
	}

	coords, err := s.resolver.ZipToCoordinates(ctx, zipCode)
	if err != nil {
		return nil, fmt.Errorf("service: failed to geocode ZIP %s: %w", zipCode, err)
	}

	return &coords, nil
}

// ResolveZip resolves a ZIP code to its forecast grid and records the result.
// A failure to record is logged and does not fail the lookup.
func (s *ZipPointService) ResolveZip(ctx context.Context, zipCode string) (*models.ZipPoint, error) {
	zipCode, err := normalizeZip(zipCode)
	if err != nil {
		return nil, err
	}

	point, err := s.resolver.ResolveZip(ctx, zipCode)
	if err != nil {
		return nil, fmt.Errorf("service: failed to resolve ZIP %s: %w", zipCode, err)
	}

	if s.repo != nil {
		if err := s.repo.UpsertZipPoint(ctx, point); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("zip_code", zipCode).Msg("failed to record resolved ZIP")
		}
	}

	return &point, nil
}

// ListByOffice returns the recorded ZIP codes covered by a forecast office
func (s *ZipPointService) ListByOffice(ctx context.Context, office string) ([]models.ZipPoint, error) {
	office = strings.ToUpper(strings.TrimSpace(office))
	if !officePattern.MatchString(office) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOffice, office)
	}

	if s.repo == nil {
		return nil, ErrStorageDisabled
	}

	points, err := s.repo.ListZipPointsByOffice(ctx, office)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list ZIP points: %w", err)
	}

	return points, nil
}
