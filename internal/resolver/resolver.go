package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"forecast-locator-api/internal/models"

	"github.com/rs/zerolog"
)

// API Docs:
// - https://www.weather.gov/documentation/services-web-api
// - https://api.zippopotam.us/
// Sample requests:
// - https://api.zippopotam.us/us/10001
// - https://api.weather.gov/points/40.7484,-73.9967
const (
	DefaultZipBaseURL    = "https://api.zippopotam.us"
	DefaultPointsBaseURL = "https://api.weather.gov"
	DefaultTimeout       = 15 * time.Second

	// EnvUserAgent names the environment variable consulted when no
	// User-Agent is configured explicitly.
	EnvUserAgent = "WINDOW_WEATHER_USER_AGENT"
	// DefaultUserAgent is used when neither Config nor the environment supply one.
	// NWS asks callers to identify themselves with contact information.
	DefaultUserAgent = "WindowWeather/1.0 (contact: you@example.com)"

	acceptHeader = "application/geo+json, application/json"

	// maxErrorBody caps how much of a non-2xx body ends up in a TransportError.
	maxErrorBody = 4 << 10
)

// Config fixes the transport settings of a Resolver. Zero values select defaults.
type Config struct {
	UserAgent     string
	Timeout       time.Duration
	ZipBaseURL    string
	PointsBaseURL string
}

// Resolver turns a U.S. ZIP code into coordinates and then into NWS forecast
// grid metadata. Its fields are not modified after New, so one Resolver may
// be shared between goroutines.
type Resolver struct {
	httpClient    *http.Client
	userAgent     string
	zipBaseURL    string
	pointsBaseURL string
}

// New creates a Resolver. The User-Agent is taken from cfg.UserAgent, then
// from $WINDOW_WEATHER_USER_AGENT, then DefaultUserAgent.
func New(cfg Config) *Resolver {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Resolver{
		httpClient:    &http.Client{Timeout: timeout},
		userAgent:     resolveUserAgent(cfg.UserAgent),
		zipBaseURL:    baseURLOrDefault(cfg.ZipBaseURL, DefaultZipBaseURL),
		pointsBaseURL: baseURLOrDefault(cfg.PointsBaseURL, DefaultPointsBaseURL),
	}
}

func resolveUserAgent(explicit string) string {
	if ua := strings.TrimSpace(explicit); ua != "" {
		return ua
	}
	if ua := strings.TrimSpace(os.Getenv(EnvUserAgent)); ua != "" {
		return ua
	}
	return DefaultUserAgent
}

func baseURLOrDefault(base, fallback string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return fallback
	}
	return base
}

// UserAgent returns the identification string sent with every request.
func (r *Resolver) UserAgent() string {
	return r.userAgent
}

type zipResponse struct {
	Places []map[string]json.RawMessage `json:"places"`
}

type pointsResponse struct {
	Properties map[string]json.RawMessage `json:"properties"`
}

// ZipToCoordinates looks the ZIP code up with the geocoding service and
// returns the coordinates of the first place it lists.
func (r *Resolver) ZipToCoordinates(ctx context.Context, zipCode string) (models.Coordinates, error) {
	endpoint := fmt.Sprintf("%s/us/%s", r.zipBaseURL, url.PathEscape(zipCode))

	var resp zipResponse
	if err := r.getJSON(ctx, endpoint, &resp); err != nil {
		return models.Coordinates{}, err
	}

	if len(resp.Places) == 0 {
		return models.Coordinates{}, &NotFoundError{ZipCode: zipCode}
	}

	place := resp.Places[0]
	lat, latErr := coerceFloat(place["latitude"])
	lon, lonErr := coerceFloat(place["longitude"])
	if latErr != nil || lonErr != nil {
		invalid := &InvalidDataError{Reason: fmt.Sprintf("invalid coordinate data for ZIP %s", zipCode)}
		var errs []error
		if latErr != nil {
			invalid.Fields = append(invalid.Fields, "latitude")
			errs = append(errs, fmt.Errorf("latitude: %w", latErr))
		}
		if lonErr != nil {
			invalid.Fields = append(invalid.Fields, "longitude")
			errs = append(errs, fmt.Errorf("longitude: %w", lonErr))
		}
		invalid.Err = errors.Join(errs...)
		return models.Coordinates{}, invalid
	}

	return models.Coordinates{Latitude: lat, Longitude: lon}, nil
}

// PointsMetadata queries the NWS /points endpoint for the grid covering coords.
// Coordinates are sent with exactly four decimal places.
func (r *Resolver) PointsMetadata(ctx context.Context, coords models.Coordinates) (models.GridMetadata, error) {
	endpoint := r.pointsURL(coords)

	var resp pointsResponse
	if err := r.getJSON(ctx, endpoint, &resp); err != nil {
		return models.GridMetadata{}, err
	}

	return decodeGridMetadata(resp.Properties)
}

func (r *Resolver) pointsURL(coords models.Coordinates) string {
	return fmt.Sprintf("%s/points/%.4f,%.4f", r.pointsBaseURL, coords.Latitude, coords.Longitude)
}

// ResolveZipToPoints chains ZipToCoordinates and PointsMetadata.
// Errors from either step are returned as is.
func (r *Resolver) ResolveZipToPoints(ctx context.Context, zipCode string) (models.GridMetadata, error) {
	coords, err := r.ZipToCoordinates(ctx, zipCode)
	if err != nil {
		return models.GridMetadata{}, err
	}
	return r.PointsMetadata(ctx, coords)
}

// ResolveZip runs the same pipeline as ResolveZipToPoints and keeps the
// intermediate coordinates alongside the grid.
func (r *Resolver) ResolveZip(ctx context.Context, zipCode string) (models.ZipPoint, error) {
	coords, err := r.ZipToCoordinates(ctx, zipCode)
	if err != nil {
		return models.ZipPoint{}, err
	}

	grid, err := r.PointsMetadata(ctx, coords)
	if err != nil {
		return models.ZipPoint{}, err
	}

	return models.ZipPoint{
		ZipCode:     zipCode,
		Coordinates: coords,
		Grid:        grid,
		ResolvedAt:  time.Now().UTC(),
	}, nil
}

// getJSON issues a GET and decodes a 2xx JSON body into out.
func (r *Resolver) getJSON(ctx context.Context, endpoint string, out any) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		event := zerolog.Ctx(ctx).Debug()
		if err != nil {
			event = event.Err(err)
		}
		event.
			Str("url", endpoint).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("upstream request")
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &TransportError{URL: endpoint, Err: err}
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &TransportError{URL: endpoint, Err: err}
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	status = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &TransportError{
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if isTransportFailure(ctx, err) {
			return &TransportError{URL: endpoint, Err: err}
		}
		return &InvalidDataError{Reason: "malformed response body", Err: err}
	}

	return nil
}

// isTransportFailure separates a body read that was cut off by a timeout or
// cancellation from a body that is simply not valid JSON.
func isTransportFailure(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
