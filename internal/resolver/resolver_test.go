package resolver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"forecast-locator-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointsBody = `{
	"properties": {
		"gridId": "OKX",
		"gridX": 33,
		"gridY": 37,
		"forecast": "https://api.weather.gov/gridpoints/OKX/33,37/forecast",
		"forecastHourly": "https://api.weather.gov/gridpoints/OKX/33,37/forecast/hourly",
		"forecastGridData": "https://api.weather.gov/gridpoints/OKX/33,37"
	}
}`

var okxGrid = models.GridMetadata{
	Office:           "OKX",
	GridX:            33,
	GridY:            37,
	Forecast:         "https://api.weather.gov/gridpoints/OKX/33,37/forecast",
	ForecastHourly:   "https://api.weather.gov/gridpoints/OKX/33,37/forecast/hourly",
	ForecastGridData: "https://api.weather.gov/gridpoints/OKX/33,37",
}

type cannedResponse struct {
	status int
	body   string
}

// fakeUpstream serves canned responses keyed by request path and records
// what it received.
type fakeUpstream struct {
	mu        sync.Mutex
	responses map[string]cannedResponse
	paths     []string
	headers   []http.Header
}

func newFakeUpstream(t *testing.T, responses map[string]cannedResponse) (*fakeUpstream, *httptest.Server) {
	t.Helper()
	f := &fakeUpstream{responses: responses}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.paths = append(f.paths, r.URL.Path)
		f.headers = append(f.headers, r.Header.Clone())
		resp, ok := f.responses[r.URL.Path]
		f.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = w.Write([]byte(resp.body))
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeUpstream) requestedPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

func (f *fakeUpstream) lastHeader() http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.headers) == 0 {
		return nil
	}
	return f.headers[len(f.headers)-1]
}

func newTestResolver(srv *httptest.Server) *Resolver {
	return New(Config{
		UserAgent:     "ForecastLocatorTest/1.0 (test@example.com)",
		Timeout:       2 * time.Second,
		ZipBaseURL:    srv.URL,
		PointsBaseURL: srv.URL,
	})
}

func TestResolver_ZipToCoordinates(t *testing.T) {
	tests := []struct {
		name        string
		response    cannedResponse
		expected    models.Coordinates
		checkErr    func(t *testing.T, err error)
		expectError bool
	}{
		{
			name:     "string coordinates of single place",
			response: cannedResponse{status: http.StatusOK, body: `{"post code":"10001","places":[{"place name":"New York City","latitude":"40.7484","longitude":"-73.9967"}]}`},
			expected: models.Coordinates{Latitude: 40.7484, Longitude: -73.9967},
		},
		{
			name:     "numeric coordinates",
			response: cannedResponse{status: http.StatusOK, body: `{"places":[{"latitude":40.7484,"longitude":-73.9967}]}`},
			expected: models.Coordinates{Latitude: 40.7484, Longitude: -73.9967},
		},
		{
			name:     "first of several places",
			response: cannedResponse{status: http.StatusOK, body: `{"places":[{"latitude":"41.0","longitude":"-74.0"},{"latitude":"42.0","longitude":"-75.0"}]}`},
			expected: models.Coordinates{Latitude: 41.0, Longitude: -74.0},
		},
		{
			name:        "empty places",
			response:    cannedResponse{status: http.StatusOK, body: `{"places":[]}`},
			expectError: true,
			checkErr: func(t *testing.T, err error) {
				var notFound *NotFoundError
				require.ErrorAs(t, err, &notFound)
				assert.Equal(t, "10001", notFound.ZipCode)
			},
		},
		{
			name:        "places absent",
			response:    cannedResponse{status: http.StatusOK, body: `{}`},
			expectError: true,
			checkErr: func(t *testing.T, err error) {
				var notFound *NotFoundError
				assert.ErrorAs(t, err, &notFound)
			},
		},
		{
			name:        "places null",
			response:    cannedResponse{status: http.StatusOK, body: `{"places":null}`},
			expectError: true,
			checkErr: func(t *testing.T, err error) {
				var notFound *NotFoundError
				assert.ErrorAs(t, err, &notFound)
			},
		},
		{
			name:        "latitude missing",
			response:    cannedResponse{status: http.StatusOK, body: `{"places":[{"longitude":"-73.9967"}]}`},
			expectError: true,
			checkErr: func(t *testing.T, err error) {
				var invalid *InvalidDataError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, []string{"latitude"}, invalid.Fields)
				assert.ErrorIs(t, err, ErrFieldMissing)
			},
		},
		{
			name:        "longitude not numeric",
			response:    cannedResponse{status: http.StatusOK, body: `{"places":[{"latitude":"40.7484","longitude":"west"}]}`},
			expectError: true,
			checkErr: func(t *testing.T, err error) {
				var invalid *InvalidDataError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, []string{"longitude"}, invalid.Fields)
				assert.Contains(t, err.Error(), "invalid coordinate data for ZIP 10001")
			},
		},
		{
			name:        "first place null",
			response:    cannedResponse{status: http.StatusOK, body: `{"places":[null]}`},
			expectError: true,
			checkErr: func(t *testing.T, err error) {
				var invalid *InvalidDataError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, []string{"latitude", "longitude"}, invalid.Fields)
			},
		},
		{
			name:        "upstream 404",
			response:    cannedResponse{status: http.StatusNotFound, body: `{}`},
			expectError: true,
			checkErr: func(t *testing.T, err error) {
				var transport *TransportError
				require.ErrorAs(t, err, &transport)
				assert.Equal(t, http.StatusNotFound, transport.StatusCode)
			},
		},
		{
			name:        "malformed body",
			response:    cannedResponse{status: http.StatusOK, body: `<html>oops</html>`},
			expectError: true,
			checkErr: func(t *testing.T, err error) {
				var invalid *InvalidDataError
				assert.ErrorAs(t, err, &invalid)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newFakeUpstream(t, map[string]cannedResponse{"/us/10001": tt.response})
			resolver := newTestResolver(srv)

			coords, err := resolver.ZipToCoordinates(context.Background(), "10001")

			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, models.Coordinates{}, coords)
				if tt.checkErr != nil {
					tt.checkErr(t, err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, coords)
		})
	}
}

func TestResolver_PointsMetadata(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		status      int
		expected    models.GridMetadata
		expectError bool
		checkErr    func(t *testing.T, err error)
	}{
		{
			name:     "complete properties",
			status:   http.StatusOK,
			body:     pointsBody,
			expected: okxGrid,
		},
		{
			name:   "zero grid indexes are valid",
			status: http.StatusOK,
			body: `{"properties":{"gridId":"BOU","gridX":0,"gridY":0,
				"forecast":"https://f","forecastHourly":"https://h","forecastGridData":"https://g"}}`,
			expected: models.GridMetadata{
				Office:           "BOU",
				Forecast:         "https://f",
				ForecastHourly:   "https://h",
				ForecastGridData: "https://g",
			},
		},
		{
			name:        "forecastHourly missing",
			status:      http.StatusOK,
			body:        `{"properties":{"gridId":"OKX","gridX":33,"gridY":37,"forecast":"https://f","forecastGridData":"https://g"}}`,
			expectError: true,
			checkErr: func(t *testing.T, err error) {
				var invalid *InvalidDataError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, []string{"forecastHourly"}, invalid.Fields)
				assert.Contains(t, err.Error(), "incomplete points metadata")
			},
		},
		{
			name:        "gridY null and gridId empty",
			status:      http.StatusOK,
			body:        `{"properties":{"gridId":"","gridX":33,"gridY":null,"forecast":"https://f","forecastHourly":"https://h","forecastGridData":"https://g"}}`,
			expectError: true,
			checkErr: func(t *testing.T, err error) {
				var invalid *InvalidDataError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, []string{"gridId", "gridY"}, invalid.Fields)
				assert.ErrorIs(t, err, ErrFieldEmpty)
				assert.ErrorIs(t, err, ErrFieldMissing)
			},
		},
		{
			name:        "properties absent",
			status:      http.StatusOK,
			body:        `{"type":"Feature"}`,
			expectError: true,
			checkErr: func(t *testing.T, err error) {
				var invalid *InvalidDataError
				require.ErrorAs(t, err, &invalid)
				assert.Len(t, invalid.Fields, 6)
			},
		},
		{
			name:        "upstream 500",
			status:      http.StatusInternalServerError,
			body:        `{"title":"Unexpected Problem"}`,
			expectError: true,
			checkErr: func(t *testing.T, err error) {
				var transport *TransportError
				require.ErrorAs(t, err, &transport)
				assert.Equal(t, http.StatusInternalServerError, transport.StatusCode)
				assert.Contains(t, transport.Body, "Unexpected Problem")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newFakeUpstream(t, map[string]cannedResponse{
				"/points/40.7484,-73.9967": {status: tt.status, body: tt.body},
			})
			resolver := newTestResolver(srv)

			grid, err := resolver.PointsMetadata(context.Background(), models.Coordinates{Latitude: 40.7484, Longitude: -73.9967})

			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, models.GridMetadata{}, grid)
				if tt.checkErr != nil {
					tt.checkErr(t, err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, grid)
		})
	}
}

func TestResolver_PointsMetadata_FormatsFourDecimals(t *testing.T) {
	upstream, srv := newFakeUpstream(t, map[string]cannedResponse{
		"/points/40.7484,-73.9967":  {status: http.StatusOK, body: pointsBody},
		"/points/39.0000,-105.5000": {status: http.StatusOK, body: pointsBody},
	})
	resolver := newTestResolver(srv)

	_, err := resolver.PointsMetadata(context.Background(), models.Coordinates{Latitude: 40.74843219, Longitude: -73.99671234})
	require.NoError(t, err)

	_, err = resolver.PointsMetadata(context.Background(), models.Coordinates{Latitude: 39, Longitude: -105.5})
	require.NoError(t, err)

	assert.Equal(t, []string{"/points/40.7484,-73.9967", "/points/39.0000,-105.5000"}, upstream.requestedPaths())
}

func TestResolver_ResolveZipToPoints(t *testing.T) {
	t.Run("matches manual chaining", func(t *testing.T) {
		_, srv := newFakeUpstream(t, map[string]cannedResponse{
			"/us/10001":                {status: http.StatusOK, body: `{"places":[{"latitude":"40.7484","longitude":"-73.9967"}]}`},
			"/points/40.7484,-73.9967": {status: http.StatusOK, body: pointsBody},
		})
		resolver := newTestResolver(srv)
		ctx := context.Background()

		resolved, err := resolver.ResolveZipToPoints(ctx, "10001")
		require.NoError(t, err)

		coords, err := resolver.ZipToCoordinates(ctx, "10001")
		require.NoError(t, err)
		manual, err := resolver.PointsMetadata(ctx, coords)
		require.NoError(t, err)

		assert.Equal(t, manual, resolved)
		assert.Equal(t, okxGrid, resolved)
	})

	t.Run("geocoding failure stops the pipeline", func(t *testing.T) {
		upstream, srv := newFakeUpstream(t, map[string]cannedResponse{
			"/us/99999": {status: http.StatusOK, body: `{"places":[]}`},
		})
		resolver := newTestResolver(srv)

		_, err := resolver.ResolveZipToPoints(context.Background(), "99999")

		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, []string{"/us/99999"}, upstream.requestedPaths())
	})

	t.Run("discovery failure is returned unchanged", func(t *testing.T) {
		_, srv := newFakeUpstream(t, map[string]cannedResponse{
			"/us/10001":                {status: http.StatusOK, body: `{"places":[{"latitude":"40.7484","longitude":"-73.9967"}]}`},
			"/points/40.7484,-73.9967": {status: http.StatusServiceUnavailable, body: ``},
		})
		resolver := newTestResolver(srv)

		_, err := resolver.ResolveZipToPoints(context.Background(), "10001")

		var transport *TransportError
		require.ErrorAs(t, err, &transport)
		assert.Equal(t, http.StatusServiceUnavailable, transport.StatusCode)
	})
}

func TestResolver_ResolveZip(t *testing.T) {
	_, srv := newFakeUpstream(t, map[string]cannedResponse{
		"/us/10001":                {status: http.StatusOK, body: `{"places":[{"latitude":"40.7484","longitude":"-73.9967"}]}`},
		"/points/40.7484,-73.9967": {status: http.StatusOK, body: pointsBody},
	})
	resolver := newTestResolver(srv)

	point, err := resolver.ResolveZip(context.Background(), "10001")
	require.NoError(t, err)

	assert.Equal(t, "10001", point.ZipCode)
	assert.Equal(t, models.Coordinates{Latitude: 40.7484, Longitude: -73.9967}, point.Coordinates)
	assert.Equal(t, okxGrid, point.Grid)
	assert.False(t, point.ResolvedAt.IsZero())
}

func TestResolver_SendsIdentificationHeaders(t *testing.T) {
	upstream, srv := newFakeUpstream(t, map[string]cannedResponse{
		"/points/40.7484,-73.9967": {status: http.StatusOK, body: pointsBody},
	})
	resolver := newTestResolver(srv)

	_, err := resolver.PointsMetadata(context.Background(), models.Coordinates{Latitude: 40.7484, Longitude: -73.9967})
	require.NoError(t, err)

	header := upstream.lastHeader()
	require.NotNil(t, header)
	assert.Equal(t, "ForecastLocatorTest/1.0 (test@example.com)", header.Get("User-Agent"))
	assert.Equal(t, "application/geo+json, application/json", header.Get("Accept"))
}

func TestNew_UserAgentPrecedence(t *testing.T) {
	t.Run("explicit value wins", func(t *testing.T) {
		t.Setenv(EnvUserAgent, "FromEnv/1.0")
		assert.Equal(t, "Explicit/1.0", New(Config{UserAgent: "Explicit/1.0"}).UserAgent())
	})

	t.Run("environment when not configured", func(t *testing.T) {
		t.Setenv(EnvUserAgent, "FromEnv/1.0")
		assert.Equal(t, "FromEnv/1.0", New(Config{}).UserAgent())
	})

	t.Run("fallback", func(t *testing.T) {
		t.Setenv(EnvUserAgent, "")
		assert.Equal(t, DefaultUserAgent, New(Config{}).UserAgent())
	})
}

func TestResolver_TransportFailures(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		t.Cleanup(srv.Close)

		resolver := New(Config{Timeout: 50 * time.Millisecond, ZipBaseURL: srv.URL, PointsBaseURL: srv.URL})

		_, err := resolver.ZipToCoordinates(context.Background(), "10001")

		var transport *TransportError
		require.ErrorAs(t, err, &transport)
		assert.Zero(t, transport.StatusCode)
	})

	t.Run("cancelled context", func(t *testing.T) {
		_, srv := newFakeUpstream(t, map[string]cannedResponse{})
		resolver := newTestResolver(srv)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := resolver.ZipToCoordinates(ctx, "10001")

		var transport *TransportError
		require.ErrorAs(t, err, &transport)
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		base := srv.URL
		srv.Close()

		resolver := New(Config{ZipBaseURL: base, PointsBaseURL: base})

		_, err := resolver.PointsMetadata(context.Background(), models.Coordinates{Latitude: 1, Longitude: 2})

		var transport *TransportError
		assert.ErrorAs(t, err, &transport)
	})
}
