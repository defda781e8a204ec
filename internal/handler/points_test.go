package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"forecast-locator-api/internal/models"
	"forecast-locator-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPointsService is a mock implementation of the PointsService interface
type MockPointsService struct {
	mock.Mock
}

func (m *MockPointsService) PointsMetadata(ctx context.Context, lat, lon float64) (*models.GridMetadata, error) {
	args := m.Called(ctx, lat, lon)
	return args.Get(0).(*models.GridMetadata), args.Error(1)
}

func TestPointsHandler_Points(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		lat            string
		lon            string
		mockCall       bool
		mockGrid       *models.GridMetadata
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing lat parameter",
			lat:            "",
			lon:            "-73.9967",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"missing required query parameters 'lat' and 'lon'"}`,
		},
		{
			name:           "invalid lat format",
			lat:            "north",
			lon:            "-73.9967",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid latitude format"}`,
		},
		{
			name:           "invalid lon format",
			lat:            "40.7484",
			lon:            "west",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid longitude format"}`,
		},
		{
			name:           "successful discovery",
			lat:            "40.7484",
			lon:            "-73.9967",
			mockCall:       true,
			mockGrid:       &chelseaPoint.Grid,
			expectedStatus: http.StatusOK,
			expectedBody:   mustJSON(t, chelseaPoint.Grid),
		},
		{
			name:           "out of range",
			lat:            "95",
			lon:            "-73.9967",
			mockCall:       true,
			mockError:      fmt.Errorf("%w: latitude 95", service.ErrInvalidCoordinates),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"latitude must be within [-90, 90] and longitude within [-180, 180]"}`,
		},
		{
			name:           "service error",
			lat:            "40.7484",
			lon:            "-73.9967",
			mockCall:       true,
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockSvc := new(MockPointsService)
			handler := NewPointsHandler(mockSvc)

			if tt.mockCall {
				mockSvc.On("PointsMetadata", mock.Anything, mock.AnythingOfType("float64"), mock.AnythingOfType("float64")).
					Return(tt.mockGrid, tt.mockError)
			}

			// Create request
			req := httptest.NewRequest(http.MethodGet, "/points", nil)
			q := req.URL.Query()
			if tt.lat != "" {
				q.Add("lat", tt.lat)
			}
			if tt.lon != "" {
				q.Add("lon", tt.lon)
			}
			req.URL.RawQuery = q.Encode()
			w := httptest.NewRecorder()

			// Create Gin context
			c, _ := gin.CreateTestContext(w)
			c.Request = req

			// Execute
			handler.Points(c)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())

			if tt.mockCall {
				mockSvc.AssertExpectations(t)
			}
		})
	}
}
