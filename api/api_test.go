package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/14dstcyr/buzzline-04-stcyr/internal/chart"
	"github.com/14dstcyr/buzzline-04-stcyr/internal/model"
)

// MockTrendService implements TrendService interface for testing
type MockTrendService struct {
	mock.Mock
}

func (m *MockTrendService) GetWindow(ctx context.Context, limit int64) (model.WindowSnapshot, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).(model.WindowSnapshot), args.Error(1)
}

// Test helper functions

func createTestSnapshot(count int) model.WindowSnapshot {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	snapshot := model.WindowSnapshot{
		Timestamps: make([]time.Time, count),
		Sentiments: make([]float64, count),
	}
	for i := 0; i < count; i++ {
		snapshot.Timestamps[i] = base.Add(time.Duration(i) * 5 * time.Second)
		snapshot.Sentiments[i] = float64(i%3) / 10.0
	}
	return snapshot
}

func setupTestRouter(service TrendService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAPIHandler(service, chart.NewHubWithConfig(nil, chart.HubConfig{SendBuffer: 1}), nil, nil)
	return handler.SetupRoutes()
}

func performRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// Tests

func TestGetWindow(t *testing.T) {
	mockService := new(MockTrendService)
	mockService.On("GetWindow", mock.Anything, int64(0)).Return(createTestSnapshot(5), nil)

	rec := performRequest(setupTestRouter(mockService), "GET", "/api/v1/window")

	assert.Equal(t, http.StatusOK, rec.Code)

	var snapshot model.WindowSnapshot
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Len(t, snapshot.Sentiments, 5)
	assert.Len(t, snapshot.Timestamps, 5)
	mockService.AssertExpectations(t)
}

func TestGetWindowWithLimit(t *testing.T) {
	mockService := new(MockTrendService)
	mockService.On("GetWindow", mock.Anything, int64(3)).Return(createTestSnapshot(3), nil)

	rec := performRequest(setupTestRouter(mockService), "GET", "/api/v1/window?limit=3")

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestGetWindowInvalidLimit(t *testing.T) {
	mockService := new(MockTrendService)
	router := setupTestRouter(mockService)

	tests := []struct {
		name string
		path string
	}{
		{name: "non-numeric", path: "/api/v1/window?limit=abc"},
		{name: "negative", path: "/api/v1/window?limit=-1"},
		{name: "too large", path: "/api/v1/window?limit=5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := performRequest(router, "GET", tt.path)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	mockService.AssertNotCalled(t, "GetWindow")
}

func TestGetWindowServiceError(t *testing.T) {
	mockService := new(MockTrendService)
	mockService.On("GetWindow", mock.Anything, int64(0)).
		Return(model.WindowSnapshot{}, errors.New("window unavailable"))

	rec := performRequest(setupTestRouter(mockService), "GET", "/api/v1/window")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["error"])
	assert.NotEmpty(t, body["request_id"])
}

func TestHealthCheck(t *testing.T) {
	rec := performRequest(setupTestRouter(new(MockTrendService)), "GET", "/health")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, ServiceName, body["service"])
}

func TestChartPage(t *testing.T) {
	rec := performRequest(setupTestRouter(new(MockTrendService)), "GET", "/chart")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Streaming Sentiment Trend")
}

func TestRequestIDHeader(t *testing.T) {
	mockService := new(MockTrendService)
	router := setupTestRouter(mockService)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(RequestIDHeaderKey, "fixed-id")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "fixed-id", rec.Header().Get(RequestIDHeaderKey))

	// Absent header gets a generated ID
	rec = performRequest(router, "GET", "/health")
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeaderKey))
}

func TestCORSHeaders(t *testing.T) {
	router := setupTestRouter(new(MockTrendService))

	rec := performRequest(router, "OPTIONS", "/api/v1/window")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), RequestIDHeaderKey)
}

func TestSetupRoutesPreservesGinMode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewAPIHandler(new(MockTrendService), chart.NewHubWithConfig(nil, chart.HubConfig{SendBuffer: 1}), nil, nil)
	_ = handler.SetupRoutes()

	assert.Equal(t, gin.TestMode, gin.Mode())
}

func TestValidateWindowRequest(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "empty means all", input: "", want: 0},
		{name: "valid limit", input: "25", want: 25},
		{name: "whitespace trimmed", input: "  10  ", want: 10},
		{name: "zero allowed", input: "0", want: 0},
		{name: "max allowed", input: "1000", want: 1000},
		{name: "non-numeric", input: "abc", wantErr: true},
		{name: "negative", input: "-3", wantErr: true},
		{name: "above max", input: "1001", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidateWindowRequest(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
