package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lossdev/internal/services"
	"lossdev/internal/triangle"
)

// mockRunner is a TriangleRunner test double
type mockRunner struct {
	lastRequest services.RunRequest
	result      *services.RunResult
	err         error
}

func (m *mockRunner) Run(ctx context.Context, req services.RunRequest) (*services.RunResult, error) {
	m.lastRequest = req
	return m.result, m.err
}

func newTestRouter(runner TriangleRunner) http.Handler {
	r := chi.NewRouter()
	handler := NewTriangleHandler(runner, slog.Default())
	r.Route("/api", handler.RegisterRoutes)
	return r
}

// TestDevelopEndpoint tests the develop endpoint happy path
func TestDevelopEndpoint(t *testing.T) {
	runner := &mockRunner{
		result: &services.RunResult{
			RunID: "test-run",
			Adjusted: &triangle.Result{
				Ultimates: map[int]float64{1: 480},
			},
		},
	}
	router := newTestRouter(runner)

	body, err := json.Marshal(DevelopRequest{
		Observations: []ObservationPayload{
			{Origin: 1, Development: 1, Amount: 100},
			{Origin: 1, Development: 2, Amount: 50},
		},
		Compare: true,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/triangle/develop", bytes.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test-run")

	require.Len(t, runner.lastRequest.Observations, 2)
	assert.True(t, runner.lastRequest.Compare)
	assert.Equal(t, triangle.Observation{Origin: 1, Development: 2, Amount: 50}, runner.lastRequest.Observations[1])
}

// TestDevelopEndpointValidation tests request validation failures
func TestDevelopEndpointValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{nope"},
		{"no observations", `{"observations": []}`},
		{"zero origin", `{"observations": [{"origin": 0, "development": 1, "amount": 10}]}`},
		{"negative amount", `{"observations": [{"origin": 1, "development": 1, "amount": -10}]}`},
	}

	router := newTestRouter(&mockRunner{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/triangle/develop", bytes.NewReader([]byte(tt.body))))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

// TestDevelopEndpointPipelineErrors tests domain error mapping through the
// endpoint.
func TestDevelopEndpointPipelineErrors(t *testing.T) {
	runner := &mockRunner{
		err: fmt.Errorf("estimate relativities: %w", &triangle.InsufficientDataError{Reason: "no complete cycle"}),
	}
	router := newTestRouter(runner)

	body := `{"observations": [{"origin": 1, "development": 1, "amount": 10}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/triangle/develop", bytes.NewReader([]byte(body))))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "INSUFFICIENT_DATA")
}

// TestSyntheticEndpoint tests the synthetic endpoint
func TestSyntheticEndpoint(t *testing.T) {
	t.Run("default origins", func(t *testing.T) {
		runner := &mockRunner{result: &services.RunResult{RunID: "synthetic-run"}}
		router := newTestRouter(runner)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/triangle/synthetic", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 8, runner.lastRequest.SyntheticOrigins)
		assert.True(t, runner.lastRequest.Compare)
	})

	t.Run("custom origins", func(t *testing.T) {
		runner := &mockRunner{result: &services.RunResult{RunID: "synthetic-run"}}
		router := newTestRouter(runner)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/triangle/synthetic?origins=12", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 12, runner.lastRequest.SyntheticOrigins)
	})

	t.Run("invalid origins", func(t *testing.T) {
		router := newTestRouter(&mockRunner{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/triangle/synthetic?origins=zero", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// TestHealthEndpoint tests the health endpoint
func TestHealthEndpoint(t *testing.T) {
	r := chi.NewRouter()
	NewHealthHandler("1.0.0").RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
	assert.Contains(t, rec.Body.String(), "1.0.0")
}
