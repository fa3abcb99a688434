package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                  { return s.name }
func (s stubChecker) Check(_ context.Context) error { return s.err }

func TestStatus(t *testing.T) {
	h := NewHealthHandler("0.1.0")

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"gateway","version":"0.1.0"}`, rec.Body.String())
}

func TestLiveness(t *testing.T) {
	h := NewHealthHandler("0.1.0", stubChecker{name: "extract", err: errors.New("down")})

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	// Liveness ignores dependency health.
	require.Equal(t, http.StatusOK, rec.Code)
	var resp LivenessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alive", resp.Status)
	assert.Equal(t, "0.1.0", resp.Version)
}

func TestReadinessNoCheckers(t *testing.T) {
	h := NewHealthHandler("0.1.0")

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
}

func TestReadinessAllHealthy(t *testing.T) {
	h := NewHealthHandler("0.1.0",
		stubChecker{name: "extract"},
		stubChecker{name: "spectro"},
		stubChecker{name: "retro"},
	)

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Len(t, resp.Components, 3)
	for name, c := range resp.Components {
		assert.Equal(t, "healthy", c.Status, "component %s", name)
	}
}

func TestReadinessOneUnhealthy(t *testing.T) {
	h := NewHealthHandler("0.1.0",
		stubChecker{name: "extract"},
		stubChecker{name: "spectro", err: errors.New("connection refused")},
	)

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "unhealthy", resp.Components["spectro"].Status)
	assert.Equal(t, "connection refused", resp.Components["spectro"].Error)
	assert.Equal(t, "healthy", resp.Components["extract"].Status)
}
