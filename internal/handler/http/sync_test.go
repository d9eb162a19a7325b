package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-spend-keeper/internal/service"
	"github.com/MKhiriev/go-spend-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	h := newTestHandler(&service.Services{})

	rr := httptest.NewRecorder()
	h.health(rr, injectNopLogger(httptest.NewRequest(http.MethodGet, "/api/health", nil)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestHydrate_Success(t *testing.T) {
	var gotSC models.SyncContext
	hydration := &stubHydrationService{
		hydrateFn: func(_ context.Context, sc models.SyncContext) error {
			gotSC = sc
			return nil
		},
	}
	h := newTestHandler(&service.Services{HydrationService: hydration})

	rr := httptest.NewRecorder()
	h.hydrate(rr, newAuthedRequest(http.MethodPost, "/api/sync/hydrate", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "user-1", gotSC.UserID)
	assert.JSONEq(t, `{"status":"hydrated"}`, rr.Body.String())
}

func TestHydrate_Failure(t *testing.T) {
	hydration := &stubHydrationService{
		hydrateFn: func(_ context.Context, _ models.SyncContext) error {
			return errors.New("sheet service unavailable")
		},
	}
	h := newTestHandler(&service.Services{HydrationService: hydration})

	rr := httptest.NewRecorder()
	h.hydrate(rr, newAuthedRequest(http.MethodPost, "/api/sync/hydrate", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHydrate_NoSyncContext(t *testing.T) {
	h := newTestHandler(&service.Services{HydrationService: &stubHydrationService{}})

	rr := httptest.NewRecorder()
	h.hydrate(rr, injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/sync/hydrate", nil)))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSeed_Success(t *testing.T) {
	seeder := &stubSeedService{
		seedFn: func(_ context.Context, sc models.SyncContext) (int, error) {
			assert.Equal(t, "user-1", sc.UserID)
			return 33, nil
		},
	}
	h := newTestHandler(&service.Services{SeedService: seeder})

	rr := httptest.NewRecorder()
	h.seed(rr, newAuthedRequest(http.MethodPost, "/api/seed", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 33, resp["seeded"])
}

func TestSeed_Failure(t *testing.T) {
	seeder := &stubSeedService{
		seedFn: func(_ context.Context, _ models.SyncContext) (int, error) {
			return 0, errors.New("sheet service unavailable")
		},
	}
	h := newTestHandler(&service.Services{SeedService: seeder})

	rr := httptest.NewRecorder()
	h.seed(rr, newAuthedRequest(http.MethodPost, "/api/seed", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
