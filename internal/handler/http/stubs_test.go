package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-spend-keeper/internal/config"
	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/internal/service"
	"github.com/MKhiriev/go-spend-keeper/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "go-spend-keeper-test"
)

// ---- Service stubs ----

type stubRecordService struct {
	applyFn func(ctx context.Context, sc models.SyncContext, kind models.EntityKind, req models.WriteRequest) (models.CacheRecord, error)
	listFn  func(ctx context.Context, sc models.SyncContext, query models.RecordQuery) (models.RecordsResponse, error)
}

func (s *stubRecordService) Apply(ctx context.Context, sc models.SyncContext, kind models.EntityKind, req models.WriteRequest) (models.CacheRecord, error) {
	return s.applyFn(ctx, sc, kind, req)
}

func (s *stubRecordService) List(ctx context.Context, sc models.SyncContext, query models.RecordQuery) (models.RecordsResponse, error) {
	return s.listFn(ctx, sc, query)
}

type stubHydrationService struct {
	hydrateFn    func(ctx context.Context, sc models.SyncContext) error
	hydrateAllFn func(ctx context.Context) error
}

func (s *stubHydrationService) Hydrate(ctx context.Context, sc models.SyncContext) error {
	return s.hydrateFn(ctx, sc)
}

func (s *stubHydrationService) HydrateAll(ctx context.Context) error {
	return s.hydrateAllFn(ctx)
}

type stubSeedService struct {
	seedFn func(ctx context.Context, sc models.SyncContext) (int, error)
}

func (s *stubSeedService) Seed(ctx context.Context, sc models.SyncContext) (int, error) {
	return s.seedFn(ctx, sc)
}

type stubUserService struct {
	ensureFn func(ctx context.Context, userID string) (models.User, error)
}

func (s *stubUserService) EnsureUser(ctx context.Context, userID string) (models.User, error) {
	return s.ensureFn(ctx, userID)
}

// ---- Helpers ----

func newTestHandler(services *service.Services) *Handler {
	return NewHandler(services, config.Auth{
		TokenSignKey: testSignKey,
		TokenIssuer:  testIssuer,
	}, logger.Nop())
}

func testUser(userID string) models.User {
	return models.User{
		UserID:            userID,
		CategoriesSheetID: "sheet-cat",
		ExpensesSheetID:   "sheet-exp",
		CashflowsSheetID:  "sheet-cash",
	}
}

// passthroughUserService resolves every user ID to a fixed sheet mapping.
func passthroughUserService() *stubUserService {
	return &stubUserService{
		ensureFn: func(_ context.Context, userID string) (models.User, error) {
			return testUser(userID), nil
		},
	}
}

// signToken mints a token the auth middleware accepts for the given subject.
func signToken(t *testing.T, subject string) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    testIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSignKey))
	require.NoError(t, err)
	return signed
}

// injectNopLogger puts a nop logger into the request context so handlers
// invoked outside the middleware chain can still call logger.FromRequest.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	ctx := nop.Logger.WithContext(r.Context())
	return r.WithContext(ctx)
}
