package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"erp/config"
	apimiddleware "erp/internal/delivery/api/middleware"
	"erp/internal/delivery/api/router"
	"erp/internal/delivery/api/router/handler"
	"erp/internal/delivery/middleware"
	"erp/internal/domain/repository"
	"erp/internal/domain/service"
	"erp/internal/infra/auth"
	"erp/internal/infra/metrics"
	"erp/internal/infra/persistence/gormrepo"
	"erp/internal/infra/pubsub"
	"erp/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testServer struct {
	echo     *echo.Echo
	tokens   service.TokenService
	userRepo repository.UserRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			SecretKey:      testSecret,
			AccessTokenTTL: 30 * time.Minute,
			MaxTokenTTL:    2 * time.Hour,
		},
		Metrics: &config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	cfg.Env.Env = "test"
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.Database = &config.DatabaseConfig{Driver: config.DatabaseDriverSQLite}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := gormrepo.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, gormrepo.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	registry := metrics.NewRegistry()
	authMetrics := metrics.NewAuthMetrics(registry)

	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	txManager := gormrepo.NewTransactionManager(db)
	userRepo := gormrepo.NewUserRepository(db)
	itemRepo := gormrepo.NewItemRepository(db)

	authUsecase := impl.NewAuthService(impl.AuthServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokens,
		Publisher:    pubsub.NewMemoryPublisher(logger),
		Metrics:      authMetrics,
		Logger:       logger,
	})
	itemUsecase := impl.NewItemService(impl.ItemServiceParams{
		TxManager: txManager,
		ItemRepo:  itemRepo,
		Logger:    logger,
	})

	e := NewHandler(HandlerParams{
		Cfg:     cfg,
		Logger:  logger,
		Hasher:  hasher,
		Metrics: authMetrics,
		RouterParams: router.RouterParams{
			AuthHandler:    handler.NewAuthHandler(authUsecase),
			ItemHandler:    handler.NewItemHandler(itemUsecase),
			HealthHandler:  handler.NewHealthHandler(gormrepo.NewDatabaseHealth(db, cfg), cfg, logger),
			AuthMiddleware: apimiddleware.NewAuthMiddleware(authUsecase, logger),
			Gatherer:       registry,
			Config:         cfg,
		},
	})

	return &testServer{echo: e, tokens: tokens, userRepo: userRepo}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

func (s *testServer) register(t *testing.T, username, password string) {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/register", "", map[string]any{"username": username, "password": password})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()

	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var token handler.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	assert.Equal(t, "bearer", token.TokenType)
	require.NotEmpty(t, token.AccessToken)

	return token.AccessToken
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return env
}

func TestAuthFlow_RegisterLoginAndDeactivate(t *testing.T) {
	srv := newTestServer(t)

	srv.register(t, "alice", "Passw0rd1")

	dup := srv.do(t, http.MethodPost, "/api/register", "", map[string]any{"username": "alice", "password": "Passw0rd1"})
	assert.Equal(t, http.StatusConflict, dup.Code)
	assert.Equal(t, "DUPLICATE_IDENTITY", decode(t, dup).Error.Code)

	token := srv.login(t, "alice", "Passw0rd1")

	me := srv.do(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, me.Code, me.Body.String())
	var user handler.UserResponse
	require.NoError(t, json.Unmarshal(decode(t, me).Data, &user))
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.IsActive)
	assert.NotContains(t, me.Body.String(), "password")

	ctx := context.Background()
	alice, err := srv.userRepo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	alice.IsActive = false
	require.NoError(t, srv.userRepo.Update(ctx, alice))

	inactive := srv.do(t, http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusBadRequest, inactive.Code)
	assert.Equal(t, "INACTIVE_ACCOUNT", decode(t, inactive).Error.Code)
}

func TestLogin_UnknownUserAndWrongPasswordLookTheSame(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "Passw0rd1")

	wrong := srv.do(t, http.MethodPost, "/api/token", "", map[string]any{"username": "alice", "password": "Wrong0pass"})
	unknown := srv.do(t, http.MethodPost, "/api/token", "", map[string]any{"username": "mallory", "password": "Wrong0pass"})

	for _, rec := range []*httptest.ResponseRecorder{wrong, unknown} {
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		env := decode(t, rec)
		assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
		assert.Equal(t, "Incorrect username or password", env.Error.Message)
	}
}

func TestProtectedRoutes_RejectBadTokensUniformly(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "Passw0rd1")
	token := srv.login(t, "alice", "Passw0rd1")

	expired, err := srv.tokens.Issue("alice", time.Now().Add(-31*time.Minute), 30*time.Minute)
	require.NoError(t, err)
	ghost, err := srv.tokens.Issue("ghost", time.Now(), 0)
	require.NoError(t, err)

	tampered := []byte(token)
	pos := len(tampered) - 5
	if tampered[pos] == 'A' {
		tampered[pos] = 'Q'
	} else {
		tampered[pos] = 'A'
	}

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired.Token},
		{"unknown principal", ghost.Token},
		{"tampered signature", string(tampered)},
		{"garbage", "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodGet, "/api/items/", tt.token, nil)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			env := decode(t, rec)
			assert.Equal(t, "INVALID_TOKEN", env.Error.Code)
			assert.Equal(t, "Could not validate credentials", env.Error.Message)
			assert.Nil(t, env.Error.Details)
		})
	}
}

func TestProtectedRoutes_MissingToken(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/users/me", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "MISSING_TOKEN", decode(t, rec).Error.Code)
}

func TestItems_OwnershipAndNotFoundStayDistinct(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "Passw0rd1")
	srv.register(t, "bob", "Passw0rd2")
	aliceToken := srv.login(t, "alice", "Passw0rd1")
	bobToken := srv.login(t, "bob", "Passw0rd2")

	created := srv.do(t, http.MethodPost, "/api/items/", aliceToken, map[string]any{
		"name": "Laptop", "description": "14 inch", "quantity": 3, "price": 999.99,
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	var item handler.ItemResponse
	require.NoError(t, json.Unmarshal(decode(t, created).Data, &item))
	assert.Equal(t, "Laptop", item.Name)
	assert.Nil(t, item.DateUpdated)

	path := "/api/items/" + item.ID.String()

	forbidden := srv.do(t, http.MethodGet, path, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, forbidden.Code)
	assert.Equal(t, "Not enough permissions", decode(t, forbidden).Error.Message)

	missing := srv.do(t, http.MethodGet, "/api/items/018f4a2e-0000-7000-8000-000000000000", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "Item not found", decode(t, missing).Error.Message)

	bobList := srv.do(t, http.MethodGet, "/api/items/", bobToken, nil)
	require.Equal(t, http.StatusOK, bobList.Code)
	assert.JSONEq(t, `[]`, string(decode(t, bobList).Data))

	updated := srv.do(t, http.MethodPut, path, aliceToken, map[string]any{"quantity": 5})
	require.Equal(t, http.StatusOK, updated.Code, updated.Body.String())
	require.NoError(t, json.Unmarshal(decode(t, updated).Data, &item))
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, "Laptop", item.Name)
	assert.NotNil(t, item.DateUpdated)

	assert.Equal(t, http.StatusForbidden, srv.do(t, http.MethodDelete, path, bobToken, nil).Code)
	assert.Equal(t, http.StatusNoContent, srv.do(t, http.MethodDelete, path, aliceToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodGet, path, aliceToken, nil).Code)
}

func TestItems_ValidationFailure(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "Passw0rd1")
	token := srv.login(t, "alice", "Passw0rd1")

	rec := srv.do(t, http.MethodPost, "/api/items/", token, map[string]any{"name": "Laptop", "quantity": 1, "price": 0})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Equal(t, "price must be greater than 0", env.Error.Details)
}

func TestRegister_WeakPassword(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/register", "", map[string]any{"username": "alice", "password": "password"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "PASSWORD_STRENGTH", decode(t, rec).Error.Code)
}

func TestUpdateMe_ChangesPassword(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "Passw0rd1")
	token := srv.login(t, "alice", "Passw0rd1")

	rec := srv.do(t, http.MethodPatch, "/api/users/me", token, map[string]any{"email": "alice@example.com", "password": "NewPassw0rd"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	srv.login(t, "alice@example.com", "NewPassw0rd")
}

func TestHealthAndResponseHeaders(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
	assert.True(t, strings.HasSuffix(rec.Header().Get(middleware.HeaderXProcessTime), "ms"))

	env := decode(t, rec)
	assert.Equal(t, "req-123", env.Meta.RequestID)
	var health handler.HealthResponse
	require.NoError(t, json.Unmarshal(env.Data, &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "sqlite", health.Database)
	assert.Equal(t, "test", health.Environment)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "Passw0rd1")
	srv.login(t, "alice", "Passw0rd1")

	rec := srv.do(t, http.MethodGet, "/metrics", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `erp_auth_logins_total{result="success"} 1`)
	assert.Contains(t, rec.Body.String(), "erp_http_request_duration_seconds")
}
