package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	rediscache "github.com/Twit-Snap/users-service/internal/adapter/cache/redis"
	"github.com/Twit-Snap/users-service/internal/adapter/http/handler"
	"github.com/Twit-Snap/users-service/internal/adapter/http/middleware"
	postgresrepo "github.com/Twit-Snap/users-service/internal/adapter/repository/postgres"
	"github.com/Twit-Snap/users-service/internal/adapter/sso"
	"github.com/Twit-Snap/users-service/internal/config"
	"github.com/Twit-Snap/users-service/internal/pkg/hasher"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/pkg/validator"
	"github.com/Twit-Snap/users-service/internal/service"
)

const (
	testSecret    = "integration-secret"
	rootUsername  = "root"
	rootPassword  = "root-password"
	lockoutLimit  = 3
	clientAddress = "192.0.2.1:40000"
)

var (
	shared    *TestContainers
	setupOnce sync.Once
	setupErr  error
)

func TestMain(m *testing.M) {
	flag.Parse()
	gin.SetMode(gin.TestMode)
	if err := validator.RegisterGinValidations(); err != nil {
		panic(err)
	}

	code := m.Run()

	if shared != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		_ = shared.Teardown(ctx)
		cancel()
	}
	os.Exit(code)
}

// containers starts the shared containers on first use and empties them
// before every test.
func containers(t *testing.T) *TestContainers {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	setupOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		shared, setupErr = SetupTestContainers(ctx)
		if setupErr == nil {
			setupErr = shared.RunMigrations(ctx)
		}
	})
	require.NoError(t, setupErr)
	require.NoError(t, shared.CleanupData(context.Background()))
	return shared
}

// newApp wires the whole service on top of the containers.
func newApp(t *testing.T, tc *TestContainers) *gin.Engine {
	t.Helper()
	ctx := context.Background()
	log := logger.Discard()

	attempts := rediscache.NewRateLimitCache(tc.Redis)
	users := postgresrepo.NewUserRepository(tc.DB)
	admins := postgresrepo.NewAdminRepository(tc.DB)

	passwords := hasher.NewBcrypt(4)
	tokens, err := service.NewTokenService(testSecret, config.TokenTTL)
	require.NoError(t, err)

	enforcer, err := service.NewEnforcer(tc.DB)
	require.NoError(t, err)
	authz := service.NewAuthorizationService(enforcer, rediscache.NewAuthorizationCache(tc.Redis), log)
	audit := service.NewAuditService(postgresrepo.NewAuditLogRepository(tc.DB), log)

	userAuth := service.NewUserAuthService(users, passwords, tokens, audit, attempts,
		service.LockoutPolicy{MaxAttempts: lockoutLimit, Window: time.Minute}, log)
	adminAuth := service.NewAdminAuthService(admins, passwords, tokens, audit, log)
	ssoAuth := service.NewSSOAuthService(users, sso.Disabled{}, tokens, audit, "google.com", log)
	userService := service.NewUserService(users, postgresrepo.NewTransactionManager(tc.DB), audit, log)
	followService := service.NewFollowService(postgresrepo.NewFollowRepository(tc.DB), users, audit, log)

	seeder := service.NewSeeder(authz, admins, adminAuth, service.DefaultAdmin{
		Username: rootUsername,
		Email:    "root@example.com",
		Password: rootPassword,
	}, log)
	require.NoError(t, seeder.SeedAll(ctx))

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ClientInfo())
	handler.RegisterRoutes(router, handler.Handlers{
		Health:      handler.NewHealthHandler(tc.DB, tc.Redis),
		Auth:        handler.NewAuthHandler(userAuth, ssoAuth, log),
		Admin:       handler.NewAdminHandler(adminAuth, userService, audit, authz, log),
		Users:       handler.NewUserHandler(userService, log),
		Follow:      handler.NewFollowHandler(followService, log),
		Gate:        handler.NewAuthMiddleware(service.NewAccessGate(tokens, users, log), authz, log),
		AuthLimiter: middleware.AuthRateLimitMiddleware(attempts, middleware.RateLimitConfig{AuthRequestsPerMinute: 1000}, log),
	})
	return router
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
	Meta *struct {
		Total int64 `json:"total"`
	} `json:"meta"`
}

// call performs a request; body is marshalled to JSON when not nil.
func call(t *testing.T, router http.Handler, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = clientAddress
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func data(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, v))
}
