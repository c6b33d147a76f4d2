// Package main is the entry point for the Users Service API server.
// Пакет main является точкой входа для API сервера Users Service.
//
// The Users Service registers and authenticates end users and administrators,
// keeps profiles and the follow graph, and gates every protected route with
// signed tokens and Casbin role policies.
// Users Service регистрирует и аутентифицирует пользователей и администраторов,
// хранит профили и граф подписок и защищает маршруты подписанными токенами
// и ролевыми политиками Casbin.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	rediscache "github.com/Twit-Snap/users-service/internal/adapter/cache/redis"
	"github.com/Twit-Snap/users-service/internal/adapter/http/handler"
	"github.com/Twit-Snap/users-service/internal/adapter/http/middleware"
	postgresrepo "github.com/Twit-Snap/users-service/internal/adapter/repository/postgres"
	"github.com/Twit-Snap/users-service/internal/adapter/sso"
	"github.com/Twit-Snap/users-service/internal/config"
	"github.com/Twit-Snap/users-service/internal/pkg/hasher"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/pkg/telemetry"
	"github.com/Twit-Snap/users-service/internal/pkg/validator"
	"github.com/Twit-Snap/users-service/internal/port"
	"github.com/Twit-Snap/users-service/internal/service"

	// Swagger docs / Документация Swagger.
	_ "github.com/Twit-Snap/users-service/docs"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// main is the application entry point.
// main является точкой входа приложения.
//
// Initializes all dependencies and starts the HTTP server with graceful shutdown.
// Инициализирует все зависимости и запускает HTTP сервер с graceful shutdown.
func main() {
	// MustLoad panics if config is invalid, which is desired at startup
	// MustLoad паникует при невалидном конфиге, что желательно при запуске
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: true,
	})
	logger.SetDefault(log)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize telemetry / Инициализируем телеметрию
	tp, err := telemetry.InitTelemetry(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: version,
		Environment:    cfg.Telemetry.Environment,
	})
	if err != nil {
		log.Error("failed to initialize telemetry", "error", err)
	} else if cfg.Telemetry.Enabled {
		log.Info("telemetry initialized", "endpoint", cfg.Telemetry.OTLPEndpoint)
	}

	db, err := initDB(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	if cfg.Database.AutoMigrate {
		if err := postgresrepo.Migrate(ctx, db, log); err != nil {
			log.Fatal("failed to apply migrations", "error", err)
		}
	}

	redisClient := initRedis(ctx, cfg, log)

	// Caches fail open, so a Redis outage degrades to uncached checks
	// Кэши работают в режиме fail open: при недоступности Redis проверки идут без кэша
	cacheCB := rediscache.DefaultCircuitBreakerConfig()
	authzCache := rediscache.NewAuthorizationCacheWithCB(rediscache.NewAuthorizationCache(redisClient), cacheCB)
	rateLimitCache := rediscache.NewRateLimitCacheWithCB(rediscache.NewRateLimitCache(redisClient), cacheCB)

	// Repositories / Репозитории
	repoCB := postgresrepo.DefaultCircuitBreakerConfig()
	userRepo := postgresrepo.NewUserRepositoryWithCB(postgresrepo.NewUserRepository(db), repoCB)
	adminRepo := postgresrepo.NewAdminRepositoryWithCB(postgresrepo.NewAdminRepository(db), repoCB)
	followRepo := postgresrepo.NewFollowRepositoryWithCB(postgresrepo.NewFollowRepository(db), repoCB)
	auditRepo := postgresrepo.NewAuditLogRepositoryWithCB(postgresrepo.NewAuditLogRepository(db), repoCB)
	txManager := postgresrepo.NewTransactionManagerWithCB(postgresrepo.NewTransactionManager(db), repoCB)

	// Services / Сервисы
	passwords := hasher.NewBcrypt(cfg.Password.BcryptCost)
	tokens, err := service.NewTokenService(cfg.JWT.Secret, config.TokenTTL)
	if err != nil {
		log.Fatal("failed to initialize token service", "error", err)
	}

	enforcer, err := service.NewEnforcer(db)
	if err != nil {
		log.Fatal("failed to initialize policy enforcer", "error", err)
	}
	authzService := service.NewAuthorizationService(enforcer, authzCache, log)
	auditService := service.NewAuditService(auditRepo, log)

	userAuth := service.NewUserAuthService(userRepo, passwords, tokens, auditService, rateLimitCache,
		service.LockoutPolicy{MaxAttempts: cfg.Lockout.MaxAttempts, Window: cfg.Lockout.Duration()}, log)
	adminAuth := service.NewAdminAuthService(adminRepo, passwords, tokens, auditService, log)
	ssoAuth := service.NewSSOAuthService(userRepo, initVerifier(cfg, log), tokens, auditService, cfg.SSO.ProviderID, log)
	gate := service.NewAccessGate(tokens, userRepo, log)
	userService := service.NewUserService(userRepo, txManager, auditService, log)
	followService := service.NewFollowService(followRepo, userRepo, auditService, log)

	seeder := service.NewSeeder(authzService, adminRepo, adminAuth, service.DefaultAdmin{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}, log)
	if err := seeder.SeedAll(ctx); err != nil {
		log.Error("failed to seed database", "error", err)
	}

	// HTTP layer / HTTP слой
	if err := validator.RegisterGinValidations(); err != nil {
		log.Fatal("failed to register validators", "error", err)
	}

	securityCfg := middleware.DefaultSecurityConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		securityCfg = middleware.ProductionSecurityConfig(cfg.Server.AllowedOrigins)
	}

	rateCfg := middleware.DefaultRateLimitConfig()
	rateCfg.RequestsPerSecond = cfg.Server.RequestsPerSec
	rateCfg.Burst = cfg.Server.Burst
	rateCfg.AuthRequestsPerMinute = cfg.Server.AuthPerMinute
	rateLimiter := middleware.NewIPRateLimiter(rateCfg)
	go rateLimiter.Run(ctx)

	router := setupRouter(cfg, log, securityCfg, rateLimiter, handler.Handlers{
		Health:      handler.NewHealthHandler(db, redisClient),
		Auth:        handler.NewAuthHandler(userAuth, ssoAuth, log),
		Admin:       handler.NewAdminHandler(adminAuth, userService, auditService, authzService, log),
		Users:       handler.NewUserHandler(userService, log),
		Follow:      handler.NewFollowHandler(followService, log),
		Gate:        handler.NewAuthMiddleware(gate, authzService, log),
		AuthLimiter: middleware.AuthRateLimitMiddleware(rateLimitCache, rateCfg, log),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second, // Max time to read request / Макс. время чтения запроса
		WriteTimeout: 15 * time.Second, // Max time to write response / Макс. время записи ответа
		IdleTimeout:  60 * time.Second, // Max time for keep-alive / Макс. время keep-alive
	}

	go func() {
		log.Info("server starting", "port", cfg.Server.Port, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", "error", err)
		}
	}()

	// Graceful shutdown handling / Обработка graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	if tp != nil {
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shutdown telemetry", "error", err)
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("server exited properly")
}

// initDB initializes the PostgreSQL database connection with connection pooling.
// initDB инициализирует подключение к PostgreSQL с пулом соединений.
func initDB(ctx context.Context, cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established")
	return db, nil
}

// initRedis initializes the Redis client connection.
// initRedis инициализирует подключение клиента Redis.
//
// An unreachable Redis is logged, not fatal: caches and counters fail open.
// Недоступный Redis логируется, но не фатален: кэши и счётчики работают fail open.
func initRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) redis.UniversalClient {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.Redis.Addr()},
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis is unreachable, continuing without cache", "error", err)
	} else {
		log.Info("redis connection established")
	}
	return client
}

// initVerifier builds the SSO verifier, or a disabled one when SSO is not
// configured.
// initVerifier создаёт SSO верификатор или отключённый, если SSO не настроен.
func initVerifier(cfg *config.Config, log *logger.Logger) port.IdentityVerifier {
	if cfg.SSO.ProjectID == "" {
		log.Warn("SSO_PROJECT_ID is empty, every SSO assertion will be rejected")
		return sso.Disabled{}
	}
	verifier, err := sso.NewVerifier(cfg.SSO, nil)
	if err != nil {
		log.Warn("failed to initialize SSO verifier, every SSO assertion will be rejected", "error", err)
		return sso.Disabled{}
	}
	return verifier
}

// setupRouter configures the Gin router with all routes and middleware.
// setupRouter настраивает роутер Gin со всеми маршрутами и middleware.
func setupRouter(
	cfg *config.Config,
	log *logger.Logger,
	securityCfg middleware.SecurityConfig,
	rateLimiter *middleware.IPRateLimiter,
	handlers handler.Handlers,
) *gin.Engine {
	if cfg.DevMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Only listed proxies may set X-Forwarded-For
	// Только перечисленные прокси могут устанавливать X-Forwarded-For
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		log.Error("failed to set trusted proxies", "error", err)
	}

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.ClientInfo())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Metrics())
	router.Use(middleware.SecurityHeaders(securityCfg))
	router.Use(middleware.CORS(securityCfg))
	router.Use(middleware.RateLimitMiddleware(rateLimiter))

	handler.RegisterRoutes(router, handlers)
	return router
}
