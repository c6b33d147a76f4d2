// Package integration runs the service against real PostgreSQL and Redis
// containers.
package integration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	postgresrepo "github.com/Twit-Snap/users-service/internal/adapter/repository/postgres"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
)

// TestContainers holds references to test containers
type TestContainers struct {
	PostgresContainer testcontainers.Container
	RedisContainer    testcontainers.Container
	DB                *gorm.DB
	Redis             *redis.Client
}

// SetupTestContainers starts PostgreSQL and Redis containers for integration testing
func SetupTestContainers(ctx context.Context) (*TestContainers, error) {
	tc := &TestContainers{}

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "users_test_db",
				"POSTGRES_USER":     "users",
				"POSTGRES_PASSWORD": "users",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}
	tc.PostgresContainer = pgContainer

	pgHost, err := pgContainer.Host(ctx)
	if err != nil {
		return tc, fmt.Errorf("failed to get postgres host: %w", err)
	}
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		return tc, fmt.Errorf("failed to get postgres port: %w", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=users password=users dbname=users_test_db sslmode=disable", pgHost, pgPort.Port())
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return tc, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	tc.DB = db

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return tc, fmt.Errorf("failed to start redis container: %w", err)
	}
	tc.RedisContainer = redisContainer

	redisHost, err := redisContainer.Host(ctx)
	if err != nil {
		return tc, fmt.Errorf("failed to get redis host: %w", err)
	}
	redisPort, err := redisContainer.MappedPort(ctx, "6379")
	if err != nil {
		return tc, fmt.Errorf("failed to get redis port: %w", err)
	}

	tc.Redis = redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", redisHost, redisPort.Port()),
	})
	if err := tc.Redis.Ping(ctx).Err(); err != nil {
		return tc, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return tc, nil
}

// Teardown stops and removes all containers
func (tc *TestContainers) Teardown(ctx context.Context) error {
	var errs []error

	if tc.Redis != nil {
		if err := tc.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	if tc.DB != nil {
		if sqlDB, err := tc.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	if tc.PostgresContainer != nil {
		if err := tc.PostgresContainer.Terminate(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to terminate postgres container: %w", err))
		}
	}

	if tc.RedisContainer != nil {
		if err := tc.RedisContainer.Terminate(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to terminate redis container: %w", err))
		}
	}

	return errors.Join(errs...)
}

// RunMigrations applies the service's embedded schema.
func (tc *TestContainers) RunMigrations(ctx context.Context) error {
	return postgresrepo.Migrate(ctx, tc.DB, logger.Discard())
}

// CleanupData removes all rows except authorization policies, and flushes Redis.
func (tc *TestContainers) CleanupData(ctx context.Context) error {
	if err := tc.DB.WithContext(ctx).
		Exec("TRUNCATE TABLE follows, audit_logs, admins, users RESTART IDENTITY CASCADE").Error; err != nil {
		return err
	}
	return tc.Redis.FlushDB(ctx).Err()
}
