// Package postgres provides PostgreSQL-based repository implementations.
// Пакет postgres предоставляет реализации репозиториев на базе PostgreSQL.
//
// This package implements all repository interfaces defined in port package
// using GORM as the ORM layer.
// Этот пакет реализует все интерфейсы репозиториев, определённые в пакете port,
// используя GORM в качестве ORM слоя.
package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/metrics"
)

// PostgreSQL SQLSTATE codes.
// Коды SQLSTATE PostgreSQL.
const (
	pgUniqueViolation     = "23505" // unique_violation
	pgForeignKeyViolation = "23503" // foreign_key_violation
	pgCheckViolation      = "23514" // check_violation
)

// conflictEntities maps unique constraint names to the entity reported to clients.
// conflictEntities сопоставляет имена ограничений уникальности с сущностью для клиента.
var conflictEntities = map[string]string{
	"users_username_key":     "Username",
	"users_email_key":        "Email",
	"users_sso_uid_key":      "SSO account",
	"users_phone_number_key": "Phone number",
	"admins_username_key":    "Username",
	"admins_email_key":       "Email",
	"follows_pkey":           "Follow",
}

// pgError extracts the driver error, if any.
// pgError извлекает ошибку драйвера, если она есть.
func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// uniqueConflict converts a unique violation into ALREADY_EXISTS naming the
// colliding field. It returns nil for any other error.
// uniqueConflict превращает нарушение уникальности в ALREADY_EXISTS с именем
// конфликтующего поля. Для остальных ошибок возвращает nil.
func uniqueConflict(err error) *apperror.AppError {
	pgErr, ok := pgError(err)
	if !ok || pgErr.Code != pgUniqueViolation {
		return nil
	}
	entity, known := conflictEntities[pgErr.ConstraintName]
	if !known {
		entity = "Record"
	}
	if entity == "Follow" {
		return apperror.AlreadyExists(entity, "already following this user")
	}
	return apperror.AlreadyExists(entity, entity+" already in use")
}

func isForeignKeyViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == pgForeignKeyViolation
}

func isCheckViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == pgCheckViolation
}

// observe records the duration of a query; use with defer.
// observe записывает длительность запроса; используется с defer.
func observe(operation, table string) func() {
	start := time.Now()
	return func() {
		metrics.RecordDBOperation(operation, table, time.Since(start))
	}
}
