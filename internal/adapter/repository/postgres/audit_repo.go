package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
)

const auditLogsTable = "audit_logs"

// AuditLogRepository implements port.AuditLogRepository using PostgreSQL.
// AuditLogRepository реализует интерфейс port.AuditLogRepository с использованием PostgreSQL.
//
// Entries are append-only; nothing in the service updates or deletes them.
// Записи только добавляются; сервис их не изменяет и не удаляет.
type AuditLogRepository struct {
	db *gorm.DB // Database connection / Подключение к базе данных
}

// NewAuditLogRepository creates a new AuditLogRepository instance.
// NewAuditLogRepository создаёт новый экземпляр AuditLogRepository.
func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create creates a new audit log entry in the database.
// Create создаёт новую запись аудит-лога в базе данных.
func (r *AuditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	return r.CreateTx(ctx, r.db, log)
}

// CreateTx creates a new audit log entry within an existing transaction.
// CreateTx создаёт новую запись аудит-лога в рамках существующей транзакции.
// A nil tx writes outside any transaction.
// При nil tx запись выполняется вне транзакции.
func (r *AuditLogRepository) CreateTx(ctx context.Context, tx *gorm.DB, log *domain.AuditLog) error {
	defer observe("insert", auditLogsTable)()

	if tx == nil {
		tx = r.db
	}
	if err := tx.WithContext(ctx).Create(log).Error; err != nil {
		return apperror.Internal("failed to create audit log", err)
	}
	return nil
}

// FindByActor retrieves the newest entries recorded for an actor.
// FindByActor получает последние записи для субъекта.
func (r *AuditLogRepository) FindByActor(ctx context.Context, actorType, actorID string, limit int) ([]domain.AuditLog, error) {
	defer observe("select", auditLogsTable)()

	var logs []domain.AuditLog
	err := r.db.WithContext(ctx).
		Where("actor_type = ? AND actor_id = ?", actorType, actorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, apperror.Internal("failed to find audit logs by actor", err)
	}
	return logs, nil
}
