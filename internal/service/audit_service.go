package service

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/port"
)

// ActorAnonymous marks audit entries written before anyone is authenticated.
// ActorAnonymous обозначает записи аудита до аутентификации.
const ActorAnonymous = "anonymous"

// AuditService implements port.AuditService interface.
// AuditService реализует интерфейс port.AuditService.
type AuditService struct {
	auditRepo port.AuditLogRepository // Audit log repository / Репозиторий аудит-лога
	logger    *logger.Logger          // Logger instance / Экземпляр логгера
	now       func() time.Time
}

// NewAuditService creates a new AuditService instance.
// NewAuditService создаёт новый экземпляр AuditService.
func NewAuditService(auditRepo port.AuditLogRepository, log *logger.Logger) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    log.WithComponent("audit_service"),
		now:       time.Now,
	}
}

// Record stores an entry. Client ip and user agent are taken from ctx.
// Record сохраняет запись. Ip и user agent клиента берутся из ctx.
func (s *AuditService) Record(ctx context.Context, entry port.AuditEntry) error {
	log := s.logger.WithContext(ctx)

	auditLog, err := s.build(ctx, entry)
	if err != nil {
		log.Error("failed to marshal audit details", "action", entry.Action, "error", err)
		return err
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		log.Error("failed to create audit log", "action", entry.Action, "error", err)
		return err
	}

	log.Debug("audit log created", "action", entry.Action, "resource_type", entry.ResourceType, "resource_id", entry.ResourceID)
	return nil
}

// RecordTx stores an entry within an existing transaction.
// RecordTx сохраняет запись в рамках существующей транзакции.
//
// Use this when the entry must commit or roll back with the audited change.
// Используйте, когда запись должна фиксироваться или откатываться вместе с изменением.
func (s *AuditService) RecordTx(ctx context.Context, tx *gorm.DB, entry port.AuditEntry) error {
	log := s.logger.WithContext(ctx)

	auditLog, err := s.build(ctx, entry)
	if err != nil {
		log.Error("failed to marshal audit details", "action", entry.Action, "error", err)
		return err
	}

	if err := s.auditRepo.CreateTx(ctx, tx, auditLog); err != nil {
		log.Error("failed to create audit log in transaction", "action", entry.Action, "error", err)
		return err
	}

	log.Debug("audit log created in transaction", "action", entry.Action, "resource_type", entry.ResourceType, "resource_id", entry.ResourceID)
	return nil
}

// History returns recent entries for an actor, newest first.
// History возвращает последние записи субъекта, новые первыми.
func (s *AuditService) History(ctx context.Context, actorType, actorID string, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.auditRepo.FindByActor(ctx, actorType, actorID, limit)
}

func (s *AuditService) build(ctx context.Context, entry port.AuditEntry) (*domain.AuditLog, error) {
	var details json.RawMessage
	if len(entry.Details) > 0 {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			return nil, apperror.Internal("failed to marshal audit details", err)
		}
		details = raw
	}

	actorType := entry.ActorType
	if actorType == "" {
		actorType = ActorAnonymous
	}

	client := logger.GetClientFromContext(ctx)
	return &domain.AuditLog{
		ActorType:    actorType,
		ActorID:      entry.ActorID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Details:      details,
		IPAddress:    optional(client.IP),
		UserAgent:    optional(client.UserAgent),
		CreatedAt:    s.now(),
	}, nil
}

// recordAudit writes an entry and only logs a failure: losing an audit row
// never fails the audited request.
// recordAudit записывает запись и лишь логирует ошибку: потеря записи аудита
// не приводит к ошибке запроса.
func recordAudit(ctx context.Context, audit port.AuditService, log *logger.Logger, entry port.AuditEntry) {
	if audit == nil {
		return
	}
	if err := audit.Record(ctx, entry); err != nil {
		log.WithContext(ctx).Warn("failed to record audit event", "action", entry.Action, "error", err)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
