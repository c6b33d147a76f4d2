package service

import (
	"context"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/pkg/metrics"
	"github.com/Twit-Snap/users-service/internal/pkg/telemetry"
	"github.com/Twit-Snap/users-service/internal/pkg/validator"
	"github.com/Twit-Snap/users-service/internal/port"
)

// AdminAuthService implements port.AdminAuthService interface.
// AdminAuthService реализует интерфейс port.AdminAuthService.
//
// Same flow as UserAuthService with the narrower admin payload. Registration
// behaves identically whether a client or the startup seeder calls it.
// Тот же процесс, что и в UserAuthService, с более узкой полезной нагрузкой.
// Регистрация ведёт себя одинаково при вызове клиентом и seeder'ом.
type AdminAuthService struct {
	admins port.AdminRepository
	hasher port.PasswordHasher
	tokens port.TokenService
	audit  port.AuditService
	logger *logger.Logger
}

// NewAdminAuthService creates a new AdminAuthService instance.
// NewAdminAuthService создаёт новый экземпляр AdminAuthService.
func NewAdminAuthService(
	admins port.AdminRepository,
	hasher port.PasswordHasher,
	tokens port.TokenService,
	audit port.AuditService,
	log *logger.Logger,
) *AdminAuthService {
	return &AdminAuthService{
		admins: admins,
		hasher: hasher,
		tokens: tokens,
		audit:  audit,
		logger: log.WithComponent("admin_auth_service"),
	}
}

// Register creates an administrator and signs it in.
// Register создаёт администратора и выполняет вход.
func (s *AdminAuthService) Register(ctx context.Context, req *domain.RegisterAdminRequest) (result *domain.AdminAuthResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "AdminAuthService.Register",
		telemetry.AttrAuthMethod.String(metrics.MethodAdmin))
	defer func() {
		metrics.RecordRegistration(metrics.MethodAdmin, err == nil)
		telemetry.EndSpan(span, err)
	}()

	log := s.logger.WithContext(ctx)

	switch {
	case validator.IsBlank(req.Email):
		return nil, apperror.InvalidField("email", apperror.ReasonRequired, "email is required")
	case !validator.HasAt(req.Email):
		return nil, apperror.InvalidField("email", apperror.ReasonInvalidFormat, "email must contain @")
	case req.Password == "":
		return nil, apperror.InvalidField("password", apperror.ReasonRequired, "password is required")
	case validator.IsBlank(req.Username):
		return nil, apperror.InvalidField("username", apperror.ReasonRequired, "username is required")
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, apperror.Internal("failed to hash password", err)
	}

	admin := &domain.Admin{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: digest,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		log.Info("admin registration rejected by store", "username", req.Username, "error", err)
		return nil, err
	}

	token, err := s.tokens.Sign(domain.NewAdminPayload(admin))
	if err != nil {
		log.Error("failed to sign token", "username", admin.Username, "error", err)
		return nil, err
	}

	recordAudit(ctx, s.audit, s.logger, port.AuditEntry{
		ActorType:    string(domain.PayloadAdmin),
		ActorID:      admin.Username,
		Action:       domain.AuditActionAdminRegister,
		ResourceType: domain.AuditResourceTypeAdmin,
		ResourceID:   admin.Username,
	})

	log.Info("admin registered", "username", admin.Username)
	return &domain.AdminAuthResult{Admin: admin.StripPassword(), Token: token}, nil
}

// Login authenticates an administrator by email or username.
// Login аутентифицирует администратора по email или имени.
func (s *AdminAuthService) Login(ctx context.Context, emailOrUsername, password string) (result *domain.AdminAuthResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "AdminAuthService.Login",
		telemetry.AttrAuthMethod.String(metrics.MethodAdmin))
	defer func() {
		metrics.RecordAuthAttempt(metrics.MethodAdmin, err == nil)
		telemetry.EndSpan(span, err)
	}()

	log := s.logger.WithContext(ctx)

	admin, err := s.admins.FindByEmailOrUsername(ctx, emailOrUsername)
	if err != nil {
		if !apperror.HasCode(err, apperror.CodeNotFound) {
			log.Error("failed to look up admin", "error", err)
			return nil, err
		}
		log.LogAuthAttempt(metrics.MethodAdmin, emailOrUsername, false, "unknown identifier")
		return nil, errInvalidCredentials()
	}

	if !s.hasher.Verify(password, admin.PasswordHash) {
		log.LogAuthAttempt(metrics.MethodAdmin, emailOrUsername, false, "password mismatch")
		recordAudit(ctx, s.audit, s.logger, port.AuditEntry{
			ActorType:    ActorAnonymous,
			Action:       domain.AuditActionLoginFailed,
			ResourceType: domain.AuditResourceTypeAdmin,
			ResourceID:   admin.Username,
		})
		return nil, errInvalidCredentials()
	}

	token, err := s.tokens.Sign(domain.NewAdminPayload(admin))
	if err != nil {
		log.Error("failed to sign token", "username", admin.Username, "error", err)
		return nil, err
	}

	recordAudit(ctx, s.audit, s.logger, port.AuditEntry{
		ActorType:    string(domain.PayloadAdmin),
		ActorID:      admin.Username,
		Action:       domain.AuditActionAdminLogin,
		ResourceType: domain.AuditResourceTypeAdmin,
		ResourceID:   admin.Username,
	})

	log.LogAuthAttempt(metrics.MethodAdmin, emailOrUsername, true, "")
	return &domain.AdminAuthResult{Admin: admin.StripPassword(), Token: token}, nil
}
