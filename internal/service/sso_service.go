package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/pkg/metrics"
	"github.com/Twit-Snap/users-service/internal/pkg/telemetry"
	"github.com/Twit-Snap/users-service/internal/pkg/validator"
	"github.com/Twit-Snap/users-service/internal/port"
)

const (
	// maxGeneratedUsernameBase keeps generated usernames under the column limit.
	// maxGeneratedUsernameBase удерживает сгенерированные имена в пределах колонки.
	maxGeneratedUsernameBase = 40

	ssoOutcomeAccepted = "accepted"
	ssoOutcomeRejected = "rejected"
	ssoOutcomeError    = "error"
)

func errInvalidSSOCredentials() error {
	return apperror.Unauthorized("invalid SSO credentials")
}

// SSOAuthService implements port.SSOAuthService interface.
// SSOAuthService реализует интерфейс port.SSOAuthService.
//
// Login only signs in accounts already linked to the provider subject;
// Register is the only path that creates them.
// Login авторизует только аккаунты, уже связанные с субъектом провайдера;
// создаёт их только Register.
type SSOAuthService struct {
	users           port.UserRepository   // Identity store / Хранилище учётных записей
	verifier        port.IdentityVerifier // Provider verifier / Верификатор провайдера
	tokens          port.TokenService     // Token signer / Подписчик токенов
	audit           port.AuditService     // Audit trail, optional / Аудит, необязательно
	defaultProvider string                // Provider id when claims omit it / Id провайдера по умолчанию
	logger          *logger.Logger        // Logger instance / Экземпляр логгера
}

// NewSSOAuthService creates a new SSOAuthService instance.
// NewSSOAuthService создаёт новый экземпляр SSOAuthService.
func NewSSOAuthService(
	users port.UserRepository,
	verifier port.IdentityVerifier,
	tokens port.TokenService,
	audit port.AuditService,
	defaultProvider string,
	log *logger.Logger,
) *SSOAuthService {
	return &SSOAuthService{
		users:           users,
		verifier:        verifier,
		tokens:          tokens,
		audit:           audit,
		defaultProvider: defaultProvider,
		logger:          log.WithComponent("sso_auth_service"),
	}
}

// Login verifies the assertion and signs in the account linked to its subject.
// Login проверяет утверждение и авторизует аккаунт, связанный с его субъектом.
func (s *SSOAuthService) Login(ctx context.Context, req *domain.SSOLoginRequest) (result *domain.AuthResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "SSOAuthService.Login",
		telemetry.AttrAuthMethod.String(metrics.MethodSSO))
	defer func() {
		metrics.RecordAuthAttempt(metrics.MethodSSO, err == nil)
		telemetry.EndSpan(span, err)
	}()

	log := s.logger.WithContext(ctx)

	claims, err := s.verify(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	if claims.Subject != req.UID {
		log.LogAuthAttempt(metrics.MethodSSO, req.UID, false, "subject mismatch")
		return nil, errInvalidSSOCredentials()
	}

	user, err := s.users.FindBySSOUID(ctx, claims.Subject)
	if err != nil {
		if !apperror.HasCode(err, apperror.CodeNotFound) {
			log.Error("failed to look up linked account", "error", err)
			return nil, err
		}
		log.LogAuthAttempt(metrics.MethodSSO, req.UID, false, "no linked account")
		return nil, apperror.Unauthorized("no account is linked to these SSO credentials")
	}

	token, err := s.tokens.Sign(domain.NewUserPayload(user))
	if err != nil {
		log.Error("failed to sign token", "user_id", user.ID, "error", err)
		return nil, err
	}
	span.SetAttributes(telemetry.AttrUserID.Int64(user.ID))

	userID := strconv.FormatInt(user.ID, 10)
	recordAudit(ctx, s.audit, s.logger, port.AuditEntry{
		ActorType:    string(domain.PayloadUser),
		ActorID:      userID,
		Action:       domain.AuditActionSSOLogin,
		ResourceType: domain.AuditResourceTypeAuth,
		ResourceID:   userID,
	})

	log.LogAuthAttempt(metrics.MethodSSO, req.UID, true, "")
	return &domain.AuthResult{User: user.StripPassword(), Token: token}, nil
}

// Register verifies the assertion and creates a passwordless linked account.
// Register проверяет утверждение и создаёт связанный аккаунт без пароля.
//
// Provider claims win over caller-supplied profile values; the caller's
// values fill in what the provider omits.
// Утверждения провайдера важнее значений клиента; значения клиента
// заполняют то, что провайдер не передал.
func (s *SSOAuthService) Register(ctx context.Context, req *domain.SSORegisterRequest) (result *domain.AuthResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "SSOAuthService.Register",
		telemetry.AttrAuthMethod.String(metrics.MethodSSO))
	defer func() {
		metrics.RecordRegistration(metrics.MethodSSO, err == nil)
		telemetry.EndSpan(span, err)
	}()

	log := s.logger.WithContext(ctx)

	birthdate, err := validateSSORegistration(req)
	if err != nil {
		return nil, err
	}

	claims, err := s.verify(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if req.UID != "" && req.UID != claims.Subject {
		log.LogAuthAttempt(metrics.MethodSSO, req.UID, false, "subject mismatch")
		return nil, errInvalidSSOCredentials()
	}

	subject := claims.Subject
	provider := firstNonBlank(claims.ProviderID, s.defaultProvider)

	username := ""
	if req.Username != nil {
		username = strings.TrimSpace(*req.Username)
	}
	if username == "" {
		username = GenerateUsername(req.Email)
	}

	user := &domain.User{
		Username:     username,
		Email:        req.Email,
		Name:         firstNonBlank(claims.GivenName, claims.Name, req.Name),
		LastName:     firstNonBlank(claims.FamilyName, deref(req.LastName)),
		Birthdate:    birthdate,
		PhoneNumber:  nonBlank(req.PhoneNumber),
		SSOUID:       &subject,
		ProviderID:   &provider,
		ProfilePhoto: nonBlank(optional(firstNonBlank(claims.Picture, deref(req.ProfilePhoto)))),
		Verified:     claims.EmailVerified,
	}

	if err := s.users.Create(ctx, user); err != nil {
		log.Info("sso registration rejected by store", "username", user.Username, "error", err)
		return nil, err
	}
	span.SetAttributes(telemetry.AttrUserID.Int64(user.ID))

	token, err := s.tokens.Sign(domain.NewUserPayload(user))
	if err != nil {
		log.Error("failed to sign token", "user_id", user.ID, "error", err)
		return nil, err
	}

	userID := strconv.FormatInt(user.ID, 10)
	recordAudit(ctx, s.audit, s.logger, port.AuditEntry{
		ActorType:    string(domain.PayloadUser),
		ActorID:      userID,
		Action:       domain.AuditActionSSORegister,
		ResourceType: domain.AuditResourceTypeUser,
		ResourceID:   userID,
		Details:      map[string]interface{}{"provider": provider},
	})

	log.Info("sso user registered", "user_id", user.ID, "provider", provider)
	return &domain.AuthResult{User: user.StripPassword(), Token: token}, nil
}

// verify asks the provider and normalizes every failure to the same
// UNAUTHORIZED error. Provider verdicts and infrastructure failures are
// only told apart in logs and metrics.
// verify обращается к провайдеру и приводит любую ошибку к одной ошибке
// UNAUTHORIZED. Отказ провайдера и сбой инфраструктуры различаются только
// в логах и метриках.
func (s *SSOAuthService) verify(ctx context.Context, raw string) (*port.SSOClaims, error) {
	log := s.logger.WithContext(ctx)

	claims, err := s.verifier.VerifyAssertion(ctx, raw)
	if err != nil {
		if errors.Is(err, port.ErrAssertionRejected) {
			metrics.RecordSSOVerification(ssoOutcomeRejected)
			log.Warn("sso assertion rejected", "error", err)
		} else {
			metrics.RecordSSOVerification(ssoOutcomeError)
			log.Error("sso verification failed", "error", err)
		}
		return nil, errInvalidSSOCredentials()
	}
	if claims == nil || claims.Subject == "" {
		metrics.RecordSSOVerification(ssoOutcomeRejected)
		log.Warn("sso assertion carries no subject")
		return nil, errInvalidSSOCredentials()
	}

	metrics.RecordSSOVerification(ssoOutcomeAccepted)
	return claims, nil
}

func validateSSORegistration(req *domain.SSORegisterRequest) (*time.Time, error) {
	switch {
	case validator.IsBlank(req.Token):
		return nil, apperror.InvalidField("token", apperror.ReasonRequired, "token is required")
	case validator.IsBlank(req.Email):
		return nil, apperror.InvalidField("email", apperror.ReasonRequired, "email is required")
	case !validator.HasAt(req.Email):
		return nil, apperror.InvalidField("email", apperror.ReasonInvalidFormat, "email must contain @")
	case validator.IsBlank(req.Name):
		return nil, apperror.InvalidField("name", apperror.ReasonRequired, "name is required")
	}

	if err := checkPhotoURL("profilePhoto", req.ProfilePhoto); err != nil {
		return nil, err
	}
	if req.Username != nil && !validator.IsBlank(*req.Username) && !validator.IsUsername(strings.TrimSpace(*req.Username)) {
		return nil, apperror.InvalidField("username", apperror.ReasonInvalidFormat,
			"username may only contain letters, digits, '_' and '.'")
	}

	if req.Birthdate == nil || validator.IsBlank(*req.Birthdate) {
		return nil, nil
	}
	birthdate, ok := validator.ParseBirthdate(*req.Birthdate)
	if !ok {
		return nil, apperror.InvalidField("birthdate", apperror.ReasonInvalidFormat,
			"birthdate must be a past date in YYYY-MM-DD format")
	}
	return &birthdate, nil
}

// GenerateUsername derives a username from the local part of an email plus
// a short random suffix.
// GenerateUsername строит имя пользователя из локальной части email и
// короткого случайного суффикса.
func GenerateUsername(email string) string {
	local, _, _ := strings.Cut(email, "@")
	base := validator.Slug(local)
	if base == "" {
		base = "user"
	}
	if len(base) > maxGeneratedUsernameBase {
		base = base[:maxGeneratedUsernameBase]
	}
	return base + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if !validator.IsBlank(v) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
