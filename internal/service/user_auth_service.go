package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/pkg/metrics"
	"github.com/Twit-Snap/users-service/internal/pkg/telemetry"
	"github.com/Twit-Snap/users-service/internal/pkg/validator"
	"github.com/Twit-Snap/users-service/internal/port"
)

// errInvalidCredentials is returned for both unknown identifiers and wrong
// passwords so that callers cannot tell which one happened.
// errInvalidCredentials возвращается и для неизвестного идентификатора, и для
// неверного пароля, чтобы нельзя было различить эти случаи.
func errInvalidCredentials() error {
	return apperror.Unauthorized("invalid credentials")
}

// LockoutPolicy limits consecutive failed logins per identifier.
// LockoutPolicy ограничивает число подряд неудачных входов на идентификатор.
type LockoutPolicy struct {
	MaxAttempts int           // Failures before lockout, 0 disables / Неудач до блокировки, 0 отключает
	Window      time.Duration // Counter lifetime / Время жизни счётчика
}

// UserAuthService implements port.UserAuthService interface.
// UserAuthService реализует интерфейс port.UserAuthService.
//
// Registers end users with a password and logs them in by email or username.
// Регистрирует пользователей с паролем и выполняет вход по email или имени.
type UserAuthService struct {
	users    port.UserRepository // Identity store / Хранилище учётных записей
	hasher   port.PasswordHasher // Password hasher / Хэшер паролей
	tokens   port.TokenService   // Token signer / Подписчик токенов
	audit    port.AuditService   // Audit trail, optional / Аудит, необязательно
	attempts port.RateLimitCache // Failed-login counters, optional / Счётчики неудачных входов
	lockout  LockoutPolicy       // Lockout policy / Политика блокировки
	logger   *logger.Logger      // Logger instance / Экземпляр логгера
}

// NewUserAuthService creates a new UserAuthService instance.
// NewUserAuthService создаёт новый экземпляр UserAuthService.
func NewUserAuthService(
	users port.UserRepository,
	hasher port.PasswordHasher,
	tokens port.TokenService,
	audit port.AuditService,
	attempts port.RateLimitCache,
	lockout LockoutPolicy,
	log *logger.Logger,
) *UserAuthService {
	return &UserAuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		audit:    audit,
		attempts: attempts,
		lockout:  lockout,
		logger:   log.WithComponent("user_auth_service"),
	}
}

// Register validates the request, stores a new account and signs it in.
// Register проверяет запрос, сохраняет новый аккаунт и выполняет вход.
//
// Fields are checked in order email, password, username, name, lastname,
// birthdate; the first failure is returned before anything is hashed or stored.
// Поля проверяются в порядке email, password, username, name, lastname,
// birthdate; первая ошибка возвращается до хэширования и сохранения.
func (s *UserAuthService) Register(ctx context.Context, req *domain.RegisterUserRequest) (result *domain.AuthResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "UserAuthService.Register",
		telemetry.AttrAuthMethod.String(metrics.MethodPassword))
	defer func() {
		metrics.RecordRegistration(metrics.MethodPassword, err == nil)
		telemetry.EndSpan(span, err)
	}()

	log := s.logger.WithContext(ctx)

	birthdate, err := validateRegistration(req)
	if err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, apperror.Internal("failed to hash password", err)
	}

	user := &domain.User{
		Username:        req.Username,
		Email:           req.Email,
		PasswordHash:    &digest,
		Name:            req.Name,
		LastName:        req.LastName,
		Birthdate:       &birthdate,
		PhoneNumber:     nonBlank(req.PhoneNumber),
		ProfilePhoto:    nonBlank(req.ProfilePhoto),
		BackgroundPhoto: nonBlank(req.BackgroundPhoto),
	}

	if err := s.users.Create(ctx, user); err != nil {
		log.Info("registration rejected by store", "username", req.Username, "error", err)
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
		Action:       domain.AuditActionRegister,
		ResourceType: domain.AuditResourceTypeUser,
		ResourceID:   userID,
	})

	log.Info("user registered", "user_id", user.ID, "username", user.Username)
	return &domain.AuthResult{User: user.StripPassword(), Token: token}, nil
}

// Login authenticates by email or username and password.
// Login аутентифицирует по email или имени пользователя и паролю.
//
// Unknown identifiers and wrong passwords fail with the same error. After
// too many consecutive failures the identifier is rejected until the
// lockout window expires.
// Неизвестный идентификатор и неверный пароль дают одинаковую ошибку. После
// слишком большого числа неудач подряд идентификатор отклоняется до
// истечения окна блокировки.
func (s *UserAuthService) Login(ctx context.Context, emailOrUsername, password string) (result *domain.AuthResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "UserAuthService.Login",
		telemetry.AttrAuthMethod.String(metrics.MethodPassword))
	defer func() {
		metrics.RecordAuthAttempt(metrics.MethodPassword, err == nil)
		telemetry.EndSpan(span, err)
	}()

	log := s.logger.WithContext(ctx)
	key := lockoutKey(emailOrUsername)

	if retryAfter, locked := s.lockedOut(ctx, key); locked {
		log.LogAuthAttempt(metrics.MethodPassword, emailOrUsername, false, "locked out")
		recordAudit(ctx, s.audit, s.logger, port.AuditEntry{
			Action:       domain.AuditActionLoginLocked,
			ResourceType: domain.AuditResourceTypeAuth,
			ResourceID:   emailOrUsername,
		})
		return nil, apperror.TooManyRequests("too many failed login attempts, try again later", retryAfter)
	}

	user, err := s.users.FindByEmailOrUsername(ctx, emailOrUsername)
	if err != nil {
		if !apperror.HasCode(err, apperror.CodeNotFound) {
			log.Error("failed to look up account", "error", err)
			return nil, err
		}
		s.recordFailure(ctx, key, emailOrUsername, "", "unknown identifier")
		return nil, errInvalidCredentials()
	}

	if !user.HasPassword() || !s.hasher.Verify(password, *user.PasswordHash) {
		s.recordFailure(ctx, key, emailOrUsername, strconv.FormatInt(user.ID, 10), "password mismatch")
		return nil, errInvalidCredentials()
	}

	if s.attempts != nil {
		if resetErr := s.attempts.Reset(ctx, key); resetErr != nil {
			log.Warn("failed to reset login attempts counter", "error", resetErr)
		}
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
		Action:       domain.AuditActionLoginSuccess,
		ResourceType: domain.AuditResourceTypeAuth,
		ResourceID:   userID,
	})

	log.LogAuthAttempt(metrics.MethodPassword, emailOrUsername, true, "")
	return &domain.AuthResult{User: user.StripPassword(), Token: token}, nil
}

// lockedOut reports whether the identifier is locked and for how many seconds.
// Counter errors are logged and never block a login.
// lockedOut сообщает, заблокирован ли идентификатор и на сколько секунд.
// Ошибки счётчика логируются и не мешают входу.
func (s *UserAuthService) lockedOut(ctx context.Context, key string) (int, bool) {
	if s.attempts == nil || s.lockout.MaxAttempts <= 0 {
		return 0, false
	}

	log := s.logger.WithContext(ctx)
	count, err := s.attempts.GetCount(ctx, key)
	if err != nil {
		log.Warn("failed to check login lockout", "error", err)
		return 0, false
	}
	if count < int64(s.lockout.MaxAttempts) {
		return 0, false
	}

	retryAfter := int(math.Ceil(s.lockout.Window.Seconds()))
	if ttl, err := s.attempts.TTL(ctx, key); err == nil && ttl > 0 {
		retryAfter = int(math.Ceil(ttl.Seconds()))
	}
	return retryAfter, true
}

func (s *UserAuthService) recordFailure(ctx context.Context, key, identifier, userID, reason string) {
	log := s.logger.WithContext(ctx)
	log.LogAuthAttempt(metrics.MethodPassword, identifier, false, reason)

	recordAudit(ctx, s.audit, s.logger, port.AuditEntry{
		ActorType:    actorTypeFor(userID),
		ActorID:      userID,
		Action:       domain.AuditActionLoginFailed,
		ResourceType: domain.AuditResourceTypeAuth,
		ResourceID:   identifier,
		Details:      map[string]interface{}{"reason": reason},
	})

	if s.attempts == nil || s.lockout.MaxAttempts <= 0 {
		return
	}
	count, err := s.attempts.Increment(ctx, key, s.lockout.Window)
	if err != nil {
		log.Warn("failed to increment login attempts counter", "error", err)
		return
	}
	if count >= int64(s.lockout.MaxAttempts) {
		log.Warn("identifier locked after repeated failed logins", "identifier", identifier, "attempts", count)
	}
}

// validateRegistration checks the request fields in their documented order.
// validateRegistration проверяет поля запроса в установленном порядке.
func validateRegistration(req *domain.RegisterUserRequest) (time.Time, error) {
	switch {
	case validator.IsBlank(req.Email):
		return time.Time{}, apperror.InvalidField("email", apperror.ReasonRequired, "email is required")
	case !validator.HasAt(req.Email):
		return time.Time{}, apperror.InvalidField("email", apperror.ReasonInvalidFormat, "email must contain @")
	case req.Password == "":
		return time.Time{}, apperror.InvalidField("password", apperror.ReasonRequired, "password is required")
	case validator.IsBlank(req.Username):
		return time.Time{}, apperror.InvalidField("username", apperror.ReasonRequired, "username is required")
	case !validator.IsUsername(req.Username):
		return time.Time{}, apperror.InvalidField("username", apperror.ReasonInvalidFormat,
			"username may only contain letters, digits, '_' and '.'")
	case validator.IsBlank(req.Name):
		return time.Time{}, apperror.InvalidField("name", apperror.ReasonRequired, "name is required")
	case validator.IsBlank(req.LastName):
		return time.Time{}, apperror.InvalidField("lastname", apperror.ReasonRequired, "lastname is required")
	case validator.IsBlank(req.Birthdate):
		return time.Time{}, apperror.InvalidField("birthdate", apperror.ReasonRequired, "birthdate is required")
	}

	birthdate, ok := validator.ParseBirthdate(req.Birthdate)
	if !ok {
		return time.Time{}, apperror.InvalidField("birthdate", apperror.ReasonInvalidFormat,
			"birthdate must be a past date in YYYY-MM-DD format")
	}

	if err := checkPhotoURL("profilePhoto", req.ProfilePhoto); err != nil {
		return time.Time{}, err
	}
	if err := checkPhotoURL("backgroundPhoto", req.BackgroundPhoto); err != nil {
		return time.Time{}, err
	}
	return birthdate, nil
}

func checkPhotoURL(field string, value *string) error {
	if value == nil || validator.IsBlank(*value) || validator.IsHTTPURL(*value) {
		return nil
	}
	return apperror.InvalidField(field, apperror.ReasonInvalidFormat, field+" must be an http(s) URL")
}

func lockoutKey(identifier string) string {
	return "login:" + strings.ToLower(strings.TrimSpace(identifier))
}

func actorTypeFor(userID string) string {
	if userID == "" {
		return ActorAnonymous
	}
	return string(domain.PayloadUser)
}

// nonBlank drops empty optional values so they do not collide on unique columns.
// nonBlank отбрасывает пустые значения, чтобы они не конфликтовали в уникальных колонках.
func nonBlank(v *string) *string {
	if v == nil || validator.IsBlank(*v) {
		return nil
	}
	s := strings.TrimSpace(*v)
	return &s
}
