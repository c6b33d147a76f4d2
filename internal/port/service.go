// Package port defines interfaces (ports) for the application's external dependencies.
// Пакет port определяет интерфейсы (порты) для внешних зависимостей приложения.
package port

import (
	"context"

	"gorm.io/gorm"

	"github.com/Twit-Snap/users-service/internal/domain"
)

// PasswordHasher hashes and verifies passwords.
// PasswordHasher хэширует и проверяет пароли.
type PasswordHasher interface {
	// Hash returns a salted one-way digest.
	// Hash возвращает солёный односторонний хэш.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest.
	// Verify сообщает, соответствует ли plaintext хэшу.
	Verify(plaintext, digest string) bool
}

// TokenService signs, verifies and decodes identity tokens.
// TokenService подписывает, проверяет и декодирует токены идентичности.
type TokenService interface {
	// Sign returns a signed token expiring after the configured TTL.
	// Sign возвращает подписанный токен, истекающий через заданный TTL.
	Sign(payload domain.TokenPayload) (string, error)

	// Verify checks signature and expiry; any failure is UNAUTHORIZED.
	// Verify проверяет подпись и срок; любая ошибка - UNAUTHORIZED.
	Verify(token string) (*domain.TokenPayload, error)

	// Decode parses the payload without verification; nil when unparsable.
	// Decode разбирает полезную нагрузку без проверки; nil, если не разбирается.
	Decode(token string) *domain.TokenPayload
}

// UserAuthService authenticates end users with passwords.
// UserAuthService аутентифицирует конечных пользователей по паролю.
type UserAuthService interface {
	// Register validates, hashes, persists and signs in a new account.
	// Register проверяет, хэширует, сохраняет и авторизует новый аккаунт.
	Register(ctx context.Context, req *domain.RegisterUserRequest) (*domain.AuthResult, error)

	// Login authenticates by email or username.
	// Login аутентифицирует по email или имени пользователя.
	Login(ctx context.Context, emailOrUsername, password string) (*domain.AuthResult, error)
}

// AdminAuthService authenticates administrators.
// AdminAuthService аутентифицирует администраторов.
type AdminAuthService interface {
	// Register creates a new administrator.
	// Register создаёт нового администратора.
	Register(ctx context.Context, req *domain.RegisterAdminRequest) (*domain.AdminAuthResult, error)

	// Login authenticates an administrator by email or username.
	// Login аутентифицирует администратора по email или имени.
	Login(ctx context.Context, emailOrUsername, password string) (*domain.AdminAuthResult, error)
}

// SSOAuthService authenticates users with provider-issued assertions.
// SSOAuthService аутентифицирует пользователей по утверждениям провайдера.
type SSOAuthService interface {
	// Login signs in an existing linked account; it never creates one.
	// Login авторизует существующий связанный аккаунт и никогда его не создаёт.
	Login(ctx context.Context, req *domain.SSOLoginRequest) (*domain.AuthResult, error)

	// Register creates a passwordless account linked to the provider subject.
	// Register создаёт аккаунт без пароля, связанный с субъектом провайдера.
	Register(ctx context.Context, req *domain.SSORegisterRequest) (*domain.AuthResult, error)
}

// AccessGate is the request-time authorization gate.
// AccessGate - шлюз авторизации во время запроса.
type AccessGate interface {
	// DecodeToken extracts and verifies a "Bearer <token>" header value.
	// DecodeToken извлекает и проверяет значение заголовка "Bearer <token>".
	DecodeToken(ctx context.Context, authorization string) (*domain.TokenPayload, error)

	// CheckBlockedUser rejects missing or blocked users; admins pass.
	// CheckBlockedUser отклоняет отсутствующих или заблокированных пользователей; админы проходят.
	CheckBlockedUser(ctx context.Context, payload *domain.TokenPayload) error

	// Authenticate runs both phases in order.
	// Authenticate выполняет обе фазы по порядку.
	Authenticate(ctx context.Context, authorization string) (*domain.TokenPayload, error)
}

// UserService covers profile reads, updates and moderation.
// UserService отвечает за чтение и изменение профилей и модерацию.
type UserService interface {
	// GetUser retrieves a user by id.
	// GetUser получает пользователя по id.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	// GetByUsername получает пользователя по имени.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers returns a page of users and the total count.
	// ListUsers возвращает страницу пользователей и общее количество.
	ListUsers(ctx context.Context, filter UserFilter) ([]domain.User, int64, error)

	// UpdateProfile applies the non-nil fields of req.
	// UpdateProfile применяет ненулевые поля req.
	UpdateProfile(ctx context.Context, id int64, req *domain.UpdateProfileRequest) (*domain.User, error)

	// BlockUser blocks an account on behalf of actor.
	// BlockUser блокирует аккаунт от имени actor.
	BlockUser(ctx context.Context, id int64, actor domain.TokenPayload) error

	// UnblockUser unblocks an account on behalf of actor.
	// UnblockUser разблокирует аккаунт от имени actor.
	UnblockUser(ctx context.Context, id int64, actor domain.TokenPayload) error
}

// FollowService manages the follow graph.
// FollowService управляет графом подписок.
type FollowService interface {
	// Follow adds an edge from follower to the named user.
	// Follow добавляет ребро от подписчика к указанному пользователю.
	Follow(ctx context.Context, follower domain.TokenPayload, followedUsername string) (*domain.Follow, error)

	// Unfollow removes the edge from follower to the named user.
	// Unfollow удаляет ребро от подписчика к указанному пользователю.
	Unfollow(ctx context.Context, follower domain.TokenPayload, followedUsername string) error

	// ListFollowers returns a page of the named user's followers.
	// ListFollowers возвращает страницу подписчиков пользователя.
	ListFollowers(ctx context.Context, username string, page Page) ([]domain.User, int64, error)

	// ListFollowing returns a page of users the named user follows.
	// ListFollowing возвращает страницу подписок пользователя.
	ListFollowing(ctx context.Context, username string, page Page) ([]domain.User, int64, error)
}

// AuthorizationService answers role permission questions.
// AuthorizationService отвечает на вопросы о правах ролей.
type AuthorizationService interface {
	// CheckAccess reports whether the payload's role may act on resource.
	// CheckAccess сообщает, может ли роль полезной нагрузки действовать над ресурсом.
	CheckAccess(ctx context.Context, payload domain.TokenPayload, resource, action string) (bool, error)

	// ReloadPolicies reloads policies from storage and drops cached decisions.
	// ReloadPolicies перезагружает политики и сбрасывает кэш решений.
	ReloadPolicies(ctx context.Context) error
}

// AuditEntry is one audited action.
// AuditEntry - одно действие для аудита.
type AuditEntry struct {
	ActorType    string                 // user, admin or anonymous / user, admin или anonymous
	ActorID      string                 // User id or admin username / Id пользователя или имя админа
	Action       string                 // Action name / Имя действия
	ResourceType string                 // Resource type / Тип ресурса
	ResourceID   string                 // Resource id / Id ресурса
	Details      map[string]interface{} // Extra data / Доп. данные
}

// AuditService records audited actions.
// AuditService записывает действия для аудита.
type AuditService interface {
	// Record stores an entry; client ip and user agent come from ctx.
	// Record сохраняет запись; ip и user agent клиента берутся из ctx.
	Record(ctx context.Context, entry AuditEntry) error

	// RecordTx stores an entry within an existing transaction.
	// RecordTx сохраняет запись в рамках существующей транзакции.
	RecordTx(ctx context.Context, tx *gorm.DB, entry AuditEntry) error

	// History returns recent entries recorded for an actor.
	// History возвращает последние записи субъекта.
	History(ctx context.Context, actorType, actorID string, limit int) ([]domain.AuditLog, error)
}
