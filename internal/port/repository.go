// Package port defines interfaces (ports) for the application's external dependencies.
// Пакет port определяет интерфейсы (порты) для внешних зависимостей приложения.
//
// This package follows the Hexagonal Architecture (Ports and Adapters) pattern,
// where ports define the contracts that adapters must implement.
// Этот пакет следует паттерну Гексагональной Архитектуры (Порты и Адаптеры),
// где порты определяют контракты, которые должны реализовывать адаптеры.
package port

import (
	"context"

	"gorm.io/gorm"

	"github.com/Twit-Snap/users-service/internal/domain"
)

// UserFilter defines filtering options for user queries.
// UserFilter определяет параметры фильтрации для запросов пользователей.
type UserFilter struct {
	Status   string // "active", "blocked", "all" / "active", "blocked", "all"
	Search   string // Username, name or last name prefix / Префикс имени пользователя, имени или фамилии
	Page     int    // Page number, 1-based / Номер страницы с 1
	PageSize int    // Items per page / Элементов на странице
}

// Normalize clamps paging values to sane bounds.
// Normalize приводит параметры пагинации к допустимым границам.
func (f *UserFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 20
	}
}

// Page defines offset pagination for list queries.
// Page определяет пагинацию для запросов списков.
type Page struct {
	Page     int // Page number, 1-based / Номер страницы с 1
	PageSize int // Items per page / Элементов на странице
}

// Offset returns the number of rows to skip.
// Offset возвращает количество пропускаемых строк.
func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

// Limit returns the page size bounded to [1, 100].
// Limit возвращает размер страницы в пределах [1, 100].
func (p Page) Limit() int {
	if p.PageSize < 1 || p.PageSize > 100 {
		return 20
	}
	return p.PageSize
}

// UserRepository is the identity store for end-user accounts.
// UserRepository - хранилище учётных записей конечных пользователей.
//
// Lookups fail with apperror NOT_FOUND when nothing matches. Create is an
// atomic check-and-insert: a unique constraint violation fails with
// apperror ALREADY_EXISTS naming the colliding field.
// Поиск возвращает apperror NOT_FOUND, если ничего не найдено. Create -
// атомарная проверка со вставкой: нарушение уникальности возвращает
// apperror ALREADY_EXISTS с именем конфликтующего поля.
type UserRepository interface {
	// Create inserts a new account and fills its id.
	// Create вставляет новый аккаунт и заполняет его id.
	Create(ctx context.Context, user *domain.User) error

	// FindByID retrieves an account by numeric id.
	// FindByID получает аккаунт по числовому id.
	FindByID(ctx context.Context, id int64) (*domain.User, error)

	// FindByUsername retrieves an account by exact username.
	// FindByUsername получает аккаунт по точному имени пользователя.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByEmailOrUsername retrieves an account whose email or username equals identifier.
	// FindByEmailOrUsername получает аккаунт, у которого email или имя равно identifier.
	FindByEmailOrUsername(ctx context.Context, identifier string) (*domain.User, error)

	// FindBySSOUID retrieves an account linked to a provider subject.
	// FindBySSOUID получает аккаунт, связанный с субъектом провайдера.
	FindBySSOUID(ctx context.Context, uid string) (*domain.User, error)

	// Update writes only the given columns of user.
	// Update записывает только указанные колонки user.
	Update(ctx context.Context, user *domain.User, columns []string) error

	// SetBlockedTx flips the blocked flag inside a transaction.
	// SetBlockedTx меняет флаг блокировки в рамках транзакции.
	SetBlockedTx(ctx context.Context, tx *gorm.DB, id int64, blocked bool) error

	// List returns a page of accounts and the total count.
	// List возвращает страницу аккаунтов и общее количество.
	List(ctx context.Context, filter UserFilter) ([]domain.User, int64, error)
}

// AdminRepository is the identity store for administrator accounts.
// AdminRepository - хранилище учётных записей администраторов.
type AdminRepository interface {
	// Create inserts a new administrator.
	// Create вставляет нового администратора.
	Create(ctx context.Context, admin *domain.Admin) error

	// FindByEmailOrUsername retrieves an admin whose email or username equals identifier.
	// FindByEmailOrUsername получает админа, у которого email или имя равно identifier.
	FindByEmailOrUsername(ctx context.Context, identifier string) (*domain.Admin, error)

	// ExistsByUsername reports whether an admin with this username exists.
	// ExistsByUsername сообщает, существует ли админ с таким именем.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// FollowRepository stores the follow graph.
// FollowRepository хранит граф подписок.
type FollowRepository interface {
	// Create inserts an edge; a duplicate fails with ALREADY_EXISTS.
	// Create вставляет ребро; дубликат возвращает ALREADY_EXISTS.
	Create(ctx context.Context, follow *domain.Follow) error

	// Delete removes exactly the matching edge or fails with NOT_FOUND.
	// Delete удаляет ровно совпадающее ребро или возвращает NOT_FOUND.
	Delete(ctx context.Context, followerID, followedID int64) error

	// Exists reports whether the edge exists.
	// Exists сообщает, существует ли ребро.
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)

	// ListFollowers returns users following userID.
	// ListFollowers возвращает подписчиков userID.
	ListFollowers(ctx context.Context, userID int64, page Page) ([]domain.User, int64, error)

	// ListFollowing returns users followed by userID.
	// ListFollowing возвращает тех, на кого подписан userID.
	ListFollowing(ctx context.Context, userID int64, page Page) ([]domain.User, int64, error)
}

// AuditLogRepository defines the interface for audit log data access.
// AuditLogRepository определяет интерфейс для доступа к данным аудит-лога.
type AuditLogRepository interface {
	// Create creates a new audit log entry.
	// Create создаёт новую запись аудит-лога.
	Create(ctx context.Context, log *domain.AuditLog) error

	// CreateTx creates a new audit log entry within a transaction.
	// CreateTx создаёт запись аудит-лога в рамках транзакции.
	CreateTx(ctx context.Context, tx *gorm.DB, log *domain.AuditLog) error

	// FindByActor retrieves recent entries recorded for an actor.
	// FindByActor получает последние записи для субъекта.
	FindByActor(ctx context.Context, actorType, actorID string, limit int) ([]domain.AuditLog, error)
}

// Transaction provides database transaction support.
// Transaction обеспечивает поддержку транзакций базы данных.
type Transaction interface {
	// WithTransaction executes a function within a transaction.
	// WithTransaction выполняет функцию в рамках транзакции.
	// Automatically commits on success or rolls back on error.
	// Автоматически фиксирует при успехе или откатывает при ошибке.
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
