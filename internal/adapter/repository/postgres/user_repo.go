package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/port"
)

const usersTable = "users"

// UserRepository implements port.UserRepository using PostgreSQL.
// UserRepository реализует интерфейс port.UserRepository с использованием PostgreSQL.
//
// Uniqueness of username, email, phone number and SSO subject is enforced by
// the database; Create relies on it instead of checking first.
// Уникальность имени, email, телефона и SSO-субъекта обеспечивает база данных;
// Create полагается на неё, а не на предварительную проверку.
type UserRepository struct {
	db *gorm.DB // Database connection / Подключение к базе данных
}

// NewUserRepository creates a new UserRepository instance.
// NewUserRepository создаёт новый экземпляр UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user in the database.
// Create вставляет нового пользователя в базу данных.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	defer observe("insert", usersTable)()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if conflict := uniqueConflict(err); conflict != nil {
			return conflict
		}
		return apperror.Internal("failed to create user", err)
	}
	return nil
}

// FindByID retrieves a user by their unique identifier.
// FindByID получает пользователя по уникальному идентификатору.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.first(ctx, id, "id = ?", id)
}

// FindByUsername retrieves a user by exact username.
// FindByUsername получает пользователя по точному имени.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.first(ctx, username, "username = ?", username)
}

// FindByEmailOrUsername retrieves a user whose email or username equals identifier.
// FindByEmailOrUsername получает пользователя, у которого email или имя равно identifier.
func (r *UserRepository) FindByEmailOrUsername(ctx context.Context, identifier string) (*domain.User, error) {
	return r.first(ctx, identifier, "email = ? OR username = ?", identifier, identifier)
}

// FindBySSOUID retrieves the user linked to a provider subject.
// FindBySSOUID получает пользователя, связанного с субъектом провайдера.
func (r *UserRepository) FindBySSOUID(ctx context.Context, uid string) (*domain.User, error) {
	return r.first(ctx, uid, "sso_uid = ?", uid)
}

func (r *UserRepository) first(ctx context.Context, key interface{}, query string, args ...interface{}) (*domain.User, error) {
	defer observe("select", usersTable)()

	var user domain.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User", key)
		}
		return nil, apperror.Internal("failed to find user", err)
	}
	return &user, nil
}

// Update writes the listed columns of user and bumps updated_at. Columns
// not listed, such as is_blocked, keep whatever the row holds now.
// Update записывает перечисленные колонки user и обновляет updated_at.
// Остальные колонки, например is_blocked, сохраняют текущее значение строки.
func (r *UserRepository) Update(ctx context.Context, user *domain.User, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	defer observe("update", usersTable)()

	user.UpdatedAt = time.Now()
	selected := append(append(make([]string, 0, len(columns)+1), columns...), "updated_at")

	result := r.db.WithContext(ctx).
		Model(user).
		Select(selected).
		Updates(user)
	if result.Error != nil {
		if conflict := uniqueConflict(result.Error); conflict != nil {
			return conflict
		}
		return apperror.Internal("failed to update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("User", user.ID)
	}
	return nil
}

// SetBlockedTx flips the blocked flag within an existing transaction.
// SetBlockedTx меняет флаг блокировки в рамках существующей транзакции.
func (r *UserRepository) SetBlockedTx(ctx context.Context, tx *gorm.DB, id int64, blocked bool) error {
	defer observe("update", usersTable)()

	result := tx.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("is_blocked", blocked)
	if result.Error != nil {
		return apperror.Internal("failed to update blocked state", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("User", id)
	}
	return nil
}

// List retrieves users with filtering and pagination.
// List получает пользователей с фильтрацией и пагинацией.
// Returns: users slice, total count, error.
// Возвращает: срез пользователей, общее количество, ошибку.
func (r *UserRepository) List(ctx context.Context, filter port.UserFilter) ([]domain.User, int64, error) {
	defer observe("select", usersTable)()

	var users []domain.User
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.User{})

	// Apply status filter / Применяем фильтр по статусу
	switch filter.Status {
	case "active":
		query = query.Where("is_blocked = ?", false)
	case "blocked":
		query = query.Where("is_blocked = ?", true)
	}

	// Prefix search on username, name or last name.
	// Поиск по префиксу имени пользователя, имени или фамилии.
	if search := strings.TrimSpace(filter.Search); search != "" {
		prefix := escapeLike(search) + "%"
		query = query.Where("username ILIKE ? OR name ILIKE ? OR last_name ILIKE ?", prefix, prefix, prefix)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Internal("failed to count users", err)
	}

	page := port.Page{Page: filter.Page, PageSize: filter.PageSize}
	err := query.
		Order("username ASC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, apperror.Internal("failed to list users", err)
	}

	return users, total, nil
}

// escapeLike escapes LIKE wildcards in user input.
// escapeLike экранирует спецсимволы LIKE во вводе пользователя.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
