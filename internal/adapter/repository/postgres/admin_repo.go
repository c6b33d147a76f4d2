package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
)

const adminsTable = "admins"

// AdminRepository implements port.AdminRepository using PostgreSQL.
// AdminRepository реализует интерфейс port.AdminRepository с использованием PostgreSQL.
type AdminRepository struct {
	db *gorm.DB // Database connection / Подключение к базе данных
}

// NewAdminRepository creates a new AdminRepository instance.
// NewAdminRepository создаёт новый экземпляр AdminRepository.
func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create inserts a new administrator.
// Create вставляет нового администратора.
func (r *AdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	defer observe("insert", adminsTable)()

	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		if conflict := uniqueConflict(err); conflict != nil {
			return conflict
		}
		return apperror.Internal("failed to create admin", err)
	}
	return nil
}

// FindByEmailOrUsername retrieves an admin whose email or username equals identifier.
// FindByEmailOrUsername получает админа, у которого email или имя равно identifier.
func (r *AdminRepository) FindByEmailOrUsername(ctx context.Context, identifier string) (*domain.Admin, error) {
	defer observe("select", adminsTable)()

	var admin domain.Admin
	err := r.db.WithContext(ctx).
		Where("email = ? OR username = ?", identifier, identifier).
		First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Admin", identifier)
		}
		return nil, apperror.Internal("failed to find admin", err)
	}
	return &admin, nil
}

// ExistsByUsername reports whether an admin with this username exists.
// ExistsByUsername сообщает, существует ли админ с таким именем.
func (r *AdminRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	defer observe("select", adminsTable)()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Admin{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, apperror.Internal("failed to check admin existence", err)
	}
	return count > 0, nil
}
