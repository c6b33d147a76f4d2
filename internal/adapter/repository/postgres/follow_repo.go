package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/port"
)

const followsTable = "follows"

// FollowRepository implements port.FollowRepository using PostgreSQL.
// FollowRepository реализует интерфейс port.FollowRepository с использованием PostgreSQL.
//
// The (follower_id, followed_id) primary key makes duplicate edges
// impossible; a check constraint forbids self edges.
// Первичный ключ (follower_id, followed_id) исключает дубликаты рёбер;
// ограничение check запрещает ребро на самого себя.
type FollowRepository struct {
	db *gorm.DB // Database connection / Подключение к базе данных
}

// NewFollowRepository creates a new FollowRepository instance.
// NewFollowRepository создаёт новый экземпляр FollowRepository.
func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Create inserts an edge.
// Create вставляет ребро.
func (r *FollowRepository) Create(ctx context.Context, follow *domain.Follow) error {
	defer observe("insert", followsTable)()

	err := r.db.WithContext(ctx).Create(follow).Error
	switch {
	case err == nil:
		return nil
	case uniqueConflict(err) != nil:
		return uniqueConflict(err)
	case isCheckViolation(err):
		return apperror.InvalidField("username", apperror.ReasonInvalidValue, "users cannot follow themselves")
	case isForeignKeyViolation(err):
		return apperror.NotFound("User", follow.FollowedID)
	default:
		return apperror.Internal("failed to create follow", err)
	}
}

// Delete removes exactly the matching edge.
// Delete удаляет ровно совпадающее ребро.
func (r *FollowRepository) Delete(ctx context.Context, followerID, followedID int64) error {
	defer observe("delete", followsTable)()

	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&domain.Follow{})
	if result.Error != nil {
		return apperror.Internal("failed to delete follow", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("Follow", followedID)
	}
	return nil
}

// Exists reports whether the edge exists.
// Exists сообщает, существует ли ребро.
func (r *FollowRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	defer observe("select", followsTable)()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, apperror.Internal("failed to check follow", err)
	}
	return count > 0, nil
}

// ListFollowers returns users following userID, newest first.
// ListFollowers возвращает подписчиков userID, новые первыми.
func (r *FollowRepository) ListFollowers(ctx context.Context, userID int64, page port.Page) ([]domain.User, int64, error) {
	return r.list(ctx, "JOIN follows ON follows.follower_id = users.id AND follows.followed_id = ?", userID, page)
}

// ListFollowing returns users followed by userID, newest first.
// ListFollowing возвращает тех, на кого подписан userID, новые первыми.
func (r *FollowRepository) ListFollowing(ctx context.Context, userID int64, page port.Page) ([]domain.User, int64, error) {
	return r.list(ctx, "JOIN follows ON follows.followed_id = users.id AND follows.follower_id = ?", userID, page)
}

func (r *FollowRepository) list(ctx context.Context, join string, userID int64, page port.Page) ([]domain.User, int64, error) {
	defer observe("select", followsTable)()

	query := r.db.WithContext(ctx).Model(&domain.User{}).Joins(join, userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Internal("failed to count follows", err)
	}

	var users []domain.User
	err := query.
		Order("follows.created_at DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, apperror.Internal("failed to list follows", err)
	}
	return users, total, nil
}
