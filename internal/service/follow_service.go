package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/port"
)

// FollowService implements port.FollowService interface.
// FollowService реализует интерфейс port.FollowService.
type FollowService struct {
	follows port.FollowRepository
	users   port.UserRepository
	audit   port.AuditService
	logger  *logger.Logger
	now     func() time.Time
}

// NewFollowService creates a new FollowService instance.
// NewFollowService создаёт новый экземпляр FollowService.
func NewFollowService(
	follows port.FollowRepository,
	users port.UserRepository,
	audit port.AuditService,
	log *logger.Logger,
) *FollowService {
	return &FollowService{
		follows: follows,
		users:   users,
		audit:   audit,
		logger:  log.WithComponent("follow_service"),
		now:     time.Now,
	}
}

// Follow adds an edge from the caller to the named user.
// Follow добавляет ребро от вызывающего к указанному пользователю.
//
// Self-follows fail validation before any lookup; an unknown target fails
// with NOT_FOUND; an existing edge fails with ALREADY_EXISTS.
// Подписка на себя отклоняется до поиска; неизвестная цель даёт NOT_FOUND;
// существующее ребро даёт ALREADY_EXISTS.
func (s *FollowService) Follow(ctx context.Context, follower domain.TokenPayload, followedUsername string) (*domain.Follow, error) {
	log := s.logger.WithContext(ctx)

	if isSelf(follower, followedUsername) {
		return nil, apperror.InvalidField("username", apperror.ReasonInvalidValue, "users cannot follow themselves")
	}

	followed, err := s.users.FindByUsername(ctx, followedUsername)
	if err != nil {
		return nil, err
	}
	if followed.ID == follower.UserID {
		return nil, apperror.InvalidField("username", apperror.ReasonInvalidValue, "users cannot follow themselves")
	}

	follow := &domain.Follow{
		FollowerID: follower.UserID,
		FollowedID: followed.ID,
		CreatedAt:  s.now(),
	}
	if err := s.follows.Create(ctx, follow); err != nil {
		log.Debug("follow rejected", "follower_id", follower.UserID, "followed_id", followed.ID, "error", err)
		return nil, err
	}

	recordAudit(ctx, s.audit, s.logger, port.AuditEntry{
		ActorType:    string(follower.Type),
		ActorID:      follower.Subject(),
		Action:       domain.AuditActionFollowCreate,
		ResourceType: domain.AuditResourceTypeFollow,
		ResourceID:   strconv.FormatInt(followed.ID, 10),
	})

	log.Info("follow created", "follower_id", follower.UserID, "followed_id", followed.ID)
	return follow, nil
}

// Unfollow removes the edge from the caller to the named user.
// Unfollow удаляет ребро от вызывающего к указанному пользователю.
func (s *FollowService) Unfollow(ctx context.Context, follower domain.TokenPayload, followedUsername string) error {
	log := s.logger.WithContext(ctx)

	if isSelf(follower, followedUsername) {
		return apperror.InvalidField("username", apperror.ReasonInvalidValue, "users cannot unfollow themselves")
	}

	followed, err := s.users.FindByUsername(ctx, followedUsername)
	if err != nil {
		return err
	}

	if err := s.follows.Delete(ctx, follower.UserID, followed.ID); err != nil {
		return err
	}

	recordAudit(ctx, s.audit, s.logger, port.AuditEntry{
		ActorType:    string(follower.Type),
		ActorID:      follower.Subject(),
		Action:       domain.AuditActionFollowDelete,
		ResourceType: domain.AuditResourceTypeFollow,
		ResourceID:   strconv.FormatInt(followed.ID, 10),
	})

	log.Info("follow removed", "follower_id", follower.UserID, "followed_id", followed.ID)
	return nil
}

// ListFollowers returns a page of the named user's followers.
// ListFollowers возвращает страницу подписчиков пользователя.
func (s *FollowService) ListFollowers(ctx context.Context, username string, page port.Page) ([]domain.User, int64, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, 0, err
	}
	return stripAll(s.follows.ListFollowers(ctx, user.ID, page))
}

// ListFollowing returns a page of users the named user follows.
// ListFollowing возвращает страницу пользователей, на которых подписан пользователь.
func (s *FollowService) ListFollowing(ctx context.Context, username string, page port.Page) ([]domain.User, int64, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, 0, err
	}
	return stripAll(s.follows.ListFollowing(ctx, user.ID, page))
}

func isSelf(follower domain.TokenPayload, username string) bool {
	return follower.Username != "" && follower.Username == strings.TrimSpace(username)
}

func stripAll(users []domain.User, total int64, err error) ([]domain.User, int64, error) {
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].StripPassword()
	}
	return users, total, nil
}
