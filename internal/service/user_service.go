package service

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/pkg/validator"
	"github.com/Twit-Snap/users-service/internal/port"
)

// UserService implements port.UserService interface.
// UserService реализует интерфейс port.UserService.
//
// Block and unblock flip the flag and write the audit entry in one transaction.
// Блокировка и разблокировка меняют флаг и пишут запись аудита в одной транзакции.
type UserService struct {
	userRepo port.UserRepository // User repository / Репозиторий пользователей
	tx       port.Transaction    // Transaction manager / Менеджер транзакций
	audit    port.AuditService   // Audit service / Сервис аудита
	logger   *logger.Logger      // Logger instance / Экземпляр логгера
}

// NewUserService creates a new UserService instance.
// NewUserService создаёт новый экземпляр UserService.
func NewUserService(
	userRepo port.UserRepository,
	tx port.Transaction,
	audit port.AuditService,
	log *logger.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		tx:       tx,
		audit:    audit,
		logger:   log.WithComponent("user_service"),
	}
}

// GetUser retrieves a user by id, without the password hash.
// GetUser получает пользователя по id без хэша пароля.
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.StripPassword(), nil
}

// GetByUsername retrieves a user by username, without the password hash.
// GetByUsername получает пользователя по имени без хэша пароля.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user.StripPassword(), nil
}

// ListUsers retrieves users with filtering and pagination.
// ListUsers получает пользователей с фильтрацией и пагинацией.
func (s *UserService) ListUsers(ctx context.Context, filter port.UserFilter) ([]domain.User, int64, error) {
	filter.Normalize()
	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].StripPassword()
	}
	return users, total, nil
}

// UpdateProfile applies the non-nil fields of req to the account.
// UpdateProfile применяет ненулевые поля req к аккаунту.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, req *domain.UpdateProfileRequest) (*domain.User, error) {
	log := s.logger.WithContext(ctx)

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// changed names request fields, columns names what gets written.
	changed := make([]string, 0, 7)
	columns := make([]string, 0, 7)
	if req.Name != nil {
		if validator.IsBlank(*req.Name) {
			return nil, apperror.InvalidField("name", apperror.ReasonRequired, "name must not be empty")
		}
		user.Name = *req.Name
		changed = append(changed, "name")
		columns = append(columns, "name")
	}
	if req.LastName != nil {
		if validator.IsBlank(*req.LastName) {
			return nil, apperror.InvalidField("lastname", apperror.ReasonRequired, "lastname must not be empty")
		}
		user.LastName = *req.LastName
		changed = append(changed, "lastname")
		columns = append(columns, "last_name")
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
		changed = append(changed, "bio")
		columns = append(columns, "bio")
	}
	if req.Birthdate != nil {
		birthdate, ok := validator.ParseBirthdate(*req.Birthdate)
		if !ok {
			return nil, apperror.InvalidField("birthdate", apperror.ReasonInvalidFormat,
				"birthdate must be a past date in YYYY-MM-DD format")
		}
		user.Birthdate = &birthdate
		changed = append(changed, "birthdate")
		columns = append(columns, "birthdate")
	}
	if req.ProfilePhoto != nil {
		if err := checkPhotoURL("profilePhoto", req.ProfilePhoto); err != nil {
			return nil, err
		}
		user.ProfilePhoto = nonBlank(req.ProfilePhoto)
		changed = append(changed, "profilePhoto")
		columns = append(columns, "profile_photo")
	}
	if req.BackgroundPhoto != nil {
		if err := checkPhotoURL("backgroundPhoto", req.BackgroundPhoto); err != nil {
			return nil, err
		}
		user.BackgroundPhoto = nonBlank(req.BackgroundPhoto)
		changed = append(changed, "backgroundPhoto")
		columns = append(columns, "background_photo")
	}
	if req.DeviceToken != nil {
		user.DeviceToken = nonBlank(req.DeviceToken)
		changed = append(changed, "deviceToken")
		columns = append(columns, "device_token")
	}

	if len(changed) == 0 {
		return user.StripPassword(), nil
	}

	if err := s.userRepo.Update(ctx, user, columns); err != nil {
		log.Error("failed to update profile", "user_id", id, "error", err)
		return nil, err
	}

	userID := strconv.FormatInt(id, 10)
	recordAudit(ctx, s.audit, s.logger, port.AuditEntry{
		ActorType:    string(domain.PayloadUser),
		ActorID:      userID,
		Action:       domain.AuditActionProfileUpdate,
		ResourceType: domain.AuditResourceTypeUser,
		ResourceID:   userID,
		Details:      map[string]interface{}{"fields": changed},
	})

	log.Info("profile updated", "user_id", id, "fields", changed)
	return user.StripPassword(), nil
}

// BlockUser blocks a user account; gated requests for it fail from then on.
// BlockUser блокирует учётную запись; защищённые запросы с ней далее отклоняются.
func (s *UserService) BlockUser(ctx context.Context, id int64, actor domain.TokenPayload) error {
	return s.setBlocked(ctx, id, true, actor)
}

// UnblockUser unblocks a previously blocked user account.
// UnblockUser разблокирует ранее заблокированную учётную запись.
func (s *UserService) UnblockUser(ctx context.Context, id int64, actor domain.TokenPayload) error {
	return s.setBlocked(ctx, id, false, actor)
}

func (s *UserService) setBlocked(ctx context.Context, id int64, blocked bool, actor domain.TokenPayload) error {
	log := s.logger.WithContext(ctx)

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	action := domain.AuditActionUserBlock
	if !blocked {
		action = domain.AuditActionUserUnblock
	}

	if user.IsBlocked == blocked {
		if blocked {
			return apperror.BadRequest("user is already blocked")
		}
		return apperror.BadRequest("user is not blocked")
	}

	err = s.tx.WithTransaction(ctx, func(tx *gorm.DB) error {
		if updateErr := s.userRepo.SetBlockedTx(ctx, tx, id, blocked); updateErr != nil {
			return updateErr
		}
		if s.audit == nil {
			return nil
		}
		return s.audit.RecordTx(ctx, tx, port.AuditEntry{
			ActorType:    string(actor.Type),
			ActorID:      actor.Subject(),
			Action:       action,
			ResourceType: domain.AuditResourceTypeUser,
			ResourceID:   strconv.FormatInt(id, 10),
			Details:      map[string]interface{}{"target_username": user.Username},
		})
	})
	if err != nil {
		log.Error("failed to change blocked state", "user_id", id, "blocked", blocked, "error", err)
		return err
	}

	log.Info("blocked state changed", "user_id", id, "blocked", blocked, "by", actor.Subject())
	return nil
}
