package service

import (
	"context"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/port"
)

// DefaultAdmin holds the bootstrap administrator credentials.
// DefaultAdmin содержит учётные данные начального администратора.
type DefaultAdmin struct {
	Username string
	Email    string
	Password string
}

// PolicyStore is the part of AuthorizationService the seeder needs.
// PolicyStore - часть AuthorizationService, нужная seeder'у.
type PolicyStore interface {
	EnsurePolicies(ctx context.Context, policies [][]string) (int, error)
}

// Seeder handles startup seeding operations for initial data setup.
// Seeder управляет начальным заполнением данных при запуске.
//
// Creates the role policies and the default administrator on first run.
// Создаёт политики ролей и администратора по умолчанию при первом запуске.
type Seeder struct {
	policies PolicyStore           // Policy store / Хранилище политик
	admins   port.AdminRepository  // Admin lookups / Поиск администраторов
	adminReg port.AdminAuthService // Admin registration / Регистрация администраторов
	admin    DefaultAdmin          // Bootstrap credentials / Начальные учётные данные
	logger   *logger.Logger        // Logger instance / Экземпляр логгера
}

// NewSeeder creates a new Seeder instance.
// NewSeeder создаёт новый экземпляр Seeder.
func NewSeeder(
	policies PolicyStore,
	admins port.AdminRepository,
	adminReg port.AdminAuthService,
	admin DefaultAdmin,
	log *logger.Logger,
) *Seeder {
	return &Seeder{
		policies: policies,
		admins:   admins,
		adminReg: adminReg,
		admin:    admin,
		logger:   log.WithComponent("seeder"),
	}
}

// SeedAll runs all seeding operations in order.
// SeedAll запускает все операции заполнения по порядку.
//
// Order: 1) role policies, 2) default admin.
// Порядок: 1) политики ролей, 2) администратор по умолчанию.
func (s *Seeder) SeedAll(ctx context.Context) error {
	s.logger.Info("starting seeding")

	if err := s.SeedPolicies(ctx); err != nil {
		return err
	}
	if err := s.SeedDefaultAdmin(ctx); err != nil {
		return err
	}

	s.logger.Info("seeding completed")
	return nil
}

// SeedPolicies adds the role policies that are missing.
// SeedPolicies добавляет недостающие политики ролей.
func (s *Seeder) SeedPolicies(ctx context.Context) error {
	added, err := s.policies.EnsurePolicies(ctx, DefaultPolicies)
	if err != nil {
		s.logger.Error("failed to seed policies", "error", err)
		return err
	}
	s.logger.Info("policies seeded", "added", added)
	return nil
}

// SeedDefaultAdmin registers the configured administrator unless one with
// that username exists. It goes through AdminAuthService.Register like any
// client request would.
// SeedDefaultAdmin регистрирует настроенного администратора, если админа с
// таким именем ещё нет. Используется AdminAuthService.Register, как и для
// запроса клиента.
func (s *Seeder) SeedDefaultAdmin(ctx context.Context) error {
	exists, err := s.admins.ExistsByUsername(ctx, s.admin.Username)
	if err != nil {
		s.logger.Error("failed to check for existing admin", "error", err)
		return err
	}
	if exists {
		s.logger.Info("default admin already exists, skipping", "username", s.admin.Username)
		return nil
	}

	_, err = s.adminReg.Register(ctx, &domain.RegisterAdminRequest{
		Email:    s.admin.Email,
		Password: s.admin.Password,
		Username: s.admin.Username,
	})
	switch {
	case err == nil:
		s.logger.Info("default admin created", "username", s.admin.Username)
		return nil
	case apperror.HasCode(err, apperror.CodeAlreadyExists):
		// Another replica won the race.
		// Другая реплика успела первой.
		s.logger.Info("default admin created concurrently, skipping", "username", s.admin.Username)
		return nil
	default:
		s.logger.Error("failed to create default admin", "error", err)
		return err
	}
}
