package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/circuitbreaker"
	"github.com/Twit-Snap/users-service/internal/port"
)

// CircuitBreakerConfig holds configuration for repository circuit breakers.
// CircuitBreakerConfig содержит конфигурацию circuit breaker для репозиториев.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of failures before opening the circuit.
	// MaxFailures - количество сбоев до размыкания цепи.
	MaxFailures int

	// Timeout is the duration to wait before testing if the database recovered.
	// Timeout - время ожидания перед проверкой восстановления базы данных.
	Timeout time.Duration

	// OnStateChange is called when circuit breaker state changes.
	// OnStateChange вызывается при изменении состояния circuit breaker.
	OnStateChange func(name string, from, to circuitbreaker.State)
}

// DefaultCircuitBreakerConfig returns default circuit breaker configuration for PostgreSQL.
// DefaultCircuitBreakerConfig возвращает конфигурацию circuit breaker по умолчанию для PostgreSQL.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxFailures: 3,
		Timeout:     30 * time.Second,
	}
}

func (c CircuitBreakerConfig) breaker(name string, maxFailures int) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		Name:                name,
		MaxFailures:         maxFailures,
		Timeout:             c.Timeout,
		MaxHalfOpenRequests: 1,
		OnStateChange:       c.OnStateChange,
	})
}

// page carries a list result through ExecuteWithResult.
// page переносит результат списка через ExecuteWithResult.
type page struct {
	users []domain.User
	total int64
}

// ==================== User Repository with Circuit Breaker ====================

// UserRepositoryWithCB wraps UserRepository with circuit breaker protection.
// UserRepositoryWithCB оборачивает UserRepository с защитой circuit breaker.
//
// Reads and writes trip independently so a failing write path does not
// take logins down with it.
// Чтение и запись размыкаются независимо, чтобы сбой записи не ломал вход.
type UserRepositoryWithCB struct {
	repo    *UserRepository
	cbRead  *circuitbreaker.CircuitBreaker
	cbWrite *circuitbreaker.CircuitBreaker
}

// NewUserRepositoryWithCB creates a new UserRepository with circuit breaker.
// NewUserRepositoryWithCB создаёт новый UserRepository с circuit breaker.
func NewUserRepositoryWithCB(repo *UserRepository, config CircuitBreakerConfig) *UserRepositoryWithCB {
	return &UserRepositoryWithCB{
		repo:    repo,
		cbRead:  config.breaker("postgres-user-read", config.MaxFailures),
		cbWrite: config.breaker("postgres-user-write", config.MaxFailures),
	}
}

// Create creates a new user with circuit breaker protection.
// Create создаёт нового пользователя с защитой circuit breaker.
func (r *UserRepositoryWithCB) Create(ctx context.Context, user *domain.User) error {
	return r.cbWrite.Execute(ctx, func(ctx context.Context) error {
		return r.repo.Create(ctx, user)
	})
}

// FindByID retrieves a user by ID with circuit breaker protection.
// FindByID получает пользователя по ID с защитой circuit breaker.
func (r *UserRepositoryWithCB) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return circuitbreaker.ExecuteWithResult(ctx, r.cbRead, func(ctx context.Context) (*domain.User, error) {
		return r.repo.FindByID(ctx, id)
	})
}

// FindByUsername retrieves a user by username with circuit breaker protection.
// FindByUsername получает пользователя по имени с защитой circuit breaker.
func (r *UserRepositoryWithCB) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return circuitbreaker.ExecuteWithResult(ctx, r.cbRead, func(ctx context.Context) (*domain.User, error) {
		return r.repo.FindByUsername(ctx, username)
	})
}

// FindByEmailOrUsername retrieves a user by identifier with circuit breaker protection.
// FindByEmailOrUsername получает пользователя по идентификатору с защитой circuit breaker.
func (r *UserRepositoryWithCB) FindByEmailOrUsername(ctx context.Context, identifier string) (*domain.User, error) {
	return circuitbreaker.ExecuteWithResult(ctx, r.cbRead, func(ctx context.Context) (*domain.User, error) {
		return r.repo.FindByEmailOrUsername(ctx, identifier)
	})
}

// FindBySSOUID retrieves a user by provider subject with circuit breaker protection.
// FindBySSOUID получает пользователя по субъекту провайдера с защитой circuit breaker.
func (r *UserRepositoryWithCB) FindBySSOUID(ctx context.Context, uid string) (*domain.User, error) {
	return circuitbreaker.ExecuteWithResult(ctx, r.cbRead, func(ctx context.Context) (*domain.User, error) {
		return r.repo.FindBySSOUID(ctx, uid)
	})
}

// Update updates a user with circuit breaker protection.
// Update обновляет пользователя с защитой circuit breaker.
func (r *UserRepositoryWithCB) Update(ctx context.Context, user *domain.User, columns []string) error {
	return r.cbWrite.Execute(ctx, func(ctx context.Context) error {
		return r.repo.Update(ctx, user, columns)
	})
}

// SetBlockedTx runs inside a transaction already guarded by TransactionManagerWithCB.
// SetBlockedTx выполняется в транзакции, уже защищённой TransactionManagerWithCB.
func (r *UserRepositoryWithCB) SetBlockedTx(ctx context.Context, tx *gorm.DB, id int64, blocked bool) error {
	return r.repo.SetBlockedTx(ctx, tx, id, blocked)
}

// List retrieves users with filtering and circuit breaker protection.
// List получает пользователей с фильтрацией и защитой circuit breaker.
func (r *UserRepositoryWithCB) List(ctx context.Context, filter port.UserFilter) ([]domain.User, int64, error) {
	res, err := circuitbreaker.ExecuteWithResult(ctx, r.cbRead, func(ctx context.Context) (page, error) {
		users, total, err := r.repo.List(ctx, filter)
		return page{users: users, total: total}, err
	})
	if err != nil {
		return nil, 0, err
	}
	return res.users, res.total, nil
}

// ReadCircuitBreakerState returns the current state of the read circuit breaker.
// ReadCircuitBreakerState возвращает текущее состояние read circuit breaker.
func (r *UserRepositoryWithCB) ReadCircuitBreakerState() circuitbreaker.State {
	return r.cbRead.State()
}

// WriteCircuitBreakerState returns the current state of the write circuit breaker.
// WriteCircuitBreakerState возвращает текущее состояние write circuit breaker.
func (r *UserRepositoryWithCB) WriteCircuitBreakerState() circuitbreaker.State {
	return r.cbWrite.State()
}

var _ port.UserRepository = (*UserRepositoryWithCB)(nil)

// ==================== Admin Repository with Circuit Breaker ====================

// AdminRepositoryWithCB wraps AdminRepository with circuit breaker protection.
// AdminRepositoryWithCB оборачивает AdminRepository с защитой circuit breaker.
type AdminRepositoryWithCB struct {
	repo *AdminRepository
	cb   *circuitbreaker.CircuitBreaker
}

// NewAdminRepositoryWithCB creates a new AdminRepository with circuit breaker.
// NewAdminRepositoryWithCB создаёт новый AdminRepository с circuit breaker.
func NewAdminRepositoryWithCB(repo *AdminRepository, config CircuitBreakerConfig) *AdminRepositoryWithCB {
	return &AdminRepositoryWithCB{repo: repo, cb: config.breaker("postgres-admin", config.MaxFailures)}
}

func (r *AdminRepositoryWithCB) Create(ctx context.Context, admin *domain.Admin) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error {
		return r.repo.Create(ctx, admin)
	})
}

func (r *AdminRepositoryWithCB) FindByEmailOrUsername(ctx context.Context, identifier string) (*domain.Admin, error) {
	return circuitbreaker.ExecuteWithResult(ctx, r.cb, func(ctx context.Context) (*domain.Admin, error) {
		return r.repo.FindByEmailOrUsername(ctx, identifier)
	})
}

func (r *AdminRepositoryWithCB) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return circuitbreaker.ExecuteWithResult(ctx, r.cb, func(ctx context.Context) (bool, error) {
		return r.repo.ExistsByUsername(ctx, username)
	})
}

var _ port.AdminRepository = (*AdminRepositoryWithCB)(nil)

// ==================== Follow Repository with Circuit Breaker ====================

// FollowRepositoryWithCB wraps FollowRepository with circuit breaker protection.
// FollowRepositoryWithCB оборачивает FollowRepository с защитой circuit breaker.
type FollowRepositoryWithCB struct {
	repo *FollowRepository
	cb   *circuitbreaker.CircuitBreaker
}

// NewFollowRepositoryWithCB creates a new FollowRepository with circuit breaker.
// NewFollowRepositoryWithCB создаёт новый FollowRepository с circuit breaker.
func NewFollowRepositoryWithCB(repo *FollowRepository, config CircuitBreakerConfig) *FollowRepositoryWithCB {
	return &FollowRepositoryWithCB{repo: repo, cb: config.breaker("postgres-follow", config.MaxFailures)}
}

func (r *FollowRepositoryWithCB) Create(ctx context.Context, follow *domain.Follow) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error {
		return r.repo.Create(ctx, follow)
	})
}

func (r *FollowRepositoryWithCB) Delete(ctx context.Context, followerID, followedID int64) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error {
		return r.repo.Delete(ctx, followerID, followedID)
	})
}

func (r *FollowRepositoryWithCB) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	return circuitbreaker.ExecuteWithResult(ctx, r.cb, func(ctx context.Context) (bool, error) {
		return r.repo.Exists(ctx, followerID, followedID)
	})
}

func (r *FollowRepositoryWithCB) ListFollowers(ctx context.Context, userID int64, p port.Page) ([]domain.User, int64, error) {
	res, err := circuitbreaker.ExecuteWithResult(ctx, r.cb, func(ctx context.Context) (page, error) {
		users, total, err := r.repo.ListFollowers(ctx, userID, p)
		return page{users: users, total: total}, err
	})
	if err != nil {
		return nil, 0, err
	}
	return res.users, res.total, nil
}

func (r *FollowRepositoryWithCB) ListFollowing(ctx context.Context, userID int64, p port.Page) ([]domain.User, int64, error) {
	res, err := circuitbreaker.ExecuteWithResult(ctx, r.cb, func(ctx context.Context) (page, error) {
		users, total, err := r.repo.ListFollowing(ctx, userID, p)
		return page{users: users, total: total}, err
	})
	if err != nil {
		return nil, 0, err
	}
	return res.users, res.total, nil
}

var _ port.FollowRepository = (*FollowRepositoryWithCB)(nil)

// ==================== Audit Log Repository with Circuit Breaker ====================

// AuditLogRepositoryWithCB wraps AuditLogRepository with circuit breaker protection.
// AuditLogRepositoryWithCB оборачивает AuditLogRepository с защитой circuit breaker.
type AuditLogRepositoryWithCB struct {
	repo *AuditLogRepository
	cb   *circuitbreaker.CircuitBreaker
}

// NewAuditLogRepositoryWithCB creates a new AuditLogRepository with circuit breaker.
// NewAuditLogRepositoryWithCB создаёт новый AuditLogRepository с circuit breaker.
// Audit is off the critical path and tolerates twice as many failures.
// Аудит вне критического пути и допускает вдвое больше сбоев.
func NewAuditLogRepositoryWithCB(repo *AuditLogRepository, config CircuitBreakerConfig) *AuditLogRepositoryWithCB {
	return &AuditLogRepositoryWithCB{repo: repo, cb: config.breaker("postgres-audit", config.MaxFailures*2)}
}

func (r *AuditLogRepositoryWithCB) Create(ctx context.Context, log *domain.AuditLog) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error {
		return r.repo.Create(ctx, log)
	})
}

func (r *AuditLogRepositoryWithCB) CreateTx(ctx context.Context, tx *gorm.DB, log *domain.AuditLog) error {
	return r.repo.CreateTx(ctx, tx, log)
}

func (r *AuditLogRepositoryWithCB) FindByActor(ctx context.Context, actorType, actorID string, limit int) ([]domain.AuditLog, error) {
	return circuitbreaker.ExecuteWithResult(ctx, r.cb, func(ctx context.Context) ([]domain.AuditLog, error) {
		return r.repo.FindByActor(ctx, actorType, actorID, limit)
	})
}

var _ port.AuditLogRepository = (*AuditLogRepositoryWithCB)(nil)

// ==================== Transaction Manager with Circuit Breaker ====================

// TransactionManagerWithCB wraps TransactionManager with circuit breaker protection.
// TransactionManagerWithCB оборачивает TransactionManager с защитой circuit breaker.
type TransactionManagerWithCB struct {
	tm *TransactionManager
	cb *circuitbreaker.CircuitBreaker
}

// NewTransactionManagerWithCB creates a new TransactionManager with circuit breaker.
// NewTransactionManagerWithCB создаёт новый TransactionManager с circuit breaker.
func NewTransactionManagerWithCB(tm *TransactionManager, config CircuitBreakerConfig) *TransactionManagerWithCB {
	return &TransactionManagerWithCB{tm: tm, cb: config.breaker("postgres-transaction", config.MaxFailures)}
}

// WithTransaction executes a function within a transaction with circuit breaker protection.
// WithTransaction выполняет функцию в рамках транзакции с защитой circuit breaker.
func (t *TransactionManagerWithCB) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return t.cb.Execute(ctx, func(ctx context.Context) error {
		return t.tm.WithTransaction(ctx, fn)
	})
}

// CircuitBreakerState returns the current state of the circuit breaker.
// CircuitBreakerState возвращает текущее состояние circuit breaker.
func (t *TransactionManagerWithCB) CircuitBreakerState() circuitbreaker.State {
	return t.cb.State()
}

var _ port.Transaction = (*TransactionManagerWithCB)(nil)
