package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/port"
)

// MockUserRepository is a mock implementation of port.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmailOrUsername(ctx context.Context, identifier string) (*domain.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindBySSOUID(ctx context.Context, uid string) (*domain.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User, columns []string) error {
	args := m.Called(ctx, user, columns)
	return args.Error(0)
}

func (m *MockUserRepository) SetBlockedTx(ctx context.Context, tx *gorm.DB, id int64, blocked bool) error {
	args := m.Called(ctx, tx, id, blocked)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, filter port.UserFilter) ([]domain.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

// MockAdminRepository is a mock implementation of port.AdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) FindByEmailOrUsername(ctx context.Context, identifier string) (*domain.Admin, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

func (m *MockAdminRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// MockFollowRepository is a mock implementation of port.FollowRepository
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, follow *domain.Follow) error {
	args := m.Called(ctx, follow)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(ctx context.Context, followerID, followedID int64) error {
	args := m.Called(ctx, followerID, followedID)
	return args.Error(0)
}

func (m *MockFollowRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) ListFollowers(ctx context.Context, userID int64, page port.Page) ([]domain.User, int64, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockFollowRepository) ListFollowing(ctx context.Context, userID int64, page port.Page) ([]domain.User, int64, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

// MockAuditLogRepository is a mock implementation of port.AuditLogRepository
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) CreateTx(ctx context.Context, tx *gorm.DB, log *domain.AuditLog) error {
	args := m.Called(ctx, tx, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) FindByActor(ctx context.Context, actorType, actorID string, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, actorType, actorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

// MockAuditService is a mock implementation of port.AuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, entry port.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditService) RecordTx(ctx context.Context, tx *gorm.DB, entry port.AuditEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockAuditService) History(ctx context.Context, actorType, actorID string, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, actorType, actorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

// MockRateLimitCache is a mock implementation of port.RateLimitCache
type MockRateLimitCache struct {
	mock.Mock
}

func (m *MockRateLimitCache) Increment(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	args := m.Called(ctx, key, expiration)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRateLimitCache) GetCount(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRateLimitCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *MockRateLimitCache) Reset(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockAuthorizationCache is a mock implementation of port.AuthorizationCache
type MockAuthorizationCache struct {
	mock.Mock
}

func (m *MockAuthorizationCache) GetDecision(ctx context.Context, role, resource, action string) (allowed, found bool, err error) {
	args := m.Called(ctx, role, resource, action)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *MockAuthorizationCache) SetDecision(ctx context.Context, role, resource, action string, allowed bool, ttl time.Duration) error {
	args := m.Called(ctx, role, resource, action, allowed, ttl)
	return args.Error(0)
}

func (m *MockAuthorizationCache) InvalidateAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockPasswordHasher is a mock implementation of port.PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(plaintext, digest string) bool {
	args := m.Called(plaintext, digest)
	return args.Bool(0)
}

// MockIdentityVerifier is a mock implementation of port.IdentityVerifier
type MockIdentityVerifier struct {
	mock.Mock
}

func (m *MockIdentityVerifier) VerifyAssertion(ctx context.Context, rawToken string) (*port.SSOClaims, error) {
	args := m.Called(ctx, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.SSOClaims), args.Error(1)
}

// MockAdminAuthService is a mock implementation of port.AdminAuthService
type MockAdminAuthService struct {
	mock.Mock
}

func (m *MockAdminAuthService) Register(ctx context.Context, req *domain.RegisterAdminRequest) (*domain.AdminAuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminAuthResult), args.Error(1)
}

func (m *MockAdminAuthService) Login(ctx context.Context, emailOrUsername, password string) (*domain.AdminAuthResult, error) {
	args := m.Called(ctx, emailOrUsername, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminAuthResult), args.Error(1)
}

// MockPolicyStore is a mock implementation of service.PolicyStore
type MockPolicyStore struct {
	mock.Mock
}

func (m *MockPolicyStore) EnsurePolicies(ctx context.Context, policies [][]string) (int, error) {
	args := m.Called(ctx, policies)
	return args.Int(0), args.Error(1)
}

// fakeTransaction runs the callback directly with a nil *gorm.DB.
type fakeTransaction struct {
	calls int
}

func (f *fakeTransaction) WithTransaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	f.calls++
	return fn(nil)
}
