package service

import (
	"context"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/pkg/metrics"
	"github.com/Twit-Snap/users-service/internal/pkg/telemetry"
	"github.com/Twit-Snap/users-service/internal/port"
)

// Authorization cache TTL constant.
// Константа TTL кэша авторизации.
const (
	authzCacheTTL = 5 * time.Minute // 5 minutes / 5 минут
)

// Resources and actions guarded by route permissions.
// Ресурсы и действия, защищённые правами маршрутов.
const (
	ResourceProfile = "profile" // Own profile / Собственный профиль
	ResourceUsers   = "users"   // Other accounts / Другие аккаунты
	ResourceFollows = "follows" // Follow graph / Граф подписок
	ResourceAdmins  = "admins"  // Administrator accounts / Аккаунты администраторов
	ResourceAudit   = "audit"   // Audit trail / Журнал аудита

	ActionRead  = "read"
	ActionWrite = "write"
	ActionBlock = "block"
)

// rbacModel is a plain sub/obj/act model; subjects are "role:<payload type>".
// rbacModel - простая модель sub/obj/act; субъекты имеют вид "role:<тип>".
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// DefaultPolicies are the permissions of the two roles.
// DefaultPolicies - права двух ролей.
var DefaultPolicies = [][]string{
	{RoleSubject(domain.PayloadUser), ResourceProfile, ActionRead},
	{RoleSubject(domain.PayloadUser), ResourceProfile, ActionWrite},
	{RoleSubject(domain.PayloadUser), ResourceUsers, ActionRead},
	{RoleSubject(domain.PayloadUser), ResourceFollows, ActionRead},
	{RoleSubject(domain.PayloadUser), ResourceFollows, ActionWrite},

	{RoleSubject(domain.PayloadAdmin), ResourceUsers, ActionRead},
	{RoleSubject(domain.PayloadAdmin), ResourceUsers, ActionBlock},
	{RoleSubject(domain.PayloadAdmin), ResourceFollows, ActionRead},
	{RoleSubject(domain.PayloadAdmin), ResourceAdmins, ActionWrite},
	{RoleSubject(domain.PayloadAdmin), ResourceAudit, ActionRead},
}

// RoleSubject returns the casbin subject of a payload type.
// RoleSubject возвращает субъект casbin для типа полезной нагрузки.
func RoleSubject(t domain.PayloadType) string {
	return "role:" + string(t)
}

// NewEnforcer builds a casbin enforcer over the built-in model. A nil db
// keeps policies in memory only.
// NewEnforcer создаёт casbin enforcer на встроенной модели. При nil db
// политики хранятся только в памяти.
func NewEnforcer(db *gorm.DB) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, apperror.Internal("failed to parse casbin model", err)
	}

	if db == nil {
		enforcer, err := casbin.NewEnforcer(m)
		if err != nil {
			return nil, apperror.Internal("failed to create casbin enforcer", err)
		}
		return enforcer, nil
	}

	// Policies live in the casbin_rule table managed by the adapter.
	// Политики хранятся в таблице casbin_rule, которой управляет адаптер.
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, apperror.Internal("failed to create casbin adapter", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, apperror.Internal("failed to create casbin enforcer", err)
	}
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, apperror.Internal("failed to load policies", err)
	}
	enforcer.EnableAutoSave(true)
	return enforcer, nil
}

// AuthorizationService implements port.AuthorizationService with a decision cache.
// AuthorizationService реализует port.AuthorizationService с кэшем решений.
//
// Decisions are looked up in Redis first and fall back to the casbin enforcer.
// Решения сначала ищутся в Redis, затем проверяются casbin enforcer'ом.
type AuthorizationService struct {
	enforcer *casbin.Enforcer        // Casbin enforcer / Casbin enforcer
	cache    port.AuthorizationCache // Decision cache, optional / Кэш решений, необязательно
	logger   *logger.Logger          // Logger instance / Экземпляр логгера
}

// NewAuthorizationService creates a new AuthorizationService instance.
// NewAuthorizationService создаёт новый экземпляр AuthorizationService.
func NewAuthorizationService(enforcer *casbin.Enforcer, cache port.AuthorizationCache, log *logger.Logger) *AuthorizationService {
	return &AuthorizationService{
		enforcer: enforcer,
		cache:    cache,
		logger:   log.WithComponent("authorization_service"),
	}
}

// CheckAccess reports whether the payload's role may perform action on resource.
// CheckAccess сообщает, может ли роль полезной нагрузки выполнить действие над ресурсом.
func (s *AuthorizationService) CheckAccess(ctx context.Context, payload domain.TokenPayload, resource, action string) (allowed bool, err error) {
	ctx, span := telemetry.StartSpan(ctx, "AuthorizationService.CheckAccess",
		telemetry.AttrPayloadType.String(string(payload.Type)),
		telemetry.AttrResource.String(resource),
		telemetry.AttrAction.String(action),
	)
	defer func() {
		span.SetAttributes(telemetry.AttrAllowed.Bool(allowed))
		telemetry.EndSpan(span, err)
	}()

	log := s.logger.WithContext(ctx)
	role := string(payload.Type)

	if s.cache != nil {
		cached, found, cacheErr := s.cache.GetDecision(ctx, role, resource, action)
		switch {
		case cacheErr != nil:
			log.Warn("authz cache lookup failed", "error", cacheErr)
		case found:
			metrics.RecordCacheHit("authz", true)
			metrics.RecordAuthzDecision(cached, resource, action)
			log.LogAuthzDecision(role, resource, action, cached)
			return cached, nil
		default:
			metrics.RecordCacheHit("authz", false)
		}
	}

	allowed, err = s.enforcer.Enforce(RoleSubject(payload.Type), resource, action)
	if err != nil {
		log.Error("casbin enforce failed", "role", role, "resource", resource, "action", action, "error", err)
		return false, apperror.Internal("authorization check failed", err)
	}

	if s.cache != nil {
		if cacheErr := s.cache.SetDecision(ctx, role, resource, action, allowed, authzCacheTTL); cacheErr != nil {
			log.Warn("failed to cache authz decision", "error", cacheErr)
		}
	}

	metrics.RecordAuthzDecision(allowed, resource, action)
	log.LogAuthzDecision(role, resource, action, allowed)
	return allowed, nil
}

// EnsurePolicies adds the policies that are missing and returns how many were added.
// EnsurePolicies добавляет отсутствующие политики и возвращает их количество.
func (s *AuthorizationService) EnsurePolicies(ctx context.Context, policies [][]string) (int, error) {
	log := s.logger.WithContext(ctx)

	added := 0
	for _, policy := range policies {
		params := make([]interface{}, len(policy))
		for i, v := range policy {
			params[i] = v
		}

		has, err := s.enforcer.HasPolicy(params...)
		if err != nil {
			return added, apperror.Internal("failed to check policy", err)
		}
		if has {
			continue
		}
		if _, err := s.enforcer.AddPolicy(params...); err != nil {
			log.Error("failed to add policy", "policy", policy, "error", err)
			return added, apperror.Internal("failed to add policy", err)
		}
		added++
	}

	if added > 0 && s.cache != nil {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			log.Warn("failed to invalidate authz cache", "error", err)
		}
	}
	return added, nil
}

// ReloadPolicies reloads RBAC policies from the database and drops cached decisions.
// ReloadPolicies перезагружает политики RBAC из базы данных и сбрасывает кэш решений.
func (s *AuthorizationService) ReloadPolicies(ctx context.Context) error {
	log := s.logger.WithContext(ctx)

	// Without an adapter the in-memory policies are the source of truth.
	// Без адаптера источником истины являются политики в памяти.
	if s.enforcer.GetAdapter() == nil {
		return nil
	}

	if err := s.enforcer.LoadPolicy(); err != nil {
		log.Error("failed to reload policies", "error", err)
		return apperror.Internal("failed to reload policies", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			log.Error("failed to invalidate authz cache", "error", err)
		}
	}

	log.Info("policies reloaded")
	return nil
}
