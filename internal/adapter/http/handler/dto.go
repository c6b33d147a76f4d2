package handler

import (
	"encoding/json"
	"time"

	"github.com/Twit-Snap/users-service/internal/domain"
)

// UserResponse represents a user in API responses.
// UserResponse представляет пользователя в ответах API.
//
// It never carries the password hash or the device token.
// Не содержит хэш пароля и push-токен.
type UserResponse struct {
	ID              int64   `json:"id"`                        // User ID / ID пользователя
	Username        string  `json:"username"`                  // Username / Имя пользователя
	Email           string  `json:"email"`                     // Email / Электронная почта
	Name            string  `json:"name"`                      // First name / Имя
	LastName        string  `json:"lastname"`                  // Last name / Фамилия
	Birthdate       string  `json:"birthdate,omitempty"`       // YYYY-MM-DD / Дата рождения
	PhoneNumber     *string `json:"phoneNumber,omitempty"`     // Phone / Телефон
	ProfilePhoto    *string `json:"profilePhoto,omitempty"`    // Avatar URL / URL аватара
	BackgroundPhoto *string `json:"backgroundPhoto,omitempty"` // Banner URL / URL обложки
	Bio             string  `json:"bio,omitempty"`             // Biography / Биография
	ProviderID      *string `json:"providerId,omitempty"`      // SSO provider / SSO провайдер
	IsBlocked       bool    `json:"isBlocked"`                 // Blocked status / Статус блокировки
	Verified        bool    `json:"verified"`                  // Verified flag / Флаг верификации
	CreatedAt       string  `json:"createdAt"`                 // Creation timestamp / Время создания
}

func toUserResponse(u *domain.User) UserResponse {
	birthdate := ""
	if u.Birthdate != nil {
		birthdate = u.Birthdate.Format(domain.BirthdateLayout)
	}
	return UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		Name:            u.Name,
		LastName:        u.LastName,
		Birthdate:       birthdate,
		PhoneNumber:     u.PhoneNumber,
		ProfilePhoto:    u.ProfilePhoto,
		BackgroundPhoto: u.BackgroundPhoto,
		Bio:             u.Bio,
		ProviderID:      u.ProviderID,
		IsBlocked:       u.IsBlocked,
		Verified:        u.Verified,
		CreatedAt:       u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

// AdminResponse represents an administrator; the numeric id stays internal.
// AdminResponse представляет администратора; числовой id остаётся внутренним.
type AdminResponse struct {
	Username string `json:"username"` // Username / Имя пользователя
	Email    string `json:"email"`    // Email / Электронная почта
}

// AuthResponse is returned by every user login and registration.
// AuthResponse возвращается при каждом входе и регистрации пользователя.
type AuthResponse struct {
	User  UserResponse `json:"user"`  // Account / Аккаунт
	Token string       `json:"token"` // Signed token / Подписанный токен
}

func toAuthResponse(result *domain.AuthResult) AuthResponse {
	return AuthResponse{User: toUserResponse(result.User), Token: result.Token}
}

// AdminAuthResponse is returned by admin login and registration.
// AdminAuthResponse возвращается при входе и регистрации администратора.
type AdminAuthResponse struct {
	Admin AdminResponse `json:"admin"` // Account / Аккаунт
	Token string        `json:"token"` // Signed token / Подписанный токен
}

// FollowResponse represents a follow edge.
// FollowResponse представляет ребро подписки.
type FollowResponse struct {
	FollowerID int64  `json:"followerId"` // Who follows / Кто подписан
	FollowedID int64  `json:"followedId"` // Who is followed / На кого подписан
	CreatedAt  string `json:"createdAt"`  // Creation timestamp / Время создания
}

// AuditLogResponse represents one audit entry.
// AuditLogResponse представляет одну запись аудита.
type AuditLogResponse struct {
	ActorType    string          `json:"actorType"`
	ActorID      string          `json:"actorId"`
	Action       string          `json:"action"`
	ResourceType string          `json:"resourceType,omitempty"`
	ResourceID   string          `json:"resourceId,omitempty"`
	Details      json.RawMessage `json:"details,omitempty" swaggertype:"object"`
	IPAddress    *string         `json:"ipAddress,omitempty"`
	CreatedAt    string          `json:"createdAt"`
}

func toAuditLogResponses(logs []domain.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, AuditLogResponse{
			ActorType:    l.ActorType,
			ActorID:      l.ActorID,
			Action:       l.Action,
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			Details:      l.Details,
			IPAddress:    l.IPAddress,
			CreatedAt:    l.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

// MessageResponse carries a human readable confirmation.
// MessageResponse содержит читаемое подтверждение.
type MessageResponse struct {
	Message string `json:"message"`
}
