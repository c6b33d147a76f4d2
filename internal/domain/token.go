package domain

import (
	"fmt"
	"strconv"
)

// PayloadType discriminates the token payload union.
// PayloadType различает варианты полезной нагрузки токена.
type PayloadType string

// Token payload variants.
// Варианты полезной нагрузки токена.
const (
	PayloadUser          PayloadType = "user"          // End user / Конечный пользователь
	PayloadAdmin         PayloadType = "admin"         // Administrator / Администратор
	PayloadResetPassword PayloadType = "resetPassword" // Password reset / Сброс пароля
)

// Valid reports whether t names a known variant.
// Valid сообщает, является ли t известным вариантом.
func (t PayloadType) Valid() bool {
	switch t {
	case PayloadUser, PayloadAdmin, PayloadResetPassword:
		return true
	}
	return false
}

// TokenPayload is the identity carried inside a signed token.
// TokenPayload - идентичность, которую несёт подписанный токен.
//
// Which fields are meaningful depends on Type:
// Набор значимых полей зависит от Type:
//   - user:          UserID, Email, Username, PhoneNumber, Verified
//   - admin:         Username, Email
//   - resetPassword: UserID, Email
type TokenPayload struct {
	Type        PayloadType `json:"type"`                  // Variant tag / Тег варианта
	UserID      int64       `json:"userId,omitempty"`      // User id / Id пользователя
	Email       string      `json:"email"`                 // Email / Электронная почта
	Username    string      `json:"username,omitempty"`    // Username / Имя пользователя
	PhoneNumber *string     `json:"phoneNumber,omitempty"` // Phone / Телефон
	Verified    bool        `json:"verified,omitempty"`    // Verified flag / Флаг верификации
}

// NewUserPayload builds a user payload from an account.
// NewUserPayload строит полезную нагрузку пользователя из аккаунта.
func NewUserPayload(u *User) TokenPayload {
	return TokenPayload{
		Type:        PayloadUser,
		UserID:      u.ID,
		Email:       u.Email,
		Username:    u.Username,
		PhoneNumber: u.PhoneNumber,
		Verified:    u.Verified,
	}
}

// NewAdminPayload builds an admin payload.
// NewAdminPayload строит полезную нагрузку администратора.
func NewAdminPayload(a *Admin) TokenPayload {
	return TokenPayload{
		Type:     PayloadAdmin,
		Username: a.Username,
		Email:    a.Email,
	}
}

// NewResetPasswordPayload builds a password reset payload.
// NewResetPasswordPayload строит полезную нагрузку сброса пароля.
func NewResetPasswordPayload(userID int64, email string) TokenPayload {
	return TokenPayload{
		Type:   PayloadResetPassword,
		UserID: userID,
		Email:  email,
	}
}

// Validate checks that the fields required by Type are present.
// Validate проверяет наличие полей, требуемых для Type.
func (p TokenPayload) Validate() error {
	switch p.Type {
	case PayloadUser:
		if p.UserID <= 0 || p.Username == "" {
			return fmt.Errorf("user payload requires userId and username")
		}
	case PayloadAdmin:
		if p.Username == "" {
			return fmt.Errorf("admin payload requires username")
		}
	case PayloadResetPassword:
		if p.UserID <= 0 {
			return fmt.Errorf("resetPassword payload requires userId")
		}
	default:
		return fmt.Errorf("unknown payload type %q", p.Type)
	}
	if p.Email == "" {
		return fmt.Errorf("%s payload requires email", p.Type)
	}
	return nil
}

// IsAdmin reports whether the payload belongs to an administrator.
// IsAdmin сообщает, принадлежит ли полезная нагрузка администратору.
func (p TokenPayload) IsAdmin() bool {
	return p.Type == PayloadAdmin
}

// Subject returns a stable identifier for logs and audit entries.
// Subject возвращает стабильный идентификатор для логов и аудита.
func (p TokenPayload) Subject() string {
	if p.Type == PayloadAdmin {
		return p.Username
	}
	return strconv.FormatInt(p.UserID, 10)
}
