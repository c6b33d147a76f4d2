// Package domain contains core business entities and value objects.
// Пакет domain содержит основные бизнес-сущности и объекты-значения.
package domain

import (
	"encoding/json"
	"time"
)

// BirthdateLayout is the wire format of birthdates.
// BirthdateLayout - формат дат рождения при передаче.
const BirthdateLayout = "2006-01-02"

// Audit action constants.
// Константы действий аудита.
const (
	AuditActionRegister      = "auth.register"       // Password registration / Регистрация по паролю
	AuditActionLoginSuccess  = "auth.login.success"  // Successful login / Успешный вход
	AuditActionLoginFailed   = "auth.login.failed"   // Failed login / Неудачный вход
	AuditActionLoginLocked   = "auth.login.locked"   // Login while locked out / Вход при блокировке
	AuditActionSSORegister   = "auth.sso.register"   // SSO registration / Регистрация через SSO
	AuditActionSSOLogin      = "auth.sso.login"      // SSO login / Вход через SSO
	AuditActionAdminRegister = "admin.register"      // Admin created / Создан администратор
	AuditActionAdminLogin    = "admin.login.success" // Admin login / Вход администратора
	AuditActionUserBlock     = "user.block"          // User blocked / Пользователь заблокирован
	AuditActionUserUnblock   = "user.unblock"        // User unblocked / Пользователь разблокирован
	AuditActionProfileUpdate = "user.profile.update" // Profile changed / Профиль изменён
	AuditActionFollowCreate  = "follow.create"       // Follow edge added / Подписка добавлена
	AuditActionFollowDelete  = "follow.delete"       // Follow edge removed / Подписка удалена
	AuditResourceTypeAuth    = "auth"                // Auth resource / Ресурс аутентификации
	AuditResourceTypeUser    = "user"                // User resource / Ресурс пользователя
	AuditResourceTypeAdmin   = "admin"               // Admin resource / Ресурс администратора
	AuditResourceTypeFollow  = "follow"              // Follow resource / Ресурс подписки
)

// User represents an end-user account.
// User представляет учётную запись конечного пользователя.
//
// PasswordHash is nil for SSO-only accounts and is never serialized.
// PasswordHash равен nil для SSO-аккаунтов и никогда не сериализуется.
type User struct {
	ID              int64      `json:"id" gorm:"primaryKey"`                                        // Primary key / Первичный ключ
	Username        string     `json:"username" gorm:"type:varchar(50);not null"`                   // Unique username / Уникальное имя
	Email           string     `json:"email" gorm:"type:varchar(255);not null"`                     // Unique email / Уникальный email
	PasswordHash    *string    `json:"-" gorm:"type:varchar(255)"`                                  // Bcrypt hash / Bcrypt хэш
	Name            string     `json:"name" gorm:"type:varchar(100);not null"`                      // First name / Имя
	LastName        string     `json:"lastname" gorm:"column:last_name;type:varchar(100);not null"` // Last name / Фамилия
	Birthdate       *time.Time `json:"birthdate,omitempty" gorm:"type:date"`                        // Birthdate, nil for SSO accounts without one / Дата рождения, nil для SSO без неё
	PhoneNumber     *string    `json:"phoneNumber,omitempty" gorm:"type:varchar(32)"`               // Unique phone / Уникальный телефон
	SSOUID          *string    `json:"sso_uid,omitempty" gorm:"column:sso_uid;type:varchar(128)"`   // Provider subject / Субъект провайдера
	ProviderID      *string    `json:"provider_id,omitempty" gorm:"type:varchar(64)"`               // SSO provider / SSO провайдер
	ProfilePhoto    *string    `json:"profilePhoto,omitempty" gorm:"type:text"`                     // Avatar URL / URL аватара
	BackgroundPhoto *string    `json:"backgroundPhoto,omitempty" gorm:"type:text"`                  // Banner URL / URL обложки
	Bio             string     `json:"bio,omitempty" gorm:"type:text"`                              // Biography / Биография
	IsBlocked       bool       `json:"isBlocked" gorm:"not null;default:false"`                     // Block status / Статус блокировки
	Verified        bool       `json:"verified" gorm:"not null;default:false"`                      // Verified flag / Флаг верификации
	DeviceToken     *string    `json:"-" gorm:"type:text"`                                          // Push token / Push-токен
	CreatedAt       time.Time  `json:"createdAt" gorm:"not null"`                                   // Creation time / Время создания
	UpdatedAt       time.Time  `json:"-" gorm:"not null"`                                           // Update time / Время обновления
}

// TableName returns the database table name for User entity.
// TableName возвращает имя таблицы в базе данных для сущности User.
func (User) TableName() string {
	return "users"
}

// StripPassword drops the credential before the account leaves the service.
// StripPassword удаляет учётные данные перед выдачей аккаунта наружу.
func (u *User) StripPassword() *User {
	u.PasswordHash = nil
	return u
}

// HasPassword reports whether the account can log in with a password.
// HasPassword сообщает, может ли аккаунт входить по паролю.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Admin represents an administrator account.
// Admin представляет учётную запись администратора.
//
// The numeric id stays internal; clients know admins by username and email.
// Числовой id остаётся внутренним; клиенты знают админов по имени и email.
type Admin struct {
	ID           int64     `json:"-" gorm:"primaryKey"`                       // Internal key / Внутренний ключ
	Username     string    `json:"username" gorm:"type:varchar(50);not null"` // Unique username / Уникальное имя
	Email        string    `json:"email" gorm:"type:varchar(255);not null"`   // Unique email / Уникальный email
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`       // Bcrypt hash / Bcrypt хэш
	CreatedAt    time.Time `json:"createdAt" gorm:"not null"`                 // Creation time / Время создания
}

// TableName returns the database table name for Admin entity.
// TableName возвращает имя таблицы в базе данных для сущности Admin.
func (Admin) TableName() string {
	return "admins"
}

// StripPassword drops the credential before the account leaves the service.
// StripPassword удаляет учётные данные перед выдачей аккаунта наружу.
func (a *Admin) StripPassword() *Admin {
	a.PasswordHash = ""
	return a
}

// Follow is a directed edge from follower to followed.
// Follow - направленное ребро от подписчика к тому, на кого подписаны.
type Follow struct {
	FollowerID int64     `json:"followerId" gorm:"primaryKey;autoIncrement:false"` // Who follows / Кто подписан
	FollowedID int64     `json:"followedId" gorm:"primaryKey;autoIncrement:false"` // Who is followed / На кого подписан
	CreatedAt  time.Time `json:"createdAt" gorm:"not null"`                        // Creation time / Время создания
}

// TableName returns the database table name for Follow entity.
// TableName возвращает имя таблицы в базе данных для сущности Follow.
func (Follow) TableName() string {
	return "follows"
}

// AuditLog represents an audit log entry.
// AuditLog представляет запись аудит-лога.
//
// ActorType is the token payload type of whoever acted ("user", "admin" or
// "anonymous"); ActorID is the user id or admin username.
// ActorType - тип полезной нагрузки токена действующего лица; ActorID - id
// пользователя или имя администратора.
type AuditLog struct {
	ID           int64           `gorm:"primaryKey"`                              // Primary key / Первичный ключ
	ActorType    string          `gorm:"type:varchar(20);not null"`               // Actor kind / Тип субъекта
	ActorID      string          `gorm:"type:varchar(100);index:idx_audit_actor"` // Actor reference / Ссылка на субъекта
	Action       string          `gorm:"type:varchar(100);not null"`              // Action type / Тип действия
	ResourceType string          `gorm:"type:varchar(50)"`                        // Resource type / Тип ресурса
	ResourceID   string          `gorm:"type:varchar(100)"`                       // Resource ID / ID ресурса
	Details      json.RawMessage `gorm:"type:jsonb"`                              // JSON details / JSON детали
	IPAddress    *string         `gorm:"type:inet"`                               // Client IP / IP клиента
	UserAgent    *string         `gorm:"type:text"`                               // Client user agent / User agent клиента
	CreatedAt    time.Time       `gorm:"not null;index:idx_audit_created"`        // Creation time / Время создания
}

// TableName returns the database table name for AuditLog entity.
// TableName возвращает имя таблицы в базе данных для сущности AuditLog.
func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuthResult is what every successful login or registration returns.
// AuthResult - результат каждого успешного входа или регистрации.
type AuthResult struct {
	User  *User  `json:"user"`  // Profile without password / Профиль без пароля
	Token string `json:"token"` // Signed token / Подписанный токен
}

// AdminAuthResult is the admin counterpart of AuthResult.
// AdminAuthResult - аналог AuthResult для администраторов.
type AdminAuthResult struct {
	Admin *Admin `json:"admin"` // Profile without password / Профиль без пароля
	Token string `json:"token"` // Signed token / Подписанный токен
}
