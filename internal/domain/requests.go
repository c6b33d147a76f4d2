package domain

// RegisterUserRequest carries a password registration.
// RegisterUserRequest содержит данные регистрации по паролю.
//
// Field checks happen in the service so that the first failing field is
// reported; binding only enforces JSON types.
// Проверка полей выполняется в сервисе, чтобы сообщать о первом неверном
// поле; биндинг проверяет только типы JSON.
type RegisterUserRequest struct {
	Email           string  `json:"email"`                     // Email / Электронная почта
	Password        string  `json:"password"`                  // Plain password / Пароль
	Username        string  `json:"username"`                  // Username / Имя пользователя
	Name            string  `json:"name"`                      // First name / Имя
	LastName        string  `json:"lastname"`                  // Last name / Фамилия
	Birthdate       string  `json:"birthdate"`                 // YYYY-MM-DD / Дата рождения
	PhoneNumber     *string `json:"phoneNumber,omitempty"`     // Optional phone / Телефон
	ProfilePhoto    *string `json:"profilePhoto,omitempty"`    // Optional avatar / Аватар
	BackgroundPhoto *string `json:"backgroundPhoto,omitempty"` // Optional banner / Обложка
}

// LoginRequest carries password credentials.
// LoginRequest содержит учётные данные для входа.
type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername" binding:"required"` // Email or username / Email или имя
	Password        string `json:"password" binding:"required"`        // Plain password / Пароль
}

// SSOLoginRequest carries a provider-issued identity assertion.
// SSOLoginRequest содержит утверждение, выданное провайдером.
type SSOLoginRequest struct {
	Token string `json:"token" binding:"required"` // Provider ID token / ID-токен провайдера
	UID   string `json:"uid" binding:"required"`   // Claimed subject / Заявленный субъект
}

// SSORegisterRequest carries an assertion plus profile fields.
// SSORegisterRequest содержит утверждение и поля профиля.
type SSORegisterRequest struct {
	Token        string  `json:"token"`                  // Provider ID token / ID-токен провайдера
	UID          string  `json:"uid"`                    // Claimed subject / Заявленный субъект
	Email        string  `json:"email"`                  // Email / Электронная почта
	Name         string  `json:"name"`                   // Display name / Отображаемое имя
	LastName     *string `json:"lastname,omitempty"`     // Optional last name / Фамилия
	Username     *string `json:"username,omitempty"`     // Optional username / Имя пользователя
	Birthdate    *string `json:"birthdate,omitempty"`    // Optional YYYY-MM-DD / Дата рождения
	ProfilePhoto *string `json:"profilePhoto,omitempty"` // Optional avatar / Аватар
	PhoneNumber  *string `json:"phoneNumber,omitempty"`  // Optional phone / Телефон
}

// RegisterAdminRequest carries an admin registration.
// RegisterAdminRequest содержит данные регистрации администратора.
type RegisterAdminRequest struct {
	Email    string `json:"email"`    // Email / Электронная почта
	Password string `json:"password"` // Plain password / Пароль
	Username string `json:"username"` // Username / Имя пользователя
}

// UpdateProfileRequest carries optional profile changes.
// UpdateProfileRequest содержит необязательные изменения профиля.
type UpdateProfileRequest struct {
	Name            *string `json:"name,omitempty" binding:"omitempty,min=1,max=100,nohtml"`     // First name / Имя
	LastName        *string `json:"lastname,omitempty" binding:"omitempty,min=1,max=100,nohtml"` // Last name / Фамилия
	Bio             *string `json:"bio,omitempty" binding:"omitempty,max=500,nohtml"`            // Biography / Биография
	Birthdate       *string `json:"birthdate,omitempty" binding:"omitempty,birthdate"`           // YYYY-MM-DD / Дата рождения
	ProfilePhoto    *string `json:"profilePhoto,omitempty" binding:"omitempty,safeurl"`          // Avatar / Аватар
	BackgroundPhoto *string `json:"backgroundPhoto,omitempty" binding:"omitempty,safeurl"`       // Banner / Обложка
	DeviceToken     *string `json:"deviceToken,omitempty" binding:"omitempty,max=512"`           // Push token / Push-токен
}
