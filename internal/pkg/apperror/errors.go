// Package apperror provides the typed failure kinds of the users service.
// Пакет apperror предоставляет типизированные виды ошибок сервиса пользователей.
//
// Every failure that leaves a service is either one of the kinds below or an
// unclassified error that the response mapper turns into a generic 500.
// Каждая ошибка, покидающая сервис, либо относится к одному из видов ниже,
// либо является неклассифицированной и превращается маппером ответов в 500.
//
//   - validation (400)         / ошибка валидации
//   - authentication (401)     / ошибка аутентификации
//   - blocked account (403)    / заблокированная учётная запись
//   - not found (404)          / не найдено
//   - already exists (409)     / уже существует
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for different error types.
// Коды ошибок для различных типов ошибок.
const (
	CodeNotFound           = "NOT_FOUND"           // Resource not found / Ресурс не найден
	CodeValidation         = "VALIDATION_ERROR"    // Validation failed / Ошибка валидации
	CodeUnauthorized       = "UNAUTHORIZED"        // Authentication failed / Ошибка аутентификации
	CodeForbidden          = "FORBIDDEN"           // Access denied / Доступ запрещён
	CodeBlocked            = "USER_BLOCKED"        // Account is blocked / Учётная запись заблокирована
	CodeAlreadyExists      = "ALREADY_EXISTS"      // Unique value taken / Уникальное значение занято
	CodeInternal           = "INTERNAL_ERROR"      // Internal server error / Внутренняя ошибка сервера
	CodeBadRequest         = "BAD_REQUEST"         // Malformed request / Некорректный запрос
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"   // Rate limit exceeded / Превышен лимит запросов
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE" // Dependency unavailable / Зависимость недоступна
)

// Machine-readable reasons attached to field validation failures.
// Машиночитаемые причины ошибок валидации полей.
const (
	ReasonRequired      = "REQUIRED"       // Field missing or empty / Поле отсутствует или пустое
	ReasonInvalidFormat = "INVALID_FORMAT" // Field present but malformed / Поле есть, но некорректно
	ReasonInvalidValue  = "INVALID_VALUE"  // Field well-formed but not allowed / Значение недопустимо
)

// AppError represents a structured application error.
// AppError представляет структурированную ошибку приложения.
type AppError struct {
	Code       string                 `json:"code"`              // Error code / Код ошибки
	Message    string                 `json:"message"`           // Error message / Сообщение об ошибке
	HTTPStatus int                    `json:"-"`                 // HTTP status / HTTP статус
	Details    map[string]interface{} `json:"details,omitempty"` // Additional details / Доп. детали
	Err        error                  `json:"-"`                 // Wrapped error / Обёрнутая ошибка
}

// Error implements the error interface.
// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is/As support.
// Unwrap возвращает обёрнутую ошибку для поддержки errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails merges details into the error and returns it.
// WithDetails добавляет детали к ошибке и возвращает её.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{}, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithError wraps an underlying error and returns the modified error.
// WithError оборачивает исходную ошибку и возвращает изменённую ошибку.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// Field returns the offending field of a validation error, if any.
// Field возвращает поле, вызвавшее ошибку валидации, если оно есть.
func (e *AppError) Field() string {
	if f, ok := e.Details["field"].(string); ok {
		return f
	}
	return ""
}

// Entity returns the subject of an already-exists or not-found error.
// Entity возвращает сущность ошибки "уже существует" или "не найдено".
func (e *AppError) Entity() string {
	if v, ok := e.Details["entity"].(string); ok {
		return v
	}
	return ""
}

// New creates a new AppError with the specified code, message, and HTTP status.
// New создаёт новую AppError с указанным кодом, сообщением и HTTP статусом.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// NotFound creates a not found error for an entity.
// NotFound создаёт ошибку "не найдено" для сущности.
func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]interface{}{
			"entity": entity,
			"id":     id,
		},
	}
}

// ValidationError creates a validation error with free-form details.
// ValidationError создаёт ошибку валидации с произвольными деталями.
func ValidationError(message string, details map[string]interface{}) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// InvalidField creates a validation error for a single field.
// InvalidField создаёт ошибку валидации одного поля.
func InvalidField(field, reason, detail string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    detail,
		HTTPStatus: http.StatusBadRequest,
		Details: map[string]interface{}{
			"field":  field,
			"reason": reason,
		},
	}
}

// Unauthorized creates an authentication error.
// Unauthorized создаёт ошибку аутентификации.
func Unauthorized(message string) *AppError {
	if message == "" {
		message = "authentication required" // Требуется аутентификация
	}
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates an authorization/access denied error.
// Forbidden создаёт ошибку авторизации/отказа в доступе.
func Forbidden(message string) *AppError {
	if message == "" {
		message = "access denied" // Доступ запрещён
	}
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// Blocked creates an error for an authenticated but blocked account.
// Blocked создаёт ошибку для аутентифицированной, но заблокированной учётной записи.
func Blocked(message string) *AppError {
	if message == "" {
		message = "user is blocked" // Пользователь заблокирован
	}
	return &AppError{
		Code:       CodeBlocked,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// AlreadyExists creates a uniqueness conflict error naming the colliding entity.
// AlreadyExists создаёт ошибку конфликта уникальности с указанием сущности.
func AlreadyExists(entity, detail string) *AppError {
	if detail == "" {
		detail = fmt.Sprintf("%s already exists", entity)
	}
	return &AppError{
		Code:       CodeAlreadyExists,
		Message:    detail,
		HTTPStatus: http.StatusConflict,
		Details: map[string]interface{}{
			"entity": entity,
		},
	}
}

// Internal creates an internal server error with an optional wrapped error.
// Internal создаёт внутреннюю ошибку сервера с опциональной обёрнутой ошибкой.
func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// BadRequest creates a bad request error.
// BadRequest создаёт ошибку неверного запроса.
func BadRequest(message string) *AppError {
	return &AppError{
		Code:       CodeBadRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// TooManyRequests creates a rate limit exceeded error.
// TooManyRequests создаёт ошибку превышения лимита запросов.
func TooManyRequests(message string, retryAfter int) *AppError {
	return &AppError{
		Code:       CodeTooManyRequests,
		Message:    message,
		HTTPStatus: http.StatusTooManyRequests,
		Details: map[string]interface{}{
			"retry_after_seconds": retryAfter,
		},
	}
}

// ServiceUnavailable creates a service unavailable error.
// ServiceUnavailable создаёт ошибку недоступности сервиса.
func ServiceUnavailable(message string) *AppError {
	return &AppError{
		Code:       CodeServiceUnavailable,
		Message:    message,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// IsAppError checks if an error is an AppError.
// IsAppError проверяет, является ли ошибка AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to AppError if possible.
// AsAppError преобразует ошибку в AppError, если это возможно.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
// HasCode сообщает, является ли err ошибкой AppError с указанным кодом.
func HasCode(err error, code string) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// FromError wraps a generic error as an internal AppError.
// FromError оборачивает обычную ошибку как внутреннюю AppError.
// If the error is already an AppError, it returns it as-is.
// Если ошибка уже является AppError, возвращает её без изменений.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal("an unexpected error occurred", err) // Произошла непредвиденная ошибка
}
