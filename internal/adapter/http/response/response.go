// Package response provides standardized API response structures and helpers.
// Пакет response предоставляет стандартизированные структуры ответов API и вспомогательные функции.
//
// Error is the single place where service errors become HTTP statuses:
// validation 400, authentication 401, blocked 403, not found 404,
// already exists 409, anything unclassified 500.
// Error - единственное место, где ошибки сервисов становятся HTTP статусами.
package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
)

// APIResponse represents a standardized API response structure.
// APIResponse представляет стандартизированную структуру ответа API.
type APIResponse struct {
	Success bool        `json:"success"`         // Operation success flag / Флаг успешности операции
	Data    interface{} `json:"data,omitempty"`  // Response payload / Полезные данные ответа
	Error   *ErrorBody  `json:"error,omitempty"` // Error details (if any) / Детали ошибки (если есть)
	Meta    *Meta       `json:"meta,omitempty"`  // Pagination metadata / Метаданные пагинации
}

// ErrorBody represents the error details in an API response.
// ErrorBody представляет детали ошибки в ответе API.
type ErrorBody struct {
	Code    string                 `json:"code"`              // Machine-readable error code / Машиночитаемый код ошибки
	Message string                 `json:"message"`           // Human-readable error message / Человекочитаемое сообщение
	Details map[string]interface{} `json:"details,omitempty"` // Field, entity or retry hint / Поле, сущность или подсказка
}

// Meta represents pagination metadata in API responses.
// Meta представляет метаданные пагинации в ответах API.
type Meta struct {
	Page       int   `json:"page"`        // Current page number / Номер текущей страницы
	PageSize   int   `json:"page_size"`   // Items per page / Элементов на странице
	Total      int64 `json:"total"`       // Total items count / Общее количество элементов
	TotalPages int   `json:"total_pages"` // Total pages count / Общее количество страниц
}

// Success sends a successful response with data.
// Success отправляет успешный ответ с данными.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// SuccessWithMeta sends a successful response with data and pagination metadata.
// SuccessWithMeta отправляет успешный ответ с данными и метаданными пагинации.
func SuccessWithMeta(c *gin.Context, data interface{}, meta *Meta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: meta})
}

// Created sends a successful response for resource creation (HTTP 201).
// Created отправляет успешный ответ при создании ресурса (HTTP 201).
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// NoContent sends a successful response with no content (HTTP 204).
// NoContent отправляет успешный ответ без содержимого (HTTP 204).
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error maps err to its status and writes the error envelope.
// Error сопоставляет err со статусом и пишет конверт ошибки.
// Errors that are not AppErrors become a generic 500 without their text.
// Ошибки, не являющиеся AppError, становятся общей 500 без их текста.
func Error(c *gin.Context, err error) {
	appErr := apperror.FromError(err)

	if appErr.Code == apperror.CodeTooManyRequests {
		if retry, ok := appErr.Details["retry_after_seconds"].(int); ok && retry > 0 {
			c.Header("Retry-After", strconv.Itoa(retry))
		}
	}

	c.JSON(appErr.HTTPStatus, APIResponse{
		Success: false,
		Error: &ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		},
	})
}

// AbortWithError writes the error envelope and stops the handler chain.
// AbortWithError пишет конверт ошибки и останавливает цепочку обработчиков.
func AbortWithError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// BadRequest sends a 400 Bad Request response.
// BadRequest отправляет ответ 400 Bad Request.
func BadRequest(c *gin.Context, message string) {
	Error(c, apperror.BadRequest(message))
}

// Unauthorized sends a 401 Unauthorized response.
// Unauthorized отправляет ответ 401 Unauthorized.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}
	Error(c, apperror.Unauthorized(message))
}

// Forbidden sends a 403 Forbidden response.
// Forbidden отправляет ответ 403 Forbidden.
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "access denied"
	}
	Error(c, apperror.Forbidden(message))
}

// ValidationError sends a 400 response for binding failures.
// ValidationError отправляет ответ 400 для ошибок биндинга.
func ValidationError(c *gin.Context, message string, details map[string]interface{}) {
	Error(c, apperror.ValidationError(message, details))
}

// NewMeta creates pagination metadata from given parameters.
// NewMeta создаёт метаданные пагинации из заданных параметров.
func NewMeta(page, pageSize int, total int64) *Meta {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &Meta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
