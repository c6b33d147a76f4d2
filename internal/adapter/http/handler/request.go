package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	playground "github.com/go-playground/validator/v10"

	"github.com/Twit-Snap/users-service/internal/adapter/http/response"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/validator"
	"github.com/Twit-Snap/users-service/internal/port"
)

// Default and maximum page sizes for list endpoints.
// Размер страницы по умолчанию и максимальный для списков.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// bindJSON decodes the body into req and writes a 400 on failure.
// bindJSON декодирует тело в req и пишет 400 при ошибке.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs playground.ValidationErrors
	if errors.As(err, &verrs) {
		fields := validator.FormatValidationErrors(err)
		details := make(map[string]interface{}, len(fields))
		for field, msg := range fields {
			details[field] = msg
		}
		response.ValidationError(c, "invalid request body", details)
		return false
	}

	response.BadRequest(c, "malformed request body")
	return false
}

// pageFromQuery reads page and page_size, clamping them to sane bounds.
// pageFromQuery читает page и page_size, приводя их к допустимым границам.
func pageFromQuery(c *gin.Context) port.Page {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return port.Page{Page: page, PageSize: pageSize}
}

// idParam parses a positive numeric path parameter.
// idParam разбирает положительный числовой параметр пути.
func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.InvalidField(name, apperror.ReasonInvalidFormat, name+" must be a positive integer")
	}
	return id, nil
}
