// Package validator provides custom validation rules and field checks.
// Пакет validator предоставляет кастомные правила валидации и проверки полей.
package validator

import (
	"errors"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const birthdateLayout = "2006-01-02"

var (
	htmlTagPattern  = regexp.MustCompile(`<[^>]*>`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]{1,50}$`)
)

// CustomValidator wraps the standard validator with custom validations.
// CustomValidator оборачивает стандартный валидатор кастомными проверками.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a new CustomValidator with all custom validations registered.
// New создаёт CustomValidator со всеми зарегистрированными проверками.
func New() (*CustomValidator, error) {
	v := validator.New()
	if err := register(v); err != nil {
		return nil, err
	}
	return &CustomValidator{validate: v}, nil
}

// Validate validates a struct using the registered validations.
// Validate проверяет структуру зарегистрированными проверками.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

// RegisterGinValidations installs the custom rules into gin's binding engine.
// RegisterGinValidations устанавливает кастомные правила в движок биндинга gin.
func RegisterGinValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return register(v)
}

func register(v *validator.Validate) error {
	// Report fields by their JSON names.
	// Поля называются по их JSON-именам.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"nohtml":    validateNoHTML,
		"safeurl":   validateSafeURL,
		"birthdate": validateBirthdate,
		"username":  validateUsername,
		"hasat":     validateHasAt,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func validateNoHTML(fl validator.FieldLevel) bool {
	return !htmlTagPattern.MatchString(fl.Field().String())
}

func validateSafeURL(fl validator.FieldLevel) bool {
	return IsHTTPURL(fl.Field().String())
}

func validateBirthdate(fl validator.FieldLevel) bool {
	_, ok := ParseBirthdate(fl.Field().String())
	return ok
}

func validateUsername(fl validator.FieldLevel) bool {
	return IsUsername(fl.Field().String())
}

func validateHasAt(fl validator.FieldLevel) bool {
	return HasAt(fl.Field().String())
}

// HasAt reports whether the value looks like an email address.
// HasAt сообщает, похоже ли значение на адрес электронной почты.
//
// Only the presence of "@" is checked; delivery is verified elsewhere.
// Проверяется только наличие "@"; доставка проверяется отдельно.
func HasAt(email string) bool {
	return strings.Contains(email, "@")
}

// IsBlank reports whether the value is empty after trimming spaces.
// IsBlank сообщает, пусто ли значение после удаления пробелов.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsUsername reports whether the value is a valid username.
// IsUsername сообщает, является ли значение допустимым именем пользователя.
func IsUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// ParseBirthdate parses a YYYY-MM-DD date that is not in the future.
// ParseBirthdate разбирает дату YYYY-MM-DD, не находящуюся в будущем.
func ParseBirthdate(s string) (time.Time, bool) {
	t, err := time.Parse(birthdateLayout, s)
	if err != nil || t.After(time.Now()) {
		return time.Time{}, false
	}
	return t, true
}

// IsHTTPURL reports whether the value is an absolute http(s) URL.
// IsHTTPURL сообщает, является ли значение абсолютным http(s) URL.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Slug lowercases the value and keeps only username-safe characters.
// Slug приводит значение к нижнему регистру и оставляет безопасные символы.
func Slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '_', r == '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidationErrors represents a map of field names to error messages.
// ValidationErrors - отображение имён полей на сообщения об ошибках.
type ValidationErrors map[string]string

// FormatValidationErrors converts validator.ValidationErrors to a user-friendly format.
// FormatValidationErrors преобразует validator.ValidationErrors в удобный для пользователя формат.
func FormatValidationErrors(err error) ValidationErrors {
	result := make(ValidationErrors)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			field := lowerFirst(e.Field())
			result[field] = formatErrorMessage(e)
		}
	}

	return result
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

func formatErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Must be at least " + e.Param() + " characters"
	case "max":
		return "Must be at most " + e.Param() + " characters"
	case "nohtml":
		return "HTML tags are not allowed"
	case "safeurl":
		return "Must be an absolute http or https URL"
	case "birthdate":
		return "Must be a past date in YYYY-MM-DD format"
	case "username":
		return "Must contain only letters, digits, underscores and dots"
	case "hasat":
		return "Must be a valid email address"
	default:
		return "Invalid value"
	}
}
