// Package logger provides structured logging functionality based on slog.
// Пакет logger предоставляет функциональность структурированного логирования на базе slog.
//
// Usage example / Пример использования:
//
//	log := logger.New(logger.Config{Level: "info", Format: "json"})
//	log.WithComponent("user_auth_service").WithContext(ctx).Info("user registered")
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// contextKey is a custom type for context keys to avoid collisions.
// contextKey — пользовательский тип для ключей контекста во избежание коллизий.
type contextKey string

// Context keys for storing values in context.
// Ключи контекста для хранения значений в контексте.
const (
	RequestIDKey contextKey = "request_id" // Request id / Id запроса
	SubjectKey   contextKey = "subject"    // Authenticated subject / Аутентифицированный субъект
	ClientKey    contextKey = "client"     // Client ip and user agent / Ip и user agent клиента
)

// ClientInfo describes the remote caller.
// ClientInfo описывает удалённого клиента.
type ClientInfo struct {
	IP        string // Remote address / Удалённый адрес
	UserAgent string // User agent / User agent
}

// Logger wraps slog.Logger with additional functionality.
// Logger оборачивает slog.Logger с дополнительной функциональностью.
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration options.
// Config содержит параметры конфигурации логгера.
type Config struct {
	Level      string    // Log level: "debug", "info", "warn", "error" / Уровень
	Format     string    // Output format: "json", "text" / Формат вывода
	AddSource  bool      // Include source file and line / Включать файл и строку
	TimeFormat string    // Time format string / Формат времени
	Output     io.Writer // Output writer (default: os.Stdout) / Writer для вывода
}

// DefaultConfig returns the default logger configuration.
// DefaultConfig возвращает конфигурацию логгера по умолчанию.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "json",
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	}
}

// New creates a new Logger with the given configuration.
// New создаёт новый Logger с заданной конфигурацией.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					return slog.String(slog.TimeKey, t.Format(cfg.TimeFormat))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(cfg.Output, opts)
	} else {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewDefault creates a logger with default configuration.
// NewDefault создаёт логгер с конфигурацией по умолчанию.
func NewDefault() *Logger {
	return New(DefaultConfig())
}

// Discard returns a logger that drops everything. Handy in tests.
// Discard возвращает логгер, который всё отбрасывает. Удобно в тестах.
func Discard() *Logger {
	return New(Config{Level: "error", Format: "json", Output: io.Discard})
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithContext returns a logger enriched with request id, subject and trace id.
// WithContext возвращает логгер, обогащённый id запроса, субъектом и id трассировки.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	attrs := make([]any, 0, 3)

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}
	if subject, ok := ctx.Value(SubjectKey).(string); ok && subject != "" {
		attrs = append(attrs, slog.String("subject", subject))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		attrs = append(attrs, slog.String("trace_id", sc.TraceID().String()))
	}

	if len(attrs) == 0 {
		return l
	}
	return &Logger{Logger: l.Logger.With(attrs...)}
}

// WithComponent returns a logger with a component name field.
// WithComponent возвращает логгер с полем имени компонента.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("component", component))}
}

// WithError returns a logger with error information.
// WithError возвращает логгер с информацией об ошибке.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("error", err.Error()))}
}

// LogRequest logs an HTTP request with method, path, status, duration, and client IP.
// LogRequest логирует HTTP запрос с методом, путём, статусом, длительностью и IP клиента.
func (l *Logger) LogRequest(method, path string, statusCode int, duration time.Duration, clientIP string) {
	level := slog.LevelInfo
	if statusCode >= 500 {
		level = slog.LevelError
	}
	l.Log(context.Background(), level, "http request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", statusCode),
		slog.Duration("duration", duration),
		slog.String("client_ip", clientIP),
	)
}

// LogAuthAttempt logs an authentication attempt with success/failure status.
// LogAuthAttempt логирует попытку аутентификации со статусом успех/неудача.
func (l *Logger) LogAuthAttempt(method, identifier string, success bool, reason string) {
	level := slog.LevelInfo
	if !success {
		level = slog.LevelWarn
	}
	l.Log(context.Background(), level, "auth attempt",
		slog.String("method", method),
		slog.String("identifier", identifier),
		slog.Bool("success", success),
		slog.String("reason", reason),
	)
}

// LogAuthzDecision logs an authorization decision (allow/deny).
// LogAuthzDecision логирует решение авторизации (разрешить/запретить).
func (l *Logger) LogAuthzDecision(role, resource, action string, allowed bool) {
	l.Debug("authz decision",
		slog.String("role", role),
		slog.String("resource", resource),
		slog.String("action", action),
		slog.Bool("allowed", allowed),
	)
}

// Fatal logs a fatal error message and exits the application with code 1.
// Fatal логирует фатальную ошибку и завершает приложение с кодом 1.
func (l *Logger) Fatal(msg string, args ...any) {
	_, file, line, _ := runtime.Caller(1)
	args = append(args, slog.String("caller", file), slog.Int("line", line))
	l.Error(msg, args...)
	os.Exit(1)
}

var defaultLogger = NewDefault()

// Default returns the default global logger instance.
// Default возвращает глобальный экземпляр логгера по умолчанию.
func Default() *Logger {
	return defaultLogger
}

// SetDefault sets the default global logger instance and slog's default.
// SetDefault устанавливает глобальный логгер и логгер slog по умолчанию.
func SetDefault(l *Logger) {
	defaultLogger = l
	slog.SetDefault(l.Logger)
}

// WithRequestIDContext adds a request ID to the context.
// WithRequestIDContext добавляет ID запроса в контекст.
func WithRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithSubjectContext adds the authenticated subject to the context.
// WithSubjectContext добавляет аутентифицированного субъекта в контекст.
func WithSubjectContext(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, SubjectKey, subject)
}

// WithClientContext adds caller network information to the context.
// WithClientContext добавляет сетевую информацию о клиенте в контекст.
func WithClientContext(ctx context.Context, info ClientInfo) context.Context {
	return context.WithValue(ctx, ClientKey, info)
}

// GetRequestIDFromContext retrieves the request ID from context.
// GetRequestIDFromContext извлекает ID запроса из контекста.
func GetRequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}

// GetClientFromContext retrieves caller network information from context.
// GetClientFromContext извлекает сетевую информацию о клиенте из контекста.
func GetClientFromContext(ctx context.Context) ClientInfo {
	if v, ok := ctx.Value(ClientKey).(ClientInfo); ok {
		return v
	}
	return ClientInfo{}
}
