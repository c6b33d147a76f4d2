// Package config provides application configuration management.
// Пакет config обеспечивает управление конфигурацией приложения.
//
// Configuration is read once at startup from environment variables and an
// optional .env file, then passed by value into constructors. Business code
// never reads the environment directly.
// Конфигурация читается один раз при запуске из переменных окружения и
// опционального .env файла и передаётся в конструкторы. Бизнес-логика
// никогда не читает окружение напрямую.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// TokenTTL is the fixed validity window of every issued token.
// TokenTTL - фиксированный срок действия каждого выданного токена.
const TokenTTL = 365 * 24 * time.Hour

// Config holds all application configuration.
// Config содержит всю конфигурацию приложения.
type Config struct {
	Server    ServerConfig    `yaml:"server"`                                      // HTTP server settings / Настройки HTTP сервера
	Database  DatabaseConfig  `yaml:"database"`                                    // PostgreSQL connection / Подключение к PostgreSQL
	Redis     RedisConfig     `yaml:"redis"`                                       // Redis connection / Подключение к Redis
	JWT       JWTConfig       `yaml:"jwt"`                                         // Token signing / Подпись токенов
	Password  PasswordConfig  `yaml:"password"`                                    // Password hashing / Хэширование паролей
	Lockout   LockoutConfig   `yaml:"lockout"`                                     // Login lockout / Блокировка входа
	SSO       SSOConfig       `yaml:"sso"`                                         // SSO identity provider / SSO провайдер
	Admin     AdminConfig     `yaml:"admin"`                                       // Bootstrap admin / Начальный администратор
	Telemetry TelemetryConfig `yaml:"telemetry"`                                   // OpenTelemetry settings / Настройки OpenTelemetry
	Log       LogConfig       `yaml:"log"`                                         // Logging / Логирование
	DevMode   bool            `env:"DEV_MODE" env-default:"false" yaml:"dev_mode"` // Development mode / Режим разработки
}

// ServerConfig contains HTTP server configuration.
// ServerConfig содержит конфигурацию HTTP сервера.
type ServerConfig struct {
	Port           string   `env:"PORT" env-default:"8080" yaml:"port"`                                    // Server port / Порт сервера
	TrustedProxies []string `env:"TRUSTED_PROXIES" env-separator:"," env-default:"127.0.0.1" yaml:"proxies"` // Trusted proxies / Доверенные прокси
	RequestsPerSec float64  `env:"RATE_LIMIT_RPS" env-default:"20" yaml:"requests_per_sec"`                // Per-IP rate / Лимит на IP
	Burst          int      `env:"RATE_LIMIT_BURST" env-default:"40" yaml:"burst"`                         // Per-IP burst / Всплеск на IP
	AuthPerMinute  int      `env:"AUTH_RATE_LIMIT_PER_MIN" env-default:"30" yaml:"auth_per_minute"`        // Auth attempts per IP / Попыток входа на IP
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," yaml:"allowed_origins"`          // CORS origins / Разрешённые источники CORS
}

// DatabaseConfig contains PostgreSQL connection settings.
// DatabaseConfig содержит настройки подключения к PostgreSQL.
type DatabaseConfig struct {
	Host         string `env:"DB_HOST" env-default:"localhost" yaml:"host"`               // Database host / Хост БД
	Port         string `env:"DB_PORT" env-default:"5432" yaml:"port"`                    // Database port / Порт БД
	User         string `env:"DB_USER" env-default:"users" yaml:"user"`                   // Database user / Пользователь БД
	Password     string `env:"DB_PASSWORD" env-default:"users" yaml:"password"`           // Database password / Пароль БД
	DBName       string `env:"DB_NAME" env-default:"users_db" yaml:"dbname"`              // Database name / Имя БД
	SSLMode      string `env:"DB_SSLMODE" env-default:"disable" yaml:"sslmode"`           // SSL mode / Режим SSL
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" env-default:"25" yaml:"max_open_conns"`  // Pool size / Размер пула
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" env-default:"10" yaml:"max_idle_conns"`  // Idle conns / Простаивающие соединения
	AutoMigrate  bool   `env:"DB_AUTO_MIGRATE" env-default:"true" yaml:"auto_migrate"`    // Run migrations on start / Миграции при старте
}

// RedisConfig contains Redis connection settings.
// RedisConfig содержит настройки подключения к Redis.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" env-default:"localhost" yaml:"host"` // Redis host / Хост Redis
	Port     string `env:"REDIS_PORT" env-default:"6379" yaml:"port"`      // Redis port / Порт Redis
	Password string `env:"REDIS_PASSWORD" env-default:"" yaml:"password"`  // Redis password / Пароль Redis
	DB       int    `env:"REDIS_DB" env-default:"0" yaml:"db"`             // Redis database number / Номер БД Redis
}

// Addr returns host:port of the Redis server.
// Addr возвращает host:port сервера Redis.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// JWTConfig contains token signing configuration.
// JWTConfig содержит конфигурацию подписи токенов.
type JWTConfig struct {
	Secret string `env:"JWT_SECRET_KEY" yaml:"secret"` // HMAC signing secret / Секрет подписи HMAC
}

// PasswordConfig contains password hashing configuration.
// PasswordConfig содержит конфигурацию хэширования паролей.
type PasswordConfig struct {
	BcryptCost int `env:"BCRYPT_COST" env-default:"10" yaml:"bcrypt_cost"` // bcrypt work factor / Фактор сложности bcrypt
}

// LockoutConfig contains failed-login lockout configuration.
// LockoutConfig содержит конфигурацию блокировки после неудачных входов.
type LockoutConfig struct {
	MaxAttempts     int `env:"LOCKOUT_MAX_ATTEMPTS" env-default:"5" yaml:"max_attempts"`          // Max failed attempts / Макс. неудачных попыток
	DurationMinutes int `env:"LOCKOUT_DURATION_MINUTES" env-default:"15" yaml:"duration_minutes"` // Window in minutes / Окно в минутах
}

// Duration returns the lockout window.
// Duration возвращает окно блокировки.
func (c *LockoutConfig) Duration() time.Duration {
	return time.Duration(c.DurationMinutes) * time.Minute
}

// SSOConfig contains identity provider verification settings.
// SSOConfig содержит настройки проверки провайдера идентификации.
//
// Defaults target Firebase Authentication ID tokens, which are OIDC tokens
// signed by Google's secure token service.
// Значения по умолчанию рассчитаны на ID-токены Firebase Authentication.
type SSOConfig struct {
	ProjectID  string `env:"SSO_PROJECT_ID" yaml:"project_id"`                                                                                              // Expected audience / Ожидаемая аудитория
	IssuerBase string `env:"SSO_ISSUER_BASE" env-default:"https://securetoken.google.com/" yaml:"issuer_base"`                                             // Issuer prefix / Префикс издателя
	JWKSURL    string `env:"SSO_JWKS_URL" env-default:"https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com" yaml:"jwks_url"` // Signing keys / Ключи подписи
	ProviderID string `env:"SSO_PROVIDER_ID" env-default:"google.com" yaml:"provider_id"`                                                                  // Stored provider id / Сохраняемый id провайдера
}

// Issuer returns the expected issuer claim.
// Issuer возвращает ожидаемое значение издателя.
func (c *SSOConfig) Issuer() string {
	return c.IssuerBase + c.ProjectID
}

// AdminConfig contains the bootstrap administrator credentials.
// AdminConfig содержит учётные данные начального администратора.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME" env-default:"admin" yaml:"username"`                // Username / Имя пользователя
	Email    string `env:"ADMIN_EMAIL" env-default:"admin@twitsnap.com" yaml:"email"`         // Email / Электронная почта
	Password string `env:"ADMIN_PASSWORD" env-default:"admin-change-me" yaml:"password"`      // Password / Пароль
}

// TelemetryConfig contains OpenTelemetry configuration.
// TelemetryConfig содержит конфигурацию OpenTelemetry.
type TelemetryConfig struct {
	Enabled      bool   `env:"OTEL_ENABLED" env-default:"false" yaml:"enabled"`                   // Enable telemetry / Включить телеметрию
	OTLPEndpoint string `env:"OTEL_ENDPOINT" env-default:"localhost:4317" yaml:"otlp_endpoint"`   // OTLP endpoint / OTLP эндпоинт
	ServiceName  string `env:"OTEL_SERVICE_NAME" env-default:"users-service" yaml:"service_name"` // Service name / Имя сервиса
	Environment  string `env:"OTEL_ENVIRONMENT" env-default:"development" yaml:"environment"`     // Environment / Окружение
}

// LogConfig contains logger configuration.
// LogConfig содержит конфигурацию логгера.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info" yaml:"level"`   // Minimum level / Минимальный уровень
	Format string `env:"LOG_FORMAT" env-default:"json" yaml:"format"` // json or text / json или text
}

// DSN returns the PostgreSQL connection string.
// DSN возвращает строку подключения к PostgreSQL.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Validate checks settings that have no usable default.
// Validate проверяет настройки без пригодного значения по умолчанию.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if c.Password.BcryptCost < 4 || c.Password.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.Password.BcryptCost)
	}
	return nil
}

// Load loads configuration from environment variables and optional .env file.
// Load загружает конфигурацию из переменных окружения и опционального .env файла.
//
// Configuration priority (highest to lowest):
// Приоритет конфигурации (от высшего к низшему):
//  1. Environment variables / Переменные окружения
//  2. .env file (if exists) / .env файл (если существует)
//  3. Default values / Значения по умолчанию
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path.
// LoadFile - это Load с явным путём к env файлу.
func LoadFile(envFile string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(envFile); err == nil {
		if err := cleanenv.ReadConfig(envFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	} else {
		// No env file, read from environment only
		// Нет env файла, читаем только из окружения
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment variables: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad loads configuration and panics on error.
// MustLoad загружает конфигурацию и паникует при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// GetDescription returns a description of all configuration parameters.
// GetDescription возвращает описание всех параметров конфигурации.
func GetDescription() (string, error) {
	var cfg Config
	return cleanenv.GetDescription(&cfg, nil)
}
