package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	LLM    LLMConfig
	CORS   CORSConfig
	Email  EmailConfig
	Upload UploadConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for offer attachments.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LLMConfig holds model provider settings for offer extraction and
// commodity classification.
type LLMConfig struct {
	Provider       string  `mapstructure:"provider"`
	APIKey         string  `mapstructure:"api_key"`
	Model          string  `mapstructure:"model"`
	MaxTokens      int     `mapstructure:"max_tokens"`
	Temperature    float64 `mapstructure:"temperature"`
	TimeoutSecs    int     `mapstructure:"timeout_secs"`
	UseTOON        bool    `mapstructure:"use_toon"`
	FallbackToJSON bool    `mapstructure:"fallback_to_json"`
	KeywordsFile   string  `mapstructure:"keywords_file"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// UploadConfig limits offer document uploads.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// Load reads configuration from environment variables with the PROCURA_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PROCURA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "procura")
	v.SetDefault("db.password", "procura_secret")
	v.SetDefault("db.name", "procura_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "procura")

	// S3 defaults
	v.SetDefault("s3.region", "eu-central-1")
	v.SetDefault("s3.bucket", "procura-attachments")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// LLM defaults
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.max_tokens", 4000)
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.timeout_secs", 60)
	v.SetDefault("llm.use_toon", true)
	v.SetDefault("llm.fallback_to_json", true)
	v.SetDefault("llm.keywords_file", "")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-central-1")
	v.SetDefault("email.from_address", "noreply@procura.local")
	v.SetDefault("email.from_name", "PROCURA")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 10)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "PROCURA_SERVER_PORT",
		"server.read_timeout":     "PROCURA_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "PROCURA_SERVER_WRITE_TIMEOUT",
		"server.environment":      "PROCURA_SERVER_ENVIRONMENT",
		"db.host":                 "PROCURA_DB_HOST",
		"db.port":                 "PROCURA_DB_PORT",
		"db.user":                 "PROCURA_DB_USER",
		"db.password":             "PROCURA_DB_PASSWORD",
		"db.name":                 "PROCURA_DB_NAME",
		"db.sslmode":              "PROCURA_DB_SSLMODE",
		"db.max_open":             "PROCURA_DB_MAX_OPEN",
		"db.max_idle":             "PROCURA_DB_MAX_IDLE",
		"jwt.secret":              "PROCURA_JWT_SECRET",
		"jwt.access_expiry":       "PROCURA_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":      "PROCURA_JWT_REFRESH_EXPIRY",
		"jwt.issuer":              "PROCURA_JWT_ISSUER",
		"s3.region":               "PROCURA_S3_REGION",
		"s3.bucket":               "PROCURA_S3_BUCKET",
		"s3.endpoint":             "PROCURA_S3_ENDPOINT",
		"s3.access_key":           "PROCURA_S3_ACCESS_KEY",
		"s3.secret_key":           "PROCURA_S3_SECRET_KEY",
		"s3.presign_expiry":       "PROCURA_S3_PRESIGN_EXPIRY",
		"log.level":               "PROCURA_LOG_LEVEL",
		"log.format":              "PROCURA_LOG_FORMAT",
		"llm.provider":            "PROCURA_LLM_PROVIDER",
		"llm.api_key":             "PROCURA_LLM_API_KEY",
		"llm.model":               "PROCURA_LLM_MODEL",
		"llm.max_tokens":          "PROCURA_LLM_MAX_TOKENS",
		"llm.temperature":         "PROCURA_LLM_TEMPERATURE",
		"llm.timeout_secs":        "PROCURA_LLM_TIMEOUT_SECS",
		"llm.use_toon":            "PROCURA_LLM_USE_TOON",
		"llm.fallback_to_json":    "PROCURA_LLM_FALLBACK_TO_JSON",
		"llm.keywords_file":       "PROCURA_LLM_KEYWORDS_FILE",
		"cors.allowed_origins":    "PROCURA_CORS_ALLOWED_ORIGINS",
		"email.provider":          "PROCURA_EMAIL_PROVIDER",
		"email.region":            "PROCURA_EMAIL_REGION",
		"email.from_address":      "PROCURA_EMAIL_FROM_ADDRESS",
		"email.from_name":         "PROCURA_EMAIL_FROM_NAME",
		"email.frontend_url":      "PROCURA_EMAIL_FRONTEND_URL",
		"upload.max_file_size_mb": "PROCURA_UPLOAD_MAX_FILE_SIZE_MB",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PROCURA_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PROCURA_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.LLM = LLMConfig{
		Provider:       v.GetString("llm.provider"),
		APIKey:         v.GetString("llm.api_key"),
		Model:          v.GetString("llm.model"),
		MaxTokens:      v.GetInt("llm.max_tokens"),
		Temperature:    v.GetFloat64("llm.temperature"),
		TimeoutSecs:    v.GetInt("llm.timeout_secs"),
		UseTOON:        v.GetBool("llm.use_toon"),
		FallbackToJSON: v.GetBool("llm.fallback_to_json"),
		KeywordsFile:   v.GetString("llm.keywords_file"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}

	return cfg, nil
}
