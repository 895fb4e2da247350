package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains runtime configuration values.
type Config struct {
	Environment string
	ServiceName string
	HTTPPort    string

	// HTTPShutdownTimeout bounds how long in-flight requests get to finish
	// once the server is asked to stop.
	HTTPShutdownTimeout time.Duration

	MongoURI    string
	MongoDBName string

	// JWTSecret signs session and reset tokens. There is deliberately no
	// default: startup fails without it.
	JWTSecret       string
	SessionTokenTTL time.Duration
	ResetTokenTTL   time.Duration

	MailServer   string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string
	MailUseTLS   bool

	// ResetLinkBase is the frontend URL the reset token gets embedded into.
	ResetLinkBase string
	// InterviewLinkBase is the frontend URL for candidate interview access.
	InterviewLinkBase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OllamaURL     string
	OllamaModel   string
	OllamaTimeout time.Duration

	AdminEmail    string
	AdminPassword string

	TelemetryEndpoint  string
	TelemetryInsecure  bool
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
}

// Load reads configuration from environment variables. Required values fail
// fast; everything else carries a sane default.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment: getEnv("APP_ENV", "development"),
		ServiceName: getEnv("SERVICE_NAME", "interview-platform-api"),
		HTTPPort:    getEnv("HTTP_PORT", "5000"),

		HTTPShutdownTimeout: getDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),

		MongoURI:    strings.TrimSpace(os.Getenv("MONGO_URI")),
		MongoDBName: strings.TrimSpace(os.Getenv("MONGO_DB_NAME")),

		JWTSecret:       strings.TrimSpace(os.Getenv("JWT_SECRET")),
		SessionTokenTTL: getDuration("SESSION_TOKEN_TTL", 24*time.Hour),
		ResetTokenTTL:   getDuration("RESET_TOKEN_TTL", 15*time.Minute),

		MailServer:   getEnv("MAIL_SERVER", "smtp.gmail.com"),
		MailPort:     getInt("MAIL_PORT", 587),
		MailUsername: strings.TrimSpace(os.Getenv("MAIL_USERNAME")),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailFrom:     strings.TrimSpace(os.Getenv("MAIL_DEFAULT_SENDER")),
		MailUseTLS:   getBool("MAIL_USE_TLS", true),

		ResetLinkBase:     getEnv("RESET_LINK_BASE", "http://localhost:3000/auth/reset-password"),
		InterviewLinkBase: getEnv("INTERVIEW_LINK_BASE", "http://localhost:3000/interview"),

		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),

		OllamaURL:     getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3.2"),
		OllamaTimeout: getDuration("OLLAMA_TIMEOUT", 5*time.Minute),

		AdminEmail:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		TelemetryEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		TelemetryInsecure:  getBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		CORSAllowedMethods: getList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		CORSAllowedHeaders: getList("CORS_ALLOWED_HEADERS", []string{"Authorization", "Content-Type"}),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.MongoDBName == "" {
		return Config{}, fmt.Errorf("MONGO_DB_NAME is required")
	}
	if cfg.MailUsername == "" || cfg.MailPassword == "" {
		return Config{}, fmt.Errorf("MAIL_USERNAME and MAIL_PASSWORD are required")
	}
	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.MailUsername
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(v) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func getList(key string, def []string) []string {
	if v, ok := os.LookupEnv(key); ok {
		parts := strings.Split(v, ",")
		var cleaned []string
		for _, p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		if len(cleaned) > 0 {
			return cleaned
		}
	}
	return def
}
