package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	GinMode  string
	SiteName string
	// Mail dispatch
	MailProvider string // "smtp" or "postmark"
	SMTPHost     string
	SMTPPort     string
	// Names of the env vars holding the mailbox credentials. The values are
	// read at dispatch time, not here.
	SMTPUserEnv    string
	SMTPPassEnv    string
	SMTPTimeout    time.Duration
	ContactEmailTo string // Optional override, defaults to the mailbox itself
	// Postmark
	PostmarkServerToken  string
	PostmarkAccountToken string
	PostmarkFromEmail    string
	// Redis
	RedisURL      string
	RedisPassword string
	// Rate Limiting
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	RateLimitGlobalThreshold  int
	// HTTP
	CORSAllowedOrigins []string
	SecurityHeaders    bool
}

func LoadConfig() (*Config, error) {
	// .env is optional; deployed environments inject variables directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		SiteName: getEnv("SITE_NAME", "QuantumWorks"),
		// Mail dispatch (Zoho over implicit TLS by default)
		MailProvider:   strings.ToLower(getEnv("MAIL_PROVIDER", "smtp")),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.zoho.in"),
		SMTPPort:       getEnv("SMTP_PORT", "465"),
		SMTPUserEnv:    getEnv("SMTP_USER_ENV", "ZOHO_USER"),
		SMTPPassEnv:    getEnv("SMTP_PASS_ENV", "ZOHO_PASS"),
		SMTPTimeout:    getEnvDuration("SMTP_TIMEOUT", 15*time.Second),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", ""),
		// Postmark
		PostmarkServerToken:  getEnv("POSTMARK_SERVER_TOKEN", ""),
		PostmarkAccountToken: getEnv("POSTMARK_ACCOUNT_TOKEN", ""),
		PostmarkFromEmail:    getEnv("POSTMARK_FROM_EMAIL", "contact@quantumworks.services"),
		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// HTTP
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		SecurityHeaders:    getEnvBool("SECURITY_HEADERS", true),
	}

	if cfg.MailProvider != "smtp" && cfg.MailProvider != "postmark" {
		log.Printf("WARNING: unknown MAIL_PROVIDER %q, falling back to smtp", cfg.MailProvider)
		cfg.MailProvider = "smtp"
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting and newsletter will use in-memory fallback.")
	}

	return cfg, nil
}

// RateLimitWindow returns the rate limit window as a duration
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration parses values like "15s" or "2m"
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty entries
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
