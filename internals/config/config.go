package config

import (
	"errors"
	"log"
	"time"
)

// Config holds the server settings, sourced from the environment.
type Config struct {
	Debug bool
	Addr  string

	// DBPath is the SQLite database file backing the order store
	DBPath string

	// SecretKey signs API access tokens
	SecretKey string

	AdminUsername string
	// AdminPasswordHash is either "salt:hexdigest" (PBKDF2) or a bcrypt hash
	AdminPasswordHash string

	CookieDomain string
	AuditLogPath string

	// JanitorInterval is the cadence of the background sweep of the auth stores
	JanitorInterval time.Duration
}

// Load reads the configuration from the environment and validates the parts
// a deployment must not get wrong.
func Load() (*Config, error) {
	cfg := &Config{
		Debug:             GetEnvAsBool("DEBUG", false),
		Addr:              GetEnvAsStr("LISTEN_ADDR", ":8000"),
		DBPath:            GetEnvAsStr("DB_PATH", "student_services.db"),
		SecretKey:         GetEnv("SECRET_KEY"),
		AdminUsername:     GetEnvAsStr("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: GetEnv("ADMIN_PASSWORD_HASH"),
		CookieDomain:      GetEnvAsStr("COOKIE_DOMAIN", ""),
		AuditLogPath:      GetEnvAsStr("AUDIT_LOG_PATH", "logs/security.log"),
		JanitorInterval:   time.Duration(GetEnvAsInt("JANITOR_INTERVAL_MINUTES", 30, true)) * time.Minute,
	}

	if cfg.SecretKey == "" {
		return nil, errors.New("SECRET_KEY must be set")
	}
	if len(cfg.SecretKey) < 32 {
		return nil, errors.New("SECRET_KEY must be at least 32 characters")
	}
	if cfg.AdminPasswordHash == "" {
		return nil, errors.New("ADMIN_PASSWORD_HASH must be set; run with -hash-password to generate one")
	}
	if !cfg.Debug && cfg.AdminUsername == "admin" {
		log.Println("Warning: ADMIN_USERNAME is still the default; change it for production")
	}

	return cfg, nil
}

// Cookies derives the cookie baseline from the deployment mode.
func (c *Config) Cookies() *CookieConfig {
	return &CookieConfig{
		Domain:   c.CookieDomain,
		IsSecure: !c.Debug,
		HttpOnly: true,
	}
}
