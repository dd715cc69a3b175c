package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port             string   `mapstructure:"PORT"`
	Env              string   `mapstructure:"ENV"`
	DatabaseURL      string   `mapstructure:"DATABASE_URL"`
	DBMaxConns       int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns       int32    `mapstructure:"DB_MIN_CONNS"`
	DBSchema         string   `mapstructure:"DB_SCHEMA"`
	SessionSecret    string   `mapstructure:"SESSION_SECRET"`
	SessionCookie    string   `mapstructure:"SESSION_COOKIE"`
	CredentialScheme string   `mapstructure:"CREDENTIAL_SCHEME"`
	AdminUsername    string   `mapstructure:"ADMIN_USERNAME"`
	AdminPassword    string   `mapstructure:"ADMIN_PASSWORD"`
	DoctorPassword   string   `mapstructure:"DOCTOR_PASSWORD"`
	ViewMode         string   `mapstructure:"VIEW_MODE"`
	TemplatesDir     string   `mapstructure:"TEMPLATES_DIR"`
	SeedOnStart      bool     `mapstructure:"SEED_ON_START"`
	KafkaBrokers     []string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic       string   `mapstructure:"KAFKA_TOPIC"`
	IDAllocAttempts  int      `mapstructure:"ID_ALLOC_ATTEMPTS"`
	CORSOrigins      []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("DB_SCHEMA", "public")
	v.SetDefault("SESSION_COOKIE", "frontdesk_session")
	v.SetDefault("CREDENTIAL_SCHEME", "plain")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin")
	v.SetDefault("DOCTOR_PASSWORD", "doctor")
	v.SetDefault("VIEW_MODE", "json")
	v.SetDefault("TEMPLATES_DIR", "./templates")
	v.SetDefault("SEED_ON_START", true)
	v.SetDefault("KAFKA_TOPIC", "frontdesk.appointments")
	v.SetDefault("ID_ALLOC_ATTEMPTS", 8)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	for _, key := range []string{
		"PORT", "ENV", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS", "DB_SCHEMA",
		"SESSION_SECRET", "SESSION_COOKIE", "CREDENTIAL_SCHEME",
		"ADMIN_USERNAME", "ADMIN_PASSWORD", "DOCTOR_PASSWORD",
		"VIEW_MODE", "TEMPLATES_DIR", "SEED_ON_START",
		"KAFKA_BROKERS", "KAFKA_TOPIC", "ID_ALLOC_ATTEMPTS", "CORS_ORIGINS",
	} {
		v.BindEnv(key)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.KafkaBrokers = splitList(cfg.KafkaBrokers, v.GetString("KAFKA_BROKERS"))
	cfg.CORSOrigins = splitList(cfg.CORSOrigins, v.GetString("CORS_ORIGINS"))

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: a random session secret is used unless SESSION_SECRET is set.")
	}

	return cfg, nil
}

// splitList normalizes comma separated env values, trimming whitespace
// around each element.
func splitList(parsed []string, raw string) []string {
	if raw == "" {
		return parsed
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside development
// SESSION_SECRET must hold at least 32 bytes.
func (c *Config) Validate() error {
	if !c.IsDev() && len(c.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters when ENV=%q", c.Env)
	}

	switch c.CredentialScheme {
	case "plain", "bcrypt":
	default:
		return fmt.Errorf("CREDENTIAL_SCHEME must be \"plain\" or \"bcrypt\", got %q", c.CredentialScheme)
	}

	switch c.ViewMode {
	case "json", "html":
	default:
		return fmt.Errorf("VIEW_MODE must be \"json\" or \"html\", got %q", c.ViewMode)
	}

	if c.IDAllocAttempts < 1 {
		return fmt.Errorf("ID_ALLOC_ATTEMPTS must be positive, got %d", c.IDAllocAttempts)
	}

	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}

	return nil
}
