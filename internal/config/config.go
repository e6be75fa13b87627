package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"household-ledger-go/pkg/logger"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	HTTPPort       string
	Env            string
	Store          string
	RequestTimeout time.Duration
	CORSOrigins    []string
	Ledger         LedgerConfig
	Accounts       AccountsConfig
	DB             DBConfig
}

type LedgerConfig struct {
	DefaultInstallmentMonths int
}

type AccountsConfig struct {
	ViewCacheTTL time.Duration
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Migrate         bool
}

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := newViper()

	cfg := Config{
		HTTPPort:       v.GetString("HTTP_PORT"),
		Env:            strings.ToLower(strings.TrimSpace(v.GetString("ENV"))),
		Store:          strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND"))),
		RequestTimeout: v.GetDuration("HTTP_REQUEST_TIMEOUT"),
		CORSOrigins:    splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		Ledger: LedgerConfig{
			DefaultInstallmentMonths: v.GetInt("DEFAULT_INSTALLMENT_MONTHS"),
		},
		Accounts: AccountsConfig{
			ViewCacheTTL: v.GetDuration("ACCOUNT_VIEW_CACHE_TTL"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			TimeZone:        v.GetString("DB_TIMEZONE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			Migrate:         v.GetBool("DB_MIGRATE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("STORE_BACKEND", StorePostgres)
	v.SetDefault("HTTP_REQUEST_TIMEOUT", 30*time.Second)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("DEFAULT_INSTALLMENT_MONTHS", 3)
	v.SetDefault("ACCOUNT_VIEW_CACHE_TTL", 30*time.Second)

	v.SetDefault("DB_DSN", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "household_ledger")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	v.SetDefault("DB_MIGRATE", true)

	return v
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if c.HTTPPort == "" {
		problems = append(problems, "HTTP_PORT is required")
	}
	switch c.Store {
	case StorePostgres, StoreMemory:
	default:
		problems = append(problems, fmt.Sprintf("STORE_BACKEND must be %q or %q, got %q", StorePostgres, StoreMemory, c.Store))
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, "HTTP_REQUEST_TIMEOUT must be greater than 0")
	}
	if c.Ledger.DefaultInstallmentMonths <= 0 {
		problems = append(problems, "DEFAULT_INSTALLMENT_MONTHS must be greater than 0")
	}
	if c.Accounts.ViewCacheTTL < 0 {
		problems = append(problems, "ACCOUNT_VIEW_CACHE_TTL must not be negative")
	}
	if c.Store == StorePostgres && c.DB.DSN == "" && (c.DB.Host == "" || c.DB.Name == "") {
		problems = append(problems, "DB_DSN or DB_HOST and DB_NAME are required for the postgres store")
	}

	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, ", "))
	}
	return nil
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
