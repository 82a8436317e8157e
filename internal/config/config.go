package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

const (
	envSalonAPIToken = "SALON_API_TOKEN"
	envDBPassword    = "DB_PASSWORD"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Database   DatabaseConfig   `toml:"database"`
	SalonAPI   SalonAPIConfig   `toml:"salon_api"`
	Scheduling SchedulingConfig `toml:"scheduling"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DatabaseConfig хранилище снимков расписаний, Enabled=false отключает его целиком
type DatabaseConfig struct {
	Enabled         bool   `toml:"enabled"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	Migrate         bool   `toml:"migrate"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type SalonAPIConfig struct {
	URL   string `toml:"url"`
	Token string `toml:"token"`
	// Timeout в секундах
	Timeout   int     `toml:"timeout"`
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
	// WeekdayKeys short (mon..sun) или long (Monday..Sunday)
	WeekdayKeys string `toml:"weekday_keys"`
	WithSeconds bool   `toml:"with_seconds"`
}

// WireFormat формат недельного расписания для salon API
func (c SalonAPIConfig) WireFormat() domain.WireFormat {
	return domain.WireFormat{
		Keys:        domain.WeekdayKeyStyle(c.WeekdayKeys),
		WithSeconds: c.WithSeconds,
	}
}

func (c SalonAPIConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

type SchedulingConfig struct {
	// TrackDrift сравнивать расписание с последним сохраненным снимком, требует database.enabled
	TrackDrift bool `toml:"track_drift"`
}

// Load читает config.toml, затем переменные окружения (и .env, если он есть)
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	// .env необязателен
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default значения для ключей, отсутствующих в файле
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "salon_scheduling",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			Migrate:         true,
		},
		SalonAPI: SalonAPIConfig{
			Timeout:     5,
			WeekdayKeys: string(domain.WeekdayKeysShort),
		},
	}
}

func (c *Config) applyEnv() {
	if token := os.Getenv(envSalonAPIToken); token != "" {
		c.SalonAPI.Token = token
	}
	if password := os.Getenv(envDBPassword); password != "" {
		c.Database.Password = password
	}
}

// Validate проверяет значения, с которыми сервис не сможет работать
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.SalonAPI.URL == "" {
		return fmt.Errorf("%w: salon_api.url is required", ErrInvalidConfig)
	}
	if u, err := url.Parse(c.SalonAPI.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: salon_api.url %q", ErrInvalidConfig, c.SalonAPI.URL)
	}
	if c.SalonAPI.Timeout <= 0 {
		return fmt.Errorf("%w: salon_api.timeout must be positive", ErrInvalidConfig)
	}
	if c.SalonAPI.RateLimit < 0 {
		return fmt.Errorf("%w: salon_api.rate_limit must not be negative", ErrInvalidConfig)
	}
	switch domain.WeekdayKeyStyle(c.SalonAPI.WeekdayKeys) {
	case domain.WeekdayKeysShort, domain.WeekdayKeysLong:
	default:
		return fmt.Errorf("%w: salon_api.weekday_keys %q", ErrInvalidConfig, c.SalonAPI.WeekdayKeys)
	}
	if c.Database.Enabled && (c.Database.Host == "" || c.Database.DBName == "") {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Scheduling.TrackDrift && !c.Database.Enabled {
		return fmt.Errorf("%w: scheduling.track_drift requires database.enabled", ErrInvalidConfig)
	}
	return nil
}
