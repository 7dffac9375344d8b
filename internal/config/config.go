package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	AuthModeFirebase = "firebase"
	AuthModeHeader   = "header"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Database DatabaseConfig `toml:"database"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Firebase FirebaseConfig `toml:"firebase"`
	Redis    RedisConfig    `toml:"redis"`
	Auth     AuthConfig     `toml:"auth"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig HTTP сервер; таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" validate:"required,min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" validate:"min=0"`
	WriteTimeout    int `toml:"write_timeout" validate:"min=0"`
	IdleTimeout     int `toml:"idle_timeout" validate:"min=0"`
	ShutdownTimeout int `toml:"shutdown_timeout" validate:"min=0"`
}

// LogsConfig логирование; пустой File - только stdout
type LogsConfig struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
	File  string `toml:"file"`
}

// DatabaseConfig основное хранилище записей (PostgreSQL)
type DatabaseConfig struct {
	Host            string `toml:"host" validate:"required"`
	Port            int    `toml:"port" validate:"required"`
	User            string `toml:"user" validate:"required"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" validate:"required"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int    `toml:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" validate:"min=0"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// MetricsConfig Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// FirebaseConfig Realtime Database и Firebase Auth.
// При Enabled=false каталог, питомцы и старые записи хранятся в памяти.
type FirebaseConfig struct {
	Enabled         bool   `toml:"enabled"`
	CredentialsFile string `toml:"credentials_file" validate:"required_if=Enabled true"`
	DatabaseURL     string `toml:"database_url" validate:"required_if=Enabled true"`
	Timeout         int    `toml:"timeout" validate:"min=0"` // секунды на один вызов
}

// RedisConfig кэш каталога
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr" validate:"required_if=Enabled true"`
	Password string `toml:"password"`
	DB       int    `toml:"db" validate:"min=0"`
	TTL      int    `toml:"ttl" validate:"min=0"` // секунды
}

// AuthConfig режим аутентификации: firebase (ID token) или header (X-User-ID, локально)
type AuthConfig struct {
	Mode       string `toml:"mode" validate:"oneof=firebase header"`
	AdminClaim string `toml:"admin_claim"`
}

// BookingConfig параметры записи, рабочего времени и мастера записи
type BookingConfig struct {
	AdvanceDays     int      `toml:"advance_days" validate:"min=0"`
	OpenTime        string   `toml:"open_time" validate:"required"`  // "09:00"
	CloseTime       string   `toml:"close_time" validate:"required"` // "18:00"
	SlotStep        int      `toml:"slot_step" validate:"min=5"`     // минуты
	MinNotice       int      `toml:"min_notice" validate:"min=0"`    // минуты
	ClosedDays      []string `toml:"closed_days" validate:"dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	SessionTTL      int      `toml:"session_ttl" validate:"min=1"`      // секунды
	JanitorInterval int      `toml:"janitor_interval" validate:"min=1"` // секунды
}

// ClosedWeekdays выходные дни
func (b BookingConfig) ClosedWeekdays() []time.Weekday {
	days := make([]time.Weekday, 0, len(b.ClosedDays))
	for _, name := range b.ClosedDays {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			if wd.String() == name {
				days = append(days, wd)
			}
		}
	}
	return days
}

// Load читает .env (если есть), затем TOML файл, затем переопределения из окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.Auth.Mode == AuthModeFirebase && !cfg.Firebase.Enabled {
		return nil, errors.New("auth mode firebase requires firebase.enabled = true")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// TimeoutDuration таймаут одного вызова Firebase
func (f FirebaseConfig) TimeoutDuration() time.Duration {
	return time.Duration(f.Timeout) * time.Second
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Logs: LogsConfig{Level: "info"},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Metrics:  MetricsConfig{ServiceName: "petcare-service", Path: "/metrics"},
		Firebase: FirebaseConfig{Timeout: 5},
		Redis:    RedisConfig{TTL: 300},
		Auth:     AuthConfig{Mode: AuthModeHeader, AdminClaim: "admin"},
		Booking: BookingConfig{
			AdvanceDays:     90,
			OpenTime:        "09:00",
			CloseTime:       "18:00",
			SlotStep:        30,
			MinNotice:       60,
			SessionTTL:      1800,
			JanitorInterval: 60,
		},
	}
}

// applyEnv переопределяет секреты и адреса из переменных окружения
func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"DB_HOST":                   &cfg.Database.Host,
		"DB_USER":                   &cfg.Database.User,
		"DB_PASSWORD":               &cfg.Database.Password,
		"DB_NAME":                   &cfg.Database.DBName,
		"FIREBASE_CREDENTIALS_FILE": &cfg.Firebase.CredentialsFile,
		"FIREBASE_DATABASE_URL":     &cfg.Firebase.DatabaseURL,
		"REDIS_ADDR":                &cfg.Redis.Addr,
		"REDIS_PASSWORD":            &cfg.Redis.Password,
		"AUTH_MODE":                 &cfg.Auth.Mode,
		"LOG_LEVEL":                 &cfg.Logs.Level,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"HTTP_PORT": &cfg.Server.HTTPPort,
		"DB_PORT":   &cfg.Database.Port,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("env %s: %w", key, err)
		}
		*dst = n
	}

	return nil
}
