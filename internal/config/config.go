package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Bot      BotConfig      `toml:"bot"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// BotConfig настройки Telegram-бота
type BotConfig struct {
	Token string `toml:"token"`

	// AdminGroupID чат, куда уходят карточки бронирований.
	// 0 означает, что канал оператора не настроен: заявки принимаются,
	// но пользователю сообщается, что доставить их некуда.
	AdminGroupID int64 `toml:"admin_group_id"`

	DefaultLang     string `toml:"default_lang"`
	AuditWebsiteURL string `toml:"audit_website_url"`
	PollTimeout     int    `toml:"poll_timeout"` // seconds
}

// DatabaseConfig настройки PostgreSQL для хранилища профилей
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN собирает строку подключения
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// ServerConfig настройки служебного HTTP-сервера (метрики, health)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	IdleTimeout     int `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load читает и валидирует конфигурацию
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Bot: BotConfig{
			DefaultLang:     "uz",
			AuditWebsiteURL: "https://mcompany.uz/audit/starter/",
			PollTimeout:     30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			File:  "logs/bot.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "consult-booking-bot",
		},
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Bot.Token) == "" {
		return errors.New("config: bot.token is required")
	}

	switch c.Bot.DefaultLang {
	case "uz", "en", "ru":
	default:
		return fmt.Errorf("config: unsupported default_lang %q", c.Bot.DefaultLang)
	}

	if c.Database.Enabled && c.Database.DBName == "" {
		return errors.New("config: database.dbname is required when database.enabled")
	}

	return nil
}
