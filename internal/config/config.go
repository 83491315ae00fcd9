// Package config загружает настройки пункта выдачи из YAML-файла
// и переменных окружения PICKPOINT_*.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"pickpoint/internal/commission"
)

// ServerConfig параметры HTTP-сервера
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggerConfig уровень логирования zap
type LoggerConfig struct {
	Level string `yaml:"level"`
}

// StorageConfig внешнее KV-хранилище: memory, sqlite или pgx
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// CommissionConfig ставки комиссий в долях
type CommissionConfig struct {
	CuratorSolo    float64 `yaml:"curator_solo"`
	CuratorAssist  float64 `yaml:"curator_assist"`
	Intern         float64 `yaml:"intern"`
	AssistClawback float64 `yaml:"assist_clawback"`
	Bonus          float64 `yaml:"bonus"`
}

// AuthConfig код выхода из режима стажёра и подпись токена куратора
type AuthConfig struct {
	AccessCode  string        `yaml:"access_code"`
	TokenSecret string        `yaml:"token_secret"`
	TokenTTL    time.Duration `yaml:"token_ttl"`
}

// EventsConfig публикация событий заказов. Пустой список брокеров отключает её.
type EventsConfig struct {
	KafkaBrokers string `yaml:"kafka_brokers"`
	Topic        string `yaml:"topic"`
}

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logger     LoggerConfig     `yaml:"logger"`
	Storage    StorageConfig    `yaml:"storage"`
	Commission CommissionConfig `yaml:"commission"`
	Auth       AuthConfig       `yaml:"auth"`
	Events     EventsConfig     `yaml:"events"`
}

// Default настройки без файла
func Default() Config {
	return Config{
		Server:  ServerConfig{Addr: ":9091", ShutdownTimeout: 5 * time.Second},
		Logger:  LoggerConfig{Level: "info"},
		Storage: StorageConfig{Driver: "memory"},
		Commission: CommissionConfig{
			CuratorSolo:    0.25,
			CuratorAssist:  0.05,
			Intern:         0.10,
			AssistClawback: 0.03,
			Bonus:          0.03,
		},
		Auth: AuthConfig{
			AccessCode:  "000000",
			TokenSecret: "change-me",
			TokenTTL:    12 * time.Hour,
		},
		Events: EventsConfig{Topic: "pickpoint.orders"},
	}
}

// Load читает файл поверх значений по умолчанию. Пустой path пропускает файл.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	set := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	set(&c.Server.Addr, "PICKPOINT_ADDR")
	set(&c.Logger.Level, "PICKPOINT_LOG_LEVEL")
	set(&c.Storage.Driver, "PICKPOINT_STORAGE_DRIVER")
	set(&c.Storage.DSN, "PICKPOINT_STORAGE_DSN")
	set(&c.Auth.AccessCode, "PICKPOINT_ACCESS_CODE")
	set(&c.Auth.TokenSecret, "PICKPOINT_TOKEN_SECRET")
	set(&c.Events.KafkaBrokers, "PICKPOINT_KAFKA_BROKERS")
}

// Validate проверяет код доступа и ставки
func (c Config) Validate() error {
	var errs []error
	if !isAccessCode(c.Auth.AccessCode) {
		errs = append(errs, errors.New("auth.access_code must be 6 digits"))
	}
	if c.Auth.TokenSecret == "" {
		errs = append(errs, errors.New("auth.token_secret is required"))
	}
	if c.Events.KafkaBrokers != "" && c.Events.Topic == "" {
		errs = append(errs, errors.New("events.topic is required with kafka_brokers"))
	}
	rates := map[string]float64{
		"curator_solo":    c.Commission.CuratorSolo,
		"curator_assist":  c.Commission.CuratorAssist,
		"intern":          c.Commission.Intern,
		"assist_clawback": c.Commission.AssistClawback,
		"bonus":           c.Commission.Bonus,
	}
	for name, r := range rates {
		if r < 0 || r > 1 {
			errs = append(errs, fmt.Errorf("commission.%s must be within [0, 1], got %v", name, r))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Rates ставки для движка комиссий
func (c CommissionConfig) Rates() commission.Rates {
	return commission.Rates{
		CuratorSolo:    decimal.NewFromFloat(c.CuratorSolo),
		CuratorAssist:  decimal.NewFromFloat(c.CuratorAssist),
		Intern:         decimal.NewFromFloat(c.Intern),
		AssistClawback: decimal.NewFromFloat(c.AssistClawback),
		Bonus:          decimal.NewFromFloat(c.Bonus),
	}
}

func isAccessCode(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
