// Package config предоставляет структуры и функции для загрузки настроек клиента.
//
// Настройки читаются из YAML-файла (путь передаётся флагом --config или через
// CONFIG_PATH) и переопределяются переменными окружения. Если файл не указан,
// конфигурация собирается только из окружения и значений по умолчанию.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Допустимые значения окружения.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config общая структура для хранения настроек клиента.
type Config struct {
	Env     string  `yaml:"env" env:"ENV" env-default:"local"`
	API     API     `yaml:"api"`
	Log     Log     `yaml:"log"`
	Metrics Metrics `yaml:"metrics"`
}

// API структура для настройки подключения к удалённому API.
type API struct {
	BaseURL   string        `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:8000/api"`
	Timeout   time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"30s"`
	RateLimit float64       `yaml:"rate_limit" env:"API_RATE_LIMIT" env-default:"0"`
	RateBurst int           `yaml:"rate_burst" env:"API_RATE_BURST" env-default:"5"`
	UserAgent string        `yaml:"user_agent" env:"API_USER_AGENT" env-default:"research-assistant"`
}

// Log структура для настройки журнала. Терминал занят интерфейсом,
// поэтому журнал всегда пишется в файл.
type Log struct {
	Path  string `yaml:"path" env:"LOG_PATH" env-default:"research-assistant.log"`
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Metrics структура для отладочного HTTP-сервера с метриками.
// Пустой адрес отключает сервер.
type Metrics struct {
	Address string `yaml:"address" env:"METRICS_ADDRESS"`
}

// Load читает конфиг из файла path, а при пустом path только из окружения.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &cfg, cfg.validate()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, path)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: cannot read config: %w", op, err)
	}
	return &cfg, cfg.validate()
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
// Если path пуст, используется переменная окружения CONFIG_PATH.
func MustLoad(path string) *Config {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("config: unknown env %q", c.Env)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("config: api.base_url is empty")
	}
	if c.API.RateLimit < 0 || c.API.RateBurst < 0 {
		return fmt.Errorf("config: api rate limit must not be negative")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"API:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"  RateLimit: %g\n"+
			"  RateBurst: %d\n"+
			"  UserAgent: %s\n"+
			"Log:\n"+
			"  Path: %s\n"+
			"  Level: %s\n"+
			"Metrics:\n"+
			"  Address: %s\n",
		c.Env,
		c.API.BaseURL,
		c.API.Timeout,
		c.API.RateLimit,
		c.API.RateBurst,
		c.API.UserAgent,
		c.Log.Path,
		c.Log.Level,
		c.Metrics.Address,
	)
}
