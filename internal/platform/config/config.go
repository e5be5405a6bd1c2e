// Package config はYAML設定ファイルと環境変数からサービス設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"swing_backend/internal/feature/swing/domain/classifier"
)

// Config はサービス全体の設定です。未指定の項目はdefaultタグの値になります。
type Config struct {
	Server struct {
		Addr            string        `yaml:"addr" default:":8080" validate:"required"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s" validate:"gt=0"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s" validate:"gt=0"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s" validate:"gt=0"`
		// AllowOrigins が空の場合は全オリジンを許可します。
		AllowOrigins []string `yaml:"allow_origins" validate:"dive,url"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"json" validate:"oneof=json text"`
	} `yaml:"log"`
	Classifier classifier.Thresholds `yaml:"classifier"`
	Batch      struct {
		Workers int `yaml:"workers" default:"4" validate:"gte=1,lte=64"`
	} `yaml:"batch"`
	Cache struct {
		Namespace   string `yaml:"namespace" default:"prices" validate:"required"`
		Location    string `yaml:"location" default:"Asia/Shanghai" validate:"required"`
		RefreshHour int    `yaml:"refresh_hour" default:"17" validate:"gte=0,lte=23"`
	} `yaml:"cache"`
	RateLimit struct {
		RPS   float64 `yaml:"rps" default:"20" validate:"gt=0"`
		Burst int     `yaml:"burst" default:"40" validate:"gte=1"`
	} `yaml:"rate_limit"`
	Metrics struct {
		// Disabled は/metricsを公開しない場合にtrueにします。
		Disabled bool   `yaml:"disabled"`
		Path     string `yaml:"path" default:"/metrics" validate:"startswith=/"`
	} `yaml:"metrics"`
}

var validate = validator.New()

// Load はpathのYAMLを読み込み、既定値と環境変数を適用して検証します。
// pathが空、または存在しない場合は既定値と環境変数のみを使用します。
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Warn("config file not found, using defaults", "path", path)
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// Validate は設定値を検証します。
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.Cache.Location); err != nil {
		return fmt.Errorf("cache.location: %w", err)
	}
	return nil
}

// applyEnv はデプロイ時に変わる値を環境変数で上書きします。
func (c *Config) applyEnv() error {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	floats := []struct {
		env string
		dst *float64
	}{
		{"SWING_SWING_UP", &c.Classifier.SwingUp},
		{"SWING_SWING_DOWN", &c.Classifier.SwingDown},
		{"SWING_RESUME_UP", &c.Classifier.ResumeUp},
		{"SWING_RESUME_DOWN", &c.Classifier.ResumeDown},
		{"RATE_LIMIT_RPS", &c.RateLimit.RPS},
	}
	for _, f := range floats {
		v := os.Getenv(f.env)
		if v == "" {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.env, err)
		}
		*f.dst = x
	}
	return nil
}

// SlogLevel はログレベルをslog.Levelに変換します。
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// CacheLocation は日次更新時刻のタイムゾーンを返します。Validate済みの設定では失敗しません。
func (c *Config) CacheLocation() *time.Location {
	loc, err := time.LoadLocation(c.Cache.Location)
	if err != nil {
		return time.UTC
	}
	return loc
}
