// internal/config/config.go
//
// Typed configuration loaded with viper.
// Precedence: environment variables > config file > defaults.
// Environment names are the keys upper-cased with "." replaced by "_"
// (server.port → SERVER_PORT); PORT, CLIENT_ORIGIN and JWT_SECRET are also honoured.

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the server and CLI.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Lexicon LexiconConfig `mapstructure:"lexicon"`
	Storage StorageConfig `mapstructure:"storage"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Audio   AudioConfig   `mapstructure:"audio"`
	Game    GameConfig    `mapstructure:"game"`
	Daily   DailyConfig   `mapstructure:"daily"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ClientOrigin   string        `mapstructure:"client_origin"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | console
}

// LexiconConfig points at the word list; empty means the embedded one.
type LexiconConfig struct {
	File string `mapstructure:"file"`
}

// StorageConfig holds the SQLite location.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// AuthConfig holds device token settings.
type AuthConfig struct {
	DeviceSecret    string `mapstructure:"device_secret"`
	DeviceTokenDays int    `mapstructure:"device_token_days"`
}

// AudioConfig locates pronunciation clips.
type AudioConfig struct {
	Dir string `mapstructure:"dir"`
	Ext string `mapstructure:"ext"`
}

// GameConfig holds game session settings.
type GameConfig struct {
	FrameMS    int           `mapstructure:"frame_ms"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// DailyConfig holds the featured-words settings.
type DailyConfig struct {
	Salt  string `mapstructure:"salt"`
	Count int    `mapstructure:"count"`
}

// Frame returns the sprint frame period.
func (g GameConfig) Frame() time.Duration {
	return time.Duration(g.FrameMS) * time.Millisecond
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Load reads configuration. An empty file searches for lexique.{yaml,json,toml,env}
// in . and ./config; a missing file is not an error in that case.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("server.client_origin", "SERVER_CLIENT_ORIGIN", "CLIENT_ORIGIN")
	_ = v.BindEnv("auth.device_secret", "AUTH_DEVICE_SECRET", "JWT_SECRET")

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("lexique")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if cfg.Game.FrameMS <= 0 {
		return nil, fmt.Errorf("game.frame_ms must be positive, got %d", cfg.Game.FrameMS)
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5175)
	v.SetDefault("server.client_origin", "http://localhost:5173")
	v.SetDefault("server.request_timeout", "10s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("lexicon.file", "")
	v.SetDefault("storage.path", "./data/lexique.db")

	v.SetDefault("auth.device_secret", "dev_device_secret")
	v.SetDefault("auth.device_token_days", 365)

	v.SetDefault("audio.dir", "./audio")
	v.SetDefault("audio.ext", ".mp3")

	v.SetDefault("game.frame_ms", 16)
	v.SetDefault("game.session_ttl", "2h")

	v.SetDefault("daily.salt", "local_dev_salt")
	v.SetDefault("daily.count", 3)
}
