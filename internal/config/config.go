package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/Zuo-Peng/chat-analyzer/internal/parse"
)

type Config struct {
	DBPath         string `toml:"db_path" validate:"required"`
	ListenAddr     string `toml:"listen_addr" validate:"required,hostname_port"`
	MaxUploadBytes int64  `toml:"max_upload_bytes" validate:"gt=0"`
	RecentLimit    int    `toml:"recent_limit" validate:"gt=0,lte=1000"`
	DateOrder      string `toml:"date_order" validate:"omitempty,oneof=dmy mdy auto"`
	RetentionDays  int    `toml:"retention_days" validate:"gte=0"`
	PruneSchedule  string `toml:"prune_schedule" validate:"required_with=RetentionDays"`
	LogLevel       string `toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat      string `toml:"log_format" validate:"omitempty,oneof=console json"`
}

const defaultMaxUploadBytes = 50 * 1024 * 1024

// Default returns the built-in configuration rooted at home.
func Default(home string) *Config {
	return &Config{
		DBPath:         filepath.Join(home, ".config", "cha", "cha.db"),
		ListenAddr:     "127.0.0.1:8080",
		MaxUploadBytes: defaultMaxUploadBytes,
		RecentLimit:    10,
		DateOrder:      string(parse.DayFirst),
		PruneSchedule:  "0 3 * * *",
		LogLevel:       "info",
		LogFormat:      "console",
	}
}

// Load reads ~/.config/cha/config.toml (or $CHA_CONFIG) over the defaults.
// A missing file is not an error.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfgPath := os.Getenv("CHA_CONFIG")
	if cfgPath == "" {
		cfgPath = filepath.Join(home, ".config", "cha", "config.toml")
	}
	return LoadFile(expandHome(cfgPath, home), home)
}

// LoadFile is Load with an explicit config path and home directory.
func LoadFile(cfgPath, home string) (*Config, error) {
	cfg := Default(home)

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	cfg.DBPath = expandHome(cfg.DBPath, home)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgPath, err)
	}
	return cfg, nil
}

// Parser builds a transcript parser honoring date_order.
func (c *Config) Parser() *parse.Parser {
	order, err := parse.ParseDateOrder(c.DateOrder)
	if err != nil {
		order = parse.DayFirst
	}
	return parse.NewParser(parse.Options{DateOrder: order})
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
