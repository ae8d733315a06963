package config

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

const DefaultConfigFileName = "taskman.toml"

// Config keeps runtime settings for the daemon.
type Config struct {
	DBPath                   string `toml:"db_path"`
	CheckIntervalSeconds     int    `toml:"check_interval_seconds"`
	UpcomingThresholdMinutes int    `toml:"upcoming_threshold_minutes"`
	RemindersEnabled         bool   `toml:"reminders_enabled"`
	TelegramToken            string `toml:"telegram_token"`
	TelegramChatID           int64  `toml:"telegram_chat_id"`
}

// LoadOrCreate reads the config file, writing one with defaults if it does
// not exist yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "taskman.db"
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.CheckIntervalSeconds <= 0 {
		return fmt.Errorf("check_interval_seconds must be positive, got %d", c.CheckIntervalSeconds)
	}
	if c.UpcomingThresholdMinutes <= 0 {
		return fmt.Errorf("upcoming_threshold_minutes must be positive, got %d", c.UpcomingThresholdMinutes)
	}
	return nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:                   "taskman.db",
		CheckIntervalSeconds:     10,
		UpcomingThresholdMinutes: 30,
		RemindersEnabled:         true,
	}
}
