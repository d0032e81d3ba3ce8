package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Bot struct {
		Token   string `yaml:"token"`
		AdminID int64  `yaml:"admin_id"`
	} `yaml:"bot"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Quiz struct {
		AnswerDelay      string `yaml:"answer_delay"`
		ScheduleFirst    string `yaml:"schedule_first"`
		ScheduleInterval string `yaml:"schedule_interval"`
	} `yaml:"quiz"`
}

// Load reads YAML config from path and applies environment overrides.
// BOT_TOKEN and ADMIN_ID always win over the file so deployments can keep
// secrets out of it. A missing file is not an error; env-only setups are fine.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}

	if token := os.Getenv("BOT_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}
	if admin := os.Getenv("ADMIN_ID"); admin != "" {
		id, err := strconv.ParseInt(admin, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("parse ADMIN_ID: %w", err)
		}
		cfg.Bot.AdminID = id
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "quiz_bot.db"
	}
	return cfg, nil
}

// Validate enforces the fail-fast startup contract.
func (c Config) Validate() error {
	if c.Bot.Token == "" {
		return fmt.Errorf("bot token is required (set BOT_TOKEN or bot.token)")
	}
	return nil
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
