package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Mode       string `mapstructure:"mode"`
	Port       int    `mapstructure:"port"`
	StaticPath string `mapstructure:"static_path"`
	Secret     string `mapstructure:"secret"`
	ReadLimit  int64  `mapstructure:"read_limit"`

	// Empty means keep history in memory only.
	DBPath string `mapstructure:"db_path"`

	RateWindowSec   int           `mapstructure:"rate_window_sec"`
	RateMax         int           `mapstructure:"rate_max"`
	MaxMessageLen   int           `mapstructure:"max_message_len"`
	MaxNameLen      int           `mapstructure:"max_name_len"`
	MaxRoomLen      int           `mapstructure:"max_room_len"`
	HistoryPageSize int           `mapstructure:"history_page_size"`
	HTTPRateWindow  time.Duration `mapstructure:"http_rate_window"`
	HTTPRateMax     int           `mapstructure:"http_rate_max"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("secret", "insecure-dev-secret")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("db_path", "")
	v.SetDefault("rate_window_sec", 5)
	v.SetDefault("rate_max", 8)
	v.SetDefault("max_message_len", 2000)
	v.SetDefault("max_name_len", 50)
	v.SetDefault("max_room_len", 100)
	v.SetDefault("history_page_size", 100)
	v.SetDefault("http_rate_window", "15m")
	v.SetDefault("http_rate_max", 200)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	fmt.Printf("🧩 Mode: %s | Port: %d | Static: %s\n", cfg.Mode, cfg.Port, cfg.StaticPath)
	return &cfg, nil
}
