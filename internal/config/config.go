package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Mode     string `mapstructure:"mode"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	ReadLimit  int64         `mapstructure:"read_limit"`
	SendBuffer int           `mapstructure:"send_buffer"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	ReapPeriod time.Duration `mapstructure:"reap_period"`

	RoomTTL        time.Duration `mapstructure:"room_ttl"`
	MaxRoomMembers int           `mapstructure:"max_room_members"`
	RoomIDAttempts int           `mapstructure:"room_id_attempts"`
	Backpressure   string        `mapstructure:"backpressure"`

	JoinRateLimit  int           `mapstructure:"join_rate_limit"`
	JoinRateWindow time.Duration `mapstructure:"join_rate_window"`
}

// Load reads config/config.<CONFIG_ENV>.yaml on top of the defaults.
// PORT in the environment wins over the file.
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
	v.SetDefault("log_level", "info")
	v.SetDefault("read_limit", 16<<20)
	v.SetDefault("send_buffer", 256)
	v.SetDefault("ping_period", "30s")
	v.SetDefault("reap_period", "60s")
	v.SetDefault("room_ttl", "24h")
	v.SetDefault("max_room_members", 10)
	v.SetDefault("room_id_attempts", 5)
	v.SetDefault("backpressure", "drop")
	v.SetDefault("join_rate_limit", 20)
	v.SetDefault("join_rate_window", "1m")

	if err := v.BindEnv("port", "PORT"); err != nil {
		return nil, fmt.Errorf("bind PORT: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	fmt.Printf("🧩 Mode: %s | Port: %d | Ping: %s | Reap: %s\n", cfg.Mode, cfg.Port, cfg.PingPeriod, cfg.ReapPeriod)
	return &cfg, nil
}
