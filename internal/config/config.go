package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type RoomConfig struct {
	MaxParticipants  int  `mapstructure:"max_participants"`
	AllowScreenShare bool `mapstructure:"allow_screen_share"`
	AllowRecording   bool `mapstructure:"allow_recording"`
}

type ReaperConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	MaxAge   time.Duration `mapstructure:"max_age"`
}

type TokenConfig struct {
	AppID       string        `mapstructure:"app_id"`
	Certificate string        `mapstructure:"certificate"`
	TTL         time.Duration `mapstructure:"ttl"`
}

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	StaticPath string        `mapstructure:"static_path"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	Secret     string        `mapstructure:"secret"`
	Room       RoomConfig    `mapstructure:"room"`
	Reaper     ReaperConfig  `mapstructure:"reaper"`
	Token      TokenConfig   `mapstructure:"token"`
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
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("room.max_participants", 20)
	v.SetDefault("room.allow_screen_share", true)
	v.SetDefault("room.allow_recording", true)
	v.SetDefault("reaper.interval", "1h")
	v.SetDefault("reaper.max_age", "24h")
	v.SetDefault("token.app_id", os.Getenv("TOKEN_APP_ID"))
	v.SetDefault("token.certificate", os.Getenv("TOKEN_CERTIFICATE"))
	v.SetDefault("token.ttl", "24h")

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
