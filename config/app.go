package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// AppConfig holds the configuration loaded by LoadAppConfig.
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName         string        `mapstructure:"app_name"`
	Env             string        `mapstructure:"app_env"`
	Port            string        `mapstructure:"port"`
	Debug           bool          `mapstructure:"debug"`
	Banner          bool          `mapstructure:"banner"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	StaticDir       string        `mapstructure:"static_dir"`
	SeedFile        string        `mapstructure:"seed_file"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Redis           RedisConfig   `mapstructure:",squash"`
	Cron            CronConfig    `mapstructure:",squash"`
}

type RedisConfig struct {
	Addr    string `mapstructure:"redis_addr"`
	Pass    string `mapstructure:"redis_pass"`
	DB      int    `mapstructure:"redis_db"`
	Channel string `mapstructure:"redis_channel"`
}

var defaults = map[string]interface{}{
	"app_name":             "Mergington High School API",
	"app_env":              "development",
	"port":                 "8080",
	"debug":                false,
	"banner":               true,
	"log_level":            "info",
	"log_format":           "console",
	"static_dir":           "static",
	"seed_file":            "",
	"cache_ttl":            "30s",
	"shutdown_timeout":     "10s",
	"redis_addr":           "",
	"redis_pass":           "",
	"redis_db":             0,
	"redis_channel":        "activities:roster",
	"cron_enabled":         false,
	"cron_roster_schedule": "@every 1h",
}

// Load reads configuration from defaults, an optional config.yaml and the environment,
// in increasing order of precedence. Environment keys are the upper-cased setting names
// (PORT, CACHE_TTL, REDIS_ADDR, ...).
func Load() (*Config, error) {
	return load(viper.New())
}

// LoadFile is Load with an explicit config file.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("port is required")
	}
	if cfg.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}
	if cfg.Cron.Enabled && cfg.Cron.RosterSchedule == "" {
		return fmt.Errorf("cron_roster_schedule is required when cron is enabled")
	}
	return nil
}

// LoadAppConfig initializes AppConfig once. Later calls return the same value.
func LoadAppConfig() (*Config, error) {
	var err error
	once.Do(func() {
		AppConfig, err = Load()
	})
	return AppConfig, err
}
