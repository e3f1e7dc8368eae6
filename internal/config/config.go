package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config carries every externally tunable setting. It is built once in main
// and injected; no package reads the environment on its own.
type Config struct {
	HTTPAddr     string `mapstructure:"http_addr"`
	DatabaseURL  string `mapstructure:"database_url"`
	RedisAddr    string `mapstructure:"redis_addr"`
	JWTSecret    string `mapstructure:"jwt_secret"`
	ImportDir    string `mapstructure:"import_dir"`
	ImportLog    string `mapstructure:"import_log"`
	ReceiptWidth int    `mapstructure:"receipt_width"`
	StoreName    string `mapstructure:"store_name"`
}

// Load reads settings from the environment (and an optional config.yaml in
// the working directory), falling back to defaults suitable for local runs.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("import_dir", "./data/imports")
	v.SetDefault("import_log", "./import.log")
	v.SetDefault("receipt_width", 32)
	v.SetDefault("store_name", "Retail Back Office")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.AutomaticEnv()
	for _, key := range []string{"http_addr", "database_url", "redis_addr", "jwt_secret",
		"import_dir", "import_log", "receipt_width", "store_name"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}
