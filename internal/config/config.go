package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type CurrencyConfig struct {
	Mode  string `yaml:"mode"` // single | dual
	Home  string `yaml:"home"`
	Local string `yaml:"local"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	// Defaults used until an admin saves the settings row.
	EntityMode string         `yaml:"entity_mode"` // single | multi
	Currency   CurrencyConfig `yaml:"currency"`
	Reports    struct {
		FontPath string `yaml:"font_path"`
	} `yaml:"reports"`
}

func LoadConfig() *Config {
	path := os.Getenv("SALESPIPE_CONFIG")
	if path == "" {
		path = "config/config.yaml"
	}
	f, err := os.Open(path)
	if err != nil {
		panic("Failed to open config: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config: " + err.Error())
	}

	if cfg.EntityMode == "" {
		cfg.EntityMode = "single"
	}
	if cfg.Currency.Mode == "" {
		cfg.Currency.Mode = "single"
	}
	if cfg.Currency.Home == "" {
		cfg.Currency.Home = "USD"
	}
	return &cfg
}
