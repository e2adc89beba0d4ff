package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeConsole  = "console"
	ModeServer   = "server"
	ModeSelfPlay = "selfplay"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode     string  `yaml:"mode" env:"MODE" env-default:"console"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Search   Search  `yaml:"search"`
	Console  Console `yaml:"console"`
}

type Search struct {
	Parallel bool `yaml:"parallel" env:"SEARCH_PARALLEL" env-default:"false"`
	Workers  int  `yaml:"workers" env:"SEARCH_WORKERS" env-default:"4"`
}

type Console struct {
	HumanMark string `yaml:"human-mark" env:"CONSOLE_HUMAN_MARK" env-default:"X"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the yaml file at path, then applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}
