package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

//nolint:gochecknoglobals
var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the configuration of the tracker bot.
type Config struct {
	App     App
	API     API
	Bot     Bot
	Probe   Probe
	Metrics Metrics
}

type App struct {
	Name       string `env:"APP_NAME" envDefault:"price-tracker"`
	Version    string `env:"APP_VERSION" envDefault:"dev"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogNoColor bool   `env:"LOG_NO_COLOR"`
}

type Probe struct {
	ListenAddress string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
}

type Metrics struct {
	ListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
}

// Load reads the bot configuration from the environment and an optional .env
// file.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.API.Validate(); err != nil {
		return Config{}, err
	}

	if err := validate.Struct(config.Bot); err != nil {
		return Config{}, fmt.Errorf("bot config: %w", err)
	}

	return config, nil
}

// LoadApp reads only the App section.
func LoadApp() (App, error) {
	_ = godotenv.Load()

	var app App

	if err := env.Parse(&app); err != nil {
		return App{}, fmt.Errorf("env.Parse: %w", err)
	}

	return app, nil
}
