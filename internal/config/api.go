package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// API addresses the remote tracker service.
type API struct {
	URL            string `env:"TRACKER_API_URL" validate:"required,url"`
	LogFieldMaxLen int    `env:"TRACKER_API_LOG_FIELD_MAX_LEN" envDefault:"4096" validate:"gte=0"`
}

// LoadAPI reads the API section without validating it, so that callers can
// apply overrides first.
func LoadAPI() (API, error) {
	_ = godotenv.Load()

	var api API

	if err := env.Parse(&api); err != nil {
		return API{}, fmt.Errorf("env.Parse: %w", err)
	}

	return api, nil
}

// Validate fails unless URL is an absolute http or https address.
func (a API) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("TRACKER_API_URL: %w", err)
	}

	u, err := url.Parse(a.URL)
	if err != nil {
		return fmt.Errorf("url.Parse: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("TRACKER_API_URL: unsupported scheme %q", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("TRACKER_API_URL: missing host")
	}

	return nil
}
