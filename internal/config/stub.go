package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Stub configures the in-memory tracker service.
type Stub struct {
	ListenAddress   string        `env:"STUB_LISTEN_ADDRESS" envDefault:":8000"`
	ShutdownTimeout time.Duration `env:"STUB_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	LogFieldMaxLen  int           `env:"STUB_LOG_FIELD_MAX_LEN" envDefault:"4096"`
	// SeedItems are tracked on start, e.g. "m12345678901,m10987654321".
	SeedItems []string `env:"STUB_SEED_ITEMS" envSeparator:","`
}

func LoadStub() (Stub, error) {
	_ = godotenv.Load()

	var stub Stub

	if err := env.Parse(&stub); err != nil {
		return Stub{}, fmt.Errorf("env.Parse: %w", err)
	}

	return stub, nil
}
