package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"price_tracker/internal/config"
)

func TestLoad(t *testing.T) {
	rq := require.New(t)

	t.Setenv("TRACKER_API_URL", "http://localhost:8000")
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("BOT_ALLOWED_CHAT_IDS", "1,-1002")

	cfg, err := config.Load()
	rq.NoError(err)

	rq.Equal("http://localhost:8000", cfg.API.URL)
	rq.Equal(4096, cfg.API.LogFieldMaxLen)
	rq.Equal([]int64{1, -1002}, cfg.Bot.AllowedChatIDs)
	rq.Equal(30*time.Minute, cfg.Bot.SessionTTL)
	rq.Equal(":8081", cfg.Probe.ListenAddress)
	rq.Equal(":9090", cfg.Metrics.ListenAddress)
	rq.Equal("price-tracker", cfg.App.Name)
}

func TestLoadRequiresAPIURL(t *testing.T) {
	rq := require.New(t)

	t.Setenv("TRACKER_API_URL", "")
	t.Setenv("BOT_TOKEN", "123:abc")

	_, err := config.Load()
	rq.Error(err)
}

func TestLoadRequiresBotToken(t *testing.T) {
	rq := require.New(t)

	t.Setenv("TRACKER_API_URL", "http://localhost:8000")
	t.Setenv("BOT_TOKEN", "")

	_, err := config.Load()
	rq.Error(err)
}

func TestAPIValidate(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "HTTP", url: "http://127.0.0.1:8000"},
		{name: "HTTPS with path", url: "https://tracker.example.com/api"},
		{name: "Empty", url: "", wantErr: true},
		{name: "Relative", url: "/api", wantErr: true},
		{name: "FTP", url: "ftp://tracker.example.com", wantErr: true},
		{name: "Garbage", url: "not a url", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			err := config.API{URL: tc.url}.Validate()
			if tc.wantErr {
				rq.Error(err)
				return
			}

			rq.NoError(err)
		})
	}
}

func TestLoadStub(t *testing.T) {
	rq := require.New(t)

	t.Setenv("STUB_SEED_ITEMS", "m12345678901,m10987654321")

	stub, err := config.LoadStub()
	rq.NoError(err)
	rq.Equal(":8000", stub.ListenAddress)
	rq.Equal([]string{"m12345678901", "m10987654321"}, stub.SeedItems)
}
