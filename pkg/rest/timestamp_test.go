package rest_test

import (
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"price_tracker/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func TestTimestampUnmarshal(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "RFC 3339",
			input: `"2025-01-02T10:00:00+09:00"`,
			want:  time.Date(2025, 1, 2, 1, 0, 0, 0, time.UTC),
		},
		{
			name:  "Naive with microseconds",
			input: `"2025-01-02T10:00:00.123456"`,
			want:  time.Date(2025, 1, 2, 10, 0, 0, 123456000, time.UTC),
		},
		{
			name:  "Space separated",
			input: `"2025-01-02 10:00:00"`,
			want:  time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "Null",
			input: `null`,
		},
		{
			name:    "Garbage",
			input:   `"yesterday"`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var ts rest.Timestamp

			err := json.Unmarshal([]byte(tc.input), &ts)
			if tc.wantErr {
				rq.Error(err)
				return
			}

			rq.NoError(err)
			rq.True(tc.want.Equal(ts.Time), "%s vs %s", tc.want, ts.Time)
		})
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	rq := require.New(t)

	in := rest.PriceHistory{
		ID:        1,
		ProductID: 2,
		Price:     12000,
		ScrapedAt: rest.NewTimestamp(time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)),
	}

	b, err := json.Marshal(in)
	rq.NoError(err)
	rq.Contains(string(b), `"scraped_at":"2025-03-04T05:06:07Z"`)

	var out rest.PriceHistory

	rq.NoError(json.Unmarshal(b, &out))
	rq.True(in.ScrapedAt.Equal(out.ScrapedAt.Time))
}
