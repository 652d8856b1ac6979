package chart_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"price_tracker/pkg/chart"
)

func TestSparkline(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name   string
		values []float64
		want   string
	}{
		{name: "Empty", values: nil, want: ""},
		{name: "Flat", values: []float64{5, 5, 5}, want: "▅▅▅"},
		{name: "Rising", values: []float64{0, 7}, want: "▁█"},
		{name: "Valley", values: []float64{10, 0, 10}, want: "█▁█"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.want, chart.Sparkline(tc.values))
		})
	}
}

func TestSparklineKeepsLatest(t *testing.T) {
	rq := require.New(t)

	values := make([]float64, 100)
	values[len(values)-1] = 1

	line := []rune(chart.Sparkline(values))
	rq.Len(line, chart.MaxSparkLen)
	rq.Equal('█', line[len(line)-1])
	rq.Equal('▁', line[0])
}
