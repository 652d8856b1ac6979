// Package chart draws tiny text charts.
package chart

import (
	"strings"

	"github.com/samber/lo"
)

const levels = "▁▂▃▄▅▆▇█"

// MaxSparkLen is the number of values a sparkline shows at most.
const MaxSparkLen = 30

// Sparkline draws values with one block per value. Longer series keep only
// the latest MaxSparkLen values. A flat series is drawn at mid height.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	if len(values) > MaxSparkLen {
		values = values[len(values)-MaxSparkLen:]
	}

	blocks := []rune(levels)
	lowest, highest := lo.Min(values), lo.Max(values)
	span := highest - lowest

	var sb strings.Builder

	for _, v := range values {
		idx := len(blocks) / 2
		if span > 0 {
			idx = int((v - lowest) / span * float64(len(blocks)-1))
		}

		sb.WriteRune(blocks[idx])
	}

	return sb.String()
}
