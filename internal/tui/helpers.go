package tui

import (
	"math"
	"strings"
	"unicode/utf8"
)

// truncate shortens a string to a maximum length
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// renderBar draws a horizontal bar for a percentage, saturating at 100.
// Non-finite and non-positive values draw an empty bar.
func renderBar(percent float64, length int) string {
	if math.IsNaN(percent) || math.IsInf(percent, 0) || percent <= 0 {
		return strings.Repeat("─", length)
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("─", length-filled)
}

var sparkChars = []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// renderSparkline creates a compact sparkline of the last width points
func renderSparkline(data []float64, width int) string {
	if len(data) > width {
		data = data[len(data)-width:]
	}

	min, max := math.MaxFloat64, -math.MaxFloat64
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if max == min {
		min = math.Max(0, max-10)
		max = max + 10
	}

	dataRange := max - min
	if dataRange == 0 {
		dataRange = 1
	}

	var result strings.Builder
	for _, value := range data {
		charIndex := int((value - min) / dataRange * float64(len(sparkChars)-1))
		if charIndex >= len(sparkChars) {
			charIndex = len(sparkChars) - 1
		}
		if charIndex < 0 {
			charIndex = 0
		}
		result.WriteString(sparkChars[charIndex])
	}

	// Pad on the left so the newest value stays at the right edge
	pad := width - utf8.RuneCountInString(result.String())
	if pad > 0 {
		return strings.Repeat(sparkChars[0], pad) + result.String()
	}
	return result.String()
}
