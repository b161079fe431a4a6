package domain

import (
	"fmt"
	"math"
)

// UnknownDuration is reported when a provider cannot tell the length of a video
const UnknownDuration = "Unknown"

// FormatDuration renders seconds as H:MM:SS, or M:SS below one hour
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 || seconds >= math.MaxInt64 {
		return UnknownDuration
	}

	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
