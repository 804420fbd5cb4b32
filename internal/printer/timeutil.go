package printer

import (
	"fmt"
	"math"
	"time"
)

// FormatMinutes returns a human-readable duration for a minute count.
// Examples: "24 seconds", "5 min and 30 seconds", "2 hours and 5 min".
func FormatMinutes(minutes float64) string {
	// Seconds
	if minutes < 1 {
		return fmt.Sprintf("%d seconds", int(math.Round(minutes*60)))
	}

	// Minutes
	if minutes < 60 {
		whole := int(minutes)
		seconds := int(math.Round((minutes - float64(whole)) * 60))
		return fmt.Sprintf("%d min and %d seconds", whole, seconds)
	}

	// Hours. The minute remainder comes from the original minute count
	// modulo 60, not from the truncated hour value.
	hours := int(minutes / 60)
	rem := int(math.Round(math.Mod(minutes, 60)))
	return fmt.Sprintf("%d hours and %d min", hours, rem)
}

// FormatTimestamp returns a formatted timestamp string in UTC.
// Format: "2006-01-02 15:04:05 UTC".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
