package utils

import (
	"fmt"
	"strings"
	"time"
)

// ToLocal converts a Sonarr UTC timestamp to a fixed-offset local
// instant. The offset is a flat hour shift, never a timezone lookup.
// An empty timestamp yields ok=false; a malformed one is an error.
func ToLocal(utcTimestamp string, offsetHours float64) (time.Time, bool, error) {
	if utcTimestamp == "" {
		return time.Time{}, false, nil
	}

	// Sonarr usually sends a Z suffix but is not guaranteed to
	clean := strings.TrimSuffix(utcTimestamp, "Z")
	parsed, err := time.Parse("2006-01-02T15:04:05", clean)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid air date %q: %w", utcTimestamp, err)
	}

	utc := parsed.UTC()
	return utc.Add(time.Duration(offsetHours * float64(time.Hour))), true, nil
}
