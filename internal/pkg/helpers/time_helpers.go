package helpers

import (
	"time"

	"github.com/yigit/abimath/internal/pkg/logger"
)

// ParseDuration parses a configured duration such as "10s", falling back to
// defaultDuration when the value is empty or invalid.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	duration, err := time.ParseDuration(durationStr)
	if err != nil || duration <= 0 {
		logger.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Invalid duration, using default")
		return defaultDuration
	}
	return duration
}
