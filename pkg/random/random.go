package random

import (
	"math"
	"math/rand"
	"time"
)

// Randomize applies ±percent randomization to value
// Example: Randomize(100, 1.0) returns value in range [99, 101]
func Randomize(value float64, percent float64) float64 {
	if percent <= 0 {
		return value
	}

	variance := value * (percent / 100.0)

	// Random offset in range [-variance, +variance]
	offset := (rand.Float64()*2 - 1) * variance

	result := value + offset
	return math.Round(result*100) / 100
}

// Jitter spreads d by ±percent so concurrent clients do not retry in lockstep.
// Non-positive durations are returned unchanged.
func Jitter(d time.Duration, percent float64) time.Duration {
	if d <= 0 || percent <= 0 {
		return d
	}
	if percent > 100 {
		percent = 100
	}
	return time.Duration(Randomize(float64(d), percent))
}

// Backoff returns the linear backoff delay for a 1-based attempt with jitter applied
func Backoff(base time.Duration, attempt int, percent float64) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return Jitter(base*time.Duration(attempt), percent)
}
