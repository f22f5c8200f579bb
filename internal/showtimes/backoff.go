package showtimes

import (
	"math"
	"time"

	"github.com/bjaus/retry"
)

// backoffDelay is the wait before retrying a failed attempt: base^attempt
// seconds. With the default base of 2 that is 2s, 4s, 8s for attempts 1..3.
// Fractional bases keep sub-second precision.
func backoffDelay(base float64, attempt int) time.Duration {
	seconds := math.Pow(base, float64(attempt))
	return time.Duration(seconds * float64(time.Second))
}

// exponentialBackoff adapts backoffDelay to the retry policy.
func exponentialBackoff(base float64) retry.Backoff {
	return retry.BackoffFunc(func(attempt int) time.Duration {
		return backoffDelay(base, attempt)
	})
}
