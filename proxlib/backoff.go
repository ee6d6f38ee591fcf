package proxlib

import "time"

// Backoff drives the retry loop of the batch resolver. Attempts is a
// total budget including the first try, Delay is how long to sleep
// after the given failed attempt (1-based).
type Backoff interface {
	Attempts() int
	Delay(attempt int) time.Duration
}

type fixedBackoff struct {
	attempts int
	delay    time.Duration
}

func (f fixedBackoff) Attempts() int {
	return f.attempts
}

func (f fixedBackoff) Delay(int) time.Duration {
	return f.delay
}

// NewFixedBackoff makes a backoff with a constant delay between
// attempts. Batch geolocation APIs are rate limited and occasionally
// flaky; a small attempt budget with a long flat delay rides out
// transient failures without hammering the service.
func NewFixedBackoff(attempts int, delay time.Duration) Backoff {
	if attempts < 1 {
		attempts = 1
	}

	return fixedBackoff{
		attempts: attempts,
		delay:    delay,
	}
}
