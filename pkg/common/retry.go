package common

import "time"

// WithRetry runs op up to maxAttempts times with a fixed delay between
// attempts. An error for which retryable returns false is returned
// immediately; otherwise the last error is returned once the budget is
// exhausted. maxAttempts < 1 is treated as a single attempt.
func WithRetry(op func() error, maxAttempts int, delay time.Duration, retryable func(error) bool) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		if attempt < maxAttempts {
			time.Sleep(delay)
		}
	}
	return err
}
