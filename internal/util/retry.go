package util

import (
	"fmt"
	"log"
	"time"
)

// RetryWithBackoff runs fn up to attempts times, sleeping attempt² × base
// between tries. The last error is wrapped so errors.As still sees it.
func RetryWithBackoff(attempts int, base time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*attempt) * base
			log.Printf("⚠️ Retrying (attempt %d/%d) after %v...", attempt+1, attempts, backoff)
			time.Sleep(backoff)
		}
		if err := fn(); err != nil {
			lastErr = err
			log.Printf("Attempt %d failed: %v", attempt+1, err)
			continue
		}
		return nil
	}
	return fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}
