package core

import (
	"context"
	"time"
)

// Retry runs op up to `attempts` times, sleeping delay*attempt between tries
// (1x, 2x, ...). The last error is returned when all attempts fail; a context
// cancellation stops the loop early.
func Retry(ctx context.Context, attempts int, delay time.Duration, op func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 1; i <= attempts; i++ {
		if err = op(); err == nil {
			return nil
		}
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay * time.Duration(i)):
		}
	}
	return err
}
