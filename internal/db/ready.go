package db

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ReadyPollInterval is the delay between readiness pings.
const ReadyPollInterval = 100 * time.Millisecond

// WaitForReady pings p until it answers or timeout expires. The first ping is
// sent immediately. On timeout the last ping error is reported alongside ctx.Err().
func WaitForReady(ctx context.Context, p Pinger, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(ReadyPollInterval)
	defer ticker.Stop()

	var last error
	for {
		if last = p.Ping(ctx); last == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			if errors.Is(last, ctx.Err()) {
				return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
			}
			return fmt.Errorf("timeout waiting for database: %w (last ping: %v)", ctx.Err(), last)
		case <-ticker.C:
		}
	}
}
