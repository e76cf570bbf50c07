package db

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// readyPollInterval is the delay between readiness pings.
const readyPollInterval = 100 * time.Millisecond

// PollReady pings p until it answers or the timeout expires. The first ping
// is sent immediately. Both drivers implement WaitForReady with it.
func PollReady(ctx context.Context, p Pinger, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()

	var last error
	for {
		if last = p.Ping(ctx); last == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", errors.Join(ctx.Err(), last))
		case <-ticker.C:
		}
	}
}

// Server replies the search module uses for index lifecycle errors.
// Redis Stack and Valkey word them differently.
var (
	indexExistsReplies  = []string{"index already exists"}
	indexMissingReplies = []string{"unknown index name", "no such index"}
)

// IndexError maps a failed FT.* command to ErrIndexExists or ErrIndexNotFound
// when the server reply says so, otherwise to *Error. reply is the server
// error text, empty when the failure was not a server reply (network, timeout).
func IndexError(op, reply string, err error) error {
	if reply != "" {
		if containsAny(reply, indexExistsReplies) {
			return ErrIndexExists
		}
		if containsAny(reply, indexMissingReplies) {
			return ErrIndexNotFound
		}
	}
	return &Error{Op: op, Err: err}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if ContainsIgnoreCase(s, sub) {
			return true
		}
	}
	return false
}
