package db

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingPinger struct {
	calls   atomic.Int32
	healthy int32 // answers from this call on
}

func (p *countingPinger) Ping(context.Context) error {
	if p.calls.Add(1) >= p.healthy {
		return nil
	}
	return errors.New("LOADING dataset in memory")
}

func TestPollReady_ImmediateAnswer(t *testing.T) {
	p := &countingPinger{healthy: 1}
	if err := PollReady(context.Background(), p, time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.calls.Load(); got != 1 {
		t.Errorf("pings = %d, want 1", got)
	}
}

func TestPollReady_RetriesUntilReady(t *testing.T) {
	p := &countingPinger{healthy: 3}
	if err := PollReady(context.Background(), p, 5*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.calls.Load(); got != 3 {
		t.Errorf("pings = %d, want 3", got)
	}
}

func TestPollReady_TimeoutKeepsLastError(t *testing.T) {
	p := &countingPinger{healthy: 1 << 30}
	err := PollReady(context.Background(), p, 250*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if !ContainsIgnoreCase(err.Error(), "loading") {
		t.Errorf("expected last ping error in %q", err)
	}
}

func TestIndexError(t *testing.T) {
	cause := errors.New("reply")
	tests := []struct {
		name  string
		reply string
		want  error
	}{
		{"exists", "Index already exists", ErrIndexExists},
		{"unknown redis stack", "Unknown Index name", ErrIndexNotFound},
		{"unknown valkey", "ERR no such index", ErrIndexNotFound},
		{"other reply", "ERR syntax error", nil},
		{"not a reply", "", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := IndexError(OpCreateIndex, tc.reply, cause)
			if tc.want != nil {
				if !errors.Is(err, tc.want) {
					t.Errorf("got %v, want %v", err, tc.want)
				}
				return
			}
			var dbErr *Error
			if !errors.As(err, &dbErr) || dbErr.Op != OpCreateIndex || !errors.Is(err, cause) {
				t.Errorf("expected *Error wrapping cause, got %v", err)
			}
		})
	}
}
