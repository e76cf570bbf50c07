// Package conn holds the process-wide store handle.
package conn

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kailas-cloud/dinedex/internal/db"
)

// ErrClosed is returned by Get after Close.
var ErrClosed = errors.New("conn: store handle closed")

// Factory opens a new store.
type Factory func(ctx context.Context) (db.Store, error)

// Lazy opens the store on first use and hands out the same instance afterwards.
// A failed open is not cached; the next Get retries.
type Lazy struct {
	factory Factory

	mu     sync.Mutex
	store  db.Store
	closed bool
}

// NewLazy creates a handle that calls factory at most once per successful open.
func NewLazy(factory Factory) *Lazy {
	return &Lazy{factory: factory}
}

// Get returns the shared store, opening it if needed.
func (l *Lazy) Get(ctx context.Context) (db.Store, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, ErrClosed
	}
	if l.store != nil {
		return l.store, nil
	}

	s, err := l.factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	l.store = s
	return s, nil
}

// Close releases the store if it was opened. Safe to call more than once.
func (l *Lazy) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true
	if l.store != nil {
		l.store.Close()
		l.store = nil
	}
}
