package conn

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kailas-cloud/dinedex/internal/db"
)

// fakeStore embeds db.Store so only Close needs an implementation.
type fakeStore struct {
	db.Store
	closed atomic.Int32
}

func (f *fakeStore) Close() { f.closed.Add(1) }

func TestLazy_OpensOnce(t *testing.T) {
	var calls atomic.Int32
	fs := &fakeStore{}
	l := NewLazy(func(context.Context) (db.Store, error) {
		calls.Add(1)
		return fs, nil
	})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := l.Get(context.Background())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if s != fs {
				t.Error("got a different store instance")
			}
		}()
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("factory calls = %d, want 1", got)
	}
}

func TestLazy_RetriesAfterFailure(t *testing.T) {
	boom := errors.New("connection refused")
	attempt := 0
	fs := &fakeStore{}
	l := NewLazy(func(context.Context) (db.Store, error) {
		attempt++
		if attempt == 1 {
			return nil, boom
		}
		return fs, nil
	})

	if _, err := l.Get(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped factory error, got %v", err)
	}
	s, err := l.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if s != fs {
		t.Error("expected the store from the second attempt")
	}
}

func TestLazy_Close(t *testing.T) {
	fs := &fakeStore{}
	l := NewLazy(func(context.Context) (db.Store, error) { return fs, nil })

	if _, err := l.Get(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Close()
	l.Close()

	if got := fs.closed.Load(); got != 1 {
		t.Errorf("store closed %d times, want 1", got)
	}
	if _, err := l.Get(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestLazy_CloseBeforeOpen(t *testing.T) {
	l := NewLazy(func(context.Context) (db.Store, error) {
		t.Fatal("factory must not be called")
		return nil, nil
	})
	l.Close()
	if _, err := l.Get(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}
