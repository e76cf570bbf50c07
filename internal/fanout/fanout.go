// Package fanout issues independent store writes concurrently and reports
// the outcome of each one by name.
package fanout

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Group runs named tasks concurrently. Unlike a bare errgroup it keeps every
// failure, not just the first, so callers can report which structures were left behind.
// A Group must not be reused after Wait.
type Group struct {
	eg errgroup.Group

	mu     sync.Mutex
	failed map[string]error
}

// Go starts fn under the given name. Names should be unique within a Group.
func (g *Group) Go(name string, fn func() error) {
	g.eg.Go(func() error {
		err := fn()
		if err != nil {
			g.mu.Lock()
			if g.failed == nil {
				g.failed = make(map[string]error)
			}
			g.failed[name] = errors.Join(g.failed[name], err)
			g.mu.Unlock()
		}
		return err
	})
}

// Wait blocks until every task has returned.
func (g *Group) Wait() Result {
	_ = g.eg.Wait() // failures are collected per task

	g.mu.Lock()
	defer g.mu.Unlock()
	return Result{failed: g.failed}
}

// Result is the per-task outcome of a Group.
type Result struct {
	failed map[string]error
}

// OK reports whether every task succeeded.
func (r Result) OK() bool { return len(r.failed) == 0 }

// Failed returns the names of failed tasks, sorted.
func (r Result) Failed() []string {
	names := make([]string, 0, len(r.failed))
	for name := range r.failed {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Failure returns the error of the named task, nil if it succeeded.
func (r Result) Failure(name string) error {
	return r.failed[name]
}

// Err joins all failures, each prefixed with its task name. Nil when OK.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, 0, len(r.failed))
	for _, name := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", name, r.failed[name]))
	}
	return errors.Join(errs...)
}
