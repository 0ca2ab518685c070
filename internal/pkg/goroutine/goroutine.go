// Package goroutine provides a managed way to run background goroutines
// with concurrency limits and panic recovery.
package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// Manager runs background functions with a bounded level of concurrency.
// A panicking function is recovered and recorded as an error instead of
// crashing the process.
type Manager struct {
	wg   sync.WaitGroup
	sem  chan struct{}
	mu   sync.Mutex
	errs []error
}

// NewManager creates a Manager that allows at most limit functions to run
// concurrently. A limit of zero or less means no limit.
func NewManager(limit int) *Manager {
	m := &Manager{}
	if limit > 0 {
		m.sem = make(chan struct{}, limit)
	}

	return m
}

// Go schedules fn on a new goroutine, blocking first if the concurrency
// limit has been reached.
func (m *Manager) Go(ctx context.Context, fn func(ctx context.Context) error) {
	if m.sem != nil {
		m.sem <- struct{}{}
	}

	m.wg.Add(1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(ctx, "goroutine panic recovered",
					"panic", r,
					"stack", string(debug.Stack()),
				)
				m.record(fmt.Errorf("panic recovered: %v", r))
			}

			if m.sem != nil {
				<-m.sem
			}
			m.wg.Done()
		}()

		if err := fn(ctx); err != nil {
			m.record(err)
		}
	}()
}

// Wait blocks until all scheduled functions return and reports their
// joined errors.
func (m *Manager) Wait() error {
	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()

	return errors.Join(m.errs...)
}

func (m *Manager) record(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errs = append(m.errs, err)
}
