// Package lock provides named, process-wide exclusive locks used to serialize migrations of the
// same table.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type holder struct {
	token    string
	acquired time.Time
	released chan struct{}
}

type Manager struct {
	mu      sync.Mutex
	locks   map[string]*holder
	timeout time.Duration
}

type Config struct {
	// Timeout bounds how long Lock waits. Zero waits until the context is done.
	Timeout time.Duration
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Timeout < 0 {
		errGrp = append(errGrp, errors.New("lock timeout cannot be negative"))
	}
	return errors.Join(errGrp...)
}

func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Manager{
		locks:   make(map[string]*holder),
		timeout: cfg.Timeout,
	}, nil
}

// Lock blocks until the named lock is acquired and returns the function releasing it. The
// release function is safe to call more than once.
func (m *Manager) Lock(ctx context.Context, name string) (func(), error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	for {
		m.mu.Lock()
		current, ok := m.locks[name]
		if !ok {
			h := &holder{
				token:    uuid.NewString(),
				acquired: time.Now(),
				released: make(chan struct{}),
			}
			m.locks[name] = h
			m.mu.Unlock()

			log.Debug().Str("lock", name).Str("token", h.token).Msg("lock acquired")
			return m.unlockFunc(name, h), nil
		}
		m.mu.Unlock()

		select {
		case <-current.released:
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for lock %s held by %s since %s: %w", name,
				current.token, current.acquired.Format(time.RFC3339), ctx.Err())
		}
	}
}

func (m *Manager) unlockFunc(name string, h *holder) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if current, ok := m.locks[name]; ok && current.token == h.token {
				delete(m.locks, name)
			}
			close(h.released)
			log.Debug().Str("lock", name).Str("token", h.token).Msg("lock released")
		})
	}
}

// Holder returns the token of the current holder of a lock.
func (m *Manager) Holder(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.locks[name]
	if !ok {
		return "", false
	}
	return h.token, true
}
