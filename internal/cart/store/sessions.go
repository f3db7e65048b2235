package store

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/google/uuid"

	"github.com/machbazar/storefront/internal/cart/domain"
)

const lockStripes = 64

// Sessions opens the cart of a browser session. Mutations of one session are
// serialized inside this process; separate processes still race.
type Sessions struct {
	storage domain.Storage
	opts    []Option
	locks   [lockStripes]sync.Mutex
}

// NewSessions creates the session registry over storage
func NewSessions(storage domain.Storage, opts ...Option) *Sessions {
	return &Sessions{storage: storage, opts: opts}
}

// NewSessionID returns a fresh cart session id
func NewSessionID() string {
	return uuid.NewString()
}

// Open loads the cart of sessionID for reading
func (s *Sessions) Open(ctx context.Context, sessionID string) (*Store, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	return Open(ctx, s.storage, sessionID, s.opts...), nil
}

// Do loads the cart of sessionID and runs fn while holding the session lock
func (s *Sessions) Do(ctx context.Context, sessionID string, fn func(st *Store) error) error {
	if err := validateSession(sessionID); err != nil {
		return err
	}

	mu := s.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	return fn(Open(ctx, s.storage, sessionID, s.opts...))
}

func (s *Sessions) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%lockStripes]
}

func validateSession(sessionID string) error {
	if _, err := uuid.Parse(sessionID); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidSession, sessionID)
	}
	return nil
}
