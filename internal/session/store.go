package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"StockDesk/pkg/cache"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session: not found")

// Store persists sessions in a cache backend (memory or redis) under a TTL.
type Store struct {
	backend cache.Service
	ttl     time.Duration
	now     func() time.Time
}

// NewStore creates a session store on backend.
func NewStore(backend cache.Service, ttl time.Duration) *Store {
	return &Store{backend: backend, ttl: ttl, now: time.Now}
}

// Create stores a new session for token and returns it.
func (s *Store) Create(ctx context.Context, token, accountID string) (*Session, error) {
	sess := New(uuid.NewString(), token, accountID, s.now())
	b, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	if err := s.backend.Set(ctx, key(sess.ID), b, s.ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Get loads a session by id. Unknown ids return ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	raw, err := s.backend.Get(ctx, key(id))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// Delete removes the session; deleting an unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.backend.Delete(ctx, key(id))
}

// Touch extends the session TTL.
func (s *Store) Touch(ctx context.Context, id string) error {
	_, err := s.backend.Expire(ctx, key(id), s.ttl)
	return err
}

func key(id string) string { return "session:" + id }
