// internal/session/store.go
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"tracevista/internal/common/errors"
	"tracevista/internal/common/logger"
	"tracevista/internal/models"

	"github.com/redis/go-redis/v9"
)

// Store is the thin mutable holder at the edge of the pure reducer. It
// optionally snapshots every state transition to redis so a session
// survives process restarts; the reducer itself performs no I/O.
type Store struct {
	mu     sync.RWMutex
	state  models.SearchSession
	cfg    Config
	rdb    *redis.Client // nil = in-memory only
	key    string
	ttl    time.Duration
	logger logger.Logger
}

// NewStore creates an in-memory session store.
func NewStore(cfg Config, log logger.Logger) *Store {
	return &Store{
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "session-store"}),
	}
}

// NewRedisStore creates a store that snapshots to redis under key with
// the given TTL (0 = no expiry).
func NewRedisStore(cfg Config, rdb *redis.Client, key string, ttl time.Duration, log logger.Logger) *Store {
	s := NewStore(cfg, log)
	s.rdb = rdb
	s.key = key
	s.ttl = ttl
	return s
}

// Dispatch applies one action through the reducer and returns the new
// state snapshot.
func (s *Store) Dispatch(ctx context.Context, action Action) models.SearchSession {
	s.mu.Lock()
	s.state = Reduce(s.state, action, s.cfg)
	next := s.state
	s.mu.Unlock()

	if s.rdb != nil {
		if err := s.persist(ctx, next); err != nil {
			// A lost snapshot degrades durability, not correctness.
			s.logger.Warn("session snapshot failed", map[string]interface{}{
				"key":   s.key,
				"error": err.Error(),
			})
		}
	}
	return next
}

// Snapshot returns the current read-only state.
func (s *Store) Snapshot() models.SearchSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Load restores the last persisted snapshot, if any.
func (s *Store) Load(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}

	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return errors.New(errors.ErrCodeSessionLoad, "redis get failed").WithDetails(err.Error())
	}

	var state models.SearchSession
	if err := json.Unmarshal(data, &state); err != nil {
		return errors.New(errors.ErrCodeSessionLoad, "snapshot unmarshal failed").WithDetails(err.Error())
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

func (s *Store) persist(ctx context.Context, state models.SearchSession) error {
	data, err := json.Marshal(state)
	if err != nil {
		return errors.New(errors.ErrCodeSessionSave, "snapshot marshal failed").WithDetails(err.Error())
	}
	if err := s.rdb.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return errors.New(errors.ErrCodeSessionSave, "redis set failed").WithDetails(err.Error())
	}
	return nil
}
