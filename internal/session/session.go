// Package session keeps small per-visitor key/value state behind an opaque id.
package session

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Session is the state of one visitor for the duration of a request.
type Session struct {
	ID     string
	values map[string]string
	dirty  bool
}

// New wraps loaded values. A nil map starts an empty session.
func New(id string, values map[string]string) *Session {
	if values == nil {
		values = make(map[string]string)
	}
	return &Session{ID: id, values: values}
}

// Get returns one value.
func (s *Session) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores one value and marks the session for saving.
func (s *Session) Set(key, value string) {
	if cur, ok := s.values[key]; ok && cur == value {
		return
	}
	s.values[key] = value
	s.dirty = true
}

// Dirty reports whether Set changed anything since the session was loaded.
func (s *Session) Dirty() bool { return s.dirty }

// Values returns a copy of the session contents.
func (s *Session) Values() map[string]string { return maps.Clone(s.values) }

// Store persists sessions between requests.
type Store interface {
	Load(ctx context.Context, id string) (map[string]string, error)
	Save(ctx context.Context, id string, values map[string]string) error
}

// --- Redis ---

// RedisStore keeps each session in a hash that expires ttl after its last save.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a store on top of an existing client.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix + "session:", ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context, id string) (map[string]string, error) {
	values, err := r.client.HGetAll(ctx, r.prefix+id).Result()
	if err != nil {
		return nil, fmt.Errorf("session load error: %w", err)
	}
	return values, nil
}

func (r *RedisStore) Save(ctx context.Context, id string, values map[string]string) error {
	key := r.prefix + id
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(values) == 0 {
			return nil
		}
		fields := make(map[string]any, len(values))
		for k, v := range values {
			fields[k] = v
		}
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("session save error: %w", err)
	}
	return nil
}

// --- Memory ---

// MemoryStore keeps sessions in process memory. It is used when Redis is not
// configured and in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string]string)}
}

func (m *MemoryStore) Load(_ context.Context, id string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.sessions[id]), nil
}

func (m *MemoryStore) Save(_ context.Context, id string, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(values) == 0 {
		delete(m.sessions, id)
		return nil
	}
	m.sessions[id] = maps.Clone(values)
	return nil
}
