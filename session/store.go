package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrStateNotFound is returned by Load when the store holds no state.
var ErrStateNotFound = errors.New("session state not found")

// ErrStoreUnavailable is returned when the backing store cannot be reached.
var ErrStoreUnavailable = errors.New("session store unavailable")

// Store persists session state between runs. The Engine calls Save once per
// successful authorization; callers use Load to seed a new Engine before a
// cookie-based reauthorization.
type Store interface {
	Save(ctx context.Context, state State) error
	Load(ctx context.Context) (State, error)
}

// RedisStore keeps the whole State as one JSON blob under a fixed key. The
// state is a single small record with no partial-update path, so a blob
// beats per-field keys.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore creates a [RedisStore] writing to key with the given TTL.
// A zero ttl persists the state without expiry.
func NewRedisStore(client *redis.Client, key string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Save describes the save operation and its observable behavior.
func (s *RedisStore) Save(ctx context.Context, state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Load describes the load operation and its observable behavior.
func (s *RedisStore) Load(ctx context.Context) (State, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return State{}, ErrStateNotFound
	}
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, err
	}
	return state, nil
}

// MemoryStore is an in-process [Store] for tests and callers that handle
// persistence themselves.
type MemoryStore struct {
	mu    sync.Mutex
	state *State
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save describes the save operation and its observable behavior.
func (s *MemoryStore) Save(_ context.Context, state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := state
	copied.Cookies = append([]Cookie(nil), state.Cookies...)
	s.state = &copied
	return nil
}

// Load describes the load operation and its observable behavior.
func (s *MemoryStore) Load(context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return State{}, ErrStateNotFound
	}

	copied := *s.state
	copied.Cookies = append([]Cookie(nil), s.state.Cookies...)
	return copied, nil
}
