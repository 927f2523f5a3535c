package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/martijn/shopadmin/internal/core/domain"
	"github.com/martijn/shopadmin/internal/core/repository"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "shopadmin"

type Options struct {
	Addr     string
	Password string
	DB       int
	// SessionTTL expires idle auth and page state. Zero keeps it forever.
	SessionTTL time.Duration
}

// Store keeps client state in Redis as JSON values.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}

	return &Store{client: client, ttl: opts.SessionTTL}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func authKey(sessionID string) string {
	return fmt.Sprintf("%s:auth:%s", keyPrefix, sessionID)
}

func pageKey(sessionID, resource string) string {
	return fmt.Sprintf("%s:page:%s:%s", keyPrefix, sessionID, resource)
}

func pageIndexKey(sessionID string) string {
	return fmt.Sprintf("%s:pages:%s", keyPrefix, sessionID)
}

func (s *Store) get(ctx context.Context, key string, out any) error {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%s: %w", key, repository.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// AuthStates returns the auth state repository view of the store.
func (s *Store) AuthStates() repository.AuthStateRepository {
	return authStates{s}
}

// PageStates returns the page state repository view of the store.
func (s *Store) PageStates() repository.PageStateRepository {
	return pageStates{s}
}

type authStates struct{ s *Store }

func (r authStates) Find(ctx context.Context, sessionID string) (*domain.AuthState, error) {
	var state domain.AuthState
	if err := r.s.get(ctx, authKey(sessionID), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (r authStates) Save(ctx context.Context, state *domain.AuthState) error {
	return r.s.set(ctx, authKey(state.SessionID), state)
}

func (r authStates) Delete(ctx context.Context, sessionID string) error {
	if err := r.s.client.Del(ctx, authKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete auth state: %w", err)
	}
	return nil
}

type pageStates struct{ s *Store }

type pageValue struct {
	State     string    `json:"state"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r pageStates) Find(ctx context.Context, sessionID, resource string) (*domain.PageState, error) {
	var v pageValue
	if err := r.s.get(ctx, pageKey(sessionID, resource), &v); err != nil {
		return nil, err
	}
	return &domain.PageState{
		SessionID: sessionID,
		Resource:  resource,
		State:     v.State,
		UpdatedAt: v.UpdatedAt,
	}, nil
}

func (r pageStates) Save(ctx context.Context, state *domain.PageState) error {
	if err := r.s.set(ctx, pageKey(state.SessionID, state.Resource), pageValue{
		State:     state.State,
		UpdatedAt: state.UpdatedAt,
	}); err != nil {
		return err
	}

	index := pageIndexKey(state.SessionID)
	pipe := r.s.client.TxPipeline()
	pipe.SAdd(ctx, index, state.Resource)
	if r.s.ttl > 0 {
		pipe.Expire(ctx, index, r.s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to index page state: %w", err)
	}
	return nil
}

func (r pageStates) DeleteSession(ctx context.Context, sessionID string) error {
	index := pageIndexKey(sessionID)
	resources, err := r.s.client.SMembers(ctx, index).Result()
	if err != nil {
		return fmt.Errorf("failed to list page states: %w", err)
	}

	keys := []string{index}
	for _, resource := range resources {
		keys = append(keys, pageKey(sessionID, resource))
	}
	if err := r.s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete page states: %w", err)
	}
	return nil
}
