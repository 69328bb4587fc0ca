// Package session keeps login sessions in redis so an operator token can
// be invalidated server-side at logout rather than only expiring.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "hms:session:"

var ErrNotFound = errors.New("session not found")

type Record struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	IssuedAt time.Time `json:"issued_at"`
}

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore wraps a redis client. A nil client disables session tracking;
// every method becomes a no-op and Get reports the session as present.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) Save(ctx context.Context, record Record) error {
	if s == nil || s.client == nil {
		return nil
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+record.UserID, payload, s.ttl).Err()
}

func (s *Store) Get(ctx context.Context, userID string) (*Record, error) {
	if s == nil || s.client == nil {
		return &Record{UserID: userID}, nil
	}
	payload, err := s.client.Get(ctx, keyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Store) Delete(ctx context.Context, userID string) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Del(ctx, keyPrefix+userID).Err()
}
