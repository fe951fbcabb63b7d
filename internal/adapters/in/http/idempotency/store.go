// Package idempotency lets clients retry unsafe requests (checkout) with an
// Idempotency-Key header and get the first response replayed instead of
// having the operation executed twice.
package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ordering/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "idem"
	pendingMarker = "pending"
)

// ErrRequestInFlight is returned by Reserve while the first request holding
// the key has not completed yet.
var ErrRequestInFlight = errors.New("request with this idempotency key is still in progress")

// Record is the stored outcome of a completed request.
type Record struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

type Store struct {
	rdb        *redis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

// NewStore keeps completed records for ttl. A reservation whose request never
// completes expires after pendingTTL so the key becomes usable again.
func NewStore(rdb *redis.Client, ttl, pendingTTL time.Duration) (*Store, error) {
	if rdb == nil {
		return nil, errs.NewValueIsRequiredError("redis client")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("idempotency ttl", ttl, "1ns", "unbounded")
	}
	if pendingTTL <= 0 || pendingTTL > ttl {
		return nil, errs.NewValueIsOutOfRangeError("pending ttl", pendingTTL, "1ns", ttl)
	}
	return &Store{rdb: rdb, ttl: ttl, pendingTTL: pendingTTL}, nil
}

func (s *Store) Key(scope, idempotencyKey string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, scope, idempotencyKey)
}

// Reserve claims key for a new request. It returns (nil, nil) when the caller
// owns the key and must run the request, the stored record when the request
// already completed, or ErrRequestInFlight.
func (s *Store) Reserve(ctx context.Context, key string) (*Record, error) {
	ok, err := s.rdb.SetNX(ctx, key, pendingMarker, s.pendingTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("redis setnx failed: %w", err)
	}
	if ok {
		return nil, nil
	}

	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		// expired between the two calls
		return s.Reserve(ctx, key)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	if string(data) == pendingMarker {
		return nil, ErrRequestInFlight
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshal idempotency record failed: %w", err)
	}
	return &record, nil
}

// Complete stores the outcome of the request owning key.
func (s *Store) Complete(ctx context.Context, key string, record Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal idempotency record failed: %w", err)
	}
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Release drops a reservation so the client may retry after a server failure.
func (s *Store) Release(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
