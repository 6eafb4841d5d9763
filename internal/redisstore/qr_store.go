package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound means no live redemption exists for the code.
var ErrNotFound = errors.New("qr: code not registered")

// QRStore keeps the set of currently redeemable QR payloads in redis. An
// entry exists only between a booking's confirmation and its exit from the
// Confirmed state, with a TTL capped at the booking window's end.
type QRStore struct {
	client *redis.Client
}

// NewQRStore returns a redis-backed store.
func NewQRStore(client *redis.Client) *QRStore {
	return &QRStore{client: client}
}

func (s *QRStore) key(code string) string {
	return "bookings:qr:" + code
}

// Register makes the code redeemable until the booking window closes.
func (s *QRStore) Register(ctx context.Context, code, bookingID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return errors.New("qr: booking window already closed")
	}
	return s.client.Set(ctx, s.key(code), bookingID, ttl).Err()
}

// Resolve returns the booking id behind a live code.
func (s *QRStore) Resolve(ctx context.Context, code string) (string, error) {
	result, err := s.client.Get(ctx, s.key(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return result, nil
}

// Drop revokes a code before its TTL, on cancellation or completion.
func (s *QRStore) Drop(ctx context.Context, code string) error {
	return s.client.Del(ctx, s.key(code)).Err()
}
