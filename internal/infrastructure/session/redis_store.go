package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/heartlinkapp/heartlink-backend/internal/usecase/auth"
)

// RedisStore keeps refresh tokens and OTP codes in redis.
//
// Refresh tokens live at refresh:<user_id>:<jti> so revoking a single
// session and revoking all sessions are both cheap.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) auth.SessionStore {
	return &RedisStore{client: client}
}

func refreshKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("refresh:%s:%s", userID, tokenID)
}

func otpKey(purpose, email string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, email)
}

func (s *RedisStore) SaveRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshKey(userID, tokenID), "1", ttl).Err()
}

func (s *RedisStore) RefreshTokenValid(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, refreshKey(userID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) RevokeRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string) error {
	return s.client.Del(ctx, refreshKey(userID, tokenID)).Err()
}

func (s *RedisStore) RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	iter := s.client.Scan(ctx, 0, fmt.Sprintf("refresh:%s:*", userID), 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (s *RedisStore) SaveOTP(ctx context.Context, purpose, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, otpKey(purpose, email), code, ttl).Err()
}

// ConsumeOTP compares and deletes in one transaction so a code can only
// succeed once.
func (s *RedisStore) ConsumeOTP(ctx context.Context, purpose, email, code string) (bool, error) {
	key := otpKey(purpose, email)

	var matched bool
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return nil
		}
		if err != nil {
			return err
		}
		if stored != code {
			return nil
		}
		matched = true
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return false, err
	}
	return matched, nil
}
