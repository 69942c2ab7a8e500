package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"inventory-system/pkg/constants"
)

// LoginAttemptRepositoryInterface tracks failed logins per email and the
// lockout that follows too many of them.
type LoginAttemptRepositoryInterface interface {
	IsLocked(ctx context.Context, email string) (bool, error)
	RegisterFailure(ctx context.Context, email string, limit int, window time.Duration) (attempts int64, locked bool, err error)
	Reset(ctx context.Context, email string) error
}

type loginAttemptRepository struct {
	client *redis.Client
}

func NewLoginAttemptRepository(client *redis.Client) LoginAttemptRepositoryInterface {
	return &loginAttemptRepository{client: client}
}

func attemptsKey(email string) string { return fmt.Sprintf(constants.CacheKeyLoginAttempts, email) }
func lockoutKey(email string) string  { return fmt.Sprintf(constants.CacheKeyLockout, email) }

func (r *loginAttemptRepository) IsLocked(ctx context.Context, email string) (bool, error) {
	n, err := r.client.Exists(ctx, lockoutKey(email)).Result()
	return n > 0, err
}

// RegisterFailure counts one failed login. The window starts with the first
// failure; reaching limit sets the lockout for the same duration and clears
// the counter.
func (r *loginAttemptRepository) RegisterFailure(ctx context.Context, email string, limit int, window time.Duration) (int64, bool, error) {
	key := attemptsKey(email)

	attempts, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, false, fmt.Errorf("count login failure: %w", err)
	}
	if attempts == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return attempts, false, fmt.Errorf("set login failure window: %w", err)
		}
	}
	if attempts < int64(limit) {
		return attempts, false, nil
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, lockoutKey(email), "locked", window)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return attempts, false, fmt.Errorf("lock account: %w", err)
	}
	return attempts, true, nil
}

func (r *loginAttemptRepository) Reset(ctx context.Context, email string) error {
	return r.client.Del(ctx, attemptsKey(email), lockoutKey(email)).Err()
}
