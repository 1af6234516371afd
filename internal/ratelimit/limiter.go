package ratelimit

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter tracks failed logins per username.
type LoginLimiter interface {
	Locked(ctx context.Context, username string) (bool, error)
	Fail(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

func Key(username string) string {
	return "login:fail:" + strings.ToLower(username)
}

// RedisLimiter locks a username once maxAttempts failures happen within the
// lockout window. The counter expires with the window.
type RedisLimiter struct {
	rdb         *redis.Client
	maxAttempts int64
	lockout     time.Duration
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisLimiter(rdb *redis.Client, maxAttempts int, lockout time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, maxAttempts: int64(maxAttempts), lockout: lockout}
}

func (l *RedisLimiter) Locked(ctx context.Context, username string) (bool, error) {
	count, err := l.rdb.Get(ctx, Key(username)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= l.maxAttempts, nil
}

func (l *RedisLimiter) Fail(ctx context.Context, username string) error {
	key := Key(username)
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return err
	}

	// окно блокировки стартует с первой неудачи
	if count == 1 {
		return l.rdb.Expire(ctx, key, l.lockout).Err()
	}
	return nil
}

func (l *RedisLimiter) Reset(ctx context.Context, username string) error {
	return l.rdb.Del(ctx, Key(username)).Err()
}

// NopLimiter never locks anyone.
type NopLimiter struct{}

func (NopLimiter) Locked(context.Context, string) (bool, error) { return false, nil }

func (NopLimiter) Fail(context.Context, string) error { return nil }

func (NopLimiter) Reset(context.Context, string) error { return nil }
