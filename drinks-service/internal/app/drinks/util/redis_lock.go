package util

import (
	"context"
	"errors"
	"fmt"
	"time"

	"drinkcatalog/pkg/logger"
	"drinkcatalog/pkg/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const dayLockPrefix = "featured:rotation:"

var ErrLockTimeout = errors.New("timed out waiting for day lock")

// Deletes the key only if it still holds our token, so an expired lock
// re-acquired by another replica is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisDayLocker struct {
	client  redis.UniversalClient
	ttl     time.Duration
	wait    time.Duration
	backoff time.Duration
}

func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// NewRedisDayLocker builds a locker whose keys expire after ttl. LockDay gives
// up after wait, polling every backoff.
func NewRedisDayLocker(client redis.UniversalClient, ttl, wait, backoff time.Duration) *RedisDayLocker {
	if backoff <= 0 {
		backoff = 100 * time.Millisecond
	}
	return &RedisDayLocker{client: client, ttl: ttl, wait: wait, backoff: backoff}
}

func DayLockKey(day time.Time) string {
	return dayLockPrefix + day.Format("2006-01-02")
}

func (l *RedisDayLocker) LockDay(ctx context.Context, day time.Time) (func(), error) {
	key := DayLockKey(day)
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	for {
		timer := metrics.NewRedisTimer(metricsServiceName, metrics.RedisOpLock)
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		timer.ObserveDuration(err)

		if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
			}
			return nil, ctx.Err()
		case <-time.After(l.backoff):
		}
	}
}

func (l *RedisDayLocker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	timer := metrics.NewRedisTimer(metricsServiceName, metrics.RedisOpUnlock)
	err := releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	timer.ObserveDuration(err)

	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("failed to release day lock")
	}
}
