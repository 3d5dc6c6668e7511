package locker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRetryInterval = 50 * time.Millisecond
	releaseTimeout       = 2 * time.Second
)

// Удаляем ключ, только если он все еще принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker распределенная блокировка на SET NX PX для нескольких экземпляров сервиса
type RedisLocker struct {
	rdb           redis.UniversalClient
	prefix        string
	ttl           time.Duration
	wait          time.Duration
	retryInterval time.Duration
	log           Logger
}

// NewRedisLocker ttl - время жизни блокировки (защита от упавшего держателя), wait - время ожидания
// Разделитель ":" добавляется сам, завершающее двоеточие в prefix отбрасывается
func NewRedisLocker(rdb redis.UniversalClient, prefix string, ttl, wait time.Duration, log Logger) *RedisLocker {
	prefix = strings.TrimRight(prefix, ":")
	if prefix == "" {
		prefix = "lock"
	}
	return &RedisLocker{
		rdb:           rdb,
		prefix:        prefix,
		ttl:           ttl,
		wait:          wait,
		retryInterval: defaultRetryInterval,
		log:           log,
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	fullKey := l.prefix + ":" + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.rdb.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: key=%s: %v", ErrLockTimeout, fullKey, err)
			}
			return nil, fmt.Errorf("%w: SETNX %s: %v", ErrLockUnavailable, fullKey, err)
		}
		if ok {
			break
		}

		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("%w: key=%s", ErrLockTimeout, fullKey)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: key=%s: %v", ErrLockTimeout, fullKey, ctx.Err())
		case <-time.After(l.retryInterval):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// Освобождаем даже если контекст запроса уже отменен
			releaseCtx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
			defer cancel()

			if err := releaseScript.Run(releaseCtx, l.rdb, []string{fullKey}, token).Err(); err != nil {
				l.log.Warn("RedisLocker: failed to release %s (expires in %s): %v", fullKey, l.ttl, err)
			}
		})
	}, nil
}
