package locker

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryLocker блокировка в памяти процесса (один экземпляр сервиса)
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*memoryLock
	wait  time.Duration
}

type memoryLock struct {
	ch   chan struct{}
	refs int
}

// NewMemoryLocker wait - максимальное время ожидания блокировки
func NewMemoryLocker(wait time.Duration) *MemoryLocker {
	return &MemoryLocker{
		locks: make(map[string]*memoryLock),
		wait:  wait,
	}
}

func (l *MemoryLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	lock := l.ref(key)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case lock.ch <- struct{}{}:
	case <-timer.C:
		l.unref(key)
		return nil, fmt.Errorf("%w: key=%s", ErrLockTimeout, key)
	case <-ctx.Done():
		l.unref(key)
		return nil, fmt.Errorf("%w: key=%s: %v", ErrLockTimeout, key, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-lock.ch
			l.unref(key)
		})
	}, nil
}

func (l *MemoryLocker) ref(key string) *memoryLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[key]
	if !ok {
		lock = &memoryLock{ch: make(chan struct{}, 1)}
		l.locks[key] = lock
	}
	lock.refs++
	return lock
}

func (l *MemoryLocker) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[key]
	if !ok {
		return
	}
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, key)
	}
}
