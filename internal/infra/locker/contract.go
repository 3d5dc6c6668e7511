package locker

import "context"

// ReleaseFunc освобождает полученную блокировку; повторный вызов безопасен
type ReleaseFunc func()

// Locker именованная взаимоисключающая блокировка
type Locker interface {
	Acquire(ctx context.Context, key string) (ReleaseFunc, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
