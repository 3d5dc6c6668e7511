package locker

import "errors"

var (
	// ErrLockTimeout возвращается, когда блокировку не удалось получить за время ожидания
	ErrLockTimeout = errors.New("locker: lock wait timeout")

	// ErrLockUnavailable возвращается при недоступности хранилища блокировок
	ErrLockUnavailable = errors.New("locker: lock backend unavailable")
)
