package notifications

import "errors"

// ErrNotificationFailed возвращается, когда хотя бы одно письмо не отправлено
// Ошибка не фатальна для вызывающего сценария: запись уже создана или отменена
var ErrNotificationFailed = errors.New("notifications: notification failed")
