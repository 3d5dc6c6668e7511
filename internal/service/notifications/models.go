package notifications

import "time"

// Config параметры уведомлений
type Config struct {
	// AdminEmail получатель уведомлений администратора; пустое значение отключает их
	AdminEmail string
	// SubjectPrefix добавляется к теме каждого письма ("[DEV] " в dev-окружении)
	SubjectPrefix string
	// Location часовой пояс, в котором время записи показывается в письмах
	Location *time.Location
}
