package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
)

// FormatSlotTime форматирует начало слота как "H:MM AM/PM" ("9:00 AM", "12:30 PM")
// Формат фиксирован и не зависит от локали клиента: клиент присылает эту строку обратно при записи
func FormatSlotTime(t time.Time) string {
	return t.Format(domain.SlotTimeFormat)
}

// ParseSlotTime обратная операция к FormatSlotTime: "H:MM AM/PM" -> часы (0-23) и минуты
// 12 AM -> 0, 12 PM -> 12, остальные PM -> +12
func ParseSlotTime(s string) (hour, minute int, err error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(s), " "))

	t, err := time.Parse(domain.SlotTimeFormat, normalized)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlotTime, s)
	}

	return t.Hour(), t.Minute(), nil
}
