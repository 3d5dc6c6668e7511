package scheduling

import (
	"time"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
)

// TimeSlot кандидат на запись; создается на каждый запрос и нигде не сохраняется
type TimeSlot struct {
	StartTime time.Time
	EndTime   time.Time
	Available bool
}

// BusyInterval занятый интервал из внешнего календаря
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Generator генератор слотов рабочего дня
type Generator struct {
	policy      *Policy
	catalog     *Catalog
	granularity time.Duration
}

// NewGenerator создает генератор с шагом сетки granularityMinutes
// (при неположительном значении используется domain.DefaultSlotGranularityMinutes)
func NewGenerator(policy *Policy, catalog *Catalog, granularityMinutes int) *Generator {
	if granularityMinutes <= 0 {
		granularityMinutes = domain.DefaultSlotGranularityMinutes
	}
	return &Generator{
		policy:      policy,
		catalog:     catalog,
		granularity: time.Duration(granularityMinutes) * time.Minute,
	}
}

func (g *Generator) Granularity() time.Duration {
	return g.granularity
}

// Generate возвращает все слоты дня (в том числе занятые) в хронологическом порядке
//
// Слоты идут с начала рабочего окна с шагом granularity, пока cursor < конца окна.
// Окончание слота может выходить за конец окна для услуг длиннее шага сетки -
// генератор такие слоты не отбрасывает, жесткую проверку делает бронирование.
func (g *Generator) Generate(day time.Time, serviceType domain.ServiceType, busy []BusyInterval) ([]TimeSlot, error) {
	duration, err := g.catalog.Duration(serviceType)
	if err != nil {
		return nil, err
	}

	windowStart, windowEnd := g.policy.DayWindow(day)

	slots := make([]TimeSlot, 0, int(windowEnd.Sub(windowStart)/g.granularity))
	for cursor := windowStart; cursor.Before(windowEnd); cursor = cursor.Add(g.granularity) {
		// Повторная проверка нужна для сетки, не выровненной по рабочим часам
		if !g.policy.IsWithinBusinessHours(cursor) {
			continue
		}

		slotEnd := cursor.Add(duration)
		slots = append(slots, TimeSlot{
			StartTime: cursor,
			EndTime:   slotEnd,
			Available: !OverlapsAny(cursor, slotEnd, busy),
		})
	}

	return slots, nil
}

// AvailableOnly оставляет только свободные слоты, сохраняя порядок
func AvailableOnly(slots []TimeSlot) []TimeSlot {
	result := make([]TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.Available {
			result = append(result, slot)
		}
	}
	return result
}

// Overlaps пересечение полуоткрытых интервалов [start, end) и [busy.Start, busy.End)
//
// Примеры:
// - слот 10:00-10:30, занято 10:15-10:45 -> пересечение
// - слот 10:00-10:30, занято 10:30-11:00 -> нет пересечения (граничат)
// - слот 10:00-10:30, занято 09:30-10:00 -> нет пересечения (граничат)
func Overlaps(start, end time.Time, busy BusyInterval) bool {
	return start.Before(busy.End) && end.After(busy.Start)
}

// OverlapsAny true, если [start, end) пересекается хотя бы с одним занятым интервалом
func OverlapsAny(start, end time.Time, busy []BusyInterval) bool {
	for _, b := range busy {
		if Overlaps(start, end, b) {
			return true
		}
	}
	return false
}
