package scheduling

import (
	"fmt"
	"time"
)

// BusinessHours рабочее окно [Start, End) в часах локального времени
type BusinessHours struct {
	Start int
	End   int
}

// Validate проверяет 0 <= Start < End < 24
func (h BusinessHours) Validate() error {
	if h.Start < 0 || h.Start > 23 || h.End < 0 || h.End > 23 {
		return fmt.Errorf("%w: hours must be in [0,24), got start=%d end=%d", ErrInvalidBusinessHours, h.Start, h.End)
	}
	if h.Start >= h.End {
		return fmt.Errorf("%w: start=%d must be before end=%d", ErrInvalidBusinessHours, h.Start, h.End)
	}
	return nil
}

// Policy правила допустимого времени записи: рабочие часы, выходные, прошедшие даты, lead time
// Неизменяем после создания
type Policy struct {
	hours    BusinessHours
	loc      *time.Location
	leadDays int
}

// NewPolicy создает политику; leadDays - минимальное количество дней между сегодняшним днем и датой записи
func NewPolicy(hours BusinessHours, loc *time.Location, leadDays int) (*Policy, error) {
	if err := hours.Validate(); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	if leadDays < 0 {
		leadDays = 0
	}
	return &Policy{hours: hours, loc: loc, leadDays: leadDays}, nil
}

func (p *Policy) Hours() BusinessHours {
	return p.hours
}

func (p *Policy) Location() *time.Location {
	return p.loc
}

func (p *Policy) LeadDays() int {
	return p.leadDays
}

// IsWithinBusinessHours true, если час t (в часовом поясе политики) попадает в [Start, End)
// Минуты не учитываются
func (p *Policy) IsWithinBusinessHours(t time.Time) bool {
	hour := t.In(p.loc).Hour()
	return hour >= p.hours.Start && hour < p.hours.End
}

// EndsWithinBusinessHours проверка для времени окончания записи:
// окончание ровно в End:00 допустимо, позже - нет
func (p *Policy) EndsWithinBusinessHours(end time.Time) bool {
	windowStart, windowEnd := p.DayWindow(end)
	return end.After(windowStart) && !end.After(windowEnd)
}

// IsBookableDate false для дат в прошлом (сравнение только по дате), выходных
// и дат раньше today + leadDays
func (p *Policy) IsBookableDate(d time.Time, now time.Time) bool {
	day := p.StartOfDay(d)
	today := p.StartOfDay(now)

	if day.Before(today) {
		return false
	}

	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	if p.leadDays > 0 && day.Before(today.AddDate(0, 0, p.leadDays)) {
		return false
	}

	return true
}

// StartOfDay полночь дня d в часовом поясе политики
func (p *Policy) StartOfDay(d time.Time) time.Time {
	y, m, day := d.In(p.loc).Date()
	return time.Date(y, m, day, 0, 0, 0, 0, p.loc)
}

// At момент hour:minute в день d (часовой пояс политики)
func (p *Policy) At(d time.Time, hour, minute int) time.Time {
	y, m, day := d.In(p.loc).Date()
	return time.Date(y, m, day, hour, minute, 0, 0, p.loc)
}

// DayWindow границы рабочего окна дня d: [d@Start:00, d@End:00)
func (p *Policy) DayWindow(d time.Time) (time.Time, time.Time) {
	return p.At(d, p.hours.Start, 0), p.At(d, p.hours.End, 0)
}
