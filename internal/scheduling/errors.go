package scheduling

import "errors"

var (
	// ErrUnknownServiceType возвращается для услуги, которой нет в каталоге
	ErrUnknownServiceType = errors.New("scheduling: unknown service type")

	// ErrInvalidBusinessHours возвращается при некорректной паре (start, end)
	ErrInvalidBusinessHours = errors.New("scheduling: invalid business hours")

	// ErrInvalidDuration возвращается при неположительной длительности услуги
	ErrInvalidDuration = errors.New("scheduling: invalid service duration")

	// ErrInvalidSlotTime возвращается, когда строку слота нельзя разобрать как "H:MM AM/PM"
	ErrInvalidSlotTime = errors.New("scheduling: invalid slot time")
)
