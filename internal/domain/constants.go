package domain

// Default configuration values
const (
	DefaultBusinessHoursStart     = 9
	DefaultBusinessHoursEnd       = 17
	DefaultSlotGranularityMinutes = 30
	DefaultLeadDays               = 0
	DefaultTimeZone               = "America/New_York"
	DefaultServiceType            = ServiceConsultation
)

// DefaultServiceDurations длительности услуг по умолчанию (в минутах)
var DefaultServiceDurations = map[ServiceType]int{
	ServiceConsultation:    30,
	ServiceSATPrep:         60,
	ServiceCollegeAppHelp:  60,
	ServicePrivateTutoring: 60,
}

// Business validation constants
const (
	// DurationToleranceMinutes допустимое расхождение фактической длительности с каталогом
	DurationToleranceMinutes = 1
	MaxLeadDays              = 30
	MaxNotesLength           = 1000
)

// Time format constants
const (
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	SlotTimeFormat = "3:04 PM"    // 12-часовой формат слота, "9:00 AM", "1:30 PM"
)
