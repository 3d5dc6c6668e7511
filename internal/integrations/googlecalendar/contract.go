package googlecalendar

type Metrics interface {
	CalendarRequest(op, result string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
