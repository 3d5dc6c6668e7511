package middleware

import "time"

type Metrics interface {
	HTTPRequest(method, route, status string, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
