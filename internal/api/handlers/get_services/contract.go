package get_services

import (
	"github.com/collegeprep/CPS-AppointmentService/internal/scheduling"
)

// ServiceCatalog справочник услуг
type ServiceCatalog interface {
	Services() []scheduling.Service
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
