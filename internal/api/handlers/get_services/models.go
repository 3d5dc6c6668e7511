package get_services

import (
	"github.com/collegeprep/CPS-AppointmentService/internal/scheduling"
)

// ServiceResponse HTTP response model
type ServiceResponse struct {
	ServiceType     string `json:"serviceType"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromCatalog конвертирует услуги каталога в HTTP response
func FromCatalog(services []scheduling.Service) []ServiceResponse {
	result := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		result = append(result, ServiceResponse{
			ServiceType:     s.Type.String(),
			DurationMinutes: s.DurationMinutes,
		})
	}
	return result
}
