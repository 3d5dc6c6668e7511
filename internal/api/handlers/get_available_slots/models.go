package get_available_slots

import (
	getAvailableSlots "github.com/collegeprep/CPS-AppointmentService/internal/usecase/get_available_slots"
)

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(date, serviceType string) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{
		Date:        date,
		ServiceType: serviceType,
	}
}

// FromUseCaseResponse ответ - массив строк "H:MM AM/PM"; пустой день отдается как []
func FromUseCaseResponse(resp *getAvailableSlots.Response) []string {
	if resp.Slots == nil {
		return []string{}
	}
	return resp.Slots
}
