package create_appointment

// Request модель запроса на создание записи
// Дата и время приходят строками в формате публичного API
type Request struct {
	Date        string  `validate:"required"` // YYYY-MM-DD
	TimeSlot    string  `validate:"required"` // "H:MM AM/PM"
	ContactName string  `validate:"required,max=200"`
	ParentName  *string `validate:"omitempty,max=200"`
	Email       string  `validate:"required,email"`
	Phone       string  `validate:"required,max=50"`
	ServiceType string  `validate:"required"`
	Course      *string `validate:"omitempty,max=200"`
	Notes       *string `validate:"omitempty,max=1000"`
}

// Response модель ответа с созданной записью
type Response struct {
	AppointmentID   string
	ExternalEventID string
}
