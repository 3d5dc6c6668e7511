package create_appointment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// fieldNames имена полей в том виде, в котором их видит клиент API
var fieldNames = map[string]string{
	"Date":        "date",
	"TimeSlot":    "timeSlot",
	"ContactName": "contactName",
	"ParentName":  "parentName",
	"Email":       "email",
	"Phone":       "phone",
	"ServiceType": "serviceType",
	"Course":      "course",
	"Notes":       "notes",
}

// validateRequest проверяет обязательные поля и их формат
// Строки из одних пробелов считаются пустыми
func validateRequest(req *Request) error {
	if req == nil {
		return &ValidationError{Fields: []string{"request body is required"}}
	}

	trimmed := *req
	trimmed.Date = strings.TrimSpace(req.Date)
	trimmed.TimeSlot = strings.TrimSpace(req.TimeSlot)
	trimmed.ContactName = strings.TrimSpace(req.ContactName)
	trimmed.Email = strings.TrimSpace(req.Email)
	trimmed.Phone = strings.TrimSpace(req.Phone)
	trimmed.ServiceType = strings.TrimSpace(req.ServiceType)

	err := validate.Struct(trimmed)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, describeFieldError(fe))
	}
	return &ValidationError{Fields: fields}
}

func describeFieldError(fe validator.FieldError) string {
	name, ok := fieldNames[fe.StructField()]
	if !ok {
		name = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", name)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
