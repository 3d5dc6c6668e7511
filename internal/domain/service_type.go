package domain

import "strings"

// ServiceType идентификатор услуги ("consultation", "sat-prep", ...)
type ServiceType string

const (
	ServiceConsultation    ServiceType = "consultation"
	ServiceSATPrep         ServiceType = "sat-prep"
	ServiceCollegeAppHelp  ServiceType = "college-app-help"
	ServicePrivateTutoring ServiceType = "private-tutoring"
)

// NormalizeServiceType приводит идентификатор к каноничному виду:
// нижний регистр, "_" заменяется на "-" (SAT_PREP -> sat-prep)
func NormalizeServiceType(s string) ServiceType {
	s = strings.ToLower(strings.TrimSpace(s))
	return ServiceType(strings.ReplaceAll(s, "_", "-"))
}

func (s ServiceType) String() string {
	return string(s)
}
