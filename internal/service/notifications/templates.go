package notifications

import (
	"fmt"
	"strings"
	"time"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
)

const whenFormat = "Monday, January 2, 2006 at 3:04 PM MST"

func (s *Service) when(t time.Time) string {
	return t.In(s.loc).Format(whenFormat)
}

func (s *Service) confirmationMessage(appt *domain.Appointment) (string, string) {
	subject := s.subjectPrefix + "Your appointment is confirmed"

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", appt.ContactName)
	fmt.Fprintf(&b, "Your %s appointment is scheduled for %s.\n", appt.ServiceType, s.when(appt.StartTime))
	fmt.Fprintf(&b, "Duration: %d minutes\n", int(appt.Duration().Minutes()))
	if appt.Course != nil && *appt.Course != "" {
		fmt.Fprintf(&b, "Course: %s\n", *appt.Course)
	}
	fmt.Fprintf(&b, "Reference: %s\n\n", appt.ID)
	b.WriteString("If you need to reschedule, reply to this email.\n")

	return subject, b.String()
}

func (s *Service) adminMessage(appt *domain.Appointment) (string, string) {
	subject := fmt.Sprintf("%sNew appointment: %s - %s", s.subjectPrefix, appt.ServiceType, appt.ContactName)

	var b strings.Builder
	fmt.Fprintf(&b, "Service: %s\n", appt.ServiceType)
	fmt.Fprintf(&b, "When: %s\n", s.when(appt.StartTime))
	fmt.Fprintf(&b, "Student: %s\n", appt.ContactName)
	if appt.ParentName != nil && *appt.ParentName != "" {
		fmt.Fprintf(&b, "Parent: %s\n", *appt.ParentName)
	}
	fmt.Fprintf(&b, "Email: %s\n", appt.Email)
	fmt.Fprintf(&b, "Phone: %s\n", appt.Phone)
	if appt.Course != nil && *appt.Course != "" {
		fmt.Fprintf(&b, "Course: %s\n", *appt.Course)
	}
	if appt.Notes != nil && *appt.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", *appt.Notes)
	}
	fmt.Fprintf(&b, "Appointment ID: %s\n", appt.ID)
	if appt.HasCalendarEvent() {
		fmt.Fprintf(&b, "Calendar event: %s\n", *appt.ExternalEventID)
	}

	return subject, b.String()
}

func (s *Service) cancellationMessage(appt *domain.Appointment) (string, string) {
	subject := s.subjectPrefix + "Your appointment has been cancelled"

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", appt.ContactName)
	fmt.Fprintf(&b, "Your %s appointment on %s has been cancelled.\n", appt.ServiceType, s.when(appt.StartTime))
	fmt.Fprintf(&b, "Reference: %s\n", appt.ID)

	return subject, b.String()
}
