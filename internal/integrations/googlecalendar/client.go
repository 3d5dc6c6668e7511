package googlecalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
	"github.com/collegeprep/CPS-AppointmentService/internal/scheduling"
)

const defaultTimeout = 10 * time.Second

// Client адаптер к Google Calendar API v3: занятость, создание и удаление событий
type Client struct {
	svc         *calendar.Service
	calendarID  string
	loc         *time.Location
	timeout     time.Duration
	eventSuffix string
	invite      bool
	metrics     Metrics
	log         Logger
}

// NewService создает клиент Calendar API по учетным данным сервисного аккаунта
func NewService(ctx context.Context, creds Credentials) (*calendar.Service, error) {
	switch {
	case creds.File != "":
		return calendar.NewService(ctx, option.WithCredentialsFile(creds.File), option.WithScopes(calendar.CalendarScope))

	case creds.Email != "" && creds.PrivateKey != "":
		conf := &jwt.Config{
			Email:      creds.Email,
			PrivateKey: []byte(creds.PrivateKey),
			Scopes:     []string{calendar.CalendarScope},
			TokenURL:   google.JWTTokenURL,
		}
		return calendar.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx)))

	default:
		return nil, fmt.Errorf("%w: credentials file or service account email and private key are required", ErrInvalidCredentials)
	}
}

// NewClient создает новый экземпляр клиента календаря
func NewClient(svc *calendar.Service, opts Options, metrics Metrics, log Logger) *Client {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Client{
		svc:         svc,
		calendarID:  opts.CalendarID,
		loc:         opts.Location,
		timeout:     opts.Timeout,
		eventSuffix: opts.EventSuffix,
		invite:      opts.InviteAttendees,
		metrics:     metrics,
		log:         log,
	}
}

// ListBusy возвращает занятые интервалы календаря, пересекающиеся с [windowStart, windowEnd)
// Отмененные события и события с прозрачностью "transparent" (не блокируют время) пропускаются
func (c *Client) ListBusy(ctx context.Context, windowStart, windowEnd time.Time) ([]scheduling.BusyInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var busy []scheduling.BusyInterval
	err := c.svc.Events.List(c.calendarID).
		TimeMin(windowStart.Format(time.RFC3339)).
		TimeMax(windowEnd.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Pages(ctx, func(page *calendar.Events) error {
			for _, item := range page.Items {
				if item.Status == "cancelled" || item.Transparency == "transparent" {
					continue
				}
				interval, err := c.toBusyInterval(item)
				if err != nil {
					return err
				}
				busy = append(busy, interval)
			}
			return nil
		})
	if err != nil {
		c.metrics.CalendarRequest(opListBusy, resultError)
		c.log.Error("ListBusy: calendar=%s window=[%s, %s): %v",
			c.calendarID, windowStart.Format(time.RFC3339), windowEnd.Format(time.RFC3339), err)
		return nil, fmt.Errorf("%w: list events: %v", ErrCalendarUnavailable, err)
	}

	c.metrics.CalendarRequest(opListBusy, resultOK)
	return busy, nil
}

// InsertEvent создает событие для записи и возвращает его ID
// Не идемпотентен: повторный вызов создаст второе событие
func (c *Client) InsertEvent(ctx context.Context, appt *domain.Appointment) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	event := &calendar.Event{
		Summary:     fmt.Sprintf("%s - %s%s", appt.ServiceType, appt.ContactName, c.eventSuffix),
		Description: eventDescription(appt),
		Start: &calendar.EventDateTime{
			DateTime: appt.StartTime.In(c.loc).Format(time.RFC3339),
			TimeZone: c.loc.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: appt.EndTime.In(c.loc).Format(time.RFC3339),
			TimeZone: c.loc.String(),
		},
	}
	// Сервисный аккаунт без domain-wide delegation не может приглашать участников
	if c.invite && appt.Email != "" {
		event.Attendees = []*calendar.EventAttendee{{Email: appt.Email, DisplayName: appt.ContactName}}
	}

	created, err := c.svc.Events.Insert(c.calendarID, event).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		c.metrics.CalendarRequest(opInsertEvent, resultError)
		c.log.Error("InsertEvent: calendar=%s service=%s start=%s: %v",
			c.calendarID, appt.ServiceType, appt.StartTime.Format(time.RFC3339), err)
		return "", fmt.Errorf("%w: insert event: %v", ErrCalendarWriteFailed, err)
	}

	c.metrics.CalendarRequest(opInsertEvent, resultOK)
	c.log.Info("InsertEvent: created event id=%s calendar=%s", created.Id, c.calendarID)
	return created.Id, nil
}

// DeleteEvent удаляет событие; отсутствующее (404) или уже удаленное (410) событие считается успехом
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.svc.Events.Delete(c.calendarID, eventID).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
			c.metrics.CalendarRequest(opDeleteEvent, resultOK)
			c.log.Warn("DeleteEvent: event id=%s already gone (status=%d)", eventID, apiErr.Code)
			return nil
		}

		c.metrics.CalendarRequest(opDeleteEvent, resultError)
		c.log.Error("DeleteEvent: calendar=%s event id=%s: %v", c.calendarID, eventID, err)
		return fmt.Errorf("%w: delete event %s: %v", ErrCalendarWriteFailed, eventID, err)
	}

	c.metrics.CalendarRequest(opDeleteEvent, resultOK)
	c.log.Info("DeleteEvent: deleted event id=%s", eventID)
	return nil
}

// toBusyInterval событие с dateTime или целодневное событие (date, конец не включается)
func (c *Client) toBusyInterval(item *calendar.Event) (scheduling.BusyInterval, error) {
	start, err := c.parseEventTime(item.Start)
	if err != nil {
		return scheduling.BusyInterval{}, fmt.Errorf("%w: event %s start: %v", ErrInvalidResponse, item.Id, err)
	}
	end, err := c.parseEventTime(item.End)
	if err != nil {
		return scheduling.BusyInterval{}, fmt.Errorf("%w: event %s end: %v", ErrInvalidResponse, item.Id, err)
	}
	return scheduling.BusyInterval{Start: start, End: end}, nil
}

func (c *Client) parseEventTime(t *calendar.EventDateTime) (time.Time, error) {
	if t == nil {
		return time.Time{}, errors.New("missing time")
	}
	if t.DateTime != "" {
		return time.Parse(time.RFC3339, t.DateTime)
	}
	if t.Date != "" {
		return time.ParseInLocation(domain.DateFormat, t.Date, c.loc)
	}
	return time.Time{}, errors.New("empty time")
}

func eventDescription(appt *domain.Appointment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Service: %s\n", appt.ServiceType)
	if appt.Course != nil && *appt.Course != "" {
		fmt.Fprintf(&b, "Course: %s\n", *appt.Course)
	}
	fmt.Fprintf(&b, "Student: %s\n", appt.ContactName)
	if appt.ParentName != nil && *appt.ParentName != "" {
		fmt.Fprintf(&b, "Parent: %s\n", *appt.ParentName)
	}
	fmt.Fprintf(&b, "Email: %s\n", appt.Email)
	fmt.Fprintf(&b, "Phone: %s\n", appt.Phone)
	if appt.Notes != nil && *appt.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", *appt.Notes)
	}
	return b.String()
}

type noopMetrics struct{}

func (noopMetrics) CalendarRequest(string, string) {}
