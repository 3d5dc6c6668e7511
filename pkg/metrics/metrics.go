package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge

	AppointmentsCreated   *prometheus.CounterVec
	AppointmentsCancelled prometheus.Counter
	CalendarRequests      *prometheus.CounterVec
	Notifications         *prometheus.CounterVec
	OrphanedEvents        prometheus.Counter
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики в указанном реестре (используется в тестах)
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),

		AppointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Appointments successfully booked",
			ConstLabels: constLabels,
		}, []string{"service_type"}),
		AppointmentsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_cancelled_total",
			Help:        "Appointments cancelled",
			ConstLabels: constLabels,
		}),
		CalendarRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_requests_total",
			Help:        "Calls to the external calendar provider",
			ConstLabels: constLabels,
		}, []string{"op", "result"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Notification attempts by type and outcome",
			ConstLabels: constLabels,
		}, []string{"type", "status"}),
		OrphanedEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "orphaned_calendar_events_total",
			Help:        "Calendar events created without a persisted appointment",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.AppointmentsCreated,
		m.AppointmentsCancelled,
		m.CalendarRequests,
		m.Notifications,
		m.OrphanedEvents,
	)

	return m
}

// HTTPRequest route - шаблон маршрута mux, а не фактический путь
func (m *Metrics) HTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) AppointmentCreated(serviceType string) {
	if m == nil {
		return
	}
	m.AppointmentsCreated.WithLabelValues(serviceType).Inc()
}

func (m *Metrics) AppointmentCancelled() {
	if m == nil {
		return
	}
	m.AppointmentsCancelled.Inc()
}

func (m *Metrics) CalendarRequest(op, result string) {
	if m == nil {
		return
	}
	m.CalendarRequests.WithLabelValues(op, result).Inc()
}

func (m *Metrics) Notification(notificationType, status string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(notificationType, status).Inc()
}

func (m *Metrics) OrphanedCalendarEvent() {
	if m == nil {
		return
	}
	m.OrphanedEvents.Inc()
}
