package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
)

// Service услуга каталога
type Service struct {
	Type            domain.ServiceType
	DurationMinutes int
}

// Catalog статический справочник "услуга -> длительность в минутах"
type Catalog struct {
	durations map[domain.ServiceType]int
}

// NewCatalog создает каталог; ключи нормализуются (SAT_PREP -> sat-prep)
func NewCatalog(durations map[string]int) (*Catalog, error) {
	if len(durations) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalidDuration)
	}

	c := &Catalog{durations: make(map[domain.ServiceType]int, len(durations))}
	for name, minutes := range durations {
		serviceType := domain.NormalizeServiceType(name)
		if serviceType == "" {
			return nil, fmt.Errorf("%w: empty service type", ErrUnknownServiceType)
		}
		if minutes <= 0 {
			return nil, fmt.Errorf("%w: %s=%d", ErrInvalidDuration, serviceType, minutes)
		}
		c.durations[serviceType] = minutes
	}

	return c, nil
}

// DurationMinutes длительность услуги; для неизвестной услуги - ErrUnknownServiceType
func (c *Catalog) DurationMinutes(serviceType domain.ServiceType) (int, error) {
	minutes, ok := c.durations[domain.NormalizeServiceType(string(serviceType))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownServiceType, serviceType)
	}
	return minutes, nil
}

// Duration то же, что DurationMinutes, в виде time.Duration
func (c *Catalog) Duration(serviceType domain.ServiceType) (time.Duration, error) {
	minutes, err := c.DurationMinutes(serviceType)
	if err != nil {
		return 0, err
	}
	return time.Duration(minutes) * time.Minute, nil
}

// Resolve нормализует сырой идентификатор и проверяет его наличие в каталоге
func (c *Catalog) Resolve(raw string) (domain.ServiceType, error) {
	serviceType := domain.NormalizeServiceType(raw)
	if _, ok := c.durations[serviceType]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownServiceType, raw)
	}
	return serviceType, nil
}

// Services список услуг, отсортированный по идентификатору
func (c *Catalog) Services() []Service {
	services := make([]Service, 0, len(c.durations))
	for serviceType, minutes := range c.durations {
		services = append(services, Service{Type: serviceType, DurationMinutes: minutes})
	}
	sort.Slice(services, func(i, j int) bool {
		return services[i].Type < services[j].Type
	})
	return services
}
