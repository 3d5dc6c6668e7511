package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
)

func TestNewCatalog(t *testing.T) {
	_, err := NewCatalog(nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = NewCatalog(map[string]int{"consultation": 0})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = NewCatalog(map[string]int{" ": 30})
	assert.ErrorIs(t, err, ErrUnknownServiceType)
}

func TestCatalog_DurationMinutes(t *testing.T) {
	c, err := NewCatalog(map[string]int{
		"consultation": 30,
		"SAT_PREP":     60,
	})
	require.NoError(t, err)

	minutes, err := c.DurationMinutes(domain.ServiceConsultation)
	require.NoError(t, err)
	assert.Equal(t, 30, minutes)

	minutes, err = c.DurationMinutes("sat-prep")
	require.NoError(t, err)
	assert.Equal(t, 60, minutes)

	d, err := c.Duration("Sat-Prep")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, d)

	_, err = c.DurationMinutes("astrology")
	assert.ErrorIs(t, err, ErrUnknownServiceType)
}

func TestCatalog_Resolve(t *testing.T) {
	c, err := NewCatalog(domainDefaults())
	require.NoError(t, err)

	serviceType, err := c.Resolve("COLLEGE_APP_HELP")
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceCollegeAppHelp, serviceType)

	_, err = c.Resolve("")
	assert.ErrorIs(t, err, ErrUnknownServiceType)
}

func TestCatalog_Services(t *testing.T) {
	c, err := NewCatalog(domainDefaults())
	require.NoError(t, err)

	services := c.Services()
	require.Len(t, services, 4)
	assert.Equal(t, domain.ServiceCollegeAppHelp, services[0].Type)
	assert.Equal(t, domain.ServiceConsultation, services[1].Type)
	assert.Equal(t, 30, services[1].DurationMinutes)
	assert.Equal(t, domain.ServicePrivateTutoring, services[2].Type)
	assert.Equal(t, domain.ServiceSATPrep, services[3].Type)
}

func domainDefaults() map[string]int {
	m := make(map[string]int, len(domain.DefaultServiceDurations))
	for k, v := range domain.DefaultServiceDurations {
		m[string(k)] = v
	}
	return m
}
