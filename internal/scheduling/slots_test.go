package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
)

func newTestGenerator(t *testing.T, start, end, granularity int) *Generator {
	t.Helper()
	catalog, err := NewCatalog(domainDefaults())
	require.NoError(t, err)
	return NewGenerator(newTestPolicy(t, start, end, 0), catalog, granularity)
}

func monday(hour, minute int) time.Time {
	return time.Date(2026, 10, 19, hour, minute, 0, 0, testLoc)
}

func formatStarts(slots []TimeSlot) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, FormatSlotTime(s.StartTime))
	}
	return result
}

func TestGenerator_Generate_EmptyCalendar(t *testing.T) {
	g := newTestGenerator(t, 9, 17, 30)

	slots, err := g.Generate(monday(0, 0), domain.ServiceConsultation, nil)
	require.NoError(t, err)

	require.Len(t, slots, 16)
	starts := formatStarts(slots)
	assert.Equal(t, "9:00 AM", starts[0])
	assert.Equal(t, "12:00 PM", starts[6])
	assert.Equal(t, "4:30 PM", starts[15])

	for i, s := range slots {
		assert.True(t, s.Available)
		assert.Equal(t, 30*time.Minute, s.EndTime.Sub(s.StartTime))
		assert.True(t, g.policy.IsWithinBusinessHours(s.StartTime))
		if i > 0 {
			assert.Equal(t, g.Granularity(), s.StartTime.Sub(slots[i-1].StartTime))
		}
	}
}

func TestGenerator_Generate_GridWithinBusinessHours(t *testing.T) {
	tests := []struct {
		name        string
		start, end  int
		granularity int
		wantCount   int
	}{
		{name: "midnight hour, 45 min grid", start: 0, end: 1, granularity: 45, wantCount: 2},
		{name: "evening, 60 min grid", start: 16, end: 21, granularity: 60, wantCount: 5},
		{name: "late hour, 45 min grid", start: 22, end: 23, granularity: 45, wantCount: 2},
		{name: "working day, 30 min grid", start: 9, end: 17, granularity: 30, wantCount: 16},
		{name: "working day, 45 min grid", start: 9, end: 17, granularity: 45, wantCount: 11},
		{name: "whole day, 60 min grid", start: 0, end: 23, granularity: 60, wantCount: 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGenerator(t, tt.start, tt.end, tt.granularity)

			slots, err := g.Generate(monday(0, 0), domain.ServiceConsultation, nil)
			require.NoError(t, err)
			require.Len(t, slots, tt.wantCount)

			assert.Equal(t, monday(tt.start, 0), slots[0].StartTime)
			for i, s := range slots {
				hour := s.StartTime.Hour()
				assert.GreaterOrEqual(t, hour, tt.start, "slot %s", FormatSlotTime(s.StartTime))
				assert.Less(t, hour, tt.end, "slot %s", FormatSlotTime(s.StartTime))
				if i > 0 {
					assert.Equal(t, time.Duration(tt.granularity)*time.Minute, s.StartTime.Sub(slots[i-1].StartTime))
				}
			}
		})
	}
}

func TestGenerator_Generate_BusyInterval(t *testing.T) {
	g := newTestGenerator(t, 9, 17, 30)
	busy := []BusyInterval{{Start: monday(10, 0), End: monday(10, 30)}}

	slots, err := g.Generate(monday(0, 0), domain.ServiceConsultation, busy)
	require.NoError(t, err)
	require.Len(t, slots, 16)

	available := formatStarts(AvailableOnly(slots))
	assert.Len(t, available, 15)
	assert.NotContains(t, available, "10:00 AM")
	assert.Contains(t, available, "9:30 AM")
	assert.Contains(t, available, "10:30 AM")
}

func TestGenerator_Generate_LongServiceBlockedByPartialOverlap(t *testing.T) {
	g := newTestGenerator(t, 9, 17, 30)
	busy := []BusyInterval{{Start: monday(10, 0), End: monday(10, 30)}}

	slots, err := g.Generate(monday(0, 0), domain.ServiceSATPrep, busy)
	require.NoError(t, err)

	available := formatStarts(AvailableOnly(slots))
	// 9:30-10:30 и 10:00-11:00 пересекаются с 10:00-10:30
	assert.NotContains(t, available, "9:30 AM")
	assert.NotContains(t, available, "10:00 AM")
	assert.Contains(t, available, "9:00 AM")
	assert.Contains(t, available, "10:30 AM")

	last := slots[len(slots)-1]
	assert.Equal(t, "4:30 PM", FormatSlotTime(last.StartTime))
	assert.Equal(t, monday(17, 30), last.EndTime)
}

func TestGenerator_Generate_UTCInput(t *testing.T) {
	g := newTestGenerator(t, 9, 17, 30)

	// 02:00 UTC 20 октября - еще 19 октября по EST
	slots, err := g.Generate(time.Date(2026, 10, 20, 2, 0, 0, 0, time.UTC), domain.ServiceConsultation, nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, monday(9, 0), slots[0].StartTime)
}

func TestGenerator_Generate_UnknownService(t *testing.T) {
	g := newTestGenerator(t, 9, 17, 30)

	_, err := g.Generate(monday(0, 0), "astrology", nil)
	assert.ErrorIs(t, err, ErrUnknownServiceType)
}

func TestGenerator_Generate_DefaultGranularity(t *testing.T) {
	g := newTestGenerator(t, 16, 21, 0)
	assert.Equal(t, 30*time.Minute, g.Granularity())

	slots, err := g.Generate(monday(0, 0), domain.ServiceConsultation, nil)
	require.NoError(t, err)
	assert.Len(t, slots, 10)
}

func TestOverlaps(t *testing.T) {
	busy := BusyInterval{Start: monday(10, 0), End: monday(10, 30)}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{name: "same interval", start: monday(10, 0), end: monday(10, 30), want: true},
		{name: "partial from left", start: monday(9, 45), end: monday(10, 15), want: true},
		{name: "partial from right", start: monday(10, 15), end: monday(10, 45), want: true},
		{name: "containing", start: monday(9, 0), end: monday(11, 0), want: true},
		{name: "touching before", start: monday(9, 30), end: monday(10, 0), want: false},
		{name: "touching after", start: monday(10, 30), end: monday(11, 0), want: false},
		{name: "far away", start: monday(14, 0), end: monday(15, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.start, tt.end, busy))
		})
	}
}

func TestOverlapsAny(t *testing.T) {
	busy := []BusyInterval{
		{Start: monday(9, 0), End: monday(9, 30)},
		{Start: monday(13, 0), End: monday(14, 0)},
	}

	assert.True(t, OverlapsAny(monday(13, 30), monday(14, 30), busy))
	assert.False(t, OverlapsAny(monday(9, 30), monday(13, 0), busy))
	assert.False(t, OverlapsAny(monday(9, 30), monday(10, 0), nil))
}
