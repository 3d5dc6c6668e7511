package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSlotTime(t *testing.T) {
	assert.Equal(t, "9:00 AM", FormatSlotTime(monday(9, 0)))
	assert.Equal(t, "12:00 AM", FormatSlotTime(monday(0, 0)))
	assert.Equal(t, "12:30 PM", FormatSlotTime(monday(12, 30)))
	assert.Equal(t, "4:30 PM", FormatSlotTime(monday(16, 30)))
}

func TestParseSlotTime(t *testing.T) {
	tests := []struct {
		in           string
		hour, minute int
	}{
		{"9:00 AM", 9, 0},
		{"12:00 AM", 0, 0},
		{"12:00 PM", 12, 0},
		{"12:30 PM", 12, 30},
		{"1:30 PM", 13, 30},
		{"11:30 PM", 23, 30},
		{" 4:30  pm ", 16, 30},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			hour, minute, err := ParseSlotTime(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.hour, hour)
			assert.Equal(t, tt.minute, minute)
		})
	}
}

func TestParseSlotTime_Invalid(t *testing.T) {
	for _, in := range []string{"", "9:00", "13:00 PM", "9 AM", "9:60 AM", "noon"} {
		_, _, err := ParseSlotTime(in)
		assert.ErrorIs(t, err, ErrInvalidSlotTime, in)
	}
}

func TestSlotTime_RoundTrip(t *testing.T) {
	day := monday(0, 0)
	for cursor := day; cursor.Before(day.Add(24 * time.Hour)); cursor = cursor.Add(30 * time.Minute) {
		hour, minute, err := ParseSlotTime(FormatSlotTime(cursor))
		require.NoError(t, err)
		assert.Equal(t, cursor.Hour(), hour)
		assert.Equal(t, cursor.Minute(), minute)
	}
}
