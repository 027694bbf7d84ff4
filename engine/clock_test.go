package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/payroll-engine/engine"
)

func TestClockToMinutes(t *testing.T) {
	tests := []struct {
		clock string
		want  int
	}{
		{"00:00", 0},
		{"08:00", 480},
		{"08:41", 521},
		{"17:00", 1020},
		{"23:59", 1439},
		{"08:30:45", 510}, // seconds ignored
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.ClockToMinutes(tt.clock), "clock %s", tt.clock)
	}
}

func TestMinutesToClock(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{480, "08:00"},
		{510, "08:30"},
		{1439, "23:59"},
		// No modulo-24 wrap: rounding up from 23:xx crosses midnight in
		// representation only.
		{1440, "24:00"},
		{1470, "24:30"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.MinutesToClock(tt.minutes), "minutes %d", tt.minutes)
	}
}

func TestMinutesToHours(t *testing.T) {
	assert.Equal(t, 8.0, engine.MinutesToHours(480))
	assert.Equal(t, 0.5, engine.MinutesToHours(30))
	assert.Equal(t, 0.0, engine.MinutesToHours(0))
}

func TestNormalizeClock(t *testing.T) {
	assert.Equal(t, "08:30", engine.NormalizeClock("08:30:45"))
	assert.Equal(t, "08:30", engine.NormalizeClock("08:30"))
}
