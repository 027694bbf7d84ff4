package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/payroll-engine/engine"
)

func TestEffectiveCheckIn_Tiers(t *testing.T) {
	// The tier boundaries are business rules and must be exact: 10 minutes
	// late is still grace, 40 minutes is still the soft tier, 41 minutes
	// is hard.
	calc := engine.NewCalculator(engine.DefaultRules())

	tests := []struct {
		name      string
		actual    string
		wantClock string
		wantLate  bool
		wantWarn  bool
	}{
		{"early arrival uses shift time", "07:45", "08:00", false, false},
		{"on time", "08:00", "08:00", false, false},
		{"grace boundary at exactly 10 minutes", "08:10", "08:00", false, false},
		{"one past grace docks half an hour", "08:11", "08:30", false, true},
		{"mid soft tier", "08:25", "08:30", false, true},
		{"soft boundary at exactly 40 minutes", "08:40", "08:30", false, true},
		{"one past soft tier rounds to next hour", "08:41", "09:00", true, false},
		{"hard tier just before the hour", "08:59", "09:00", true, false},
		{"hard tier rounds from the actual arrival", "09:05", "10:00", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.EffectiveCheckIn(tt.actual, "08:00")
			assert.Equal(t, tt.wantClock, got.EffectiveCheckIn)
			assert.Equal(t, tt.wantLate, got.Late, "Late flag")
			assert.Equal(t, tt.wantWarn, got.LateWarning, "LateWarning flag")
		})
	}
}

func TestEffectiveCheckIn_HardLateOnTheHour(t *testing.T) {
	// GIVEN: shift starts 08:00, arrival exactly at 09:00 (60 minutes late)
	// THEN: still rounds to the NEXT hour, preserving the raw reference
	//       behavior rather than snapping to the already-whole hour.
	calc := engine.NewCalculator(engine.DefaultRules())

	got := calc.EffectiveCheckIn("09:00", "08:00")
	assert.Equal(t, "10:00", got.EffectiveCheckIn)
	assert.True(t, got.Late)
}

func TestEffectiveCheckIn_LateNearMidnight(t *testing.T) {
	// A hard-late arrival at 23:30 rounds past midnight; the clock string
	// stays raw (24:00) by design.
	calc := engine.NewCalculator(engine.DefaultRules())

	got := calc.EffectiveCheckIn("23:30", "08:00")
	assert.Equal(t, "24:00", got.EffectiveCheckIn)
}
