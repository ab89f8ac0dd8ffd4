package clientdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/salesboard/internal/domain"
)

func TestValidity_Daily(t *testing.T) {
	v := Validity{RefreshDay: time.Saturday, Location: time.UTC}
	stored := time.Date(2024, 3, 14, 0, 5, 0, 0, time.UTC)

	tests := []struct {
		name  string
		now   time.Time
		valid bool
	}{
		{"same instant", stored, true},
		{"later same day", time.Date(2024, 3, 14, 23, 59, 59, 0, time.UTC), true},
		{"next day", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"same date next month", time.Date(2024, 4, 14, 1, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, v.IsValid(domain.CadenceDaily, stored, tt.now))
		})
	}
}

func TestValidity_DailyUsesConfiguredCalendar(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*60*60)
	v := Validity{RefreshDay: time.Saturday, Location: nairobi}

	// 22:00 UTC on the 14th is already the 15th in UTC+3.
	stored := time.Date(2024, 3, 14, 22, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)

	assert.True(t, v.IsValid(domain.CadenceDaily, stored, now))
	assert.False(t, Validity{Location: time.UTC}.IsValid(domain.CadenceDaily, stored, now))
}

func TestValidity_Weekly(t *testing.T) {
	v := Validity{RefreshDay: time.Saturday, Location: time.UTC}
	saturday := time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC)
	tuesday := time.Date(2024, 3, 19, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		stored time.Time
		now    time.Time
		valid  bool
	}{
		{"saturday entry same day", saturday, saturday.Add(time.Hour), true},
		{"saturday entry six days later", saturday, saturday.Add(6 * 24 * time.Hour), true},
		{"saturday entry just under seven days", saturday, saturday.Add(7*24*time.Hour - time.Second), true},
		{"saturday entry at seven days", saturday, saturday.Add(7 * 24 * time.Hour), false},
		{"tuesday entry same day", tuesday, tuesday.Add(time.Minute), false},
		{"tuesday entry next day", tuesday, tuesday.Add(24 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, v.IsValid(domain.CadenceWeekly, tt.stored, tt.now))
		})
	}
}

func TestValidity_ConfigurableRefreshDay(t *testing.T) {
	v := Validity{RefreshDay: time.Monday, Location: time.UTC}
	monday := time.Date(2024, 3, 18, 6, 0, 0, 0, time.UTC)

	assert.True(t, v.IsValid(domain.CadenceWeekly, monday, monday.Add(48*time.Hour)))
}

func TestValidity_UnknownCadence(t *testing.T) {
	now := time.Now()
	assert.False(t, DefaultValidity().IsValid(domain.Cadence("hourly"), now, now))
}
