package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestAddMonthsClampsToEndOfMonth(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{"jan 31 into leap february", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"jan 31 into short february", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"mar 31 into april", date(2024, time.March, 31), 1, date(2024, time.April, 30)},
		{"plain mid-month add", date(2024, time.June, 15), 1, date(2024, time.July, 15)},
		{"year rollover", date(2024, time.December, 15), 1, date(2025, time.January, 15)},
		{"quarter", date(2024, time.November, 30), 3, date(2025, time.February, 28)},
		{"full year", date(2024, time.February, 29), 12, date(2025, time.February, 28)},
		{"zero months", date(2024, time.May, 5), 0, date(2024, time.May, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.start, tt.n))
		})
	}
}

func TestAddMonthsPreservesClock(t *testing.T) {
	start := time.Date(2024, time.January, 31, 23, 59, 58, 123, time.UTC)
	got := AddMonths(start, 1)

	assert.Equal(t, 23, got.Hour())
	assert.Equal(t, 59, got.Minute())
	assert.Equal(t, 58, got.Second())
	assert.Equal(t, 123, got.Nanosecond())
}
