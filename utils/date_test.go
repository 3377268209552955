package utils

import (
	"testing"
	"time"
)

func TestDayBounds(t *testing.T) {
	// 03:30 UTC del 10 de marzo son las 22:30 del 9 de marzo en Colombia.
	instant := time.Date(2025, 3, 10, 3, 30, 0, 0, time.UTC)

	start, end := DayBounds(instant)

	wantStart := time.Date(2025, 3, 9, 0, 0, 0, 0, BogotaZone)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.After(start) || end.Sub(start) >= 24*time.Hour {
		t.Errorf("end = %v fuera del día", end)
	}
	if !instant.After(start) || !instant.Before(end) {
		t.Errorf("el instante no cae dentro de sus propios límites")
	}
}

func TestDateKey(t *testing.T) {
	tests := []struct {
		name    string
		instant time.Time
		want    string
	}{
		{"mediodía local", time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC), "2025-03-10"},
		{"madrugada UTC cae el día anterior", time.Date(2025, 3, 10, 3, 30, 0, 0, time.UTC), "2025-03-09"},
		{"medianoche local exacta", time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC), "2025-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateKey(tt.instant); got != tt.want {
				t.Errorf("DateKey(%v) = %s, want %s", tt.instant, got, tt.want)
			}
		})
	}
}
