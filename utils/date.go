package utils

import "time"

// Hora de Colombia: UTC-5 fijo, sin horario de verano.
var BogotaZone = time.FixedZone("COT", -5*3600)

// DayBounds devuelve el inicio y fin del día calendario en hora de Colombia
// para el instante dado.
func DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(BogotaZone)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, BogotaZone)
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

// DateKey es la fecha calendario (YYYY-MM-DD) en hora de Colombia, usada como
// clave de agregación.
func DateKey(t time.Time) string {
	return t.In(BogotaZone).Format("2006-01-02")
}
