// Package timefmt holds the duration and date formatting shared by the
// display and export surfaces.
package timefmt

import (
	"fmt"
	"time"
)

// Minutes renders a minute count as "Xh Ymin". Total over non-negative
// integers; no rounding.
func Minutes(m int) string {
	h := m / 60
	mm := m % 60
	if h == 0 {
		return fmt.Sprintf("%dmin", mm)
	}
	if mm == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dmin", h, mm)
}

// DateES renders an ISO date as dd/mm/yyyy. Malformed input is passed
// through unchanged rather than failing the surface that renders it.
func DateES(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("02/01/2006")
}

var monthsES = []string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

// DayLabel renders an entry date relative to today: "Hoy", "Ayer", or a
// short Spanish day-month label like "3 mar".
func DayLabel(isoDate string, today time.Time) string {
	switch isoDate {
	case today.Format("2006-01-02"):
		return "Hoy"
	case today.AddDate(0, 0, -1).Format("2006-01-02"):
		return "Ayer"
	}
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return fmt.Sprintf("%d %s", t.Day(), monthsES[t.Month()-1])
}
