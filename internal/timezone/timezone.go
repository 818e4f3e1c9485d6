package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "Europe/Budapest"

var fallback = DefaultTimezone

// SetDefault troca o fuso usado quando o mester não configurou nenhum.
func SetDefault(tz string) {
	if IsValid(tz) {
		fallback = tz
	}
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(fallback)
	if err != nil {
		return time.UTC
	}
	return loc
}

// StartOfDay devolve 00:00 do dia civil de t em loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Clock é injetado nos use cases; nos testes é um relógio fixo.
type Clock func() time.Time

func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}
