package validators

import (
	"errors"
	"time"
)

var ErrInvalidClock = errors.New("invalid clock value, expected HH:MM")

// ParseClock valida um horário "HH:MM" e devolve o deslocamento desde 00:00.
func ParseClock(hm string) (time.Duration, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, ErrInvalidClock
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// OnDay posiciona um "HH:MM" no dia civil de day.
func OnDay(day time.Time, hm string) (time.Time, error) {
	offset, err := ParseClock(hm)
	if err != nil {
		return time.Time{}, err
	}
	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	h := int(offset / time.Hour)
	m := int((offset % time.Hour) / time.Minute)
	return time.Date(base.Year(), base.Month(), base.Day(), h, m, 0, 0, base.Location()), nil
}
