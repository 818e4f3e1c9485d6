package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/mester-scheduler/internal/models"
	"github.com/BruksfildServices01/mester-scheduler/internal/timezone"
	"github.com/BruksfildServices01/mester-scheduler/internal/validators"
)

type AvailabilityInput struct {
	ProfessionalID  uint
	Date            time.Time
	DurationMinutes int
}

// Slot é resultado de cálculo, nunca persistido.
type Slot struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
}

// Interval é semiaberto: [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

func (i Interval) Expand(buffer time.Duration) Interval {
	return Interval{Start: i.Start.Add(-buffer), End: i.End.Add(buffer)}
}

// BookingWindow devolve [now + min_advance, now + max_advance_days].
func BookingWindow(cfg *models.WorkingHoursConfig, now time.Time) (time.Time, time.Time) {
	earliest := now.Add(time.Duration(cfg.MinAdvanceHours) * time.Hour)
	latest := now.AddDate(0, 0, cfg.MaxAdvanceDays)
	return earliest, latest
}

// DayWindow devolve o expediente do dia civil de date no fuso do mester.
// ok=false quando o dia está fechado.
func DayWindow(cfg *models.WorkingHoursConfig, date time.Time) (Interval, bool) {
	loc := timezone.Location(cfg.Timezone)
	day := timezone.StartOfDay(date, loc)

	wd := cfg.Day(day.Weekday())
	if wd == nil {
		return Interval{}, false
	}

	start, err := validators.OnDay(day, wd.StartTime)
	if err != nil {
		return Interval{}, false
	}
	end, err := validators.OnDay(day, wd.EndTime)
	if err != nil || !end.After(start) {
		return Interval{}, false
	}

	return Interval{Start: start, End: end}, true
}

// ComputeSlots gera os horários livres de um dia.
//
// Os candidatos avançam em passos de duration a partir do início do
// expediente. Quando um candidato colide com um agendamento (já expandido
// pelo buffer), o próximo candidato começa no fim desse intervalo ocupado.
func ComputeSlots(
	cfg *models.WorkingHoursConfig,
	date time.Time,
	duration time.Duration,
	busy []Interval,
	now time.Time,
) []Slot {

	slots := []Slot{}

	if cfg == nil || !cfg.AllowOnlineBooking || duration <= 0 {
		return slots
	}

	window, ok := DayWindow(cfg, date)
	if !ok {
		return slots
	}

	earliest, latest := BookingWindow(cfg, now)
	if !window.End.After(earliest) || window.Start.After(latest) {
		return slots
	}

	buffer := time.Duration(cfg.BufferMinutes) * time.Minute
	expanded := make([]Interval, 0, len(busy))
	for _, b := range busy {
		expanded = append(expanded, b.Expand(buffer))
	}
	sort.Slice(expanded, func(i, j int) bool {
		return expanded[i].Start.Before(expanded[j].Start)
	})

	minutes := int(duration / time.Minute)

	for cur := window.Start; !cur.Add(duration).After(window.End); {
		candidate := Interval{Start: cur, End: cur.Add(duration)}

		if b, hit := firstOverlap(candidate, expanded); hit {
			cur = b.End
			continue
		}

		if cur.After(latest) {
			break
		}

		if !cur.Before(earliest) {
			slots = append(slots, Slot{
				Start:           candidate.Start,
				End:             candidate.End,
				DurationMinutes: minutes,
			})
		}

		cur = candidate.End
	}

	return slots
}

func firstOverlap(candidate Interval, busy []Interval) (Interval, bool) {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return b, true
		}
	}
	return Interval{}, false
}

// IsWithinWorkingHours: o intervalo inteiro precisa caber no expediente do dia.
func IsWithinWorkingHours(cfg *models.WorkingHoursConfig, start, end time.Time) bool {
	window, ok := DayWindow(cfg, start)
	if !ok {
		return false
	}
	return !start.Before(window.Start) && !end.After(window.End)
}
