package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/metrics"
	"github.com/BruksfildServices01/mester-scheduler/internal/timezone"
)

// GetAvailability é o GetSlots: leitura sem trava, sempre recalculada.
// O resultado é só indicativo; a reserva revalida tudo na escrita.
type GetAvailability struct {
	repo    domain.Repository
	metrics *metrics.Metrics
	clock   timezone.Clock
}

func NewGetAvailability(
	repo domain.Repository,
	m *metrics.Metrics,
	clock timezone.Clock,
) *GetAvailability {
	return &GetAvailability{repo: repo, metrics: m, clock: clock}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	uc.metrics.SlotQuery()

	if in.DurationMinutes < 0 {
		return nil, httperr.ErrValidation("invalid_duration")
	}

	cfg, err := uc.repo.GetWorkingHours(ctx, in.ProfessionalID)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return []domain.Slot{}, nil
		}
		return nil, err
	}

	minutes := in.DurationMinutes
	if minutes == 0 {
		minutes = cfg.DefaultDurationMinutes
	}
	duration := time.Duration(minutes) * time.Minute

	window, ok := domain.DayWindow(cfg, in.Date)
	if !ok {
		return []domain.Slot{}, nil
	}

	buffer := time.Duration(cfg.BufferMinutes) * time.Minute
	query := window.Expand(buffer)

	appointments, err := uc.repo.ListActiveAppointments(
		ctx,
		in.ProfessionalID,
		query.Start,
		query.End,
	)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.Interval, 0, len(appointments))
	for i := range appointments {
		busy = append(busy, domain.IntervalOf(&appointments[i]))
	}

	return domain.ComputeSlots(cfg, in.Date, duration, busy, uc.clock.Now()), nil
}
