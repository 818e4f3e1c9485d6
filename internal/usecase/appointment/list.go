package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/mester-scheduler/internal/dto"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/timezone"
)

// mesterLocation: fuso configurado pelo mester, ou o padrão do serviço.
func mesterLocation(ctx context.Context, repo domain.Repository, professionalID uint) (*time.Location, error) {
	cfg, err := repo.GetWorkingHours(ctx, professionalID)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return timezone.Location(""), nil
		}
		return nil, err
	}
	return timezone.Location(cfg.Timezone), nil
}

// ======================================================
// BY DATE
// ======================================================

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(repo domain.Repository) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	actor identity.Actor,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	if err := requireMester(actor); err != nil {
		return nil, err
	}

	loc, err := mesterLocation(ctx, uc.repo, actor.UserID)
	if err != nil {
		return nil, err
	}

	start := timezone.StartOfDay(date, loc)
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, actor.UserID, start, end)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentList(appointments, loc), nil
}

// ======================================================
// BY MONTH
// ======================================================

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(repo domain.Repository) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{repo: repo}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	actor identity.Actor,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if err := requireMester(actor); err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, httperr.ErrValidation("invalid_month")
	}

	loc, err := mesterLocation(ctx, uc.repo, actor.UserID)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, actor.UserID, start, end)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentList(appointments, loc), nil
}
