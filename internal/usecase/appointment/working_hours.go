package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
	"github.com/BruksfildServices01/mester-scheduler/internal/timezone"
)

type GetWorkingHours struct {
	repo domain.Repository
}

func NewGetWorkingHours(repo domain.Repository) *GetWorkingHours {
	return &GetWorkingHours{repo: repo}
}

// Execute devolve uma configuração padrão (tudo fechado) se o mester
// ainda não salvou nenhuma.
func (uc *GetWorkingHours) Execute(
	ctx context.Context,
	actor identity.Actor,
) (*models.WorkingHoursConfig, error) {

	if err := requireMester(actor); err != nil {
		return nil, err
	}

	cfg, err := uc.repo.GetWorkingHours(ctx, actor.UserID)
	if err == nil {
		return cfg, nil
	}
	if !httperr.IsKind(err, httperr.KindNotFound) {
		return nil, err
	}

	cfg = &models.WorkingHoursConfig{
		ProfessionalID:     actor.UserID,
		AllowOnlineBooking: true,
		Timezone:           timezone.Location("").String(),
		Days:               []models.WorkingDay{},
	}
	domain.ApplyDefaults(cfg)
	return cfg, nil
}

type UpdateWorkingHours struct {
	repo domain.Repository
}

func NewUpdateWorkingHours(repo domain.Repository) *UpdateWorkingHours {
	return &UpdateWorkingHours{repo: repo}
}

func (uc *UpdateWorkingHours) Execute(
	ctx context.Context,
	actor identity.Actor,
	cfg *models.WorkingHoursConfig,
) (*models.WorkingHoursConfig, error) {

	if err := requireMester(actor); err != nil {
		return nil, err
	}

	cfg.ProfessionalID = actor.UserID
	domain.ApplyDefaults(cfg)
	if cfg.Timezone == "" {
		cfg.Timezone = timezone.Location("").String()
	}

	if err := domain.ValidateWorkingHours(cfg); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveWorkingHours(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
