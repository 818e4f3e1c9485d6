package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/middleware"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
	"github.com/BruksfildServices01/mester-scheduler/internal/usecase/appointment"
)

type WorkingHoursHandler struct {
	get    *appointment.GetWorkingHours
	update *appointment.UpdateWorkingHours
}

func NewWorkingHoursHandler(
	get *appointment.GetWorkingHours,
	update *appointment.UpdateWorkingHours,
) *WorkingHoursHandler {
	return &WorkingHoursHandler{get: get, update: update}
}

type WorkingDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type WorkingHoursUpdateRequest struct {
	Days                   []WorkingDayConfig `json:"days" binding:"dive"`
	BufferMinutes          int                `json:"buffer_minutes"`
	MinAdvanceHours        int                `json:"min_advance_hours"`
	MaxAdvanceDays         int                `json:"max_advance_days"`
	DefaultDurationMinutes int                `json:"default_duration_minutes"`
	AllowOnlineBooking     *bool              `json:"allow_online_booking"`
	Timezone               string             `json:"timezone"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	cfg, err := h.get.Execute(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}

// Update substitui a configuração inteira; dias ausentes ficam fechados e
// allow_online_booking ausente vale true.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid working hours payload.")
		return
	}

	cfg := &models.WorkingHoursConfig{
		BufferMinutes:          req.BufferMinutes,
		MinAdvanceHours:        req.MinAdvanceHours,
		MaxAdvanceDays:         req.MaxAdvanceDays,
		DefaultDurationMinutes: req.DefaultDurationMinutes,
		AllowOnlineBooking:     req.AllowOnlineBooking == nil || *req.AllowOnlineBooking,
		Timezone:               req.Timezone,
	}
	for _, d := range req.Days {
		cfg.Days = append(cfg.Days, models.WorkingDay{
			Weekday:   d.Weekday,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}

	saved, err := h.update.Execute(c.Request.Context(), middleware.Actor(c), cfg)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}
