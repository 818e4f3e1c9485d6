package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/mester-scheduler/internal/middleware"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
	"github.com/BruksfildServices01/mester-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC      *appointment.CreateDirectAppointment
	completeUC    *appointment.CompleteAppointment
	cancelUC      *appointment.CancelAppointment
	noShowUC      *appointment.MarkNoShow
	rescheduleUC  *appointment.RescheduleAppointment
	listByDateUC  *appointment.ListAppointmentsByDate
	listByMonthUC *appointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	createUC *appointment.CreateDirectAppointment,
	completeUC *appointment.CompleteAppointment,
	cancelUC *appointment.CancelAppointment,
	noShowUC *appointment.MarkNoShow,
	rescheduleUC *appointment.RescheduleAppointment,
	listByDateUC *appointment.ListAppointmentsByDate,
	listByMonthUC *appointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:      createUC,
		completeUC:    completeUC,
		cancelUC:      cancelUC,
		noShowUC:      noShowUC,
		rescheduleUC:  rescheduleUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	CustomerID      uint            `json:"customer_id" binding:"required"`
	JobID           uint            `json:"job_id"`
	Date            string          `json:"date" binding:"required"` // YYYY-MM-DD
	Time            string          `json:"time" binding:"required"` // HH:mm
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency"`
	Location        string          `json:"location"`
	Notes           string          `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment payload.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), middleware.Actor(c), appointment.CreateDirectAppointmentInput{
		CustomerID:      req.CustomerID,
		JobID:           req.JobID,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Currency:        req.Currency,
		Location:        req.Location,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Query param date is required.")
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	list, err := h.listByDateUC.Execute(c.Request.Context(), middleware.Actor(c), date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	if c.Query("year") == "" || c.Query("month") == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Year and month are required.")
		return
	}

	year, ok := intQuery(c, "year", 0)
	if !ok {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}
	month, ok := intQuery(c, "month", 0)
	if !ok {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	list, err := h.listByMonthUC.Execute(c.Request.Context(), middleware.Actor(c), year, month)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": list,
	})
}

// ======================================================
// LIFECYCLE
// ======================================================

type lifecycleFunc func(c *gin.Context, id uint) (*models.Appointment, error)

func (h *AppointmentHandler) lifecycle(run lifecycleFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id")
		if !ok {
			httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
			return
		}

		ap, err := run(c, id)
		if err != nil {
			httperr.FromError(c, err)
			return
		}

		httpresp.OK(c, ap)
	}
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.lifecycle(func(c *gin.Context, id uint) (*models.Appointment, error) {
		return h.cancelUC.Execute(c.Request.Context(), middleware.Actor(c), id)
	})(c)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.lifecycle(func(c *gin.Context, id uint) (*models.Appointment, error) {
		return h.completeUC.Execute(c.Request.Context(), middleware.Actor(c), id)
	})(c)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.lifecycle(func(c *gin.Context, id uint) (*models.Appointment, error) {
		return h.noShowUC.Execute(c.Request.Context(), middleware.Actor(c), id)
	})(c)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	h.lifecycle(func(c *gin.Context, id uint) (*models.Appointment, error) {
		var req RescheduleAppointmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, httperr.ErrValidation("invalid_request")
		}
		return h.rescheduleUC.Execute(c.Request.Context(), middleware.Actor(c), id, appointment.RescheduleInput{
			Date: req.Date,
			Time: req.Time,
		})
	})(c)
}
