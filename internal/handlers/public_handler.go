package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/usecase/appointment"
)

// PublicHandler não exige token: o cliente consulta a agenda antes de propor.
type PublicHandler struct {
	getSlots *appointment.GetAvailability
}

func NewPublicHandler(getSlots *appointment.GetAvailability) *PublicHandler {
	return &PublicHandler{getSlots: getSlots}
}

// GET /api/professionals/:id/slots?date=YYYY-MM-DD&duration=60
func (h *PublicHandler) Slots(c *gin.Context) {
	professionalID, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_professional", "Invalid professional id.")
		return
	}

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

	duration, ok := intQuery(c, "duration", 0)
	if !ok {
		httperr.BadRequest(c, "invalid_duration", "Duration must be a number of minutes.")
		return
	}

	slots, err := h.getSlots.Execute(c.Request.Context(), domain.AvailabilityInput{
		ProfessionalID:  professionalID,
		Date:            date,
		DurationMinutes: duration,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}
