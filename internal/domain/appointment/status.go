package appointment

import (
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusConfirmed           Status = "confirmed"
	StatusRescheduled         Status = "rescheduled"
	StatusCancelledByCustomer Status = "cancelled_by_customer"
	StatusCancelledByMester   Status = "cancelled_by_mester"
	StatusCompleted           Status = "completed"
	StatusNoShow              Status = "no_show"
)

// ActiveStatuses ocupam a agenda do mester.
func ActiveStatuses() []string {
	return []string{string(StatusConfirmed), string(StatusRescheduled)}
}

func IsActive(s Status) bool {
	return s == StatusConfirmed || s == StatusRescheduled
}

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	if !IsActive(current) {
		return httperr.ErrConflict("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if !IsActive(current) {
		return httperr.ErrConflict("invalid_state")
	}
	return nil
}

func CanReschedule(current Status) error {
	if !IsActive(current) {
		return httperr.ErrConflict("invalid_state")
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if !IsActive(current) {
		return httperr.ErrConflict("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusConfirmed
}
