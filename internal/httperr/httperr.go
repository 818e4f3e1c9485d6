package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code             string `json:"error_code"`
	Message          string `json:"message"`
	PurchaseRequired bool   `json:"purchase_required,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// PaymentRequired leva o cliente para o fluxo de compra do lead.
func PaymentRequired(c *gin.Context, code, message string) {
	c.JSON(http.StatusPaymentRequired, HTTPError{
		Code:             code,
		Message:          message,
		PurchaseRequired: true,
	})
}

// FromError traduz erros de negócio para o status HTTP correspondente.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "Unexpected error.")
		return
	}

	switch be.Kind {
	case KindValidation:
		BadRequest(c, be.Code, "Invalid request.")
	case KindConflict:
		Write(c, http.StatusConflict, be.Code, "The resource changed, reload and try again.")
	case KindAccessDenied:
		PaymentRequired(c, be.Code, "Lead access must be purchased first.")
	case KindForbidden:
		Forbidden(c, be.Code, "Action not allowed for this party.")
	case KindNotFound:
		NotFound(c, be.Code, "Resource not found.")
	default:
		Internal(c, be.Code, "Unexpected error.")
	}
}
