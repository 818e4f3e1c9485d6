package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// Ack é a resposta dos webhooks: o provedor só olha o status HTTP.
type Ack struct {
	Status string `json:"status"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// List nunca serializa null: lista vazia vira [].
func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

func Acknowledge(c *gin.Context, status string) {
	c.JSON(http.StatusOK, Ack{Status: status})
}
