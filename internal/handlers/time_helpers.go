package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// --------------------------------------------------
// Datas e ids vindos da URL
// --------------------------------------------------

// parseDate lê "YYYY-MM-DD". Só o dia civil importa; o fuso do mester é
// aplicado depois, no use case.
func parseDate(dateStr string) (time.Time, error) {
	return time.Parse(dateLayout, dateStr)
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
