package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, "America/Sao_Paulo", Location("America/Sao_Paulo").String())
}

func TestStartOfDay_KeepsCivilDate(t *testing.T) {
	loc := Location("Europe/Budapest")
	in := time.Date(2026, 3, 2, 23, 30, 0, 0, loc)

	got := StartOfDay(in, loc)

	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, loc), got)
}
