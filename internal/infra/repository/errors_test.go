package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
)

func TestNotFound(t *testing.T) {
	err := notFound(gorm.ErrRecordNotFound, "proposal_not_found")
	assert.True(t, httperr.IsBusiness(err, "proposal_not_found"))
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	other := errors.New("connection reset")
	assert.Equal(t, other, notFound(other, "proposal_not_found"))
}
