package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
)

// notFound traduz gorm.ErrRecordNotFound para o erro de negócio.
func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code)
	}
	return err
}
