package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/campus_bites/internal/menu"
)

var (
	ErrValidation        = errors.New("validation")                // 400
	ErrNotFound          = errors.New("not found")                 // 404
	ErrConflict          = errors.New("conflict")                  // 409
	ErrInvalidTransition = errors.New("invalid status transition") // 409
	ErrFinalStatus       = errors.New("order already completed")   // 409
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, menu.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, menu.ErrUnknownCategory):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return err
}
