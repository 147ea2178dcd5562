package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/campus_bites/internal/service"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrFinalStatus),
		errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// fail logs err under op and converts it to an HTTP error. Server errors
// hide the cause behind msg.
func fail(l *slog.Logger, op string, err error, msg string) error {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		l.Error(op+"_error", "status", code, "error", err)
		return echo.NewHTTPError(code, msg)
	}
	l.Warn(op+"_error", "status", code, "error", err)
	return echo.NewHTTPError(code, err.Error())
}
