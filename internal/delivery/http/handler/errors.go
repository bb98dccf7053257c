package handler

import (
	"errors"
	"net/http"

	"go-clinic-scheduling/internal/domain/schedule"
	"go-clinic-scheduling/pkg/response"
)

// writeError maps scheduling error kinds to HTTP statuses. Anything that is
// not a known kind is reported with the generic fallback message.
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, schedule.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, schedule.ErrValidation):
		response.BadRequest(w, err.Error())
	case errors.Is(err, schedule.ErrConflict):
		response.Conflict(w, err.Error())
	case errors.Is(err, schedule.ErrConfiguration):
		response.InternalServerError(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
