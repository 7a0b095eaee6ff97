package api

import (
	"errors"
	"net/http"

	"github.com/jmoreland/taskdeck/internal/service"
	"github.com/jmoreland/taskdeck/internal/store"
)

// HandleServiceError maps a task service error onto the HTTP response.
// Validation failures become 400s carrying per-field details, missing
// tasks become 404s, and anything else is reported as a generic 500 so
// internal error details never reach the client.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr *service.ValidationError
	if errors.As(err, &valErr) {
		RespondWithJSON(w, r, http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Details: valErr.Fields,
		})
		return
	}

	if errors.Is(err, service.ErrTaskNotFound) || store.IsNotFoundError(err) {
		RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "An unexpected error occurred", err)
}
