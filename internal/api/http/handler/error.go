package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors to HTTP statuses. Anything unrecognized is a
// server fault.
func statusFor(err error) int {
	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, model.ErrDuplicateEmail),
		errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func handleError(w http.ResponseWriter, lg *logger.Logger, err error) {
	status := statusFor(err)

	switch status {
	case http.StatusUnauthorized, http.StatusNotFound:
		w.WriteHeader(status)
	case http.StatusInternalServerError:
		lg.Error("HTTP handler: request failed", "error", err.Error())
		writeJSON(w, status, errorResponse{Error: "internal server error"})
	default:
		writeJSON(w, status, errorResponse{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewValidationError("body", "malformed JSON")
	}
	return nil
}
