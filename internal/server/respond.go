package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kanriapp/kanri/internal/services/member"
	"github.com/kanriapp/kanri/internal/services/ticket"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// notFoundErrs map to 404; every other service error is a validation
// failure (400) unless it falls through to a plain 500.
var notFoundErrs = []error{
	ticket.ErrTicketNotFound,
	member.ErrMemberNotFound,
}

var validationErrs = []error{
	ticket.ErrEmptyTitle,
	ticket.ErrTitleTooLong,
	ticket.ErrInvalidStatus,
	ticket.ErrInvalidPriority,
	ticket.ErrProjectNotFound,
	ticket.ErrTeamNotFound,
	ticket.ErrMemberNotFound,
	member.ErrEmptyName,
	member.ErrNameTooLong,
	member.ErrInvalidEmail,
	member.ErrEmailTaken,
	member.ErrProjectNotFound,
	member.ErrTeamNotFound,
}

// serviceError translates a service-layer error into an HTTP response.
func serviceError(w http.ResponseWriter, err error) {
	for _, nf := range notFoundErrs {
		if errors.Is(err, nf) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
	}
	for _, ve := range validationErrs {
		if errors.Is(err, ve) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	slog.Error("Request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
