package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/desertthunder/mymusic/internal/services"
	"github.com/desertthunder/mymusic/internal/shared"
)

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Errors    []string  `json:"errors,omitempty"`
	Path      string    `json:"path"`
}

// StatusFor maps an error returned by the playlist service to an HTTP status.
func StatusFor(err error) int {
	switch services.KindOf(err) {
	case services.KindPlaylistNotFound,
		services.KindMusicNotFound,
		services.KindMusicNotFoundInPlaylist,
		services.KindMusicsAndArtistsNotFound:
		return http.StatusNotFound
	case services.KindValidationFailed:
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, shared.ErrInvalidCredentials),
		errors.Is(err, shared.ErrMissingCredentials),
		errors.Is(err, shared.ErrAPIRequest):
		return http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as an [ErrorResponse]. Internal failures are reported without their details.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	body := ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   err.Error(),
		Path:      r.URL.Path,
	}

	var derr *services.Error
	if errors.As(err, &derr) && derr.Kind == services.KindValidationFailed {
		body.Message = services.ErrValidationFailed.Error()
		for _, f := range derr.Fields {
			body.Errors = append(body.Errors, f.String())
		}
	}

	if status == http.StatusInternalServerError {
		body.Message = "Internal server error"
	}

	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
