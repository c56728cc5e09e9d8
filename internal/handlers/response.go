package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AnshRaj112/portfolio-backend/internal/apperrors"
	"github.com/AnshRaj112/portfolio-backend/internal/logger"
)

// Response represents the bare {success, message} envelope.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{Success: true, Message: msg})
}

// WriteError renders err as {success:false, message}. Errors outside the
// application taxonomy are reported as internal without details.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	writeJSON(w, status, Response{Success: false, Message: apperrors.PublicMessage(err)})
}
