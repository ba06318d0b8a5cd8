package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"skin-diagnosis-api/internal/apperrors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError translates a classified error into its status code and stable
// client message. The wrapped cause is logged, never echoed.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.StatusOf(err)
	evt := log.Warn()
	if status >= http.StatusInternalServerError {
		evt = log.Error()
	}
	evt.Err(err).Str("path", r.URL.Path).Int("status", status).Msg("Request failed")

	writeJSON(w, status, map[string]string{"detail": apperrors.MessageOf(err)})
}
