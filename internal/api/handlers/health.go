package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// Health provides a minimal liveness check endpoint.
func Health(log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, log, http.MethodGet)
			return
		}

		writeJSON(w, r, log, http.StatusOK, map[string]string{"status": "ok"})
	}
}
