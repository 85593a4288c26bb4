package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/spigell/swipe-recommender/internal/api/dto"
	"github.com/spigell/swipe-recommender/internal/logger"
)

func writeJSON(w http.ResponseWriter, r *http.Request, log *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		requestLogger(r, log).Warn("encode failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, status int, msg string) {
	writeJSON(w, r, log, status, dto.ErrorResponse{Error: msg})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, log *zap.Logger, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, r, log, http.StatusMethodNotAllowed, "method not allowed")
}

func requestLogger(r *http.Request, log *zap.Logger) *zap.Logger {
	return logger.WithRequestID(log, logger.RequestID(r.Context()))
}
