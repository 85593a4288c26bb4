package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/spigell/swipe-recommender/internal/api/handlers"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
func NewRouter(log *zap.Logger, svc handlers.Recommender, defaultLimit int) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	mux := http.NewServeMux()

	recommendHandler := &handlers.RecommendHandler{
		Service:      svc,
		DefaultLimit: defaultLimit,
		Logger:       log,
	}

	mux.HandleFunc("/health", handlers.Health(log))
	mux.HandleFunc("/jobs/recommend/{workerId}", recommendHandler.Recommend)
	// An empty id reaches the handler so it gets the same 400 as a malformed one.
	mux.HandleFunc("/jobs/recommend/{$}", recommendHandler.Recommend)

	return requestIDMiddleware(loggingMiddleware(log, mux))
}
