package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/swipe-recommender/internal/api/dto"
	"github.com/spigell/swipe-recommender/internal/recommend"
)

const defaultLimit = 3

// Error bodies returned to clients.
const (
	msgInvalidWorkerID = "WorkerId is numeric value and it's mandatory."
	msgWorkerNotFound  = "Invalid workerId. Record not found."
	msgInvalidLimit    = "limit must be a non-negative integer"
)

type Recommender interface {
	Recommend(ctx context.Context, rawWorkerID string, limit int) ([]*recommend.Recommendation, error)
}

type RecommendHandler struct {
	Service      Recommender
	DefaultLimit int
	Logger       *zap.Logger
}

// Recommend serves GET /jobs/recommend/{workerId}?limit=N.
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, h.Logger, http.MethodGet)
		return
	}

	limit, ok := h.limit(r)
	if !ok {
		writeError(w, r, h.Logger, http.StatusBadRequest, msgInvalidLimit)
		return
	}

	recs, err := h.Service.Recommend(r.Context(), r.PathValue("workerId"), limit)
	switch {
	case errors.Is(err, recommend.ErrInvalidWorkerID):
		writeError(w, r, h.Logger, http.StatusBadRequest, msgInvalidWorkerID)
		return
	case errors.Is(err, recommend.ErrWorkerNotFound):
		writeError(w, r, h.Logger, http.StatusNotFound, msgWorkerNotFound)
		return
	case err != nil:
		requestLogger(r, h.Logger).Error("recommend failed", zap.Error(err))
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, h.Logger, http.StatusOK, dto.FromRecommendations(recs))
}

func (h *RecommendHandler) limit(r *http.Request) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		if h.DefaultLimit > 0 {
			return h.DefaultLimit, true
		}
		return defaultLimit, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, false
	}
	return limit, true
}
