package ai

import (
	"context"

	"github.com/spigell/swipe-recommender/internal/swipe"
)

// Pitcher writes a short personal note explaining why a job suits a worker.
type Pitcher interface {
	Pitch(ctx context.Context, worker *swipe.Worker, job *swipe.Job) (string, error)
}
