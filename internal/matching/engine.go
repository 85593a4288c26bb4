package matching

import (
	"sort"

	"go.uber.org/zap"

	"github.com/spigell/swipe-recommender/internal/swipe"
)

// Match is a recommended job with its certificate score.
type Match struct {
	Job   *swipe.Job
	Score float64
}

// Engine filters and ranks jobs for a worker. It holds no per-call state.
type Engine struct {
	logger  *zap.Logger
	filters []Filter
}

// DefaultFilters returns the eligibility steps in evaluation order.
func DefaultFilters(logger *zap.Logger) []Filter {
	return []Filter{
		NewWorkersRequired(),
		NewDriverLicense(),
		NewDistance(logger),
	}
}

// NewEngine creates an engine. Without filters it uses DefaultFilters.
func NewEngine(logger *zap.Logger, filters ...Filter) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(filters) == 0 {
		filters = DefaultFilters(logger)
	}
	return &Engine{logger: logger, filters: filters}
}

// IsEligible reports whether every enabled step keeps the job.
func (e *Engine) IsEligible(job *swipe.Job, worker *swipe.Worker) bool {
	left, _ := Run(e.filters, worker, []*swipe.Job{job}, nil)
	return len(left) == 1
}

// Recommend returns at most limit eligible jobs for the worker. When the worker
// holds certificates the jobs are ordered by certificate score, highest first,
// ties keeping their input order. Otherwise the input order is kept.
func (e *Engine) Recommend(worker *swipe.Worker, jobs []*swipe.Job, limit int) []*Match {
	if worker == nil || len(jobs) == 0 {
		e.logger.Warn("nothing to match", zap.Bool("worker_present", worker != nil), zap.Int("jobs", len(jobs)))
		return []*Match{}
	}

	log := e.logger.With(zap.Int64("worker_id", worker.ID))

	eligible, _ := Run(e.filters, worker, jobs, log)

	matches := make([]*Match, 0, len(eligible))
	for _, job := range eligible {
		matches = append(matches, &Match{Job: job})
	}

	if len(worker.Certificates) > 0 {
		for _, m := range matches {
			m.Score = CertificateScore(m.Job.RequiredCertificates, worker.Certificates)
		}
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Score > matches[j].Score
		})
		log.Info("scored jobs", zap.Int("count", len(matches)))
	}

	if limit < 0 {
		limit = 0
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}

	log.Info("recommended jobs", zap.Int("count", len(matches)), zap.Int("limit", limit))
	return matches
}
