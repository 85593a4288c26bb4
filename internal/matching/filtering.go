package matching

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/swipe-recommender/internal/swipe"
)

// Filter represents a single eligibility step applied to jobs.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	// Keep reports whether the job stays eligible for the worker.
	Keep(job *swipe.Job, worker *swipe.Worker) bool
}

// Step describes the result of executing a filtering step.
type Step struct {
	Name    string
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the supplied filters sequentially and returns the surviving jobs in input order.
// Nil jobs are dropped before the first step. Without a worker nothing is eligible.
func Run(steps []Filter, worker *swipe.Worker, jobs []*swipe.Job, logger *zap.Logger) ([]*swipe.Job, []Step) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if worker == nil {
		logger.Warn("no worker to filter for", zap.Int("jobs", len(jobs)))
		return []*swipe.Job{}, nil
	}

	left := make([]*swipe.Job, 0, len(jobs))
	for _, job := range jobs {
		if job != nil {
			left = append(left, job)
		}
	}

	infos := make([]Step, 0, len(steps))
	for _, step := range steps {
		if !step.IsEnabled() {
			logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next := make([]*swipe.Job, 0, len(left))
		excluded := make([]string, 0)
		for _, job := range left {
			if step.Keep(job, worker) {
				next = append(next, job)
				continue
			}
			excluded = append(excluded, strconv.FormatInt(job.ID, 10))
		}

		info := Step{Name: step.Name(), Initial: len(left), Dropped: len(excluded), Left: len(next)}
		logger.Info("filter step",
			zap.String("name", info.Name),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)
		if len(excluded) > 0 {
			logger.Debug("excluded jobs", zap.String("name", info.Name), zap.Strings("excluded_jobs", excluded))
		}

		infos = append(infos, info)
		left = next
	}

	return left, infos
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(interface{ Status() Status }); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
