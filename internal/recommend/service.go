package recommend

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/swipe-recommender/internal/ai"
	"github.com/spigell/swipe-recommender/internal/matching"
	"github.com/spigell/swipe-recommender/internal/swipe"
)

var (
	ErrInvalidWorkerID = errors.New("invalid worker id")
	ErrWorkerNotFound  = errors.New("worker not found")
)

const pitchConcurrency = 4

type JobSource interface {
	GetJobs(ctx context.Context) (*swipe.Jobs, error)
}

type WorkerSource interface {
	GetWorkers(ctx context.Context) (*swipe.Workers, error)
}

// Recommendation is a job picked for a worker.
type Recommendation struct {
	Job   *swipe.Job
	Score float64
	// Pitch is empty unless a Pitcher is configured and succeeded.
	Pitch string
}

// Service resolves a worker, fetches the open jobs and runs the matching engine.
type Service struct {
	jobs    JobSource
	workers WorkerSource
	engine  *matching.Engine
	pitcher ai.Pitcher
	logger  *zap.Logger
}

type Option func(*Service)

// WithPitcher enables a short AI-written pitch on every recommendation.
func WithPitcher(p ai.Pitcher) Option {
	return func(s *Service) {
		s.pitcher = p
	}
}

// WithEngine replaces the engine built from the default filters.
func WithEngine(e *matching.Engine) Option {
	return func(s *Service) {
		s.engine = e
	}
}

func NewService(logger *zap.Logger, jobs JobSource, workers WorkerSource, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		jobs:    jobs,
		workers: workers,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = matching.NewEngine(logger)
	}

	return s
}

// ParseWorkerID validates a raw worker identifier.
func ParseWorkerID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidWorkerID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidWorkerID
	}
	return id, nil
}

// Recommend returns up to limit jobs for the worker identified by rawWorkerID.
// Upstream failures never surface as errors: an unreachable worker list
// reads as ErrWorkerNotFound and an unreachable job list as no jobs.
func (s *Service) Recommend(ctx context.Context, rawWorkerID string, limit int) ([]*Recommendation, error) {
	workerID, err := ParseWorkerID(rawWorkerID)
	if err != nil {
		return nil, err
	}

	log := s.logger.With(zap.Int64("worker_id", workerID))

	worker, err := s.Worker(ctx, workerID)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobs.GetJobs(ctx)
	if err != nil {
		log.Warn("cannot get jobs, treating as empty", zap.Error(err))
		jobs = &swipe.Jobs{}
	}
	if jobs == nil {
		jobs = &swipe.Jobs{}
	}

	log.Info("matching jobs", zap.Int("jobs", jobs.Len()), zap.Int("limit", limit))
	log.Debug("candidate jobs", zap.Strings("job_ids", jobs.IDs()))

	matches := s.engine.Recommend(worker, jobs.Items, limit)

	recommendations := make([]*Recommendation, 0, len(matches))
	for _, m := range matches {
		recommendations = append(recommendations, &Recommendation{Job: m.Job, Score: m.Score})
	}

	if s.pitcher != nil {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(pitchConcurrency)
		for _, r := range recommendations {
			g.Go(func() error {
				r.Pitch = s.pitch(gctx, log, worker, r.Job)
				return nil
			})
		}
		_ = g.Wait()
	}

	return recommendations, nil
}

// Worker looks up a single worker profile by id.
func (s *Service) Worker(ctx context.Context, id int64) (*swipe.Worker, error) {
	workers, err := s.workers.GetWorkers(ctx)
	if err != nil {
		s.logger.Warn("cannot get workers", zap.Int64("worker_id", id), zap.Error(err))
		return nil, ErrWorkerNotFound
	}

	worker := workers.FindByID(id)
	if worker == nil {
		s.logger.Info("worker not found", zap.Int64("worker_id", id))
		return nil, ErrWorkerNotFound
	}

	return worker, nil
}

// Workers lists all worker profiles, used for interactive selection.
func (s *Service) Workers(ctx context.Context) (*swipe.Workers, error) {
	return s.workers.GetWorkers(ctx)
}

func (s *Service) pitch(ctx context.Context, log *zap.Logger, worker *swipe.Worker, job *swipe.Job) string {
	text, err := s.pitcher.Pitch(ctx, worker, job)
	if err != nil {
		log.Warn("cannot write pitch, skipping", zap.Int64("job_id", job.ID), zap.Error(err))
		return ""
	}

	return text
}
