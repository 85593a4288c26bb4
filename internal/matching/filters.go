package matching

import (
	"go.uber.org/zap"

	"github.com/spigell/swipe-recommender/internal/geo"
	"github.com/spigell/swipe-recommender/internal/swipe"
)

const (
	WorkersRequiredFilterName = "workers_required"
	DriverLicenseFilterName   = "driver_license"
	DistanceFilterName        = "distance"
)

type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func (t *toggle) status(name string) Status {
	return Status{Name: name, Enabled: !t.disabled, Reason: t.reason}
}

type workersRequiredFilter struct {
	toggle
}

// NewWorkersRequired creates a filter that removes jobs without open headcount.
func NewWorkersRequired() Filter {
	return &workersRequiredFilter{}
}

func (f *workersRequiredFilter) Name() string { return WorkersRequiredFilterName }

func (f *workersRequiredFilter) Keep(job *swipe.Job, _ *swipe.Worker) bool {
	return job.WorkersRequired > 0
}

func (f *workersRequiredFilter) Status() Status { return f.status(f.Name()) }

type driverLicenseFilter struct {
	toggle
}

// NewDriverLicense creates a filter that removes jobs requiring a license the worker lacks.
func NewDriverLicense() Filter {
	return &driverLicenseFilter{}
}

func (f *driverLicenseFilter) Name() string { return DriverLicenseFilterName }

func (f *driverLicenseFilter) Keep(job *swipe.Job, worker *swipe.Worker) bool {
	return !job.DriverLicenseRequired || worker.HasDriverLicense
}

func (f *driverLicenseFilter) Status() Status { return f.status(f.Name()) }

type distanceFilter struct {
	toggle
	logger *zap.Logger
}

// NewDistance creates a filter that removes jobs outside the worker's search radius.
// Workers without a search preference and jobs whose distance cannot be computed are kept.
func NewDistance(logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &distanceFilter{logger: logger}
}

func (f *distanceFilter) Name() string { return DistanceFilterName }

func (f *distanceFilter) Keep(job *swipe.Job, worker *swipe.Worker) bool {
	pref := worker.JobSearchAddress
	if pref == nil {
		return true
	}

	if job.Location == nil {
		f.logger.Warn("job has no location, keeping it",
			zap.Int64("job_id", job.ID),
			zap.Int64("worker_id", worker.ID),
		)
		return true
	}

	d, err := geo.Distance(*job.Location, pref.Coordinates, pref.Unit)
	if err != nil {
		f.logger.Warn("cannot compute distance, keeping job",
			zap.Int64("job_id", job.ID),
			zap.Int64("worker_id", worker.ID),
			zap.Error(err),
		)
		return true
	}

	return d < pref.MaxJobDistance
}

func (f *distanceFilter) Status() Status { return f.status(f.Name()) }
