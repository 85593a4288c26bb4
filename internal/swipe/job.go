package swipe

import (
	"strconv"

	"github.com/spigell/swipe-recommender/internal/geo"
)

// Jobs is a snapshot of the open job postings.
type Jobs struct {
	Items []*Job
}

// Job is an open posting. Optional upstream fields are already defaulted.
type Job struct {
	ID                    int64            `json:"jobId"`
	GUID                  string           `json:"guid,omitempty"`
	Company               string           `json:"company,omitempty"`
	JobTitle              string           `json:"jobTitle,omitempty"`
	About                 string           `json:"about,omitempty"`
	StartDate             string           `json:"startDate,omitempty"`
	BillRate              string           `json:"billRate,omitempty"`
	WorkersRequired       int              `json:"workersRequired"`
	DriverLicenseRequired bool             `json:"driverLicenseRequired"`
	Location              *geo.Coordinates `json:"location,omitempty"`
	RequiredCertificates  []string         `json:"requiredCertificates"`
}

func (j *Jobs) Len() int {
	if j == nil {
		return 0
	}
	return len(j.Items)
}

// IDs returns job identifiers in list order, mostly for logging.
func (j *Jobs) IDs() []string {
	ids := make([]string, 0, j.Len())
	if j == nil {
		return ids
	}
	for _, job := range j.Items {
		if job == nil {
			continue
		}
		ids = append(ids, strconv.FormatInt(job.ID, 10))
	}
	return ids
}
