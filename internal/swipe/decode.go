package swipe

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/swipe-recommender/internal/geo"
)

// Upstream records arrive with optional fields and loosely typed values
// (coordinates are commonly sent as strings), so they are decoded into
// pointer-typed records first and defaulted in one place.

type coordinatesRecord struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type preferenceRecord struct {
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Unit           string   `json:"unit"`
	MaxJobDistance *float64 `json:"maxJobDistance"`
}

type jobRecord struct {
	JobID                 int64              `json:"jobId"`
	GUID                  string             `json:"guid"`
	Company               string             `json:"company"`
	JobTitle              string             `json:"jobTitle"`
	About                 string             `json:"about"`
	StartDate             string             `json:"startDate"`
	BillRate              string             `json:"billRate"`
	WorkersRequired       *int               `json:"workersRequired"`
	DriverLicenseRequired *bool              `json:"driverLicenseRequired"`
	Location              *coordinatesRecord `json:"location"`
	RequiredCertificates  []string           `json:"requiredCertificates"`
}

type workerRecord struct {
	UserID           int64             `json:"userId"`
	GUID             string            `json:"guid"`
	Age              int               `json:"age"`
	Name             Name              `json:"name"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	Availability     []DayOfWeek       `json:"availability"`
	HasDriverLicense *bool             `json:"hasDriverLicense"`
	Transportation   string            `json:"transportation"`
	JobSearchAddress *preferenceRecord `json:"jobSearchAddress"`
	Skills           []string          `json:"skills"`
	Certificates     []string          `json:"certificates"`
	IsActive         *bool             `json:"isActive"`
	Rating           int               `json:"rating"`
}

// DecodeJobs converts generic JSON items into jobs with defaults applied.
func DecodeJobs(items []any) (*Jobs, error) {
	var records []*jobRecord
	if err := decode(items, &records); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	jobs := &Jobs{Items: make([]*Job, 0, len(records))}
	for _, r := range records {
		if r == nil {
			continue
		}
		jobs.Items = append(jobs.Items, r.toJob())
	}

	return jobs, nil
}

// DecodeWorkers converts generic JSON items into workers with defaults applied.
func DecodeWorkers(items []any) (*Workers, error) {
	var records []*workerRecord
	if err := decode(items, &records); err != nil {
		return nil, fmt.Errorf("decode workers: %w", err)
	}

	workers := &Workers{Items: make([]*Worker, 0, len(records))}
	for _, r := range records {
		if r == nil {
			continue
		}
		workers.Items = append(workers.Items, r.toWorker())
	}

	return workers, nil
}

func decode(items []any, result any) error {
	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       blankAsMissing,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(items)
}

var float64PtrType = reflect.TypeOf((*float64)(nil))

// blankAsMissing leaves optional fields nil when the upstream sends a blank
// string, or a number that does not parse, instead of weak typing turning it into 0.
func blankAsMissing(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Ptr {
		return data, nil
	}

	s := strings.TrimSpace(reflect.ValueOf(data).String())
	if s == "" {
		return nil, nil
	}
	if to == float64PtrType {
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return nil, nil
		}
	}

	return s, nil
}

func (r *jobRecord) toJob() *Job {
	job := &Job{
		ID:                   r.JobID,
		GUID:                 r.GUID,
		Company:              r.Company,
		JobTitle:             r.JobTitle,
		About:                r.About,
		StartDate:            r.StartDate,
		BillRate:             r.BillRate,
		RequiredCertificates: r.RequiredCertificates,
	}

	if r.WorkersRequired != nil {
		job.WorkersRequired = *r.WorkersRequired
	}
	if r.DriverLicenseRequired != nil {
		job.DriverLicenseRequired = *r.DriverLicenseRequired
	}
	// A location without both coordinates stays nil.
	if r.Location != nil && r.Location.Latitude != nil && r.Location.Longitude != nil {
		job.Location = &geo.Coordinates{
			Latitude:  *r.Location.Latitude,
			Longitude: *r.Location.Longitude,
		}
	}

	return job
}

func (r *workerRecord) toWorker() *Worker {
	worker := &Worker{
		ID:             r.UserID,
		GUID:           r.GUID,
		Age:            r.Age,
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Availability:   r.Availability,
		Transportation: r.Transportation,
		Skills:         r.Skills,
		Certificates:   r.Certificates,
		Rating:         r.Rating,
	}

	if r.HasDriverLicense != nil {
		worker.HasDriverLicense = *r.HasDriverLicense
	}
	if r.IsActive != nil {
		worker.IsActive = *r.IsActive
	}

	// A preference missing its center or its radius cannot bound anything,
	// so it is treated as no preference at all.
	if p := r.JobSearchAddress; p != nil && p.Latitude != nil && p.Longitude != nil && p.MaxJobDistance != nil {
		worker.JobSearchAddress = &geo.SearchPreference{
			Coordinates: geo.Coordinates{
				Latitude:  *p.Latitude,
				Longitude: *p.Longitude,
			},
			Unit:           p.Unit,
			MaxJobDistance: *p.MaxJobDistance,
		}
	}

	return worker
}
