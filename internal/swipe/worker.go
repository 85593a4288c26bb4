package swipe

import (
	"fmt"
	"strings"

	"github.com/spigell/swipe-recommender/internal/geo"
)

// Workers is a snapshot of the worker profiles.
type Workers struct {
	Items []*Worker
}

// Worker is a worker profile. Only HasDriverLicense, JobSearchAddress and
// Certificates take part in matching; the rest is carried for display.
type Worker struct {
	ID               int64                 `json:"userId"`
	GUID             string                `json:"guid,omitempty"`
	Age              int                   `json:"age,omitempty"`
	Name             Name                  `json:"name"`
	Email            string                `json:"email,omitempty"`
	Phone            string                `json:"phone,omitempty"`
	Availability     []DayOfWeek           `json:"availability,omitempty"`
	HasDriverLicense bool                  `json:"hasDriverLicense"`
	Transportation   string                `json:"transportation,omitempty"`
	JobSearchAddress *geo.SearchPreference `json:"jobSearchAddress,omitempty"`
	Skills           []string              `json:"skills,omitempty"`
	Certificates     []string              `json:"certificates"`
	IsActive         bool                  `json:"isActive"`
	Rating           int                   `json:"rating,omitempty"`
}

type Name struct {
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
}

type DayOfWeek struct {
	Title    string `json:"title,omitempty"`
	DayIndex int    `json:"dayIndex"`
}

func (w *Workers) Len() int {
	if w == nil {
		return 0
	}
	return len(w.Items)
}

// FindByID returns the worker with the given id or nil.
func (w *Workers) FindByID(id int64) *Worker {
	if w == nil {
		return nil
	}
	for _, worker := range w.Items {
		if worker != nil && worker.ID == id {
			return worker
		}
	}
	return nil
}

// Label is a one-line description used by interactive selection.
func (w *Worker) Label() string {
	name := strings.TrimSpace(w.Name.First + " " + w.Name.Last)
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("%d %s / license: %t / certificates: %d", w.ID, name, w.HasDriverLicense, len(w.Certificates))
}
