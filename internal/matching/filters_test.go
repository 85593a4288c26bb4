package matching

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/swipe-recommender/internal/geo"
	"github.com/spigell/swipe-recommender/internal/swipe"
)

func TestWorkersRequiredFilter(t *testing.T) {
	f := NewWorkersRequired()
	worker := &swipe.Worker{}

	for _, n := range []int{-1, 0} {
		if f.Keep(&swipe.Job{WorkersRequired: n}, worker) {
			t.Fatalf("expected job with %d workers required to be dropped", n)
		}
	}
	if !f.Keep(&swipe.Job{WorkersRequired: 1}, worker) {
		t.Fatalf("expected job with open headcount to be kept")
	}
}

func TestDriverLicenseFilter(t *testing.T) {
	f := NewDriverLicense()

	tests := []struct {
		required bool
		has      bool
		want     bool
	}{
		{required: false, has: false, want: true},
		{required: false, has: true, want: true},
		{required: true, has: true, want: true},
		{required: true, has: false, want: false},
	}

	for _, tt := range tests {
		got := f.Keep(&swipe.Job{DriverLicenseRequired: tt.required}, &swipe.Worker{HasDriverLicense: tt.has})
		if got != tt.want {
			t.Fatalf("required=%t has=%t: expected %t, got %t", tt.required, tt.has, tt.want, got)
		}
	}
}

func TestDistanceFilter(t *testing.T) {
	center := geo.Coordinates{Latitude: 0, Longitude: 0}
	oneDegree := geo.Coordinates{Latitude: 1, Longitude: 0}

	boundary, err := geo.Distance(oneDegree, center, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		location *geo.Coordinates
		pref     *geo.SearchPreference
		want     bool
		warns    int
	}{
		{
			name:     "no preference",
			location: &oneDegree,
			want:     true,
		},
		{
			name:     "inside radius",
			location: &oneDegree,
			pref:     &geo.SearchPreference{Coordinates: center, MaxJobDistance: boundary + 1},
			want:     true,
		},
		{
			name:     "exactly on boundary",
			location: &oneDegree,
			pref:     &geo.SearchPreference{Coordinates: center, MaxJobDistance: boundary},
			want:     false,
		},
		{
			name:     "outside radius in kilometers",
			location: &oneDegree,
			pref:     &geo.SearchPreference{Coordinates: center, Unit: "km", MaxJobDistance: 100},
			want:     false,
		},
		{
			name:     "invalid job coordinates",
			location: &geo.Coordinates{Latitude: 120, Longitude: 0},
			pref:     &geo.SearchPreference{Coordinates: center, MaxJobDistance: 1},
			want:     true,
			warns:    1,
		},
		{
			name:  "job without location",
			pref:  &geo.SearchPreference{Coordinates: center, MaxJobDistance: 1},
			want:  true,
			warns: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, observed := observer.New(zapcore.WarnLevel)
			f := NewDistance(zap.New(core))

			got := f.Keep(&swipe.Job{ID: 9, Location: tt.location}, &swipe.Worker{ID: 4, JobSearchAddress: tt.pref})
			if got != tt.want {
				t.Fatalf("expected %t, got %t", tt.want, got)
			}

			if observed.Len() != tt.warns {
				t.Fatalf("expected %d warnings, got %d", tt.warns, observed.Len())
			}
			if tt.warns > 0 {
				ctx := observed.All()[0].ContextMap()
				if ctx["job_id"] != int64(9) || ctx["worker_id"] != int64(4) {
					t.Fatalf("unexpected warning fields: %v", ctx)
				}
			}
		})
	}
}

func TestRunLogsSteps(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	jobs := []*swipe.Job{
		{ID: 1, WorkersRequired: 1},
		{ID: 2, WorkersRequired: 0},
		nil,
		{ID: 3, WorkersRequired: 2, DriverLicenseRequired: true},
		{ID: 4, WorkersRequired: 1},
	}

	left, steps := Run(DefaultFilters(nil), &swipe.Worker{}, jobs, zap.New(core))

	if len(left) != 2 || left[0].ID != 1 || left[1].ID != 4 {
		t.Fatalf("unexpected survivors: %+v", left)
	}

	want := []Step{
		{Name: WorkersRequiredFilterName, Initial: 4, Dropped: 1, Left: 3},
		{Name: DriverLicenseFilterName, Initial: 3, Dropped: 1, Left: 2},
		{Name: DistanceFilterName, Initial: 2, Dropped: 0, Left: 2},
	}
	if len(steps) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(steps))
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Fatalf("step %d: expected %+v, got %+v", i, want[i], steps[i])
		}
	}

	entries := observed.FilterMessage("filter step").All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 step logs, got %d", len(entries))
	}
	if entries[0].ContextMap()["name"] != WorkersRequiredFilterName {
		t.Fatalf("unexpected first step log: %v", entries[0].ContextMap())
	}
}

func TestDisableByName(t *testing.T) {
	steps := DefaultFilters(nil)
	DisableByName(steps, DriverLicenseFilterName, "testing")

	jobs := []*swipe.Job{{ID: 1, WorkersRequired: 1, DriverLicenseRequired: true}}
	left, infos := Run(steps, &swipe.Worker{}, jobs, nil)

	if len(left) != 1 {
		t.Fatalf("expected disabled filter to be skipped, got %d jobs", len(left))
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 executed steps, got %d", len(infos))
	}

	statuses := Describe(steps)
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if statuses[1].Enabled || statuses[1].Reason != "testing" {
		t.Fatalf("unexpected status: %+v", statuses[1])
	}
	if !statuses[0].Enabled {
		t.Fatalf("expected first filter to stay enabled")
	}
}

func TestRunWithoutWorker(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)

	left, steps := Run(DefaultFilters(nil), nil, []*swipe.Job{{ID: 1, WorkersRequired: 1}}, zap.New(core))

	if left == nil || len(left) != 0 || len(steps) != 0 {
		t.Fatalf("expected nothing to survive without a worker, got %v %v", left, steps)
	}
	if observed.FilterMessage("no worker to filter for").Len() != 1 {
		t.Fatalf("expected missing worker to be logged")
	}
}
