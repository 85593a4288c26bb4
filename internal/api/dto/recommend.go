package dto

import (
	"github.com/spigell/swipe-recommender/internal/recommend"
	"github.com/spigell/swipe-recommender/internal/swipe"
)

// RecommendedJob is a job as returned by the API: every job field plus its score.
type RecommendedJob struct {
	*swipe.Job
	CertificateScore float64 `json:"certificateScore"`
	Pitch            string  `json:"pitch,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func FromRecommendations(recs []*recommend.Recommendation) []RecommendedJob {
	out := make([]RecommendedJob, 0, len(recs))
	for _, r := range recs {
		if r == nil || r.Job == nil {
			continue
		}
		out = append(out, RecommendedJob{
			Job:              r.Job,
			CertificateScore: r.Score,
			Pitch:            r.Pitch,
		})
	}
	return out
}
