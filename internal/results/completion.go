package results

import (
	"math"

	"github.com/rehber-app/anket-client/internal/models"
)

// PartitionCompletion splits results by whether a completion timestamp was set.
// Order is preserved within each side.
func PartitionCompletion(results []models.SurveyResult) (completed, incomplete []models.SurveyResult) {
	completed = make([]models.SurveyResult, 0)
	incomplete = make([]models.SurveyResult, 0)
	for _, r := range results {
		if r.Completed {
			completed = append(completed, r)
		} else {
			incomplete = append(incomplete, r)
		}
	}
	return completed, incomplete
}

// ParticipationPercent is round(completed/total*100), clamped to [0,100].
// A non-positive total yields 0.
func ParticipationPercent(total, completed int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(completed) / float64(total) * 100))
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}
