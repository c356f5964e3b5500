package results

import "github.com/rehber-app/anket-client/internal/models"

// ComputeStatistics derives the aggregate for one survey's results.
// Score figures only consider results that carry a score.
func ComputeStatistics(results []models.SurveyResult) models.Statistics {
	stats := models.Statistics{
		TotalParticipants: len(results),
		ClassBreakdown:    make(map[string]models.ClassStatistics),
	}

	students := make(map[models.ID]struct{})
	classScores := make(map[string][]float64)
	var scores []float64

	for _, r := range results {
		if !r.StudentID.IsZero() {
			students[r.StudentID] = struct{}{}
		}
		if r.Completed {
			stats.CompletedCount++
		}
		if r.Score != nil {
			scores = append(scores, *r.Score)
		}

		class := r.Student.Class
		if class == "" {
			continue
		}
		cs := stats.ClassBreakdown[class]
		cs.Class = class
		cs.Participants++
		if r.Completed {
			cs.Completed++
		}
		stats.ClassBreakdown[class] = cs
		if r.Score != nil {
			classScores[class] = append(classScores[class], *r.Score)
		}
	}

	stats.DistinctStudents = len(students)
	stats.AverageScore, stats.MinScore, stats.MaxScore = summarize(scores)

	for class, values := range classScores {
		cs := stats.ClassBreakdown[class]
		cs.AverageScore, _, _ = summarize(values)
		stats.ClassBreakdown[class] = cs
	}
	return stats
}

func summarize(values []float64) (avg, min, max float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	min, max = values[0], values[0]
	var sum float64
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return sum / float64(len(values)), min, max
}
