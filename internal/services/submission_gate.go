package services

import "github.com/rehber-app/anket-client/internal/models"

// MissingAnswers returns the 1-based positions of questions with no selection,
// in ascending order. An empty string counts as no selection; keys outside
// the question range are ignored.
func MissingAnswers(questions []models.Question, selections map[int]string) []int {
	missing := make([]int, 0)
	for i := range questions {
		if selections[i] == "" {
			missing = append(missing, i+1)
		}
	}
	return missing
}

// BuildAnswers reshapes the selections into one answer per question, in
// question order. Callers check MissingAnswers first.
func BuildAnswers(questions []models.Question, selections map[int]string) []models.Answer {
	answers := make([]models.Answer, len(questions))
	for i, q := range questions {
		answers[i] = models.Answer{
			QuestionText: q.Text,
			Options:      q.Options,
			Value:        selections[i],
		}
	}
	return answers
}

// CheckSubmission is the local gate: it either rejects with the missing
// positions or returns the reshaped answers. No network is involved.
func CheckSubmission(questions []models.Question, selections map[int]string) ([]models.Answer, error) {
	if len(questions) == 0 {
		return nil, ErrSurveyHasNoItems
	}
	if missing := MissingAnswers(questions, selections); len(missing) > 0 {
		return nil, &MissingAnswersError{Indices: missing}
	}
	return BuildAnswers(questions, selections), nil
}
