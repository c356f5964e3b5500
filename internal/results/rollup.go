package results

import "github.com/rehber-app/anket-client/internal/models"

// Contribution is one student's answer to one question.
type Contribution struct {
	ResultID  models.ID `json:"resultId,omitempty"`
	StudentID models.ID `json:"studentId"`
	Class     string    `json:"sinif"`
	Value     string    `json:"value"`
}

// OptionCount is how many contributions chose one option.
type OptionCount struct {
	Option  string `json:"option"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
	Listed  bool   `json:"listed"`
}

// Rollup collects the answer at questionIndex from every result. Results whose
// sequence is too short, or whose slot is empty, contribute nothing.
func Rollup(results []models.SurveyResult, questionIndex int) []Contribution {
	contributions := make([]Contribution, 0, len(results))
	for _, r := range results {
		answer := r.AnswerAt(questionIndex)
		if answer == nil {
			continue
		}
		contributions = append(contributions, Contribution{
			ResultID:  r.ID,
			StudentID: r.StudentID,
			Class:     r.Student.Class,
			Value:     answer.Value,
		})
	}
	return contributions
}

// TallyOptions counts contributions per option. Listed options come first in
// question order (zero counts included); unlisted values follow in
// first-seen order with Listed=false.
func TallyOptions(question models.Question, contributions []Contribution) []OptionCount {
	counts := make(map[string]int, len(question.Options))
	var extras []string
	listed := make(map[string]bool, len(question.Options))
	for _, opt := range question.Options {
		listed[opt] = true
	}

	for _, c := range contributions {
		if !listed[c.Value] {
			if _, seen := counts[c.Value]; !seen {
				extras = append(extras, c.Value)
			}
		}
		counts[c.Value]++
	}

	total := len(contributions)
	tally := make([]OptionCount, 0, len(question.Options)+len(extras))
	for _, opt := range question.Options {
		tally = append(tally, OptionCount{Option: opt, Count: counts[opt], Percent: ParticipationPercent(total, counts[opt]), Listed: true})
	}
	for _, v := range extras {
		tally = append(tally, OptionCount{Option: v, Count: counts[v], Percent: ParticipationPercent(total, counts[v])})
	}
	return tally
}
