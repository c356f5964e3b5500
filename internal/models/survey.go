package models

import (
	"encoding/json"
	"time"
)

// Survey is an anket definition: an ordered list of fixed-choice questions.
type Survey struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"sorular"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// Question is one soru with its secenekler (options) in display order.
type Question struct {
	Text    string   `json:"soru"`
	Options []string `json:"secenekler"`
}

func (s *Survey) UnmarshalJSON(data []byte) error {
	type alias Survey
	aux := struct {
		*alias
		MongoID         ID         `json:"_id"`
		LegacyQuestions []Question `json:"questions"`
	}{alias: (*alias)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	s.ID = FirstID(s.ID, aux.MongoID)
	if len(s.Questions) == 0 && len(aux.LegacyQuestions) > 0 {
		s.Questions = aux.LegacyQuestions
	}
	return nil
}

// QuestionCount returns the number of questions, zero for a nil survey.
func (s *Survey) QuestionCount() int {
	if s == nil {
		return 0
	}
	return len(s.Questions)
}
