package models

import (
	"bytes"
	"encoding/json"
)

// Answer is one recorded answer in a result's per-question sequence.
// The same shape is what a submission sends per question.
type Answer struct {
	QuestionText string   `json:"questionText,omitempty"`
	Options      []string `json:"options,omitempty"`
	Value        string   `json:"chosenAnswer" validate:"required"`
}

// UnmarshalJSON accepts a bare scalar ("A", 3, true) or an object carrying the
// chosen option under chosenAnswer, cevap or answer.
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '{':
		var obj struct {
			QuestionText string          `json:"questionText"`
			Soru         string          `json:"soru"`
			Options      []string        `json:"options"`
			Secenekler   []string        `json:"secenekler"`
			ChosenAnswer json.RawMessage `json:"chosenAnswer"`
			Cevap        json.RawMessage `json:"cevap"`
			Answer       json.RawMessage `json:"answer"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil
		}
		a.QuestionText = firstNonEmpty(obj.QuestionText, obj.Soru)
		a.Options = obj.Options
		if len(a.Options) == 0 {
			a.Options = obj.Secenekler
		}
		for _, raw := range []json.RawMessage{obj.ChosenAnswer, obj.Cevap, obj.Answer} {
			if v := ScalarText(raw); v != "" {
				a.Value = v
				break
			}
		}
	case '[':
		// Multi-select is not part of this survey format.
	default:
		a.Value = ScalarText(data)
	}
	return nil
}

// ScalarText renders a JSON string, number or boolean as text. Other values yield "".
func ScalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			if b {
				return "true"
			}
			return "false"
		}
	case 'n', '{', '[':
		return ""
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			return n.String()
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// RawSurveyResult is a result exactly as the backend sends it. It carries
// both the current indexed answer field (cevaplar) and the legacy flat one
// (answer); use results.Normalize to collapse it into a SurveyResult.
type RawSurveyResult struct {
	ID          ID              `json:"id"`
	MongoID     ID              `json:"_id"`
	SurveyID    ID              `json:"surveyId"`
	AnketID     ID              `json:"anketId"`
	StudentID   ID              `json:"studentId"`
	OgrenciID   ID              `json:"ogrenciId"`
	StudentInfo json.RawMessage `json:"ogrenciInfo"`
	Answers     json.RawMessage `json:"cevaplar"`
	Legacy      json.RawMessage `json:"answer"`
	CompletedAt json.RawMessage `json:"completedAt"`
	Score       json.RawMessage `json:"puan"`
}

// SurveyResult is the canonical in-memory AnketSonuc. Answers has one slot per
// question in survey order; a nil slot is an unanswered question.
type SurveyResult struct {
	ID          ID          `json:"id,omitempty"`
	SurveyID    ID          `json:"surveyId"`
	StudentID   ID          `json:"studentId"`
	Student     StudentInfo `json:"ogrenciInfo"`
	Answers     []*Answer   `json:"cevaplar"`
	CompletedAt string      `json:"completedAt,omitempty"`
	Completed   bool        `json:"completed"`
	Score       *float64    `json:"puan,omitempty"`
}

// AnswerAt returns the answer at question index i, or nil when the sequence is
// too short or the slot is empty.
func (r SurveyResult) AnswerAt(i int) *Answer {
	if i < 0 || i >= len(r.Answers) {
		return nil
	}
	return r.Answers[i]
}

// ClassStatistics is the per-sinif slice of a Statistics aggregate.
type ClassStatistics struct {
	Class        string  `json:"sinif"`
	Participants int     `json:"participants"`
	Completed    int     `json:"completed"`
	AverageScore float64 `json:"averageScore"`
}

// Statistics aggregates the results of one survey.
type Statistics struct {
	TotalParticipants int                        `json:"totalParticipants"`
	DistinctStudents  int                        `json:"distinctStudents"`
	CompletedCount    int                        `json:"completedCount"`
	ClassBreakdown    map[string]ClassStatistics `json:"classBreakdown"`
	AverageScore      float64                    `json:"averageScore"`
	MinScore          float64                    `json:"minScore"`
	MaxScore          float64                    `json:"maxScore"`
}

// UnmarshalJSON reads whichever numeric fields are present and well-formed;
// mismatched fields degrade to zero instead of failing the whole payload.
func (s *Statistics) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		*s = Statistics{}
		return nil
	}

	num := func(keys ...string) float64 {
		for _, k := range keys {
			if v, ok := ParseNumber(fields[k]); ok {
				return v
			}
		}
		return 0
	}

	*s = Statistics{
		TotalParticipants: int(num("totalParticipants", "toplamKatilim", "total")),
		DistinctStudents:  int(num("distinctStudents", "ogrenciSayisi")),
		CompletedCount:    int(num("completedCount", "tamamlanan")),
		AverageScore:      num("averageScore", "ortalama"),
		MinScore:          num("minScore", "enDusuk"),
		MaxScore:          num("maxScore", "enYuksek"),
	}

	for _, key := range []string{"classBreakdown", "sinifDagilimi"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var breakdown map[string]json.RawMessage
		if err := json.Unmarshal(raw, &breakdown); err != nil {
			continue
		}
		s.ClassBreakdown = make(map[string]ClassStatistics, len(breakdown))
		for class, entry := range breakdown {
			var cs ClassStatistics
			if err := cs.UnmarshalJSON(entry); err == nil {
				if cs.Class == "" {
					cs.Class = class
				}
				s.ClassBreakdown[class] = cs
			}
		}
		break
	}
	return nil
}

func (c *ClassStatistics) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		*c = ClassStatistics{}
		return nil
	}

	num := func(key string) float64 {
		v, _ := ParseNumber(fields[key])
		return v
	}

	*c = ClassStatistics{
		Class:        ScalarText(fields["sinif"]),
		Participants: int(num("participants")),
		Completed:    int(num("completed")),
		AverageScore: num("averageScore"),
	}
	return nil
}

// ResultsPayload is the data of GET /api/surveys/{id}/results.
type ResultsPayload struct {
	Results    []RawSurveyResult `json:"results"`
	Statistics *Statistics       `json:"statistics"`
}

// ExportPayload is the data of GET /api/survey/{id}/export.
type ExportPayload struct {
	Survey      Survey            `json:"survey"`
	Results     []RawSurveyResult `json:"results"`
	GeneratedAt string            `json:"generatedAt,omitempty"`
}
