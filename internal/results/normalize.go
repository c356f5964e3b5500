// Package results turns raw survey-result payloads into the canonical
// in-memory shape and derives the views the results dashboard needs.
// Nothing here returns an error: malformed fields degrade to empty or zero.
package results

import (
	"bytes"
	"encoding/json"

	"github.com/rehber-app/anket-client/internal/models"
)

// Normalize collapses a backend result into a SurveyResult. The indexed
// answer field wins when present; otherwise the legacy flat field is read as
// if it were the indexed sequence.
func Normalize(raw models.RawSurveyResult) models.SurveyResult {
	result := models.SurveyResult{
		ID:        models.FirstID(raw.ID, raw.MongoID),
		SurveyID:  models.FirstID(raw.SurveyID, raw.AnketID),
		StudentID: models.FirstID(raw.StudentID, raw.OgrenciID),
		Student:   decodeStudentInfo(raw.StudentInfo),
	}

	switch {
	case present(raw.Answers):
		result.Answers = decodeAnswers(raw.Answers)
	case present(raw.Legacy):
		result.Answers = decodeAnswers(raw.Legacy)
	}

	result.Completed = truthy(raw.CompletedAt)
	if result.Completed {
		result.CompletedAt = completionText(raw.CompletedAt)
	}

	if score, ok := models.ParseNumber(raw.Score); ok {
		result.Score = &score
	}

	return result
}

// NormalizeAll normalizes a batch, preserving order. A nil input yields a
// non-nil empty slice so "fetched, no participants" stays distinguishable
// from "not fetched".
func NormalizeAll(raws []models.RawSurveyResult) []models.SurveyResult {
	out := make([]models.SurveyResult, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw))
	}
	return out
}

func present(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

func decodeAnswers(raw json.RawMessage) []*models.Answer {
	raw = bytes.TrimSpace(raw)
	if raw[0] != '[' {
		return []*models.Answer{decodeAnswer(raw)}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	answers := make([]*models.Answer, len(entries))
	for i, entry := range entries {
		answers[i] = decodeAnswer(entry)
	}
	return answers
}

// decodeAnswer returns nil for an unanswered slot.
func decodeAnswer(raw json.RawMessage) *models.Answer {
	if !present(raw) {
		return nil
	}
	var a models.Answer
	if err := json.Unmarshal(raw, &a); err != nil || a.Value == "" {
		return nil
	}
	return &a
}

func decodeStudentInfo(raw json.RawMessage) models.StudentInfo {
	var fields map[string]json.RawMessage
	if !present(raw) || json.Unmarshal(raw, &fields) != nil {
		return models.StudentInfo{}
	}
	return models.StudentInfo{
		FirstName: models.ScalarText(fields["ad"]),
		LastName:  models.ScalarText(fields["soyad"]),
		Class:     models.ScalarText(fields["sinif"]),
	}
}

// truthy follows the backend's loose notion of "set": any non-empty string,
// non-zero number, true, object or array.
func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if !present(raw) {
		return false
	}
	switch raw[0] {
	case '"':
		var s string
		return json.Unmarshal(raw, &s) == nil && s != ""
	case 't':
		return true
	case 'f':
		return false
	case '{', '[':
		return true
	}
	n, ok := models.ParseNumber(raw)
	return ok && n != 0
}

func completionText(raw json.RawMessage) string {
	if s := models.ScalarText(raw); s != "" {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
