package results

import (
	"encoding/json"
	"testing"

	"github.com/rehber-app/anket-client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRaw(t *testing.T, payload string) []models.RawSurveyResult {
	t.Helper()
	var raws []models.RawSurveyResult
	require.NoError(t, json.Unmarshal([]byte(payload), &raws))
	return raws
}

func resultInClass(studentID, class string, completed bool) models.SurveyResult {
	return models.SurveyResult{
		StudentID: models.ID(studentID),
		Student:   models.StudentInfo{Class: class},
		Completed: completed,
	}
}

func values(contributions []Contribution) []string {
	out := make([]string, 0, len(contributions))
	for _, c := range contributions {
		out = append(out, c.Value)
	}
	return out
}

func TestNormalize_PrefersIndexedAnswers(t *testing.T) {
	raws := decodeRaw(t, `[
		{"_id": "r1", "studentId": "s1", "cevaplar": ["A", "B"], "answer": "Z"},
		{"id": 7, "ogrenciId": 12, "answer": "C"},
		{"studentId": "s3", "answer": ["D", null, "E"]},
		{"studentId": "s4"}
	]`)

	got := NormalizeAll(raws)
	require.Len(t, got, 4)

	assert.Equal(t, models.ID("r1"), got[0].ID)
	require.Len(t, got[0].Answers, 2)
	assert.Equal(t, "A", got[0].Answers[0].Value)

	assert.Equal(t, models.ID("7"), got[1].ID)
	assert.Equal(t, models.ID("12"), got[1].StudentID)
	require.Len(t, got[1].Answers, 1)
	assert.Equal(t, "C", got[1].Answers[0].Value)

	require.Len(t, got[2].Answers, 3)
	assert.Nil(t, got[2].Answers[1])
	assert.Equal(t, "E", got[2].Answers[2].Value)

	assert.Nil(t, got[3].Answers)
}

func TestNormalize_AnswerObjectsAndScore(t *testing.T) {
	raws := decodeRaw(t, `[{
		"surveyId": 42,
		"studentId": "s1",
		"ogrenciInfo": {"ad": "Ayşe", "soyad": "Yılmaz", "sinif": " 9A"},
		"cevaplar": [{"questionText": "Q1", "options": ["A","B"], "chosenAnswer": "B"}, {"soru": "Q2", "cevap": 3}, {"questionText": "Q3"}],
		"puan": "17.5",
		"completedAt": "2026-05-01T10:00:00Z"
	}]`)

	r := Normalize(raws[0])
	assert.Equal(t, models.ID("42"), r.SurveyID)
	assert.Equal(t, " 9A", r.Student.Class, "class labels are kept verbatim")
	assert.Equal(t, "Ayşe", r.Student.FirstName)

	require.Len(t, r.Answers, 3)
	assert.Equal(t, "B", r.Answers[0].Value)
	assert.Equal(t, []string{"A", "B"}, r.Answers[0].Options)
	assert.Equal(t, "3", r.Answers[1].Value)
	assert.Equal(t, "Q2", r.Answers[1].QuestionText)
	assert.Nil(t, r.Answers[2], "an answer object without a value is unanswered")

	require.NotNil(t, r.Score)
	assert.InDelta(t, 17.5, *r.Score, 1e-9)
	assert.True(t, r.Completed)
	assert.Equal(t, "2026-05-01T10:00:00Z", r.CompletedAt)
}

func TestNormalize_MalformedFieldsDegrade(t *testing.T) {
	raws := decodeRaw(t, `[{"studentId": {"x": 1}, "ogrenciInfo": "9A", "cevaplar": [[1,2]], "puan": "high", "completedAt": 0}]`)

	r := Normalize(raws[0])
	assert.True(t, r.StudentID.IsZero())
	assert.Equal(t, models.StudentInfo{}, r.Student)
	require.Len(t, r.Answers, 1)
	assert.Nil(t, r.Answers[0])
	assert.Nil(t, r.Score)
	assert.False(t, r.Completed)
}

func TestNormalize_CompletionTruthiness(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`""`, false},
		{`null`, false},
		{`"2026-01-01"`, true},
		{`"yes"`, true},
		{`1700000000`, true},
		{`0`, false},
		{`true`, true},
		{`false`, false},
		{`{}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := Normalize(models.RawSurveyResult{CompletedAt: json.RawMessage(tt.raw)})
			assert.Equal(t, tt.want, r.Completed)
		})
	}
}

func TestNormalizeAll_EmptyIsNotNil(t *testing.T) {
	got := NormalizeAll(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestClasses_FirstSeenDistinctNonEmpty(t *testing.T) {
	results := []models.SurveyResult{
		resultInClass("s1", "9A", false),
		resultInClass("s2", "9B", false),
		resultInClass("s3", "9A", false),
		resultInClass("s4", "", false),
	}

	assert.Equal(t, []string{"9A", "9B"}, Classes(results))
	assert.Equal(t, []string{AllClasses, "9A", "9B"}, ClassList(results))
	assert.Equal(t, []string{AllClasses}, ClassList(nil))
}

func TestClasses_NoNormalization(t *testing.T) {
	results := []models.SurveyResult{
		resultInClass("s1", "9A", false),
		resultInClass("s2", "9a", false),
		resultInClass("s3", "9A ", false),
	}
	assert.Equal(t, []string{"9A", "9a", "9A "}, Classes(results))
}

func TestFilterByClass(t *testing.T) {
	results := []models.SurveyResult{
		resultInClass("s1", "9A", false),
		resultInClass("s2", "9B", false),
		resultInClass("s3", "9A", false),
	}

	all := FilterByClass(results, AllClasses)
	assert.Equal(t, results, all)

	nineA := FilterByClass(results, "9A")
	require.Len(t, nineA, 2)
	assert.Equal(t, models.ID("s1"), nineA[0].StudentID)
	assert.Equal(t, models.ID("s3"), nineA[1].StudentID)

	assert.Empty(t, FilterByClass(results, "10C"))
}

func TestRollup_MixedShapes(t *testing.T) {
	raws := decodeRaw(t, `[
		{"studentId": "indexed", "cevaplar": ["X", "Y"]},
		{"studentId": "legacy", "answer": "L"},
		{"studentId": "both", "cevaplar": ["I"], "answer": "ignored"}
	]`)
	results := NormalizeAll(raws)

	q0 := Rollup(results, 0)
	assert.Equal(t, []string{"X", "L", "I"}, values(q0))

	q1 := Rollup(results, 1)
	require.Len(t, q1, 1)
	assert.Equal(t, models.ID("indexed"), q1[0].StudentID)
	assert.Equal(t, "Y", q1[0].Value)

	assert.Empty(t, Rollup(results, 5))
	assert.Empty(t, Rollup(results, -1))
}

func TestTallyOptions(t *testing.T) {
	question := models.Question{Text: "Q", Options: []string{"Evet", "Hayır", "Bazen"}}
	contributions := []Contribution{{Value: "Evet"}, {Value: "Hayır"}, {Value: "Evet"}, {Value: "Belki"}}

	tally := TallyOptions(question, contributions)
	require.Len(t, tally, 4)
	assert.Equal(t, OptionCount{Option: "Evet", Count: 2, Percent: 50, Listed: true}, tally[0])
	assert.Equal(t, OptionCount{Option: "Hayır", Count: 1, Percent: 25, Listed: true}, tally[1])
	assert.Equal(t, OptionCount{Option: "Bazen", Count: 0, Percent: 0, Listed: true}, tally[2])
	assert.Equal(t, OptionCount{Option: "Belki", Count: 1, Percent: 25}, tally[3])
}

func TestPartitionCompletion(t *testing.T) {
	results := []models.SurveyResult{
		resultInClass("s1", "9A", true),
		resultInClass("s2", "9A", false),
		resultInClass("s3", "9B", true),
	}

	completed, incomplete := PartitionCompletion(results)
	require.Len(t, completed, 2)
	require.Len(t, incomplete, 1)
	assert.Equal(t, models.ID("s1"), completed[0].StudentID)
	assert.Equal(t, models.ID("s3"), completed[1].StudentID)
	assert.Equal(t, models.ID("s2"), incomplete[0].StudentID)
}

func TestParticipationPercent(t *testing.T) {
	tests := []struct {
		total, completed, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{4, 1, 25},
		{3, 2, 67},
		{3, 1, 33},
		{8, 1, 13},
		{2, 2, 100},
		{2, 5, 100},
		{-1, 1, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParticipationPercent(tt.total, tt.completed), "total=%d completed=%d", tt.total, tt.completed)
	}
}

func TestComputeStatistics(t *testing.T) {
	score := func(v float64) *float64 { return &v }
	results := []models.SurveyResult{
		{StudentID: "s1", Student: models.StudentInfo{Class: "9A"}, Completed: true, Score: score(10)},
		{StudentID: "s1", Student: models.StudentInfo{Class: "9A"}, Completed: false, Score: score(20)},
		{StudentID: "s2", Student: models.StudentInfo{Class: "9B"}, Completed: true},
		{StudentID: "", Student: models.StudentInfo{Class: ""}, Completed: true, Score: score(30)},
	}

	stats := ComputeStatistics(results)
	assert.Equal(t, 4, stats.TotalParticipants)
	assert.Equal(t, 2, stats.DistinctStudents)
	assert.Equal(t, 3, stats.CompletedCount)
	assert.InDelta(t, 20, stats.AverageScore, 1e-9)
	assert.InDelta(t, 10, stats.MinScore, 1e-9)
	assert.InDelta(t, 30, stats.MaxScore, 1e-9)

	require.Len(t, stats.ClassBreakdown, 2)
	assert.Equal(t, models.ClassStatistics{Class: "9A", Participants: 2, Completed: 1, AverageScore: 15}, stats.ClassBreakdown["9A"])
	assert.Equal(t, models.ClassStatistics{Class: "9B", Participants: 1, Completed: 1}, stats.ClassBreakdown["9B"])
}

func TestComputeStatistics_Empty(t *testing.T) {
	stats := ComputeStatistics(nil)
	assert.Zero(t, stats.TotalParticipants)
	assert.Zero(t, stats.AverageScore)
	assert.Empty(t, stats.ClassBreakdown)
}

func TestEndToEndScenario(t *testing.T) {
	var payload models.ResultsPayload
	require.NoError(t, json.Unmarshal([]byte(`{
		"results": [
			{"studentId": "s1", "ogrenciInfo": {"sinif": "9A"}, "cevaplar": ["A", "B"]},
			{"studentId": "s2", "ogrenciInfo": {"sinif": "9B"}, "cevaplar": ["B"]}
		],
		"statistics": {"totalParticipants": 2}
	}`), &payload))

	results := NormalizeAll(payload.Results)
	require.Len(t, results, 2)

	nineB := FilterByClass(results, "9B")
	require.Len(t, nineB, 1)
	assert.Equal(t, models.ID("s2"), nineB[0].StudentID)

	q1 := Rollup(results, 1)
	require.Len(t, q1, 1)
	assert.Equal(t, models.ID("s1"), q1[0].StudentID)
	assert.Equal(t, "B", q1[0].Value)
}
