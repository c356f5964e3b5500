package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rehber-app/anket-client/internal/client"
	"github.com/rehber-app/anket-client/internal/client/clienttest"
	"github.com/rehber-app/anket-client/internal/models"
)

func answer(v string) *models.Answer {
	return &models.Answer{Value: v}
}

func sampleResults(ids ...string) []models.SurveyResult {
	out := make([]models.SurveyResult, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.SurveyResult{
			ID:        models.ID(id),
			SurveyID:  "s1",
			StudentID: models.ID("st-" + id),
			Student:   models.StudentInfo{Class: "9A"},
			Answers:   []*models.Answer{answer("Evet"), nil},
			Completed: true,
		})
	}
	return out
}

func newTestStore(t *testing.T) (*Store, *Operations, *clienttest.MockAPI) {
	t.Helper()
	api := new(clienttest.MockAPI)
	return New(), NewOperations(api), api
}

func TestFetchSurveyResults_FulfilledStoresResults(t *testing.T) {
	s, ops, api := newTestStore(t)
	ctx := context.Background()
	stats := &models.Statistics{TotalParticipants: 2}
	api.On("GetSurveyResults", mock.Anything, models.ID("s1")).
		Return(&client.SurveyResults{Results: sampleResults("r1", "r2"), Statistics: stats}, nil)

	_, err := s.Run(ctx, ops.FetchSurveyResults("s1"))
	require.NoError(t, err)

	state := s.State()
	results, ok := state.SurveyResults("s1")
	require.True(t, ok)
	assert.Len(t, results, 2)
	got, ok := state.Statistics("s1")
	require.True(t, ok)
	assert.Equal(t, 2, got.TotalParticipants)
	assert.Equal(t, StatusFulfilled, state.Request(OpFetchSurveyResults, "s1").Status)
	api.AssertExpectations(t)
}

func TestFetchSurveyResults_ReplacesWithoutMerge(t *testing.T) {
	s, ops, api := newTestStore(t)
	ctx := context.Background()
	api.On("GetSurveyResults", mock.Anything, models.ID("s1")).
		Return(&client.SurveyResults{Results: sampleResults("r1", "r2", "r3")}, nil).Once()
	api.On("GetSurveyResults", mock.Anything, models.ID("s1")).
		Return(&client.SurveyResults{Results: sampleResults("r9")}, nil).Once()

	_, err := s.Run(ctx, ops.FetchSurveyResults("s1"))
	require.NoError(t, err)
	_, err = s.Run(ctx, ops.FetchSurveyResults("s1"))
	require.NoError(t, err)

	results, _ := s.State().SurveyResults("s1")
	require.Len(t, results, 1)
	assert.Equal(t, models.ID("r9"), results[0].ID)
}

func TestFetchSurveyResults_EmptyIsNotAbsent(t *testing.T) {
	s, ops, api := newTestStore(t)
	api.On("GetSurveyResults", mock.Anything, models.ID("s1")).
		Return(&client.SurveyResults{}, nil)

	_, ok := s.State().SurveyResults("s1")
	assert.False(t, ok)

	_, err := s.Run(context.Background(), ops.FetchSurveyResults("s1"))
	require.NoError(t, err)

	results, ok := s.State().SurveyResults("s1")
	assert.True(t, ok)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestFetchSurveyResults_RejectedKeepsPriorData(t *testing.T) {
	s, ops, api := newTestStore(t)
	ctx := context.Background()
	api.On("GetSurveyResults", mock.Anything, models.ID("s1")).
		Return(&client.SurveyResults{Results: sampleResults("r1", "r2")}, nil).Once()
	api.On("GetSurveyResults", mock.Anything, models.ID("s1")).
		Return(nil, &client.APIError{StatusCode: 500, Message: "Sunucu hatası"}).Once()

	_, err := s.Run(ctx, ops.FetchSurveyResults("s1"))
	require.NoError(t, err)
	before, _ := s.State().SurveyResults("s1")

	_, err = s.Run(ctx, ops.FetchSurveyResults("s1"))
	require.Error(t, err)

	state := s.State()
	after, ok := state.SurveyResults("s1")
	require.True(t, ok)
	assert.Equal(t, before, after)

	req := state.Request(OpFetchSurveyResults, "s1")
	assert.Equal(t, StatusRejected, req.Status)
	assert.Equal(t, "Sunucu hatası", req.Error)
}

func TestFetchSurveyResults_RejectedUsesFallbackMessage(t *testing.T) {
	s, ops, api := newTestStore(t)
	api.On("GetSurveyResults", mock.Anything, models.ID("s1")).
		Return(nil, errors.New("boom"))

	_, err := s.Run(context.Background(), ops.FetchSurveyResults("s1"))
	require.Error(t, err)

	state := s.State()
	assert.Equal(t, msgResultsFailed, state.Request(OpFetchSurveyResults, "s1").Error)
	_, ok := state.SurveyResults("s1")
	assert.False(t, ok)
}

func TestFetchSurveyResults_KeysAreIndependent(t *testing.T) {
	s, ops, api := newTestStore(t)
	ctx := context.Background()
	api.On("GetSurveyResults", mock.Anything, models.ID("A")).
		Return(&client.SurveyResults{Results: sampleResults("a1")}, nil)
	api.On("GetSurveyResults", mock.Anything, models.ID("B")).
		Return(&client.SurveyResults{Results: sampleResults("b1", "b2")}, nil).Once()
	api.On("GetSurveyResults", mock.Anything, models.ID("B")).
		Return(nil, errors.New("down")).Once()

	_, err := s.Run(ctx, ops.FetchSurveyResults("B"))
	require.NoError(t, err)
	bBefore, _ := s.State().SurveyResults("B")

	_, err = s.Run(ctx, ops.FetchSurveyResults("A"))
	require.NoError(t, err)
	_, err = s.Run(ctx, ops.FetchSurveyResults("B"))
	require.Error(t, err)

	state := s.State()
	bAfter, _ := state.SurveyResults("B")
	assert.Equal(t, bBefore, bAfter)
	assert.Equal(t, StatusFulfilled, state.Request(OpFetchSurveyResults, "A").Status)
	assert.Equal(t, StatusRejected, state.Request(OpFetchSurveyResults, "B").Status)
}

func TestRun_PendingWhileInFlight(t *testing.T) {
	s, ops, api := newTestStore(t)
	release := make(chan struct{})
	started := make(chan struct{})
	api.On("GetSurveyResults", mock.Anything, models.ID("s1")).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&client.SurveyResults{}, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Run(context.Background(), ops.FetchSurveyResults("s1"))
	}()

	<-started
	assert.True(t, s.State().Request(OpFetchSurveyResults, "s1").Loading())
	close(release)
	<-done
	assert.Equal(t, StatusFulfilled, s.State().Request(OpFetchSurveyResults, "s1").Status)
}

func TestRun_LastResponseWins(t *testing.T) {
	s, ops, api := newTestStore(t)
	slowRelease := make(chan struct{})
	slowStarted := make(chan struct{})

	api.On("GetSurveyResults", mock.Anything, models.ID("s1")).
		Run(func(mock.Arguments) {
			close(slowStarted)
			<-slowRelease
		}).
		Return(&client.SurveyResults{Results: sampleResults("slow")}, nil).Once()
	api.On("GetSurveyResults", mock.Anything, models.ID("s1")).
		Return(&client.SurveyResults{Results: sampleResults("fast")}, nil).Once()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = s.Run(context.Background(), ops.FetchSurveyResults("s1"))
	}()
	<-slowStarted

	_, err := s.Run(context.Background(), ops.FetchSurveyResults("s1"))
	require.NoError(t, err)
	close(slowRelease)
	wg.Wait()

	results, _ := s.State().SurveyResults("s1")
	require.Len(t, results, 1)
	assert.Equal(t, models.ID("slow"), results[0].ID)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	prev := Reduce(State{}, Action{
		Op: OpFetchSurveyResults, Key: "s1", Phase: PhaseFulfilled,
		Payload: &client.SurveyResults{Results: sampleResults("r1")},
	})
	snapshot, _ := prev.SurveyResults("s1")
	requestCount := len(prev.Requests)

	next := Reduce(prev, Action{
		Op: OpFetchSurveyResults, Key: "s2", Phase: PhaseFulfilled,
		Payload: &client.SurveyResults{Results: sampleResults("x1", "x2")},
	})

	_, ok := prev.SurveyResults("s2")
	assert.False(t, ok)
	assert.Len(t, prev.Requests, requestCount)
	still, _ := prev.SurveyResults("s1")
	assert.Equal(t, snapshot, still)

	_, ok = next.SurveyResults("s2")
	assert.True(t, ok)
}

func TestReduce_IgnoresMismatchedPayload(t *testing.T) {
	prev := State{}
	next := Reduce(prev, Action{Op: OpFetchSurveyResults, Key: "s1", Phase: PhaseFulfilled, Payload: "nope"})
	_, ok := next.SurveyResults("s1")
	assert.False(t, ok)
}

func TestClearResults(t *testing.T) {
	s, ops, api := newTestStore(t)
	ctx := context.Background()
	for _, id := range []models.ID{"A", "B"} {
		api.On("GetSurveyResults", mock.Anything, id).
			Return(&client.SurveyResults{Results: sampleResults("r")}, nil)
	}
	api.On("GetClassStatistics", mock.Anything, models.ID("A"), "9A").
		Return(&models.Statistics{TotalParticipants: 1}, nil)

	_, err := s.Run(ctx, ops.FetchSurveyResults("A"))
	require.NoError(t, err)
	_, err = s.Run(ctx, ops.FetchSurveyResults("B"))
	require.NoError(t, err)
	_, err = s.Run(ctx, ops.FetchClassStatistics("A", "9A"))
	require.NoError(t, err)

	t.Run("single survey", func(t *testing.T) {
		state := s.Clear(OpClearResults, "A")
		_, ok := state.SurveyResults("A")
		assert.False(t, ok)
		_, ok = state.ClassStatistics("A", "9A")
		assert.False(t, ok)
		assert.Equal(t, StatusIdle, state.Request(OpFetchSurveyResults, "A").Status)
		assert.Equal(t, StatusIdle, state.Request(OpFetchClassStatistics, ClassStatisticsKey("A", "9A")).Status)

		_, ok = state.SurveyResults("B")
		assert.True(t, ok)
	})

	t.Run("whole slice", func(t *testing.T) {
		state := s.Clear(OpClearResults, "")
		_, ok := state.SurveyResults("B")
		assert.False(t, ok)
		assert.Equal(t, StatusIdle, state.Request(OpFetchSurveyResults, "B").Status)
	})
}

func TestFetchClassStatistics_KeyedByClass(t *testing.T) {
	s, ops, api := newTestStore(t)
	ctx := context.Background()
	api.On("GetClassStatistics", mock.Anything, models.ID("s1"), "9A").
		Return(&models.Statistics{TotalParticipants: 3}, nil)
	api.On("GetClassStatistics", mock.Anything, models.ID("s1"), "9a").
		Return(&models.Statistics{TotalParticipants: 1}, nil)

	_, err := s.Run(ctx, ops.FetchClassStatistics("s1", "9A"))
	require.NoError(t, err)
	_, err = s.Run(ctx, ops.FetchClassStatistics("s1", "9a"))
	require.NoError(t, err)

	upper, _ := s.State().ClassStatistics("s1", "9A")
	lower, _ := s.State().ClassStatistics("s1", "9a")
	assert.Equal(t, 3, upper.TotalParticipants)
	assert.Equal(t, 1, lower.TotalParticipants)
}

func TestSubmitSurvey_StoresReceipt(t *testing.T) {
	s, ops, api := newTestStore(t)
	req := models.SubmissionRequest{SurveyID: "s1", StudentID: "st1", Answers: []models.Answer{{Value: "Evet"}}}
	api.On("SubmitSurvey", mock.Anything, req).
		Return(&models.SubmissionReceipt{ResultID: "r1", Message: "Kaydedildi"}, nil)

	_, err := s.Run(context.Background(), ops.SubmitSurvey(req))
	require.NoError(t, err)

	receipt, ok := s.State().Results.Receipts["s1"]
	require.True(t, ok)
	assert.Equal(t, models.ID("r1"), receipt.ResultID)
	api.AssertNotCalled(t, "SaveResult", mock.Anything, mock.Anything)
}

func TestLoginLogout(t *testing.T) {
	s, ops, api := newTestStore(t)
	req := models.LoginRequest{Email: "rehber@okul.k12.tr", Password: "gizli123"}
	api.On("Login", mock.Anything, req).Return(&models.LoginResponse{
		Token: "tok",
		User:  models.User{ID: "u1", Role: models.RoleGuide},
	}, nil)

	_, err := s.Run(context.Background(), ops.Login(req))
	require.NoError(t, err)
	state := s.State()
	require.NotNil(t, state.User.Current)
	assert.Equal(t, "tok", state.User.Token)

	state = s.Clear(OpLogout, "")
	assert.Nil(t, state.User.Current)
	assert.Empty(t, state.User.Token)
	assert.Equal(t, StatusIdle, state.Request(OpLogin, req.Email).Status)
}

func TestStudentSlice(t *testing.T) {
	s, ops, api := newTestStore(t)
	ctx := context.Background()
	class := "10-B"
	update := models.StudentUpdate{Class: &class}
	api.On("GetStudent", mock.Anything, models.ID("st1")).
		Return(&models.Student{ID: "st1", Class: "9A"}, nil)
	api.On("UpdateStudent", mock.Anything, models.ID("st1"), update).
		Return(&models.Student{ID: "st1", Class: class}, nil)
	api.On("ListStudentsByClass", mock.Anything, " 9A").Return(nil, nil)

	_, err := s.Run(ctx, ops.FetchStudent("st1"))
	require.NoError(t, err)
	_, err = s.Run(ctx, ops.UpdateStudent("st1", update))
	require.NoError(t, err)
	_, err = s.Run(ctx, ops.ListStudentsByClass(" 9A"))
	require.NoError(t, err)

	state := s.State()
	student, ok := state.StudentByID("st1")
	require.True(t, ok)
	assert.Equal(t, "10-B", student.Class)

	list, ok := state.StudentsInClass(" 9A")
	assert.True(t, ok)
	assert.Empty(t, list)
	_, ok = state.StudentsInClass("9A")
	assert.False(t, ok)

	state = s.Clear(OpClearStudent, "")
	_, ok = state.StudentByID("st1")
	assert.False(t, ok)
}

func TestGuideAndAdminSlices(t *testing.T) {
	s, ops, api := newTestStore(t)
	ctx := context.Background()
	api.On("ListGuides", mock.Anything).Return([]models.Guide{{ID: "g1"}}, nil)
	api.On("GetGuide", mock.Anything, models.ID("g1")).Return(&models.Guide{ID: "g1", FirstName: "Ayşe"}, nil)
	api.On("ListGuideStudents", mock.Anything, models.ID("g1")).Return([]models.Student{{ID: "st1"}}, nil)
	api.On("GetGuideResults", mock.Anything, models.ID("g1")).Return(sampleResults("r1"), nil)

	for _, op := range []Operation{ops.ListGuides(), ops.FetchGuide("g1"), ops.FetchGuideStudents("g1"), ops.FetchGuideResults("g1")} {
		_, err := s.Run(ctx, op)
		require.NoError(t, err)
	}

	state := s.State()
	assert.Len(t, state.Admin.Guides, 1)
	guide, ok := state.GuideByID("g1")
	require.True(t, ok)
	assert.Equal(t, "Ayşe", guide.FirstName)
	students, _ := state.GuideStudents("g1")
	assert.Len(t, students, 1)
	results, _ := state.GuideResults("g1")
	assert.Len(t, results, 1)

	state = s.Clear(OpClearGuide, "")
	_, ok = state.GuideByID("g1")
	assert.False(t, ok)
	state = s.Clear(OpClearAdmin, "")
	assert.Nil(t, state.Admin.Guides)
}

type memoryCache struct {
	mu      sync.Mutex
	surveys map[models.ID]models.Survey
}

func (c *memoryCache) GetSurvey(_ context.Context, id models.ID) (*models.Survey, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sv, ok := c.surveys[id]
	if !ok {
		return nil, false
	}
	return &sv, true
}

func (c *memoryCache) SetSurvey(_ context.Context, sv models.Survey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surveys[sv.ID] = sv
}

func (c *memoryCache) Invalidate(_ context.Context, id models.ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.surveys, id)
	return nil
}

func TestFetchSurvey_ReadThroughCache(t *testing.T) {
	api := new(clienttest.MockAPI)
	cache := &memoryCache{surveys: map[models.ID]models.Survey{}}
	ops := NewOperations(api, WithSurveyCache(cache))
	s := New()
	api.On("GetSurvey", mock.Anything, models.ID("s1")).
		Return(&models.Survey{ID: "s1", Title: "Kariyer"}, nil).Once()

	for i := 0; i < 2; i++ {
		_, err := s.Run(context.Background(), ops.FetchSurvey("s1"))
		require.NoError(t, err)
	}

	sv, ok := s.State().SurveyByID("s1")
	require.True(t, ok)
	assert.Equal(t, "Kariyer", sv.Title)
	api.AssertNumberOfCalls(t, "GetSurvey", 1)
}

func TestSubscribeAndObserver(t *testing.T) {
	api := new(clienttest.MockAPI)
	var observed []Op
	s := New(WithObserver(func(_ context.Context, op Op, _ string, _ time.Duration, _ error) {
		observed = append(observed, op)
	}))
	ops := NewOperations(api)
	api.On("ListSurveys", mock.Anything).Return([]models.Survey{{ID: "s1"}}, nil)

	var seen []Status
	cancel := s.Subscribe(func(state State) {
		seen = append(seen, state.Request(OpListSurveys, "").Status)
	})
	_, err := s.Run(context.Background(), ops.ListSurveys())
	require.NoError(t, err)
	cancel()
	s.Clear(OpClearSurvey, "")

	assert.Equal(t, []Status{StatusPending, StatusFulfilled}, seen)
	assert.Equal(t, []Op{OpListSurveys}, observed)
}

func TestRefreshSurvey_BypassesAndUpdatesCache(t *testing.T) {
	api := new(clienttest.MockAPI)
	cache := &memoryCache{surveys: map[models.ID]models.Survey{
		"s1": {ID: "s1", Title: "Eski"},
		"s2": {ID: "s2", Title: "Silinmiş"},
	}}
	ops := NewOperations(api, WithSurveyCache(cache))
	s := New()
	api.On("GetSurvey", mock.Anything, models.ID("s1")).
		Return(&models.Survey{ID: "s1", Title: "Yeni"}, nil).Once()
	api.On("GetSurvey", mock.Anything, models.ID("s2")).
		Return(nil, &client.APIError{StatusCode: 404}).Once()

	_, err := s.Run(context.Background(), ops.RefreshSurvey("s1"))
	require.NoError(t, err)
	sv, _ := s.State().SurveyByID("s1")
	assert.Equal(t, "Yeni", sv.Title)
	cached, ok := cache.GetSurvey(context.Background(), "s1")
	require.True(t, ok)
	assert.Equal(t, "Yeni", cached.Title)

	_, err = s.Run(context.Background(), ops.RefreshSurvey("s2"))
	require.Error(t, err)
	_, ok = cache.GetSurvey(context.Background(), "s2")
	assert.False(t, ok)
	assert.Equal(t, StatusRejected, s.State().Request(OpFetchSurvey, "s2").Status)
}

func TestDispatch_ListenersSeeStatesInOrder(t *testing.T) {
	s := New()
	rendering := make(chan struct{})
	var once sync.Once
	var mu sync.Mutex
	var last State

	cancel := s.Subscribe(func(state State) {
		if state.Request(OpFetchSurvey, "s1").Status == StatusIdle {
			// a slow render of the first state
			once.Do(func() { close(rendering) })
			time.Sleep(50 * time.Millisecond)
		}
		mu.Lock()
		last = state
		mu.Unlock()
	})
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Dispatch(Action{Op: OpListSurveys, Phase: PhasePending})
	}()
	<-rendering
	s.Dispatch(Action{Op: OpFetchSurvey, Key: "s1", Phase: PhasePending})
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, StatusPending, s.State().Request(OpFetchSurvey, "s1").Status)
	assert.Equal(t, StatusPending, last.Request(OpFetchSurvey, "s1").Status)
	assert.Equal(t, StatusPending, last.Request(OpListSurveys, "").Status)
}

func TestSessions(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	sessions := NewSessions(func() *Store { return New() })
	sessions.now = func() time.Time { return now }

	a := sessions.Get("a")
	assert.Same(t, a, sessions.Get("a"))
	assert.NotSame(t, a, sessions.Get("b"))

	now = now.Add(time.Hour)
	sessions.Get("b")
	assert.Equal(t, 1, sessions.Sweep(30*time.Minute))
	assert.Equal(t, 1, sessions.Len())

	assert.True(t, sessions.Drop("b"))
	assert.False(t, sessions.Drop("b"))
}
