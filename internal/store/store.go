// Package store holds client-side state: an explicit, injectable container
// driven by a pure reducer. Every backend operation runs through a
// pending/fulfilled/rejected lifecycle recorded per operation key.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rehber-app/anket-client/internal/client"
	"github.com/rehber-app/anket-client/internal/utils"
)

// Operation is one backend call bound to its op key. Fallback is the UI
// message used when the failure carries no message of its own.
type Operation struct {
	Op       Op
	Key      string
	Fallback string
	Call     func(ctx context.Context) (interface{}, error)
}

// Observer is told about every finished operation.
type Observer func(ctx context.Context, op Op, key string, duration time.Duration, err error)

// Store serializes dispatches; reads get an immutable snapshot.
// notifyMu is held from reduce through notification, so listeners see
// states in the order they were produced. mu only guards the fields.
type Store struct {
	notifyMu  sync.Mutex
	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
	now       func() time.Time
	observer  Observer
	logger    utils.Logger
}

type Option func(*Store)

func WithObserver(o Observer) Option {
	return func(s *Store) { s.observer = o }
}

func WithLogger(logger utils.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithState seeds the store, mostly for tests.
func WithState(state State) Option {
	return func(s *Store) { s.state = state }
}

func New(opts ...Option) *Store {
	s := &Store{
		listeners: make(map[int]func(State)),
		now:       time.Now,
		logger:    utils.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies an action and notifies subscribers with the new state.
// Listeners run before Dispatch returns and must not dispatch themselves.
func (s *Store) Dispatch(a Action) State {
	if a.At.IsZero() {
		a.At = s.now()
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]func(State), 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return next
}

// Subscribe registers fn for every future dispatch and returns its cancel func.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Run executes op through its lifecycle. The call itself runs outside the
// lock, so operations on different keys proceed concurrently. When two calls
// on the same key overlap, the one that finishes last is what the state keeps.
func (s *Store) Run(ctx context.Context, op Operation) (interface{}, error) {
	start := s.now()
	s.Dispatch(Action{Op: op.Op, Key: op.Key, Phase: PhasePending})

	payload, err := op.Call(ctx)
	if s.observer != nil {
		s.observer(ctx, op.Op, op.Key, s.now().Sub(start), err)
	}
	if err != nil {
		msg := client.UserMessage(err, op.Fallback)
		s.logger.WarnContext(ctx, "Operation rejected", "op", string(op.Op), "key", op.Key, "error", err)
		s.Dispatch(Action{Op: op.Op, Key: op.Key, Phase: PhaseRejected, Error: msg})
		return nil, err
	}

	s.Dispatch(Action{Op: op.Op, Key: op.Key, Phase: PhaseFulfilled, Payload: payload})
	return payload, nil
}

// Clear dispatches a local clear action.
func (s *Store) Clear(op Op, key string) State {
	return s.Dispatch(Action{Op: op, Key: key, Phase: PhaseLocal})
}
