package store

import (
	"strings"
	"time"
)

// Status is the lifecycle position of one operation key.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusRejected  Status = "rejected"
)

// Op names an operation. The prefix before "/" is the owning slice.
type Op string

func (o Op) Slice() string {
	slice, _, _ := strings.Cut(string(o), "/")
	return slice
}

// OpKey identifies one in-flight operation: the same Op on different keys
// (for example two survey ids) is tracked independently.
type OpKey struct {
	Op  Op
	Key string
}

// Request is the lifecycle record of one OpKey.
type Request struct {
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r Request) Loading() bool {
	return r.Status == StatusPending
}

func (r Request) Failed() bool {
	return r.Status == StatusRejected
}

// Phase says which lifecycle event an Action carries. PhaseLocal actions
// never touch the network (clears, logout).
type Phase int

const (
	PhasePending Phase = iota
	PhaseFulfilled
	PhaseRejected
	PhaseLocal
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseFulfilled:
		return "fulfilled"
	case PhaseRejected:
		return "rejected"
	case PhaseLocal:
		return "local"
	}
	return "unknown"
}

// Action is the single input of the reducer.
type Action struct {
	Op      Op
	Key     string
	Phase   Phase
	Payload interface{}
	Error   string
	At      time.Time
}

func (a Action) OpKey() OpKey {
	return OpKey{Op: a.Op, Key: a.Key}
}
