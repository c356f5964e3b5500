package store

import (
	"context"

	"github.com/rehber-app/anket-client/internal/models"
)

const (
	OpListGuides Op = "admin/listGuides"
	OpClearAdmin Op = "admin/clear"
)

const msgGuidesFailed = "Rehber listesi alınamadı"

func (o *Operations) ListGuides() Operation {
	return Operation{
		Op:       OpListGuides,
		Fallback: msgGuidesFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			return o.api.ListGuides(ctx)
		},
	}
}

func reduceListGuides(s State, a Action) State {
	guides, ok := a.Payload.([]models.Guide)
	if !ok {
		return s
	}
	if guides == nil {
		guides = []models.Guide{}
	}
	s.Admin = AdminState{Guides: guides}
	return s
}

func reduceClearAdmin(s State, _ Action) State {
	s.Admin = AdminState{}
	s.Requests = dropRequests(s.Requests, OpClearAdmin.Slice(), "")
	return s
}
