package store

import (
	"context"

	"github.com/rehber-app/anket-client/internal/models"
)

const (
	OpLogin  Op = "user/login"
	OpLogout Op = "user/logout"
)

const msgLoginFailed = "Giriş yapılamadı"

func (o *Operations) Login(req models.LoginRequest) Operation {
	return Operation{
		Op:       OpLogin,
		Key:      req.Email,
		Fallback: msgLoginFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			return o.api.Login(ctx, req)
		},
	}
}

func reduceLogin(s State, a Action) State {
	resp, ok := a.Payload.(*models.LoginResponse)
	if !ok || resp == nil {
		return s
	}
	user := resp.User
	s.User = UserState{Current: &user, Token: resp.Token}
	return s
}

func reduceLogout(s State, _ Action) State {
	s.User = UserState{}
	s.Requests = dropRequests(s.Requests, OpLogin.Slice(), "")
	return s
}
