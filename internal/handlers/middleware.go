package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rehber-app/anket-client/internal/store"
	"github.com/rehber-app/anket-client/internal/utils"
)

const (
	RequestIDHeader = "X-Request-ID"
	SessionHeader   = "X-Session-ID"

	storeKey = "session_store"
)

// RequestID takes the caller's X-Request-ID or mints one, and makes it
// visible to both gin handlers and the services' context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(utils.RequestIDKey, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), utils.RequestIDKey, id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Session binds the request to its session store. A request without
// X-Session-ID starts a new session; the id is always echoed back.
func Session(sessions *store.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(utils.SessionKey, id)
		c.Set(storeKey, sessions.Get(id))
		c.Header(SessionHeader, id)
		c.Next()
	}
}
