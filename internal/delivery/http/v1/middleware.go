package v1

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-planner/internal/services"
)

const (
	userIDCtxKey    = "user_id"
	sessionIDCtxKey = "session_id"
)

func (h *handlerImpl) HandleRequestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	event := h.logger.Info().
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", c.Writer.Status()).
		Dur("latency", time.Since(start)).
		Str("client_ip", c.ClientIP())
	if sessionID := c.GetString(sessionIDCtxKey); sessionID != "" {
		userID, _ := getUserIDFromContext(c)
		event = event.
			Str("session_id", sessionID).
			Int64("user_id", userID)
	}
	event.Msg("handled request")
}

// HandleSessionMiddleware attaches the user of a valid session cookie to
// the request. Requests without a usable session pass through anonymously.
func (h *handlerImpl) HandleSessionMiddleware(c *gin.Context) {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		c.Next()
		return
	}

	fingerprint, err := generateFingerprint(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to generate fingerprint")
		c.Next()
		return
	}

	session, err := h.auth.Authenticate(c, token, fingerprint)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) || errors.Is(err, services.ErrSessionExpired) {
			h.logger.Debug().
				Err(err).
				Msg("dropping stale session cookie")
			h.clearSessionCookie(c)
		} else {
			h.logger.Error().
				Err(err).
				Msg("failed to authenticate session")
		}
		c.Next()
		return
	}

	c.Set(userIDCtxKey, session.UserID)
	c.Set(sessionIDCtxKey, session.ID)
	c.Next()
}

func getUserIDFromContext(c *gin.Context) (int64, bool) {
	value, exists := c.Get(userIDCtxKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}
