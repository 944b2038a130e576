package middleware

import (
	"log"
	"time"

	"github.com/01moynul/stockroom-golang/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie is the name of the cookie that carries the session id.
const SessionCookie = "stockroom_session"

const sessionContextKey = "session"

// Session loads the visitor's session before the handler runs and saves it
// afterwards when the handler changed it.
func Session(store session.Store, ttl time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Read or issue the session id ---
		id, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}

		// 2. --- Load ---
		values, err := store.Load(c.Request.Context(), id)
		if err != nil {
			log.Printf("[session] Load failed for %s: %v", id, err)
			values = nil
		}
		sess := session.New(id, values)
		c.Set(sessionContextKey, sess)

		// The cookie has to be written before the handler starts the body.
		c.SetCookie(SessionCookie, id, int(ttl.Seconds()), "/", "", secure, true)

		c.Next()

		// 3. --- Save ---
		if sess.Dirty() {
			if err := store.Save(c.Request.Context(), id, sess.Values()); err != nil {
				log.Printf("[session] Save failed for %s: %v", id, err)
			}
		}
	}
}

// CurrentSession returns the session loaded by the Session middleware.
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return session.New("", nil)
}
