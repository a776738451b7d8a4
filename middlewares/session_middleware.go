// middlewares/session_middleware.go
package middlewares

import (
	"log"

	"foodscan/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "fs_session"

// SessionMiddleware gives every browser a stable anonymous session id,
// carried in a signed cookie. No accounts, no lookup: the id only keys the
// in-memory last-analysis slot and the status stream. A missing or invalid
// cookie just gets a fresh session.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var sid string

		if tokenString, err := c.Cookie(sessionCookie); err == nil {
			if parsed, err := utils.ParseSessionToken(tokenString); err == nil {
				sid = parsed
			}
		}

		if sid == "" {
			sid = uuid.NewString()
			token, err := utils.GenerateSessionToken(sid)
			if err != nil {
				// keep serving; the session just won't survive this request
				log.Printf("failed to sign session token: %v", err)
			} else {
				c.SetCookie(sessionCookie, token, 72*3600, "/", "", false, true)
			}
		}

		c.Set("sessionID", sid)
		c.Next()
	}
}
