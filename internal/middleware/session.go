package middleware

import (
	"time"

	"BatiDetect/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	SessionIDKey    = "session_id"
	SessionCookie   = "session_id"
	sessionLifetime = 24 * time.Hour
)

// NewSessionMiddleware makes sure every request carries a session id,
// issuing the cookie on first contact.
func NewSessionMiddleware(u utils.IUtils, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(SessionCookie)

		if !validSessionID(sessionID) {
			id, err := u.NewSessionID()
			if err != nil {
				log.WithField("error", err.Error()).Error("Failed to mint session id")
				return fiber.ErrInternalServerError
			}
			sessionID = id

			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    sessionID,
				Path:     "/",
				Expires:  time.Now().Add(sessionLifetime),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		c.Locals(SessionIDKey, sessionID)
		return c.Next()
	}
}

// validSessionID accepts ULID-shaped ids only, so arbitrary cookie values
// never become store keys.
func validSessionID(id string) bool {
	if len(id) != 26 {
		return false
	}
	for _, r := range id {
		if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
