package handlers

import (
	"strings"

	"github.com/labstack/echo/v5"

	"donorhub/internal/session"
	"donorhub/models"
)

// SessionMiddleware resolves the browser's opaque session id into the
// stored session. Requests without a valid id proceed anonymously; the
// services decide which operations need a login.
func SessionMiddleware(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get("X-Session-Id")
			if id == "" {
				auth := c.Request().Header.Get("Authorization")
				if strings.HasPrefix(auth, "Bearer ") {
					id = strings.TrimPrefix(auth, "Bearer ")
				}
			}
			if id == "" {
				return next(c)
			}

			sess, err := store.Get(c.Request().Context(), id)
			if err != nil {
				// Expired or bogus id; treat as anonymous.
				return next(c)
			}

			store.Touch(c.Request().Context(), id)
			c.Set("session_id", id)
			c.Set("session", sess)
			return next(c)
		}
	}
}

func currentSession(c echo.Context) *models.Session {
	sess, _ := c.Get("session").(*models.Session)
	return sess
}

func currentSessionID(c echo.Context) string {
	id, _ := c.Get("session_id").(string)
	return id
}
