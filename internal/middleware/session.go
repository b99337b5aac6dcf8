package middleware

import (
	"net/url"
	"strings"

	"mechadex/internal/logger"
	"mechadex/internal/models"
	"mechadex/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "mechadex_session"

const userKey = "user"

// LoadUser resolves the user behind the session cookie once per request and
// stores it in the context. A stale or invalid cookie is cleared; the
// request continues anonymously.
func LoadUser(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return c.Next()
		}

		user, err := authService.CurrentUser(token)
		if err != nil {
			logger.Errorf("Failed to resolve session: %v", err)
			return fiber.ErrInternalServerError
		}
		if user == nil {
			c.ClearCookie(SessionCookie)
			return c.Next()
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by LoadUser, or nil for anonymous
// requests.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}

// AuthRequired redirects anonymous requests to the login page, carrying the
// original request URI in the next parameter.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.Redirect(LoginURL(c.OriginalURL()), fiber.StatusFound)
		}
		return c.Next()
	}
}

// LoginURL builds the login location that returns to next afterwards.
func LoginURL(next string) string {
	return "/login?next=" + url.QueryEscape(next)
}

// SafeNext returns next when it is a local absolute path and "/" otherwise.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") {
		return "/"
	}
	// "//host" and "/\host" are treated as network paths by browsers
	if strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}
