package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

const (
	// CSRFField is the hidden form field carrying the token.
	CSRFField = "_csrf"
	// CSRFCookie holds the token the form field is checked against.
	CSRFCookie = "mechadex_csrf"

	csrfKey = "csrf"
)

// CSRF rejects unsafe requests whose form token does not match the CSRF
// cookie. Safe requests get a token, available through CSRFToken.
func CSRF(secureCookie bool) fiber.Handler {
	return csrf.New(csrf.Config{
		KeyLookup:      "form:" + CSRFField,
		CookieName:     CSRFCookie,
		CookieSecure:   secureCookie,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		Expiration:     2 * time.Hour,
		ContextKey:     csrfKey,
	})
}

// CSRFToken returns the token for the forms of the current page, or "" when
// CSRF protection is off.
func CSRFToken(c *fiber.Ctx) string {
	token, _ := c.Locals(csrfKey).(string)
	return token
}
