package handlers

import (
	"errors"

	"mechadex/internal/logger"
	"mechadex/internal/middleware"
	"mechadex/internal/models"
	"mechadex/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	msgUsernameTaken    = "That username is taken. Please choose a different one."
	msgUnknownUser      = "No user with that username. Please try again."
	msgPasswordMismatch = "Password does not match. Please try again."
)

// AuthHandler handles signup, login and logout.
type AuthHandler struct {
	authService *services.AuthService
	// secureCookies marks the session cookie Secure outside development.
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		secureCookies: secureCookies,
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/signup", h.HandleSignupForm)
	router.Post("/signup", h.HandleSignup)
	router.Get("/login", h.HandleLoginForm)
	router.Post("/login", h.HandleLogin)
	router.Get("/logout", h.HandleLogout)
	router.Post("/logout", h.HandleLogout)
}

// HandleSignupForm renders the empty signup form.
func (h *AuthHandler) HandleSignupForm(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, "signup", nil)
}

// HandleSignup creates the user and logs them in.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := h.authService.Register(username, password)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return render(c, fiber.StatusUnprocessableEntity, "signup", fiber.Map{
				"Username": username,
				"Errors":   validationErr.ByField(),
			})
		case errors.Is(err, services.ErrDuplicateUsername):
			return render(c, fiber.StatusConflict, "signup", fiber.Map{
				"Username": username,
				"Error":    msgUsernameTaken,
			})
		default:
			return serverError(c, err)
		}
	}

	session, err := h.authService.StartSession(user)
	if err != nil {
		return serverError(c, err)
	}
	if err := h.setSessionCookie(c, session); err != nil {
		return serverError(c, err)
	}
	return c.Redirect("/", fiber.StatusFound)
}

// HandleLoginForm renders the login form, keeping the next parameter.
func (h *AuthHandler) HandleLoginForm(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, "login", fiber.Map{"Next": c.Query("next")})
}

// HandleLogin verifies the credentials and opens a session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	next := c.Query("next", c.FormValue("next"))

	session, err := h.authService.Authenticate(username, password)
	if err != nil {
		data := fiber.Map{"Username": username, "Next": next}
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			data["Errors"] = validationErr.ByField()
			return render(c, fiber.StatusUnprocessableEntity, "login", data)
		case errors.Is(err, services.ErrUnknownUser):
			data["Error"] = msgUnknownUser
			return render(c, fiber.StatusUnauthorized, "login", data)
		case errors.Is(err, services.ErrPasswordMismatch):
			data["Error"] = msgPasswordMismatch
			return render(c, fiber.StatusUnauthorized, "login", data)
		default:
			return serverError(c, err)
		}
	}

	if err := h.setSessionCookie(c, session); err != nil {
		return serverError(c, err)
	}
	return c.Redirect(middleware.SafeNext(next), fiber.StatusFound)
}

// HandleLogout ends the session. It always succeeds.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.Cookies(middleware.SessionCookie)); err != nil {
		logger.Warningf("Failed to revoke session: %v", err)
	}
	c.ClearCookie(middleware.SessionCookie)
	return c.Redirect("/", fiber.StatusFound)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, session *models.Session) error {
	token, err := h.authService.IssueToken(session)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}
