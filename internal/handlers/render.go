package handlers

import (
	"errors"
	"net/url"
	"strconv"

	"mechadex/internal/logger"
	"mechadex/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// FlashCookie carries a one-shot message to the next rendered page.
const FlashCookie = "mechadex_flash"

// render executes page with the data every template expects: the current
// user, a pending flash message and the per-field errors.
func render(c *fiber.Ctx, status int, page string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["CurrentUser"] = middleware.CurrentUser(c)
	data["CSRFToken"] = middleware.CSRFToken(c)
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}
	if msg := popFlash(c); msg != "" {
		data["Flash"] = msg
	}
	return c.Status(status).Render(page, data)
}

func setFlash(c *fiber.Ctx, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     FlashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func popFlash(c *fiber.Ctx) string {
	raw := c.Cookies(FlashCookie)
	if raw == "" {
		return ""
	}
	c.ClearCookie(FlashCookie)
	msg, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return msg
}

// redirectWithFlash stores msg for the next page and redirects there.
func redirectWithFlash(c *fiber.Ctx, location, msg string) error {
	setFlash(c, msg)
	return c.Redirect(location, fiber.StatusFound)
}

func notFound(c *fiber.Ctx, msg string) error {
	return render(c, fiber.StatusNotFound, "not_found", fiber.Map{"Message": msg})
}

func serverError(c *fiber.Ctx, err error) error {
	logger.Errorf("Request %s %s failed: %v", c.Method(), c.OriginalURL(), err)
	return render(c, fiber.StatusInternalServerError, "error", fiber.Map{
		"Message": "The server could not complete the request.",
	})
}

// paramID parses a positive numeric route parameter.
func paramID(c *fiber.Ctx, key string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(key), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ErrorHandler renders errors that escape the handlers, including
// unmatched routes and recovered panics.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusNotFound {
		return notFound(c, "The page you requested does not exist.")
	}
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		return render(c, fiberErr.Code, "error", fiber.Map{"Message": fiberErr.Message})
	}
	return serverError(c, err)
}
