// Package server assembles the Fiber application from its repositories.
package server

import (
	"time"

	"mechadex/internal/config"
	"mechadex/internal/handlers"
	"mechadex/internal/middleware"
	"mechadex/internal/repositories"
	"mechadex/internal/services"
	"mechadex/internal/views"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Repositories groups the storage the application runs on.
type Repositories struct {
	Users    repositories.UserRepository
	Sessions repositories.SessionRepository
	Mechs    repositories.MechRepository
	Attacks  repositories.AttackRepository
}

// NewGORMRepositories returns repositories backed by db.
func NewGORMRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:    repositories.NewGORMUserRepository(db),
		Sessions: repositories.NewGORMSessionRepository(db),
		Mechs:    repositories.NewGORMMechRepository(db),
		Attacks:  repositories.NewGORMAttackRepository(db),
	}
}

// NewMemoryRepositories returns process-local repositories; nothing survives
// a restart.
func NewMemoryRepositories() Repositories {
	mechs, attacks := repositories.NewMockCatalog()
	return Repositories{
		Users:    repositories.NewMockUserRepository(),
		Sessions: repositories.NewMockSessionRepository(),
		Mechs:    mechs,
		Attacks:  attacks,
	}
}

// NewApp builds the application. publisher may be nil, which disables
// catalogue events.
func NewApp(cfg *config.Config, repos Repositories, publisher services.EventPublisher) *fiber.App {
	authService := services.NewAuthService(repos.Users, repos.Sessions, cfg.SessionSecret, cfg.SessionTTL)
	catalogService := services.NewCatalogService(repos.Mechs, repos.Attacks, publisher)

	app := fiber.New(fiber.Config{
		AppName:               "mechadex",
		// form values outlive the request in the in-memory repositories
		Immutable:             true,
		Views:                 views.New(),
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: !cfg.IsDevelopment(),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.LoadUser(authService))
	if cfg.CSRFEnabled {
		app.Use(middleware.CSRF(!cfg.IsDevelopment()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	guard := middleware.AuthRequired()
	handlers.NewAuthHandler(authService, !cfg.IsDevelopment()).RegisterRoutes(app)
	handlers.NewMechHandler(catalogService).RegisterRoutes(app, guard)
	handlers.NewAttackHandler(catalogService).RegisterRoutes(app, guard)

	return app
}
