package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-itc/club-api/internal/config"
	"github.com/campus-itc/club-api/internal/handler"
	"github.com/campus-itc/club-api/internal/middleware"
	"github.com/campus-itc/club-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	NewsHandler             *handler.NewsHandler
	GalleryHandler          *handler.GalleryHandler
	PanelistHandler         *handler.PanelistHandler
	MemberHandler           *handler.MemberHandler
	ApplicationHandler      *handler.ApplicationHandler
	EmailHandler            *handler.EmailHandler
	AuthHandler             *handler.AuthHandler
	AdminMemberHandler      *handler.AdminMemberHandler
	AdminApplicationHandler *handler.AdminApplicationHandler
	AdminNewsHandler        *handler.AdminNewsHandler
	AdminGalleryHandler     *handler.AdminGalleryHandler
	AdminPanelistHandler    *handler.AdminPanelistHandler
	AdminUserHandler        *handler.AdminUserHandler
	AdminSettingsHandler    *handler.AdminSettingsHandler
	AdminActivityHandler    *handler.AdminActivityHandler
	JWTMiddleware           fiber.Handler
	EmailRateLimit          fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Public site endpoints
	if deps.NewsHandler != nil {
		deps.NewsHandler.Register(api.Group("/news"))
	}
	if deps.GalleryHandler != nil {
		deps.GalleryHandler.Register(api.Group("/gallery"))
	}
	if deps.PanelistHandler != nil {
		deps.PanelistHandler.Register(api.Group("/panelists"))
	}
	if deps.MemberHandler != nil {
		deps.MemberHandler.Register(api.Group("/members"))
	}
	if deps.ApplicationHandler != nil {
		deps.ApplicationHandler.Register(api.Group("/apply"))
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Outbound email endpoint, authenticated and rate limited
	if deps.EmailHandler != nil {
		emailGroup := api.Group("/send-email", jwtMiddleware)
		if deps.EmailRateLimit != nil {
			emailGroup.Use(deps.EmailRateLimit)
		}
		deps.EmailHandler.Register(emailGroup)
	}

	// Back office
	admin := api.Group("/admin")
	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterPublic(admin)
	}

	protected := admin.Group("", jwtMiddleware)
	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterProtected(protected)
	}
	if deps.AdminMemberHandler != nil {
		deps.AdminMemberHandler.Register(protected.Group("/members", middleware.RequireSection(middleware.SectionMembers)))
	}
	if deps.AdminApplicationHandler != nil {
		deps.AdminApplicationHandler.Register(protected.Group("/applications", middleware.RequireSection(middleware.SectionApplications)))
	}
	if deps.AdminNewsHandler != nil {
		deps.AdminNewsHandler.Register(protected.Group("/news", middleware.RequireSection(middleware.SectionNews)))
	}
	if deps.AdminGalleryHandler != nil {
		deps.AdminGalleryHandler.Register(protected.Group("/gallery", middleware.RequireSection(middleware.SectionGallery)))
	}
	if deps.AdminPanelistHandler != nil {
		deps.AdminPanelistHandler.Register(protected.Group("/panel", middleware.RequireSection(middleware.SectionPanel)))
	}
	if deps.AdminUserHandler != nil {
		deps.AdminUserHandler.Register(protected.Group("/users", middleware.RequireSection(middleware.SectionUsers)))
	}
	if deps.AdminSettingsHandler != nil {
		deps.AdminSettingsHandler.Register(protected.Group("/settings", middleware.RequireSection(middleware.SectionSettings)))
	}
	if deps.AdminActivityHandler != nil {
		deps.AdminActivityHandler.Register(protected.Group("/activity", middleware.RequireSection(middleware.SectionActivity)))
	}
}
