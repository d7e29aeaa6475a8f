package api

import (
	"time"

	"campaignmanager/middleware"
	"campaignmanager/storage"
	"campaignmanager/utils"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the JSON API and the health check on app
func RegisterRoutes(app *fiber.App, store *storage.Store) {
	authHandler := NewAuthHandler(store.Users, store.Sessions)
	campaignHandler := NewCampaignHandler(store.Campaigns)
	dataHandler := NewDataHandler(store)
	i18nHandler := &I18nHandler{}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	apiRoutes := app.Group("/api")

	// Public routes
	apiRoutes.Post("/auth/signup", authHandler.Signup)
	apiRoutes.Post("/auth/login", authHandler.Login)
	apiRoutes.Post("/auth/logout", authHandler.Logout)
	apiRoutes.Get("/i18n/:lang", i18nHandler.GetTranslations)
	apiRoutes.Get("/csrf", middleware.CSRFToken())

	// Protected routes
	protected := apiRoutes.Group("", middleware.RequireSession(store.Sessions))
	{
		protected.Get("/auth/me", authHandler.Me)

		protected.Get("/campaigns", campaignHandler.List)
		protected.Get("/campaigns/stats", campaignHandler.Stats)
		protected.Post("/campaigns", campaignHandler.Create)
		protected.Get("/campaigns/:id", campaignHandler.Get)
		protected.Put("/campaigns/:id", campaignHandler.Update)
		protected.Delete("/campaigns/:id", campaignHandler.Delete)
		protected.Post("/campaigns/:id/duplicate", campaignHandler.Duplicate)

		protected.Get("/data/export", dataHandler.Export)
		protected.Post("/data/import", dataHandler.Import)
		protected.Get("/data/integrity", dataHandler.Integrity)
		protected.Get("/data/info", dataHandler.Info)
		protected.Post("/data/reset", dataHandler.Reset)
	}

	// 404 Handler for undefined routes
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundError("error_404", "Not found", nil)
	})
}
