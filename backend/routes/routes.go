package routes

import (
	"log"

	"asceticism/backend/config"
	"asceticism/backend/controllers"
	"asceticism/backend/middleware"
	"asceticism/backend/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, st *store.SyncedStore, cfg *config.Config, logger *log.Logger) {
	authMiddleware := middleware.AuthMiddleware(cfg)

	// Auth routes
	authController := controllers.NewAuthController(db, st, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Delete("/api/auth/account", authMiddleware, authController.DeleteAccount)

	// Journey routes
	journeyController := controllers.NewJourneyController(st, cfg, logger)
	journey := app.Group("/api/journey", authMiddleware)
	journey.Get("/", journeyController.GetJourney)
	journey.Post("/start", journeyController.StartJourney)
	journey.Post("/reset", journeyController.ResetJourney)
	journey.Put("/theme", journeyController.SetTheme)
	journey.Get("/days/:day", journeyController.GetDay)
	journey.Post("/days/:day/complete", journeyController.CompleteDay)
	journey.Post("/days/:day/practices/:week", journeyController.TogglePractice)

	// Journal routes
	journalController := controllers.NewJournalController(st, cfg, logger)
	journal := app.Group("/api/journal", authMiddleware)
	journal.Get("/", journalController.Timeline)
	journal.Get("/export", journalController.Export)
	journal.Get("/:day", journalController.GetEntry)
	journal.Put("/:day", journalController.PutEntry)
}
