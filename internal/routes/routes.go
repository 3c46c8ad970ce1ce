package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/example/orchid/internal/config"
	"github.com/example/orchid/internal/handlers"
	"github.com/example/orchid/internal/middleware"
	"github.com/example/orchid/internal/reminder"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, sweeper *reminder.Sweeper) {
	cartHandler := handlers.NewCartHandler(db)
	discountHandler := handlers.NewDiscountHandler(db)
	opsHandler := handlers.NewOpsHandler(db, sweeper)

	app.Get("/healthz", opsHandler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	// Sweep operations
	sweep := protected.Group("/sweep")
	sweep.Post("/run", opsHandler.TriggerSweep)
	sweep.Get("/status", opsHandler.SweepStatus)

	protected.Get("/cart", cartHandler.GetCart)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Delete("/cart/items/:id", cartHandler.RemoveItem)

	protected.Get("/discount-codes", discountHandler.ListCodes)
	protected.Get("/discount-codes/:code", discountHandler.ValidateCode)
	protected.Post("/discount-codes/:code/redeem", discountHandler.RedeemCode)
}
