package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/orchid/internal/config"
	"github.com/example/orchid/internal/database"
	"github.com/example/orchid/internal/reminder"
	"github.com/example/orchid/internal/routes"
	"github.com/example/orchid/internal/scheduler"
	"github.com/example/orchid/internal/services"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	mailService := services.NewMailService(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName)

	sweeper := reminder.NewSweeper(reminder.NewStore(db), mailService, reminder.Config{
		Staleness:       cfg.ReminderStaleness,
		Cap:             cfg.ReminderCap,
		DiscountPercent: cfg.ReminderDiscount,
		CodeLength:      cfg.DiscountCodeLength,
		CodeTTL:         cfg.DiscountCodeTTL,
		SendTimeout:     cfg.MailSendTimeout,
	})

	sched := scheduler.New()
	if err := sched.Add(cfg.ReminderCron, "abandoned-cart-reminder", sweeper.Run); err != nil {
		log.Fatalf("failed to schedule reminder sweep: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName: "Orchid Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg, sweeper)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
