package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/orchid/internal/reminder"
)

// OpsHandler exposes health and sweep-operations endpoints.
type OpsHandler struct {
	db      *gorm.DB
	sweeper *reminder.Sweeper
}

// NewOpsHandler constructs OpsHandler.
func NewOpsHandler(db *gorm.DB, sweeper *reminder.Sweeper) *OpsHandler {
	return &OpsHandler{db: db, sweeper: sweeper}
}

// Health reports process and database liveness.
func (h *OpsHandler) Health(c *fiber.Ctx) error {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"status":  "degraded",
		})
	}

	return c.JSON(fiber.Map{"success": true, "status": "ok"})
}

// TriggerSweep kicks off a sweep run outside the schedule. The run happens
// in the background; an in-flight run makes this a no-op.
func (h *OpsHandler) TriggerSweep(c *fiber.Ctx) error {
	go func() {
		if err := h.sweeper.Run(context.Background()); err != nil {
			log.Printf("[Ops] manual sweep failed: %v", err)
		}
	}()

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"message": "sweep triggered",
	})
}

// SweepStatus returns stats for the most recent completed sweep run.
func (h *OpsHandler) SweepStatus(c *fiber.Ctx) error {
	last := h.sweeper.LastRun()
	if last == nil {
		return c.JSON(fiber.Map{"success": true, "data": nil, "message": "no completed runs yet"})
	}

	return c.JSON(fiber.Map{"success": true, "data": last})
}
