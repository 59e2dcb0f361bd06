package api

import (
	"time"

	"github.com/fergcraven/coachline/internal/services"
	"github.com/gofiber/fiber/v2"
)

// GetOverview returns everything the client dashboard renders: streak,
// rolling trends, check-in cycle status, reminders, and alerts,
// evaluated for the caller's current local day.
func (handler *Handler) GetOverview(c *fiber.Ctx) error {
	user := currentUser(c)
	overview := handler.overview.BuildOverview(user.ID, user.Timezone, time.Now())
	return c.JSON(overview)
}

func (handler *Handler) GetReminderCatalog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"catalog": services.ReminderCatalog()})
}

// DismissReminder suppresses one reminder for the caller for their
// current local day. Dismissing twice is fine; the write is idempotent.
func (handler *Handler) DismissReminder(c *fiber.Ctx) error {
	user := currentUser(c)
	key := c.Params("key")

	known := false
	for _, definition := range services.ReminderCatalog() {
		if definition.Key == key {
			known = true
			break
		}
	}
	if !known {
		return apiError(c, fiber.StatusNotFound, "unknown reminder key")
	}

	today := services.Today(user.Timezone)
	if err := handler.repositories.Dismissals.Record(user.ID, key, today.String()); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not dismiss reminder")
	}
	return c.JSON(fiber.Map{"dismissed": key, "for_date": today})
}
