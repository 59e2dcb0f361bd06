package api

import (
	"time"

	"github.com/fergcraven/coachline/internal/models"
	"github.com/fergcraven/coachline/internal/services"
	"github.com/gofiber/fiber/v2"
)

type habitLogRequest struct {
	Steps       *int     `json:"steps"`
	SleepHours  *float64 `json:"sleep_hours"`
	WeightValue *float64 `json:"weight_value"`
	WeightUnit  string   `json:"weight_unit"`
	ProteinG    *float64 `json:"protein_g"`
	Notes       string   `json:"notes"`
}

// UpsertHabitLog writes the caller's log for one day. The path date is
// the day bucket in the client's own timezone; writing the same day
// twice replaces the metrics.
func (handler *Handler) UpsertHabitLog(c *fiber.Ctx) error {
	user := currentUser(c)
	logDate, err := services.ParseCalendarDate(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	request := habitLogRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if request.WeightValue != nil && request.WeightUnit != models.WeightUnitKg && request.WeightUnit != models.WeightUnitLb {
		return apiError(c, fiber.StatusBadRequest, "weight requires a unit of kg or lb")
	}

	entry := models.HabitLog{
		ClientID:    user.ID,
		LogDate:     logDate.String(),
		Steps:       request.Steps,
		SleepHours:  request.SleepHours,
		WeightValue: request.WeightValue,
		WeightUnit:  request.WeightUnit,
		ProteinG:    request.ProteinG,
		Notes:       request.Notes,
		UpdatedAt:   time.Now(),
	}
	if err := handler.repositories.HabitLogs.Upsert(&entry); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not save log")
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) GetHabitLog(c *fiber.Ctx) error {
	user := currentUser(c)
	logDate, err := services.ParseCalendarDate(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	entry, found, err := handler.repositories.HabitLogs.FindByClientAndDate(user.ID, logDate.String())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load log")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "no log for that day")
	}
	return c.JSON(entry)
}

func (handler *Handler) ListHabitLogs(c *fiber.Ctx) error {
	user := currentUser(c)

	today := services.Today(user.Timezone)
	from := services.AddDays(today, -(services.DefaultStreakLookback - 1))
	if raw := c.Query("from"); raw != "" {
		parsed, err := services.ParseCalendarDate(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
		from = parsed
	}
	to := today
	if raw := c.Query("to"); raw != "" {
		parsed, err := services.ParseCalendarDate(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
		to = parsed
	}

	entries, err := handler.repositories.HabitLogs.ListByClientRange(user.ID, from.String(), to.String())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load logs")
	}
	return c.JSON(fiber.Map{"logs": entries, "from": from, "to": to})
}
