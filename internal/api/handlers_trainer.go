package api

import (
	"strconv"
	"time"

	"github.com/fergcraven/coachline/internal/models"
	"github.com/fergcraven/coachline/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListClients(c *fiber.Ctx) error {
	trainer := currentUser(c)
	clients, err := handler.repositories.Users.ListClientsOfTrainer(trainer.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load clients")
	}

	responses := make([]userResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, toUserResponse(&clients[i]))
	}
	return c.JSON(fiber.Map{"clients": responses})
}

// GetClientOverview gives a trainer the same derived dashboard their
// client sees, evaluated in the client's timezone.
func (handler *Handler) GetClientOverview(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid client id")
	}

	client, err := handler.requireClientAccess(c, uint(id))
	if err != nil {
		return apiError(c, fiber.StatusForbidden, "not your client")
	}

	overview := handler.overview.BuildOverview(client.ID, client.Timezone, time.Now())
	return c.JSON(overview)
}

type assignScheduleRequest struct {
	StartDate string `json:"start_date"`
	Frequency string `json:"frequency"`
}

func (handler *Handler) AssignCheckinSchedule(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid client id")
	}

	client, err := handler.requireClientAccess(c, uint(id))
	if err != nil {
		return apiError(c, fiber.StatusForbidden, "not your client")
	}

	request := assignScheduleRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	startDate, err := services.ParseCalendarDate(request.StartDate)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	switch request.Frequency {
	case models.CheckinFrequencyWeekly, models.CheckinFrequencyBiweekly, models.CheckinFrequencyMonthly:
	default:
		return apiError(c, fiber.StatusBadRequest, "frequency must be weekly, biweekly, or monthly")
	}

	assignment := models.CheckinAssignment{
		ClientID:         client.ID,
		CheckinStartDate: startDate.String(),
		Frequency:        request.Frequency,
		UpdatedAt:        time.Now(),
	}
	if err := handler.repositories.Assignments.Upsert(&assignment); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not save schedule")
	}

	next := services.NextCycleDate(startDate, request.Frequency, services.Today(client.Timezone))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"assignment":   assignment,
		"next_checkin": next,
	})
}
