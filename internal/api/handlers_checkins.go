package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/fergcraven/coachline/internal/models"
	"github.com/fergcraven/coachline/internal/services"
	"github.com/gofiber/fiber/v2"
)

type submitCheckinRequest struct {
	Wins       string `json:"wins"`
	Challenges string `json:"challenges"`
}

// SubmitCheckin submits the caller's check-in for the current
// week-ending-Saturday. An unsubmitted draft for the same week is
// promoted; a week that's already submitted conflicts.
func (handler *Handler) SubmitCheckin(c *fiber.Ctx) error {
	user := currentUser(c)
	request := submitCheckinRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	today := services.Today(user.Timezone)
	week := services.WeekEndSaturday(today)
	now := time.Now()

	existing, err := handler.repositories.Checkins.ListByClientWeek(user.ID, week.String())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load check-ins")
	}

	rows := make([]services.CheckinRow, 0, len(existing))
	for _, record := range existing {
		rows = append(rows, services.RowFromRecord(record))
	}
	current := services.LatestRow(rows)
	if current != nil && services.SubmittedExplicitly(current) {
		return apiError(c, fiber.StatusConflict, "check-in already submitted for this week")
	}

	if current != nil {
		// Promote the same record the resolver treats as the week's
		// record, not whichever row happens to sort last by id.
		draft := existing[len(existing)-1]
		if id, ok := current["id"].(uint); ok {
			for i := range existing {
				if existing[i].ID == id {
					draft = existing[i]
					break
				}
			}
		}
		draft.SubmittedAt = &now
		draft.Wins = request.Wins
		draft.Challenges = request.Challenges
		if err := handler.repositories.Checkins.Save(&draft); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "could not submit check-in")
		}
		return c.JSON(draft)
	}

	record := models.CheckinRecord{
		ClientID:           user.ID,
		WeekEndingSaturday: week.String(),
		SubmittedAt:        &now,
		Wins:               request.Wins,
		Challenges:         request.Challenges,
	}
	if err := handler.repositories.Checkins.Create(&record); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not submit check-in")
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (handler *Handler) ListCheckins(c *fiber.Ctx) error {
	user := currentUser(c)
	records, err := handler.repositories.Checkins.ListByClient(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load check-ins")
	}
	return c.JSON(fiber.Map{"checkins": records})
}

type reviewCheckinRequest struct {
	Feedback string `json:"feedback"`
}

// ReviewCheckin records trainer feedback on a submitted check-in.
func (handler *Handler) ReviewCheckin(c *fiber.Ctx) error {
	trainer := currentUser(c)
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid check-in id")
	}

	request := reviewCheckinRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	feedback := strings.TrimSpace(request.Feedback)
	if feedback == "" {
		return apiError(c, fiber.StatusBadRequest, "feedback is required")
	}

	record, err := handler.repositories.Checkins.FindByID(uint(id))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load check-in")
	}
	if record == nil {
		return apiError(c, fiber.StatusNotFound, "check-in not found")
	}
	if _, err := handler.requireClientAccess(c, record.ClientID); err != nil {
		return apiError(c, fiber.StatusForbidden, "not your client")
	}
	if !services.SubmittedExplicitly(services.RowFromRecord(*record)) {
		return apiError(c, fiber.StatusConflict, "check-in not submitted yet")
	}

	now := time.Now()
	record.TrainerFeedback = feedback
	record.ReviewedAt = &now
	record.ReviewedBy = trainer.Email
	if err := handler.repositories.Checkins.Save(record); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not save feedback")
	}
	return c.JSON(record)
}

// NextCheckinDate reports the caller's next scheduled cycle date from
// their recurring assignment, defaulting to the coming Saturday when no
// assignment exists.
func (handler *Handler) NextCheckinDate(c *fiber.Ctx) error {
	user := currentUser(c)
	today := services.Today(user.Timezone)

	assignment, found, err := handler.repositories.Assignments.FindByClient(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load schedule")
	}
	if !found {
		return c.JSON(fiber.Map{
			"next_checkin": services.WeekEndSaturday(services.AddDays(today, 1)),
			"frequency":    models.CheckinFrequencyWeekly,
		})
	}

	next := services.NextCycleDate(
		services.CalendarDate(assignment.CheckinStartDate),
		assignment.Frequency,
		today,
	)
	return c.JSON(fiber.Map{
		"next_checkin": next,
		"frequency":    assignment.Frequency,
	})
}
