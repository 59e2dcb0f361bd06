package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", metricsHandler())

	api := app.Group("/api", requestMetrics)

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	me := api.Group("/me", handler.AuthRequired)
	me.Get("", handler.CurrentUser)
	me.Put("/timezone", handler.UpdateTimezone)

	logs := api.Group("/logs", handler.AuthRequired)
	logs.Get("", handler.ListHabitLogs)
	logs.Get("/:date", handler.GetHabitLog)
	logs.Post("/:date", handler.UpsertHabitLog)

	checkins := api.Group("/checkins", handler.AuthRequired)
	checkins.Get("", handler.ListCheckins)
	checkins.Get("/next", handler.NextCheckinDate)
	checkins.Post("", handler.SubmitCheckin)
	checkins.Post("/:id/feedback", handler.TrainerOnly, handler.ReviewCheckin)

	dashboard := api.Group("/dashboard", handler.AuthRequired)
	dashboard.Get("", handler.GetOverview)

	reminders := api.Group("/reminders", handler.AuthRequired)
	reminders.Get("/catalog", handler.GetReminderCatalog)
	reminders.Post("/:key/dismiss", handler.DismissReminder)

	trainer := api.Group("/trainer", handler.AuthRequired, handler.TrainerOnly)
	trainer.Get("/clients", handler.ListClients)
	trainer.Get("/clients/:id/overview", handler.GetClientOverview)
	trainer.Post("/clients/:id/schedule", handler.AssignCheckinSchedule)
}
