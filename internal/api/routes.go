package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.LanguageMiddleware)

	auth := api.Group("/auth")
	auth.Get("/status", handler.AuthStatus)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Post("/passphrase", handler.AuthRequired, handler.SetPassphrase)

	days := api.Group("/days", handler.AuthRequired)
	days.Get("", handler.GetDays)
	days.Get("/:date", handler.GetDay)
	days.Put("/:date", handler.UpsertDay)
	days.Delete("/:date", handler.DeleteDay)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("", handler.GetSettings)
	settings.Put("", handler.UpdateSettings)

	symptoms := api.Group("/symptoms", handler.AuthRequired)
	symptoms.Get("", handler.GetSymptoms)
	symptoms.Post("", handler.CreateSymptom)
	symptoms.Delete("/:id", handler.DeleteSymptom)

	stats := api.Group("/stats", handler.AuthRequired)
	stats.Get("", handler.GetStats)
	stats.Get("/insights", handler.GetInsights)
	stats.Get("/summary", handler.GetSummary)

	api.Get("/notifications", handler.AuthRequired, handler.GetNotifications)
	api.Get("/export", handler.AuthRequired, handler.ExportBackup)
	api.Post("/import", handler.AuthRequired, handler.ImportBackup)
	api.Post("/reset", handler.AuthRequired, handler.ResetData)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
