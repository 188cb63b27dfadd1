package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Get("/route", handler.AuthRequired, handler.Route)

	onboarding := api.Group("/onboarding", handler.AuthRequired, handler.CustomerOnly)
	onboarding.Post("/situation", handler.OnboardingSituation)
	onboarding.Post("/property", handler.OnboardingProperty)
	onboarding.Post("/complete", handler.OnboardingComplete)
	onboarding.Post("/skip", handler.OnboardingSkip)

	handymanOnboarding := api.Group("/handyman/onboarding", handler.AuthRequired, handler.HandymanOnly)
	handymanOnboarding.Post("/step/:step", handler.HandymanOnboardingStep)
	handymanOnboarding.Post("/complete", handler.HandymanOnboardingComplete)
	handymanOnboarding.Post("/skip", handler.HandymanOnboardingSkip)

	requests := api.Group("/requests", handler.AuthRequired, handler.CustomerOnly)
	requests.Post("/validate/:step", handler.ValidateRequestStep)
	requests.Post("", handler.SubmitRequest)
	requests.Get("", handler.ListRequests)
	requests.Get("/:id/draft", handler.RequestDraftForEdit)
	requests.Put("/:id", handler.UpdateRequest)
	requests.Post("/:id/cancel", handler.CancelRequest)

	api.Get("/dashboard", handler.AuthRequired, handler.CustomerOnly, handler.CustomerDashboard)
	api.Get("/properties", handler.AuthRequired, handler.CustomerOnly, handler.ListProperties)
	api.Put("/properties/:id", handler.AuthRequired, handler.CustomerOnly, handler.UpdateProperty)

	jobs := api.Group("/jobs", handler.AuthRequired)
	jobs.Get("", handler.HandymanOnly, handler.Jobs)
	jobs.Get("/:id", handler.JobByID)
	jobs.Post("/:id/like", handler.HandymanOnly, handler.ToggleJobLike)
	jobs.Post("/:id/bids", handler.HandymanOnly, handler.CreateBid)
	jobs.Get("/:id/bids", handler.BidsForJob)

	bids := api.Group("/bids", handler.AuthRequired)
	bids.Get("", handler.HandymanOnly, handler.MyBids)
	bids.Post("/:bidId/accept", handler.CustomerOnly, handler.AcceptBid)
	bids.Post("/:bidId/reject", handler.CustomerOnly, handler.RejectBid)
	bids.Post("/:bidId/withdraw", handler.HandymanOnly, handler.WithdrawBid)

	contractor := api.Group("/contractor", handler.AuthRequired, handler.HandymanOnly)
	contractor.Get("/stats", handler.ContractorStats)
	contractor.Get("/projects", handler.ContractorProjects)
	contractor.Get("/calendar", handler.ContractorCalendar)
	contractor.Get("/profile", handler.HandymanProfile)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Put("/profile", handler.UpdateProfile)
	settings.Get("/app", handler.AppSettings)
	settings.Put("/app", handler.SaveAppSettings)
	settings.Post("/change-password", handler.ChangePassword)
	settings.Post("/restart-onboarding", handler.RestartOnboarding)
	settings.Delete("/account", handler.DeleteAccount)

	data := api.Group("/data", handler.AuthRequired)
	data.Get("/export", handler.ExportSnapshot)
	data.Post("/import", handler.ImportSnapshot)
}
