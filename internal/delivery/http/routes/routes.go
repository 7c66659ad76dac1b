package routes

import (
	"net/http"

	"job-portal/internal/delivery/http/handler"
	"job-portal/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

const (
	scopeSession = "auth_session"
	scopeMessage = "messages"
)

type Registry struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Jobs         *handler.JobHandler
	Applications *handler.ApplicationHandler
	Messages     *handler.MessageHandler
	Reviews      *handler.ReviewHandler
	Realtime     *handler.RealtimeHandler

	Metrics http.Handler

	AuthMw  *middleware.AuthMiddleware
	Limiter *middleware.RateLimiter
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.Health.RegisterRoutes(app)
	if r.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(r.Metrics))
	}

	r.registerAPI(app.Group("/api", r.AuthMw.Optional()))
}

func (r *Registry) registerAPI(api fiber.Router) {
	auth := r.AuthMw.Require()

	api.Post("/auth/session", r.Limiter.Limit(scopeSession), r.Auth.Session)
	api.Get("/auth/me", auth, r.Auth.Me)
	api.Post("/auth/logout", r.Auth.Logout)

	api.Put("/users/profile", auth, r.Users.UpdateProfile)
	api.Get("/users/:id", r.Users.Get)

	api.Post("/jobs", auth, r.Jobs.Create)
	api.Get("/jobs", r.Jobs.List)
	api.Get("/jobs/my/posted", auth, r.Jobs.ListPosted)
	api.Get("/jobs/:id", r.Jobs.Get)
	api.Put("/jobs/:id/status", auth, r.Jobs.UpdateStatus)

	api.Post("/applications", auth, r.Applications.Apply)
	api.Get("/applications/my/submitted", auth, r.Applications.ListSubmitted)
	api.Get("/applications/job/:job_id", auth, r.Applications.ListForJob)
	api.Put("/applications/:id/status", auth, r.Applications.UpdateStatus)

	api.Post("/messages", auth, r.Limiter.Limit(scopeMessage), r.Messages.Send)
	api.Get("/messages/conversations", auth, r.Messages.Conversations)
	api.Get("/messages/conversation/:user_id", auth, r.Messages.Conversation)

	api.Post("/reviews", auth, r.Reviews.Create)
	api.Get("/reviews/user/:id", r.Reviews.ListFor)
	api.Get("/reviews/stats/:id", r.Reviews.Stats)

	api.Get("/realtime/ticket", auth, r.Realtime.Ticket)
}
