package app

import (
	"fmt"
	"net/http"
	"strings"

	"job-portal/internal/delivery/http/handler"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/delivery/http/routes"
	"job-portal/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	Fiber *fiber.App

	// Realtime serves /ws. Gorilla needs a hijackable net/http connection,
	// which fiber's adaptor does not provide.
	Realtime http.Handler
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	mux := http.NewServeMux()
	mux.Handle("/ws", ws.NewHandler(c.Hub, c.Gate, c.Tickets, c.Config.CORS.AllowOrigins, c.Logger))

	return &App{Fiber: f, Realtime: mux}
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.Metrics())
	app.Use(corsMiddleware(c.Config.CORS.AllowOrigins))
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

func corsMiddleware(origins []string) fiber.Handler {
	cfg := cors.Config{
		AllowCredentials: true,
		AllowMethods:     []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions},
		AllowHeaders:     []string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, fiber.HeaderAuthorization},
	}

	wildcard := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
	}
	if wildcard {
		// Credentials forbid a literal "*"; reflect the caller's origin instead.
		cfg.AllowOriginsFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func registerRoutes(app *fiber.App, c *Container) {
	authMw := middleware.NewAuthMiddleware(c.Gate, c.Logger)

	reg := &routes.Registry{
		Health:       handler.NewHealthHandler(c.Config.App.AppName, c.DB),
		Auth:         handler.NewAuthHandler(c.Auth, c.Config.Auth.CookieSecure),
		Users:        handler.NewUserHandler(c.Users),
		Jobs:         handler.NewJobHandler(c.Jobs),
		Applications: handler.NewApplicationHandler(c.Applications),
		Messages:     handler.NewMessageHandler(c.Messages),
		Reviews:      handler.NewReviewHandler(c.Reviews),
		Realtime:     handler.NewRealtimeHandler(c.Tickets),

		Metrics: promhttp.Handler(),

		AuthMw:  authMw,
		Limiter: middleware.NewRateLimiter(c.RateCounter, c.Config.RateLimit.RequestsPerMinute, c.Logger),
	}
	reg.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
