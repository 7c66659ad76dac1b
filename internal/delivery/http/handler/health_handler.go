package handler

import (
	"context"
	"time"

	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	appName string
	db      Pinger
}

func NewHealthHandler(appName string, db Pinger) *HealthHandler {
	return &HealthHandler{appName: appName, db: db}
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	return response.OK(c, dto.HealthResponse{Status: "ok", App: h.appName})
}

func (h *HealthHandler) Ready(c fiber.Ctx) error {
	if h.db == nil {
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "database not configured", nil, nil)
	}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "database unavailable", nil, err)
	}
	return response.OK(c, dto.HealthResponse{Status: "ready", App: h.appName})
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
}
