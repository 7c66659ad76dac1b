package handler

import (
	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/pkg/jwt"
	"job-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type RealtimeHandler struct {
	tickets jwt.Service
}

func NewRealtimeHandler(tickets jwt.Service) *RealtimeHandler {
	return &RealtimeHandler{tickets: tickets}
}

// Ticket issues a short-lived token a browser can pass as ?ticket= when it
// cannot attach cookies to the websocket handshake.
func (h *RealtimeHandler) Ticket(c fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	tok, exp, err := h.tickets.GenerateRealtimeTicket(actor.ID)
	if err != nil {
		return err
	}
	return response.OK(c, dto.RealtimeTicketResponse{Ticket: tok, ExpiresAt: exp})
}
