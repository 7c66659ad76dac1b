package handler

import (
	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MessageHandler struct {
	uc *usecase.Messages
}

func NewMessageHandler(uc *usecase.Messages) *MessageHandler {
	return &MessageHandler{uc: uc}
}

func (h *MessageHandler) Send(c fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	m, err := h.uc.Send(c.Context(), actor, req.ReceiverID, req.Content)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, m)
}

func (h *MessageHandler) Conversation(c fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	thread, err := h.uc.Conversation(c.Context(), actor, c.Params("user_id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, thread)
}

func (h *MessageHandler) Conversations(c fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	convs, err := h.uc.Conversations(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, convs)
}
