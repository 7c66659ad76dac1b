package handler

import (
	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc *usecase.Users
}

func NewUserHandler(uc *usecase.Users) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.ProfileUpdateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	u, err := h.uc.UpdateProfile(c.Context(), actor, req.ToUpdate())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, u)
}

func (h *UserHandler) Get(c fiber.Ctx) error {
	u, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, u)
}
