package handler

import (
	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/domain/application"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc *usecase.Applications
}

func NewApplicationHandler(uc *usecase.Applications) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	a, err := h.uc.Apply(c.Context(), actor, req.JobID, req.CoverLetter)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, a)
}

func (h *ApplicationHandler) ListSubmitted(c fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	items, err := h.uc.ListSubmitted(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, items)
}

func (h *ApplicationHandler) ListForJob(c fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	items, err := h.uc.ListForJob(c.Context(), actor, c.Params("job_id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, items)
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	status, err := statusFromRequest(c)
	if err != nil {
		return err
	}

	a, err := h.uc.UpdateStatus(c.Context(), actor, c.Params("id"), application.Status(status))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application status updated", a)
}
