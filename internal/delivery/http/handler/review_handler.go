package handler

import (
	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ReviewHandler struct {
	uc *usecase.Reviews
}

func NewReviewHandler(uc *usecase.Reviews) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

func (h *ReviewHandler) Create(c fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.CreateReviewRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	rv, err := h.uc.Create(c.Context(), actor, req.ReviewedID, req.Rating, req.Comment)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, rv)
}

func (h *ReviewHandler) ListFor(c fiber.Ctx) error {
	items, err := h.uc.ListFor(c.Context(), c.Params("id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, items)
}

func (h *ReviewHandler) Stats(c fiber.Ctx) error {
	st, err := h.uc.Stats(c.Context(), c.Params("id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, st)
}
