package handler

import (
	"fmt"
	"strconv"
	"strings"

	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/domain/job"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	uc *usecase.Jobs
}

func NewJobHandler(uc *usecase.Jobs) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	if !actor.IsEmployer() {
		return middleware.NewAppError(fiber.StatusForbidden, "Only employers can post jobs", nil, nil)
	}

	var req dto.CreateJobRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	j, err := h.uc.Create(c.Context(), actor, req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, j)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	f, err := parseListFilter(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), f)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, items)
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	j, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, j)
}

func (h *JobHandler) ListPosted(c fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	items, err := h.uc.ListPosted(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, items)
}

func (h *JobHandler) UpdateStatus(c fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	status, err := statusFromRequest(c)
	if err != nil {
		return err
	}

	j, err := h.uc.UpdateStatus(c.Context(), actor, c.Params("id"), job.Status(status))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job status updated", j)
}

func parseListFilter(c fiber.Ctx) (job.ListFilter, error) {
	f := job.ListFilter{
		JobType: c.Query("job_type"),
		City:    c.Query("city"),
		Search:  c.Query("search"),
	}

	var err error
	if f.Skip, err = queryInt(c, "skip", 0); err != nil {
		return job.ListFilter{}, err
	}
	if f.Limit, err = queryInt(c, "limit", usecase.DefaultJobListLimit); err != nil {
		return job.ListFilter{}, err
	}
	// An explicit limit=0 is a bad value, not a request for the default.
	if f.Limit < 1 || f.Limit > usecase.MaxJobListLimit {
		return job.ListFilter{}, middleware.NewAppError(fiber.StatusBadRequest,
			fmt.Sprintf("limit must be between 1 and %d", usecase.MaxJobListLimit), nil, nil)
	}
	if f.MinSalary, err = queryFloat(c, "min_salary"); err != nil {
		return job.ListFilter{}, err
	}
	if f.MaxSalary, err = queryFloat(c, "max_salary"); err != nil {
		return job.ListFilter{}, err
	}
	return f, nil
}

func queryInt(c fiber.Ctx, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, key+" must be an integer", nil, err)
	}
	return v, nil
}

func queryFloat(c fiber.Ctx, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, key+" must be a number", nil, err)
	}
	return &v, nil
}

// statusFromRequest reads the target status from a JSON body, falling back
// to the ?status= query parameter.
func statusFromRequest(c fiber.Ctx) (string, error) {
	var req dto.StatusRequest
	if err := decodeBody(c, &req); err != nil {
		return "", err
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = strings.TrimSpace(c.Query("status"))
	}
	if status == "" {
		return "", middleware.NewAppError(fiber.StatusBadRequest, "status is required", nil, nil)
	}
	return status, nil
}
