package usecase

import (
	"context"
	"errors"
	"strings"

	"job-portal/internal/domain/job"
	"job-portal/internal/domain/user"
	"job-portal/internal/pkg/ids"
)

const (
	DefaultJobListLimit = 50
	MaxJobListLimit     = 100
)

type CreateJobInput struct {
	Title            string
	Description      string
	JobType          string
	SalaryType       []string
	SalaryMin        *float64
	SalaryMax        *float64
	SalaryNegotiable bool
	City             string
	Area             string
	Latitude         *float64
	Longitude        *float64
	Requirements     *string
}

type Jobs struct {
	base
	jobs job.Repository
}

func NewJobs(jobs job.Repository, opts ...Option) *Jobs {
	return &Jobs{base: newBase(opts), jobs: jobs}
}

func (u *Jobs) Create(ctx context.Context, actor user.User, in CreateJobInput) (job.Job, error) {
	if !actor.IsEmployer() {
		return job.Job{}, fail(ErrForbidden, "Only employers can post jobs")
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return job.Job{}, fail(ErrInvalidInput, "title and description are required")
	}
	if !job.ValidType(in.JobType) {
		return job.Job{}, fail(ErrInvalidInput, "job_type must be one of full_time, part_time, remote")
	}
	for _, st := range in.SalaryType {
		if !job.ValidSalaryType(st) {
			return job.Job{}, fail(ErrInvalidInput, "salary_type entries must be daily, weekly or monthly")
		}
	}
	if strings.TrimSpace(in.City) == "" || strings.TrimSpace(in.Area) == "" {
		return job.Job{}, fail(ErrInvalidInput, "city and area are required")
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMin > *in.SalaryMax {
		return job.Job{}, fail(ErrInvalidInput, "salary_min must not exceed salary_max")
	}

	salaryType := in.SalaryType
	if salaryType == nil {
		salaryType = []string{}
	}

	now := u.now()
	j := job.Job{
		ID:               ids.New(ids.PrefixJob),
		EmployerID:       actor.ID,
		EmployerName:     actor.Name,
		Title:            strings.TrimSpace(in.Title),
		Description:      strings.TrimSpace(in.Description),
		JobType:          in.JobType,
		SalaryType:       salaryType,
		SalaryMin:        in.SalaryMin,
		SalaryMax:        in.SalaryMax,
		SalaryNegotiable: in.SalaryNegotiable,
		City:             strings.TrimSpace(in.City),
		Area:             strings.TrimSpace(in.Area),
		Latitude:         in.Latitude,
		Longitude:        in.Longitude,
		Requirements:     in.Requirements,
		Status:           job.StatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := u.jobs.Create(ctx, j); err != nil {
		return job.Job{}, internal("create job", err)
	}

	u.logger.Printf("[Jobs] created job_id=%s employer_id=%s", j.ID, j.EmployerID)
	return j, nil
}

// List returns active jobs matching f, newest first. Zero Limit means the
// default page size.
func (u *Jobs) List(ctx context.Context, f job.ListFilter) ([]job.Job, error) {
	if f.Skip < 0 {
		return nil, fail(ErrInvalidInput, "skip must not be negative")
	}
	if f.Limit == 0 {
		f.Limit = DefaultJobListLimit
	}
	if f.Limit < 1 || f.Limit > MaxJobListLimit {
		return nil, fail(ErrInvalidInput, "limit must be between 1 and 100")
	}
	if (f.MinSalary != nil && *f.MinSalary < 0) || (f.MaxSalary != nil && *f.MaxSalary < 0) {
		return nil, fail(ErrInvalidInput, "salary filters must not be negative")
	}
	f.JobType = strings.TrimSpace(f.JobType)
	f.City = strings.TrimSpace(f.City)
	f.Search = strings.TrimSpace(f.Search)

	items, err := u.jobs.List(ctx, f)
	if err != nil {
		return nil, internal("list jobs", err)
	}
	return items, nil
}

func (u *Jobs) Get(ctx context.Context, id string) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, fail(ErrNotFound, "Job not found")
		}
		return job.Job{}, internal("get job", err)
	}
	return j, nil
}

func (u *Jobs) ListPosted(ctx context.Context, actor user.User) ([]job.Job, error) {
	if !actor.IsEmployer() {
		return nil, fail(ErrForbidden, "Only employers can view posted jobs")
	}
	items, err := u.jobs.ListByEmployer(ctx, actor.ID)
	if err != nil {
		return nil, internal("list employer jobs", err)
	}
	return items, nil
}

func (u *Jobs) UpdateStatus(ctx context.Context, actor user.User, id string, status job.Status) (job.Job, error) {
	if !status.Valid() {
		return job.Job{}, fail(ErrInvalidInput, "status must be one of active, closed, filled")
	}

	j, err := u.Get(ctx, id)
	if err != nil {
		return job.Job{}, err
	}
	if !j.OwnedBy(actor.ID) {
		return job.Job{}, fail(ErrForbidden, "Not authorized")
	}

	now := u.now()
	if err := u.jobs.UpdateStatus(ctx, j.ID, status, now); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, fail(ErrNotFound, "Job not found")
		}
		return job.Job{}, internal("update job status", err)
	}

	j.Status = status
	j.UpdatedAt = now
	return j, nil
}
