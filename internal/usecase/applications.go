package usecase

import (
	"context"
	"errors"
	"strings"

	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/user"
	"job-portal/internal/pkg/ids"
)

type Applications struct {
	base
	applications application.Repository
	jobs         job.Repository
}

func NewApplications(applications application.Repository, jobs job.Repository, opts ...Option) *Applications {
	return &Applications{base: newBase(opts), applications: applications, jobs: jobs}
}

// Apply files an application from a job seeker. At most one application per
// (job, job seeker) exists; the repository enforces this under concurrency.
func (u *Applications) Apply(ctx context.Context, actor user.User, jobID string, coverLetter *string) (application.Application, error) {
	if !actor.IsJobSeeker() {
		return application.Application{}, fail(ErrForbidden, "Only job seekers can apply")
	}
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return application.Application{}, fail(ErrInvalidInput, "job_id is required")
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, fail(ErrNotFound, "Job not found")
		}
		return application.Application{}, internal("get job", err)
	}
	if j.Status != job.StatusActive {
		return application.Application{}, fail(ErrInvalidInput, "Job is not accepting applications")
	}

	if _, err := u.applications.FindByJobAndSeeker(ctx, j.ID, actor.ID); err == nil {
		return application.Application{}, fail(ErrDuplicate, "Already applied to this job")
	} else if !errors.Is(err, application.ErrNotFound) {
		return application.Application{}, internal("find application", err)
	}

	a := application.Application{
		ID:             ids.New(ids.PrefixApplication),
		JobID:          j.ID,
		JobTitle:       j.Title,
		JobSeekerID:    actor.ID,
		JobSeekerName:  actor.Name,
		JobSeekerEmail: actor.Email,
		EmployerID:     j.EmployerID,
		CoverLetter:    coverLetter,
		Status:         application.StatusPending,
		CreatedAt:      u.now(),
	}
	if err := u.applications.Create(ctx, a); err != nil {
		if errors.Is(err, application.ErrDuplicate) {
			return application.Application{}, fail(ErrDuplicate, "Already applied to this job")
		}
		return application.Application{}, internal("create application", err)
	}

	u.logger.Printf("[Applications] created application_id=%s job_id=%s job_seeker_id=%s", a.ID, a.JobID, a.JobSeekerID)
	return a, nil
}

func (u *Applications) ListSubmitted(ctx context.Context, actor user.User) ([]application.Application, error) {
	if !actor.IsJobSeeker() {
		return nil, fail(ErrForbidden, "Only job seekers can view their applications")
	}
	items, err := u.applications.ListByJobSeeker(ctx, actor.ID)
	if err != nil {
		return nil, internal("list applications", err)
	}
	return items, nil
}

func (u *Applications) ListForJob(ctx context.Context, actor user.User, jobID string) ([]application.Application, error) {
	j, err := u.jobs.GetByID(ctx, strings.TrimSpace(jobID))
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return nil, fail(ErrNotFound, "Job not found")
		}
		return nil, internal("get job", err)
	}
	if !j.OwnedBy(actor.ID) {
		return nil, fail(ErrForbidden, "Not authorized")
	}

	items, err := u.applications.ListByJob(ctx, j.ID)
	if err != nil {
		return nil, internal("list job applications", err)
	}
	return items, nil
}

func (u *Applications) UpdateStatus(ctx context.Context, actor user.User, id string, status application.Status) (application.Application, error) {
	if !status.Valid() {
		return application.Application{}, fail(ErrInvalidInput, "status must be one of pending, accepted, rejected")
	}

	a, err := u.applications.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, fail(ErrNotFound, "Application not found")
		}
		return application.Application{}, internal("get application", err)
	}
	if a.EmployerID != actor.ID {
		return application.Application{}, fail(ErrForbidden, "Not authorized")
	}

	if err := u.applications.UpdateStatus(ctx, a.ID, status); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, fail(ErrNotFound, "Application not found")
		}
		return application.Application{}, internal("update application status", err)
	}

	a.Status = status
	return a, nil
}
