package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

var (
	ErrNotFound      = errors.New("application not found")
	ErrDuplicate     = errors.New("application already exists for job and job seeker")
	ErrInvalidRecord = errors.New("invalid application record")
)

type Application struct {
	ID             string    `json:"application_id"`
	JobID          string    `json:"job_id"`
	JobTitle       string    `json:"job_title"`
	JobSeekerID    string    `json:"job_seeker_id"`
	JobSeekerName  string    `json:"job_seeker_name"`
	JobSeekerEmail string    `json:"job_seeker_email"`
	EmployerID     string    `json:"employer_id"`
	CoverLetter    *string   `json:"cover_letter"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func (a Application) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRecord)
	}
	if a.JobID == "" || a.JobSeekerID == "" || a.EmployerID == "" {
		return fmt.Errorf("%w: missing reference id=%s", ErrInvalidRecord, a.ID)
	}
	if !a.Status.Valid() {
		return fmt.Errorf("%w: status=%q id=%s", ErrInvalidRecord, a.Status, a.ID)
	}
	return nil
}

// Repository persists applications. Create must return ErrDuplicate when an
// application for the same (job, job seeker) pair already exists.
type Repository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	FindByJobAndSeeker(ctx context.Context, jobID, jobSeekerID string) (Application, error)
	ListByJobSeeker(ctx context.Context, jobSeekerID string) ([]Application, error)
	ListByJob(ctx context.Context, jobID string) ([]Application, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}
