package job

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("job not found")

type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id string) (Job, error)
	List(ctx context.Context, f ListFilter) ([]Job, error)
	ListByEmployer(ctx context.Context, employerID string) ([]Job, error)
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error
}
