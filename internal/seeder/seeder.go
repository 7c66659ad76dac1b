package seeder

import (
	"context"
	"fmt"

	"job-portal/internal/domain/job"
	"job-portal/internal/domain/user"
)

// Target is the set of repositories seeders write through.
type Target struct {
	Users user.Repository
	Jobs  job.Repository
}

type Seeder interface {
	Name() string
	Run(ctx context.Context, t Target) error
}

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, t Target) error {
	if t.Users == nil || t.Jobs == nil {
		return fmt.Errorf("incomplete seed target")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, t); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}

func Defaults() []Seeder {
	return []Seeder{DemoJobSeeder{}}
}
