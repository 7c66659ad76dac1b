package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-portal/internal/domain/job"
	"job-portal/internal/domain/user"
	"job-portal/internal/pkg/ids"
)

// DemoJobSeeder creates a couple of employers with active postings so a fresh
// environment has something to browse. Employers are matched by email, so a
// second run is a no-op.
type DemoJobSeeder struct {
	Now func() time.Time
}

func (DemoJobSeeder) Name() string { return "demo_jobs" }

type demoPosting struct {
	Title       string
	Description string
	JobType     string
	SalaryType  []string
	SalaryMin   float64
	SalaryMax   float64
	City        string
	Area        string
}

var demoEmployers = []struct {
	Email    string
	Name     string
	Postings []demoPosting
}{
	{
		Email: "hiring@kopikita.example",
		Name:  "Kopi Kita",
		Postings: []demoPosting{
			{
				Title:       "Barista",
				Description: "Prepare espresso drinks and keep the bar clean during morning shifts.",
				JobType:     "full_time",
				SalaryType:  []string{"monthly"},
				SalaryMin:   3500000,
				SalaryMax:   4500000,
				City:        "Jakarta",
				Area:        "Kemang",
			},
			{
				Title:       "Weekend Cashier",
				Description: "Handle payments and greet customers on Saturdays and Sundays.",
				JobType:     "part_time",
				SalaryType:  []string{"daily"},
				SalaryMin:   150000,
				SalaryMax:   200000,
				City:        "Jakarta",
				Area:        "Kemang",
			},
		},
	},
	{
		Email: "jobs@rapiservice.example",
		Name:  "Rapi Service",
		Postings: []demoPosting{
			{
				Title:       "Home Cleaner",
				Description: "Residential cleaning across the city, transport allowance included.",
				JobType:     "full_time",
				SalaryType:  []string{"weekly", "monthly"},
				SalaryMin:   800000,
				SalaryMax:   3200000,
				City:        "Bandung",
				Area:        "Dago",
			},
			{
				Title:       "Customer Support Agent",
				Description: "Answer booking questions over chat from home.",
				JobType:     "remote",
				SalaryType:  []string{"monthly"},
				SalaryMin:   4000000,
				SalaryMax:   5000000,
				City:        "Bandung",
				Area:        "Remote",
			},
		},
	},
}

func (s DemoJobSeeder) Run(ctx context.Context, t Target) error {
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now()
	}

	for _, emp := range demoEmployers {
		_, err := t.Users.GetByEmail(ctx, emp.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, user.ErrNotFound) {
			return err
		}

		owner := user.User{
			ID:        ids.New(ids.PrefixUser),
			Email:     emp.Email,
			Name:      emp.Name,
			Role:      user.RoleEmployer,
			Skills:    []string{},
			CreatedAt: now,
		}
		if err := t.Users.Create(ctx, owner); err != nil {
			return fmt.Errorf("create employer %s: %w", emp.Email, err)
		}

		for i, p := range emp.Postings {
			minSalary, maxSalary := p.SalaryMin, p.SalaryMax
			created := now.Add(time.Duration(i) * time.Second)
			j := job.Job{
				ID:           ids.New(ids.PrefixJob),
				EmployerID:   owner.ID,
				EmployerName: owner.Name,
				Title:        p.Title,
				Description:  p.Description,
				JobType:      p.JobType,
				SalaryType:   p.SalaryType,
				SalaryMin:    &minSalary,
				SalaryMax:    &maxSalary,
				City:         p.City,
				Area:         p.Area,
				Status:       job.StatusActive,
				CreatedAt:    created,
				UpdatedAt:    created,
			}
			if err := t.Jobs.Create(ctx, j); err != nil {
				return fmt.Errorf("create job %q: %w", p.Title, err)
			}
		}
	}
	return nil
}
