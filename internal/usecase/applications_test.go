package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/user"
	"job-portal/internal/testfixtures"
)

type applicationsEnv struct {
	store    *testfixtures.Store
	jobs     *Jobs
	apps     *Applications
	employer user.User
	seeker   user.User
	job      job.Job
}

func newApplicationsEnv(t *testing.T) applicationsEnv {
	t.Helper()
	store := testfixtures.NewStore()
	opts := testOpts(newClock())
	env := applicationsEnv{
		store:    store,
		jobs:     NewJobs(store.Jobs(), opts...),
		apps:     NewApplications(store.Applications(), store.Jobs(), opts...),
		employer: store.SeedUser(user.RoleEmployer),
		seeker:   store.SeedUser(user.RoleJobSeeker),
	}
	j, err := env.jobs.Create(context.Background(), env.employer, validJobInput("Go Developer"))
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	env.job = j
	return env
}

func TestApplications_Apply(t *testing.T) {
	env := newApplicationsEnv(t)
	ctx := context.Background()

	if _, err := env.apps.Apply(ctx, env.employer, env.job.ID, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for employer, got %v", err)
	}
	if _, err := env.apps.Apply(ctx, env.seeker, "job_missing", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	cover := "hire me"
	a, err := env.apps.Apply(ctx, env.seeker, env.job.ID, &cover)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Status != application.StatusPending || a.EmployerID != env.employer.ID || a.JobTitle != env.job.Title {
		t.Fatalf("unexpected application %+v", a)
	}

	if _, err := env.apps.Apply(ctx, env.seeker, env.job.ID, nil); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if env.store.ApplicationCount() != 1 {
		t.Fatalf("expected one stored application, got %d", env.store.ApplicationCount())
	}
}

func TestApplications_Apply_ConcurrentDuplicates(t *testing.T) {
	env := newApplicationsEnv(t)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.apps.Apply(context.Background(), env.seeker, env.job.ID, nil)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrDuplicate):
		default:
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if ok != 1 || env.store.ApplicationCount() != 1 {
		t.Fatalf("expected exactly one success, got ok=%d stored=%d", ok, env.store.ApplicationCount())
	}
}

func TestApplications_Apply_InactiveJob(t *testing.T) {
	env := newApplicationsEnv(t)
	if _, err := env.jobs.UpdateStatus(context.Background(), env.employer, env.job.ID, job.StatusClosed); err != nil {
		t.Fatalf("close job: %v", err)
	}
	if _, err := env.apps.Apply(context.Background(), env.seeker, env.job.ID, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestApplications_EmployerFlow(t *testing.T) {
	env := newApplicationsEnv(t)
	ctx := context.Background()
	other := env.store.SeedUser(user.RoleEmployer)

	a, err := env.apps.Apply(ctx, env.seeker, env.job.ID, nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := env.apps.ListForJob(ctx, other, env.job.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := env.apps.ListForJob(ctx, env.employer, "job_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	items, err := env.apps.ListForJob(ctx, env.employer, env.job.ID)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected one application, got %d %v", len(items), err)
	}

	if _, err := env.apps.UpdateStatus(ctx, other, a.ID, application.StatusAccepted); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := env.apps.UpdateStatus(ctx, env.employer, a.ID, "maybe"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := env.apps.UpdateStatus(ctx, env.employer, "app_missing", application.StatusAccepted); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := env.apps.UpdateStatus(ctx, env.employer, a.ID, application.StatusAccepted); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	mine, err := env.apps.ListSubmitted(ctx, env.seeker)
	if err != nil || len(mine) != 1 || mine[0].Status != application.StatusAccepted {
		t.Fatalf("expected accepted application, got %+v %v", mine, err)
	}
	if _, err := env.apps.ListSubmitted(ctx, env.employer); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for employer, got %v", err)
	}
}
