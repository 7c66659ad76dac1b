package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"job-portal/internal/database"
	"job-portal/internal/domain/job"
)

const (
	defaultJobListLimit = 50
	maxJobListLimit     = 100
	employerJobsLimit   = 100
)

const jobColumns = `job_id, employer_id, employer_name, title, description, job_type, salary_type,
	salary_min, salary_max, salary_negotiable, city, area, latitude, longitude, requirements,
	status, created_at, updated_at`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) error {
	salaryType := j.SalaryType
	if salaryType == nil {
		salaryType = []string{}
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (`+jobColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		j.ID, j.EmployerID, j.EmployerName, j.Title, j.Description, j.JobType, salaryType,
		j.SalaryMin, j.SalaryMax, j.SalaryNegotiable, j.City, j.Area, j.Latitude, j.Longitude, j.Requirements,
		string(j.Status), j.CreatedAt, j.UpdatedAt,
	)
	return err
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id string) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE job_id = $1`, id)
	return scanJob(row)
}

func (r *PostgresJobRepository) List(ctx context.Context, f job.ListFilter) ([]job.Job, error) {
	query, args := buildJobListQuery(f)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanJob)
}

func (r *PostgresJobRepository) ListByEmployer(ctx context.Context, employerID string) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE employer_id = $1 ORDER BY created_at DESC LIMIT $2`,
		employerID, employerJobsLimit,
	)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanJob)
}

func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, id string, status job.Status, updatedAt time.Time) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs SET status = $2, updated_at = $3 WHERE job_id = $1`,
		id, string(status), updatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

// buildJobListQuery renders the public listing query: active jobs only,
// filters ANDed together, search ORed across title and description.
func buildJobListQuery(f job.ListFilter) (string, []any) {
	where := []string{"status = $1"}
	args := []any{string(job.StatusActive)}

	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if t := strings.TrimSpace(f.JobType); t != "" {
		add("job_type = $%d", t)
	}
	if c := strings.TrimSpace(f.City); c != "" {
		add("city ILIKE $%d", likePattern(c))
	}
	if f.MinSalary != nil {
		add("salary_min >= $%d", *f.MinSalary)
	}
	if f.MaxSalary != nil {
		add("salary_max <= $%d", *f.MaxSalary)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, likePattern(s))
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultJobListLimit
	}
	if limit > maxJobListLimit {
		limit = maxJobListLimit
	}
	skip := f.Skip
	if skip < 0 {
		skip = 0
	}

	args = append(args, limit, skip)
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE ` + strings.Join(where, " AND ") +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	return query, args
}

func scanJob(row rowScanner) (job.Job, error) {
	var j job.Job
	var status string
	err := row.Scan(
		&j.ID, &j.EmployerID, &j.EmployerName, &j.Title, &j.Description, &j.JobType, &j.SalaryType,
		&j.SalaryMin, &j.SalaryMax, &j.SalaryNegotiable, &j.City, &j.Area, &j.Latitude, &j.Longitude, &j.Requirements,
		&status, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	j.Status = job.Status(status)
	if j.SalaryType == nil {
		j.SalaryType = []string{}
	}
	if err := j.Validate(); err != nil {
		return job.Job{}, invalidRow("jobs", err)
	}
	return j, nil
}

var _ job.Repository = (*PostgresJobRepository)(nil)
