package repository

import (
	"context"

	"job-portal/internal/database"
	"job-portal/internal/database/postgres"
	"job-portal/internal/database/schema"
	"job-portal/internal/domain/application"
)

const applicationColumns = `application_id, job_id, job_title, job_seeker_id, job_seeker_name,
	job_seeker_email, employer_id, cover_letter, status, created_at`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (`+applicationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.JobID, a.JobTitle, a.JobSeekerID, a.JobSeekerName,
		a.JobSeekerEmail, a.EmployerID, a.CoverLetter, string(a.Status), a.CreatedAt,
	)
	if postgres.IsUniqueViolation(err, schema.ConstraintApplicationsJobSeeker) {
		return application.ErrDuplicate
	}
	return err
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id string) (application.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE application_id = $1`, id)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) FindByJobAndSeeker(ctx context.Context, jobID, jobSeekerID string) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND job_seeker_id = $2`,
		jobID, jobSeekerID,
	)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) ListByJobSeeker(ctx context.Context, jobSeekerID string) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_seeker_id = $1 ORDER BY created_at DESC`,
		jobSeekerID,
	)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanApplication)
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY created_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanApplication)
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id string, status application.Status) error {
	n, err := r.db.Exec(ctx, `UPDATE applications SET status = $2 WHERE application_id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrNotFound
	}
	return nil
}

func scanApplication(row rowScanner) (application.Application, error) {
	var a application.Application
	var status string
	err := row.Scan(
		&a.ID, &a.JobID, &a.JobTitle, &a.JobSeekerID, &a.JobSeekerName,
		&a.JobSeekerEmail, &a.EmployerID, &a.CoverLetter, &status, &a.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	if err := a.Validate(); err != nil {
		return application.Application{}, invalidRow("applications", err)
	}
	return a, nil
}

var _ application.Repository = (*PostgresApplicationRepository)(nil)
