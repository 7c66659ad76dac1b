package schema

import (
	"context"
	"fmt"
	"log"

	"job-portal/internal/database"
)

const advisoryLockKey int64 = 746295114

// Constraint names referenced by repositories when mapping unique violations.
const (
	ConstraintUsersEmail            = "users_email_key"
	ConstraintApplicationsJobSeeker = "applications_job_seeker_key"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
	user_id          TEXT PRIMARY KEY,
	email            TEXT NOT NULL,
	name             TEXT NOT NULL DEFAULT '',
	picture          TEXT,
	user_type        TEXT NOT NULL CHECK (user_type IN ('job_seeker', 'employer')),
	phone            TEXT,
	profession       TEXT,
	skills           TEXT[] NOT NULL DEFAULT '{}',
	experience_years INTEGER,
	bio              TEXT,
	city             TEXT,
	area             TEXT,
	latitude         DOUBLE PRECISION,
	longitude        DOUBLE PRECISION,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT users_email_key UNIQUE (email)
)`,
	`CREATE TABLE IF NOT EXISTS user_sessions (
	token_hash TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS user_sessions_user_id_idx ON user_sessions (user_id)`,
	`CREATE TABLE IF NOT EXISTS jobs (
	job_id            TEXT PRIMARY KEY,
	employer_id       TEXT NOT NULL,
	employer_name     TEXT NOT NULL DEFAULT '',
	title             TEXT NOT NULL,
	description       TEXT NOT NULL,
	job_type          TEXT NOT NULL,
	salary_type       TEXT[] NOT NULL DEFAULT '{}',
	salary_min        DOUBLE PRECISION,
	salary_max        DOUBLE PRECISION,
	salary_negotiable BOOLEAN NOT NULL DEFAULT false,
	city              TEXT NOT NULL,
	area              TEXT NOT NULL,
	latitude          DOUBLE PRECISION,
	longitude         DOUBLE PRECISION,
	requirements      TEXT,
	status            TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'closed', 'filled')),
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS jobs_status_created_at_idx ON jobs (status, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS jobs_employer_id_idx ON jobs (employer_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS applications (
	application_id   TEXT PRIMARY KEY,
	job_id           TEXT NOT NULL,
	job_title        TEXT NOT NULL DEFAULT '',
	job_seeker_id    TEXT NOT NULL,
	job_seeker_name  TEXT NOT NULL DEFAULT '',
	job_seeker_email TEXT NOT NULL DEFAULT '',
	employer_id      TEXT NOT NULL,
	cover_letter     TEXT,
	status           TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'accepted', 'rejected')),
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT applications_job_seeker_key UNIQUE (job_id, job_seeker_id)
)`,
	`CREATE INDEX IF NOT EXISTS applications_job_seeker_id_idx ON applications (job_seeker_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS messages (
	message_id  TEXT PRIMARY KEY,
	sender_id   TEXT NOT NULL,
	receiver_id TEXT NOT NULL,
	sender_name TEXT NOT NULL DEFAULT '',
	content     TEXT NOT NULL,
	read        BOOLEAN NOT NULL DEFAULT false,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS messages_sender_receiver_idx ON messages (sender_id, receiver_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS messages_receiver_unread_idx ON messages (receiver_id, sender_id) WHERE NOT read`,
	`CREATE TABLE IF NOT EXISTS reviews (
	review_id     TEXT PRIMARY KEY,
	reviewer_id   TEXT NOT NULL,
	reviewed_id   TEXT NOT NULL,
	reviewer_name TEXT NOT NULL DEFAULT '',
	rating        INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
	comment       TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS reviews_reviewed_id_idx ON reviews (reviewed_id, created_at DESC)`,
}

// Apply creates the tables and indexes when they do not exist yet. Concurrent
// starts are serialized with a transaction-scoped advisory lock.
func Apply(ctx context.Context, db database.DB, logger *log.Logger) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if logger == nil {
		logger = log.Default()
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryLockKey); err != nil {
		return fmt.Errorf("schema lock: %w", err)
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	logger.Printf("[Schema] applied statements=%d", len(statements))
	return nil
}
