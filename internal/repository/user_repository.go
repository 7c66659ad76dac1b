package repository

import (
	"context"
	"strings"

	"job-portal/internal/database"
	"job-portal/internal/database/postgres"
	"job-portal/internal/database/schema"
	"job-portal/internal/domain/user"
)

const userColumns = `user_id, email, name, picture, user_type, phone, profession, skills,
	experience_years, bio, city, area, latitude, longitude, created_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (user_id, email, name, picture, user_type, phone, profession, skills,
			experience_years, bio, city, area, latitude, longitude, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		u.ID, u.Email, u.Name, u.Picture, string(u.Role), u.Phone, u.Profession, skills,
		u.ExperienceYears, u.Bio, u.City, u.Area, u.Latitude, u.Longitude, u.CreatedAt,
	)
	if postgres.IsUniqueViolation(err, schema.ConstraintUsersEmail) {
		return user.ErrEmailDuplicate
	}
	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.TrimSpace(email))
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]user.User, error) {
	out := make(map[string]user.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	users, err := collect(rows, scanUser)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id string, p user.ProfileUpdate) (user.User, error) {
	var skills any
	if p.Skills != nil {
		skills = p.Skills
	}

	row := r.db.QueryRow(ctx,
		`UPDATE users SET
			phone            = COALESCE($2::text, phone),
			profession       = COALESCE($3::text, profession),
			skills           = COALESCE($4::text[], skills),
			experience_years = COALESCE($5::integer, experience_years),
			bio              = COALESCE($6::text, bio),
			city             = COALESCE($7::text, city),
			area             = COALESCE($8::text, area),
			latitude         = COALESCE($9::double precision, latitude),
			longitude        = COALESCE($10::double precision, longitude)
		 WHERE user_id = $1
		 RETURNING `+userColumns,
		id, p.Phone, p.Profession, skills, p.ExperienceYears, p.Bio, p.City, p.Area, p.Latitude, p.Longitude,
	)
	return scanUser(row)
}

func scanUser(row rowScanner) (user.User, error) {
	var u user.User
	var role string
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Picture, &role, &u.Phone, &u.Profession, &u.Skills,
		&u.ExperienceYears, &u.Bio, &u.City, &u.Area, &u.Latitude, &u.Longitude, &u.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	if u.Skills == nil {
		u.Skills = []string{}
	}
	if err := u.Validate(); err != nil {
		return user.User{}, invalidRow("users", err)
	}
	return u, nil
}

var _ user.Repository = (*PostgresUserRepository)(nil)
