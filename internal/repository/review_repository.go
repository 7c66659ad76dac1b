package repository

import (
	"context"

	"job-portal/internal/database"
	"job-portal/internal/domain/review"
)

const reviewColumns = `review_id, reviewer_id, reviewed_id, reviewer_name, rating, comment, created_at`

type PostgresReviewRepository struct {
	db database.DB
}

func NewPostgresReviewRepository(db database.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

func (r *PostgresReviewRepository) Create(ctx context.Context, rv review.Review) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO reviews (`+reviewColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rv.ID, rv.ReviewerID, rv.ReviewedID, rv.ReviewerName, rv.Rating, rv.Comment, rv.CreatedAt,
	)
	return err
}

func (r *PostgresReviewRepository) ListByReviewed(ctx context.Context, reviewedID string) ([]review.Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE reviewed_id = $1 ORDER BY created_at DESC`,
		reviewedID,
	)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanReview)
}

func scanReview(row rowScanner) (review.Review, error) {
	var rv review.Review
	if err := row.Scan(&rv.ID, &rv.ReviewerID, &rv.ReviewedID, &rv.ReviewerName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
		return review.Review{}, err
	}
	if err := rv.Validate(); err != nil {
		return review.Review{}, invalidRow("reviews", err)
	}
	return rv, nil
}

var _ review.Repository = (*PostgresReviewRepository)(nil)
