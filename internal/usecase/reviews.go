package usecase

import (
	"context"
	"errors"
	"strings"

	"job-portal/internal/domain/review"
	"job-portal/internal/domain/user"
	"job-portal/internal/pkg/ids"
)

type Reviews struct {
	base
	reviews review.Repository
	users   user.Repository
}

func NewReviews(reviews review.Repository, users user.Repository, opts ...Option) *Reviews {
	return &Reviews{base: newBase(opts), reviews: reviews, users: users}
}

func (u *Reviews) Create(ctx context.Context, actor user.User, reviewedID string, rating int, comment *string) (review.Review, error) {
	reviewedID = strings.TrimSpace(reviewedID)
	if !review.ValidRating(rating) {
		return review.Review{}, fail(ErrInvalidInput, "Rating must be between 1 and 5")
	}
	if reviewedID == "" {
		return review.Review{}, fail(ErrInvalidInput, "reviewed_id is required")
	}
	if reviewedID == actor.ID {
		return review.Review{}, fail(ErrInvalidInput, "Cannot review yourself")
	}

	if _, err := u.users.GetByID(ctx, reviewedID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return review.Review{}, fail(ErrNotFound, "User not found")
		}
		return review.Review{}, internal("get reviewed user", err)
	}

	rv := review.Review{
		ID:           ids.New(ids.PrefixReview),
		ReviewerID:   actor.ID,
		ReviewedID:   reviewedID,
		ReviewerName: actor.Name,
		Rating:       rating,
		Comment:      comment,
		CreatedAt:    u.now(),
	}
	if err := u.reviews.Create(ctx, rv); err != nil {
		return review.Review{}, internal("create review", err)
	}
	return rv, nil
}

func (u *Reviews) ListFor(ctx context.Context, userID string) ([]review.Review, error) {
	items, err := u.reviews.ListByReviewed(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, internal("list reviews", err)
	}
	return items, nil
}

func (u *Reviews) Stats(ctx context.Context, userID string) (review.Stats, error) {
	items, err := u.ListFor(ctx, userID)
	if err != nil {
		return review.Stats{}, err
	}
	return review.ComputeStats(items), nil
}
