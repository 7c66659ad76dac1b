package review

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

var ErrInvalidRecord = errors.New("invalid review record")

type Review struct {
	ID           string    `json:"review_id"`
	ReviewerID   string    `json:"reviewer_id"`
	ReviewedID   string    `json:"reviewed_id"`
	ReviewerName string    `json:"reviewer_name"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

func (r Review) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRecord)
	}
	if !ValidRating(r.Rating) {
		return fmt.Errorf("%w: rating=%d id=%s", ErrInvalidRecord, r.Rating, r.ID)
	}
	return nil
}

type Stats struct {
	AverageRating      float64     `json:"average_rating"`
	TotalReviews       int         `json:"total_reviews"`
	RatingDistribution map[int]int `json:"rating_distribution"`
}

// ComputeStats aggregates ratings into an average rounded to two decimals and
// a per-star count. No reviews yields a zero average and all-zero buckets.
func ComputeStats(reviews []Review) Stats {
	dist := make(map[int]int, MaxRating)
	for star := MinRating; star <= MaxRating; star++ {
		dist[star] = 0
	}

	total := 0
	sum := 0
	for _, r := range reviews {
		if !ValidRating(r.Rating) {
			continue
		}
		dist[r.Rating]++
		sum += r.Rating
		total++
	}

	st := Stats{TotalReviews: total, RatingDistribution: dist}
	if total > 0 {
		st.AverageRating = math.Round(float64(sum)/float64(total)*100) / 100
	}
	return st
}

type Repository interface {
	Create(ctx context.Context, r Review) error
	ListByReviewed(ctx context.Context, reviewedID string) ([]Review, error)
}
