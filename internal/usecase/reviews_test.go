package usecase

import (
	"context"
	"errors"
	"testing"

	"job-portal/internal/domain/user"
	"job-portal/internal/testfixtures"
)

func TestReviews_CreateAndStats(t *testing.T) {
	store := testfixtures.NewStore()
	uc := NewReviews(store.Reviews(), store.Users(), testOpts(newClock())...)
	target := store.SeedUser(user.RoleEmployer)
	ctx := context.Background()

	empty, err := uc.Stats(ctx, target.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if empty.AverageRating != 0 || empty.TotalReviews != 0 || len(empty.RatingDistribution) != 5 {
		t.Fatalf("unexpected empty stats %+v", empty)
	}

	for _, rating := range []int{5, 5, 4} {
		reviewer := store.SeedUser(user.RoleJobSeeker)
		if _, err := uc.Create(ctx, reviewer, target.ID, rating, nil); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	st, err := uc.Stats(ctx, target.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if st.AverageRating != 4.67 || st.TotalReviews != 3 || st.RatingDistribution[5] != 2 || st.RatingDistribution[4] != 1 {
		t.Fatalf("unexpected stats %+v", st)
	}

	list, err := uc.ListFor(ctx, target.ID)
	if err != nil || len(list) != 3 || list[0].Rating != 4 {
		t.Fatalf("expected newest first, got %+v %v", list, err)
	}
}

func TestReviews_CreateValidation(t *testing.T) {
	store := testfixtures.NewStore()
	uc := NewReviews(store.Reviews(), store.Users(), testOpts(newClock())...)
	a := store.SeedUser(user.RoleJobSeeker)
	b := store.SeedUser(user.RoleEmployer)

	cases := map[string]struct {
		reviewed string
		rating   int
		want     error
	}{
		"too low":  {reviewed: b.ID, rating: 0, want: ErrInvalidInput},
		"too high": {reviewed: b.ID, rating: 6, want: ErrInvalidInput},
		"self":     {reviewed: a.ID, rating: 3, want: ErrInvalidInput},
		"unknown":  {reviewed: "user_missing", rating: 3, want: ErrNotFound},
	}
	for name, tc := range cases {
		if _, err := uc.Create(context.Background(), a, tc.reviewed, tc.rating, nil); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, err)
		}
	}
}
