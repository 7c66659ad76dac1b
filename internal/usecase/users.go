package usecase

import (
	"context"
	"errors"
	"strings"

	"job-portal/internal/domain/user"
)

type Users struct {
	base
	users user.Repository
}

func NewUsers(users user.Repository, opts ...Option) *Users {
	return &Users{base: newBase(opts), users: users}
}

func (u *Users) Get(ctx context.Context, id string) (user.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return user.User{}, fail(ErrNotFound, "User not found")
	}
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, fail(ErrNotFound, "User not found")
		}
		return user.User{}, internal("get user", err)
	}
	return usr, nil
}

// UpdateProfile applies a partial update to the caller's own profile.
// Identity fields (email, name, user_type) are not part of ProfileUpdate.
func (u *Users) UpdateProfile(ctx context.Context, actor user.User, p user.ProfileUpdate) (user.User, error) {
	if p.ExperienceYears != nil && *p.ExperienceYears < 0 {
		return user.User{}, fail(ErrInvalidInput, "experience_years must not be negative")
	}
	if p.IsEmpty() {
		return u.Get(ctx, actor.ID)
	}

	updated, err := u.users.UpdateProfile(ctx, actor.ID, p)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, fail(ErrNotFound, "User not found")
		}
		return user.User{}, internal("update profile", err)
	}
	return updated, nil
}
