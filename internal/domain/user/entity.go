package user

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleEmployer  Role = "employer"
)

func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

var ErrInvalidRecord = errors.New("invalid user record")

type User struct {
	ID              string    `json:"user_id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Picture         *string   `json:"picture"`
	Role            Role      `json:"user_type"`
	Phone           *string   `json:"phone"`
	Profession      *string   `json:"profession"`
	Skills          []string  `json:"skills"`
	ExperienceYears *int      `json:"experience_years"`
	Bio             *string   `json:"bio"`
	City            *string   `json:"city"`
	Area            *string   `json:"area"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	CreatedAt       time.Time `json:"created_at"`
}

// Validate checks a record loaded from the store.
func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRecord)
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("%w: empty email id=%s", ErrInvalidRecord, u.ID)
	}
	if !u.Role.Valid() {
		return fmt.Errorf("%w: role=%q id=%s", ErrInvalidRecord, u.Role, u.ID)
	}
	return nil
}

func (u User) IsEmployer() bool {
	return u.Role == RoleEmployer
}

func (u User) IsJobSeeker() bool {
	return u.Role == RoleJobSeeker
}

// ProfileUpdate carries the owner-editable profile fields. Nil fields are left untouched.
type ProfileUpdate struct {
	Phone           *string
	Profession      *string
	Skills          []string
	ExperienceYears *int
	Bio             *string
	City            *string
	Area            *string
	Latitude        *float64
	Longitude       *float64
}

func (p ProfileUpdate) IsEmpty() bool {
	return p.Phone == nil && p.Profession == nil && p.Skills == nil && p.ExperienceYears == nil &&
		p.Bio == nil && p.City == nil && p.Area == nil && p.Latitude == nil && p.Longitude == nil
}

// Apply returns a copy of u with the non-nil fields of p set.
func (p ProfileUpdate) Apply(u User) User {
	if p.Phone != nil {
		u.Phone = p.Phone
	}
	if p.Profession != nil {
		u.Profession = p.Profession
	}
	if p.Skills != nil {
		u.Skills = append([]string(nil), p.Skills...)
	}
	if p.ExperienceYears != nil {
		u.ExperienceYears = p.ExperienceYears
	}
	if p.Bio != nil {
		u.Bio = p.Bio
	}
	if p.City != nil {
		u.City = p.City
	}
	if p.Area != nil {
		u.Area = p.Area
	}
	if p.Latitude != nil {
		u.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		u.Longitude = p.Longitude
	}
	return u
}
