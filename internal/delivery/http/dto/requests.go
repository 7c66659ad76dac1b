package dto

import (
	"job-portal/internal/domain/user"
	"job-portal/internal/usecase"
)

type SessionRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	UserType  string `json:"user_type" validate:"omitempty,oneof=job_seeker employer"`
}

func (r SessionRequest) ToInput() usecase.ExchangeInput {
	return usecase.ExchangeInput{SessionID: r.SessionID, Role: user.Role(r.UserType)}
}

type ProfileUpdateRequest struct {
	Phone           *string  `json:"phone" validate:"omitempty,max=32"`
	Profession      *string  `json:"profession" validate:"omitempty,max=120"`
	Skills          []string `json:"skills" validate:"omitempty,max=50,dive,max=64"`
	ExperienceYears *int     `json:"experience_years" validate:"omitempty,gte=0,lte=80"`
	Bio             *string  `json:"bio" validate:"omitempty,max=2000"`
	City            *string  `json:"city" validate:"omitempty,max=120"`
	Area            *string  `json:"area" validate:"omitempty,max=120"`
	Latitude        *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

func (r ProfileUpdateRequest) ToUpdate() user.ProfileUpdate {
	return user.ProfileUpdate{
		Phone:           r.Phone,
		Profession:      r.Profession,
		Skills:          r.Skills,
		ExperienceYears: r.ExperienceYears,
		Bio:             r.Bio,
		City:            r.City,
		Area:            r.Area,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
	}
}

type CreateJobRequest struct {
	Title            string   `json:"title" validate:"required,max=200"`
	Description      string   `json:"description" validate:"required,max=10000"`
	JobType          string   `json:"job_type" validate:"required,oneof=full_time part_time remote"`
	SalaryType       []string `json:"salary_type" validate:"required,min=1,dive,oneof=daily weekly monthly"`
	SalaryMin        *float64 `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax        *float64 `json:"salary_max" validate:"omitempty,gte=0"`
	SalaryNegotiable bool     `json:"salary_negotiable"`
	City             string   `json:"city" validate:"required,max=120"`
	Area             string   `json:"area" validate:"required,max=120"`
	Latitude         *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude        *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Requirements     *string  `json:"requirements" validate:"omitempty,max=5000"`
}

func (r CreateJobRequest) ToInput() usecase.CreateJobInput {
	return usecase.CreateJobInput{
		Title:            r.Title,
		Description:      r.Description,
		JobType:          r.JobType,
		SalaryType:       r.SalaryType,
		SalaryMin:        r.SalaryMin,
		SalaryMax:        r.SalaryMax,
		SalaryNegotiable: r.SalaryNegotiable,
		City:             r.City,
		Area:             r.Area,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		Requirements:     r.Requirements,
	}
}

type StatusRequest struct {
	Status string `json:"status"`
}

type ApplyRequest struct {
	JobID       string  `json:"job_id" validate:"required"`
	CoverLetter *string `json:"cover_letter" validate:"omitempty,max=5000"`
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	Content    string `json:"content" validate:"required,max=5000"`
}

type CreateReviewRequest struct {
	ReviewedID string  `json:"reviewed_id" validate:"required"`
	Rating     int     `json:"rating"`
	Comment    *string `json:"comment" validate:"omitempty,max=2000"`
}
