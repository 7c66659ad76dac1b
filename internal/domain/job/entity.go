package job

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
	StatusFilled Status = "filled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusClosed, StatusFilled:
		return true
	}
	return false
}

const (
	TypeFullTime = "full_time"
	TypePartTime = "part_time"
	TypeRemote   = "remote"
)

const (
	SalaryDaily   = "daily"
	SalaryWeekly  = "weekly"
	SalaryMonthly = "monthly"
)

func ValidType(t string) bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeRemote:
		return true
	}
	return false
}

func ValidSalaryType(s string) bool {
	switch s {
	case SalaryDaily, SalaryWeekly, SalaryMonthly:
		return true
	}
	return false
}

var ErrInvalidRecord = errors.New("invalid job record")

type Job struct {
	ID               string    `json:"job_id"`
	EmployerID       string    `json:"employer_id"`
	EmployerName     string    `json:"employer_name"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	JobType          string    `json:"job_type"`
	SalaryType       []string  `json:"salary_type"`
	SalaryMin        *float64  `json:"salary_min"`
	SalaryMax        *float64  `json:"salary_max"`
	SalaryNegotiable bool      `json:"salary_negotiable"`
	City             string    `json:"city"`
	Area             string    `json:"area"`
	Latitude         *float64  `json:"latitude"`
	Longitude        *float64  `json:"longitude"`
	Requirements     *string   `json:"requirements"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (j Job) Validate() error {
	if strings.TrimSpace(j.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRecord)
	}
	if strings.TrimSpace(j.EmployerID) == "" {
		return fmt.Errorf("%w: empty employer_id id=%s", ErrInvalidRecord, j.ID)
	}
	if !j.Status.Valid() {
		return fmt.Errorf("%w: status=%q id=%s", ErrInvalidRecord, j.Status, j.ID)
	}
	return nil
}

func (j Job) OwnedBy(userID string) bool {
	return userID != "" && j.EmployerID == userID
}

// ListFilter selects jobs for the public listing. Zero values mean "no filter".
// Filters combine with AND; Search matches title OR description.
type ListFilter struct {
	JobType   string
	City      string
	MinSalary *float64
	MaxSalary *float64
	Search    string
	Skip      int
	Limit     int
}
