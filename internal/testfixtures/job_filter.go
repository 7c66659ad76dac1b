package testfixtures

import (
	"strings"

	"job-portal/internal/domain/job"
)

// matchesJobFilter is the in-memory rendition of the public listing query:
// active jobs only, exact job type, case-insensitive substring on city, salary
// bounds, and search over title OR description.
func matchesJobFilter(f job.ListFilter, j job.Job) bool {
	if j.Status != job.StatusActive {
		return false
	}
	if f.JobType != "" && j.JobType != f.JobType {
		return false
	}
	if f.City != "" && !containsFold(j.City, f.City) {
		return false
	}
	if f.MinSalary != nil && (j.SalaryMin == nil || *j.SalaryMin < *f.MinSalary) {
		return false
	}
	if f.MaxSalary != nil && (j.SalaryMax == nil || *j.SalaryMax > *f.MaxSalary) {
		return false
	}
	if f.Search != "" && !containsFold(j.Title, f.Search) && !containsFold(j.Description, f.Search) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
