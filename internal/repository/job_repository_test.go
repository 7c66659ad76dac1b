package repository

import (
	"strings"
	"testing"

	"job-portal/internal/domain/job"
)

func TestBuildJobListQuery_NoFilters(t *testing.T) {
	q, args := buildJobListQuery(job.ListFilter{})

	if !strings.Contains(q, "WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3") {
		t.Fatalf("unexpected query: %s", q)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if args[0] != "active" || args[1] != 50 || args[2] != 0 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildJobListQuery_AllFilters(t *testing.T) {
	minS, maxS := 1000.0, 9000.0
	q, args := buildJobListQuery(job.ListFilter{
		JobType:   "remote",
		City:      "Riyadh",
		MinSalary: &minS,
		MaxSalary: &maxS,
		Search:    "developer",
		Skip:      10,
		Limit:     500,
	})

	for _, want := range []string{
		"status = $1",
		"job_type = $2",
		"city ILIKE $3",
		"salary_min >= $4",
		"salary_max <= $5",
		"(title ILIKE $6 OR description ILIKE $6)",
		"LIMIT $7 OFFSET $8",
	} {
		if !strings.Contains(q, want) {
			t.Fatalf("query missing %q: %s", want, q)
		}
	}
	if args[2] != "%Riyadh%" {
		t.Fatalf("unexpected city pattern %v", args[2])
	}
	if args[5] != "%developer%" {
		t.Fatalf("unexpected search pattern %v", args[5])
	}
	if args[6] != 100 {
		t.Fatalf("expected limit clamped to 100, got %v", args[6])
	}
	if args[7] != 10 {
		t.Fatalf("unexpected skip %v", args[7])
	}
}

func TestLikePattern_EscapesWildcards(t *testing.T) {
	if got := likePattern(`50%_off\`); got != `%50\%\_off\\%` {
		t.Fatalf("unexpected pattern %q", got)
	}
}

func TestHashToken_Stable(t *testing.T) {
	a := HashToken("tok")
	if a != HashToken(" tok ") {
		t.Fatalf("expected whitespace-insensitive hash")
	}
	if a == HashToken("other") {
		t.Fatalf("expected distinct hashes")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}
