package testfixtures

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/message"
	"job-portal/internal/domain/review"
	"job-portal/internal/domain/session"
	"job-portal/internal/domain/user"
)

// Store is an in-memory backing for every repository, mirroring the
// constraints the Postgres schema enforces (unique email, unique
// application per job and job seeker).
type Store struct {
	mu sync.Mutex

	users        map[string]user.User
	sessions     map[string]session.Session
	jobs         []job.Job
	applications []application.Application
	messages     []message.Message
	reviews      []review.Review

	// Err, when set, is returned by every repository call.
	Err error
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]user.User),
		sessions: make(map[string]session.Session),
	}
}

func (s *Store) Users() *Users               { return &Users{s: s} }
func (s *Store) Sessions() *Sessions         { return &Sessions{s: s} }
func (s *Store) Jobs() *Jobs                 { return &Jobs{s: s} }
func (s *Store) Applications() *Applications { return &Applications{s: s} }
func (s *Store) Messages() *Messages         { return &Messages{s: s} }
func (s *Store) Reviews() *Reviews           { return &Reviews{s: s} }

// SessionCount returns the number of stored sessions, expired ones included.
func (s *Store) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) ApplicationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.applications)
}

type Users struct{ s *Store }

func (r *Users) Create(_ context.Context, u user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrEmailDuplicate
		}
	}
	if u.Skills == nil {
		u.Skills = []string{}
	}
	r.s.users[u.ID] = u
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return user.User{}, r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return user.User{}, r.s.Err
	}
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *Users) GetByIDs(_ context.Context, ids []string) (map[string]user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make(map[string]user.User, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (r *Users) UpdateProfile(_ context.Context, id string, p user.ProfileUpdate) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return user.User{}, r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	u = p.Apply(u)
	r.s.users[id] = u
	return u, nil
}

type Sessions struct{ s *Store }

func (r *Sessions) Create(_ context.Context, sess session.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.sessions[sess.Token] = sess
	return nil
}

func (r *Sessions) GetByToken(_ context.Context, token string) (session.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return session.Session{}, r.s.Err
	}
	sess, ok := r.s.sessions[strings.TrimSpace(token)]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return sess, nil
}

func (r *Sessions) DeleteByToken(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	delete(r.s.sessions, strings.TrimSpace(token))
	return nil
}

func (r *Sessions) DeleteExpiredForUser(_ context.Context, userID string, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	var n int64
	for tok, sess := range r.s.sessions {
		if sess.UserID == userID && sess.Expired(now) {
			delete(r.s.sessions, tok)
			n++
		}
	}
	return n, nil
}

type Jobs struct{ s *Store }

func (r *Jobs) Create(_ context.Context, j job.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.jobs = append(r.s.jobs, j)
	return nil
}

func (r *Jobs) GetByID(_ context.Context, id string) (job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return job.Job{}, r.s.Err
	}
	for _, j := range r.s.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return job.Job{}, job.ErrNotFound
}

func (r *Jobs) List(_ context.Context, f job.ListFilter) ([]job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	matched := make([]job.Job, 0)
	for _, j := range newestFirst(r.s.jobs, func(j job.Job) time.Time { return j.CreatedAt }) {
		if matchesJobFilter(f, j) {
			matched = append(matched, j)
		}
	}
	return page(matched, f.Skip, f.Limit), nil
}

func (r *Jobs) ListByEmployer(_ context.Context, employerID string) ([]job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]job.Job, 0)
	for _, j := range newestFirst(r.s.jobs, func(j job.Job) time.Time { return j.CreatedAt }) {
		if j.EmployerID == employerID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *Jobs) UpdateStatus(_ context.Context, id string, status job.Status, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for i := range r.s.jobs {
		if r.s.jobs[i].ID == id {
			r.s.jobs[i].Status = status
			r.s.jobs[i].UpdatedAt = updatedAt
			return nil
		}
	}
	return job.ErrNotFound
}

type Applications struct{ s *Store }

func (r *Applications) Create(_ context.Context, a application.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, existing := range r.s.applications {
		if existing.JobID == a.JobID && existing.JobSeekerID == a.JobSeekerID {
			return application.ErrDuplicate
		}
	}
	r.s.applications = append(r.s.applications, a)
	return nil
}

func (r *Applications) GetByID(_ context.Context, id string) (application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return application.Application{}, r.s.Err
	}
	for _, a := range r.s.applications {
		if a.ID == id {
			return a, nil
		}
	}
	return application.Application{}, application.ErrNotFound
}

func (r *Applications) FindByJobAndSeeker(_ context.Context, jobID, jobSeekerID string) (application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return application.Application{}, r.s.Err
	}
	for _, a := range r.s.applications {
		if a.JobID == jobID && a.JobSeekerID == jobSeekerID {
			return a, nil
		}
	}
	return application.Application{}, application.ErrNotFound
}

func (r *Applications) ListByJobSeeker(_ context.Context, jobSeekerID string) ([]application.Application, error) {
	return r.filter(func(a application.Application) bool { return a.JobSeekerID == jobSeekerID })
}

func (r *Applications) ListByJob(_ context.Context, jobID string) ([]application.Application, error) {
	return r.filter(func(a application.Application) bool { return a.JobID == jobID })
}

func (r *Applications) filter(keep func(application.Application) bool) ([]application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]application.Application, 0)
	for _, a := range newestFirst(r.s.applications, func(a application.Application) time.Time { return a.CreatedAt }) {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *Applications) UpdateStatus(_ context.Context, id string, status application.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for i := range r.s.applications {
		if r.s.applications[i].ID == id {
			r.s.applications[i].Status = status
			return nil
		}
	}
	return application.ErrNotFound
}

type Messages struct{ s *Store }

func (r *Messages) Create(_ context.Context, m message.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.messages = append(r.s.messages, m)
	return nil
}

func (r *Messages) ListBetween(_ context.Context, a, b string) ([]message.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]message.Message, 0)
	for _, m := range r.s.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *Messages) ListInvolving(_ context.Context, userID string) ([]message.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]message.Message, 0)
	for _, m := range newestFirst(r.s.messages, func(m message.Message) time.Time { return m.CreatedAt }) {
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *Messages) MarkRead(_ context.Context, senderID, receiverID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	var n int64
	for i := range r.s.messages {
		m := &r.s.messages[i]
		if m.SenderID == senderID && m.ReceiverID == receiverID && !m.Read {
			m.Read = true
			n++
		}
	}
	return n, nil
}

type Reviews struct{ s *Store }

func (r *Reviews) Create(_ context.Context, rv review.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.reviews = append(r.s.reviews, rv)
	return nil
}

func (r *Reviews) ListByReviewed(_ context.Context, reviewedID string) ([]review.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]review.Review, 0)
	for _, rv := range newestFirst(r.s.reviews, func(rv review.Review) time.Time { return rv.CreatedAt }) {
		if rv.ReviewedID == reviewedID {
			out = append(out, rv)
		}
	}
	return out, nil
}

// newestFirst returns a copy of items ordered by ts descending; ties keep the
// later insertion first, as a created_at DESC scan would for distinct rows.
func newestFirst[T any](items []T, ts func(T) time.Time) []T {
	out := make([]T, len(items))
	for i := range items {
		out[len(items)-1-i] = items[i]
	}
	sort.SliceStable(out, func(i, j int) bool { return ts(out[i]).After(ts(out[j])) })
	return out
}

func page[T any](items []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return items[:0]
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

var (
	_ user.Repository        = (*Users)(nil)
	_ session.Repository     = (*Sessions)(nil)
	_ job.Repository         = (*Jobs)(nil)
	_ application.Repository = (*Applications)(nil)
	_ message.Repository     = (*Messages)(nil)
	_ review.Repository      = (*Reviews)(nil)
)
