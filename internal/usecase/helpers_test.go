package usecase

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"job-portal/internal/infrastructure/identity"
	"job-portal/internal/testfixtures"
)

var quietLogger = log.New(io.Discard, "", 0)

func testOpts(clock *testfixtures.Clock) []Option {
	return []Option{WithClock(clock.Now), WithLogger(quietLogger)}
}

type fakeIdentity struct {
	profiles map[string]identity.Profile
	calls    int
}

func (f *fakeIdentity) SessionData(_ context.Context, sessionID string) (identity.Profile, error) {
	f.calls++
	p, ok := f.profiles[sessionID]
	if !ok {
		return identity.Profile{}, identity.ErrBadResponse
	}
	return p, nil
}

type published struct {
	room  string
	event string
	data  any
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []published
	refuse bool
}

func (f *fakeNotifier) Publish(room, event string, data any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refuse {
		return false
	}
	f.events = append(f.events, published{room: room, event: event, data: data})
	return true
}

func newClock() *testfixtures.Clock {
	return testfixtures.NewTickingClock(testfixtures.ReferenceTime(), time.Second)
}
