package usecase

import (
	"log"
	"time"
)

type base struct {
	now    func() time.Time
	logger *log.Logger
}

type Option func(*base)

func WithClock(now func() time.Time) Option {
	return func(b *base) {
		if now != nil {
			b.now = now
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(b *base) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func newBase(opts []Option) base {
	b := base{
		now:    func() time.Time { return time.Now().UTC() },
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}
