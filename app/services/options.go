package services

import "time"

// DefaultPerPage is the page size used when none is configured.
const DefaultPerPage = 10

// Option customises a service.
type Option func(*options)

type options struct {
	now     func() time.Time
	perPage int
}

func newOptions(opts []Option) options {
	o := options{
		now:     func() time.Time { return time.Now().UTC() },
		perPage: DefaultPerPage,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithPerPage sets the page size used when a caller does not ask for one.
func WithPerPage(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.perPage = n
		}
	}
}
