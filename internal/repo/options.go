package repo

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// options collects the injectable collaborators shared by every repository:
// a clock for created/updated stamps, a UUID source, and randomness for
// practice selection. Production defaults are time.Now and uuid.NewString.
type options struct {
	now   func() time.Time
	newID func() string
	rnd   *rand.Rand
}

// Option configures a repository.
type Option func(*options)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides the UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithRand overrides selection randomness for deterministic tests.
func WithRand(rnd *rand.Rand) Option {
	return func(o *options) { o.rnd = rnd }
}

func buildOptions(opts []Option) options {
	o := options{
		now:   time.Now,
		newID: uuid.NewString,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
