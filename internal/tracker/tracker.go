// Package tracker implements the work-session state machine and the
// operations built around it: work-item management, per-item totals and the
// period dashboard.
//
// Every operation takes an auth.Owner and scopes all reads and writes to it.
// Elapsed time is never advanced in memory; it is derived from the stored
// timestamps on each read.
package tracker

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/balkashynov/horas/internal/models"
)

// FinishHook is called after a session has been finished and committed
type FinishHook func(item *models.WorkItem, session *models.Session)

// Tracker coordinates the storage collaborator with the session state machine
type Tracker struct {
	store    Store
	clock    func() time.Time
	loc      *time.Location
	log      logrus.FieldLogger
	onFinish []FinishHook
}

// Option configures a Tracker
type Option func(*Tracker)

// WithClock replaces time.Now, mostly for tests
func WithClock(clock func() time.Time) Option {
	return func(t *Tracker) {
		t.clock = clock
	}
}

// WithLocation sets the time zone used to resolve periods and weekdays
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.loc = loc
		}
	}
}

// WithLogger sets the logger; by default nothing is logged
func WithLogger(log logrus.FieldLogger) Option {
	return func(t *Tracker) {
		if log != nil {
			t.log = log
		}
	}
}

// WithFinishHook registers a callback run after every successful Finish
func WithFinishHook(hook FinishHook) Option {
	return func(t *Tracker) {
		t.onFinish = append(t.onFinish, hook)
	}
}

// New creates a Tracker backed by store
func New(store Store, opts ...Option) *Tracker {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	t := &Tracker{
		store: store,
		clock: time.Now,
		loc:   time.Local,
		log:   quiet,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Now returns the tracker clock's current instant in UTC. Everything is
// stored in UTC and converted to the tracker location only for bucketing.
func (t *Tracker) Now() time.Time {
	return t.clock().UTC()
}

// Location returns the time zone periods are resolved in
func (t *Tracker) Location() *time.Location {
	return t.loc
}
