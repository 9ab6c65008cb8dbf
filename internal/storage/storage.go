// Package storage provides the project, task and team stores backed by JSON
// documents, and a SQLite report index rebuilt from them.
package storage

import (
	"time"

	"github.com/hatvoni/hatvoni/internal/store"
	"go.uber.org/zap"
)

// Document field names, one per backing file.
const (
	ProjectsField = "projects"
	TasksField    = "tasks"
	MembersField  = "members"
)

// Option configures a store.
type Option func(*options)

type options struct {
	logger *zap.Logger
	now    func() time.Time
}

// WithLogger sets the logger passed down to the underlying table.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock overrides the time source used for timestamps set by updates.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

func (o options) tableOptions() []store.Option {
	return []store.Option{store.WithLogger(o.logger)}
}
