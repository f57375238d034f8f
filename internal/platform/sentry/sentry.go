// Package sentry wires error monitoring into the API, worker, and beat
// binaries.
package sentry

import (
	"fmt"
	"time"

	"github.com/andreypavlenko/jobmatch/internal/config"
	"github.com/getsentry/sentry-go"
)

// Init configures the global Sentry client. It is a no-op (returns a
// flush function that does nothing) when no DSN is configured, so local
// development never needs a Sentry project.
func Init(cfg config.SentryConfig, release string) (flush func(), err error) {
	if cfg.DSN == "" {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     release,
	}); err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}

	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureTaskFailure reports a failed task-runtime task (component K,
// state = FAILURE) in addition to it being recorded in the result store.
func CaptureTaskFailure(taskName, taskID string, err error) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("task_name", taskName)
		scope.SetTag("task_id", taskID)
		sentry.CaptureException(err)
	})
}
