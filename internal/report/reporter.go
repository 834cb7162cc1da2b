// Package report writes run results to a sink: a Google Sheet or the log.
package report

import (
	"context"
	"time"

	"github.com/oncallops/groupwatch/internal/change"
	"github.com/oncallops/groupwatch/internal/policy"
)

// RunInfo identifies one sync run in every row it produces.
type RunInfo struct {
	ID        string
	StartedAt time.Time
}

// Event is an inbound webhook notification worth keeping a record of.
type Event struct {
	ID         string
	Source     string
	Type       string
	Actor      string
	Summary    string
	ReceivedAt time.Time
}

// GroupViolations ties a group to its policy violations for reporting.
type GroupViolations struct {
	GroupEmail string
	Violations []policy.Violation
}

// Reporter receives the outcome of a run. Implementations own all I/O;
// errors bubble up so the caller decides whether a failed report fails the
// run.
type Reporter interface {
	ReportChanges(ctx context.Context, run RunInfo, changes []change.Change) error
	ReportViolations(ctx context.Context, run RunInfo, violations []GroupViolations) error
	ReportEvent(ctx context.Context, event Event) error
}
