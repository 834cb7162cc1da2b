package report

import (
	"context"

	"github.com/oncallops/groupwatch/internal/change"
	"github.com/oncallops/groupwatch/tools"
)

// LogReporter writes run results to the log. It is the fallback sink when no
// spreadsheet is configured and the only sink used for dry runs.
type LogReporter struct{}

func (LogReporter) ReportChanges(_ context.Context, run RunInfo, changes []change.Change) error {
	for _, c := range changes {
		tools.Log.WithFields(map[string]interface{}{
			"run":      run.ID,
			"group":    c.EntityID,
			"business": c.Business,
			"full":     c.Full,
			"new":      c.New,
		}).Info("Settings changed")
	}
	return nil
}

func (LogReporter) ReportViolations(_ context.Context, run RunInfo, violations []GroupViolations) error {
	for _, g := range violations {
		for _, v := range g.Violations {
			tools.Log.WithFields(map[string]interface{}{
				"run":     run.ID,
				"group":   g.GroupEmail,
				"setting": v.Key,
				"want":    v.Want,
				"got":     v.Got,
			}).Warn("Policy violation")
		}
	}
	return nil
}

func (LogReporter) ReportEvent(_ context.Context, event Event) error {
	tools.Log.WithFields(map[string]interface{}{
		"event":  event.ID,
		"source": event.Source,
		"type":   event.Type,
		"actor":  event.Actor,
	}).Infof("Webhook event: %s", event.Summary)
	return nil
}
