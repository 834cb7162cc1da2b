package report

import (
	"fmt"
	"time"

	"github.com/oncallops/groupwatch/internal/change"
)

const rowTimeFormat = time.RFC3339

var (
	changeHeader    = []any{"run_id", "run_started", "group", "business_changed", "full_changed", "new"}
	violationHeader = []any{"run_id", "run_started", "group", "setting", "required", "actual"}
	eventHeader     = []any{"event_id", "received", "source", "type", "actor", "summary"}
)

func buildChangeRows(run RunInfo, changes []change.Change) [][]any {
	rows := make([][]any, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, []any{
			run.ID,
			run.StartedAt.UTC().Format(rowTimeFormat),
			c.EntityID,
			c.Business,
			c.Full,
			c.New,
		})
	}
	return rows
}

func buildViolationRows(run RunInfo, groups []GroupViolations) [][]any {
	var rows [][]any
	for _, g := range groups {
		for _, v := range g.Violations {
			got := "<missing>"
			if v.Got != nil {
				got = fmt.Sprintf("%v", v.Got)
			}
			rows = append(rows, []any{
				run.ID,
				run.StartedAt.UTC().Format(rowTimeFormat),
				g.GroupEmail,
				v.Key,
				fmt.Sprintf("%v", v.Want),
				got,
			})
		}
	}
	return rows
}

func buildEventRow(event Event) []any {
	return []any{
		event.ID,
		event.ReceivedAt.UTC().Format(rowTimeFormat),
		event.Source,
		event.Type,
		event.Actor,
		event.Summary,
	}
}
