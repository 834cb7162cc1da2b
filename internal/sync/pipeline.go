// Package sync runs one watch cycle: list groups, fetch settings, hash,
// diff against the stored baseline, check policy, optionally patch, report,
// and persist the fresh baseline. One pipeline, parameterized by options;
// every group goes through the same path.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oncallops/groupwatch/internal/change"
	"github.com/oncallops/groupwatch/internal/policy"
	"github.com/oncallops/groupwatch/internal/report"
	"github.com/oncallops/groupwatch/internal/state"
	"github.com/oncallops/groupwatch/internal/workspace"
	"github.com/oncallops/groupwatch/tools"
)

type Options struct {
	Policy  policy.Policy
	DryRun  bool
	Enforce bool
	Workers int
}

type Pipeline struct {
	Directory workspace.Directory
	Settings  workspace.SettingsAPI
	Store     state.Store
	Reporter  report.Reporter
	Options   Options
}

// Result summarizes one run.
type Result struct {
	Run         report.RunInfo
	Groups      int
	Changes     []change.Change
	Violations  []report.GroupViolations
	EtagSkipped int
	Patched     int
	FetchErrors int
}

type fetched struct {
	settings change.Settings
	etag     string
	err      error
}

// Run executes one cycle. The pipeline assumes it is the only active run;
// the stored baseline is replaced wholesale at the end.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		Run: report.RunInfo{ID: uuid.NewString(), StartedAt: time.Now()},
	}
	log := tools.Log.WithField("run", result.Run.ID)

	groups, err := p.Directory.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	result.Groups = len(groups)
	log.Infof("Watching %d groups", len(groups))

	previous, err := p.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load baseline: %w", err)
	}

	results := make([]fetched, len(groups))
	tools.RunWithWorkers(ctx, groups, p.workers(), func(i int, g workspace.Group) {
		settings, etag, err := p.Settings.Get(ctx, g.Email)
		results[i] = fetched{settings: settings, etag: etag, err: err}
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fresh := make(state.Snapshot, len(groups))
	var order []string

	for i, g := range groups {
		r := results[i]
		if r.err != nil {
			result.FetchErrors++
			log.WithError(r.err).Errorf("Failed to fetch settings for %s", g.Email)
			// Carry the old entry forward so a transient fetch failure does
			// not churn the baseline and flag the group as new next run.
			if prev, ok := previous[g.Email]; ok {
				fresh[g.Email] = prev
			}
			continue
		}

		entry := state.Entry{Etag: r.etag}
		prev, known := previous[g.Email]
		if known && prev.Etag != "" && prev.Etag == r.etag {
			// ETag unchanged: the object is byte-identical upstream, so the
			// stored hashes still hold. Skip re-hashing.
			entry.Hashes = prev.Hashes
			result.EtagSkipped++
		} else {
			pair, err := change.ComputePair(r.settings, p.Options.Policy.TrackedKeys, p.Options.Policy.ExcludedKeys)
			if err != nil {
				return nil, fmt.Errorf("hash settings for %s: %w", g.Email, err)
			}
			entry.Hashes = pair
		}

		fresh[g.Email] = entry
		order = append(order, g.Email)

		// Violations are checked every run, even when nothing hashed as
		// changed. A violating value can be the steady state.
		if violations := p.Options.Policy.Violations(r.settings); len(violations) > 0 {
			result.Violations = append(result.Violations, report.GroupViolations{
				GroupEmail: g.Email,
				Violations: violations,
			})
		}
	}

	result.Changes = change.Diff(previous.Hashes(), fresh.Hashes(), order)

	if p.Options.Enforce {
		p.enforce(ctx, result, log)
	}

	if err := p.Reporter.ReportChanges(ctx, result.Run, result.Changes); err != nil {
		return nil, fmt.Errorf("report changes: %w", err)
	}
	if err := p.Reporter.ReportViolations(ctx, result.Run, result.Violations); err != nil {
		return nil, fmt.Errorf("report violations: %w", err)
	}

	if p.Options.DryRun {
		log.Info("[DRY RUN] Skipping baseline save")
	} else if err := p.Store.Save(ctx, fresh); err != nil {
		return nil, fmt.Errorf("save baseline: %w", err)
	}

	tools.LogRunSummary(result.Groups, len(result.Changes), len(result.Violations), result.EtagSkipped)
	return result, nil
}

// enforce patches the violating keys of each group back to the required
// values. The baseline keeps the pre-patch hashes; the next run picks the
// patched object up as a regular change.
func (p *Pipeline) enforce(ctx context.Context, result *Result, log *logrus.Entry) {
	for _, g := range result.Violations {
		delta := policy.Delta(g.Violations)
		if p.Options.DryRun {
			log.Infof("[DRY RUN] Would patch %s: %v", g.GroupEmail, delta)
			continue
		}
		if err := p.Settings.Patch(ctx, g.GroupEmail, delta); err != nil {
			tools.Log.WithError(err).Errorf("Failed to patch %s", g.GroupEmail)
			continue
		}
		result.Patched++
		log.Infof("Patched %d settings on %s", len(delta), g.GroupEmail)
	}
}

func (p *Pipeline) workers() int {
	if p.Options.Workers > 0 {
		return p.Options.Workers
	}
	return 5
}
