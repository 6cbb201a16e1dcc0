// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-04
// Last Modified: 2026-03-08

// Package engine drives the end-to-end migration of a Google Code project's
// issue history into a GitHub repository. The transfer is strictly
// sequential and safely re-runnable: issues already carrying a
// back-reference footer on the destination are recognized and only topped
// up with missing comments and state changes.
package engine

import (
	"context"
	"fmt"

	"github.com/wodow/google-code-issues-migrator/internal/core/codec"
	"github.com/wodow/google-code-issues-migrator/internal/core/config"
	"github.com/wodow/google-code-issues-migrator/internal/core/transform"
	"github.com/wodow/google-code-issues-migrator/internal/integrations/github"
	"github.com/wodow/google-code-issues-migrator/internal/integrations/googlecode"
)

// Source is the read-only, paginated view of the source tracker.
type Source interface {
	Issues(ctx context.Context, startIndex, maxResults int) ([]googlecode.Issue, error)
	Comments(ctx context.Context, issueID, startIndex, maxResults int) ([]googlecode.Comment, error)
}

// Destination is the capability set the engine needs from the destination
// tracker. Body and comment edits belong to the backlink pass, not here.
type Destination interface {
	IssueLister
	CreateIssue(ctx context.Context, title, body string, labels []string) (*github.Issue, error)
	EditState(ctx context.Context, number int, state string) error
	Assign(ctx context.Context, number int, assignee string) error
	ListComments(ctx context.Context, number int) ([]github.Comment, error)
	CreateComment(ctx context.Context, number int, body string) error
	EnsureLabel(ctx context.Context, name string) (string, error)
	RemainingRequests(ctx context.Context) (int, error)
}

// Options are the per-run switches.
type Options struct {
	// DryRun skips every mutating destination call.
	DryRun bool

	// AssignOwner assigns issues that had an owner on Google Code to
	// AssigneeLogin.
	AssignOwner bool

	// AssigneeLogin is the destination user receiving owned issues.
	AssigneeLogin string

	// SynchronizeIDs creates closed placeholder issues across gaps in the
	// source numbering so destination numbers stay aligned 1:1.
	SynchronizeIDs bool
}

// Migrator transfers one project's issues. All state it holds (the label
// cache and the reconciliation index) is scoped to a single Run and
// discarded afterwards; the only durable marker is the footer embedded in
// each created issue.
type Migrator struct {
	src  Source
	dest Destination
	tr   *transform.Transformer
	cdc  *codec.Codec
	cfg  *config.Config
	opts Options
	rep  Reporter

	// labelCache holds label names already resolved or created on the
	// destination, populated lazily, never invalidated mid-run.
	labelCache map[string]struct{}
}

// New creates a Migrator.
func New(src Source, dest Destination, tr *transform.Transformer, cdc *codec.Codec, cfg *config.Config, opts Options, rep Reporter) *Migrator {
	return &Migrator{
		src:        src,
		dest:       dest,
		tr:         tr,
		cdc:        cdc,
		cfg:        cfg,
		opts:       opts,
		rep:        rep,
		labelCache: make(map[string]struct{}),
	}
}

// Run migrates all source issues in enumeration order. One issue is fully
// processed (creation, comments, state) before the next begins.
func (m *Migrator) Run(ctx context.Context) error {
	m.rep.Infof("Retrieving existing GitHub issues...")
	existing, err := ListAll(ctx, m.dest)
	if err != nil {
		return err
	}
	index := BuildIndex(existing, m.cdc, m.rep)
	m.logRateInfo(ctx)

	startIndex := 1
	previousID := 0
	for {
		issues, err := m.src.Issues(ctx, startIndex, m.cfg.PageSize)
		if err != nil {
			return err
		}
		if len(issues) == 0 {
			break
		}

		for i := range issues {
			iss := issues[i]
			if m.opts.SynchronizeIDs {
				if err := m.fillGaps(ctx, index, previousID, iss.ID); err != nil {
					return err
				}
			}
			if err := m.processIssue(ctx, index, iss); err != nil {
				return err
			}
			previousID = iss.ID
		}

		startIndex += m.cfg.PageSize
		m.logRateInfo(ctx)
	}
	return nil
}

// processIssue runs one source issue through skip/create, comment sync and
// state sync. Comment and state sync also run for issues that already exist
// on the destination, so re-runs pick up anything added upstream since.
func (m *Migrator) processIssue(ctx context.Context, index Index, iss googlecode.Issue) error {
	var dest *github.Issue

	switch {
	case index[iss.ID] != nil:
		dest = index[iss.ID]
		m.rep.Printf("Not adding issue %d (exists)", iss.ID)
	case m.cfg.IsFiltered(iss.Status):
		m.rep.Printf("Skipping issue %d (status %s filtered)", iss.ID, iss.Status)
	default:
		created, err := m.createIssue(ctx, iss)
		if err != nil {
			return err
		}
		if created != nil {
			index[iss.ID] = created
		}
		dest = created
	}

	if dest != nil {
		if err := m.syncComments(ctx, dest, iss.ID); err != nil {
			return err
		}
		// State sync always comes last so it cannot race ahead of comment
		// creation.
		if err := m.syncState(ctx, dest, iss); err != nil {
			return err
		}
	}

	m.rep.End()
	return nil
}

// createIssue transfers a single issue to the destination. The quota check
// runs first: an issue migration is never started that the remaining quota
// margin could interrupt part-way. In dry-run mode nothing is created and
// nil is returned.
func (m *Migrator) createIssue(ctx context.Context, iss googlecode.Issue) (*github.Issue, error) {
	if err := m.ensureQuota(ctx); err != nil {
		return nil, err
	}

	spec := m.tr.TransformIssue(iss)
	m.rep.Printf("Adding issue %d", iss.ID)

	if m.opts.DryRun {
		return nil, nil
	}

	if err := m.ensureLabels(ctx, spec.Labels); err != nil {
		return nil, err
	}

	created, err := m.dest.CreateIssue(ctx, spec.Title, spec.Body, spec.Labels)
	if err != nil {
		return nil, err
	}

	if iss.Owner != "" && m.opts.AssignOwner {
		if err := m.dest.Assign(ctx, created.Number, m.opts.AssigneeLogin); err != nil {
			return nil, err
		}
	}

	return created, nil
}

// syncComments replays the source comments that are not yet present on the
// destination issue, in source order. Existing destination bodies are
// fetched once and normalized for the legacy header variant before
// comparison.
func (m *Migrator) syncComments(ctx context.Context, dest *github.Issue, sourceID int) error {
	destComments, err := m.dest.ListComments(ctx, dest.Number)
	if err != nil {
		return err
	}
	existing := make(map[string]struct{}, len(destComments))
	for _, c := range destComments {
		existing[transform.NormalizeLegacyComment(c.Body)] = struct{}{}
	}

	startIndex := 1
	announced := false
	for {
		page, err := m.src.Comments(ctx, sourceID, startIndex, m.cfg.PageSize)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			break
		}

		for _, c := range page {
			if !transform.ShouldMigrateComment(c) {
				continue
			}
			body := m.tr.FormatComment(c)
			if _, dup := existing[body]; dup {
				continue
			}
			if !announced {
				m.rep.Printf(", adding comments")
				announced = true
			}
			if !m.opts.DryRun {
				if err := m.dest.CreateComment(ctx, dest.Number, body); err != nil {
					return err
				}
			}
			m.rep.Printf(".")
		}

		startIndex += m.cfg.PageSize
	}
	return nil
}

// syncState brings the destination issue's open/closed state in line with
// the source.
func (m *Migrator) syncState(ctx context.Context, dest *github.Issue, iss googlecode.Issue) error {
	if iss.State == "" || dest.State == iss.State {
		return nil
	}
	if m.opts.DryRun {
		return nil
	}
	if err := m.dest.EditState(ctx, dest.Number, iss.State); err != nil {
		return err
	}
	dest.State = iss.State
	return nil
}

// fillGaps synthesizes closed placeholder issues for every source ID in
// (previousID, nextID) that is not already migrated, keeping destination
// numbering aligned with the source when IDs are synchronized.
func (m *Migrator) fillGaps(ctx context.Context, index Index, previousID, nextID int) error {
	for id := previousID + 1; id < nextID; id++ {
		if _, ok := index[id]; ok {
			continue
		}

		m.rep.Infof("Using dummy entry for missing issue %d", id)
		if err := m.ensureQuota(ctx); err != nil {
			return err
		}
		if m.opts.DryRun {
			continue
		}

		spec := m.tr.PlaceholderIssue(id)
		if err := m.ensureLabels(ctx, spec.Labels); err != nil {
			return err
		}
		created, err := m.dest.CreateIssue(ctx, spec.Title, spec.Body, spec.Labels)
		if err != nil {
			return err
		}
		if err := m.dest.EditState(ctx, created.Number, "closed"); err != nil {
			return err
		}
		created.State = "closed"
		index[id] = created
	}
	return nil
}

// ensureQuota aborts the run before an issue migration starts if the
// remaining destination quota is below the safety margin. It is deliberately
// checked per issue, never mid-issue, so quota exhaustion cannot leave an
// issue half-created.
func (m *Migrator) ensureQuota(ctx context.Context) error {
	remaining, err := m.dest.RemainingRequests(ctx)
	if err != nil {
		return fmt.Errorf("failed to check rate limit: %w", err)
	}
	if remaining < m.cfg.SafetyMargin {
		return fmt.Errorf("aborting: %d API requests remaining, below safety margin of %d", remaining, m.cfg.SafetyMargin)
	}
	return nil
}

// ensureLabels resolves every label through the run-scoped cache, creating
// missing ones on the destination.
func (m *Migrator) ensureLabels(ctx context.Context, names []string) error {
	for _, name := range names {
		if _, ok := m.labelCache[name]; ok {
			continue
		}
		if _, err := m.dest.EnsureLabel(ctx, name); err != nil {
			return err
		}
		m.labelCache[name] = struct{}{}
	}
	return nil
}

func (m *Migrator) logRateInfo(ctx context.Context) {
	remaining, err := m.dest.RemainingRequests(ctx)
	if err != nil {
		m.rep.Warnf("could not read rate limit: %v", err)
		return
	}
	m.rep.Infof("Rate limit remaining: %d", remaining)
}
