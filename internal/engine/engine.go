// Package engine runs assessors against a repository and aggregates their
// findings into a weighted overall score and certification level.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dotcommander/agentready/internal/assessors"
	"github.com/dotcommander/agentready/internal/config"
	"github.com/dotcommander/agentready/internal/models"
)

// Engine coordinates one assessment run. The registry and config are fixed
// at construction; Run may be called for multiple repositories.
type Engine struct {
	registry []assessors.Assessor
	cfg      *config.Config
}

// New creates an engine over the given assessor registry. cfg may be nil,
// in which case registry defaults apply and execution is parallel.
func New(registry []assessors.Assessor, cfg *config.Config) *Engine {
	return &Engine{registry: registry, cfg: cfg}
}

// Run assesses the repository and returns the aggregate assessment.
//
// Every non-excluded assessor runs exactly once. A panicking assessor is
// converted to an error finding and never aborts the run. Aggregation waits
// for all assessors to finish (a full barrier — the weighted mean needs the
// complete denominator) and is deterministic: findings appear in registry
// order regardless of completion order, so the overall score is invariant
// under scheduling.
//
// Fatal outcomes: a *ValidationError before anything runs, ctx.Err() when
// cancelled mid-run, and *NoAttributesAssessedError when nothing was left
// to score. None of these produce a partial assessment.
func (e *Engine) Run(ctx context.Context, repo *models.Repository) (*models.Assessment, error) {
	start := time.Now()

	res, err := Resolve(e.registry, e.cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		slog.Warn(w)
	}

	active := make([]assessors.Assessor, 0, len(res.Order))
	for _, a := range e.registry {
		if !res.Excluded[a.AttributeID()] {
			active = append(active, a)
		}
	}

	findings, err := e.assessAll(ctx, active, repo)
	if err != nil {
		return nil, err
	}

	return e.aggregate(repo, res, findings, start)
}

// assessAll runs the active assessors, in parallel unless configured
// otherwise. The findings slice is indexed by assessor position so output
// order never depends on goroutine scheduling.
func (e *Engine) assessAll(ctx context.Context, active []assessors.Assessor, repo *models.Repository) ([]models.Finding, error) {
	findings := make([]models.Finding, len(active))

	parallel := true
	concurrency := 8
	if e.cfg != nil {
		parallel = e.cfg.Parallel
		if e.cfg.Concurrency > 0 {
			concurrency = e.cfg.Concurrency
		}
	}
	if !parallel {
		concurrency = 1
	}

	slog.Debug("starting assessment", "assessors", len(active), "concurrency", concurrency)

	sem := make(chan struct{}, concurrency)
	done := make(chan int, len(active))
	for i, a := range active {
		go func(i int, a assessors.Assessor) {
			sem <- struct{}{}
			defer func() { <-sem; done <- i }()
			findings[i] = safeAssess(a, repo)
		}(i, a)
	}

	// Full barrier: every assessor finishes (or the context aborts the
	// whole batch) before aggregation sees anything.
	for range active {
		select {
		case <-done:
		case <-ctx.Done():
			slog.Warn("assessment cancelled", "error", ctx.Err())
			return nil, ctx.Err()
		}
	}
	return findings, nil
}

// safeAssess invokes one assessor, converting a panic into an error finding
// so a misbehaving check never takes down the run.
func safeAssess(a assessors.Assessor, repo *models.Repository) (finding models.Finding) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("assessor panicked", "attribute", a.AttributeID(), "panic", r)
			finding = models.ErrorFinding(a.Attribute(), fmt.Sprintf("assessor panicked: %v", r))
		}
	}()

	start := time.Now()
	finding = a.Assess(repo)
	slog.Debug("assessor complete",
		"attribute", a.AttributeID(),
		"status", finding.Status,
		"score", finding.Score,
		"duration", time.Since(start))
	return finding
}

// aggregate computes the weighted mean over pass/fail findings and builds
// the immutable assessment.
func (e *Engine) aggregate(repo *models.Repository, res *Resolution, findings []models.Finding, start time.Time) (*models.Assessment, error) {
	var numerator, denominator float64
	assessed, skipped := 0, 0

	for _, f := range findings {
		if !f.Counted() {
			skipped++
			continue
		}
		assessed++
		weight, ok := res.Weights[f.Attribute.ID]
		if !ok {
			// Unreachable through Resolve, which seeds every active id;
			// the attribute's own default weight is the contract either way.
			weight = f.Attribute.DefaultWeight
		}
		numerator += weight * f.Score
		denominator += weight
	}

	if denominator == 0 {
		return nil, &NoAttributesAssessedError{
			Total:    len(findings),
			Excluded: len(res.Excluded),
			Skipped:  skipped,
		}
	}

	overall := numerator / denominator
	return &models.Assessment{
		Repository:         repo,
		Findings:           findings,
		OverallScore:       overall,
		CertificationLevel: models.CertificationFromScore(overall),
		AssessedCount:      assessed,
		SkippedCount:       skipped,
		TotalCount:         len(findings),
		Timestamp:          start,
		Duration:           time.Since(start),
		Config:             e.snapshot(),
	}, nil
}

// snapshot records the scoring-relevant config the assessment used.
func (e *Engine) snapshot() *models.ConfigSnapshot {
	if e.cfg == nil || (len(e.cfg.Weights) == 0 && len(e.cfg.ExcludedAttributes) == 0) {
		return nil
	}
	snap := &models.ConfigSnapshot{}
	if len(e.cfg.Weights) > 0 {
		snap.Weights = make(map[string]float64, len(e.cfg.Weights))
		for id, w := range e.cfg.Weights {
			snap.Weights[id] = w
		}
	}
	snap.ExcludedAttributes = append(snap.ExcludedAttributes, e.cfg.ExcludedAttributes...)
	return snap
}
