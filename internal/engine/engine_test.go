package engine

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/dotcommander/agentready/internal/config"
	"github.com/dotcommander/agentready/internal/models"
)

func testRepo() *models.Repository {
	return &models.Repository{Path: "/tmp/x", Name: "x"}
}

func TestRunWeightedMean(t *testing.T) {
	reg := registryOf(
		&stubAssessor{id: "a", weight: 0.6, status: models.StatusPass, score: 100},
		&stubAssessor{id: "b", weight: 0.4, status: models.StatusFail, score: 0},
	)

	a, err := New(reg, nil).Run(context.Background(), testRepo())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if a.OverallScore != 60 {
		t.Errorf("overall score = %v, want 60", a.OverallScore)
	}
	if a.CertificationLevel != models.CertificationSilver {
		t.Errorf("certification = %q, want silver", a.CertificationLevel)
	}
	if a.AssessedCount != 2 || a.SkippedCount != 0 || a.TotalCount != 2 {
		t.Errorf("counts = %d/%d/%d, want 2/0/2", a.AssessedCount, a.SkippedCount, a.TotalCount)
	}
}

func TestRunExclusionChangesScore(t *testing.T) {
	reg := registryOf(
		&stubAssessor{id: "a", weight: 0.6, status: models.StatusPass, score: 100},
		&stubAssessor{id: "b", weight: 0.4, status: models.StatusFail, score: 0},
	)
	cfg := &config.Config{Parallel: true, Concurrency: 4, ExcludedAttributes: []string{"b"}}

	a, err := New(reg, cfg).Run(context.Background(), testRepo())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if a.OverallScore != 100 {
		t.Errorf("overall score = %v, want 100 with b excluded", a.OverallScore)
	}
	if a.TotalCount != 1 {
		t.Errorf("total count = %d, want 1", a.TotalCount)
	}
	if a.Config == nil || len(a.Config.ExcludedAttributes) != 1 {
		t.Error("assessment should snapshot the exclusion")
	}
}

func TestRunErrorIsolation(t *testing.T) {
	// The erroring assessor drops out of both numerator and denominator.
	reg := registryOf(
		&stubAssessor{id: "a", weight: 0.3, status: models.StatusPass, score: 100},
		&stubAssessor{id: "b", weight: 0.3, status: models.StatusError},
		&stubAssessor{id: "c", weight: 0.4, status: models.StatusPass, score: 50},
	)

	a, err := New(reg, nil).Run(context.Background(), testRepo())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := (0.3*100 + 0.4*50) / 0.7
	if math.Abs(a.OverallScore-want) > 1e-9 {
		t.Errorf("overall score = %v, want %v", a.OverallScore, want)
	}
	if a.AssessedCount != 2 || a.SkippedCount != 1 {
		t.Errorf("counts = %d assessed/%d skipped, want 2/1", a.AssessedCount, a.SkippedCount)
	}
}

func TestRunNothingAssessed(t *testing.T) {
	reg := registryOf(
		&stubAssessor{id: "a", weight: 0.5, status: models.StatusNotApplicable},
		&stubAssessor{id: "b", weight: 0.5, status: models.StatusError},
	)

	_, err := New(reg, nil).Run(context.Background(), testRepo())

	var nerr *NoAttributesAssessedError
	if !errors.As(err, &nerr) {
		t.Fatalf("Run() error = %v, want *NoAttributesAssessedError", err)
	}
	if nerr.Total != 2 || nerr.Skipped != 2 {
		t.Errorf("error details = %+v, want Total=2 Skipped=2", nerr)
	}
}

func TestRunPanicBecomesErrorFinding(t *testing.T) {
	reg := registryOf(
		&stubAssessor{id: "a", weight: 0.5, status: models.StatusPass, score: 80},
		&stubAssessor{id: "boom", weight: 0.5, panicky: true},
	)

	a, err := New(reg, nil).Run(context.Background(), testRepo())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	var boom models.Finding
	for _, f := range a.Findings {
		if f.Attribute.ID == "boom" {
			boom = f
		}
	}
	if boom.Status != models.StatusError {
		t.Fatalf("panicking assessor finding status = %q, want error", boom.Status)
	}
	if !strings.Contains(boom.ErrorMessage, "panicked") {
		t.Errorf("error message = %q, want panic note", boom.ErrorMessage)
	}
	if a.OverallScore != 80 {
		t.Errorf("overall score = %v, want 80 from the surviving assessor", a.OverallScore)
	}
}

func TestRunFindingsAreDeterministicallyOrdered(t *testing.T) {
	ids := []string{"e", "a", "c", "b", "d"}
	stubs := make([]*stubAssessor, len(ids))
	for i, id := range ids {
		stubs[i] = &stubAssessor{id: id, weight: 0.2, status: models.StatusPass, score: 100}
	}
	eng := New(registryOf(stubs...), &config.Config{Parallel: true, Concurrency: 8})

	for run := 0; run < 5; run++ {
		a, err := eng.Run(context.Background(), testRepo())
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		for i, f := range a.Findings {
			if f.Attribute.ID != ids[i] {
				t.Fatalf("finding %d is %q, want %q (registry order)", i, f.Attribute.ID, ids[i])
			}
		}
	}
}

func TestRunCancelledContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	reg := registryOf(&stubAssessor{id: "slow", weight: 1, status: models.StatusPass, score: 100, block: block})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(reg, nil).Run(ctx, testRepo())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
