package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/dotcommander/agentready/internal/assessors"
	"github.com/dotcommander/agentready/internal/config"
	"github.com/dotcommander/agentready/internal/models"
)

// stubAssessor is a canned-result assessor for engine tests.
type stubAssessor struct {
	id      string
	weight  float64
	status  string
	score   float64
	panicky bool
	block   chan struct{} // when set, Assess waits until closed
}

func (s *stubAssessor) AttributeID() string { return s.id }
func (s *stubAssessor) Tier() int           { return models.TierEssential }

func (s *stubAssessor) Attribute() models.Attribute {
	return models.Attribute{ID: s.id, Name: s.id, Tier: models.TierEssential, DefaultWeight: s.weight}
}

func (s *stubAssessor) Assess(repo *models.Repository) models.Finding {
	if s.block != nil {
		<-s.block
	}
	if s.panicky {
		panic("stub exploded")
	}
	return models.Finding{Attribute: s.Attribute(), Status: s.status, Score: s.score}
}

func registryOf(stubs ...*stubAssessor) []assessors.Assessor {
	list := make([]assessors.Assessor, len(stubs))
	for i, s := range stubs {
		list[i] = s
	}
	return list
}

func TestResolveDefaults(t *testing.T) {
	reg := registryOf(
		&stubAssessor{id: "a", weight: 0.6},
		&stubAssessor{id: "b", weight: 0.4},
	)

	res, err := Resolve(reg, nil)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
	if got := res.Weights["a"]; got != 0.6 {
		t.Errorf("weight for a = %v, want 0.6", got)
	}
	if len(res.Order) != 2 || res.Order[0] != "a" || res.Order[1] != "b" {
		t.Errorf("order = %v, want [a b]", res.Order)
	}
}

func TestResolveOverrideApplied(t *testing.T) {
	reg := registryOf(&stubAssessor{id: "a", weight: 0.6})
	cfg := &config.Config{Weights: map[string]float64{"a": 1.0}}

	res, err := Resolve(reg, cfg)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got := res.Weights["a"]; got != 1.0 {
		t.Errorf("weight for a = %v, want override 1.0", got)
	}
}

func TestResolveRejectsNonPositiveWeights(t *testing.T) {
	reg := registryOf(&stubAssessor{id: "a", weight: 0.6})

	for _, w := range []float64{0, -0.5} {
		cfg := &config.Config{Weights: map[string]float64{"a": w}}
		_, err := Resolve(reg, cfg)

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Resolve() with weight %v: error = %v, want *ValidationError", w, err)
		}
		if verr.AttributeID != "a" {
			t.Errorf("ValidationError names %q, want %q", verr.AttributeID, "a")
		}
	}
}

func TestResolveExclusionWins(t *testing.T) {
	reg := registryOf(
		&stubAssessor{id: "a", weight: 0.6},
		&stubAssessor{id: "b", weight: 0.4},
	)
	cfg := &config.Config{
		Weights:            map[string]float64{"a": 0.9, "b": 0.1},
		ExcludedAttributes: []string{"b"},
	}

	res, err := Resolve(reg, cfg)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if !res.Excluded["b"] {
		t.Error("b should be excluded")
	}
	if _, ok := res.Weights["b"]; ok {
		t.Error("excluded attribute should have no effective weight")
	}
	if !hasWarningContaining(res.Warnings, "exclusion wins") {
		t.Errorf("expected exclusion-wins warning, got %v", res.Warnings)
	}
}

func TestResolveExcludedOverrideSkipsValidation(t *testing.T) {
	// A weight override on an excluded attribute is dead config: exclusion
	// is absolute, so even an invalid value must not abort the run.
	reg := registryOf(
		&stubAssessor{id: "a", weight: 0.6},
		&stubAssessor{id: "b", weight: 0.4},
	)
	cfg := &config.Config{
		Weights:            map[string]float64{"b": -1},
		ExcludedAttributes: []string{"b"},
	}

	res, err := Resolve(reg, cfg)
	if err != nil {
		t.Fatalf("Resolve() error: %v, want none for an excluded override", err)
	}
	if !res.Excluded["b"] {
		t.Error("b should be excluded")
	}
	if !hasWarningContaining(res.Warnings, "exclusion wins") {
		t.Errorf("expected exclusion-wins warning, got %v", res.Warnings)
	}

	// The same invalid value on a non-excluded attribute stays fatal.
	cfg = &config.Config{Weights: map[string]float64{"b": -1}}
	if _, err := Resolve(reg, cfg); err == nil {
		t.Error("Resolve() should reject a negative override on an active attribute")
	}
}

func TestResolveUnknownIDsWarn(t *testing.T) {
	reg := registryOf(&stubAssessor{id: "a", weight: 1.0})
	cfg := &config.Config{
		Weights:            map[string]float64{"a": 0.5, "ghost": 0.5},
		ExcludedAttributes: []string{"phantom"},
	}

	res, err := Resolve(reg, cfg)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if !hasWarningContaining(res.Warnings, `"ghost"`) {
		t.Errorf("expected warning about unknown weight id, got %v", res.Warnings)
	}
	if !hasWarningContaining(res.Warnings, `"phantom"`) {
		t.Errorf("expected warning about unknown exclusion id, got %v", res.Warnings)
	}
}

func TestResolveWeightSumWarning(t *testing.T) {
	reg := registryOf(
		&stubAssessor{id: "a", weight: 0.6},
		&stubAssessor{id: "b", weight: 0.4},
	)

	t.Run("drifted sum warns", func(t *testing.T) {
		cfg := &config.Config{Weights: map[string]float64{"a": 0.3, "b": 0.3}}
		res, err := Resolve(reg, cfg)
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if !hasWarningContaining(res.Warnings, "sum") {
			t.Errorf("expected weight-sum warning, got %v", res.Warnings)
		}
	})

	t.Run("sum near one is quiet", func(t *testing.T) {
		cfg := &config.Config{Weights: map[string]float64{"a": 0.6, "b": 0.4}}
		res, err := Resolve(reg, cfg)
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if hasWarningContaining(res.Warnings, "sum") {
			t.Errorf("unexpected weight-sum warning: %v", res.Warnings)
		}
	})
}

func hasWarningContaining(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
