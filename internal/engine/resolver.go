package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/dotcommander/agentready/internal/assessors"
	"github.com/dotcommander/agentready/internal/config"
)

// weightSumTolerance bounds how far explicit config weights may stray from
// 1.0 before a warning is raised. Scoring renormalizes either way.
const weightSumTolerance = 0.05

// Resolution is the effective weight map and exclusion set for one run,
// computed once before any assessor executes and immutable afterward.
type Resolution struct {
	// Order lists non-excluded attribute ids in registry order.
	Order []string

	// Weights maps every non-excluded attribute id to its effective weight:
	// the config override when present, the attribute's own default weight
	// otherwise.
	Weights map[string]float64

	// Excluded holds the validated static exclusion set.
	Excluded map[string]bool

	// Warnings are non-fatal findings about the config: unknown attribute
	// ids, exclusion/override conflicts, weights summing far from 1.0.
	// They never change the computation.
	Warnings []string
}

// Resolve merges config overrides and exclusions with registry defaults.
//
// Exclusion is absolute: an id that is both excluded and weighted is
// excluded, with a warning, and its override is never validated. A zero or
// negative weight override on a non-excluded id is a fatal *ValidationError.
// Unknown attribute ids in either map are warnings, since configs may
// predate registry changes.
func Resolve(registry []assessors.Assessor, cfg *config.Config) (*Resolution, error) {
	res := &Resolution{
		Weights:  make(map[string]float64, len(registry)),
		Excluded: make(map[string]bool),
	}

	known := make(map[string]bool, len(registry))
	for _, a := range registry {
		known[a.AttributeID()] = true
	}

	var weights map[string]float64
	var excluded []string
	if cfg != nil {
		weights = cfg.Weights
		excluded = cfg.ExcludedAttributes
	}

	// Exclusions first: an excluded attribute's weight override is dead
	// config, so it is never validated, only warned about.
	for _, id := range excluded {
		if !known[id] {
			res.Warnings = append(res.Warnings, fmt.Sprintf("unknown attribute %q in excluded_attributes; ignored", id))
			continue
		}
		res.Excluded[id] = true
		if _, conflict := weights[id]; conflict {
			res.Warnings = append(res.Warnings, fmt.Sprintf("attribute %q is both excluded and weighted; exclusion wins", id))
		}
	}

	// Validate surviving overrides before anything runs, in a stable order
	// so the first error is deterministic.
	for _, id := range sortedKeys(weights) {
		if res.Excluded[id] {
			continue
		}
		w := weights[id]
		if w <= 0 {
			return nil, &ValidationError{AttributeID: id, Weight: w}
		}
		if !known[id] {
			res.Warnings = append(res.Warnings, fmt.Sprintf("unknown attribute %q in weights; ignored", id))
		}
	}

	// Seed from registry defaults, then apply surviving overrides.
	var sum float64
	for _, a := range registry {
		id := a.AttributeID()
		if res.Excluded[id] {
			continue
		}
		w := a.Attribute().DefaultWeight
		if override, ok := weights[id]; ok {
			w = override
		}
		res.Order = append(res.Order, id)
		res.Weights[id] = w
		sum += w
	}

	// Explicit weights are expected to sum to 1.0; scoring renormalizes, so
	// drift is only worth a warning.
	if len(weights) > 0 {
		var configSum float64
		for _, w := range weights {
			configSum += w
		}
		if math.Abs(configSum-1.0) > weightSumTolerance {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("config weights sum to %.3f, not 1.0; scores are renormalized", configSum))
		}
	}

	return res, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
