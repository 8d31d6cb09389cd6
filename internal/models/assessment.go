package models

import "time"

// CertificationLevel is the five-step label derived from the overall score.
type CertificationLevel string

// Certification levels, best first.
const (
	CertificationPlatinum         CertificationLevel = "platinum"
	CertificationGold             CertificationLevel = "gold"
	CertificationSilver           CertificationLevel = "silver"
	CertificationBronze           CertificationLevel = "bronze"
	CertificationNeedsImprovement CertificationLevel = "needs_improvement"
)

// Certification score boundaries. Each boundary is inclusive on the lower
// bound of its tier: a score of exactly 90.0 is platinum.
const (
	PlatinumThreshold = 90.0
	GoldThreshold     = 75.0
	SilverThreshold   = 60.0
	BronzeThreshold   = 40.0
)

// CertificationFromScore maps an overall score in [0, 100] to its level.
func CertificationFromScore(score float64) CertificationLevel {
	switch {
	case score >= PlatinumThreshold:
		return CertificationPlatinum
	case score >= GoldThreshold:
		return CertificationGold
	case score >= SilverThreshold:
		return CertificationSilver
	case score >= BronzeThreshold:
		return CertificationBronze
	default:
		return CertificationNeedsImprovement
	}
}

// ConfigSnapshot records the scoring-relevant parts of the configuration an
// assessment was produced with. Nil when the run used registry defaults only.
type ConfigSnapshot struct {
	Weights            map[string]float64 `json:"weights,omitempty"`
	ExcludedAttributes []string           `json:"excluded_attributes,omitempty"`
}

// Assessment is the terminal aggregate of one run: the repository snapshot,
// the ordered findings, the weighted overall score and its certification
// level, and the attribute counts. It is created exactly once at the end of
// a run and never mutated.
type Assessment struct {
	Repository         *Repository        `json:"repository"`
	Findings           []Finding          `json:"findings"`
	OverallScore       float64            `json:"overall_score"`
	CertificationLevel CertificationLevel `json:"certification_level"`
	AssessedCount      int                `json:"assessed_count"` // pass + fail
	SkippedCount       int                `json:"skipped_count"`  // not_applicable + error
	TotalCount         int                `json:"total_count"`    // registry size minus static exclusions
	Timestamp          time.Time          `json:"timestamp"`
	Duration           time.Duration      `json:"duration"`
	Config             *ConfigSnapshot    `json:"config,omitempty"`
}
