package engine

import "fmt"

// ValidationError reports an invalid weight override in the configuration.
// It is returned before any assessor executes.
type ValidationError struct {
	AttributeID string
	Weight      float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid weight %g for attribute %q: weight overrides must be greater than zero",
		e.Weight, e.AttributeID)
}

// NoAttributesAssessedError reports a run whose weighted denominator was
// zero: every attribute was excluded, not applicable, or errored. The run
// produces no assessment rather than a misleading zero score.
type NoAttributesAssessedError struct {
	Total    int // attributes considered (registry minus static exclusions)
	Excluded int // statically excluded via config
	Skipped  int // not_applicable or error at runtime
}

func (e *NoAttributesAssessedError) Error() string {
	return fmt.Sprintf("no attributes assessed: %d considered, %d excluded by config, %d skipped at runtime; overall score is undefined",
		e.Total, e.Excluded, e.Skipped)
}
