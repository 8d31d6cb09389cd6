package assessors

import "fmt"

// All returns every known assessor in display order: tier first, then the
// order checks are listed within a tier. The order is part of the output
// contract — findings appear in reports in this order regardless of how the
// engine schedules execution.
//
// A duplicate attribute ID is a build mistake, not a runtime condition, so
// it is reported as an error here and callers are expected to fail fast.
func All() ([]Assessor, error) {
	list := []Assessor{
		// Tier 1 Essential
		&StandardLayoutAssessor{},
		&LockFilesAssessor{},
		&ReadmeQualityAssessor{},
		// Tier 2 Critical
		&GitignoreAssessor{},
		&ConventionalCommitsAssessor{},
		&OneCommandSetupAssessor{},
		&LinterConfigAssessor{},
		&FileSizeLimitsAssessor{},
		&SeparationOfConcernsAssessor{},
		// Tier 3 Important
		&IssuePRTemplatesAssessor{},
		&CIWorkflowsAssessor{},
		&LicenseFileAssessor{},
		// Tier 4 Advanced
		&SecurityScanningAssessor{},
		&ContainerSetupAssessor{},
	}

	seen := make(map[string]bool, len(list))
	for _, a := range list {
		id := a.AttributeID()
		if seen[id] {
			return nil, fmt.Errorf("assessors: duplicate attribute id %q", id)
		}
		seen[id] = true
	}
	return list, nil
}

// MustAll is like All but panics on a duplicate attribute ID. Intended for
// program startup, where a broken registry is unrecoverable.
func MustAll() []Assessor {
	list, err := All()
	if err != nil {
		panic(err)
	}
	return list
}
