package models

// Finding status constants.
const (
	StatusPass          = "pass"
	StatusFail          = "fail"
	StatusNotApplicable = "not_applicable"
	StatusError         = "error"
)

// Citation points at an external reference backing a remediation.
type Citation struct {
	Source    string `json:"source"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Relevance string `json:"relevance,omitempty"`
}

// Remediation is structured guidance attached to a failing finding.
type Remediation struct {
	Summary   string     `json:"summary"`
	Steps     []string   `json:"steps,omitempty"`
	Tools     []string   `json:"tools,omitempty"`
	Commands  []string   `json:"commands,omitempty"`
	Examples  []string   `json:"examples,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
}

// Finding is the immutable result of assessing one attribute against one
// repository. Exactly one terminal status applies. Score is meaningful only
// for pass/fail findings; not_applicable and error findings are excluded from
// scoring entirely. Remediation is populated only on fail, ErrorMessage only
// on error.
type Finding struct {
	Attribute     Attribute    `json:"attribute"`
	Status        string       `json:"status"`
	Score         float64      `json:"score"`
	MeasuredValue string       `json:"measured_value,omitempty"`
	Threshold     string       `json:"threshold,omitempty"`
	Evidence      []string     `json:"evidence,omitempty"`
	Remediation   *Remediation `json:"remediation,omitempty"`
	ErrorMessage  string       `json:"error_message,omitempty"`
}

// NotApplicable builds a finding for an attribute that does not apply to the
// repository under assessment.
func NotApplicable(attr Attribute, reason string) Finding {
	return Finding{
		Attribute: attr,
		Status:    StatusNotApplicable,
		Evidence:  []string{reason},
	}
}

// ErrorFinding builds a finding for an assessor that could not complete due
// to an unexpected I/O failure.
func ErrorFinding(attr Attribute, message string) Finding {
	return Finding{
		Attribute:    attr,
		Status:       StatusError,
		Evidence:     []string{message},
		ErrorMessage: message,
	}
}

// Counted reports whether the finding participates in the weighted score.
func (f Finding) Counted() bool {
	return f.Status == StatusPass || f.Status == StatusFail
}
