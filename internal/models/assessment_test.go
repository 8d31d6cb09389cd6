package models

import "testing"

func TestCertificationFromScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  CertificationLevel
	}{
		{"perfect score", 100, CertificationPlatinum},
		{"platinum lower bound inclusive", 90.0, CertificationPlatinum},
		{"just below platinum", 89.999, CertificationGold},
		{"gold lower bound inclusive", 75.0, CertificationGold},
		{"just below gold", 74.999, CertificationSilver},
		{"silver lower bound inclusive", 60.0, CertificationSilver},
		{"just below silver", 59.999, CertificationBronze},
		{"bronze lower bound inclusive", 40.0, CertificationBronze},
		{"just below bronze", 39.999, CertificationNeedsImprovement},
		{"zero", 0, CertificationNeedsImprovement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CertificationFromScore(tt.score); got != tt.want {
				t.Errorf("CertificationFromScore(%v) = %q, want %q", tt.score, got, tt.want)
			}
		})
	}
}

func TestFindingCounted(t *testing.T) {
	attr := Attribute{ID: "x"}

	if !(Finding{Attribute: attr, Status: StatusPass}).Counted() {
		t.Error("pass finding should be counted")
	}
	if !(Finding{Attribute: attr, Status: StatusFail}).Counted() {
		t.Error("fail finding should be counted")
	}
	if NotApplicable(attr, "n/a").Counted() {
		t.Error("not_applicable finding should not be counted")
	}
	if ErrorFinding(attr, "boom").Counted() {
		t.Error("error finding should not be counted")
	}
}

func TestErrorFindingCarriesMessage(t *testing.T) {
	f := ErrorFinding(Attribute{ID: "x"}, "read failed")
	if f.Status != StatusError {
		t.Errorf("status = %q, want %q", f.Status, StatusError)
	}
	if f.ErrorMessage != "read failed" {
		t.Errorf("error message = %q, want %q", f.ErrorMessage, "read failed")
	}
}
