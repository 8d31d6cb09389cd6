package models

import "testing"

func TestPrimaryLanguage(t *testing.T) {
	tests := []struct {
		name      string
		languages map[string]int64
		want      string
	}{
		{"empty repository", nil, ""},
		{"single language", map[string]int64{"Go": 1000}, "Go"},
		{"largest wins", map[string]int64{"Go": 1000, "Python": 200}, "Go"},
		{"tie breaks alphabetically", map[string]int64{"Python": 500, "Go": 500}, "Go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Repository{Languages: tt.languages}
			if got := r.PrimaryLanguage(); got != tt.want {
				t.Errorf("PrimaryLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}
