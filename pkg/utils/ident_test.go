package utils

import (
	"regexp"
	"testing"
)

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Lowercase pass-through", "status", "status"},
		{"Uppercase folded", "Title", "title"},
		{"Spaces and punctuation", "Due Date!!", "due_date"},
		{"Hyphens", "Due-Date", "due_date"},
		{"Repeated separators collapse", "a  -  b", "a_b"},
		{"Leading and trailing junk stripped", "  #Priority# ", "priority"},
		{"Unicode replaced", "prénom", "pr_nom"},
		{"Only junk", "!!!", ""},
		{"Empty", "", ""},
		{"Underscores kept", "created_at", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeIdentifier(tt.input); got != tt.want {
				t.Errorf("SanitizeIdentifier(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdentifierIdempotent(t *testing.T) {
	shape := regexp.MustCompile(`^[a-z0-9]([a-z0-9_]*[a-z0-9])?$`)
	inputs := []string{"Due Date!!", "a__b", "Status", "  x  ", "déjà vu", "", "1st Column"}
	for _, in := range inputs {
		once := SanitizeIdentifier(in)
		twice := SanitizeIdentifier(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", in, once, twice)
		}
		if once != "" && !shape.MatchString(once) {
			t.Errorf("output %q for input %q does not match identifier shape", once, in)
		}
	}
}
