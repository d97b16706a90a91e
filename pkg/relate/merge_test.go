package relate

import (
	"testing"
)

func TestOverlay(t *testing.T) {
	tests := []struct {
		name      string
		existing  []string
		candidate []string
		want      []string
	}{
		{
			name:      "CandidateWinsWhenSet",
			existing:  []string{"old", "old"},
			candidate: []string{"new", ""},
			want:      []string{"new", "old"},
		},
		{
			name:      "EmptyCandidateKeepsExisting",
			existing:  []string{"a", "b"},
			candidate: []string{"", ""},
			want:      []string{"a", "b"},
		},
		{
			name:      "EmptyExisting",
			existing:  []string{"", ""},
			candidate: []string{"x", ""},
			want:      []string{"x", ""},
		},
		{
			name:      "BothEmpty",
			existing:  nil,
			candidate: nil,
			want:      []string{},
		},
		{
			name:      "CandidateLonger",
			existing:  []string{"a"},
			candidate: []string{"", "b"},
			want:      []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overlay(tt.existing, tt.candidate)
			if !equalStrings(got, tt.want) {
				t.Errorf("overlay(%v, %v) = %v, want %v", tt.existing, tt.candidate, got, tt.want)
			}
		})
	}
}

// Applying the same candidate twice must equal applying it once: the overlay
// never blanks a set value, and non-empty overwrite of non-empty is stable.
func TestOverlayIdempotent(t *testing.T) {
	existing := []string{"", "kept", "old"}
	candidate := []string{"new", "", "new"}

	once := overlay(existing, candidate)
	twice := overlay(once, candidate)
	if !equalStrings(once, twice) {
		t.Errorf("overlay not idempotent: once=%v twice=%v", once, twice)
	}
}

func TestOverlayDoesNotMutateInputs(t *testing.T) {
	existing := []string{"a", "b"}
	candidate := []string{"x", ""}
	_ = overlay(existing, candidate)

	if !equalStrings(existing, []string{"a", "b"}) {
		t.Errorf("existing mutated: %v", existing)
	}
	if !equalStrings(candidate, []string{"x", ""}) {
		t.Errorf("candidate mutated: %v", candidate)
	}
}
