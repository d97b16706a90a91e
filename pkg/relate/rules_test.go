package relate

import (
	"testing"

	"github.com/tabviz/tabviz/pkg/errors"
)

func TestParseRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTag   string
		wantPairs []Pair
	}{
		{
			name:      "SinglePair",
			input:     "A: color=red",
			wantTag:   "A",
			wantPairs: []Pair{{"color", "red"}},
		},
		{
			name:      "MultiplePairs",
			input:     "A: color=red, shape=box",
			wantTag:   "A",
			wantPairs: []Pair{{"color", "red"}, {"shape", "box"}},
		},
		{
			name:      "CompositeTag",
			input:     "A+B: style=dashed",
			wantTag:   "A+B",
			wantPairs: []Pair{{"style", "dashed"}},
		},
		{
			name:      "WhitespaceRuns",
			input:     "  A:   color=red ,\n shape=box  ",
			wantTag:   "A",
			wantPairs: []Pair{{"color", "red"}, {"shape", "box"}},
		},
		{
			name:      "ValueWithEquals",
			input:     "A: url=http://example.com?x=1",
			wantTag:   "A",
			wantPairs: []Pair{{"url", "http://example.com?x=1"}},
		},
		{
			name:      "PairWithoutEquals",
			input:     "A: color=red, shape",
			wantTag:   "A",
			wantPairs: []Pair{{"color", "red"}, {"shape", ""}},
		},
		{
			name:      "TrailingComma",
			input:     "A: color=red,",
			wantTag:   "A",
			wantPairs: []Pair{{"color", "red"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := ParseRule(tt.input)
			if err != nil {
				t.Fatalf("ParseRule(%q): %v", tt.input, err)
			}
			if rule.TargetTag != tt.wantTag {
				t.Errorf("TargetTag = %q, want %q", rule.TargetTag, tt.wantTag)
			}
			if len(rule.Pairs) != len(tt.wantPairs) {
				t.Fatalf("pairs = %v, want %v", rule.Pairs, tt.wantPairs)
			}
			for i, p := range rule.Pairs {
				if p != tt.wantPairs[i] {
					t.Errorf("pair[%d] = %v, want %v", i, p, tt.wantPairs[i])
				}
			}
		})
	}
}

func TestParseRuleErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"NoColon", "color=red"},
		{"EmptyTag", ": color=red"},
		{"NoPairs", "A:"},
		{"OnlyCommas", "A: , ,"},
		{"TagWithIllegalRune", "a-b: color=red"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRule(tt.input)
			if err == nil {
				t.Fatalf("ParseRule(%q): expected error", tt.input)
			}
			if !errors.Is(err, errors.ErrCodeMalformedRule) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeMalformedRule)
			}
		})
	}
}

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]string{"A: color=red", "", "B: shape=box"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 2 {
		t.Fatalf("rules = %d, want 2 (blank strings skipped)", len(rules))
	}
	if rules[0].TargetTag != "A" || rules[1].TargetTag != "B" {
		t.Errorf("tags = %q, %q", rules[0].TargetTag, rules[1].TargetTag)
	}
}
