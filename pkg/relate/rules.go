package relate

import (
	"regexp"
	"strings"

	"github.com/tabviz/tabviz/pkg/errors"
)

// Pair is one attribute assignment inside a rule. Order matters: later
// pairs (and later rules) override earlier ones via the overlay merge.
type Pair struct {
	Name  string
	Value string
}

// Rule is the parsed form of an attribute-rule string. TargetTag selects
// the origin group the rule applies to; edge rules ignore it.
type Rule struct {
	TargetTag string
	Pairs     []Pair
}

// tagRe matches the leading alphanumeric-or-"+" run up to the colon.
var tagRe = regexp.MustCompile(`^([A-Za-z0-9+]+)\s*:`)

// wsRe collapses internal whitespace runs (including line breaks).
var wsRe = regexp.MustCompile(`\s+`)

// ParseRule parses one attribute-rule string of the shape
//
//	"<tag>: <k1>=<v1>, <k2>=<v2>, ..."
//
// Whitespace is normalized first. Each pair is split on its first "=";
// values may contain any character except the "," pair separator. A pair
// without "=" yields the name with an empty value rather than an error -
// the overlay merge treats empty values as "no change", so such pairs are
// harmless no-ops.
//
// Returns ErrCodeMalformedRule if the string has no tag, no colon, or no
// pairs at all.
func ParseRule(s string) (Rule, error) {
	norm := strings.TrimSpace(wsRe.ReplaceAllString(s, " "))

	m := tagRe.FindStringSubmatch(norm)
	if m == nil {
		return Rule{}, errors.New(errors.ErrCodeMalformedRule,
			"rule %q has no \"tag:\" prefix", s)
	}
	rest := strings.TrimSpace(norm[len(m[0]):])
	if rest == "" {
		return Rule{}, errors.New(errors.ErrCodeMalformedRule,
			"rule %q has no attribute pairs", s)
	}

	rule := Rule{TargetTag: m[1]}
	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, _ := strings.Cut(part, "=")
		rule.Pairs = append(rule.Pairs, Pair{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		})
	}
	if len(rule.Pairs) == 0 {
		return Rule{}, errors.New(errors.ErrCodeMalformedRule,
			"rule %q has no attribute pairs", s)
	}
	return rule, nil
}

// ParseRules parses a list of rule strings, one [Rule] per input.
// Blank strings are skipped; the first malformed rule aborts parsing.
func ParseRules(specs []string) ([]Rule, error) {
	var rules []Rule
	for _, s := range specs {
		if strings.TrimSpace(s) == "" {
			continue
		}
		r, err := ParseRule(s)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}
