package uaparser

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultMatchTimeout bounds a single rule evaluation. Rule sets are
// externally supplied and a pathological pattern must not stall the scan.
const DefaultMatchTimeout = 250 * time.Millisecond

// RuleSpec describes one rule before compilation.
type RuleSpec struct {
	Pattern         string
	CaseInsensitive bool

	// FamilyTemplate replaces the family field when non-empty. Templates
	// may reference capture groups with $1..$4.
	FamilyTemplate string

	// FieldTemplates replace the remaining output fields when non-empty:
	// v1..v3 for agent rules, v1..v4 for OS rules, brand and model for
	// device rules.
	FieldTemplates []string

	// MatchTimeout overrides DefaultMatchTimeout when positive.
	MatchTimeout time.Duration
}

// Rule is one compiled pattern plus its replacement templates.
// Immutable after CompileRule.
type Rule struct {
	re        *regexp2.Regexp
	familyTpl string
	fieldTpls []string
}

func CompileRule(spec RuleSpec) (Rule, error) {
	if strings.TrimSpace(spec.Pattern) == "" {
		return Rule{}, fmt.Errorf("pattern is required")
	}

	flags := regexp2.None
	if spec.CaseInsensitive {
		flags = regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(spec.Pattern, flags)
	if err != nil {
		return Rule{}, fmt.Errorf("compile pattern: %w", err)
	}

	timeout := spec.MatchTimeout
	if timeout <= 0 {
		timeout = DefaultMatchTimeout
	}
	re.MatchTimeout = timeout

	return Rule{
		re:        re,
		familyTpl: spec.FamilyTemplate,
		fieldTpls: append([]string(nil), spec.FieldTemplates...),
	}, nil
}

// match applies the rule's pattern and returns the ordered captures
// [full, g1, g2, ...], or nil when the pattern does not match. A non-nil
// error is an engine-internal failure (such as a match timeout) and the
// caller must treat it as no-match.
func (r Rule) match(input string) ([]string, error) {
	m, err := r.re.FindStringMatch(input)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}

	groups := m.Groups()
	captures := make([]string, len(groups))
	for i := range groups {
		captures[i] = groups[i].String()
	}
	return captures, nil
}

func (r Rule) fieldTemplate(i int) string {
	if i < 0 || i >= len(r.fieldTpls) {
		return ""
	}
	return r.fieldTpls[i]
}
