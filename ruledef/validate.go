package ruledef

import (
	"fmt"
	"sort"

	"github.com/dlclark/regexp2"
)

type ValidationError struct {
	Problems []string
}

func (v *ValidationError) Add(format string, args ...any) {
	v.Problems = append(v.Problems, fmt.Sprintf(format, args...))
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("%d validation error(s)", len(v.Problems))
}

// Validate checks the document without building a rule set. Problems are
// aggregated so a single pass reports every bad entry.
func (d *Definitions) Validate() error {
	v := &ValidationError{}

	if len(d.UserAgentParsers) == 0 && len(d.OSParsers) == 0 && len(d.DeviceParsers) == 0 {
		v.Add("no rules defined")
	}

	for i, rule := range d.UserAgentParsers {
		checkRegex(v, "user_agent_parsers", i, rule.Regex, rule.RegexFlag)
	}
	for i, rule := range d.OSParsers {
		checkRegex(v, "os_parsers", i, rule.Regex, rule.RegexFlag)
	}
	for i, rule := range d.DeviceParsers {
		checkRegex(v, "device_parsers", i, rule.Regex, rule.RegexFlag)
	}

	if len(v.Problems) > 0 {
		sort.Strings(v.Problems)
		return v
	}
	return nil
}

func checkRegex(v *ValidationError, list string, i int, pattern, flag string) {
	if pattern == "" {
		v.Add("%s[%d].regex is required", list, i)
		return
	}

	flags := regexp2.None
	if caseInsensitive(flag) {
		flags = regexp2.IgnoreCase
	}
	if _, err := regexp2.Compile(pattern, flags); err != nil {
		v.Add("%s[%d].regex invalid: %v", list, i, err)
	}
}
