package ruledef

import (
	"fmt"
	"time"

	"github.com/uaclassify/uaclassify/uaparser"
)

// CompileOptions tune rule compilation. The zero value uses the engine
// defaults.
type CompileOptions struct {
	// MatchTimeout bounds each rule evaluation; zero means
	// uaparser.DefaultMatchTimeout.
	MatchTimeout time.Duration
}

// Compile builds the immutable rule set. An uncompilable pattern is a
// fatal initialization error, reported with its list and index.
func (d *Definitions) Compile() (*uaparser.RuleSet, error) {
	return d.CompileWith(CompileOptions{})
}

func (d *Definitions) CompileWith(opts CompileOptions) (*uaparser.RuleSet, error) {
	agent := make([]uaparser.Rule, 0, len(d.UserAgentParsers))
	for i, raw := range d.UserAgentParsers {
		rule, err := uaparser.CompileRule(uaparser.RuleSpec{
			Pattern:         raw.Regex,
			CaseInsensitive: caseInsensitive(raw.RegexFlag),
			FamilyTemplate:  raw.FamilyReplacement,
			FieldTemplates:  []string{raw.V1Replacement, raw.V2Replacement, raw.V3Replacement},
			MatchTimeout:    opts.MatchTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("user_agent_parsers[%d]: %w", i, err)
		}
		agent = append(agent, rule)
	}

	osRules := make([]uaparser.Rule, 0, len(d.OSParsers))
	for i, raw := range d.OSParsers {
		rule, err := uaparser.CompileRule(uaparser.RuleSpec{
			Pattern:         raw.Regex,
			CaseInsensitive: caseInsensitive(raw.RegexFlag),
			FamilyTemplate:  raw.OSReplacement,
			FieldTemplates:  []string{raw.OSV1Replacement, raw.OSV2Replacement, raw.OSV3Replacement, raw.OSV4Replacement},
			MatchTimeout:    opts.MatchTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("os_parsers[%d]: %w", i, err)
		}
		osRules = append(osRules, rule)
	}

	device := make([]uaparser.Rule, 0, len(d.DeviceParsers))
	for i, raw := range d.DeviceParsers {
		rule, err := uaparser.CompileRule(uaparser.RuleSpec{
			Pattern:         raw.Regex,
			CaseInsensitive: caseInsensitive(raw.RegexFlag),
			FamilyTemplate:  raw.DeviceReplacement,
			FieldTemplates:  []string{raw.BrandReplacement, raw.ModelReplacement},
			MatchTimeout:    opts.MatchTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("device_parsers[%d]: %w", i, err)
		}
		device = append(device, rule)
	}

	return uaparser.NewRuleSet(agent, osRules, device), nil
}
