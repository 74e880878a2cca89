// Package ruledef loads, validates, and compiles the on-disk rule
// definition document consumed by uaparser. The document carries three
// keyed, ordered rule lists; list order is priority order and is preserved
// exactly through Compile.
package ruledef

// Definitions is the parsed rule definition document.
type Definitions struct {
	UserAgentParsers []AgentRule  `yaml:"user_agent_parsers"`
	OSParsers        []OSRule     `yaml:"os_parsers"`
	DeviceParsers    []DeviceRule `yaml:"device_parsers"`
}

type AgentRule struct {
	Regex             string `yaml:"regex"`
	RegexFlag         string `yaml:"regex_flag"`
	FamilyReplacement string `yaml:"family_replacement"`
	V1Replacement     string `yaml:"v1_replacement"`
	V2Replacement     string `yaml:"v2_replacement"`
	V3Replacement     string `yaml:"v3_replacement"`
}

type OSRule struct {
	Regex           string `yaml:"regex"`
	RegexFlag       string `yaml:"regex_flag"`
	OSReplacement   string `yaml:"os_replacement"`
	OSV1Replacement string `yaml:"os_v1_replacement"`
	OSV2Replacement string `yaml:"os_v2_replacement"`
	OSV3Replacement string `yaml:"os_v3_replacement"`
	OSV4Replacement string `yaml:"os_v4_replacement"`
}

type DeviceRule struct {
	Regex             string `yaml:"regex"`
	RegexFlag         string `yaml:"regex_flag"`
	DeviceReplacement string `yaml:"device_replacement"`
	BrandReplacement  string `yaml:"brand_replacement"`
	ModelReplacement  string `yaml:"model_replacement"`
}

// caseInsensitiveFlag is the only regex_flag value with meaning; any other
// value is treated as case-sensitive.
const caseInsensitiveFlag = "i"

func caseInsensitive(flag string) bool {
	return flag == caseInsensitiveFlag
}
