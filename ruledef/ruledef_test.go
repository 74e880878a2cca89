package ruledef

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDoc = `
user_agent_parsers:
  - regex: '(Firefox)/(\d+)\.(\d+)'
  - regex: '(bada)/(\d+)'
    family_replacement: 'Bada Browser'
os_parsers:
  - regex: 'Windows NT (\d+)\.(\d+)'
    os_replacement: 'Windows'
  - regex: 'iphone os (\d+)_(\d+)'
    regex_flag: 'i'
    os_replacement: 'iOS'
device_parsers:
  - regex: '(iPhone)'
    device_replacement: 'iPhone'
    brand_replacement: 'Apple'
    model_replacement: 'iPhone'
`

func TestParseSampleDocument(t *testing.T) {
	defs, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(defs.UserAgentParsers) != 2 {
		t.Fatalf("expected 2 agent rules, got %d", len(defs.UserAgentParsers))
	}
	if len(defs.OSParsers) != 2 {
		t.Fatalf("expected 2 os rules, got %d", len(defs.OSParsers))
	}
	if len(defs.DeviceParsers) != 1 {
		t.Fatalf("expected 1 device rule, got %d", len(defs.DeviceParsers))
	}

	if defs.UserAgentParsers[1].FamilyReplacement != "Bada Browser" {
		t.Fatalf("unexpected family replacement %q", defs.UserAgentParsers[1].FamilyReplacement)
	}
	if defs.OSParsers[1].RegexFlag != "i" {
		t.Fatalf("unexpected regex flag %q", defs.OSParsers[1].RegexFlag)
	}
}

func TestParseMalformedDocument(t *testing.T) {
	if _, err := Parse([]byte("user_agent_parsers: {not: a list}")); err == nil {
		t.Fatalf("expected error for malformed document")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o600); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	defs, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(defs.UserAgentParsers) != 2 {
		t.Fatalf("expected 2 agent rules, got %d", len(defs.UserAgentParsers))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidateOK(t *testing.T) {
	defs, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := defs.Validate(); err != nil {
		t.Fatalf("expected valid document, got %v", err)
	}
}

func TestValidateAggregatesProblems(t *testing.T) {
	defs := &Definitions{
		UserAgentParsers: []AgentRule{
			{Regex: ""},
			{Regex: "(unclosed"},
		},
		OSParsers: []OSRule{
			{Regex: "valid"},
		},
	}

	err := defs.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Problems) != 2 {
		t.Fatalf("expected 2 problems, got %d: %v", len(verr.Problems), verr.Problems)
	}
	for _, problem := range verr.Problems {
		if !strings.Contains(problem, "user_agent_parsers") {
			t.Fatalf("problem must name its list: %q", problem)
		}
	}
}

func TestValidateEmptyDocument(t *testing.T) {
	defs := &Definitions{}
	err := defs.Validate()
	if err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestValidateUnknownFlagIsCaseSensitive(t *testing.T) {
	// Any regex_flag other than "i" means case-sensitive, not invalid.
	defs := &Definitions{
		UserAgentParsers: []AgentRule{{Regex: "Firefox", RegexFlag: "x"}},
	}
	if err := defs.Validate(); err != nil {
		t.Fatalf("unknown flag must not be a validation problem: %v", err)
	}
}
