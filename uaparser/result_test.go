package uaparser

import "testing"

func TestAgentVersionStopsAtFirstAbsentField(t *testing.T) {
	res := AgentResult{Family: "Firefox", V2: strPtr("5")}
	if got := res.Version(); got != "" {
		t.Fatalf("absent v1 must render empty version, got %q", got)
	}
}

func TestAgentVersionFullPrefix(t *testing.T) {
	res := AgentResult{Family: "Firefox", V1: strPtr("115"), V2: strPtr("2"), V3: strPtr("1")}
	if got := res.Version(); got != "115.2.1" {
		t.Fatalf("expected %q, got %q", "115.2.1", got)
	}
}

func TestOSVersionIgnoresFieldsAfterGap(t *testing.T) {
	res := OSResult{Family: "Windows", V1: strPtr("10"), V2: strPtr("0"), V4: strPtr("1")}
	if got := res.Version(); got != "10.0" {
		t.Fatalf("fields after the first gap must be ignored, got %q", got)
	}
}

func TestDefaults(t *testing.T) {
	if agent := DefaultAgent(); agent.Family != "" || agent.V1 != nil {
		t.Fatalf("unexpected agent default %v", agent)
	}
	if osRes := DefaultOS(); osRes.Family != OtherFamily || osRes.V1 != nil {
		t.Fatalf("unexpected os default %v", osRes)
	}
	if device := DefaultDevice(); device.Family != OtherFamily || device.Brand != nil || device.Model != nil {
		t.Fatalf("unexpected device default %v", device)
	}
}

func TestResultEqual(t *testing.T) {
	a := AgentResult{Family: "Firefox", V1: strPtr("115")}
	b := AgentResult{Family: "Firefox", V1: strPtr("115")}
	c := AgentResult{Family: "Firefox", V1: strPtr("116")}

	if !a.Equal(b) {
		t.Fatalf("equal records with distinct pointers must compare equal")
	}
	if a.Equal(c) {
		t.Fatalf("records with different field values must not compare equal")
	}
	if a.Equal(AgentResult{Family: "Firefox"}) {
		t.Fatalf("present field must not equal absent field")
	}
}

func TestResultString(t *testing.T) {
	agent := AgentResult{Family: "Firefox", V1: strPtr("115"), V2: strPtr("2")}
	if got := agent.String(); got != "Firefox 115.2" {
		t.Fatalf("unexpected agent string %q", got)
	}

	device := DeviceResult{Family: "iPhone", Brand: strPtr("Apple"), Model: strPtr("iPhone 12")}
	if got := device.String(); got != "iPhone brand=Apple model=iPhone 12" {
		t.Fatalf("unexpected device string %q", got)
	}

	bare := OSResult{Family: OtherFamily}
	if got := bare.String(); got != OtherFamily {
		t.Fatalf("unexpected os string %q", got)
	}
}
