package uaparser

import "strings"

// OtherFamily is the canonical unknown family for the OS and device domains.
const OtherFamily = "Other"

// AgentResult identifies a browser or agent. A nil version field is
// absent, which is distinct from an empty string.
type AgentResult struct {
	Family     string
	V1, V2, V3 *string
}

// OSResult identifies an operating system.
type OSResult struct {
	Family         string
	V1, V2, V3, V4 *string
}

// DeviceResult identifies a hardware device.
type DeviceResult struct {
	Family string
	Brand  *string
	Model  *string
}

// DefaultAgent is the canonical unknown agent: empty family, no versions.
func DefaultAgent() AgentResult { return AgentResult{} }

func DefaultOS() OSResult { return OSResult{Family: OtherFamily} }

func DefaultDevice() DeviceResult { return DeviceResult{Family: OtherFamily} }

// Version joins the contiguous leading run of present version fields with
// dots. The first absent field ends the string even if later fields are
// present.
func (r AgentResult) Version() string { return joinVersion(r.V1, r.V2, r.V3) }

func (r OSResult) Version() string { return joinVersion(r.V1, r.V2, r.V3, r.V4) }

func joinVersion(fields ...*string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == nil {
			break
		}
		parts = append(parts, *f)
	}
	return strings.Join(parts, ".")
}

func (r AgentResult) Equal(o AgentResult) bool {
	return r.Family == o.Family &&
		eqField(r.V1, o.V1) && eqField(r.V2, o.V2) && eqField(r.V3, o.V3)
}

func (r OSResult) Equal(o OSResult) bool {
	return r.Family == o.Family &&
		eqField(r.V1, o.V1) && eqField(r.V2, o.V2) &&
		eqField(r.V3, o.V3) && eqField(r.V4, o.V4)
}

func (r DeviceResult) Equal(o DeviceResult) bool {
	return r.Family == o.Family && eqField(r.Brand, o.Brand) && eqField(r.Model, o.Model)
}

func eqField(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (r AgentResult) String() string { return labelVersion(r.Family, r.Version()) }

func (r OSResult) String() string { return labelVersion(r.Family, r.Version()) }

func (r DeviceResult) String() string {
	out := r.Family
	if r.Brand != nil {
		out += " brand=" + *r.Brand
	}
	if r.Model != nil {
		out += " model=" + *r.Model
	}
	return out
}

func labelVersion(family, version string) string {
	if version == "" {
		return family
	}
	return family + " " + version
}
