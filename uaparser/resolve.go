package uaparser

import "strings"

// maxPlaceholder is the highest positional placeholder a template may use.
const maxPlaceholder = 4

// expand substitutes $1..$4 in a template with the corresponding capture
// group text. A placeholder whose group the match did not produce becomes
// the empty string. Placeholders are resolved in a single pass over the
// original template, so placeholder-like text inside a capture is never
// re-interpreted.
func expand(template string, captures []string) string {
	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c == '$' && i+1 < len(template) {
			if k := int(template[i+1] - '0'); k >= 1 && k <= maxPlaceholder {
				if k < len(captures) {
					b.WriteString(captures[k])
				}
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// optional turns resolved text into a field value. Empty text is absent,
// never a zero-length string.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// trimmed is optional with whitespace trimming, used for device fields.
func trimmed(s string) *string {
	return optional(strings.TrimSpace(s))
}

// resolveFamily applies the family template when configured, else the raw
// first capture group, else the domain fallback. A whitespace-only capture
// does not count as present.
func resolveFamily(r Rule, captures []string, fallback string) string {
	if r.familyTpl != "" {
		return expand(r.familyTpl, captures)
	}
	if len(captures) > 1 && strings.TrimSpace(captures[1]) != "" {
		return captures[1]
	}
	return fallback
}

// resolveSlot resolves version slot i (0-based). A configured slot
// template wins over the raw capture; with neither, the slot takes the
// domain default, which is absent for every agent and OS slot.
func resolveSlot(r Rule, captures []string, i int, def *string) *string {
	if tpl := r.fieldTemplate(i); tpl != "" {
		return optional(expand(tpl, captures))
	}
	if idx := i + 2; idx < len(captures) {
		if v := optional(captures[idx]); v != nil {
			return v
		}
	}
	return cloneField(def)
}

func cloneField(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func buildAgent(r Rule, captures []string) AgentResult {
	def := DefaultAgent()
	return AgentResult{
		Family: resolveFamily(r, captures, def.Family),
		V1:     resolveSlot(r, captures, 0, def.V1),
		V2:     resolveSlot(r, captures, 1, def.V2),
		V3:     resolveSlot(r, captures, 2, def.V3),
	}
}

func buildOS(r Rule, captures []string) OSResult {
	def := DefaultOS()
	return OSResult{
		Family: resolveFamily(r, captures, def.Family),
		V1:     resolveSlot(r, captures, 0, def.V1),
		V2:     resolveSlot(r, captures, 1, def.V2),
		V3:     resolveSlot(r, captures, 2, def.V3),
		V4:     resolveSlot(r, captures, 3, def.V4),
	}
}

// Device rule field template slots.
const (
	deviceBrandSlot = 0
	deviceModelSlot = 1
)

func buildDevice(r Rule, captures []string) DeviceResult {
	def := DefaultDevice()
	family := strings.TrimSpace(resolveFamily(r, captures, def.Family))

	var brand *string
	if tpl := r.fieldTemplate(deviceBrandSlot); tpl != "" {
		// A configured template wins even over a raw brand capture.
		brand = trimmed(expand(tpl, captures))
	} else if len(captures) > 2 {
		brand = trimmed(captures[2])
	}

	var model *string
	if tpl := r.fieldTemplate(deviceModelSlot); tpl != "" {
		model = trimmed(expand(tpl, captures))
	} else if len(captures) > 3 && captures[3] != "" {
		// A produced model group is taken even when whitespace-only; the
		// trim then normalizes it to absent rather than reaching the
		// first-capture fallback.
		model = trimmed(captures[3])
	} else if len(captures) > 1 {
		// Convention carried across implementations: with no template and
		// no model group, the first capture group stands in as the model.
		model = trimmed(captures[1])
	}

	return DeviceResult{
		Family: family,
		Brand:  brand,
		Model:  model,
	}
}
