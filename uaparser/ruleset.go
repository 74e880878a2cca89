package uaparser

// RuleSet holds the three ordered domain rule lists. List order encodes
// priority: the first matching rule wins. A RuleSet is immutable once
// built and safe to share across any number of concurrent parses.
type RuleSet struct {
	agent  []Rule
	os     []Rule
	device []Rule
}

func NewRuleSet(agent, os, device []Rule) *RuleSet {
	return &RuleSet{
		agent:  append([]Rule(nil), agent...),
		os:     append([]Rule(nil), os...),
		device: append([]Rule(nil), device...),
	}
}

func (s *RuleSet) NumAgentRules() int  { return len(s.agent) }
func (s *RuleSet) NumOSRules() int     { return len(s.os) }
func (s *RuleSet) NumDeviceRules() int { return len(s.device) }
