// Package uaparser classifies raw client-identification strings into
// structured browser/agent, operating system, and device records. It has
// no built-in knowledge of any browser, OS, or device: classification is
// fully determined by the ordered rule lists it is given.
package uaparser

import (
	"sync"
	"time"
)

// Domain names reported to the Observer.
const (
	domainAgent  = "agent"
	domainOS     = "os"
	domainDevice = "device"
)

// Observer receives parse telemetry. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveParse(domain string, matched bool, elapsed time.Duration)
	ObserveMatchError(domain string)
}

// Parser applies an immutable RuleSet to input strings. Parse methods are
// pure functions of the rule set and the input; a Parser is safe for
// unbounded concurrent use once configured.
type Parser struct {
	rules *RuleSet
	obs   Observer
}

func New(rules *RuleSet) *Parser {
	return &Parser{rules: rules}
}

// SetObserver installs parse telemetry. Call before sharing the parser
// across goroutines.
func (p *Parser) SetObserver(obs Observer) {
	p.obs = obs
}

// ParseAgent returns the agent record for the first matching agent rule,
// or false when no rule matches.
func (p *Parser) ParseAgent(input string) (AgentResult, bool) {
	start := time.Now()
	if r, captures, ok := p.scan(domainAgent, p.rules.agent, input); ok {
		p.observeParse(domainAgent, true, start)
		return buildAgent(r, captures), true
	}
	p.observeParse(domainAgent, false, start)
	return AgentResult{}, false
}

// ParseOS returns the OS record for the first matching OS rule, or false
// when no rule matches. An empty input short-circuits to the OS default
// without consulting any rule.
func (p *Parser) ParseOS(input string) (OSResult, bool) {
	start := time.Now()
	if input == "" {
		p.observeParse(domainOS, true, start)
		return DefaultOS(), true
	}
	if r, captures, ok := p.scan(domainOS, p.rules.os, input); ok {
		p.observeParse(domainOS, true, start)
		return buildOS(r, captures), true
	}
	p.observeParse(domainOS, false, start)
	return OSResult{}, false
}

// ParseDevice returns the device record for the first matching device
// rule, or false when no rule matches.
func (p *Parser) ParseDevice(input string) (DeviceResult, bool) {
	start := time.Now()
	if r, captures, ok := p.scan(domainDevice, p.rules.device, input); ok {
		p.observeParse(domainDevice, true, start)
		return buildDevice(r, captures), true
	}
	p.observeParse(domainDevice, false, start)
	return DeviceResult{}, false
}

// ParseDeviceLenient is ParseDevice with the device default record in
// place of a no-match. It never returns an empty result.
func (p *Parser) ParseDeviceLenient(input string) DeviceResult {
	if res, ok := p.ParseDevice(input); ok {
		return res
	}
	return DefaultDevice()
}

// scan walks the rule list strictly in order and stops at the first match,
// even if the eventual record would be sparse. A rule that fails with an
// engine-internal error counts as no-match and the scan continues, so a
// single bad rule cannot abort classification of otherwise-matchable
// input.
func (p *Parser) scan(domain string, rules []Rule, input string) (Rule, []string, bool) {
	for _, r := range rules {
		captures, err := r.match(input)
		if err != nil {
			p.observeMatchError(domain)
			continue
		}
		if captures != nil {
			return r, captures, true
		}
	}
	return Rule{}, nil, false
}

func (p *Parser) observeParse(domain string, matched bool, start time.Time) {
	if p.obs == nil {
		return
	}
	p.obs.ObserveParse(domain, matched, time.Since(start))
}

func (p *Parser) observeMatchError(domain string) {
	if p.obs == nil {
		return
	}
	p.obs.ObserveMatchError(domain)
}

var (
	sharedOnce   sync.Once
	sharedParser *Parser
	sharedErr    error
)

// InitShared builds the process-wide parser. The build function runs at
// most once even under concurrent first use; every caller gets the same
// parser (or the same construction error) thereafter.
func InitShared(build func() (*Parser, error)) (*Parser, error) {
	sharedOnce.Do(func() {
		sharedParser, sharedErr = build()
	})
	return sharedParser, sharedErr
}
