// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package rules implements the four anomaly checks run against every
// normalized packet: a source/destination blocklist lookup, an off-hours
// policy check, a payload keyword scan, and a connection-weight DDoS
// flood detector. The checks always run in the same fixed order so the
// DDoS detector's side effect (updating the scoreboard) is consistent
// run to run.
package rules

import (
	"strings"

	"github.com/fatih/color"

	"grimm.is/botnet-tracker/internal/addrlist"
	"grimm.is/botnet-tracker/internal/logging"
	"grimm.is/botnet-tracker/internal/packet"
	"grimm.is/botnet-tracker/internal/scoreboard"
)

var log = logging.WithComponent("rules")

var warn = color.New(color.FgRed, color.Bold)

// multicastExempt destinations are excluded from the DDoS check: they
// are contacted constantly as part of normal IPv6 multicast discovery
// and would otherwise trip the detector on every host.
var multicastExempt = map[string]bool{
	"ff02::fb": true,
	"ff01::fb": true,
	"ff05::fb": true,
}

// Verdict is the outcome of running all four checks against one
// packet, plus the locality flags the capture loop needs to decide
// whether to update its traffic counters and whether a mitigation
// action applies at all.
type Verdict struct {
	SourceLocal      bool
	DestinationLocal bool
	SelfRequest      bool

	Blocklisted bool
	OffHours    bool
	Keyword     bool
	DDoS        bool
}

// Anomalous reports whether any of the four checks fired.
func (v Verdict) Anomalous() bool {
	return v.Blocklisted || v.OffHours || v.Keyword || v.DDoS
}

// Engine holds the three address/keyword lists and the connection
// scoreboard shared across every packet it checks.
type Engine struct {
	Blocklist  *addrlist.List
	Whitelist  *addrlist.List
	Keywords   *addrlist.List
	Scoreboard *scoreboard.Board

	ifaceIPv4 string
	ifaceIPv6 string
}

// NewEngine builds an Engine bound to the watched interface's own
// addresses, used for the source/destination locality checks below.
func NewEngine(ifaceIPv4, ifaceIPv6 string, blocklist, whitelist, keywords *addrlist.List) *Engine {
	return &Engine{
		Blocklist:  blocklist,
		Whitelist:  whitelist,
		Keywords:   keywords,
		Scoreboard: scoreboard.NewBoard(),
		ifaceIPv4:  ifaceIPv4,
		ifaceIPv6:  ifaceIPv6,
	}
}

// Check runs all four rules against pkt in the fixed order: blocklist,
// off-hours, keyword, then DDoS. DDoS runs last because updating the
// scoreboard is a side effect that should reflect this packet having
// already been evaluated by the other three rules.
func (e *Engine) Check(pkt packet.SimplePacket) Verdict {
	source := strings.Contains(e.ifaceIPv4, pkt.SourceAddress) || strings.Contains(e.ifaceIPv6, pkt.SourceAddress)
	destination := strings.Contains(e.ifaceIPv4, pkt.DestinationAddress) || strings.Contains(e.ifaceIPv6, pkt.DestinationAddress)

	v := Verdict{
		SourceLocal:      source,
		DestinationLocal: destination,
		SelfRequest:      source || destination,
	}

	v.Blocklisted = e.blocklistCheck(pkt)
	v.OffHours = e.offHoursCheck(pkt)
	v.Keyword = e.keywordCheck(pkt)
	v.DDoS = e.ddosCheck(pkt)

	return v
}

// ddosCheck updates the scoreboard entry for the packet's destination
// and reports true on any repeat contact — not only once the weight
// has crossed the alarm threshold. A warning is printed only once the
// weight actually drops below 1.0; the returned bool fires earlier,
// on the second packet to any given destination, matching the
// original detector's behavior.
func (e *Engine) ddosCheck(pkt packet.SimplePacket) bool {
	if multicastExempt[pkt.DestinationAddress] {
		return false
	}

	weight, repeat := e.Scoreboard.Observe(pkt.DestinationAddress, pkt.Time)
	if !repeat {
		return false
	}
	if weight < 1.0 {
		log.Warn(warn.Sprintf("Possible Attempt of DDoS Attack to IP: %s - Weight: %g", pkt.DestinationAddress, weight))
	}
	return true
}

// offHoursCheck flags packets seen outside 07:00–22:59 UTC unless
// either address is whitelisted for after-hours contact.
func (e *Engine) offHoursCheck(pkt packet.SimplePacket) bool {
	hour := pkt.Time.Hour()
	if hour < workingHoursStart || hour > workingHoursEnd {
		if !(e.Whitelist.Contains(pkt.SourceAddress) || e.Whitelist.Contains(pkt.DestinationAddress)) {
			log.Warn(warn.Sprint("Connection to Non Authorized IP During Non Working Hours"))
			return true
		}
	}
	return false
}

// blocklistCheck looks up both addresses; if both are present, the
// destination's annotation wins since it is checked last, matching
// the original's overwrite-in-place behavior.
func (e *Engine) blocklistCheck(pkt packet.SimplePacket) bool {
	var warning string
	var found bool

	if v, ok := e.Blocklist.Get(pkt.SourceAddress); ok {
		warning, found = v, true
	}
	if v, ok := e.Blocklist.Get(pkt.DestinationAddress); ok {
		warning, found = v, true
	}

	if found {
		log.Warn(warn.Sprintf("Connection to Black Listed IP Address Detected (%s)", warning))
		return true
	}
	return false
}

// keywordCheck lossily decodes the payload as UTF-8, lowercases it,
// and reports the first configured keyword found as a substring.
// Iteration order over the keyword list is unspecified, matching the
// "first match wins" but otherwise order-agnostic contract.
func (e *Engine) keywordCheck(pkt packet.SimplePacket) bool {
	payload := strings.ToLower(string(pkt.Payload))
	for _, keyword := range e.Keywords.Keys() {
		if strings.Contains(payload, keyword) {
			warning, _ := e.Keywords.Get(keyword)
			log.Warn(warn.Sprintf("Keyword detected on Packet Payload (%s - %s)", keyword, warning))
			return true
		}
	}
	return false
}

// workingHoursStart/End bound the policy window: packets outside
// [7, 22] (UTC hour, inclusive) are off-hours unless whitelisted.
const (
	workingHoursStart = 7
	workingHoursEnd   = 22
)
