// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package capture

import (
	"github.com/prometheus/client_golang/prometheus"

	"grimm.is/botnet-tracker/internal/decode"
)

// Counters tracks incoming/outgoing packet totals per protocol
// category (TCP, UDP, ICMP, ARP), the same fixed four the original
// tool keeps in memory. It is also registered as a Prometheus
// CounterVec so the numbers are visible to anything that scrapes the
// process's default registry — there is no HTTP endpoint exposed by
// this tool itself, matching the "no remote management surface"
// design constraint.
type Counters struct {
	vec *prometheus.CounterVec

	totals map[string][2]int64
}

// direction labels, matching prometheus.CounterVec convention.
const (
	directionIncoming = "incoming"
	directionOutgoing = "outgoing"
)

// NewCounters creates a Counters and registers it with reg. Passing a
// fresh prometheus.NewRegistry() in tests avoids collisions with the
// global default registry.
func NewCounters(reg prometheus.Registerer) *Counters {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "botnet_tracker_packets_total",
		Help: "Packets observed on the watched interface, by protocol and direction.",
	}, []string{"protocol", "direction"})
	if reg != nil {
		reg.MustRegister(vec)
	}
	return &Counters{vec: vec, totals: make(map[string][2]int64)}
}

// Observe applies the spec's mutually-checked increment rule: outgoing
// (index 1) if sourceLocal, else incoming (index 0) if destLocal. Both
// being true only happens for loopback-style packets, where outgoing
// wins.
func (c *Counters) Observe(category string, sourceLocal, destLocal bool) {
	t := c.totals[category]
	if sourceLocal {
		t[1]++
		c.vec.WithLabelValues(category, directionOutgoing).Inc()
	} else if destLocal {
		t[0]++
		c.vec.WithLabelValues(category, directionIncoming).Inc()
	}
	c.totals[category] = t
}

// Snapshot returns the [incoming, outgoing] pair for category.
func (c *Counters) Snapshot(category string) (incoming, outgoing int64) {
	t := c.totals[category]
	return t[0], t[1]
}

// Count implements decode.Sink's counter-only observations (ICMP, ARP).
func (c *Counters) Count(cnt decode.Counted) {
	c.Observe(cnt.Category, cnt.SourceLocal, cnt.DestLocal)
}
