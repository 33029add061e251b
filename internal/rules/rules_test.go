// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/botnet-tracker/internal/addrlist"
	"grimm.is/botnet-tracker/internal/packet"
)

func newEngine() *Engine {
	return NewEngine(
		"10.0.0.1/24", "fe80::1/64",
		addrlist.New("blocklist", ""),
		addrlist.New("whitelist", ""),
		addrlist.New("keywords", ""),
	)
}

func udpAt(t time.Time, dst string, payload string) packet.SimplePacket {
	p := packet.New("UDP", "eth0", "10.0.0.1", 5000, dst, 53, "4", 64, 0, []byte(payload))
	p.Time = t
	return p
}

// The first packet only creates the scoreboard entry; the 45th packet is
// the 44th fast update, which takes the weight below 1.0.
func TestDDoSTripOn45thPacket(t *testing.T) {
	e := newEngine()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	var last Verdict
	for i := 0; i < 45; i++ {
		pkt := udpAt(base.Add(time.Duration(i)*100*time.Millisecond), "10.0.0.5", "")
		last = e.Check(pkt)
	}
	assert.True(t, last.DDoS)
	entry, ok := e.Scoreboard.Get("10.0.0.5")
	require.True(t, ok)
	assert.Less(t, entry.Weight, 1.0)
}

func TestDDoS_FirstContactNeverTrips(t *testing.T) {
	e := newEngine()
	pkt := udpAt(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), "10.0.0.9", "")
	v := e.Check(pkt)
	assert.False(t, v.DDoS)
}

func TestOffHours_WhitelistedDestinationSuppressesWarning(t *testing.T) {
	e := newEngine()
	e.Whitelist.Add("10.0.0.200", "ok")
	pkt := packet.New("TCP", "eth0", "10.0.0.1", 5000, "10.0.0.200", 80, "4", 64, 0, nil)
	pkt.Time = time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC)

	v := e.Check(pkt)
	assert.False(t, v.OffHours)
}

func TestOffHours_NotWhitelistedWarns(t *testing.T) {
	e := newEngine()
	pkt := packet.New("TCP", "eth0", "10.0.0.1", 5000, "10.0.0.201", 80, "4", 64, 0, nil)
	pkt.Time = time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC)

	v := e.Check(pkt)
	assert.True(t, v.OffHours)
	assert.False(t, v.DDoS, "first contact must not trip DDoS")
}

func TestOffHours_BoundaryHoursAreInWindow(t *testing.T) {
	e := newEngine()
	for _, hour := range []int{7, 22} {
		pkt := packet.New("TCP", "eth0", "10.0.0.1", 5000, "10.0.0.201", 80, "4", 64, 0, nil)
		pkt.Time = time.Date(2026, 1, 1, hour, 0, 0, 0, time.UTC)
		v := e.Check(pkt)
		assert.False(t, v.OffHours, "hour %d should be in-window", hour)
	}
}

func TestOffHours_BoundaryHoursOutOfWindow(t *testing.T) {
	e := newEngine()
	for _, hour := range []int{6, 23} {
		pkt := packet.New("TCP", "eth0", "10.0.0.1", 5000, "10.0.0.202", 80, "4", 64, 0, nil)
		pkt.Time = time.Date(2026, 1, 1, hour, 0, 0, 0, time.UTC)
		v := e.Check(pkt)
		assert.True(t, v.OffHours, "hour %d should be out-of-window", hour)
	}
}

func TestBlocklist_DestinationOverridesSource(t *testing.T) {
	e := newEngine()
	e.Blocklist.Add("1.1.1.1", "A")
	e.Blocklist.Add("2.2.2.2", "B")

	pkt := packet.New("TCP", "eth0", "1.1.1.1", 5000, "2.2.2.2", 80, "4", 64, 0, nil)
	pkt.Time = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	v := e.Check(pkt)
	assert.True(t, v.Blocklisted)

	warning, ok := e.Blocklist.Get(pkt.DestinationAddress)
	require.True(t, ok)
	assert.Equal(t, "B", warning)
}

func TestKeyword_CaseInsensitiveMatch(t *testing.T) {
	e := newEngine()
	e.Keywords.Add("cmd.exe", "suspicious binary")

	pkt := packet.New("TCP", "eth0", "10.0.0.1", 5000, "10.0.0.9", 80, "4", 64, 0, []byte("... CMD.EXE ..."))
	pkt.Time = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	v := e.Check(pkt)
	assert.True(t, v.Keyword)
}

func TestDDoS_MulticastDestinationExempt(t *testing.T) {
	e := newEngine()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		pkt := udpAt(base.Add(time.Duration(i)*100*time.Millisecond), "ff02::fb", "")
		v := e.Check(pkt)
		assert.False(t, v.DDoS)
	}
	_, ok := e.Scoreboard.Get("ff02::fb")
	assert.False(t, ok, "multicast destinations must never create a scoreboard entry")
}

func TestCheck_LocalityFlags(t *testing.T) {
	e := newEngine()
	pkt := packet.New("TCP", "eth0", "10.0.0.1", 5000, "8.8.8.8", 80, "4", 64, 0, nil)
	pkt.Time = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	v := e.Check(pkt)
	assert.True(t, v.SourceLocal)
	assert.False(t, v.DestinationLocal)
	assert.True(t, v.SelfRequest)
}
