// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package capture runs the single-threaded read loop: pull a frame off
// the wire, hand it to the decoder, react to whatever the decoder and
// rule engine found. Nothing in this package spawns a goroutine — the
// scoreboard, counters, and interface handle are all mutated from this
// one thread by design, so none of it needs synchronization.
package capture

import (
	"context"
	"runtime"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"
	"github.com/gopacket/gopacket/pcap"

	"grimm.is/botnet-tracker/internal/decode"
	"grimm.is/botnet-tracker/internal/errors"
	"grimm.is/botnet-tracker/internal/iface"
	"grimm.is/botnet-tracker/internal/logging"
	"grimm.is/botnet-tracker/internal/mitigate"
	"grimm.is/botnet-tracker/internal/packet"
	"grimm.is/botnet-tracker/internal/rules"
)

var log = logging.WithComponent("capture")

// scratchBufferSize mirrors the 2000-byte scratch buffer the original
// tool allocates for synthesizing an Ethernet header on macOS
// TUN-like interfaces.
const scratchBufferSize = 2000

// Target is the subset of *iface.Interface the mitigator needs. It
// exists so tests can substitute a fake that never shells out.
type Target interface {
	Down() error
	Setup(ip, netmask, gateway string) error
}

// Mitigator owns the watched interface and the mode chosen at
// startup, and applies that mode when Dispatch is called.
type Mitigator struct {
	Interface Target
	Mode      mitigate.Mode
}

// Dispatch runs the configured mitigation action. Errors are logged,
// not returned: a failed `down`/`setup` shell command must not crash
// the capture loop, which keeps running regardless.
func (m *Mitigator) Dispatch() {
	var err error
	switch m.Mode {
	case mitigate.DisableInterface:
		err = m.Interface.Down()
	case mitigate.ReconfigureNetwork:
		err = m.Interface.Setup(mitigate.QuarantineIP, mitigate.QuarantineNetmask, mitigate.QuarantineGateway)
	case mitigate.None:
		return
	}
	if err != nil {
		log.Error("mitigation command failed", "mode", m.Mode, "error", err, "attributes", errors.GetAttributes(err))
	}
}

// Loop owns every piece of mutable state touched while capturing:
// the live pcap handle, the rule engine (and its scoreboard), the
// protocol counters, and the mitigator.
type Loop struct {
	handle    *pcap.Handle
	decoder   *decode.Decoder
	engine    *rules.Engine
	counters  *Counters
	mitigator *Mitigator
	ifc       *iface.Interface
}

// Open starts a live capture on ifc.Name and wires together the
// decoder, rule engine, and counters needed to process it. It fails
// fatally if the link type isn't Ethernet, matching the original
// tool's startup-time channel-type check.
func Open(ifc *iface.Interface, engine *rules.Engine, counters *Counters, mitigator *Mitigator) (*Loop, error) {
	handle, err := pcap.OpenLive(ifc.Name, 65536, true, pcap.BlockForever)
	if err != nil {
		return nil, errors.Wrapf(err, errors.KindFatal, "open capture on %s", ifc.Name)
	}
	if handle.LinkType() != layers.LinkTypeEthernet {
		handle.Close()
		return nil, errors.Errorf(errors.KindFatal, "unhandled channel type on %s: %s", ifc.Name, handle.LinkType())
	}

	l := &Loop{handle: handle, engine: engine, counters: counters, mitigator: mitigator, ifc: ifc}
	l.decoder = decode.New(ifc.Name, ifc.IPv4, ifc.IPv6, l)
	return l, nil
}

// Close releases the underlying pcap handle.
func (l *Loop) Close() {
	l.handle.Close()
}

// Packet implements decode.Sink: run the rule engine, update the
// category counter if this is a local-host packet, and dispatch
// mitigation if any rule fired.
func (l *Loop) Packet(pkt packet.SimplePacket) {
	log.Info(pkt.String())
	v := l.engine.Check(pkt)

	if !v.SelfRequest {
		return
	}
	l.counters.Observe(pkt.Category, v.SourceLocal, v.DestinationLocal)

	if v.Anomalous() {
		l.mitigator.Dispatch()
	}
}

// Count implements decode.Sink for protocols the rule engine never
// sees (ICMP, ARP): counters still reflect them.
func (l *Loop) Count(c decode.Counted) {
	l.counters.Count(c)
}

// Start runs the read loop until ctx is canceled. The loop never
// exits on its own otherwise — matching the original's deliberately
// inactive `break` — so cancellation is the only way out.
func (l *Loop) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !l.ifc.IsUp() {
			log.Warn("interface is down", "iface", l.ifc.Name)
			continue
		}

		data, _, err := l.handle.ReadPacketData()
		if err != nil {
			if l.ifc.IsUp() {
				log.Error("unable to receive packet", "error", err)
			} else {
				log.Warn("interface is down", "iface", l.ifc.Name)
			}
			continue
		}

		l.handleRaw(data)
	}
}

// handleRaw applies the macOS TUN synthesis rule before handing the
// frame to the decoder: a point-to-point, non-broadcast, non-loopback
// interface on macOS delivers raw IP packets with no Ethernet header
// at all, so one must be fabricated with zero MAC addresses. The gate
// is the watched interface's own link flags, not a guess from the
// captured bytes — any Ethernet interface keeps going through the
// normal decode path regardless of what its first byte looks like.
func (l *Loop) handleRaw(data []byte) {
	if runtime.GOOS == "darwin" && l.ifc.IsRawIPTunnel() {
		if synthesized, ok := synthesizeEthernetFrame(data); ok {
			l.decoder.HandleFrame(synthesized)
			return
		}
	}
	l.decoder.HandleFrame(data)
}

// synthesizeEthernetFrame builds a zero-MAC Ethernet header around a
// raw IPv4/IPv6 payload, mirroring the original's 2000-byte scratch
// buffer trick for TUN-style interfaces that hand back bare IP
// packets instead of full frames.
func synthesizeEthernetFrame(payload []byte) ([]byte, bool) {
	if len(payload) == 0 {
		return nil, false
	}
	var ethType layers.EthernetType
	switch payload[0] >> 4 {
	case 4:
		ethType = layers.EthernetTypeIPv4
	case 6:
		ethType = layers.EthernetTypeIPv6
	default:
		return nil, false
	}

	buf := make([]byte, 0, scratchBufferSize)
	eth := &layers.Ethernet{
		SrcMAC:       make([]byte, 6),
		DstMAC:       make([]byte, 6),
		EthernetType: ethType,
	}
	sb := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(sb, gopacket.SerializeOptions{}, eth, gopacket.Payload(payload)); err != nil {
		return nil, false
	}
	buf = append(buf, sb.Bytes()...)
	return buf, true
}
