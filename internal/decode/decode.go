// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package decode walks one captured Ethernet frame down through its
// network and transport layers, normalizing TCP/UDP payloads into
// packet.SimplePacket for the rule engine and leaving ICMP/ICMPv6/ARP
// as counter-only observations. Only this package knows about
// gopacket's layer types; everything downstream works with plain
// strings and ints.
package decode

import (
	"fmt"
	"net"
	"strings"

	"github.com/fatih/color"
	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"

	"grimm.is/botnet-tracker/internal/logging"
	"grimm.is/botnet-tracker/internal/packet"
)

var log = logging.WithComponent("decode")

var icmpLabel = color.New(color.FgYellow, color.Bold)

// Category names used on counters and in SimplePacket.Category,
// matching the original tool's fixed protocol set.
const (
	CategoryTCP  = "TCP"
	CategoryUDP  = "UDP"
	CategoryICMP = "ICMP"
	CategoryARP  = "ARP"
)

// Counted is emitted for the protocols that never become a
// SimplePacket (ICMP, ICMPv6, ARP), so the capture loop can still
// update their incoming/outgoing counters. TCP and UDP are counted by
// the capture loop from the rule engine's verdict instead.
type Counted struct {
	Category    string
	SourceLocal bool
	DestLocal   bool
}

// Sink receives the outputs of decoding one frame: an optional
// normalized packet (only for TCP/UDP) or a counted observation (only
// for ICMP/ICMPv6/ARP).
type Sink interface {
	// Packet is called once per TCP/UDP datagram successfully decoded.
	Packet(pkt packet.SimplePacket)
	// Count is called once per ICMP, ICMPv6 or ARP packet, after
	// locality is known, so counters reflect the protocols the rule
	// engine does not police. It is never called for TCP or UDP.
	Count(c Counted)
}

// Decoder holds the interface-identity state (name and local address
// strings) needed to classify locality and tag SimplePacket.Interface,
// plus the Sink that consumes its output.
type Decoder struct {
	ifaceName string
	ifaceIPv4 string
	ifaceIPv6 string
	sink      Sink
}

// New creates a Decoder bound to one interface's identity, delivering
// results to sink.
func New(ifaceName, ifaceIPv4, ifaceIPv6 string, sink Sink) *Decoder {
	return &Decoder{ifaceName: ifaceName, ifaceIPv4: ifaceIPv4, ifaceIPv6: ifaceIPv6, sink: sink}
}

func (d *Decoder) isLocal(addr string) bool {
	return strings.Contains(d.ifaceIPv4, addr) || strings.Contains(d.ifaceIPv6, addr)
}

func (d *Decoder) isLocalV4(addr string) bool {
	return strings.Contains(d.ifaceIPv4, addr)
}

func (d *Decoder) isLocalV6(addr string) bool {
	return strings.Contains(d.ifaceIPv6, addr)
}

// HandleFrame decodes one Ethernet frame and dispatches to the sink. A
// frame whose EtherType isn't IPv4, IPv6, or ARP is logged and
// otherwise ignored, matching the original tool's "Unknown packet"
// behavior for anything outside its three known network layers.
func (d *Decoder) HandleFrame(data []byte) {
	eth := gopacket.NewPacket(data, layers.LayerTypeEthernet, gopacket.DecodeOptions{Lazy: true, NoCopy: true})
	ethLayer := eth.Layer(layers.LayerTypeEthernet)
	if ethLayer == nil {
		log.Warn("malformed Ethernet frame", "iface", d.ifaceName)
		return
	}
	ethernet := ethLayer.(*layers.Ethernet)

	switch ethernet.EthernetType {
	case layers.EthernetTypeIPv4:
		d.handleIPv4(ethernet.Payload)
	case layers.EthernetTypeIPv6:
		d.handleIPv6(ethernet.Payload)
	case layers.EthernetTypeARP:
		d.handleARP(eth, ethernet)
	default:
		log.Debug("unknown frame", "iface", d.ifaceName, "src", ethernet.SrcMAC, "dst", ethernet.DstMAC,
			"ethertype", ethernet.EthernetType, "length", len(data))
	}
}

func (d *Decoder) handleIPv4(payload []byte) {
	p := gopacket.NewPacket(payload, layers.LayerTypeIPv4, gopacket.DecodeOptions{Lazy: true, NoCopy: true})
	ipLayer := p.Layer(layers.LayerTypeIPv4)
	if ipLayer == nil {
		log.Warn("Malformed IPv4 Packet", "iface", d.ifaceName)
		return
	}
	ip := ipLayer.(*layers.IPv4)
	d.handleTransport(ip.SrcIP, ip.DstIP, ip.Protocol, ip.Payload, "4")
}

func (d *Decoder) handleIPv6(payload []byte) {
	p := gopacket.NewPacket(payload, layers.LayerTypeIPv6, gopacket.DecodeOptions{Lazy: true, NoCopy: true})
	ipLayer := p.Layer(layers.LayerTypeIPv6)
	if ipLayer == nil {
		log.Warn("Malformed IPv6 Packet", "iface", d.ifaceName)
		return
	}
	ip := ipLayer.(*layers.IPv6)
	d.handleTransport(ip.SrcIP, ip.DstIP, ip.NextHeader, ip.Payload, "6")
}

func (d *Decoder) handleTransport(srcIP, dstIP net.IP, proto layers.IPProtocol, payload []byte, ipVersion string) {
	switch proto {
	case layers.IPProtocolUDP:
		d.handleUDP(srcIP, dstIP, payload, ipVersion)
	case layers.IPProtocolTCP:
		d.handleTCP(srcIP, dstIP, payload, ipVersion)
	case layers.IPProtocolICMPv4:
		d.handleICMP(srcIP, dstIP, payload)
	case layers.IPProtocolICMPv6:
		d.handleICMPv6(srcIP, dstIP, payload)
	default:
		log.Debug("unknown transport packet", "iface", d.ifaceName, "src", srcIP, "dst", dstIP,
			"protocol", proto, "length", len(payload))
	}
}

func (d *Decoder) handleUDP(srcIP, dstIP net.IP, payload []byte, ipVersion string) {
	p := gopacket.NewPacket(payload, layers.LayerTypeUDP, gopacket.DecodeOptions{Lazy: true, NoCopy: true})
	udpLayer := p.Layer(layers.LayerTypeUDP)
	if udpLayer == nil {
		log.Warn("Malformed UDP Packet", "iface", d.ifaceName)
		return
	}
	udp := udpLayer.(*layers.UDP)
	pkt := packet.New(CategoryUDP, d.ifaceName, srcIP.String(), uint16(udp.SrcPort),
		dstIP.String(), uint16(udp.DstPort), ipVersion, len(payload), udp.Checksum, udp.Payload)
	d.sink.Packet(pkt)
}

func (d *Decoder) handleTCP(srcIP, dstIP net.IP, payload []byte, ipVersion string) {
	p := gopacket.NewPacket(payload, layers.LayerTypeTCP, gopacket.DecodeOptions{Lazy: true, NoCopy: true})
	tcpLayer := p.Layer(layers.LayerTypeTCP)
	if tcpLayer == nil {
		log.Warn("Malformed TCP Packet", "iface", d.ifaceName)
		return
	}
	tcp := tcpLayer.(*layers.TCP)
	pkt := packet.New(CategoryTCP, d.ifaceName, srcIP.String(), uint16(tcp.SrcPort),
		dstIP.String(), uint16(tcp.DstPort), ipVersion, len(payload), tcp.Checksum, tcp.Payload)
	d.sink.Packet(pkt)
}

// handleICMP counts ICMP traffic without entering the rule engine:
// stateless control-plane traffic is observed but not policed. The
// log line differentiates Echo Reply/Request from every other ICMP
// type, including the sequence/identifier pair for the echo cases.
func (d *Decoder) handleICMP(srcIP, dstIP net.IP, payload []byte) {
	p := gopacket.NewPacket(payload, layers.LayerTypeICMPv4, gopacket.DecodeOptions{Lazy: true, NoCopy: true})
	icmpLayer := p.Layer(layers.LayerTypeICMPv4)
	if icmpLayer == nil {
		log.Warn("Malformed ICMP Packet", "iface", d.ifaceName)
		return
	}
	icmp := icmpLayer.(*layers.ICMPv4)

	switch icmp.TypeCode.Type() {
	case layers.ICMPv4TypeEchoReply:
		log.Debug(fmt.Sprintf("%s\nInterface: %s\nSource: %s\nDestination: %s\n(seq=%d, id=%d)",
			icmpLabel.Sprint("ICMP Echo Reply"), d.ifaceName, srcIP, dstIP, icmp.Seq, icmp.Id))
	case layers.ICMPv4TypeEchoRequest:
		log.Debug(fmt.Sprintf("%s\nInterface: %s\nSource: %s\nDestination: %s\n(seq=%d, id=%d)",
			icmpLabel.Sprint("ICMP Echo Request"), d.ifaceName, srcIP, dstIP, icmp.Seq, icmp.Id))
	default:
		log.Debug(fmt.Sprintf("%s\nInterface: %s\nSource: %s\nDestination: %s\n(type=%d)",
			icmpLabel.Sprint("ICMP Packet"), d.ifaceName, srcIP, dstIP, icmp.TypeCode.Type()))
	}
	d.sink.Count(Counted{Category: CategoryICMP, SourceLocal: d.isLocalV4(srcIP.String()), DestLocal: d.isLocalV4(dstIP.String())})
}

func (d *Decoder) handleICMPv6(srcIP, dstIP net.IP, payload []byte) {
	p := gopacket.NewPacket(payload, layers.LayerTypeICMPv6, gopacket.DecodeOptions{Lazy: true, NoCopy: true})
	if p.Layer(layers.LayerTypeICMPv6) == nil {
		log.Warn("Malformed ICMPv6 Packet", "iface", d.ifaceName)
		return
	}
	log.Debug("ICMPv6 packet", "iface", d.ifaceName, "src", srcIP, "dst", dstIP)
	d.sink.Count(Counted{Category: CategoryICMP, SourceLocal: d.isLocalV6(srcIP.String()), DestLocal: d.isLocalV6(dstIP.String())})
}

// handleARP is reached directly from the Ethernet dispatch since ARP
// has no IP-layer header of its own.
func (d *Decoder) handleARP(frame gopacket.Packet, ethernet *layers.Ethernet) {
	arpLayer := frame.Layer(layers.LayerTypeARP)
	if arpLayer == nil {
		log.Warn("Malformed ARP Packet", "iface", d.ifaceName)
		return
	}
	arp := arpLayer.(*layers.ARP)
	senderIP := net.IP(arp.SourceProtAddress).String()
	targetIP := net.IP(arp.DstProtAddress).String()

	log.Debug("ARP packet", "iface", d.ifaceName,
		"senderMAC", net.HardwareAddr(arp.SourceHwAddress), "senderIP", senderIP,
		"targetMAC", net.HardwareAddr(arp.DstHwAddress), "targetIP", targetIP,
		"operation", arp.Operation)

	d.sink.Count(Counted{Category: CategoryARP, SourceLocal: d.isLocal(senderIP), DestLocal: d.isLocal(targetIP)})
}
