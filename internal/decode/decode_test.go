// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package decode

import (
	"net"
	"testing"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/botnet-tracker/internal/packet"
)

type fakeSink struct {
	packets []packet.SimplePacket
	counts  []Counted
}

func (f *fakeSink) Packet(p packet.SimplePacket) { f.packets = append(f.packets, p) }
func (f *fakeSink) Count(c Counted)              { f.counts = append(f.counts, c) }

func buildUDPFrame(t *testing.T, srcIP, dstIP string, srcPort, dstPort uint16, payload []byte) []byte {
	t.Helper()
	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0, 1, 2, 3, 4, 5},
		DstMAC:       net.HardwareAddr{6, 7, 8, 9, 10, 11},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    net.ParseIP(srcIP).To4(),
		DstIP:    net.ParseIP(dstIP).To4(),
	}
	udp := &layers.UDP{
		SrcPort: layers.UDPPort(srcPort),
		DstPort: layers.UDPPort(dstPort),
	}
	require.NoError(t, udp.SetNetworkLayerForChecksum(ip))

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.NoError(t, gopacket.SerializeLayers(buf, opts, eth, ip, udp, gopacket.Payload(payload)))
	return buf.Bytes()
}

func TestHandleFrame_UDPProducesSimplePacket(t *testing.T) {
	sink := &fakeSink{}
	d := New("eth0", "10.0.0.1/24", "fe80::1/64", sink)

	frame := buildUDPFrame(t, "10.0.0.1", "10.0.0.5", 5000, 53, []byte("hello"))
	d.HandleFrame(frame)

	require.Len(t, sink.packets, 1)
	p := sink.packets[0]
	assert.Equal(t, CategoryUDP, p.Category)
	assert.Equal(t, "10.0.0.1", p.SourceAddress)
	assert.Equal(t, "10.0.0.5", p.DestinationAddress)
	assert.Equal(t, uint16(5000), p.SourcePort)
	assert.Equal(t, uint16(53), p.DestinationPort)
	assert.Equal(t, []byte("hello"), []byte(p.Payload))
}

func buildICMPFrame(t *testing.T, srcIP, dstIP string, typ uint8, id, seq uint16) []byte {
	t.Helper()
	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0, 1, 2, 3, 4, 5},
		DstMAC:       net.HardwareAddr{6, 7, 8, 9, 10, 11},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolICMPv4,
		SrcIP:    net.ParseIP(srcIP).To4(),
		DstIP:    net.ParseIP(dstIP).To4(),
	}
	icmp := &layers.ICMPv4{
		TypeCode: layers.CreateICMPv4TypeCode(typ, 0),
		Id:       id,
		Seq:      seq,
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.NoError(t, gopacket.SerializeLayers(buf, opts, eth, ip, icmp))
	return buf.Bytes()
}

func TestHandleFrame_ICMPEchoRequestIsCountedWithIPv4Locality(t *testing.T) {
	sink := &fakeSink{}
	d := New("eth0", "10.0.0.1/24", "fe80::1/64", sink)

	frame := buildICMPFrame(t, "10.0.0.1", "10.0.0.5", uint8(layers.ICMPv4TypeEchoRequest), 7, 1)
	d.HandleFrame(frame)

	require.Len(t, sink.counts, 1)
	assert.Equal(t, CategoryICMP, sink.counts[0].Category)
	assert.True(t, sink.counts[0].SourceLocal)
	assert.False(t, sink.counts[0].DestLocal)
	assert.Empty(t, sink.packets)
}

func TestHandleFrame_ICMPOtherTypeStillCounted(t *testing.T) {
	sink := &fakeSink{}
	d := New("eth0", "10.0.0.1/24", "fe80::1/64", sink)

	frame := buildICMPFrame(t, "10.0.0.1", "10.0.0.5", uint8(layers.ICMPv4TypeDestinationUnreachable), 0, 0)
	d.HandleFrame(frame)

	require.Len(t, sink.counts, 1)
	assert.Equal(t, CategoryICMP, sink.counts[0].Category)
}

func TestHandleFrame_MalformedEthernetDropsSilently(t *testing.T) {
	sink := &fakeSink{}
	d := New("eth0", "10.0.0.1/24", "fe80::1/64", sink)
	d.HandleFrame([]byte{0x01, 0x02}) // far too short for an Ethernet header
	assert.Empty(t, sink.packets)
	assert.Empty(t, sink.counts)
}

func TestIsLocal_SubstringContainment(t *testing.T) {
	d := New("eth0", "10.0.0.1/24", "fe80::1/64", &fakeSink{})
	assert.True(t, d.isLocal("10.0.0.1"))
	assert.False(t, d.isLocal("10.0.0.99"))
}
