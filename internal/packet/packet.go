// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package packet holds SimplePacket, the normalized view of one
// transport-layer datagram that the rule engine and logger consume.
// Everything upstream of this package (internal/decode) is protocol
// plumbing; everything downstream only ever sees a SimplePacket.
package packet

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"grimm.is/botnet-tracker/internal/ports"
)

// SimplePacket centralizes the fields every rule and log line needs,
// regardless of which transport protocol produced it.
type SimplePacket struct {
	Category                  string
	Interface                 string
	SourceAddress             string
	SourcePort                uint16
	SourcePortDescription     string
	DestinationAddress        string
	DestinationPort           uint16
	DestinationPortDescription string
	IPVersion                 string
	Length                    int
	Checksum                  uint16
	Payload                   []byte
	Time                      time.Time
}

// New builds a SimplePacket, resolving both port descriptions from the
// well-known port registry and stamping the current UTC time as the
// receipt timestamp.
func New(
	category, ifaceName, srcIP string, srcPort uint16,
	dstIP string, dstPort uint16,
	ipVersion string, length int, checksum uint16, payload []byte,
) SimplePacket {
	return SimplePacket{
		Category:                   category,
		Interface:                  ifaceName,
		SourceAddress:              srcIP,
		SourcePort:                 srcPort,
		SourcePortDescription:      ports.Find(srcPort).Description,
		DestinationAddress:         dstIP,
		DestinationPort:            dstPort,
		DestinationPortDescription: ports.Find(dstPort).Description,
		IPVersion:                  ipVersion,
		Length:                     length,
		Checksum:                   checksum,
		Payload:                    payload,
		Time:                       time.Now().UTC(),
	}
}

var (
	category  = color.New(color.FgMagenta, color.Bold)
	ifaceName = color.New(color.FgBlue)
	portDesc  = color.New(color.FgCyan)
)

// String renders the same multi-line summary the original tool prints
// for every packet it inspects.
func (p SimplePacket) String() string {
	return fmt.Sprintf("%s Packet\nInterface: %s\nSource Address: %s\nSource Port: %d [%s]\nDestination Address: %s\nDestination Port: %d [%s]\nLength: %d\nChecksum: %d\nIP Version: %s\nReceived At: %s",
		category.Sprint(p.Category),
		ifaceName.Sprint(p.Interface),
		p.SourceAddress,
		p.SourcePort,
		portDesc.Sprint(p.SourcePortDescription),
		p.DestinationAddress,
		p.DestinationPort,
		portDesc.Sprint(p.DestinationPortDescription),
		p.Length,
		p.Checksum,
		p.IPVersion,
		p.Time.Format(time.RFC3339Nano),
	)
}
