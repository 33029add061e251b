// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux

package iface

import (
	"fmt"
	"net"

	"github.com/safchain/ethtool"
	"github.com/vishvananda/netlink"
)

// resolve enumerates the named link's addresses via netlink, giving an
// accurate operational-state read even when net.InterfaceByName's
// cached flags lag reality.
func resolve(name string) (*Interface, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return nil, fmt.Errorf("link %s: %w", name, err)
	}

	ifc := &Interface{
		Name:         name,
		MAC:          link.Attrs().HardwareAddr.String(),
		Broadcast:    link.Attrs().Flags&net.FlagBroadcast != 0,
		Loopback:     link.Attrs().Flags&net.FlagLoopback != 0,
		PointToPoint: link.Attrs().Flags&net.FlagPointToPoint != 0,
	}
	if link.Attrs().OperState != netlink.OperUp && link.Attrs().Flags&net.FlagUp == 0 {
		return ifc, nil
	}

	addrs, err := netlink.AddrList(link, netlink.FAMILY_ALL)
	if err != nil {
		return nil, fmt.Errorf("addresses for %s: %w", name, err)
	}
	for _, a := range addrs {
		if a.IP.To4() != nil {
			if ifc.IPv4 == "" {
				ifc.IPv4 = a.IPNet.String()
			}
		} else if ifc.IPv6 == "" {
			ifc.IPv6 = a.IPNet.String()
		}
	}
	return ifc, nil
}

// isUpPlatform reads live operational state via netlink rather than
// trusting a cached flag snapshot.
func isUpPlatform(name string) bool {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return false
	}
	return link.Attrs().OperState == netlink.OperUp || link.Attrs().Flags&net.FlagUp != 0
}

// probeSpeed best-effort queries the link speed via ethtool. Absence of
// driver support, missing privilege, or a virtual interface all just
// yield an empty string — this is cosmetic enrichment for the startup
// banner, never load-bearing.
func probeSpeed(name string) string {
	e, err := ethtool.NewEthtool()
	if err != nil {
		return ""
	}
	defer e.Close()

	speed, err := e.CmdGetMapped(name)
	if err != nil {
		return ""
	}
	mbps, ok := speed["Speed"]
	if !ok || mbps == 0 {
		return ""
	}
	return fmt.Sprintf("%d Mb/s", mbps)
}
