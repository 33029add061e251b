// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build !linux

package iface

import (
	"fmt"
	"net"
)

// resolve falls back to the standard library's interface enumeration on
// non-Linux targets, where netlink isn't available. It reports the same
// fields with less precision about operational state.
func resolve(name string) (*Interface, error) {
	netIfc, err := net.InterfaceByName(name)
	if err != nil {
		return nil, fmt.Errorf("interface %s: %w", name, err)
	}

	ifc := &Interface{
		Name:         name,
		MAC:          netIfc.HardwareAddr.String(),
		Broadcast:    netIfc.Flags&net.FlagBroadcast != 0,
		Loopback:     netIfc.Flags&net.FlagLoopback != 0,
		PointToPoint: netIfc.Flags&net.FlagPointToPoint != 0,
	}
	if netIfc.Flags&net.FlagUp == 0 {
		return ifc, nil
	}

	addrs, err := netIfc.Addrs()
	if err != nil {
		return nil, fmt.Errorf("addresses for %s: %w", name, err)
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		if ipNet.IP.To4() != nil {
			if ifc.IPv4 == "" {
				ifc.IPv4 = ipNet.String()
			}
		} else if ifc.IPv6 == "" {
			ifc.IPv6 = ipNet.String()
		}
	}
	return ifc, nil
}

// isUpPlatform re-reads the interface's flags from the standard
// library on platforms without a netlink-equivalent read path.
func isUpPlatform(name string) bool {
	netIfc, err := net.InterfaceByName(name)
	if err != nil {
		return false
	}
	return netIfc.Flags&net.FlagUp != 0
}

// probeSpeed has no portable implementation outside Linux's ethtool
// ioctl; the banner simply omits the line.
func probeSpeed(string) string {
	return ""
}
