// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package iface wraps the one network interface the tracker watches. It
// resolves the interface's addresses at startup and, on the mitigation
// path, shells out to the platform tool that can take it down, bring it
// back up, or move it onto another network.
package iface

import (
	"fmt"
	"os/exec"
	"runtime"

	"grimm.is/botnet-tracker/internal/errors"
	"grimm.is/botnet-tracker/internal/logging"
)

var log = logging.WithComponent("iface")

// Interface is the normalized view of the one interface the tracker
// operates on: enough to print a banner, feed the rule engine's
// SourceLocal/DestinationLocal checks, and drive the mitigation
// commands below.
type Interface struct {
	Name  string
	IPv4  string
	IPv6  string
	MAC   string
	Speed string // best-effort, empty when unavailable

	// Broadcast, Loopback, and PointToPoint mirror the link's flags at
	// resolve time. The capture loop uses them (PointToPoint &&
	// !Broadcast && !Loopback) to decide whether a macOS TUN-style
	// interface hands back bare IP packets with no Ethernet header.
	Broadcast    bool
	Loopback     bool
	PointToPoint bool
}

// New resolves iface by name and returns its normalized view. It is a
// fatal error for the interface not to exist or not to be up with both
// an IPv4 and an IPv6 address assigned — the tracker has nothing
// useful to watch otherwise.
func New(name string) (*Interface, error) {
	ifc, err := resolve(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.KindFatal, "resolve interface %s", name)
	}
	if !isUsable(ifc) {
		return nil, errors.Errorf(errors.KindFatal, "interface %s is down or missing an IPv4/IPv6 address", name)
	}
	ifc.Speed = probeSpeed(name)
	return ifc, nil
}

func isUsable(ifc *Interface) bool {
	return ifc.IPv4 != "" && ifc.IPv6 != ""
}

// IsUp re-queries the operating system for the interface's current
// operational state and addresses: it is true only while the interface
// is up and still has both an IPv4 and an IPv6 address, the same test
// New applies. The capture loop calls this on every iteration — an
// interface can go down mid-capture (including as a side effect of
// this tool's own mitigation), and the cached fields from New must
// never be mistaken for a live read.
func (i *Interface) IsUp() bool {
	if !isUpPlatform(i.Name) {
		return false
	}
	live, err := resolve(i.Name)
	return err == nil && isUsable(live)
}

// IsRawIPTunnel reports whether this interface hands back bare IP
// packets instead of full Ethernet frames: point-to-point and neither
// broadcast- nor loopback-capable, the signature of a macOS TUN-style
// device.
func (i *Interface) IsRawIPTunnel() bool {
	return i.PointToPoint && !i.Broadcast && !i.Loopback
}

// String renders a banner matching the layout the original tool prints
// on startup.
func (i *Interface) String() string {
	s := fmt.Sprintf("Interface Information\nName: %s\nIPv4: %s\nIPv6: %s\nMAC: %s",
		i.Name, i.IPv4, i.IPv6, i.MAC)
	if i.Speed != "" {
		s += fmt.Sprintf("\nLink speed: %s", i.Speed)
	}
	return s
}

// Down shuts the interface down using the platform tool appropriate for
// runtime.GOOS. The goal is to sever any connections an infected host
// might be using before a human can intervene further.
func (i *Interface) Down() error {
	return runPlatform(i.Name,
		fmt.Sprintf(`netsh interface set interface "%s" admin=disable`, i.Name),
		fmt.Sprintf("sudo ifconfig %s down", i.Name),
		fmt.Sprintf("sudo ip link set dev %s down", i.Name),
	)
}

// Up brings the interface back up.
func (i *Interface) Up() error {
	return runPlatform(i.Name,
		fmt.Sprintf(`netsh interface set interface "%s" admin=enable`, i.Name),
		fmt.Sprintf("sudo ifconfig %s up", i.Name),
		fmt.Sprintf("sudo ip link set dev %s up", i.Name),
	)
}

// Setup reconfigures the interface onto ip/netmask/gateway, typically a
// honeypot network where an infected host's traffic can be observed in
// isolation. It is a no-op on the network side when ip already matches
// the interface's current address. The in-memory record is updated to
// ip in every case except when a command could not be started at all;
// then the error is returned and the record keeps its old address.
func (i *Interface) Setup(ip, netmask, gateway string) error {
	if i.IPv4 != ip {
		log.Info("reconfiguring interface", "from", i.IPv4, "to", ip)
		var err error
		switch runtime.GOOS {
		case "windows":
			err = run("cmd", "/C", fmt.Sprintf(`netsh interface ipv4 set address name="%s" static %s %s %s`, i.Name, ip, netmask, gateway))
		case "darwin":
			err = run("sh", "-c", fmt.Sprintf(`sudo networksetup -setmanual "%s" %s %s %s`, i.Name, ip, netmask, gateway))
		default:
			err = run("sh", "-c", fmt.Sprintf("sudo ifconfig %s %s netmask %s", i.Name, ip, netmask))
			if err == nil {
				err = run("sh", "-c", fmt.Sprintf("sudo route add default gw %s %s", gateway, i.Name))
			}
		}
		if err != nil {
			return errors.Attr(errors.Attr(errors.Wrap(err, errors.KindIO, "reconfigure interface"), "interface", i.Name), "target_ip", ip)
		}
	}
	i.IPv4 = ip
	return nil
}

func runPlatform(name string, windows, darwin, other string) error {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = run("cmd", "/C", windows)
	case "darwin":
		err = run("sh", "-c", darwin)
	default:
		err = run("sh", "-c", other)
	}
	if err != nil {
		return errors.Attr(errors.Wrap(err, errors.KindIO, "interface command"), "interface", name)
	}
	return nil
}

// run executes one platform command. A non-zero exit status is logged
// but not treated as a failure; only a command that could not be
// started is returned as an error.
func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		log.Warn("interface command failed", "cmd", name, "args", args, "output", string(out), "error", err)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return err
	}
	return nil
}
