// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package iface

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString_IncludesCoreFields(t *testing.T) {
	i := &Interface{Name: "eth0", IPv4: "10.0.0.5/24", IPv6: "fe80::1/64", MAC: "aa:bb:cc:dd:ee:ff"}
	s := i.String()
	assert.True(t, strings.Contains(s, "eth0"))
	assert.True(t, strings.Contains(s, "10.0.0.5/24"))
	assert.True(t, strings.Contains(s, "fe80::1/64"))
	assert.True(t, strings.Contains(s, "aa:bb:cc:dd:ee:ff"))
	assert.False(t, strings.Contains(s, "Link speed"))
}

func TestString_IncludesSpeedWhenPresent(t *testing.T) {
	i := &Interface{Name: "eth0", IPv4: "10.0.0.5/24", IPv6: "fe80::1/64", MAC: "aa:bb:cc:dd:ee:ff", Speed: "1000 Mb/s"}
	assert.True(t, strings.Contains(i.String(), "1000 Mb/s"))
}

func TestIsUsable_RequiresBothFamilies(t *testing.T) {
	assert.False(t, isUsable(&Interface{IPv4: "10.0.0.5"}))
	assert.False(t, isUsable(&Interface{IPv6: "fe80::1"}))
	assert.True(t, isUsable(&Interface{IPv4: "10.0.0.5", IPv6: "fe80::1"}))
}

func TestIsRawIPTunnel(t *testing.T) {
	assert.True(t, (&Interface{PointToPoint: true}).IsRawIPTunnel())
	assert.False(t, (&Interface{PointToPoint: true, Broadcast: true}).IsRawIPTunnel())
	assert.False(t, (&Interface{PointToPoint: true, Loopback: true}).IsRawIPTunnel())
	assert.False(t, (&Interface{}).IsRawIPTunnel())
}

func TestSetup_NoNetworkChangeWhenIPUnchanged(t *testing.T) {
	i := &Interface{Name: "lo0", IPv4: "127.0.0.1"}
	// Same IP: Setup must not attempt any shell command, so this must not
	// hang or error even though no privileged tool is available in tests.
	err := i.Setup("127.0.0.1", "255.0.0.0", "127.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, "127.0.0.1", i.IPv4)
}
