// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package packet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_ResolvesPortDescriptions(t *testing.T) {
	p := New("TCP", "eth0", "10.0.0.1", 443, "10.0.0.2", 51234, "4", 64, 0xabcd, nil)
	assert.Equal(t, "Hypertext Transfer Protocol over TLS/SSL (HTTPS)", p.SourcePortDescription)
	assert.NotEmpty(t, p.DestinationPortDescription)
	assert.False(t, p.Time.IsZero())
	assert.Equal(t, "UTC", p.Time.Location().String())
}

func TestString_ContainsAllFields(t *testing.T) {
	p := New("UDP", "eth0", "10.0.0.1", 53, "10.0.0.2", 12345, "4", 128, 0x1234, []byte("payload"))
	s := p.String()
	for _, want := range []string{"UDP Packet", "eth0", "10.0.0.1", "10.0.0.2", "53", "12345", "128", "4660"} {
		assert.True(t, strings.Contains(s, want), "expected %q in %q", want, s)
	}
}
