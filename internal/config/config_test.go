// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracker.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_TargetOverride(t *testing.T) {
	path := writeConfig(t, `
target {
  ip      = "10.10.0.5"
  netmask = "255.255.0.0"
  gateway = "10.10.0.1"
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Target)
	assert.Equal(t, "10.10.0.5", cfg.Target.IP)
}

func TestResolve_NilOverlayUsesDefaults(t *testing.T) {
	blocklist, whitelist, keywords, target := Resolve(nil)
	assert.Equal(t, DefaultBlocklist, blocklist)
	assert.Equal(t, DefaultWhitelist, whitelist)
	assert.Equal(t, DefaultKeywords, keywords)
	assert.Equal(t, DefaultTarget, target)
}

func TestResolve_PartialOverlayOnlyReplacesSetGroups(t *testing.T) {
	overlay := &Config{
		Target: &Target{IP: "10.0.0.5", Netmask: "255.255.255.0", Gateway: "10.0.0.1"},
	}
	blocklist, whitelist, keywords, target := Resolve(overlay)
	assert.Equal(t, DefaultBlocklist, blocklist)
	assert.Equal(t, DefaultWhitelist, whitelist)
	assert.Equal(t, DefaultKeywords, keywords)
	assert.Equal(t, "10.0.0.5", target.IP)
}

func TestValidate_RejectsIncompleteTarget(t *testing.T) {
	cfg := &Config{Target: &Target{IP: "10.0.0.5"}}
	assert.Error(t, cfg.Validate())
}

func TestFormatTarget_RendersBlock(t *testing.T) {
	out := FormatTarget(Target{IP: "192.168.0.110", Netmask: "255.255.255.0", Gateway: "192.168.0.1"})
	assert.Contains(t, out, `target {`)
	assert.Contains(t, out, `ip      = "192.168.0.110"`)
	assert.Contains(t, out, `netmask = "255.255.255.0"`)
	assert.Contains(t, out, `gateway = "192.168.0.1"`)
}

func TestValidate_NilConfigIsValid(t *testing.T) {
	var cfg *Config
	assert.NoError(t, cfg.Validate())
}
