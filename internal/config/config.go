// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package config decodes an optional HCL overlay file that can
// override the built-in list-file paths and the mitigation target
// network. It is purely additive: absent a -config flag, the tracker
// reproduces the original tool's hardcoded defaults exactly.
package config

import (
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"grimm.is/botnet-tracker/internal/errors"
)

// ListFile names a text file to load into an address/keyword list and
// the annotation to record for every entry it contributes.
type ListFile struct {
	Path       string `hcl:"path"`
	Annotation string `hcl:"annotation"`
}

// Target overrides the fixed quarantine network used by
// ReconfigureNetwork mitigation.
type Target struct {
	IP      string `hcl:"ip"`
	Netmask string `hcl:"netmask"`
	Gateway string `hcl:"gateway"`
}

// Config is the root of the optional overlay file.
type Config struct {
	Blocklist []ListFile `hcl:"blocklist,block"`
	Whitelist []ListFile `hcl:"whitelist,block"`
	Keywords  []ListFile `hcl:"keywords,block"`
	Target    *Target    `hcl:"target,block"`
}

// DefaultBlocklist, DefaultWhitelist, and DefaultKeywords reproduce
// the original tool's hardcoded asset paths and annotations exactly —
// see original_source/src/main.rs.
var (
	DefaultBlocklist = []ListFile{
		{Path: "assets/blocklists/botnets/zeus.txt", Annotation: "Zeus Botnet"},
		{Path: "assets/blocklists/trojans/feodo.txt", Annotation: "Feodo Tojan"},
		{Path: "assets/blocklists/others/tor.txt", Annotation: "TOR Node"},
		{Path: "assets/blocklists/malware/bambenek.txt", Annotation: "Cryptolocker - GameOver Zeus (p2p and post-Tovar) - tinba - matsnu - pushdo - qakbot"},
		{Path: "assets/blocklists/malware/irc.txt", Annotation: "IRC Malware Distribution"},
	}
	DefaultWhitelist = []ListFile{
		{Path: "assets/whitelists/working_hours.txt", Annotation: "Working Hour Whitelist"},
	}
	DefaultKeywords = []ListFile{
		{Path: "assets/keywords/command_control.txt", Annotation: "Common commands that C&C traffic use"},
	}
	DefaultTarget = Target{IP: "192.168.0.110", Netmask: "255.255.255.0", Gateway: "192.168.0.1"}
)

// Load decodes the HCL file at path. A missing or empty block in the
// file leaves the corresponding default in place — Resolve, not Load,
// is responsible for merging defaults in.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.KindConfig, "decode config file %s", path)
	}
	return &cfg, nil
}

// Resolve merges an optional overlay (possibly nil, meaning -config
// was never given) over the built-in defaults, field group by field
// group — an overlay that only sets `target` leaves the three list
// groups at their defaults, and vice versa.
func Resolve(overlay *Config) (blocklist, whitelist, keywords []ListFile, target Target) {
	blocklist, whitelist, keywords, target = DefaultBlocklist, DefaultWhitelist, DefaultKeywords, DefaultTarget
	if overlay == nil {
		return
	}
	if len(overlay.Blocklist) > 0 {
		blocklist = overlay.Blocklist
	}
	if len(overlay.Whitelist) > 0 {
		whitelist = overlay.Whitelist
	}
	if len(overlay.Keywords) > 0 {
		keywords = overlay.Keywords
	}
	if overlay.Target != nil {
		target = *overlay.Target
	}
	return
}

// validateNonEmpty reports whether every given string is non-blank,
// used to reject a `target` block with blank fields before it ever
// reaches internal/iface.Setup.
func validateNonEmpty(fields ...string) bool {
	for _, f := range fields {
		if f == "" {
			return false
		}
	}
	return true
}

// FormatTarget renders a resolved Target back out as canonical HCL
// text: the same cty/hclwrite idiom the teacher's SetAttribute uses to
// serialize Go values into HCL attributes (toCtyValue feeding
// body.SetAttributeValue), here used to log exactly which target
// block is in effect at startup rather than to rewrite a file on disk.
func FormatTarget(t Target) string {
	f := hclwrite.NewEmptyFile()
	body := f.Body().AppendNewBlock("target", nil).Body()
	body.SetAttributeValue("ip", cty.StringVal(t.IP))
	body.SetAttributeValue("netmask", cty.StringVal(t.Netmask))
	body.SetAttributeValue("gateway", cty.StringVal(t.Gateway))
	return string(f.Bytes())
}

// Validate checks that an overlay's target block, if present, names a
// complete IP/netmask/gateway triple.
func (c *Config) Validate() error {
	if c == nil || c.Target == nil {
		return nil
	}
	if !validateNonEmpty(c.Target.IP, c.Target.Netmask, c.Target.Gateway) {
		return errors.New(errors.KindConfig, "target block must set ip, netmask, and gateway")
	}
	return nil
}
