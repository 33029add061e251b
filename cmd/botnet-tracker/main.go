// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Command botnet-tracker watches one network interface, decodes every
// frame it sees, and runs four anomaly rules against TCP/UDP traffic:
// a source/destination blocklist, an off-hours policy, a payload keyword
// scan, and a connection-weight DDoS detector. When a rule fires on a
// local-host packet, the configured mitigation (disable the interface,
// or move it to a quarantine network) is dispatched.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"grimm.is/botnet-tracker/internal/addrlist"
	"grimm.is/botnet-tracker/internal/capture"
	"grimm.is/botnet-tracker/internal/config"
	"grimm.is/botnet-tracker/internal/errors"
	"grimm.is/botnet-tracker/internal/iface"
	"grimm.is/botnet-tracker/internal/logging"
	"grimm.is/botnet-tracker/internal/mitigate"
	"grimm.is/botnet-tracker/internal/rules"
)

// Single fatal-exit path: every error run returns is a startup failure
// (missing interface argument, config file, interface ineligible, list
// load, channel open), always
// KindConfig or KindFatal, but errors.IsFatal is still the gate here
// rather than an unconditional exit, matching the original tool's
// fail-fast startup behavior without assuming a non-fatal kind could
// never reach this point.
func main() {
	if err := run(); err != nil {
		logging.Error("fatal", "error", err, "attributes", errors.GetAttributes(err))
		if errors.IsFatal(err) {
			os.Exit(1)
		}
	}
}

func run() error {
	configPath := flag.String("config", "", "optional HCL file overriding list paths and the mitigation target network")
	debug := flag.Bool("debug", false, "enable debug-level logging")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "USAGE: botnet-tracker <NETWORK INTERFACE> <ACTION_FLAG>")
	}
	flag.Parse()
	logging.SetLevel(*debug)

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "USAGE: botnet-tracker <NETWORK INTERFACE> <ACTION_FLAG>")
		return errors.New(errors.KindConfig, "missing network interface argument")
	}
	ifaceName := args[0]

	var actionFlag string
	if len(args) > 1 {
		actionFlag = args[1]
	}
	mode := mitigate.ParseFlag(actionFlag)
	switch mode {
	case mitigate.DisableInterface:
		logging.Info("The Network Interface will be shut down if abnormal behavior is detected.")
	case mitigate.ReconfigureNetwork:
		logging.Info("The Network will be changed if abnormal behavior is detected.")
	default:
		if actionFlag == "" {
			logging.Info("No action argument was provided, no action will be taken when detecting abnormal behaviors.")
		} else {
			logging.Info("The Action argument provided was invalid, no action will be taken when detecting abnormal behaviors.")
		}
	}

	var overlay *config.Config
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}
		overlay = c
	}
	blocklistFiles, whitelistFiles, keywordFiles, target := config.Resolve(overlay)
	logging.Debug("effective mitigation target", "hcl", config.FormatTarget(target))

	blocklist := addrlist.New("Botnet Bad IPs", "List of Documented IPs related to botnet activity.")
	for _, f := range blocklistFiles {
		if err := blocklist.Load(f.Path, f.Annotation); err != nil {
			return errors.Wrap(err, errors.KindFatal, "load blocklist")
		}
	}

	whitelist := addrlist.New("Non Working Hours Whitelist", "List of IPs devices are allowed to connect while not on working hours")
	for _, f := range whitelistFiles {
		if err := whitelist.Load(f.Path, f.Annotation); err != nil {
			return errors.Wrap(err, errors.KindFatal, "load whitelist")
		}
	}

	keywords := addrlist.New("Keywords", "Keywords that will be looked into on the packets content")
	for _, f := range keywordFiles {
		if err := keywords.Load(f.Path, f.Annotation); err != nil {
			return errors.Wrap(err, errors.KindFatal, "load keywords")
		}
	}

	ifc, err := iface.New(ifaceName)
	if err != nil {
		return err
	}

	sessionID := uuid.New().String()
	log := logging.WithComponent("main").WithSession(sessionID)
	log.Info("------------------------------------------------------------")
	log.Info(ifc.String())
	log.Info("------------------------------------------------------------")

	engine := rules.NewEngine(ifc.IPv4, ifc.IPv6, blocklist, whitelist, keywords)
	counters := capture.NewCounters(prometheus.DefaultRegisterer)
	mitigator := &capture.Mitigator{
		Interface: mitigatorTarget{ifc: ifc, target: target},
		Mode:      mode,
	}

	loop, err := capture.Open(ifc, engine, counters, mitigator)
	if err != nil {
		return err
	}
	defer loop.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := loop.Start(ctx); err != nil && ctx.Err() == nil {
		return errors.Wrap(err, errors.KindIO, "capture loop")
	}
	return nil
}

// mitigatorTarget adapts an *iface.Interface plus a resolved
// quarantine network into capture.Target, so ReconfigureNetwork always
// uses whatever target the config overlay (or its default) selected.
type mitigatorTarget struct {
	ifc    *iface.Interface
	target config.Target
}

func (m mitigatorTarget) Down() error { return m.ifc.Down() }

func (m mitigatorTarget) Setup(_, _, _ string) error {
	return m.ifc.Setup(m.target.IP, m.target.Netmask, m.target.Gateway)
}
