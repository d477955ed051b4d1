// Package runner wires the CLI surface to the sweep engine: flag parsing,
// configuration merge, prober selection and run lifecycle.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/projectdiscovery/gologger"

	"ipsweep/internal/config"
	"ipsweep/internal/discovery"
	"ipsweep/internal/network"
	"ipsweep/internal/probe"
	"ipsweep/internal/sweep"
)

const version = "1.0.0"

// Runner executes one sweep for the parsed options.
type Runner struct {
	options *Options
	cfg     *config.Config
	cleanup func()
}

// New merges the configuration file under the command line options and
// validates what can be validated before any probe runs.
func New(options *Options) (*Runner, error) {
	cfg := config.Default()
	if options.ConfigFile != "" {
		loaded, err := config.Load(options.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// flags win over the file; zero values fall through to the file
	if options.ProbeStrategy == "" {
		options.ProbeStrategy = cfg.Probe.Strategy
	}
	if options.TimeoutSeconds == 0 {
		options.TimeoutSeconds = int(cfg.GetProbeTimeout().Seconds())
	}
	if options.HostConcurrency == 0 {
		options.HostConcurrency = cfg.Scan.HostWorkers
	}
	if options.SubnetConcurrency == 0 {
		options.SubnetConcurrency = cfg.Scan.SubnetWorkers
	}
	if cfg.MDNS.Enabled {
		options.EnableMDNS = true
	}

	switch sweep.Mode(options.Mode) {
	case sweep.ModeCommon, sweep.ModeFull, sweep.ModeQuick:
	case sweep.ModeSingle:
		if options.Subnet == "" {
			return nil, fmt.Errorf("single mode requires -subnet")
		}
	default:
		return nil, fmt.Errorf("unknown scan mode %q", options.Mode)
	}

	return &Runner{options: options, cfg: cfg}, nil
}

// Run drives one orchestrated sweep and prints the summary.
func (r *Runner) Run(ctx context.Context) error {
	defer func() {
		if r.cleanup != nil {
			r.cleanup()
		}
	}()

	prober, err := r.buildProber()
	if err != nil {
		return err
	}

	opts := sweep.Options{
		HostConcurrency:   r.options.HostConcurrency,
		SubnetConcurrency: r.options.SubnetConcurrency,
		ProbeTimeout:      r.probeTimeout(),
		ProgressInterval:  r.cfg.Scan.ProgressInterval,
	}

	stats := sweep.NewStats()
	scanner := sweep.NewScanner(prober, stats, opts)
	orchestrator := sweep.NewOrchestrator(scanner, stats, opts)

	req := sweep.Request{
		Mode:      sweep.Mode(r.options.Mode),
		Subnet:    r.options.Subnet,
		StartHost: r.options.StartHost,
		EndHost:   r.options.EndHost,
	}

	if req.Mode == sweep.ModeQuick && r.options.EnableMDNS {
		md := discovery.NewMDNSDiscovery(r.cfg.GetMDNSTimeout())
		req.ExtraNetworks = md.LikelySubnets(ctx)
	}

	summary, err := orchestrator.Run(ctx, req)
	if err != nil {
		return err
	}

	if ctx.Err() != nil {
		gologger.Warning().Msgf("Scan interrupted, reporting partial results")
	}
	sweep.PrintSummary(summary)
	return nil
}

func (r *Runner) probeTimeout() time.Duration {
	if r.options.TimeoutSeconds <= 0 {
		return 0 // scanner applies its default
	}
	return time.Duration(r.options.TimeoutSeconds) * time.Second
}

func (r *Runner) buildProber() (probe.Prober, error) {
	switch r.options.ProbeStrategy {
	case "", "ping":
		return probe.NewPingProber(), nil
	case "icmp":
		return probe.NewICMPProber(true), nil
	case "tcp":
		return probe.NewTCPProber(r.cfg.Probe.TCPPorts), nil
	case "arp":
		interfaces, err := network.GetInterfaces()
		if err != nil {
			return nil, err
		}
		primary := network.GetPrimary(interfaces)
		gologger.Info().Msgf("ARP probing via interface %s (%s)", primary.InterfaceName, primary.IPAddress)
		arp, err := probe.NewARPProber(primary)
		if err != nil {
			return nil, err
		}
		r.cleanup = arp.Close
		return arp, nil
	case "auto":
		return probe.NewMultiProber(
			probe.NewPingProber(),
			probe.NewTCPProber(r.cfg.Probe.TCPPorts),
		), nil
	default:
		return nil, fmt.Errorf("unknown probe strategy %q", r.options.ProbeStrategy)
	}
}
