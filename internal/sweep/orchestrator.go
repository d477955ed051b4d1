package sweep

import (
	"context"
	"fmt"
	"time"

	"ipsweep/internal/network"
)

// Mode names a scan target selection strategy.
type Mode string

const (
	// ModeCommon sweeps the common private /24 ranges.
	ModeCommon Mode = "common"
	// ModeFull sweeps all 256 subnets of 192.168.0.0/16.
	ModeFull Mode = "full"
	// ModeSingle sweeps one subnet with explicit host bounds.
	ModeSingle Mode = "single"
	// ModeQuick sweeps the short likely-network list.
	ModeQuick Mode = "quick"
)

// Request describes one orchestrated run.
type Request struct {
	Mode Mode

	// Single-subnet mode only.
	Subnet    string
	StartHost int
	EndHost   int

	// ExtraNetworks are appended to the quick list, deduplicated. Used by
	// the mDNS-assisted quick mode.
	ExtraNetworks []string
}

// Summary is the final report of one run, derived from the Stats snapshot
// taken after the last batch joins.
type Summary struct {
	Description    string
	SubnetsScanned int64
	HostsScanned   int64
	Responders     int64
	Elapsed        time.Duration
	Cores          int

	// Rate and Efficiency are only meaningful when RateDefined is true;
	// an elapsed time of zero leaves them undefined rather than dividing
	// by zero.
	Rate        float64
	Efficiency  float64
	RateDefined bool

	Results []SubnetScanResult
}

// Orchestrator owns the run lifecycle: it selects the subnet list for the
// requested mode, resets the aggregator, drives the subnet batch scheduler
// and derives throughput metrics from the final snapshot.
type Orchestrator struct {
	scanner *Scanner
	stats   *Stats
	opts    Options
}

func NewOrchestrator(scanner *Scanner, stats *Stats, opts Options) *Orchestrator {
	return &Orchestrator{scanner: scanner, stats: stats, opts: opts}
}

// Run executes one sweep. Invalid single-subnet input is rejected before any
// probe executes.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Summary, error) {
	prefixes, description, err := o.buildTarget(req)
	if err != nil {
		return Summary{}, err
	}

	subnetConcurrency := o.opts.SubnetConcurrency
	if subnetConcurrency == 0 {
		subnetConcurrency = DefaultSubnetConcurrency
	}

	o.stats.Reset()
	start := time.Now()

	var results []SubnetScanResult
	if req.Mode == ModeSingle {
		results = []SubnetScanResult{
			o.scanner.ScanSubnet(ctx, req.Subnet, req.StartHost, req.EndHost),
		}
	} else {
		results = o.scanner.ScanSubnets(ctx, prefixes, description, subnetConcurrency)
	}

	elapsed := time.Since(start)
	hosts, responders, subnets := o.stats.Snapshot()
	cores := LogicalCores()
	rate, efficiency, defined := throughput(hosts, elapsed, cores)

	return Summary{
		Description:    description,
		SubnetsScanned: subnets,
		HostsScanned:   hosts,
		Responders:     responders,
		Elapsed:        elapsed,
		Cores:          cores,
		Rate:           rate,
		Efficiency:     efficiency,
		RateDefined:    defined,
		Results:        results,
	}, nil
}

func (o *Orchestrator) buildTarget(req Request) ([]string, string, error) {
	switch req.Mode {
	case ModeCommon:
		return network.CommonNetworks(), "all common private networks", nil
	case ModeFull:
		return network.ClassCRange(), "full 192.168.0.0/16 range", nil
	case ModeQuick:
		return mergePrefixes(network.QuickNetworks(), req.ExtraNetworks), "quick likely-network sweep", nil
	case ModeSingle:
		if err := network.ValidatePrefix(req.Subnet); err != nil {
			return nil, "", err
		}
		if err := network.ValidateHostRange(req.StartHost, req.EndHost); err != nil {
			return nil, "", err
		}
		description := fmt.Sprintf("subnet %s hosts %d-%d", req.Subnet, req.StartHost, req.EndHost)
		return []string{req.Subnet}, description, nil
	default:
		return nil, "", fmt.Errorf("unknown scan mode %q", req.Mode)
	}
}

// mergePrefixes appends extras to base, dropping duplicates and anything
// that is not a valid /24 prefix.
func mergePrefixes(base, extras []string) []string {
	seen := make(map[string]bool, len(base)+len(extras))
	merged := make([]string, 0, len(base)+len(extras))
	for _, prefix := range base {
		if !seen[prefix] {
			seen[prefix] = true
			merged = append(merged, prefix)
		}
	}
	for _, prefix := range extras {
		if network.ValidatePrefix(prefix) != nil {
			continue
		}
		if !seen[prefix] {
			seen[prefix] = true
			merged = append(merged, prefix)
		}
	}
	return merged
}

// throughput derives the rate and parallel-efficiency metrics, guarding the
// zero-elapsed case.
func throughput(hosts int64, elapsed time.Duration, cores int) (rate, efficiency float64, defined bool) {
	seconds := elapsed.Seconds()
	if seconds <= 0 || cores <= 0 {
		return 0, 0, false
	}
	rate = float64(hosts) / seconds
	efficiency = rate / float64(cores)
	return rate, efficiency, true
}
