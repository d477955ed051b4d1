package sweep

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/projectdiscovery/gologger"
	"github.com/shirou/gopsutil/v3/cpu"

	"ipsweep/internal/network"
	"ipsweep/internal/probe"
)

// Scanner drives the two-level batched sweep: ScanSubnets fans a subnet list
// out in bounded batches, each subnet fans its host range out in bounded
// batches, and every probe result is folded into per-subnet tallies plus the
// shared Stats.
type Scanner struct {
	prober probe.Prober
	stats  *Stats
	opts   Options
}

func NewScanner(prober probe.Prober, stats *Stats, opts Options) *Scanner {
	return &Scanner{prober: prober, stats: stats, opts: opts}
}

// ScanHostRange probes every host number in [startHost, endHost] of prefix,
// at most maxConcurrency at a time with a full join barrier between batches.
// A probe error counts the host as dead; nothing here aborts the range.
func (s *Scanner) ScanHostRange(ctx context.Context, prefix string, startHost, endHost, maxConcurrency int) SubnetScanResult {
	result := SubnetScanResult{Subnet: prefix}
	if startHost > endHost {
		return result
	}

	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	if maxConcurrency > MaxHostConcurrency {
		maxConcurrency = MaxHostConcurrency
	}

	tasks := make([]HostProbeTask, 0, endHost-startHost+1)
	for host := startHost; host <= endHost; host++ {
		tasks = append(tasks, HostProbeTask{Address: network.HostAddress(prefix, host)})
	}

	total := len(tasks)
	interval := s.opts.progressInterval()

	var completed atomic.Int64
	indexes := make([]int, total)
	for i := range indexes {
		indexes[i] = i
	}

	runBatches(ctx, indexes, maxConcurrency, func(i int) {
		task := &tasks[i]

		alive, err := s.prober.Probe(ctx, task.Address, s.opts.probeTimeout())
		if err != nil {
			// absence of a positive signal is never distinguished
			// from a negative one
			gologger.Verbose().Msgf("Probe failed for %s: %v", task.Address, err)
			alive = false
		}

		if alive {
			task.Liveness = LivenessAlive
		} else {
			task.Liveness = LivenessDead
		}
		task.Completed = true

		if n := completed.Add(1); interval > 0 && n%int64(interval) == 0 {
			gologger.Info().Msgf("%s: probed %d/%d hosts", prefix, n, total)
		}
	})

	// tasks are iterated in host-number order, so LiveAddresses stays sorted
	for _, task := range tasks {
		if !task.Completed {
			continue
		}
		result.HostsScanned++
		if task.Liveness == LivenessAlive {
			result.Responders++
			result.LiveAddresses = append(result.LiveAddresses, task.Address)
		}
	}
	return result
}

// ScanSubnet sweeps one subnet's host range and publishes its tallies into
// the shared Stats before returning. A completely silent subnet is a valid
// zero-responder result, not an error.
func (s *Scanner) ScanSubnet(ctx context.Context, prefix string, startHost, endHost int) SubnetScanResult {
	concurrency := s.opts.HostConcurrency
	if concurrency == 0 {
		concurrency = 4 * LogicalCores()
	}

	result := s.ScanHostRange(ctx, prefix, startHost, endHost, concurrency)

	for _, addr := range result.LiveAddresses {
		gologger.Info().Msgf("Host alive: %s", addr)
	}
	gologger.Info().Msgf("%s: %d/%d hosts responded", prefix, result.Responders, result.HostsScanned)

	s.stats.AddHosts(result.HostsScanned)
	s.stats.AddResponders(result.Responders)
	s.stats.AddSubnets(1)

	return result
}

// ScanSubnets sweeps a list of subnets, at most maxConcurrent at a time with
// the same full-barrier batching applied one level up. A subnet whose scan
// panics is logged and recorded as zero hosts, zero responders; the batch
// continues.
func (s *Scanner) ScanSubnets(ctx context.Context, prefixes []string, description string, maxConcurrent int) []SubnetScanResult {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if maxConcurrent > MaxSubnetConcurrency {
		maxConcurrent = MaxSubnetConcurrency
	}

	gologger.Info().Msgf("Sweeping %s: %d subnets, %d at a time", description, len(prefixes), maxConcurrent)

	results := make([]SubnetScanResult, len(prefixes))
	indexes := make([]int, len(prefixes))
	for i := range indexes {
		indexes[i] = i
	}

	runBatches(ctx, indexes, maxConcurrent, func(i int) {
		prefix := prefixes[i]
		defer func() {
			if r := recover(); r != nil {
				gologger.Error().Msgf("Subnet scan for %s failed: %v", prefix, r)
				results[i] = SubnetScanResult{Subnet: prefix}
			}
		}()
		results[i] = s.ScanSubnet(ctx, prefix, network.MinHost, network.MaxHost)
	})

	return results
}

// LogicalCores reports the logical CPU count used for the default per-subnet
// concurrency and the parallel-efficiency metric.
func LogicalCores() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
