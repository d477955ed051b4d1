// Package sweep implements the concurrent sweep engine: two nested levels of
// batched fan-out (subnets, then hosts within each subnet) with a full join
// barrier between batches, feeding per-host probe results into per-subnet
// tallies and process-wide statistics.
package sweep

import "time"

// Hard concurrency ceilings. Their product bounds the total number of
// in-flight probes no matter how the per-run options are tuned.
const (
	MaxHostConcurrency   = 128
	MaxSubnetConcurrency = 16
)

// Defaults applied when an Options field is zero.
const (
	DefaultProbeTimeout      = 1 * time.Second
	DefaultProgressInterval  = 50
	DefaultSubnetConcurrency = MaxSubnetConcurrency
)

// Options tunes a Scanner. Zero values select the documented defaults, so
// tests can shrink the caps to make batching observable.
type Options struct {
	// HostConcurrency is the per-subnet probe cap. Zero means 4x the
	// logical core count. Always clamped to MaxHostConcurrency.
	HostConcurrency int
	// SubnetConcurrency caps concurrently scanned subnets. Zero means
	// DefaultSubnetConcurrency. Always clamped to MaxSubnetConcurrency.
	SubnetConcurrency int
	// ProbeTimeout bounds each individual probe.
	ProbeTimeout time.Duration
	// ProgressInterval is the number of completed hosts between progress
	// lines. Negative disables progress output.
	ProgressInterval int
}

func (o Options) probeTimeout() time.Duration {
	if o.ProbeTimeout <= 0 {
		return DefaultProbeTimeout
	}
	return o.ProbeTimeout
}

func (o Options) progressInterval() int {
	if o.ProgressInterval == 0 {
		return DefaultProgressInterval
	}
	return o.ProgressInterval
}

// Liveness is the tri-state outcome of one host probe.
type Liveness int

const (
	LivenessUnknown Liveness = iota
	LivenessAlive
	LivenessDead
)

// HostProbeTask is one host's slot within a batch. It is written by exactly
// one probe goroutine and read only after the batch joins; no task outlives
// its batch iteration.
type HostProbeTask struct {
	Address   string
	Liveness  Liveness
	Completed bool
}

// SubnetScanResult is the outcome of sweeping one subnet. It is owned by the
// scanning goroutine until returned, then read-only.
type SubnetScanResult struct {
	Subnet        string
	HostsScanned  int
	Responders    int
	LiveAddresses []string
}
