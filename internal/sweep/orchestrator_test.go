package sweep

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator(prober *stubProber, opts Options) (*Orchestrator, *Stats) {
	stats := NewStats()
	scanner := NewScanner(prober, stats, opts)
	return NewOrchestrator(scanner, stats, opts), stats
}

func TestRunSingleSubnet(t *testing.T) {
	prober := newStubProber("10.0.0.1", "10.0.0.5")
	orchestrator, _ := newTestOrchestrator(prober, Options{HostConcurrency: 4, ProgressInterval: -1})

	summary, err := orchestrator.Run(context.Background(), Request{
		Mode:      ModeSingle,
		Subnet:    "10.0.0",
		StartHost: 1,
		EndHost:   10,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), summary.HostsScanned)
	assert.Equal(t, int64(2), summary.Responders)
	assert.Equal(t, int64(1), summary.SubnetsScanned)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.5"}, summary.Results[0].LiveAddresses)
}

func TestRunRejectsInvertedRangeBeforeAnyProbe(t *testing.T) {
	prober := newStubProber()
	orchestrator, _ := newTestOrchestrator(prober, Options{ProgressInterval: -1})

	_, err := orchestrator.Run(context.Background(), Request{
		Mode:      ModeSingle,
		Subnet:    "10.0.0",
		StartHost: 5,
		EndHost:   3,
	})

	require.Error(t, err)
	assert.Zero(t, prober.calls.Load(), "no probe may execute for invalid input")
}

func TestRunRejectsOutOfRangeHosts(t *testing.T) {
	prober := newStubProber()
	orchestrator, _ := newTestOrchestrator(prober, Options{ProgressInterval: -1})

	for _, bounds := range [][2]int{{0, 10}, {1, 255}, {-3, 4}, {200, 900}} {
		_, err := orchestrator.Run(context.Background(), Request{
			Mode:      ModeSingle,
			Subnet:    "10.0.0",
			StartHost: bounds[0],
			EndHost:   bounds[1],
		})
		assert.Error(t, err, "bounds %v must be rejected", bounds)
	}
	assert.Zero(t, prober.calls.Load())
}

func TestRunRejectsMalformedPrefix(t *testing.T) {
	prober := newStubProber()
	orchestrator, _ := newTestOrchestrator(prober, Options{ProgressInterval: -1})

	_, err := orchestrator.Run(context.Background(), Request{
		Mode:      ModeSingle,
		Subnet:    "10.0.0.0",
		StartHost: 1,
		EndHost:   10,
	})

	require.Error(t, err)
	assert.Zero(t, prober.calls.Load())
}

func TestRunRejectsUnknownMode(t *testing.T) {
	prober := newStubProber()
	orchestrator, _ := newTestOrchestrator(prober, Options{ProgressInterval: -1})

	_, err := orchestrator.Run(context.Background(), Request{Mode: Mode("exhaustive")})
	require.Error(t, err)
}

func TestRunResetsStatsBetweenRuns(t *testing.T) {
	prober := newStubProber("10.0.0.1")
	orchestrator, _ := newTestOrchestrator(prober, Options{HostConcurrency: 4, ProgressInterval: -1})

	req := Request{Mode: ModeSingle, Subnet: "10.0.0", StartHost: 1, EndHost: 10}

	first, err := orchestrator.Run(context.Background(), req)
	require.NoError(t, err)
	second, err := orchestrator.Run(context.Background(), req)
	require.NoError(t, err)

	// a run's statistics never include a prior run's leftovers
	assert.Equal(t, first.HostsScanned, second.HostsScanned)
	assert.Equal(t, int64(10), second.HostsScanned)
	assert.Equal(t, int64(1), second.Responders)
}

func TestBuildTargetFullRange(t *testing.T) {
	prober := newStubProber()
	orchestrator, _ := newTestOrchestrator(prober, Options{ProgressInterval: -1})

	prefixes, description, err := orchestrator.buildTarget(Request{Mode: ModeFull})
	require.NoError(t, err)
	assert.Contains(t, description, "192.168.0.0/16")
	require.Len(t, prefixes, 256)

	seen := make(map[string]bool)
	for _, prefix := range prefixes {
		seen[prefix] = true
	}
	assert.Len(t, seen, 256, "prefixes must be distinct")
	assert.True(t, seen["192.168.0"])
	assert.True(t, seen["192.168.255"])
}

func TestBuildTargetQuickMergesExtras(t *testing.T) {
	prober := newStubProber()
	orchestrator, _ := newTestOrchestrator(prober, Options{ProgressInterval: -1})

	prefixes, _, err := orchestrator.buildTarget(Request{
		Mode:          ModeQuick,
		ExtraNetworks: []string{"192.168.1", "10.42.0", "not-a-prefix", "10.42.0"},
	})
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, prefix := range prefixes {
		counts[prefix]++
	}
	assert.Equal(t, 1, counts["192.168.1"], "duplicates are dropped")
	assert.Equal(t, 1, counts["10.42.0"])
	assert.Zero(t, counts["not-a-prefix"])
}

func TestThroughputGuardsZeroElapsed(t *testing.T) {
	rate, efficiency, defined := throughput(1000, 0, 8)
	assert.False(t, defined)
	assert.Zero(t, rate)
	assert.Zero(t, efficiency)

	rate, efficiency, defined = throughput(1000, 2*time.Second, 8)
	require.True(t, defined)
	assert.InDelta(t, 500.0, rate, 0.001)
	assert.InDelta(t, 62.5, efficiency, 0.001)
}
