package sweep

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProber is a deterministic probe collaborator. It reports alive for a
// fixed address set and records per-call timing plus the concurrent-call
// high-water mark.
type stubProber struct {
	alive map[string]bool
	err   error
	delay time.Duration

	calls     atomic.Int64
	inflight  atomic.Int64
	highWater atomic.Int64

	mu    sync.Mutex
	spans map[string][2]time.Time
}

func newStubProber(alive ...string) *stubProber {
	p := &stubProber{alive: make(map[string]bool), spans: make(map[string][2]time.Time)}
	for _, addr := range alive {
		p.alive[addr] = true
	}
	return p
}

func (p *stubProber) Probe(_ context.Context, address string, _ time.Duration) (bool, error) {
	start := time.Now()
	p.calls.Add(1)

	n := p.inflight.Add(1)
	for {
		high := p.highWater.Load()
		if n <= high || p.highWater.CompareAndSwap(high, n) {
			break
		}
	}

	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	p.inflight.Add(-1)

	p.mu.Lock()
	p.spans[address] = [2]time.Time{start, time.Now()}
	p.mu.Unlock()

	if p.err != nil {
		return false, p.err
	}
	return p.alive[address], nil
}

func TestScanHostRangeFindsResponders(t *testing.T) {
	prober := newStubProber("10.0.0.1", "10.0.0.5")
	scanner := NewScanner(prober, NewStats(), Options{ProgressInterval: -1})

	result := scanner.ScanHostRange(context.Background(), "10.0.0", 1, 10, 4)

	assert.Equal(t, 10, result.HostsScanned)
	assert.Equal(t, 2, result.Responders)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.5"}, result.LiveAddresses)
}

func TestScanHostRangeBoundsConcurrency(t *testing.T) {
	prober := newStubProber()
	prober.delay = 2 * time.Millisecond
	scanner := NewScanner(prober, NewStats(), Options{ProgressInterval: -1})

	scanner.ScanHostRange(context.Background(), "10.0.0", 1, 60, 8)

	assert.LessOrEqual(t, prober.highWater.Load(), int64(8))
	assert.Equal(t, int64(60), prober.calls.Load())
}

func TestScanHostRangeClampsToHardCeiling(t *testing.T) {
	prober := newStubProber()
	prober.delay = time.Millisecond
	scanner := NewScanner(prober, NewStats(), Options{ProgressInterval: -1})

	scanner.ScanHostRange(context.Background(), "10.0.0", 1, 254, 100000)

	assert.LessOrEqual(t, prober.highWater.Load(), int64(MaxHostConcurrency))
}

func TestScanHostRangeProbeErrorCountsAsDead(t *testing.T) {
	prober := newStubProber("10.0.0.3")
	prober.err = errors.New("socket: too many open files")
	scanner := NewScanner(prober, NewStats(), Options{ProgressInterval: -1})

	result := scanner.ScanHostRange(context.Background(), "10.0.0", 1, 5, 2)

	assert.Equal(t, 5, result.HostsScanned)
	assert.Zero(t, result.Responders)
	assert.Empty(t, result.LiveAddresses)
}

func TestScanHostRangeCancelledBeforeStart(t *testing.T) {
	prober := newStubProber()
	scanner := NewScanner(prober, NewStats(), Options{ProgressInterval: -1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := scanner.ScanHostRange(ctx, "10.0.0", 1, 50, 4)

	assert.Zero(t, result.HostsScanned)
	assert.Zero(t, prober.calls.Load())
}

func TestScanSubnetPublishesTallies(t *testing.T) {
	prober := newStubProber("10.0.0.1", "10.0.0.5")
	stats := NewStats()
	scanner := NewScanner(prober, stats, Options{HostConcurrency: 4, ProgressInterval: -1})

	result := scanner.ScanSubnet(context.Background(), "10.0.0", 1, 10)

	hosts, responders, subnets := stats.Snapshot()
	assert.Equal(t, int64(10), hosts)
	assert.Equal(t, int64(2), responders)
	assert.Equal(t, int64(1), subnets)
	assert.Equal(t, result.HostsScanned, int(hosts))
}

func TestScanSubnetSilentSubnetIsValid(t *testing.T) {
	prober := newStubProber()
	stats := NewStats()
	scanner := NewScanner(prober, stats, Options{HostConcurrency: 8, ProgressInterval: -1})

	result := scanner.ScanSubnet(context.Background(), "192.168.77", 1, 20)

	assert.Equal(t, 20, result.HostsScanned)
	assert.Zero(t, result.Responders)
}

func TestScanSubnetsConservation(t *testing.T) {
	for _, concurrency := range []int{1, 2, 5, 16} {
		t.Run(fmt.Sprintf("concurrency-%d", concurrency), func(t *testing.T) {
			prober := newStubProber("192.168.0.1", "192.168.3.7", "192.168.5.254")
			stats := NewStats()
			scanner := NewScanner(prober, stats, Options{HostConcurrency: 64, ProgressInterval: -1})

			prefixes := make([]string, 6)
			for i := range prefixes {
				prefixes[i] = fmt.Sprintf("192.168.%d", i)
			}

			results := scanner.ScanSubnets(context.Background(), prefixes, "conservation run", concurrency)
			require.Len(t, results, len(prefixes))

			sum := 0
			respondersSum := 0
			for _, result := range results {
				sum += result.HostsScanned
				respondersSum += result.Responders
			}

			hosts, responders, subnets := stats.Snapshot()
			assert.Equal(t, int64(sum), hosts, "per-subnet sums must match the aggregator exactly")
			assert.Equal(t, int64(respondersSum), responders)
			assert.Equal(t, int64(len(prefixes)), subnets)
			assert.Equal(t, int64(3), responders)
		})
	}
}

func TestScanSubnetsBatchBarrier(t *testing.T) {
	prober := newStubProber()
	prober.delay = time.Millisecond
	stats := NewStats()
	scanner := NewScanner(prober, stats, Options{HostConcurrency: 128, ProgressInterval: -1})

	prefixes := make([]string, 20)
	for i := range prefixes {
		prefixes[i] = fmt.Sprintf("10.20.%d", i)
	}

	results := scanner.ScanSubnets(context.Background(), prefixes, "barrier run", 16)
	require.Len(t, results, 20)

	// reconstruct each subnet's active window from its probes
	starts := make(map[string]time.Time)
	ends := make(map[string]time.Time)
	prober.mu.Lock()
	for addr, span := range prober.spans {
		for _, prefix := range prefixes {
			if len(addr) > len(prefix) && addr[:len(prefix)+1] == prefix+"." {
				if starts[prefix].IsZero() || span[0].Before(starts[prefix]) {
					starts[prefix] = span[0]
				}
				if span[1].After(ends[prefix]) {
					ends[prefix] = span[1]
				}
			}
		}
	}
	prober.mu.Unlock()

	// second batch (the last 4 prefixes) must not start before every member
	// of the first batch of 16 has fully joined
	var firstBatchEnd time.Time
	for _, prefix := range prefixes[:16] {
		if ends[prefix].After(firstBatchEnd) {
			firstBatchEnd = ends[prefix]
		}
	}
	for _, prefix := range prefixes[16:] {
		assert.False(t, starts[prefix].Before(firstBatchEnd),
			"subnet %s started before the first batch joined", prefix)
	}
}

func TestScanSubnetsBoundsSubnetConcurrency(t *testing.T) {
	prober := newStubProber()
	prober.delay = time.Millisecond
	scanner := NewScanner(prober, NewStats(), Options{HostConcurrency: 1, ProgressInterval: -1})

	prefixes := []string{"10.1.0", "10.1.1", "10.1.2", "10.1.3", "10.1.4", "10.1.5"}
	scanner.ScanSubnets(context.Background(), prefixes, "boundedness run", 2)

	// with one probe per subnet in flight, concurrent probes equal
	// concurrently running subnet scans
	assert.LessOrEqual(t, prober.highWater.Load(), int64(2))
}
