// Package probe implements host-liveness checks behind a single Prober
// contract so the sweep engine never depends on a concrete probe mechanism.
package probe

import (
	"context"
	"time"
)

// Prober executes one liveness check for one IPv4 address, bounded by
// timeout. A host for which no positive signal is observed within the
// timeout is reported as not alive; an error means the check itself could
// not run.
type Prober interface {
	Probe(ctx context.Context, address string, timeout time.Duration) (bool, error)
}

// MultiProber fans one address out to several probers concurrently; the
// first positive result wins.
type MultiProber struct {
	probers []Prober
}

func NewMultiProber(probers ...Prober) *MultiProber {
	return &MultiProber{probers: probers}
}

func (m *MultiProber) Probe(ctx context.Context, address string, timeout time.Duration) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results := make(chan bool, len(m.probers))
	for _, p := range m.probers {
		go func(prober Prober) {
			alive, _ := prober.Probe(ctx, address, timeout)
			results <- alive
		}(p)
	}

	for i := 0; i < len(m.probers); i++ {
		select {
		case alive := <-results:
			if alive {
				return true, nil
			}
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	return false, nil
}
