package sweep

import "sync/atomic"

// Stats holds the process-wide scan counters. Every concurrently running
// subnet scan publishes into the same Stats instance through atomic adds;
// no invariant spans more than one counter, so no broader lock is needed.
type Stats struct {
	hosts      atomic.Int64
	responders atomic.Int64
	subnets    atomic.Int64
}

func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) AddHosts(n int)      { s.hosts.Add(int64(n)) }
func (s *Stats) AddResponders(n int) { s.responders.Add(int64(n)) }
func (s *Stats) AddSubnets(n int)    { s.subnets.Add(int64(n)) }

// Reset zeroes all counters. Callers must ensure no scan is in flight.
func (s *Stats) Reset() {
	s.hosts.Store(0)
	s.responders.Store(0)
	s.subnets.Store(0)
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() (hosts, responders, subnets int64) {
	return s.hosts.Load(), s.responders.Load(), s.subnets.Load()
}
