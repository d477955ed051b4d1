package probe

import (
	"context"
	"time"

	"github.com/projectdiscovery/gologger"
	probing "github.com/prometheus-community/pro-bing"
)

// ICMPProber sends one ICMP echo request natively, without an external
// binary. Privileged mode is required on most systems unless the
// ping_group_range sysctl allows unprivileged datagram sockets.
type ICMPProber struct {
	privileged bool
}

func NewICMPProber(privileged bool) *ICMPProber {
	return &ICMPProber{privileged: privileged}
}

func (p *ICMPProber) Probe(ctx context.Context, address string, timeout time.Duration) (bool, error) {
	pinger, err := probing.NewPinger(address)
	if err != nil {
		return false, err
	}

	pinger.SetPrivileged(p.privileged)
	pinger.Count = 1
	pinger.Timeout = timeout

	if err := pinger.RunWithContext(ctx); err != nil {
		return false, err
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return false, nil
	}

	gologger.Verbose().Msgf("%s answered ICMP echo in %s", address, stats.AvgRtt)
	return true, nil
}
