package probe

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"
)

// DefaultTCPPorts are services likely to accept a connection on hosts that
// drop ICMP: web, remote access, file sharing, DNS.
var DefaultTCPPorts = []int{80, 443, 22, 445, 139, 3389, 8080, 53}

// TCPProber treats any accepted TCP connection on one of its ports as a
// liveness signal. Useful for hosts whose firewalls drop echo requests.
type TCPProber struct {
	ports []int
}

func NewTCPProber(ports []int) *TCPProber {
	if len(ports) == 0 {
		ports = DefaultTCPPorts
	}
	return &TCPProber{ports: ports}
}

func (p *TCPProber) Probe(ctx context.Context, address string, timeout time.Duration) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		wg    sync.WaitGroup
		found = make(chan struct{}, len(p.ports))
	)

	dialer := &net.Dialer{}
	for _, port := range p.ports {
		wg.Add(1)
		go func(port int) {
			defer wg.Done()
			conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(address, strconv.Itoa(port)))
			if err != nil {
				return
			}
			conn.Close()
			found <- struct{}{}
		}(port)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-found:
		return true, nil
	case <-ctx.Done():
		return false, nil
	case <-done:
		// a dial may have succeeded in the same instant the last one failed
		select {
		case <-found:
			return true, nil
		default:
			return false, nil
		}
	}
}
