// Package discovery infers likely scan targets from passive signals on the
// local network.
package discovery

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/mdns"
	"github.com/projectdiscovery/gologger"

	"ipsweep/internal/network"
)

// Service types that chatty LAN devices commonly announce.
var defaultServiceTypes = []string{
	"_http._tcp",
	"_https._tcp",
	"_ssh._tcp",
	"_smb._tcp",
	"_printer._tcp",
	"_ipp._tcp",
	"_airplay._tcp",
	"_googlecast._tcp",
	"_workstation._tcp",
	"_device-info._tcp",
}

// MDNSDiscovery queries mDNS service types and collects the /24 prefixes of
// every announced IPv4 address.
type MDNSDiscovery struct {
	timeout        time.Duration
	maxConcurrency int
	serviceTypes   []string
}

func NewMDNSDiscovery(timeout time.Duration) *MDNSDiscovery {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &MDNSDiscovery{
		timeout:        timeout,
		maxConcurrency: 5,
		serviceTypes:   defaultServiceTypes,
	}
}

// LikelySubnets returns the distinct /24 prefixes seen in mDNS
// announcements, sorted. Errors are logged and degrade to an empty result;
// a quiet network is not a failure.
func (md *MDNSDiscovery) LikelySubnets(ctx context.Context) []string {
	var (
		mu       sync.Mutex
		prefixes = make(map[string]bool)
		wg       sync.WaitGroup
	)

	sem := make(chan struct{}, md.maxConcurrency)

	for _, serviceType := range md.serviceTypes {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(st string) {
			defer wg.Done()
			defer func() { <-sem }()

			entries := make(chan *mdns.ServiceEntry, 32)
			done := make(chan struct{})
			go func() {
				defer close(done)
				for entry := range entries {
					if entry.AddrV4 == nil {
						continue
					}
					if prefix := network.PrefixOf(entry.AddrV4.String()); prefix != "" {
						mu.Lock()
						prefixes[prefix] = true
						mu.Unlock()
					}
				}
			}()

			params := mdns.DefaultParams(st)
			params.Entries = entries
			params.Timeout = md.timeout
			params.DisableIPv6 = true

			if err := mdns.Query(params); err != nil {
				gologger.Verbose().Msgf("mDNS query for %s failed: %v", st, err)
			}
			close(entries)
			<-done
		}(serviceType)
	}

	wg.Wait()

	result := make([]string, 0, len(prefixes))
	for prefix := range prefixes {
		result = append(result, prefix)
	}
	sort.Strings(result)

	if len(result) > 0 {
		gologger.Info().Msgf("mDNS discovery suggests %d likely subnets", len(result))
	}
	return result
}
