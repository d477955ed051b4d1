package probe

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"

	"ipsweep/internal/network"
)

// ARPProber resolves liveness with a broadcast ARP request and reply
// capture on one interface. Only meaningful for subnets the interface is
// directly attached to; anything routed never answers ARP.
//
// One pcap handle and one capture goroutine are shared by all concurrent
// Probe calls; replies are dispatched to per-address waiters.
type ARPProber struct {
	handle *pcap.Handle
	srcMAC net.HardwareAddr
	srcIP  net.IP

	mu      sync.Mutex
	waiters map[string]chan struct{}
	closed  chan struct{}
}

// NewARPProber opens iface for live capture filtered to ARP traffic and
// starts the reply reader.
func NewARPProber(iface network.NetworkInfo) (*ARPProber, error) {
	handle, err := pcap.OpenLive(iface.InterfaceName, 65536, true, pcap.BlockForever)
	if err != nil {
		return nil, fmt.Errorf("failed to open device %s: %w", iface.InterfaceName, err)
	}

	if err := handle.SetBPFFilter("arp"); err != nil {
		handle.Close()
		return nil, fmt.Errorf("failed to set BPF filter: %w", err)
	}

	ifaceObj, err := net.InterfaceByName(iface.InterfaceName)
	if err != nil {
		handle.Close()
		return nil, fmt.Errorf("failed to get interface %s: %w", iface.InterfaceName, err)
	}

	srcIP := net.ParseIP(iface.IPAddress).To4()
	if srcIP == nil {
		handle.Close()
		return nil, fmt.Errorf("failed to parse source IP %s", iface.IPAddress)
	}

	p := &ARPProber{
		handle:  handle,
		srcMAC:  ifaceObj.HardwareAddr,
		srcIP:   srcIP,
		waiters: make(map[string]chan struct{}),
		closed:  make(chan struct{}),
	}
	go p.readReplies()
	return p, nil
}

// Close stops the capture goroutine and releases the pcap handle.
func (p *ARPProber) Close() {
	close(p.closed)
	p.handle.Close()
}

func (p *ARPProber) readReplies() {
	source := gopacket.NewPacketSource(p.handle, p.handle.LinkType())
	for {
		select {
		case <-p.closed:
			return
		default:
		}

		packet, err := source.NextPacket()
		if err != nil {
			continue
		}

		arpLayer := packet.Layer(layers.LayerTypeARP)
		if arpLayer == nil {
			continue
		}
		arp := arpLayer.(*layers.ARP)
		if arp.Operation != layers.ARPReply {
			continue
		}

		ip := net.IP(arp.SourceProtAddress).String()
		p.mu.Lock()
		if waiter, ok := p.waiters[ip]; ok {
			close(waiter)
			delete(p.waiters, ip)
		}
		p.mu.Unlock()
	}
}

func (p *ARPProber) Probe(ctx context.Context, address string, timeout time.Duration) (bool, error) {
	dstIP := net.ParseIP(address).To4()
	if dstIP == nil {
		return false, fmt.Errorf("failed to parse destination IP %s", address)
	}

	waiter := make(chan struct{})
	p.mu.Lock()
	p.waiters[address] = waiter
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		delete(p.waiters, address)
		p.mu.Unlock()
	}()

	if err := p.sendRequest(dstIP); err != nil {
		return false, err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-waiter:
		return true, nil
	case <-timer.C:
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (p *ARPProber) sendRequest(dstIP net.IP) error {
	eth := layers.Ethernet{
		SrcMAC:       p.srcMAC,
		DstMAC:       net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		EthernetType: layers.EthernetTypeARP,
	}

	arp := layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPRequest,
		SourceHwAddress:   []byte(p.srcMAC),
		SourceProtAddress: []byte(p.srcIP),
		DstHwAddress:      []byte{0, 0, 0, 0, 0, 0},
		DstProtAddress:    []byte(dstIP),
	}

	buffer := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{
		FixLengths:       true,
		ComputeChecksums: true,
	}
	if err := gopacket.SerializeLayers(buffer, opts, &eth, &arp); err != nil {
		return fmt.Errorf("failed to serialize ARP packet: %w", err)
	}

	return p.handle.WritePacketData(buffer.Bytes())
}
