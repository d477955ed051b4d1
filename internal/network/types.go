package network

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// NetworkInfo holds information about a network interface
type NetworkInfo struct {
	InterfaceName string
	IPAddress     string
	NetworkCIDR   string
	Subnet        string
	NetMask       string
}

// Host range limits for the last octet of a /24. Host 0 is the network
// address and 255 the broadcast address, neither is probed.
const (
	MinHost = 1
	MaxHost = 254
)

// HostAddress joins a subnet prefix with a host number into a dotted-decimal
// IPv4 address, e.g. ("192.168.50", 7) -> "192.168.50.7".
func HostAddress(prefix string, host int) string {
	return fmt.Sprintf("%s.%d", prefix, host)
}

// ValidatePrefix checks that prefix is the first three dotted-decimal octets
// of an IPv4 /24 range (e.g. "192.168.50").
func ValidatePrefix(prefix string) error {
	parts := strings.Split(prefix, ".")
	if len(parts) != 3 {
		return fmt.Errorf("subnet prefix %q must have exactly three octets", prefix)
	}
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 255 {
			return fmt.Errorf("subnet prefix %q has invalid octet %q", prefix, part)
		}
	}
	return nil
}

// ValidateHostRange checks single-subnet scan bounds: 1 <= start <= end <= 254.
func ValidateHostRange(start, end int) error {
	if start < MinHost || start > MaxHost {
		return fmt.Errorf("start host %d out of range [%d,%d]", start, MinHost, MaxHost)
	}
	if end < MinHost || end > MaxHost {
		return fmt.Errorf("end host %d out of range [%d,%d]", end, MinHost, MaxHost)
	}
	if start > end {
		return fmt.Errorf("start host %d greater than end host %d", start, end)
	}
	return nil
}

// PrefixOf returns the /24 prefix of an IPv4 address, or "" if the address
// is not IPv4.
func PrefixOf(addr string) string {
	ip := net.ParseIP(addr)
	if ip == nil || ip.To4() == nil {
		return ""
	}
	v4 := ip.To4()
	return fmt.Sprintf("%d.%d.%d", v4[0], v4[1], v4[2])
}
