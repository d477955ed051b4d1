package network

import (
	"fmt"
	"net"
	"strings"

	"github.com/projectdiscovery/gologger"
)

// GetInterfaces returns all active non-loopback interfaces carrying an IPv4
// address.
func GetInterfaces() ([]NetworkInfo, error) {
	var infos []NetworkInfo

	interfaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to get network interfaces: %w", err)
	}

	for _, iface := range interfaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			gologger.Warning().Msgf("Failed to get addresses for interface %s: %v", iface.Name, err)
			continue
		}

		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok || ipNet.IP.To4() == nil {
				continue
			}

			v4 := ipNet.IP.To4()
			mask := ipNet.Mask
			netAddr := v4.Mask(mask)
			ones, _ := mask.Size()

			infos = append(infos, NetworkInfo{
				InterfaceName: iface.Name,
				IPAddress:     v4.String(),
				NetworkCIDR:   fmt.Sprintf("%s/%d", netAddr, ones),
				Subnet:        netAddr.String(),
				NetMask:       net.IP(mask).String(),
			})
		}
	}

	if len(infos) == 0 {
		return nil, fmt.Errorf("no suitable network interfaces found")
	}

	return infos, nil
}

// GetPrimary picks the most likely primary interface: well-known names first,
// then anything that does not look virtual, then the first entry.
func GetPrimary(interfaces []NetworkInfo) NetworkInfo {
	if len(interfaces) == 0 {
		return NetworkInfo{}
	}

	for _, name := range []string{"en0", "eth0", "wlan0"} {
		for _, iface := range interfaces {
			if iface.InterfaceName == name {
				return iface
			}
		}
	}

	for _, iface := range interfaces {
		name := iface.InterfaceName
		if !strings.Contains(name, "virtual") &&
			!strings.Contains(name, "vbox") &&
			!strings.Contains(name, "vmnet") &&
			!strings.Contains(name, "docker") &&
			!strings.Contains(name, "veth") {
			return iface
		}
	}

	return interfaces[0]
}
