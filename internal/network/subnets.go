package network

import "fmt"

// CommonNetworks returns the /24 prefixes of private ranges commonly used by
// home and office routers. The list covers the default subnets of the major
// consumer router vendors plus the low 10.x and 172.16.x ranges.
func CommonNetworks() []string {
	return []string{
		"192.168.0",   // D-Link, TP-Link, Netgear defaults
		"192.168.1",   // Linksys, ASUS, most ISP boxes
		"192.168.2",   // Belkin, some Zyxel
		"192.168.10",  // common lab/office choice
		"192.168.50",  // ASUS alternative default
		"192.168.100", // cable modems
		"192.168.178", // AVM Fritz!Box
		"192.168.254",
		"10.0.0",
		"10.0.1", // Apple AirPort
		"10.1.1",
		"10.10.10",
		"172.16.0",
		"172.16.1",
	}
}

// QuickNetworks returns the short list of most likely prefixes used by the
// quick scan mode.
func QuickNetworks() []string {
	return []string{
		"192.168.0",
		"192.168.1",
		"10.0.0",
		"172.16.0",
	}
}

// ClassCRange synthesizes all 256 prefixes of the 192.168.0.0/16 space,
// "192.168.0" through "192.168.255". The list is generated, never
// hand-enumerated.
func ClassCRange() []string {
	prefixes := make([]string, 0, 256)
	for third := 0; third <= 255; third++ {
		prefixes = append(prefixes, fmt.Sprintf("192.168.%d", third))
	}
	return prefixes
}
