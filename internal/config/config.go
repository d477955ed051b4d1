// Package config loads the optional JSON configuration file. Every field
// has a working default so the tool runs without any file at all; CLI flags
// override whatever is loaded.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config represents the application configuration
type Config struct {
	Scan struct {
		ProbeTimeout     string `json:"probe_timeout"`
		HostWorkers      int    `json:"host_workers"`
		SubnetWorkers    int    `json:"subnet_workers"`
		ProgressInterval int    `json:"progress_interval"`
	} `json:"scan"`

	Probe struct {
		Strategy string `json:"strategy"`
		TCPPorts []int  `json:"tcp_ports"`
	} `json:"probe"`

	MDNS struct {
		Enabled bool   `json:"enabled"`
		Timeout string `json:"timeout"`
	} `json:"mdns"`
}

// Default returns the configuration used when no file is present: system
// ping probe, 1s probe timeout, core-count-derived host workers (signalled
// by zero), mDNS assistance off.
func Default() *Config {
	cfg := &Config{}
	cfg.Scan.ProbeTimeout = "1s"
	cfg.Scan.ProgressInterval = 50
	cfg.Probe.Strategy = "ping"
	cfg.MDNS.Timeout = "3s"
	return cfg
}

// Load reads configuration from the specified JSON file.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return cfg, nil
}

// GetProbeTimeout returns the probe timeout as a time.Duration
func (c *Config) GetProbeTimeout() time.Duration {
	timeout, err := time.ParseDuration(c.Scan.ProbeTimeout)
	if err != nil {
		// Default to 1 second if parsing fails
		return 1 * time.Second
	}
	return timeout
}

// GetMDNSTimeout returns the mDNS discovery timeout as a time.Duration
func (c *Config) GetMDNSTimeout() time.Duration {
	timeout, err := time.ParseDuration(c.MDNS.Timeout)
	if err != nil {
		// Default to 3 seconds if parsing fails
		return 3 * time.Second
	}
	return timeout
}
