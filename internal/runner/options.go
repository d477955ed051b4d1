package runner

import (
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"

	"ipsweep/internal/sweep"
)

// Options contains the configuration options for one sweep invocation.
type Options struct {
	Mode      string
	Subnet    string
	StartHost int
	EndHost   int

	ProbeStrategy  string
	TimeoutSeconds int

	HostConcurrency   int
	SubnetConcurrency int

	ConfigFile string
	EnableMDNS bool

	Verbose bool
	Silent  bool
	NoColor bool
	Version bool
}

// ParseOptions parses the command line flags provided by a user
func ParseOptions() *Options {
	options := &Options{}
	flagSet := goflags.NewFlagSet()

	flagSet.SetDescription(`ipsweep discovers live hosts on private IPv4 ranges by probing each candidate address concurrently`)

	flagSet.CreateGroup("target", "Target",
		flagSet.StringVarP(&options.Mode, "mode", "m", "common", "scan mode (common, full, single, quick)"),
		flagSet.StringVarP(&options.Subnet, "subnet", "s", "", "subnet prefix for single mode (e.g. 192.168.50)"),
		flagSet.IntVar(&options.StartHost, "start", 1, "first host number for single mode"),
		flagSet.IntVar(&options.EndHost, "end", 254, "last host number for single mode"),
	)

	flagSet.CreateGroup("probe", "Probe",
		flagSet.StringVarP(&options.ProbeStrategy, "probe", "p", "", "probe mechanism (ping, icmp, tcp, arp, auto)"),
		flagSet.IntVarP(&options.TimeoutSeconds, "timeout", "t", 0, "per-probe timeout in seconds"),
		flagSet.BoolVar(&options.EnableMDNS, "mdns", false, "augment quick mode with mDNS-discovered subnets"),
	)

	flagSet.CreateGroup("concurrency", "Concurrency",
		flagSet.IntVarP(&options.HostConcurrency, "host-concurrency", "hc", 0, "max concurrent probes per subnet (0 = 4x cores, capped at 128)"),
		flagSet.IntVarP(&options.SubnetConcurrency, "subnet-concurrency", "sc", 0, "max concurrently scanned subnets (0 = 16, capped at 16)"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVarP(&options.ConfigFile, "config", "c", "", "JSON configuration file"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "show verbose output"),
		flagSet.BoolVar(&options.Silent, "silent", false, "show only the final summary"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable output content coloring (ANSI escape codes)"),
		flagSet.BoolVar(&options.Version, "version", false, "show version of the project"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}

	options.configureOutput()

	if !options.Silent {
		showBanner()
	}

	if options.Version {
		gologger.Info().Msgf("Current Version: %s\n", version)
		os.Exit(0)
	}

	return options
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
	}
	sweep.SetColors(!options.NoColor)
}
