package sweep

import (
	"time"

	"github.com/logrusorgru/aurora/v4"
	"github.com/projectdiscovery/gologger"
)

var au = aurora.New(aurora.WithColors(true))

// SetColors toggles colored summary output.
func SetColors(enabled bool) {
	au = aurora.New(aurora.WithColors(enabled))
}

// PrintSummary renders the final report block. Emitted at the silent level
// so it survives -silent runs; everything else is ordinary log output.
func PrintSummary(s Summary) {
	gologger.Silent().Msgf("")
	gologger.Silent().Msgf("%s", au.Bold("Scan summary: "+s.Description))
	gologger.Silent().Msgf("Subnets scanned : %d", s.SubnetsScanned)
	gologger.Silent().Msgf("Hosts scanned   : %d", s.HostsScanned)
	gologger.Silent().Msgf("Responders      : %s", au.Green(s.Responders))
	gologger.Silent().Msgf("Elapsed         : %s", s.Elapsed.Round(10*time.Millisecond))
	gologger.Silent().Msgf("Cores utilized  : %d", s.Cores)
	if s.RateDefined {
		gologger.Silent().Msgf("Rate            : %.1f hosts/sec", s.Rate)
		gologger.Silent().Msgf("Efficiency      : %.1fx per core", s.Efficiency)
	} else {
		gologger.Silent().Msgf("Rate            : n/a (elapsed below timer resolution)")
	}
}
