package runner

import "github.com/projectdiscovery/gologger"

const banner = `
   _
  (_)___  ____ _      _____  ___  ____
  / / __ \/ __/ | /| / / _ \/ _ \/ __ \
 / / /_/ (__  | |/ |/ /  __/  __/ /_/ /
/_/ .___/____/|__/|__/\___/\___/ .___/
 /_/                          /_/
`

// showBanner prints the project banner and version.
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tv%s\n\n", version)
}
