package probe

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

// PingProber shells out to the system ping binary. Exit status zero means
// the host answered; any failure counts as no answer rather than an error,
// matching the reference sweeper's behavior.
type PingProber struct{}

func NewPingProber() *PingProber {
	return &PingProber{}
}

func (p *PingProber) Probe(ctx context.Context, address string, timeout time.Duration) (bool, error) {
	args := pingArgs(runtime.GOOS, address, timeout)
	cmd := exec.CommandContext(ctx, "ping", args...)
	if err := cmd.Run(); err != nil {
		return false, nil
	}
	return true, nil
}

// pingArgs builds the one-packet ping argv for the given OS. Windows takes
// its timeout in milliseconds via -w, everything else in whole seconds
// via -W.
func pingArgs(goos, address string, timeout time.Duration) []string {
	if goos == "windows" {
		ms := int(timeout.Milliseconds())
		if ms < 1 {
			ms = 1000
		}
		return []string{"-n", "1", "-w", fmt.Sprint(ms), address}
	}

	sec := int(timeout.Seconds())
	if sec < 1 {
		sec = 1
	}
	return []string{"-c", "1", "-W", fmt.Sprint(sec), address}
}
