//go:build windows

package wrapper

import (
	"os"
	"os/exec"
	"os/signal"
)

func signalStatus(*exec.ExitError) (int, error) {
	return 0, nil
}

// relaySignals keeps the wrapper alive on Ctrl-C; the console delivers the
// event to the child as well.
func relaySignals(*os.Process) func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range ch {
		}
	}()
	return func() {
		signal.Stop(ch)
		close(ch)
		<-done
	}
}
