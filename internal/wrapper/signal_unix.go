//go:build !windows

package wrapper

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// SignalError reports that the downstream process was killed by a signal.
type SignalError struct {
	Signal syscall.Signal
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("downstream terminated by %s", describeSignal(e.Signal))
}

func describeSignal(sig syscall.Signal) string {
	name := unix.SignalName(sig)
	if name == "" {
		return fmt.Sprintf("signal %d", sig)
	}
	return fmt.Sprintf("%s (%d)", name, sig)
}

// signalStatus maps a signal death to the shell's 128+n exit code.
func signalStatus(ee *exec.ExitError) (int, error) {
	ws, ok := ee.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return 0, nil
	}
	sig := ws.Signal()
	return 128 + int(sig), &SignalError{Signal: sig}
}

// relaySignals keeps the wrapper alive while the child runs. Terminal
// signals already reach the whole process group, so they are swallowed;
// SIGTERM and SIGHUP aimed at the wrapper alone are passed to the child.
func relaySignals(child *os.Process) func() {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, os.Interrupt, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for sig := range ch {
			if sig == syscall.SIGTERM || sig == syscall.SIGHUP {
				_ = child.Signal(sig)
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(ch)
		<-done
	}
}
