//go:build !windows

package wrapper

import (
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

func raiseSignal(name string) {
	sig := unix.SignalNum("SIG" + name)
	if sig == 0 {
		return
	}
	_ = syscall.Kill(syscall.Getpid(), sig)
	time.Sleep(time.Minute)
}
