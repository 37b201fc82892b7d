//go:build windows

package wrapper

func raiseSignal(string) {}
