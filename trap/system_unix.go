// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

//go:build unix

package trap

import (
	"golang.org/x/sys/unix"
)

// The well-known signals SetAction and EnableSigchldHandler need by name,
// grounded on the numbering golang.org/x/sys/unix exposes per platform
// (the teacher's interp/handler_unix.go takes the same unix-build-tag
// approach for its process-group signal calls).
const (
	killSignal    Signal = Signal(unix.SIGKILL)
	stopSignal    Signal = Signal(unix.SIGSTOP)
	sigchldSignal Signal = Signal(unix.SIGCHLD)
)

// UnixSystem is the default System, installing dispositions with
// sigaction(2) via golang.org/x/sys/unix.
type UnixSystem struct{}

// SetDisposition implements System.
func (UnixSystem) SetDisposition(sig Signal, handling Handling) (Handling, error) {
	prev, err := probeRaw(sig)
	if err != nil {
		return 0, err
	}
	if handling == HandlingCatch {
		// Catching is handled process-wide via os/signal.Notify in
		// cmd/posh; sigaction itself only distinguishes Default from
		// Ignore at the OS level.
		return prev, nil
	}
	var sa unix.Sigaction
	sa.Handler = boolToSigHandler(handling == HandlingIgnore)
	if err := unix.Sigaction(int(sig), &sa, nil); err != nil {
		return 0, err
	}
	return prev, nil
}

// Probe implements System.
func (UnixSystem) Probe(sig Signal) (Handling, error) {
	return probeRaw(sig)
}

func probeRaw(sig Signal) (Handling, error) {
	var old unix.Sigaction
	if err := unix.Sigaction(int(sig), nil, &old); err != nil {
		return 0, err
	}
	switch old.Handler {
	case uintptr(unix.SIG_IGN):
		return HandlingIgnore, nil
	case uintptr(unix.SIG_DFL):
		return HandlingDefault, nil
	default:
		return HandlingCatch, nil
	}
}

func boolToSigHandler(ignore bool) uintptr {
	if ignore {
		return uintptr(unix.SIG_IGN)
	}
	return uintptr(unix.SIG_DFL)
}
