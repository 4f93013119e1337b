// Copyright 2025 momentics@gmail.com
// License: Apache 2.0

// platform_test.go — portable probes of the per-OS thread facilities.
package platform_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/momentics/osthread/api"
	"github.com/momentics/osthread/internal/platform"
)

func TestNumProcessors(t *testing.T) {
	if n := platform.NumProcessors(); n < 1 {
		t.Errorf("NumProcessors = %d, want >= 1", n)
	}
}

func TestCurrentHandleLocked(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	h := platform.CurrentHandle()
	if runtime.GOOS == "linux" || runtime.GOOS == "windows" {
		if h.IsZero() {
			t.Error("CurrentHandle is zero on a supported platform")
		}
	}
}

func TestSetCurrentThreadName(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	err := platform.SetCurrentThreadName("osthread-test")
	if err != nil && !errors.Is(err, api.ErrNotSupported) {
		t.Errorf("SetCurrentThreadName: %v", err)
	}
}

func TestBindToProcessorInvalidIndex(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	h := platform.CurrentHandle()
	if err := platform.BindToProcessor(h, platform.NumProcessors()); err == nil {
		t.Error("BindToProcessor with out-of-range index succeeded")
	}
	if err := platform.BindToProcessor(h, -1); err == nil {
		t.Error("BindToProcessor with negative index succeeded")
	}
}

func TestTerminatorConsistency(t *testing.T) {
	if !platform.CanTerminate() {
		if err := platform.Terminate(api.Handle{}); !errors.Is(err, api.ErrNotSupported) {
			t.Errorf("Terminate without capability = %v, want ErrNotSupported", err)
		}
	}
}
