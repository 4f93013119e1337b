//go:build windows
// +build windows

// File: internal/platform/platform_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows implementation of thread naming, affinity, priority and forced
// termination through kernel32. Handles store the kernel thread id; a real
// HANDLE is opened per operation with OpenThread and closed immediately.
//
// Reference: https://learn.microsoft.com/en-us/windows/win32/api/winbase/nf-winbase-setthreadaffinitymask

package platform

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/momentics/osthread/api"
)

var (
	kernel32 = syscall.NewLazyDLL("kernel32.dll")

	procGetCurrentThreadId    = kernel32.NewProc("GetCurrentThreadId")
	procOpenThread            = kernel32.NewProc("OpenThread")
	procCloseHandle           = kernel32.NewProc("CloseHandle")
	procSetThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	procSetThreadPriority     = kernel32.NewProc("SetThreadPriority")
	procSetThreadDescription  = kernel32.NewProc("SetThreadDescription")
	procTerminateThread       = kernel32.NewProc("TerminateThread")
)

// Thread access rights.
const (
	threadTerminate      = 0x0001
	threadSetInformation = 0x0020
)

// SetThreadPriority levels.
const (
	threadPriorityLowest  = -2
	threadPriorityNormal  = 0
	threadPriorityHighest = 2
)

func platformCurrentHandle() api.Handle {
	id, _, _ := procGetCurrentThreadId.Call()
	return api.Handle{TID: int(id)}
}

// openThread opens a real HANDLE for the thread id carried by h.
func openThread(h api.Handle, access uintptr) (uintptr, error) {
	hnd, _, err := procOpenThread.Call(access, 0, uintptr(h.TID))
	if hnd == 0 {
		return 0, fmt.Errorf("platform: OpenThread tid=%d: %w", h.TID, err)
	}
	return hnd, nil
}

func platformSetCurrentThreadName(name string) error {
	// SetThreadDescription is available since Windows 10 1607; on older
	// systems the proc lookup fails and the request is a silent no-op.
	if err := procSetThreadDescription.Find(); err != nil {
		return nil
	}
	p, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return err
	}
	cur := ^uintptr(1) // GetCurrentThread pseudo-handle
	hr, _, _ := procSetThreadDescription.Call(cur, uintptr(unsafe.Pointer(p)))
	if int32(hr) < 0 {
		return fmt.Errorf("platform: SetThreadDescription failed, hr=0x%x", uint32(hr))
	}
	return nil
}

func platformBindToProcessor(h api.Handle, cpu int) error {
	if cpu < 0 || cpu >= 64 || cpu >= NumProcessors() {
		return api.ErrInvalidProcessor
	}
	hnd, err := openThread(h, threadSetInformation)
	if err != nil {
		return err
	}
	defer procCloseHandle.Call(hnd)

	mask := uintptr(1) << uint(cpu)
	ret, _, callErr := procSetThreadAffinityMask.Call(hnd, mask)
	if ret == 0 {
		return fmt.Errorf("platform: SetThreadAffinityMask tid=%d: %w", h.TID, callErr)
	}
	return nil
}

func platformSetPriority(h api.Handle, level int) error {
	prio := threadPriorityNormal
	switch clampPriority(level) {
	case api.PriorityLow:
		prio = threadPriorityLowest
	case api.PriorityNormal:
		prio = threadPriorityNormal
	case api.PriorityHigh:
		prio = threadPriorityHighest
	}
	hnd, err := openThread(h, threadSetInformation)
	if err != nil {
		return err
	}
	defer procCloseHandle.Call(hnd)

	ret, _, callErr := procSetThreadPriority.Call(hnd, uintptr(prio))
	if ret == 0 {
		return fmt.Errorf("platform: SetThreadPriority tid=%d: %w", h.TID, callErr)
	}
	return nil
}

func platformCanTerminate() bool {
	return true
}

func platformTerminate(h api.Handle) error {
	hnd, err := openThread(h, threadTerminate)
	if err != nil {
		return err
	}
	defer procCloseHandle.Call(hnd)

	ret, _, callErr := procTerminateThread.Call(hnd, 0)
	if ret == 0 {
		return fmt.Errorf("platform: TerminateThread tid=%d: %w", h.TID, callErr)
	}
	return nil
}
