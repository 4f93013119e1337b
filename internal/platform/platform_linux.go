//go:build linux
// +build linux

// File: internal/platform/platform_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux implementation of thread naming, affinity and priority.
// Naming uses prctl(PR_SET_NAME), which acts on the calling thread only.
// Affinity and priority act on arbitrary threads through their kernel tid,
// using sched_setaffinity and the raw sched_* syscalls.

package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/momentics/osthread/api"
)

// schedParam mirrors struct sched_param from <sched.h>.
type schedParam struct {
	priority int32
}

func platformSetCurrentThreadName(name string) error {
	// The kernel truncates to 15 bytes plus NUL; let it.
	p, err := unix.BytePtrFromString(name)
	if err != nil {
		return err
	}
	return unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(p)), 0, 0, 0)
}

func platformBindToProcessor(h api.Handle, cpu int) error {
	if cpu < 0 || cpu >= NumProcessors() {
		return api.ErrInvalidProcessor
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	if err := unix.SchedSetaffinity(h.TID, &set); err != nil {
		return fmt.Errorf("platform: sched_setaffinity tid=%d cpu=%d: %w", h.TID, cpu, err)
	}
	return nil
}

// platformSetPriority reads the thread's current scheduling policy, queries
// the policy's priority range and interpolates the requested level into it.
func platformSetPriority(h api.Handle, level int) error {
	level = clampPriority(level)
	tid := uintptr(h.TID)

	policy, _, errno := unix.Syscall(unix.SYS_SCHED_GETSCHEDULER, tid, 0, 0)
	if errno != 0 {
		return fmt.Errorf("platform: sched_getscheduler tid=%d: %w", h.TID, errno)
	}
	min, _, errno := unix.Syscall(unix.SYS_SCHED_GET_PRIORITY_MIN, policy, 0, 0)
	if errno != 0 {
		return fmt.Errorf("platform: sched_get_priority_min: %w", errno)
	}
	max, _, errno := unix.Syscall(unix.SYS_SCHED_GET_PRIORITY_MAX, policy, 0, 0)
	if errno != 0 {
		return fmt.Errorf("platform: sched_get_priority_max: %w", errno)
	}

	param := schedParam{
		priority: int32(int(min) + level*(int(max)-int(min))/api.PriorityHighest),
	}
	_, _, errno = unix.Syscall(unix.SYS_SCHED_SETPARAM, tid, uintptr(unsafe.Pointer(&param)), 0)
	if errno != 0 {
		return fmt.Errorf("platform: sched_setparam tid=%d prio=%d: %w", h.TID, param.priority, errno)
	}
	return nil
}
