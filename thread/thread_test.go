// Copyright 2025 momentics@gmail.com
// License: Apache 2.0

// thread_test.go — lifecycle state machine and handshake properties.
package thread_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/momentics/osthread/api"
	"github.com/momentics/osthread/control"
	"github.com/momentics/osthread/thread"
)

// sleeper returns a routine that returns v after d, or earlier when its
// context is cancelled.
func sleeper(d time.Duration, v any) api.RunFunc {
	return func(ctx context.Context) any {
		select {
		case <-time.After(d):
		case <-ctx.Done():
		}
		return v
	}
}

// blocked returns a routine that runs until release is closed.
func blocked(release <-chan struct{}) api.RunFunc {
	return func(ctx context.Context) any {
		<-release
		return nil
	}
}

func TestStartWhileRunningRejected(t *testing.T) {
	release := make(chan struct{})
	thr := thread.New("busy", blocked(release))

	if err := thr.Start(); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	if err := thr.Start(); !errors.Is(err, api.ErrAlreadyRunning) {
		t.Errorf("second Start = %v, want ErrAlreadyRunning", err)
	}

	close(release)
	if err := thr.Wait(); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if err := thr.Start(); err != nil {
		t.Errorf("Start after Wait failed: %v", err)
	}
	thr.Stop()
	thr.Wait()
}

func TestRunningObservedAfterStart(t *testing.T) {
	release := make(chan struct{})
	thr := thread.New("observer", blocked(release))

	if err := thr.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	// Start blocks until the worker has begun executing.
	if !thr.IsRunning() {
		t.Error("IsRunning false immediately after successful Start")
	}
	if _, err := thr.ReturnValue(); !errors.Is(err, api.ErrStillRunning) {
		t.Errorf("ReturnValue while running = %v, want ErrStillRunning", err)
	}

	close(release)
	thr.Wait()
}

func TestWaitWithoutThread(t *testing.T) {
	thr := thread.New("idle", sleeper(time.Millisecond, nil))
	if err := thr.Wait(); !errors.Is(err, api.ErrNotJoinable) {
		t.Errorf("Wait on never-started = %v, want ErrNotJoinable", err)
	}

	if err := thr.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := thr.Wait(); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if err := thr.Wait(); !errors.Is(err, api.ErrNotJoinable) {
		t.Errorf("Wait after reclaim = %v, want ErrNotJoinable", err)
	}
}

func TestReturnValueRoundTrip(t *testing.T) {
	const v = 0xC0FFEE
	thr := thread.New("round-trip", sleeper(10*time.Millisecond, v))

	if err := thr.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := thr.Wait(); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	got, err := thr.ReturnValue()
	if err != nil {
		t.Fatalf("ReturnValue failed: %v", err)
	}
	if got != v {
		t.Errorf("ReturnValue = %v, want %v", got, v)
	}
}

func TestCooperativeStopViaAccessor(t *testing.T) {
	var thr *thread.Thread
	thr = thread.New("poller", api.RunFunc(func(ctx context.Context) any {
		for !thr.StopRequested() {
			time.Sleep(time.Millisecond)
		}
		return "stopped"
	}))

	if err := thr.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	thr.Stop()
	if err := thr.Wait(); err != nil {
		t.Fatalf("Wait after Stop failed: %v", err)
	}
	got, _ := thr.ReturnValue()
	if got != "stopped" {
		t.Errorf("ReturnValue = %v, want stopped", got)
	}
}

func TestCooperativeStopViaContext(t *testing.T) {
	thr := thread.New("ctx-stop", api.RunFunc(func(ctx context.Context) any {
		<-ctx.Done()
		return ctx.Err()
	}))

	if err := thr.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	thr.Stop()
	if err := thr.Wait(); err != nil {
		t.Fatalf("Wait after Stop failed: %v", err)
	}
}

func TestStopIdempotent(t *testing.T) {
	thr := thread.New("stop-twice", api.RunFunc(func(ctx context.Context) any {
		<-ctx.Done()
		return nil
	}))

	if err := thr.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	thr.Stop()
	thr.Stop()
	thr.Stop()
	if err := thr.Wait(); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
}

func TestStartClearsStopHistory(t *testing.T) {
	sawStop := make(chan bool, 1)
	var thr *thread.Thread
	thr = thread.New("history", api.RunFunc(func(ctx context.Context) any {
		sawStop <- thr.StopRequested()
		<-ctx.Done()
		return nil
	}))

	thr.Stop() // before any Start; must not leak into the launch
	if err := thr.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if <-sawStop {
		t.Error("worker observed stale stop request after Start")
	}
	thr.Stop()
	thr.Wait()
}

func TestKillNonRunning(t *testing.T) {
	thr := thread.New("kill-idle", sleeper(time.Millisecond, "done"))
	if err := thr.Kill(); !errors.Is(err, api.ErrNotRunning) {
		t.Errorf("Kill on never-started = %v, want ErrNotRunning", err)
	}

	// A finished-but-unjoined thread is reclaimed by the degraded Kill.
	if err := thr.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	for thr.IsRunning() {
		time.Sleep(time.Millisecond)
	}
	if err := thr.Kill(); !errors.Is(err, api.ErrNotRunning) {
		t.Errorf("Kill on finished = %v, want ErrNotRunning", err)
	}
	if err := thr.Wait(); !errors.Is(err, api.ErrNotJoinable) {
		t.Errorf("Wait after degraded Kill = %v, want ErrNotJoinable", err)
	}
}

func TestKillForcedAndRestart(t *testing.T) {
	reg := control.NewRegistry()
	thr := thread.New("kill-me", api.RunFunc(func(ctx context.Context) any {
		for { // never observes ctx or the stop flag
			time.Sleep(time.Millisecond)
		}
	}), thread.WithRegistry(reg))

	if err := thr.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := thr.Kill(); err != nil {
		t.Fatalf("Kill of running thread = %v, want nil", err)
	}
	if thr.IsRunning() {
		t.Error("IsRunning true after Kill")
	}
	if got, err := thr.ReturnValue(); err != nil || got != nil {
		t.Errorf("ReturnValue after Kill = %v, %v; want nil, nil", got, err)
	}
	if c := reg.GetCounters(); c.Killed != 1 {
		t.Errorf("Killed counter = %d, want 1", c.Killed)
	}

	// The instance is immediately restartable; the abandoned worker keeps
	// spinning on its own thread and must not affect the new launch.
	if err := thr.Start(); err != nil {
		t.Fatalf("Start after Kill failed: %v", err)
	}
	if !thr.IsRunning() {
		t.Error("IsRunning false after restart")
	}
	if err := thr.Kill(); err != nil {
		t.Errorf("Kill of restarted thread = %v", err)
	}
}

func TestCloseReclaims(t *testing.T) {
	release := make(chan struct{})
	thr := thread.New("close", blocked(release))
	if err := thr.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := thr.Close(); err != nil {
		t.Errorf("Close of running thread = %v", err)
	}
	if err := thr.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
	close(release)
}

func TestRegistryAccounting(t *testing.T) {
	reg := control.NewRegistry()
	thr := thread.New("counted", sleeper(5*time.Millisecond, nil), thread.WithRegistry(reg))

	if err := thr.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if reg.Live() != 1 {
		t.Errorf("Live = %d during run, want 1", reg.Live())
	}
	if err := thr.Wait(); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	c := reg.GetCounters()
	if c.Started != 1 || c.Finished != 1 || c.Killed != 0 {
		t.Errorf("counters = %+v, want started=1 finished=1 killed=0", c)
	}
	if reg.Live() != 0 {
		t.Errorf("Live = %d after Wait, want 0", reg.Live())
	}
}
