// Package thread
// Author: momentics <momentics@gmail.com>
//
// Package thread implements the controller that owns exactly one native
// thread at a time: start, cooperative stop, join and forced kill.
//
// A controller is constructed with a name and an api.Runnable work routine.
// Start asks the platform adapter to spawn an execution context; the entry
// procedure locks itself to its OS thread, applies the display name,
// registers with the control registry and hands the opaque return value of
// the routine back through ReturnValue. Naming, CPU affinity and priority
// are delegated to the adapters/internal platform layer and are best effort
// everywhere.
package thread
