// File: internal/platform/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package platform implements the per-OS thread facilities behind the
// api.Native contract: thread identification, display naming, CPU affinity,
// scheduling priority and forced termination.
//
// Platform-specific implementations live in separate files guarded by build
// tags (platform_linux.go, platform_windows.go, platform_stub.go). Linux
// forced termination additionally splits on cgo availability, following the
// cgo/pure file layout used elsewhere in this codebase.
package platform
