// File: control/doc.go
// Author: momentics <momentics@gmail.com>
//
// Package control provides runtime observability for controller-owned
// threads: a registry of live workers with per-thread records and
// lifecycle counters. Thread entry procedures register themselves here;
// applications inspect Snapshot and GetCounters for diagnostics.
package control
