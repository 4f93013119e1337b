// Package api
// Author: momentics <momentics@gmail.com>
//
// Public contracts of the osthread library: the work-routine interface,
// the native thread capability provider, and the shared error taxonomy.
//
// The api package contains no implementation. Platform-specific code lives
// in internal/platform and is surfaced through the adapters package.
package api
