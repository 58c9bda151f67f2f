// Package glint embeds a foreign, single-threaded, event-loop GUI
// runtime inside a multi-threaded Go host to show a transient splash
// window while the host performs other startup work.
//
// The runtime lives on its own dedicated thread; the host never calls
// into it directly. All cross-thread work goes through the session's
// event relay, which marshals procedures onto the runtime thread
// synchronously or asynchronously, and lifecycle transitions are
// serialized through the session's startup and shutdown handshakes.
//
// Typical use:
//
//	session, err := glint.Setup(archive, loader)
//	if err != nil {
//		// absence of splash resources is reported via errors.IsAbsent
//	}
//	if err := session.Start(); err != nil { ... }
//	session.UpdateProgress("loading payload")
//	...
//	session.Finalize()
//	session.Release()
//
// The foreign runtime, its interpreter, the bundle archive, and the
// shared-library loader are collaborators reached only through the
// interfaces in domain/ports; infrastructure/loopback provides a fully
// in-process implementation for development and tests.
package glint
