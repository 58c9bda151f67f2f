// Package host implements the splash session core: loading splash
// resources from the bundle archive, spawning the GUI runtime's thread
// with a startup handshake, marshaling procedure calls onto that
// thread through the runtime's event queue, and the cooperative
// teardown that works from either thread.
//
// The session talks to its collaborators - the archive, the runtime's
// shared-library loader, and the runtime itself - exclusively through
// the interfaces in domain/ports.
package host
