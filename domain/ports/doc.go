// Package ports defines interfaces for the splash session's external
// collaborators: the bundle archive, the foreign GUI runtime, and its
// shared-library loader. These ports enable dependency inversion - the
// session core depends on abstractions, and infrastructure adapters
// implement these interfaces.
package ports
