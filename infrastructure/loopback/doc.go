// Package loopback provides an in-process implementation of the GUI
// runtime ports. It reproduces the runtime's dispatch mechanics - per
// thread FIFO event queues with a blocking one-event wait, threads
// pinned to OS threads, interpreters with named commands - without any
// shared libraries or windowing system, so sessions can be exercised
// in development and in tests.
package loopback
