// Package entities holds the plain data types shared across the SDK:
// decoded splash resources, resolved filesystem paths, and the
// build-time bundle manifest.
package entities
