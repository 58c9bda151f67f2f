package ports

import "github.com/glint-dev/glint-sdk/domain/entities"

// ManifestParser parses raw bytes into a splash build Manifest.
type ManifestParser interface {
	// Parse unmarshals manifest bytes into a Manifest struct.
	Parse(data []byte) (*entities.Manifest, error)
}
