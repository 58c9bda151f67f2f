package parser

import (
	"github.com/BurntSushi/toml"
	"github.com/glint-dev/glint-sdk/domain/entities"
	"github.com/glint-dev/glint-sdk/domain/ports"
)

// TomlManifestParser implements ManifestParser for TOML.
type TomlManifestParser struct{}

// NewTomlManifestParser creates a new TomlManifestParser.
func NewTomlManifestParser() ports.ManifestParser {
	return &TomlManifestParser{}
}

// Parse unmarshals TOML bytes into a Manifest struct.
func (p *TomlManifestParser) Parse(data []byte) (*entities.Manifest, error) {
	var manifest entities.Manifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}
