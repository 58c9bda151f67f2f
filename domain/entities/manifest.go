package entities

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a package-level singleton for better performance;
// creating a validator per call is expensive.
var validate = validator.New()

// Manifest declares how a splash bundle is assembled at build time:
// which runtime files to ship, where the presentation script and image
// come from, and which archive entries must be extracted before the
// splash can start. Parsed from YAML or TOML by the adapters in
// infrastructure/parser.
type Manifest struct {
	// RunDir is the extraction subdirectory name used in bundled
	// mode. Name fields are capped at 15 characters because the
	// wire header stores them NUL padded in 16-byte fields.
	RunDir string `json:"run_dir,omitempty" yaml:"run_dir" toml:"run_dir" validate:"omitempty,max=15"`

	// BaseLibrary and WindowingLibrary are the file names of the
	// runtime's two shared libraries.
	BaseLibrary      string `json:"base_library" yaml:"base_library" toml:"base_library" validate:"required,max=15"`
	WindowingLibrary string `json:"windowing_library" yaml:"windowing_library" toml:"windowing_library" validate:"required,max=15"`

	// SupportDir is the subdirectory holding the runtime's support
	// scripts.
	SupportDir string `json:"support_dir,omitempty" yaml:"support_dir" toml:"support_dir" validate:"omitempty,max=15"`

	// Script and Image are build-tree paths of the presentation
	// script and splash image.
	Script string `json:"script" yaml:"script" toml:"script" validate:"required"`
	Image  string `json:"image,omitempty" yaml:"image" toml:"image"`

	// Requirements names the archive entries that must exist on
	// disk next to the shared libraries at run time.
	Requirements []string `json:"requirements,omitempty" yaml:"requirements" toml:"requirements" validate:"dive,required"`
}

// Validate checks the manifest's structural constraints.
func (m *Manifest) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("invalid splash manifest: %w", err)
	}
	return nil
}
