package memarchive

import (
	"fmt"

	"github.com/glint-dev/glint-sdk/domain/entities"
	"github.com/glint-dev/glint-sdk/domain/ports"
	"github.com/glint-dev/glint-sdk/wireformat"
)

// SplashEntryName is the TOC name under which AddSplash stores the
// splash record. Lookup at load time goes by kind, not name.
const SplashEntryName = "splash-resources"

// PackSplashRecord assembles a complete splash resource blob from a
// validated manifest and the script and image payloads: the fixed
// header followed by the script, image, and requirements regions.
func PackSplashRecord(m *entities.Manifest, script, image []byte) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	reqs := wireformat.PackRequirements(m.Requirements)

	h := &wireformat.DataHeader{
		RunDirName:       m.RunDir,
		BaseLibName:      m.BaseLibrary,
		WindowingLibName: m.WindowingLibrary,
		SupportDirName:   m.SupportDir,

		ScriptLen:    uint32(len(script)),
		ScriptOffset: wireformat.HeaderSize,

		ImageLen:    uint32(len(image)),
		ImageOffset: wireformat.HeaderSize + uint32(len(script)),

		RequirementsLen:    uint32(len(reqs)),
		RequirementsOffset: wireformat.HeaderSize + uint32(len(script)) + uint32(len(image)),
	}

	enc, err := wireformat.EncodeHeader(h)
	if err != nil {
		return nil, fmt.Errorf("failed to encode splash header: %w", err)
	}

	blob := make([]byte, 0, len(enc)+len(script)+len(image)+len(reqs))
	blob = append(blob, enc...)
	blob = append(blob, script...)
	blob = append(blob, image...)
	blob = append(blob, reqs...)
	return blob, nil
}

// AddSplash packs a splash record and adds it to the archive under the
// splash entry kind.
func (a *Archive) AddSplash(m *entities.Manifest, script, image []byte) error {
	blob, err := PackSplashRecord(m, script, image)
	if err != nil {
		return err
	}
	a.Add(SplashEntryName, ports.EntryKindSplash, blob)
	return nil
}
