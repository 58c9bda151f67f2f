// Package wireformat defines the fixed-layout binary format of the
// splash resource record embedded in a bundle archive. The layout is
// an ABI contract between build tooling and the loader and must remain
// stable: multi-byte integers are stored big endian and converted to
// host order on decode.
package wireformat

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	// nameFieldWidth is the storage width of each name field.
	nameFieldWidth = 16

	// MaxNameLen is the longest usable name in a name field; the
	// remaining byte is zero padding, which implicitly terminates
	// the name.
	MaxNameLen = nameFieldWidth - 1

	// HeaderSize is the encoded size of DataHeader in bytes:
	// four name fields plus six 32-bit length/offset fields.
	HeaderSize = 4*nameFieldWidth + 6*4
)

// validate is a package-level singleton; constructing a validator per
// call is expensive.
var validate = validator.New()

// DataHeader is the decoded header of a splash resource record. The
// offsets address into the same raw blob the header was decoded from.
type DataHeader struct {
	// RunDirName is the extraction subdirectory used in bundled
	// mode. Empty in laid-out mode.
	RunDirName string `json:"run_dir" validate:"omitempty,max=15"`

	// BaseLibName and WindowingLibName are the file names of the
	// runtime's two shared libraries.
	BaseLibName      string `json:"base_lib" validate:"required,max=15"`
	WindowingLibName string `json:"windowing_lib" validate:"required,max=15"`

	// SupportDirName is the subdirectory holding the runtime's
	// support scripts.
	SupportDirName string `json:"support_dir" validate:"omitempty,max=15"`

	ScriptLen    uint32 `json:"script_len"`
	ScriptOffset uint32 `json:"script_offset"`

	ImageLen    uint32 `json:"image_len"`
	ImageOffset uint32 `json:"image_offset"`

	RequirementsLen    uint32 `json:"requirements_len"`
	RequirementsOffset uint32 `json:"requirements_offset"`
}

// DecodeHeader decodes and validates the header at the start of blob.
// The blob must be at least HeaderSize bytes and every length/offset
// pair must address a region inside it.
func DecodeHeader(blob []byte) (*DataHeader, error) {
	if len(blob) < HeaderSize {
		return nil, fmt.Errorf("splash data blob too short: %d bytes, need at least %d", len(blob), HeaderSize)
	}

	h := &DataHeader{}
	pos := 0

	for _, field := range []*string{&h.RunDirName, &h.BaseLibName, &h.WindowingLibName, &h.SupportDirName} {
		name, err := decodeName(blob[pos : pos+nameFieldWidth])
		if err != nil {
			return nil, err
		}
		*field = name
		pos += nameFieldWidth
	}

	for _, field := range []*uint32{
		&h.ScriptLen, &h.ScriptOffset,
		&h.ImageLen, &h.ImageOffset,
		&h.RequirementsLen, &h.RequirementsOffset,
	} {
		*field = binary.BigEndian.Uint32(blob[pos : pos+4])
		pos += 4
	}

	if err := validate.Struct(h); err != nil {
		return nil, fmt.Errorf("invalid splash data header: %w", err)
	}

	for _, r := range []struct {
		what        string
		length, off uint32
	}{
		{"script", h.ScriptLen, h.ScriptOffset},
		{"image", h.ImageLen, h.ImageOffset},
		{"requirements", h.RequirementsLen, h.RequirementsOffset},
	} {
		end := uint64(r.off) + uint64(r.length)
		if end > uint64(len(blob)) {
			return nil, fmt.Errorf("splash %s region [%d:%d) exceeds blob size %d", r.what, r.off, end, len(blob))
		}
	}

	return h, nil
}

// decodeName reads a NUL-padded name field. A field without any zero
// padding would be an unterminated 16-character name, which the build
// process never emits.
func decodeName(field []byte) (string, error) {
	i := bytes.IndexByte(field, 0)
	if i < 0 {
		return "", fmt.Errorf("name field %q is not NUL terminated", field)
	}
	return string(field[:i]), nil
}

// EncodeHeader encodes h into its fixed binary layout. Used by build
// tooling assembling a splash record; the inverse of DecodeHeader.
func EncodeHeader(h *DataHeader) ([]byte, error) {
	if err := validate.Struct(h); err != nil {
		return nil, fmt.Errorf("invalid splash data header: %w", err)
	}

	buf := make([]byte, HeaderSize)
	pos := 0

	for _, name := range []string{h.RunDirName, h.BaseLibName, h.WindowingLibName, h.SupportDirName} {
		copy(buf[pos:pos+nameFieldWidth], name)
		pos += nameFieldWidth
	}

	for _, v := range []uint32{
		h.ScriptLen, h.ScriptOffset,
		h.ImageLen, h.ImageOffset,
		h.RequirementsLen, h.RequirementsOffset,
	} {
		binary.BigEndian.PutUint32(buf[pos:pos+4], v)
		pos += 4
	}

	return buf, nil
}

// Region copies the region [off:off+length) out of blob. DecodeHeader
// has already bounds-checked the header's regions, but Region checks
// again so it is safe on its own.
func Region(blob []byte, off, length uint32) ([]byte, error) {
	end := uint64(off) + uint64(length)
	if end > uint64(len(blob)) {
		return nil, fmt.Errorf("region [%d:%d) exceeds blob size %d", off, end, len(blob))
	}
	out := make([]byte, length)
	copy(out, blob[off:end])
	return out, nil
}

// EachRequirement walks a requirements list: a concatenation of
// NUL-terminated names whose total byte length is known. There is no
// count field; iteration is driven by consuming the list until the
// total length is exhausted. fn is called once per name; a non-nil
// error stops the walk.
func EachRequirement(list []byte, fn func(name string) error) error {
	for pos := 0; pos < len(list); {
		i := bytes.IndexByte(list[pos:], 0)
		if i < 0 {
			return fmt.Errorf("requirements list truncated at byte %d", pos)
		}
		if err := fn(string(list[pos : pos+i])); err != nil {
			return err
		}
		pos += i + 1
	}
	return nil
}

// PackRequirements builds a requirements list from names, the inverse
// of EachRequirement.
func PackRequirements(names []string) []byte {
	var buf bytes.Buffer
	for _, name := range names {
		buf.WriteString(name)
		buf.WriteByte(0)
	}
	return buf.Bytes()
}
