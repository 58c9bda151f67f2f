package wireformat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBlob(t *testing.T, h DataHeader, payload []byte) []byte {
	t.Helper()
	enc, err := EncodeHeader(&h)
	require.NoError(t, err)
	return append(enc, payload...)
}

func TestEncodeDecodeHeader_RoundTrip(t *testing.T) {
	h := DataHeader{
		RunDirName:         "_splash",
		BaseLibName:        "libbase.so",
		WindowingLibName:   "libwin.so",
		SupportDirName:     "win8.6",
		ScriptLen:          4,
		ScriptOffset:       HeaderSize,
		ImageLen:           2,
		ImageOffset:        HeaderSize + 4,
		RequirementsLen:    0,
		RequirementsOffset: HeaderSize + 6,
	}

	blob := buildBlob(t, h, []byte("exit\x89P"))

	decoded, err := DecodeHeader(blob)
	require.NoError(t, err)
	assert.Equal(t, &h, decoded)
}

func TestDecodeHeader_TooShort(t *testing.T) {
	_, err := DecodeHeader(make([]byte, HeaderSize-1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestDecodeHeader_MissingLibraryName(t *testing.T) {
	h := DataHeader{WindowingLibName: "libwin.so"}
	_, err := EncodeHeader(&h)
	require.Error(t, err, "base library name is required")
}

func TestDecodeHeader_UnterminatedName(t *testing.T) {
	blob := make([]byte, HeaderSize)
	copy(blob, strings.Repeat("x", 16)) // full-width name, no padding
	_, err := DecodeHeader(blob)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not NUL terminated")
}

func TestEncodeHeader_NameTooLong(t *testing.T) {
	h := DataHeader{
		BaseLibName:      strings.Repeat("b", MaxNameLen+1),
		WindowingLibName: "libwin.so",
	}
	_, err := EncodeHeader(&h)
	require.Error(t, err)
}

func TestDecodeHeader_RegionOutOfBounds(t *testing.T) {
	h := DataHeader{
		BaseLibName:      "libbase.so",
		WindowingLibName: "libwin.so",
		ImageLen:         100,
		ImageOffset:      HeaderSize,
	}
	blob := buildBlob(t, h, []byte("short"))

	_, err := DecodeHeader(blob)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image region")
}

func TestRegion(t *testing.T) {
	blob := []byte("0123456789")

	t.Run("in bounds", func(t *testing.T) {
		out, err := Region(blob, 2, 3)
		require.NoError(t, err)
		assert.Equal(t, []byte("234"), out)
	})

	t.Run("zero length", func(t *testing.T) {
		out, err := Region(blob, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("out of bounds", func(t *testing.T) {
		_, err := Region(blob, 8, 3)
		require.Error(t, err)
	})

	t.Run("copies out of the blob", func(t *testing.T) {
		out, err := Region(blob, 0, 2)
		require.NoError(t, err)
		out[0] = 'x'
		assert.Equal(t, byte('0'), blob[0])
	})
}

func TestEachRequirement(t *testing.T) {
	t.Run("walks names in order", func(t *testing.T) {
		list := PackRequirements([]string{"libbase.so", "libwin.so", "win8.6/init"})

		var got []string
		err := EachRequirement(list, func(name string) error {
			got = append(got, name)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"libbase.so", "libwin.so", "win8.6/init"}, got)
	})

	t.Run("empty list visits nothing", func(t *testing.T) {
		calls := 0
		err := EachRequirement(nil, func(string) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Zero(t, calls)
	})

	t.Run("stops on callback error", func(t *testing.T) {
		list := PackRequirements([]string{"a", "b", "c"})
		calls := 0
		err := EachRequirement(list, func(string) error {
			calls++
			if calls == 2 {
				return assert.AnError
			}
			return nil
		})
		require.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 2, calls)
	})

	t.Run("truncated list is an error", func(t *testing.T) {
		err := EachRequirement([]byte("a\x00bc"), func(string) error { return nil })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "truncated")
	})
}
