package exif66

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentifyMakerNote(t *testing.T) {
	tests := []struct {
		note   string
		make   string
		vendor string
		self   bool
	}{
		{"Nikon\x00\x02\x10\x00\x00MM\x00\x2a", "", "Nikon", true},
		{"Nikon\x00\x01\x00", "", "Nikon", false},
		{"FUJIFILM\x0c\x00\x00\x00", "", "Fujifilm", true},
		{"OLYMPUS\x00II\x03\x00", "", "Olympus", true},
		{"\x00\x1a\x00\x01", "Canon", "Canon", false},
		{"\x00\x1a\x00\x01", "NIKON CORPORATION", "Nikon", false},
		{"\x00\x1a\x00\x01", "Acme", "", false},
	}
	for _, tt := range tests {
		info := IdentifyMakerNote([]byte(tt.note), tt.make)
		require.Equal(t, MakerNoteInfo{Vendor: tt.vendor, SelfContained: tt.self}, info, "%q", tt.note)
	}
}

func TestMetadataMakerNote(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	_, found := m.MakerNote()
	require.False(t, found)

	require.NoError(t, m.Set(Make, Text("Canon")))
	require.NoError(t, m.Set(MakerNote, Undefined{0x00, 0x1a, 0x00, 0x01}))
	exif := m.Lookup(ExifSpace)
	require.NotEqual(t, NoDir, exif)
	_, found = m.Dir(exif).Get(MakerNote)
	require.True(t, found)

	info, found := m.MakerNote()
	require.True(t, found)
	require.Equal(t, "Canon", info.Vendor)

	// Maker notes are carried through serialization unchanged.
	out, err := m.Serialize()
	require.NoError(t, err)
	parsed, err := ParseBytes(out)
	require.NoError(t, err)
	v, _ := parsed.Get(MakerNote)
	require.Equal(t, Undefined{0x00, 0x1a, 0x00, 0x01}, v)
}
