package exif66

import (
	"bytes"
	"strings"
)

// MakerNoteInfo describes a maker note found in an Exif IFD. Maker notes
// are kept as opaque Undefined data. A note whose internal offsets are
// relative to the TIFF header (SelfContained is false) may point at the
// wrong data once the metadata has been re-serialized.
type MakerNoteInfo struct {
	Vendor        string
	SelfContained bool
}

var makerNoteLabels = []struct {
	prefix        []byte
	vendor        string
	selfContained bool
}{
	{[]byte("FUJIFILM"), "Fujifilm", true},
	{[]byte("GENERALE"), "Fujifilm", true}, // GE E1255W
	{[]byte("Nikon\000\001\000"), "Nikon", false},
	{[]byte("Nikon\000\002"), "Nikon", true}, // Embedded TIFF header.
	{[]byte("Panasonic\000\000\000"), "Panasonic", false},
	{[]byte("OLYMPUS\000II"), "Olympus", true},
	{[]byte("OLYMPUS\000MM"), "Olympus", true},
	{[]byte("OLYMP\000"), "Olympus", false},
	{[]byte("SONY PI\000"), "Sony", false},
	{[]byte("PREMI\000"), "Sony", false},
	{[]byte("CAMER\000"), "Premier", false},
	{[]byte("MINOL\000"), "Minolta", false},
	{[]byte("SONY CAM \000\000\000"), "Sony", false},
	{[]byte("SONY DSC \000\000\000"), "Sony", false},
	{[]byte("\000\000SONY PIC\000\000"), "Sony", false},
	{[]byte("SONY MOBILE\000"), "Sony", false},
	{[]byte("VHAB     \000\000\000"), "Hasselblad", false},
}

// IdentifyMakerNote identifies a maker note from its label, falling back
// to the camera make for unlabelled notes. The vendor is empty if neither
// is recognized.
func IdentifyMakerNote(note []byte, camera string) MakerNoteInfo {
	for _, label := range makerNoteLabels {
		if bytes.HasPrefix(note, label.prefix) {
			return MakerNoteInfo{Vendor: label.vendor, SelfContained: label.selfContained}
		}
	}
	lcMake := strings.ToLower(camera)
	switch {
	case strings.HasPrefix(lcMake, "nikon"):
		return MakerNoteInfo{Vendor: "Nikon"}
	case strings.HasPrefix(lcMake, "canon"):
		return MakerNoteInfo{Vendor: "Canon"}
	}
	return MakerNoteInfo{}
}

// MakerNote returns information about the maker note in the Exif IFD,
// and false if there is none.
func (m *Metadata) MakerNote() (MakerNoteInfo, bool) {
	exif := m.Dir(m.Lookup(ExifSpace))
	if exif == nil {
		return MakerNoteInfo{}, false
	}
	v, found := exif.Get(MakerNote)
	if !found {
		return MakerNoteInfo{}, false
	}
	var note []byte
	switch v := v.(type) {
	case Undefined:
		note = v
	case Bytes:
		note = v
	default:
		return MakerNoteInfo{}, false
	}
	var camera string
	if mv, found := m.Primary().Get(Make); found {
		camera, _ = AsString(mv)
	}
	return IdentifyMakerNote(note, camera), true
}
