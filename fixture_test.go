package exif66

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// appendTestEntry appends a 12-byte IFD entry. field is the value field,
// padded to 4 bytes.
func appendTestEntry(b []byte, order EndianEngine, tag Tag, typ Type, count uint32, field []byte) []byte {
	b = order.AppendUint16(b, uint16(tag))
	b = order.AppendUint16(b, uint16(typ))
	b = order.AppendUint32(b, count)
	b = append(b, field...)
	return append(b, make([]byte, 4-len(field))...)
}

// testTIFF builds a TIFF structure with an Orientation field in IFD0 and
// an Exif IFD holding ExposureTime, laid out the way Serialize lays it
// out:
//
//	0  header
//	8  IFD0: Orientation, ExifIFD -> 38
//	38 Exif IFD: ExposureTime -> 56
//	56 1/100
func testTIFF(order EndianEngine) []byte {
	b := appendHeader(nil, order, HeaderSize)
	b = order.AppendUint16(b, 2)
	b = appendTestEntry(b, order, Orientation, SHORT, 1, order.AppendUint16(nil, 1))
	b = appendTestEntry(b, order, ExifIFD, LONG, 1, order.AppendUint32(nil, 38))
	b = order.AppendUint32(b, 0)
	b = order.AppendUint16(b, 1)
	b = appendTestEntry(b, order, ExposureTime, RATIONAL, 1, order.AppendUint32(nil, 56))
	b = order.AppendUint32(b, 0)
	b = order.AppendUint32(b, 1)
	return order.AppendUint32(b, 100)
}

// testStripTIFF builds a bare TIFF with one 3-byte strip located by
// SHORT fields.
//
//	0  header
//	8  IFD0: StripOffsets -> 38, StripByteCounts 3
//	38 "abc"
func testStripTIFF() []byte {
	order := binary.LittleEndian
	b := appendHeader(nil, order, HeaderSize)
	b = order.AppendUint16(b, 2)
	b = appendTestEntry(b, order, StripOffsets, SHORT, 1, order.AppendUint16(nil, 38))
	b = appendTestEntry(b, order, StripByteCounts, SHORT, 1, order.AppendUint16(nil, 3))
	b = order.AppendUint32(b, 0)
	return append(b, "abc"...)
}

// requireSameTree checks that two metadata trees have the same
// directories and entries. Offsets that are recomputed on serialization
// aren't compared.
func requireSameTree(t *testing.T, want, got *Metadata) {
	t.Helper()
	var wantDirs, gotDirs []*Directory
	require.NoError(t, want.Walk(func(_ DirID, d *Directory) error {
		wantDirs = append(wantDirs, d)
		return nil
	}))
	require.NoError(t, got.Walk(func(_ DirID, d *Directory) error {
		gotDirs = append(gotDirs, d)
		return nil
	}))
	require.Len(t, gotDirs, len(wantDirs))
	for i, wd := range wantDirs {
		gd := gotDirs[i]
		require.Equal(t, wd.Space, gd.Space, "directory %d", i)
		require.Len(t, gd.Entries, len(wd.Entries), "directory %d", i)
		for j, we := range wd.Entries {
			ge := gd.Entries[j]
			require.Equal(t, we.Tag, ge.Tag, "directory %d entry %d", i, j)
			if pointerOffsets(wd.Space, we) != nil {
				continue
			}
			if _, found := wd.relocated(we.Tag); found {
				continue
			}
			require.Equal(t, we.Value, ge.Value, "directory %d tag 0x%04X", i, uint16(we.Tag))
		}
		require.Len(t, gd.ImageData, len(wd.ImageData))
		for j := range wd.ImageData {
			require.Equal(t, wd.ImageData[j].Segments, gd.ImageData[j].Segments)
		}
	}
}
