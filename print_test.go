package exif66

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestFprint(t *testing.T) {
	d := newDirectory(TIFFSpace)
	require.NoError(t, d.Set(Make, Text("Canon")))
	require.NoError(t, d.Set(Orientation, Shorts{1}))
	require.NoError(t, d.Set(XResolution, Rationals{{72, 1}}))
	require.NoError(t, d.Set(Tag(0xC000), Undefined("abc")))

	var out bytes.Buffer
	d.Fprint(&out, 2)
	want := "TIFF IFD with 4 entries:\n" +
		"Make ASCII(6) \"Canon\"\n" +
		"Orientation Short(1) 1\n" +
		"XResolution Rational(1) 72/1\n" +
		fmt.Sprintf("Unknown 49152(0xC000) Undefined(3) 61 62 ... xxh64:%016x\n", xxhash.Sum64([]byte("abc")))
	require.Equal(t, want, out.String())

	out.Reset()
	d.Fprint(&out, 0)
	require.Contains(t, out.String(), "Undefined(3) 61 62 63\n")
}

func TestFprintImageData(t *testing.T) {
	m, err := ParseBytes(testStripTIFF())
	require.NoError(t, err)
	var out bytes.Buffer
	m.Primary().Fprint(&out, 0)
	require.Contains(t, out.String(), "StripOffsets locates 1 segments, 3 bytes\n")
}
