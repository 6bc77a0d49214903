package jpegsegs

import (
	"bytes"
	"testing"

	"github.com/garyhouston/exif66"
	"github.com/stretchr/testify/require"
)

// testJPEG returns a stream with an APP0 and a DQT segment followed by
// a short scan.
func testJPEG() []byte {
	return []byte{
		0xFF, SOI,
		0xFF, APP0, 0x00, 0x07, 'J', 'F', 'I', 'F', 0x00,
		0xFF, DQT, 0x00, 0x04, 0x01, 0x02,
		0xFF, SOS, 0x00, 0x02, 0x12, 0x34, 0xFF, 0x00, 0xFF, EOI,
	}
}

func TestDecodeEncode(t *testing.T) {
	buf := testJPEG()
	stream, err := Decode(buf)
	require.NoError(t, err)
	require.Equal(t, []Segment{
		{APP0, []byte("JFIF\x00")},
		{DQT, []byte{0x01, 0x02}},
	}, stream.Segments)
	require.Equal(t, buf[17:], stream.Tail)
	require.Equal(t, len(buf), stream.Size())

	out, err := stream.Encode()
	require.NoError(t, err)
	require.Equal(t, buf, out)

	// Segment data doesn't share the input buffer.
	buf[6] = 'X'
	require.Equal(t, byte('J'), stream.Segments[0].Data[0])
}

func TestDecodeFill(t *testing.T) {
	buf := []byte{0xFF, SOI, 0xFF, 0xFF, 0xFF, COM, 0x00, 0x03, 'x', 0xFF, RST0, 0xFF, EOI}
	stream, err := Decode(buf)
	require.NoError(t, err)
	require.Equal(t, []Segment{{COM, []byte("x")}, {RST0, nil}}, stream.Segments)
	require.Equal(t, []byte{0xFF, EOI}, stream.Tail)

	out, err := stream.Encode()
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, SOI, 0xFF, COM, 0x00, 0x03, 'x', 0xFF, RST0, 0xFF, EOI}, out)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"no SOI", []byte{0xFF, 0xE0, 0x00, 0x02}},
		{"no SOS", []byte{0xFF, SOI, 0xFF, COM, 0x00, 0x02}},
		{"not a marker", []byte{0xFF, SOI, 0x00, COM}},
		{"marker 0", []byte{0xFF, SOI, 0xFF, 0x00}},
		{"second SOI", []byte{0xFF, SOI, 0xFF, SOI}},
		{"truncated marker", []byte{0xFF, SOI, 0xFF, 0xFF}},
		{"truncated length", []byte{0xFF, SOI, 0xFF, COM, 0x00}},
		{"short length", []byte{0xFF, SOI, 0xFF, COM, 0x00, 0x01, 0xFF, EOI}},
		{"long length", []byte{0xFF, SOI, 0xFF, COM, 0x00, 0x09, 0xFF, EOI}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.buf)
			require.ErrorIs(t, err, exif66.ErrContainerFormat)
			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
		})
	}
}

func TestEncodeTooLong(t *testing.T) {
	stream, err := Decode(testJPEG())
	require.NoError(t, err)
	stream.Segments[0].Data = bytes.Repeat([]byte{0}, MaxSegmentSize+1)
	_, err = stream.Encode()
	require.ErrorIs(t, err, exif66.ErrContainerFormat)
}

func TestMarkerNames(t *testing.T) {
	require.Equal(t, "SOI", Marker(SOI).Name())
	require.Equal(t, "APP1", Marker(APP1).Name())
	require.Equal(t, "SOF2", Marker(SOF0+2).Name())
	require.Equal(t, "RST7", Marker(RST0+7).Name())
	require.Equal(t, "DHT", Marker(SOF0+4).Name())
	require.True(t, Marker(RST0+3).Standalone())
	require.False(t, Marker(APP0).Standalone())
}
