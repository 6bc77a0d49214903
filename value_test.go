package exif66

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// Decode the same values from little and big endian encodings, and check
// that encoding them again reproduces the input.
func TestDecodeValueOrders(t *testing.T) {
	tests := []struct {
		name  string
		typ   Type
		count uint32
		value Value
	}{
		{"byte", BYTE, 3, Bytes{1, 2, 255}},
		{"sbyte", SBYTE, 2, SBytes{-1, 127}},
		{"short", SHORT, 2, Shorts{1, 0xFFFF}},
		{"sshort", SSHORT, 2, SShorts{-2, 300}},
		{"long", LONG, 2, Longs{1, 0xDEADBEEF}},
		{"slong", SLONG, 1, SLongs{-100000}},
		{"rational", RATIONAL, 2, Rationals{{1, 100}, {28, 10}}},
		{"srational", SRATIONAL, 1, SRationals{{-1, 3}}},
		{"float", FLOAT, 2, Floats{1.5, -0.25}},
		{"double", DOUBLE, 1, Doubles{math.Pi}},
		{"undefined", UNDEFINED, 4, Undefined("0230")},
		{"ifd", IFD, 1, IFDs{8}},
		{"ascii", ASCII, 6, Text("Canon")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.typ, tt.value.Type())
			require.Equal(t, tt.count, tt.value.Count())
			for _, order := range []EndianEngine{binary.LittleEndian, binary.BigEndian} {
				buf := tt.value.appendTo(nil, order)
				require.Equal(t, uint64(len(buf)), valueSize(tt.value))
				got, err := DecodeValue(NewWindow(buf, order), tt.typ, tt.count, 0)
				require.NoError(t, err)
				require.Equal(t, tt.value, got)
				require.Equal(t, buf, got.appendTo(nil, order))
			}
		})
	}
}

func TestDecodeValueEndianness(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04}
	le, err := DecodeValue(NewWindow(buf, binary.LittleEndian), SHORT, 2, 0)
	require.NoError(t, err)
	require.Equal(t, Shorts{0x0201, 0x0403}, le)
	be, err := DecodeValue(NewWindow(buf, binary.BigEndian), SHORT, 2, 0)
	require.NoError(t, err)
	require.Equal(t, Shorts{0x0102, 0x0304}, be)
}

func TestDecodeValueText(t *testing.T) {
	w := NewWindow([]byte("abcd\x00"), binary.BigEndian)
	v, err := DecodeValue(w, ASCII, 5, 0)
	require.NoError(t, err)
	require.Equal(t, Text("abcd"), v)

	// A missing terminator is added when the value is written back.
	v, err = DecodeValue(w, ASCII, 4, 0)
	require.NoError(t, err)
	require.Equal(t, Text("abcd"), v)
	require.Equal(t, uint32(5), v.Count())
	require.Equal(t, []byte("abcd\x00"), v.appendTo(nil, binary.BigEndian))

	// An empty value gains its terminator too.
	v, err = DecodeValue(w, ASCII, 0, 0)
	require.NoError(t, err)
	require.Equal(t, Text(""), v)
	require.Equal(t, uint32(1), v.Count())
}

func TestDecodeValueMalformed(t *testing.T) {
	w := NewWindow(make([]byte, 8), binary.BigEndian)
	_, err := DecodeValue(w, LONG, 3, 0)
	require.ErrorIs(t, err, ErrMalformedValue)
	var malformed *MalformedValueError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, uint64(12), malformed.Need)
	require.Equal(t, uint32(8), malformed.Have)

	// count * size overflows 32 bits.
	_, err = DecodeValue(w, DOUBLE, 0xFFFFFFFF, 0)
	require.ErrorIs(t, err, ErrMalformedValue)
	_, err = DecodeValue(w, BYTE, 1, 0xFFFFFFFF)
	require.ErrorIs(t, err, ErrMalformedValue)

	v, err := DecodeValue(w, LONG, 0, 8)
	require.NoError(t, err)
	require.Equal(t, uint32(0), v.Count())
}

func TestDecodeValueUnknownType(t *testing.T) {
	w := NewWindow([]byte("..wxyz"), binary.LittleEndian)
	v, err := DecodeValue(w, Type(0x55), 1000, 2)
	require.NoError(t, err)
	require.Equal(t, Opaque{Code: 0x55, N: 1000, Raw: []byte("wxyz")}, v)
	require.Equal(t, uint64(4), valueSize(v))
	require.False(t, v.Type().Known())
	require.Equal(t, "Unknown", v.Type().Name())

	_, err = DecodeValue(w, Type(0x55), 1, 4)
	require.ErrorIs(t, err, ErrBounds)
}

func TestAccessors(t *testing.T) {
	n, ok := AsInt(SShorts{-5}, 0)
	require.True(t, ok)
	require.Equal(t, int64(-5), n)
	_, ok = AsInt(Shorts{1}, 1)
	require.False(t, ok)
	_, ok = AsInt(Text("1"), 0)
	require.False(t, ok)
	_, ok = AsInt(Longs{1}, -1)
	require.False(t, ok)
	_, _, ok = AsRational(Rationals{{1, 2}}, -1)
	require.False(t, ok)
	_, ok = AsFloat(Doubles{1}, -1)
	require.False(t, ok)

	num, den, ok := AsRational(SRationals{{-1, 3}}, 0)
	require.True(t, ok)
	require.Equal(t, int64(-1), num)
	require.Equal(t, int64(3), den)

	f, ok := AsFloat(Floats{0.5}, 0)
	require.True(t, ok)
	require.Equal(t, 0.5, f)

	s, ok := AsString(Text("Nikon"))
	require.True(t, ok)
	require.Equal(t, "Nikon", s)
	_, ok = AsString(Undefined("Nikon"))
	require.False(t, ok)
}
