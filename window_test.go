package exif66

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWindowReads(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	le := NewWindow(buf, binary.LittleEndian)
	be := le.WithOrder(binary.BigEndian)
	require.Equal(t, uint32(8), le.Len())

	b, err := le.Byte(7)
	require.NoError(t, err)
	require.Equal(t, uint8(0x08), b)

	s, err := le.Short(1)
	require.NoError(t, err)
	require.Equal(t, uint16(0x0302), s)
	s, err = be.Short(1)
	require.NoError(t, err)
	require.Equal(t, uint16(0x0203), s)

	l, err := be.Long(4)
	require.NoError(t, err)
	require.Equal(t, uint32(0x05060708), l)

	num, den, err := le.Rational(0)
	require.NoError(t, err)
	require.Equal(t, uint32(0x04030201), num)
	require.Equal(t, uint32(0x08070605), den)
}

func TestWindowBounds(t *testing.T) {
	w := NewWindow(make([]byte, 8), binary.BigEndian)

	_, err := w.Long(5)
	require.ErrorIs(t, err, ErrBounds)
	var bounds *BoundsError
	require.True(t, errors.As(err, &bounds))
	require.Equal(t, BoundsError{Offset: 5, Size: 4, Length: 8}, *bounds)

	// Offsets near the top of the range must not wrap around.
	_, err = w.Long(0xFFFFFFFE)
	require.ErrorIs(t, err, ErrBounds)
	_, err = w.Bytes(4, 0xFFFFFFFF)
	require.ErrorIs(t, err, ErrBounds)
	_, _, err = w.Rational(1)
	require.ErrorIs(t, err, ErrBounds)

	_, err = w.Bytes(8, 0)
	require.NoError(t, err)
	_, err = w.Byte(8)
	require.ErrorIs(t, err, ErrBounds)
}

func TestWindowSlice(t *testing.T) {
	buf := []byte("..MM\x00\x2a\x00\x00\x00\x08..")
	w := NewWindow(buf, nil)
	sub, err := w.Slice(2, 8)
	require.NoError(t, err)
	require.Equal(t, uint32(8), sub.Len())

	order, ifdPos, err := readHeader(sub)
	require.NoError(t, err)
	require.Equal(t, binary.BigEndian, order)
	require.Equal(t, uint32(8), ifdPos)

	data, err := sub.Bytes(0, 2)
	require.NoError(t, err)
	require.Equal(t, []byte("MM"), data)
	require.Equal(t, 2, cap(data))

	_, err = sub.WithOrder(binary.BigEndian).Short(7)
	require.ErrorIs(t, err, ErrBounds)
	_, err = w.Slice(4, 9)
	require.ErrorIs(t, err, ErrBounds)
}

func TestReadHeader(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"short", []byte("II*")},
		{"mark", []byte("IM*\x00\x08\x00\x00\x00")},
		{"magic", []byte("II\x2b\x00\x08\x00\x00\x00")},
		{"no IFD", []byte("MM\x00\x2a\x00\x00\x00\x00")},
		{"truncated offset", []byte("MM\x00\x2a\x00\x00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := readHeader(NewWindow(tt.buf, nil))
			require.ErrorIs(t, err, ErrInvalidHeader)
		})
	}

	order, ifdPos, err := readHeader(NewWindow([]byte("II\x2a\x00\x10\x00\x00\x00"), nil))
	require.NoError(t, err)
	require.Equal(t, binary.LittleEndian, order)
	require.Equal(t, uint32(16), ifdPos)
}
