package exif66

import (
	"encoding/binary"
	"fmt"
)

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder, so
// that the serializer can append to its output buffer directly.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Byte order marks at the start of a TIFF header.
const (
	littleEndianMark = 0x4949 // "II"
	bigEndianMark    = 0x4D4D // "MM"
)

// engineFor converts a ByteOrder into an EndianEngine. Only the two
// standard orders are accepted, since a TIFF header can't name any other.
func engineFor(order binary.ByteOrder) (EndianEngine, error) {
	switch order {
	case binary.LittleEndian:
		return binary.LittleEndian, nil
	case binary.BigEndian:
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("%w: byte order %v", ErrInvalidHeader, order)
}

// appendHeader appends a TIFF header with the given byte order and
// position of the 0th IFD. Eight bytes are used.
func appendHeader(dst []byte, order EndianEngine, ifdPos uint32) []byte {
	if order.Uint16([]byte{1, 0}) == 1 {
		dst = append(dst, 'I', 'I')
	} else {
		dst = append(dst, 'M', 'M')
	}
	dst = order.AppendUint16(dst, 42)
	return order.AppendUint32(dst, ifdPos)
}

// readHeader reads a TIFF header at the start of w. It returns the byte
// order and the position of the 0th IFD.
func readHeader(w Window) (EndianEngine, uint32, error) {
	mark, err := w.Bytes(0, 2)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	var order EndianEngine
	switch binary.BigEndian.Uint16(mark) {
	case littleEndianMark:
		order = binary.LittleEndian
	case bigEndianMark:
		order = binary.BigEndian
	default:
		return nil, 0, fmt.Errorf("%w: byte order mark % X", ErrInvalidHeader, mark)
	}
	w = w.WithOrder(order)
	magic, err := w.Short(2)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	if magic != 42 {
		return nil, 0, fmt.Errorf("%w: magic number %d, expected 42", ErrInvalidHeader, magic)
	}
	ifdPos, err := w.Long(4)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	if ifdPos == 0 {
		// TIFF must contain at least one IFD.
		return nil, 0, fmt.Errorf("%w: no IFD", ErrInvalidHeader)
	}
	return order, ifdPos, nil
}
