package exif66

import (
	"encoding/binary"
)

// Window is a read-only view of a byte range with a byte order for
// multi-byte reads. Offsets passed to its methods are relative to the
// start of the window, and every read is checked against its length.
type Window struct {
	buf    []byte
	start  uint32
	length uint32
	order  binary.ByteOrder
}

// NewWindow returns a window over all of buf. Buffers of 4GiB or more are
// clipped, since TIFF offsets are 32 bits.
func NewWindow(buf []byte, order binary.ByteOrder) Window {
	n := uint64(len(buf))
	if n > 0xFFFFFFFF {
		n = 0xFFFFFFFF
	}
	return Window{buf: buf, length: uint32(n), order: order}
}

// Len returns the number of bytes in the window.
func (w Window) Len() uint32 {
	return w.length
}

// Order returns the window's byte order.
func (w Window) Order() binary.ByteOrder {
	return w.order
}

// WithOrder returns the same byte range with a different byte order.
func (w Window) WithOrder(order binary.ByteOrder) Window {
	w.order = order
	return w
}

func (w Window) check(off, size uint32) error {
	if uint64(off)+uint64(size) > uint64(w.length) {
		return &BoundsError{Offset: off, Size: size, Length: w.length}
	}
	return nil
}

// Bytes returns n bytes at off. The result shares memory with the
// window's buffer and must not be modified.
func (w Window) Bytes(off, n uint32) ([]byte, error) {
	if err := w.check(off, n); err != nil {
		return nil, err
	}
	pos := w.start + off
	return w.buf[pos : pos+n : pos+n], nil
}

// Slice returns a window over n bytes at off, with the same byte order.
func (w Window) Slice(off, n uint32) (Window, error) {
	if err := w.check(off, n); err != nil {
		return Window{}, err
	}
	return Window{buf: w.buf, start: w.start + off, length: n, order: w.order}, nil
}

// Byte returns the byte at off.
func (w Window) Byte(off uint32) (uint8, error) {
	if err := w.check(off, 1); err != nil {
		return 0, err
	}
	return w.buf[w.start+off], nil
}

// Short returns the 16-bit value at off.
func (w Window) Short(off uint32) (uint16, error) {
	if err := w.check(off, 2); err != nil {
		return 0, err
	}
	return w.order.Uint16(w.buf[w.start+off:]), nil
}

// Long returns the 32-bit value at off.
func (w Window) Long(off uint32) (uint32, error) {
	if err := w.check(off, 4); err != nil {
		return 0, err
	}
	return w.order.Uint32(w.buf[w.start+off:]), nil
}

// Rational returns the numerator and denominator at off.
func (w Window) Rational(off uint32) (uint32, uint32, error) {
	if err := w.check(off, 8); err != nil {
		return 0, 0, err
	}
	pos := w.start + off
	return w.order.Uint32(w.buf[pos:]), w.order.Uint32(w.buf[pos+4:]), nil
}
