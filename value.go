package exif66

import (
	"math"
	"strings"
)

// Value is the decoded payload of an IFD entry. The set of
// implementations is closed: one per TIFF type, plus Opaque for type
// codes this package doesn't know.
type Value interface {
	// Type returns the TIFF type the value is encoded as.
	Type() Type
	// Count returns the number of elements, as stored in the entry.
	Count() uint32
	appendTo(dst []byte, order EndianEngine) []byte
}

type (
	Bytes      []uint8
	SBytes     []int8
	Shorts     []uint16
	SShorts    []int16
	Longs      []uint32
	SLongs     []int32
	Rationals  []Rational
	SRationals []SRational
	Floats     []float32
	Doubles    []float64
	Undefined  []byte
	// IFDs holds offsets of type IFD. When the entry is a sub-IFD pointer
	// the offsets are recomputed on serialization.
	IFDs []uint32
)

// Text is an ASCII value without its terminating NUL. Its count
// includes the terminator.
type Text string

// Rational is an unsigned fraction.
type Rational struct {
	Num, Den uint32
}

// SRational is a signed fraction.
type SRational struct {
	Num, Den int32
}

// Opaque is an entry with an unknown type code. Its 4-byte value field is
// kept as found, since its size and placement can't be determined.
type Opaque struct {
	Code Type
	N    uint32
	Raw  []byte
}

func (Bytes) Type() Type      { return BYTE }
func (SBytes) Type() Type     { return SBYTE }
func (Shorts) Type() Type     { return SHORT }
func (SShorts) Type() Type    { return SSHORT }
func (Longs) Type() Type      { return LONG }
func (SLongs) Type() Type     { return SLONG }
func (Rationals) Type() Type  { return RATIONAL }
func (SRationals) Type() Type { return SRATIONAL }
func (Floats) Type() Type     { return FLOAT }
func (Doubles) Type() Type    { return DOUBLE }
func (Undefined) Type() Type  { return UNDEFINED }
func (IFDs) Type() Type       { return IFD }
func (Text) Type() Type       { return ASCII }
func (v Opaque) Type() Type   { return v.Code }

func (v Bytes) Count() uint32      { return uint32(len(v)) }
func (v SBytes) Count() uint32     { return uint32(len(v)) }
func (v Shorts) Count() uint32     { return uint32(len(v)) }
func (v SShorts) Count() uint32    { return uint32(len(v)) }
func (v Longs) Count() uint32      { return uint32(len(v)) }
func (v SLongs) Count() uint32     { return uint32(len(v)) }
func (v Rationals) Count() uint32  { return uint32(len(v)) }
func (v SRationals) Count() uint32 { return uint32(len(v)) }
func (v Floats) Count() uint32     { return uint32(len(v)) }
func (v Doubles) Count() uint32    { return uint32(len(v)) }
func (v Undefined) Count() uint32  { return uint32(len(v)) }
func (v IFDs) Count() uint32       { return uint32(len(v)) }
func (v Text) Count() uint32       { return uint32(len(v)) + 1 }
func (v Opaque) Count() uint32     { return v.N }

func (v Bytes) appendTo(dst []byte, _ EndianEngine) []byte {
	return append(dst, v...)
}

func (v SBytes) appendTo(dst []byte, _ EndianEngine) []byte {
	for _, x := range v {
		dst = append(dst, uint8(x))
	}
	return dst
}

func (v Shorts) appendTo(dst []byte, order EndianEngine) []byte {
	for _, x := range v {
		dst = order.AppendUint16(dst, x)
	}
	return dst
}

func (v SShorts) appendTo(dst []byte, order EndianEngine) []byte {
	for _, x := range v {
		dst = order.AppendUint16(dst, uint16(x))
	}
	return dst
}

func (v Longs) appendTo(dst []byte, order EndianEngine) []byte {
	for _, x := range v {
		dst = order.AppendUint32(dst, x)
	}
	return dst
}

func (v SLongs) appendTo(dst []byte, order EndianEngine) []byte {
	for _, x := range v {
		dst = order.AppendUint32(dst, uint32(x))
	}
	return dst
}

func (v Rationals) appendTo(dst []byte, order EndianEngine) []byte {
	for _, x := range v {
		dst = order.AppendUint32(dst, x.Num)
		dst = order.AppendUint32(dst, x.Den)
	}
	return dst
}

func (v SRationals) appendTo(dst []byte, order EndianEngine) []byte {
	for _, x := range v {
		dst = order.AppendUint32(dst, uint32(x.Num))
		dst = order.AppendUint32(dst, uint32(x.Den))
	}
	return dst
}

func (v Floats) appendTo(dst []byte, order EndianEngine) []byte {
	for _, x := range v {
		dst = order.AppendUint32(dst, math.Float32bits(x))
	}
	return dst
}

func (v Doubles) appendTo(dst []byte, order EndianEngine) []byte {
	for _, x := range v {
		dst = order.AppendUint64(dst, math.Float64bits(x))
	}
	return dst
}

func (v Undefined) appendTo(dst []byte, _ EndianEngine) []byte {
	return append(dst, v...)
}

func (v IFDs) appendTo(dst []byte, order EndianEngine) []byte {
	return Longs(v).appendTo(dst, order)
}

func (v Text) appendTo(dst []byte, _ EndianEngine) []byte {
	dst = append(dst, v...)
	return append(dst, 0)
}

func (v Opaque) appendTo(dst []byte, _ EndianEngine) []byte {
	return append(dst, v.Raw...)
}

// valueSize returns the number of bytes a value occupies when encoded.
// Opaque values always occupy the 4-byte value field.
func valueSize(v Value) uint64 {
	if op, ok := v.(Opaque); ok {
		return uint64(len(op.Raw))
	}
	return uint64(v.Type().Size()) * uint64(v.Count())
}

// DecodeValue decodes count elements of type typ at offset off in w. For
// an unknown type, off must be the position of the entry's 4-byte value
// field, which is returned as an Opaque value.
func DecodeValue(w Window, typ Type, count uint32, off uint32) (Value, error) {
	if !typ.Known() {
		raw, err := w.Bytes(off, 4)
		if err != nil {
			return nil, err
		}
		return Opaque{Code: typ, N: count, Raw: append([]byte(nil), raw...)}, nil
	}
	need := uint64(typ.Size()) * uint64(count)
	if uint64(off)+need > uint64(w.Len()) {
		have := uint32(0)
		if off < w.Len() {
			have = w.Len() - off
		}
		return nil, &MalformedValueError{Type: typ, Count: count, Offset: off, Need: need, Have: have}
	}
	data, err := w.Bytes(off, uint32(need))
	if err != nil {
		return nil, err
	}
	order := w.Order()
	switch typ {
	case BYTE:
		return Bytes(append([]byte(nil), data...)), nil
	case UNDEFINED:
		return Undefined(append([]byte(nil), data...)), nil
	case ASCII:
		// The count includes the terminator, but it is sometimes missing.
		return Text(strings.TrimSuffix(string(data), "\x00")), nil
	case SBYTE:
		v := make(SBytes, count)
		for i := range v {
			v[i] = int8(data[i])
		}
		return v, nil
	case SHORT:
		v := make(Shorts, count)
		for i := range v {
			v[i] = order.Uint16(data[i*2:])
		}
		return v, nil
	case SSHORT:
		v := make(SShorts, count)
		for i := range v {
			v[i] = int16(order.Uint16(data[i*2:]))
		}
		return v, nil
	case LONG:
		v := make(Longs, count)
		for i := range v {
			v[i] = order.Uint32(data[i*4:])
		}
		return v, nil
	case IFD:
		v := make(IFDs, count)
		for i := range v {
			v[i] = order.Uint32(data[i*4:])
		}
		return v, nil
	case SLONG:
		v := make(SLongs, count)
		for i := range v {
			v[i] = int32(order.Uint32(data[i*4:]))
		}
		return v, nil
	case RATIONAL:
		v := make(Rationals, count)
		for i := range v {
			v[i] = Rational{order.Uint32(data[i*8:]), order.Uint32(data[i*8+4:])}
		}
		return v, nil
	case SRATIONAL:
		v := make(SRationals, count)
		for i := range v {
			v[i] = SRational{int32(order.Uint32(data[i*8:])), int32(order.Uint32(data[i*8+4:]))}
		}
		return v, nil
	case FLOAT:
		v := make(Floats, count)
		for i := range v {
			v[i] = math.Float32frombits(order.Uint32(data[i*4:]))
		}
		return v, nil
	case DOUBLE:
		v := make(Doubles, count)
		for i := range v {
			v[i] = math.Float64frombits(order.Uint64(data[i*8:]))
		}
		return v, nil
	}
	panic("DecodeValue: unhandled known type")
}

// AsInt returns an integral value's ith element.
func AsInt(v Value, i int) (int64, bool) {
	switch v := v.(type) {
	case Bytes:
		if i >= 0 && i < len(v) {
			return int64(v[i]), true
		}
	case SBytes:
		if i >= 0 && i < len(v) {
			return int64(v[i]), true
		}
	case Shorts:
		if i >= 0 && i < len(v) {
			return int64(v[i]), true
		}
	case SShorts:
		if i >= 0 && i < len(v) {
			return int64(v[i]), true
		}
	case Longs:
		if i >= 0 && i < len(v) {
			return int64(v[i]), true
		}
	case SLongs:
		if i >= 0 && i < len(v) {
			return int64(v[i]), true
		}
	case IFDs:
		if i >= 0 && i < len(v) {
			return int64(v[i]), true
		}
	}
	return 0, false
}

// AsRational returns a rational value's ith element.
func AsRational(v Value, i int) (int64, int64, bool) {
	switch v := v.(type) {
	case Rationals:
		if i >= 0 && i < len(v) {
			return int64(v[i].Num), int64(v[i].Den), true
		}
	case SRationals:
		if i >= 0 && i < len(v) {
			return int64(v[i].Num), int64(v[i].Den), true
		}
	}
	return 0, 0, false
}

// AsFloat returns a floating point value's ith element.
func AsFloat(v Value, i int) (float64, bool) {
	switch v := v.(type) {
	case Floats:
		if i >= 0 && i < len(v) {
			return float64(v[i]), true
		}
	case Doubles:
		if i >= 0 && i < len(v) {
			return v[i], true
		}
	}
	return 0, false
}

// AsString returns the text of an ASCII value.
func AsString(v Value) (string, bool) {
	t, ok := v.(Text)
	return string(t), ok
}
