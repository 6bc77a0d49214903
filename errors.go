package exif66

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by the codec matches one of these
// via errors.Is.
var (
	ErrBounds          = errors.New("exif66: read outside window")
	ErrMalformedValue  = errors.New("exif66: malformed value")
	ErrChainCycle      = errors.New("exif66: IFD reference loop detected")
	ErrContainerFormat = errors.New("exif66: invalid container format")
	ErrUnsupportedType = errors.New("exif66: unsupported type")
	ErrInvalidHeader   = errors.New("exif66: invalid TIFF header")
	ErrPointerTag      = errors.New("exif66: tag is a sub-IFD pointer")
	ErrTooDeep         = errors.New("exif66: sub-IFDs nested too deep")
	ErrTooLarge        = errors.New("exif66: structure too large to encode")
)

// BoundsError reports a read of Size bytes at Offset from a window of
// Length bytes.
type BoundsError struct {
	Offset uint32
	Size   uint32
	Length uint32
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("exif66: read of %d bytes at offset %d outside window of length %d", e.Size, e.Offset, e.Length)
}

func (e *BoundsError) Is(target error) bool {
	return target == ErrBounds
}

// MalformedValueError reports a field whose type and count declare more
// data than the window holds.
type MalformedValueError struct {
	Type   Type
	Count  uint32
	Offset uint32
	Need   uint64
	Have   uint32
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("exif66: %s(%d) at offset %d needs %d bytes, %d available", e.Type.Name(), e.Count, e.Offset, e.Need, e.Have)
}

func (e *MalformedValueError) Is(target error) bool {
	return target == ErrMalformedValue
}

// ChainCycleError reports an IFD offset that was reached twice.
type ChainCycleError struct {
	Offset uint32
}

func (e *ChainCycleError) Error() string {
	return fmt.Sprintf("exif66: IFD reference loop detected at offset %d", e.Offset)
}

func (e *ChainCycleError) Is(target error) bool {
	return target == ErrChainCycle
}

// UnsupportedTypeError reports a value that can't be serialized.
type UnsupportedTypeError struct {
	Tag    Tag
	Type   Type
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("exif66: can't encode tag 0x%04X with type %d: %s", uint16(e.Tag), uint16(e.Type), e.Reason)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// DirectoryError locates a parse failure inside an IFD. Entry is -1 when
// the failure isn't tied to a single entry.
type DirectoryError struct {
	Offset uint32
	Entry  int
	Tag    Tag
	Err    error
}

func (e *DirectoryError) Error() string {
	if e.Entry < 0 {
		return fmt.Sprintf("IFD at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("IFD at offset %d, entry %d (tag 0x%04X): %v", e.Offset, e.Entry, uint16(e.Tag), e.Err)
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}
