// Package container finds the Exif metadata in a JPEG stream or a bare
// TIFF file, and writes a changed copy of the file.
package container

import (
	"bytes"
	"fmt"

	"github.com/garyhouston/exif66"
	"github.com/garyhouston/exif66/jpegsegs"
)

// Kind is the format of a file.
type Kind int

const (
	JPEG Kind = iota + 1
	TIFF
)

func (k Kind) String() string {
	switch k {
	case JPEG:
		return "JPEG"
	case TIFF:
		return "TIFF"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var (
	tiffLittle = []byte("II*\000")
	tiffBig    = []byte("MM\000*")
)

// Detect returns the format of a file from its first bytes.
func Detect(buf []byte) (Kind, error) {
	switch {
	case jpegsegs.IsJPEGHeader(buf):
		return JPEG, nil
	case bytes.HasPrefix(buf, tiffLittle), bytes.HasPrefix(buf, tiffBig):
		return TIFF, nil
	}
	return 0, fmt.Errorf("%w: neither a JPEG nor a TIFF header", exif66.ErrContainerFormat)
}

// File is a decoded JPEG or TIFF file. A TIFF file is its metadata: its
// image data is carried by the IFDs that locate it.
type File struct {
	Kind   Kind
	stream *jpegsegs.Stream
	meta   *exif66.Metadata
	opts   []exif66.Option
}

// Decode splits a file and parses its metadata.
func Decode(buf []byte, opts ...exif66.Option) (*File, error) {
	kind, err := Detect(buf)
	if err != nil {
		return nil, err
	}
	f := &File{Kind: kind, opts: opts}
	switch kind {
	case JPEG:
		if f.stream, err = jpegsegs.Decode(buf); err != nil {
			return nil, err
		}
		if f.meta, err = f.stream.Exif(opts...); err != nil {
			return nil, err
		}
	case TIFF:
		if f.meta, err = exif66.ParseBytes(buf, opts...); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Metadata returns the file's metadata, or nil if a JPEG file has none.
func (f *File) Metadata() *exif66.Metadata {
	return f.meta
}

// SetMetadata replaces the file's metadata. Nil removes the Exif segment
// of a JPEG file; a TIFF file can't be without metadata.
func (f *File) SetMetadata(m *exif66.Metadata) error {
	if m == nil && f.Kind == TIFF {
		return fmt.Errorf("container: a TIFF file needs metadata")
	}
	f.meta = m
	return nil
}

// EnsureMetadata returns the file's metadata, creating empty metadata
// if there is none.
func (f *File) EnsureMetadata() (*exif66.Metadata, error) {
	if f.meta == nil {
		m, err := exif66.New(f.opts...)
		if err != nil {
			return nil, err
		}
		f.meta = m
	}
	return f.meta, nil
}

// Encode writes the file with its current metadata. Bytes unrelated to
// the metadata are copied unchanged.
func (f *File) Encode() ([]byte, error) {
	switch f.Kind {
	case JPEG:
		stream := *f.stream
		stream.Segments = append([]jpegsegs.Segment(nil), f.stream.Segments...)
		if f.meta == nil {
			stream.RemoveExif()
		} else if err := stream.SetExif(f.meta); err != nil {
			return nil, err
		}
		return stream.Encode()
	case TIFF:
		return f.meta.Serialize()
	}
	return nil, fmt.Errorf("container: unknown kind %v", f.Kind)
}
