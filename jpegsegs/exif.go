package jpegsegs

import (
	"bytes"
	"fmt"

	"github.com/garyhouston/exif66"
)

// Exif header, as found at the start of a JPEG APP1 segment.
var exifHeader = []byte("Exif\000\000")

// Size of an Exif header.
const ExifHeaderSize = 6

// IsExif indicates if a segment holds Exif data.
func IsExif(seg Segment) bool {
	return seg.Marker == APP1 && bytes.HasPrefix(seg.Data, exifHeader)
}

// ExifIndex returns the index of the first Exif segment, or -1.
func (s *Stream) ExifIndex() int {
	for i := range s.Segments {
		if IsExif(s.Segments[i]) {
			return i
		}
	}
	return -1
}

// Exif parses the first Exif segment. It returns nil metadata and no
// error if there is no Exif segment. Offsets are relative to the byte
// following the Exif header.
func (s *Stream) Exif(opts ...exif66.Option) (*exif66.Metadata, error) {
	i := s.ExifIndex()
	if i < 0 {
		return nil, nil
	}
	tiff := s.Segments[i].Data[ExifHeaderSize:]
	m, err := exif66.Parse(exif66.NewWindow(tiff, nil), opts...)
	if err != nil {
		return nil, fmt.Errorf("jpegsegs: Exif segment %d: %w", i, err)
	}
	return m, nil
}

// MakeExifSegment serializes metadata into APP1 segment data.
func MakeExifSegment(m *exif66.Metadata) ([]byte, error) {
	tiff, err := m.Serialize()
	if err != nil {
		return nil, err
	}
	if len(tiff)+ExifHeaderSize > MaxSegmentSize {
		return nil, &FormatError{-1, fmt.Sprintf("Exif data is too long (%d), max %d", len(tiff), MaxSegmentSize-ExifHeaderSize)}
	}
	data := make([]byte, 0, ExifHeaderSize+len(tiff))
	data = append(data, exifHeader...)
	return append(data, tiff...), nil
}

// SetExif replaces the Exif segment with serialized metadata, or inserts
// one straight after the SOI marker if there is none. The stream is left
// unchanged on error.
func (s *Stream) SetExif(m *exif66.Metadata) error {
	data, err := MakeExifSegment(m)
	if err != nil {
		return err
	}
	seg := Segment{APP1, data}
	if i := s.ExifIndex(); i >= 0 {
		s.Segments[i] = seg
		return nil
	}
	s.Segments = append(s.Segments, Segment{})
	copy(s.Segments[1:], s.Segments)
	s.Segments[0] = seg
	return nil
}

// RemoveExif deletes every Exif segment and reports whether there were
// any.
func (s *Stream) RemoveExif() bool {
	segments := s.Segments[:0]
	for _, seg := range s.Segments {
		if !IsExif(seg) {
			segments = append(segments, seg)
		}
	}
	removed := len(segments) != len(s.Segments)
	s.Segments = segments
	return removed
}
