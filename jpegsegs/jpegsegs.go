// Package jpegsegs splits a JPEG stream into its markers and segments
// up to the start of scan, and puts it back together. Segment data isn't
// decoded, except for locating the Exif APP1 segment.
package jpegsegs

import (
	"fmt"

	"github.com/garyhouston/exif66"
)

const (
	TEM  = 0x01
	SOF0 = 0xC0 // SOFn = SOF0+n, n = 0-15 excluding 4, 8 and 12
	DHT  = 0xC4
	JPG  = 0xC8
	DAC  = 0xCC
	RST0 = 0xD0 // RSTn = RST0+n, n = 0-7
	SOI  = 0xD8
	EOI  = 0xD9
	SOS  = 0xDA
	DQT  = 0xDB
	DNL  = 0xDC
	DRI  = 0xDD
	DHP  = 0xDE
	EXP  = 0xDF
	APP0 = 0xE0 // APPn = APP0+n, n = 0-15
	APP1 = APP0 + 1
	JPG0 = 0xF0 // JPGn = JPG0+n  n = 0-13
	COM  = 0xFE
)

// Marker represents a JPEG marker, which usually indicates the start of a
// segment.
type Marker uint8

var markerNames [256]string

func init() {
	markerNames[0] = "NUL"
	markerNames[TEM] = "TEM"
	markerNames[DHT] = "DHT"
	markerNames[JPG] = "JPG"
	markerNames[DAC] = "DAC"
	markerNames[SOI] = "SOI"
	markerNames[EOI] = "EOI"
	markerNames[SOS] = "SOS"
	markerNames[DQT] = "DQT"
	markerNames[DNL] = "DNL"
	markerNames[DRI] = "DRI"
	markerNames[DHP] = "DHP"
	markerNames[EXP] = "EXP"
	markerNames[COM] = "COM"
	markerNames[0xFF] = "FILL"

	for i := 0x02; i <= 0xBF; i++ {
		markerNames[i] = fmt.Sprintf("RES%.2X", i) // Reserved
	}
	for i := SOF0; i <= SOF0+0xF; i++ {
		if i == SOF0+4 || i == SOF0+8 || i == SOF0+12 {
			continue
		}
		markerNames[i] = fmt.Sprintf("SOF%d", i-SOF0)
	}
	for i := RST0; i <= RST0+7; i++ {
		markerNames[i] = fmt.Sprintf("RST%d", i-RST0)
	}
	for i := APP0; i <= APP0+0xF; i++ {
		markerNames[i] = fmt.Sprintf("APP%d", i-APP0)
	}
	for i := JPG0; i <= JPG0+0xD; i++ {
		markerNames[i] = fmt.Sprintf("JPG%d", i-JPG0)
	}
}

// Name returns the name of a marker value.
func (m Marker) Name() string {
	return markerNames[m]
}

// Standalone indicates if a marker has no segment data following it.
func (m Marker) Standalone() bool {
	return m == TEM || m == SOI || m == EOI || (m >= RST0 && m <= RST0+7)
}

// Size of a JPEG file header.
const HeaderSize = 2

// Maximum segment data length: the length field is 16 bits and counts
// itself.
const MaxSegmentSize = 1<<16 - 1 - 2

// IsJPEGHeader indicates if a buffer starts with a SOI marker.
func IsJPEGHeader(buf []byte) bool {
	return len(buf) >= HeaderSize && buf[0] == 0xFF && buf[1] == SOI
}

// FormatError describes an invalid JPEG stream.
type FormatError struct {
	Offset int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("jpegsegs: %s at offset %d", e.Reason, e.Offset)
}

func (e *FormatError) Is(target error) bool {
	return target == exif66.ErrContainerFormat
}

// Segment represents a marker and its segment data.
type Segment struct {
	Marker Marker
	Data   []byte
}

// Stream is a JPEG stream split into the segments before the image data
// and the rest of the stream, starting with the SOS (or EOI) marker,
// which is kept as it is.
type Stream struct {
	Segments []Segment
	Tail     []byte
}

// Decode splits a JPEG stream. The SOI marker must come first. Fill
// bytes before markers are discarded. Segment data is copied, so buf may
// be reused afterwards.
func Decode(buf []byte) (*Stream, error) {
	if !IsJPEGHeader(buf) {
		return nil, &FormatError{0, "SOI marker not found"}
	}
	stream := &Stream{Segments: make([]Segment, 0, 20)}
	pos := HeaderSize
	for {
		if pos >= len(buf) {
			return nil, &FormatError{pos, "unexpected end of stream before SOS"}
		}
		if buf[pos] != 0xFF {
			return nil, &FormatError{pos, fmt.Sprintf("0xFF expected in marker, found 0x%.2X", buf[pos])}
		}
		start := pos
		// Skip 0xFF fill bytes.
		for pos < len(buf) && buf[pos] == 0xFF {
			pos++
		}
		if pos >= len(buf) {
			return nil, &FormatError{start, "truncated marker"}
		}
		marker := Marker(buf[pos])
		pos++
		switch {
		case marker == 0:
			return nil, &FormatError{start, "invalid marker 0"}
		case marker == SOI:
			return nil, &FormatError{start, "unexpected SOI marker"}
		case marker == SOS || marker == EOI:
			stream.Tail = append([]byte(nil), buf[pos-2:]...)
			return stream, nil
		case marker.Standalone():
			stream.Segments = append(stream.Segments, Segment{marker, nil})
			continue
		}
		if pos+2 > len(buf) {
			return nil, &FormatError{pos, fmt.Sprintf("truncated %s length", marker.Name())}
		}
		length := int(buf[pos])<<8 | int(buf[pos+1])
		if length < 2 {
			return nil, &FormatError{pos, fmt.Sprintf("%s length %d less than 2", marker.Name(), length)}
		}
		if pos+length > len(buf) {
			return nil, &FormatError{pos, fmt.Sprintf("%s length %d exceeds the %d bytes remaining", marker.Name(), length, len(buf)-pos)}
		}
		data := append([]byte(nil), buf[pos+2:pos+length]...)
		stream.Segments = append(stream.Segments, Segment{marker, data})
		pos += length
	}
}

// Size returns the length of the encoded stream.
func (s *Stream) Size() int {
	size := HeaderSize + len(s.Tail)
	for _, seg := range s.Segments {
		size += 2
		if !seg.Marker.Standalone() {
			size += 2 + len(seg.Data)
		}
	}
	return size
}

// Encode joins the stream back together. Nothing is returned if any
// segment is too long for its length field.
func (s *Stream) Encode() ([]byte, error) {
	for _, seg := range s.Segments {
		if len(seg.Data) > MaxSegmentSize {
			return nil, &FormatError{-1, fmt.Sprintf("%s data is too long (%d), max %d", seg.Marker.Name(), len(seg.Data), MaxSegmentSize)}
		}
	}
	out := make([]byte, 0, s.Size())
	out = append(out, 0xFF, SOI)
	for _, seg := range s.Segments {
		out = append(out, 0xFF, byte(seg.Marker))
		if seg.Marker.Standalone() {
			continue
		}
		length := len(seg.Data) + 2
		out = append(out, byte(length>>8), byte(length))
		out = append(out, seg.Data...)
	}
	return append(out, s.Tail...), nil
}
