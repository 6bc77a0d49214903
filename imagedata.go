package exif66

import "fmt"

// ImageDataSpec names a pair of fields that locate image data: one holds
// an array of offsets and the other an array of sizes, e.g.,
// StripOffsets and StripByteCounts.
type ImageDataSpec struct {
	OffsetTag Tag
	SizeTag   Tag
}

// Image data specifications for TIFF IFDs.
var (
	StripImageData           = ImageDataSpec{StripOffsets, StripByteCounts}
	TileImageData            = ImageDataSpec{TileOffsets, TileByteCounts}
	JPEGInterchangeImageData = ImageDataSpec{JPEGInterchangeFormat, JPEGInterchangeFormatLength}
)

// TIFFImageData lists the image data located by TIFF-space IFDs.
var TIFFImageData = []ImageDataSpec{StripImageData, TileImageData, JPEGInterchangeImageData}

// ImageData holds the segments located by one pair of fields. The
// segments are moved with the IFD when it is serialized, and the offset
// and size fields rewritten to match.
type ImageData struct {
	ImageDataSpec
	Segments [][]byte
}

// Size returns the total length of the segments.
func (id ImageData) Size() uint64 {
	var size uint64
	for _, seg := range id.Segments {
		size += uint64(len(seg))
	}
	return size
}

// getImageData copies the image data located by the fields of d. Fields
// are only used if both members of a pair are present with integral
// types.
func getImageData(w Window, d *Directory, specs []ImageDataSpec) ([]ImageData, error) {
	var imageData []ImageData
	for _, spec := range specs {
		offsets, found := d.Get(spec.OffsetTag)
		if !found {
			continue
		}
		sizes, found := d.Get(spec.SizeTag)
		if !found {
			continue
		}
		if _, ok := AsInt(offsets, 0); !ok {
			continue
		}
		if _, ok := AsInt(sizes, 0); !ok {
			continue
		}
		if offsets.Count() != sizes.Count() {
			return nil, fmt.Errorf("%w: %d offsets in tag 0x%04X but %d sizes in tag 0x%04X", ErrMalformedValue, offsets.Count(), uint16(spec.OffsetTag), sizes.Count(), uint16(spec.SizeTag))
		}
		segments := make([][]byte, offsets.Count())
		for i := range segments {
			off, _ := AsInt(offsets, i)
			size, _ := AsInt(sizes, i)
			seg, err := w.Bytes(uint32(off), uint32(size))
			if err != nil {
				return nil, err
			}
			segments[i] = append([]byte(nil), seg...)
		}
		imageData = append(imageData, ImageData{spec, segments})
	}
	return imageData, nil
}

// relocated returns the image data whose offsets field is written from
// the given segment positions, or false if none.
func (d *Directory) relocated(tag Tag) (ImageData, bool) {
	for _, id := range d.ImageData {
		if id.OffsetTag == tag || id.SizeTag == tag {
			return id, true
		}
	}
	return ImageData{}, false
}

// sizeValue returns the value of the size field for image data. A SHORT
// field stays SHORT while every size fits.
func (id ImageData) sizeValue(old Value) Value {
	if _, short := old.(Shorts); short {
		v := make(Shorts, len(id.Segments))
		fits := true
		for i, seg := range id.Segments {
			if len(seg) > 0xFFFF {
				fits = false
				break
			}
			v[i] = uint16(len(seg))
		}
		if fits {
			return v
		}
	}
	v := make(Longs, len(id.Segments))
	for i, seg := range id.Segments {
		v[i] = uint32(len(seg))
	}
	return v
}

// SetImageData attaches image data to the directory, replacing any with
// the same spec, and sets its offset and size fields. The offsets are
// filled in on serialization.
func (d *Directory) SetImageData(spec ImageDataSpec, segments [][]byte) {
	id := ImageData{spec, segments}
	replaced := false
	for i := range d.ImageData {
		if d.ImageData[i].ImageDataSpec == spec {
			d.ImageData[i] = id
			replaced = true
		}
	}
	if !replaced {
		d.ImageData = append(d.ImageData, id)
	}
	offsets := make(Longs, len(segments))
	if i := d.index(spec.OffsetTag); i >= 0 {
		d.Entries[i].Value = offsets
	} else {
		d.insert(Entry{spec.OffsetTag, offsets})
	}
	var old Value = Longs(nil)
	if i := d.index(spec.SizeTag); i >= 0 {
		old = d.Entries[i].Value
		d.Entries[i].Value = id.sizeValue(old)
	} else {
		d.insert(Entry{spec.SizeTag, id.sizeValue(old)})
	}
}

// GetImageData returns the segments for a spec, or nil.
func (d *Directory) GetImageData(spec ImageDataSpec) [][]byte {
	for _, id := range d.ImageData {
		if id.ImageDataSpec == spec {
			return id.Segments
		}
	}
	return nil
}
