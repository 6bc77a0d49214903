package exif66

import "fmt"

// Type is a TIFF field type code.
type Type uint16

// TIFF data types (uppercase as in the TIFF spec).
const (
	BYTE      Type = 1
	ASCII     Type = 2
	SHORT     Type = 3
	LONG      Type = 4
	RATIONAL  Type = 5
	SBYTE     Type = 6
	UNDEFINED Type = 7
	SSHORT    Type = 8
	SLONG     Type = 9
	SRATIONAL Type = 10
	FLOAT     Type = 11
	DOUBLE    Type = 12
	IFD       Type = 13 // Supplement 1
)

var typeNames = map[Type]string{
	BYTE:      "Byte",
	ASCII:     "ASCII",
	SHORT:     "Short",
	LONG:      "Long",
	RATIONAL:  "Rational",
	SBYTE:     "SByte",
	UNDEFINED: "Undefined",
	SSHORT:    "SShort",
	SLONG:     "SLong",
	SRATIONAL: "SRational",
	FLOAT:     "Float",
	DOUBLE:    "Double",
	IFD:       "IFD",
}

// Name returns the name of a TIFF type, or "Unknown".
func (t Type) Name() string {
	if name, found := typeNames[t]; found {
		return name
	}
	return "Unknown"
}

// Size returns the byte size of a single value of the type, or 0 for an
// unknown type.
func (t Type) Size() uint32 {
	switch t {
	case BYTE, ASCII, SBYTE, UNDEFINED:
		return 1
	case SHORT, SSHORT:
		return 2
	case LONG, SLONG, FLOAT, IFD:
		return 4
	case RATIONAL, SRATIONAL, DOUBLE:
		return 8
	}
	return 0
}

// Known indicates if the type code is defined by TIFF 6.0 or its
// supplements.
func (t Type) Known() bool {
	return t.Size() != 0
}

// Tag is a TIFF field identifier. Its meaning depends on the TagSpace of
// the IFD that contains it.
type Tag uint16

// Tags found in TIFF main IFDs (IFD0, the thumbnail IFD, TIFF SubIFDs).
const (
	NewSubfileType              Tag = 0x0FE
	SubfileType                 Tag = 0x0FF
	ImageWidth                  Tag = 0x100
	ImageLength                 Tag = 0x101
	BitsPerSample               Tag = 0x102
	Compression                 Tag = 0x103
	PhotometricInterpretation   Tag = 0x106
	ImageDescription            Tag = 0x10E
	Make                        Tag = 0x10F
	Model                       Tag = 0x110
	StripOffsets                Tag = 0x111
	Orientation                 Tag = 0x112
	SamplesPerPixel             Tag = 0x115
	RowsPerStrip                Tag = 0x116
	StripByteCounts             Tag = 0x117
	XResolution                 Tag = 0x11A
	YResolution                 Tag = 0x11B
	PlanarConfiguration         Tag = 0x11C
	ResolutionUnit              Tag = 0x128
	TransferFunction            Tag = 0x12D
	Software                    Tag = 0x131
	DateTime                    Tag = 0x132
	Artist                      Tag = 0x13B
	HostComputer                Tag = 0x13C
	Predictor                   Tag = 0x13D
	WhitePoint                  Tag = 0x13E
	PrimaryChromaticities       Tag = 0x13F
	ColorMap                    Tag = 0x140
	TileWidth                   Tag = 0x142
	TileLength                  Tag = 0x143
	TileOffsets                 Tag = 0x144
	TileByteCounts              Tag = 0x145
	SubIFDs                     Tag = 0x14A // Supplement 1
	ExtraSamples                Tag = 0x152
	SampleFormat                Tag = 0x153
	JPEGTables                  Tag = 0x15B // Supplement 2
	JPEGInterchangeFormat       Tag = 0x201
	JPEGInterchangeFormatLength Tag = 0x202
	YCbCrCoefficients           Tag = 0x211
	YCbCrSubSampling            Tag = 0x212
	YCbCrPositioning            Tag = 0x213
	ReferenceBlackWhite         Tag = 0x214
	XMP                         Tag = 0x2BC // XMP part 3
	Copyright                   Tag = 0x8298
	IPTC                        Tag = 0x83BB
	PSIR                        Tag = 0x8649 // Photoshop Image Resources
	ExifIFD                     Tag = 0x8769 // Exif 2.3
	ICCProfile                  Tag = 0x8773
	GPSIFD                      Tag = 0x8825 // Exif 2.3
)

// Tags found in Exif IFDs.
const (
	ExposureTime            Tag = 0x829A
	FNumber                 Tag = 0x829D
	ExposureProgram         Tag = 0x8822
	ISOSpeedRatings         Tag = 0x8827
	ExifVersion             Tag = 0x9000
	DateTimeOriginal        Tag = 0x9003
	DateTimeDigitized       Tag = 0x9004
	ComponentsConfiguration Tag = 0x9101
	ShutterSpeedValue       Tag = 0x9201
	ApertureValue           Tag = 0x9202
	ExposureBiasValue       Tag = 0x9204
	MaxApertureValue        Tag = 0x9205
	MeteringMode            Tag = 0x9207
	Flash                   Tag = 0x9209
	FocalLength             Tag = 0x920A
	MakerNote               Tag = 0x927C
	UserComment             Tag = 0x9286
	SubSecTime              Tag = 0x9290
	FlashpixVersion         Tag = 0xA000
	ColorSpace              Tag = 0xA001
	PixelXDimension         Tag = 0xA002
	PixelYDimension         Tag = 0xA003
	InteropIFD              Tag = 0xA005
	SensingMethod           Tag = 0xA217
	FileSource              Tag = 0xA300
	SceneType               Tag = 0xA301
	CustomRendered          Tag = 0xA401
	ExposureMode            Tag = 0xA402
	WhiteBalance            Tag = 0xA403
	DigitalZoomRatio        Tag = 0xA404
	FocalLengthIn35mmFilm   Tag = 0xA405
	SceneCaptureType        Tag = 0xA406
	ImageUniqueID           Tag = 0xA420
	LensMake                Tag = 0xA433
	LensModel               Tag = 0xA434
)

// Tags found in GPS IFDs.
const (
	GPSVersionID    Tag = 0x00
	GPSLatitudeRef  Tag = 0x01
	GPSLatitude     Tag = 0x02
	GPSLongitudeRef Tag = 0x03
	GPSLongitude    Tag = 0x04
	GPSAltitudeRef  Tag = 0x05
	GPSAltitude     Tag = 0x06
	GPSTimeStamp    Tag = 0x07
	GPSMapDatum     Tag = 0x12
	GPSDateStamp    Tag = 0x1D
)

// Tags found in Interoperability IFDs.
const (
	InteroperabilityIndex   Tag = 0x01
	InteroperabilityVersion Tag = 0x02
)

// TagSpace identifies the tag namespace of an IFD.
type TagSpace uint8

const (
	TIFFSpace    TagSpace = 0
	UnknownSpace TagSpace = 1
	ExifSpace    TagSpace = 2
	GPSSpace     TagSpace = 3
	InteropSpace TagSpace = 4
)

// Name returns the name of a tag space.
func (space TagSpace) Name() string {
	switch space {
	case TIFFSpace:
		return "TIFF"
	case ExifSpace:
		return "Exif"
	case GPSSpace:
		return "GPS"
	case InteropSpace:
		return "Interop"
	case UnknownSpace:
		return "Unknown"
	}
	return fmt.Sprintf("TagSpace(%d)", uint8(space))
}

// TagNames maps tags to names for each tag space.
var TagNames = map[TagSpace]map[Tag]string{
	TIFFSpace: {
		NewSubfileType:              "NewSubfileType",
		SubfileType:                 "SubfileType",
		ImageWidth:                  "ImageWidth",
		ImageLength:                 "ImageLength",
		BitsPerSample:               "BitsPerSample",
		Compression:                 "Compression",
		PhotometricInterpretation:   "PhotometricInterpretation",
		ImageDescription:            "ImageDescription",
		Make:                        "Make",
		Model:                       "Model",
		StripOffsets:                "StripOffsets",
		Orientation:                 "Orientation",
		SamplesPerPixel:             "SamplesPerPixel",
		RowsPerStrip:                "RowsPerStrip",
		StripByteCounts:             "StripByteCounts",
		XResolution:                 "XResolution",
		YResolution:                 "YResolution",
		PlanarConfiguration:         "PlanarConfiguration",
		ResolutionUnit:              "ResolutionUnit",
		TransferFunction:            "TransferFunction",
		Software:                    "Software",
		DateTime:                    "DateTime",
		Artist:                      "Artist",
		HostComputer:                "HostComputer",
		Predictor:                   "Predictor",
		WhitePoint:                  "WhitePoint",
		PrimaryChromaticities:       "PrimaryChromaticities",
		ColorMap:                    "ColorMap",
		TileWidth:                   "TileWidth",
		TileLength:                  "TileLength",
		TileOffsets:                 "TileOffsets",
		TileByteCounts:              "TileByteCounts",
		SubIFDs:                     "SubIFDs",
		ExtraSamples:                "ExtraSamples",
		SampleFormat:                "SampleFormat",
		JPEGTables:                  "JPEGTables",
		JPEGInterchangeFormat:       "JPEGInterchangeFormat",
		JPEGInterchangeFormatLength: "JPEGInterchangeFormatLength",
		YCbCrCoefficients:           "YCbCrCoefficients",
		YCbCrSubSampling:            "YCbCrSubSampling",
		YCbCrPositioning:            "YCbCrPositioning",
		ReferenceBlackWhite:         "ReferenceBlackWhite",
		XMP:                         "XMP",
		Copyright:                   "Copyright",
		IPTC:                        "IPTC",
		PSIR:                        "PSIR",
		ExifIFD:                     "ExifIFD",
		ICCProfile:                  "ICCProfile",
		GPSIFD:                      "GPSIFD",
	},
	ExifSpace: {
		ExposureTime:            "ExposureTime",
		FNumber:                 "FNumber",
		ExposureProgram:         "ExposureProgram",
		ISOSpeedRatings:         "ISOSpeedRatings",
		ExifVersion:             "ExifVersion",
		DateTimeOriginal:        "DateTimeOriginal",
		DateTimeDigitized:       "DateTimeDigitized",
		ComponentsConfiguration: "ComponentsConfiguration",
		ShutterSpeedValue:       "ShutterSpeedValue",
		ApertureValue:           "ApertureValue",
		ExposureBiasValue:       "ExposureBiasValue",
		MaxApertureValue:        "MaxApertureValue",
		MeteringMode:            "MeteringMode",
		Flash:                   "Flash",
		FocalLength:             "FocalLength",
		MakerNote:               "MakerNote",
		UserComment:             "UserComment",
		SubSecTime:              "SubSecTime",
		FlashpixVersion:         "FlashpixVersion",
		ColorSpace:              "ColorSpace",
		PixelXDimension:         "PixelXDimension",
		PixelYDimension:         "PixelYDimension",
		InteropIFD:              "InteropIFD",
		SensingMethod:           "SensingMethod",
		FileSource:              "FileSource",
		SceneType:               "SceneType",
		CustomRendered:          "CustomRendered",
		ExposureMode:            "ExposureMode",
		WhiteBalance:            "WhiteBalance",
		DigitalZoomRatio:        "DigitalZoomRatio",
		FocalLengthIn35mmFilm:   "FocalLengthIn35mmFilm",
		SceneCaptureType:        "SceneCaptureType",
		ImageUniqueID:           "ImageUniqueID",
		LensMake:                "LensMake",
		LensModel:               "LensModel",
	},
	GPSSpace: {
		GPSVersionID:    "GPSVersionID",
		GPSLatitudeRef:  "GPSLatitudeRef",
		GPSLatitude:     "GPSLatitude",
		GPSLongitudeRef: "GPSLongitudeRef",
		GPSLongitude:    "GPSLongitude",
		GPSAltitudeRef:  "GPSAltitudeRef",
		GPSAltitude:     "GPSAltitude",
		GPSTimeStamp:    "GPSTimeStamp",
		GPSMapDatum:     "GPSMapDatum",
		GPSDateStamp:    "GPSDateStamp",
	},
	InteropSpace: {
		InteroperabilityIndex:   "InteroperabilityIndex",
		InteroperabilityVersion: "InteroperabilityVersion",
	},
}

// TagName returns the name of a tag in a tag space, and whether it is
// known.
func TagName(space TagSpace, tag Tag) (string, bool) {
	name, found := TagNames[space][tag]
	return name, found
}
