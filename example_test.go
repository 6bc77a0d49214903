package exif66_test

import (
	"encoding/binary"
	"fmt"
	"log"

	"github.com/garyhouston/exif66"
)

func ExampleMetadata_Set() {
	m, err := exif66.New(exif66.WithByteOrder(binary.LittleEndian))
	if err != nil {
		log.Fatal(err)
	}
	if err := m.Set(exif66.Orientation, exif66.Shorts{6}); err != nil {
		log.Fatal(err)
	}
	if err := m.Set(exif66.DateTimeOriginal, exif66.Text("2006:01:02 15:04:05")); err != nil {
		log.Fatal(err)
	}
	buf, err := m.Serialize()
	if err != nil {
		log.Fatal(err)
	}

	parsed, err := exif66.ParseBytes(buf)
	if err != nil {
		log.Fatal(err)
	}
	v, _ := parsed.Get(exif66.DateTimeOriginal)
	date, _ := exif66.AsString(v)
	v, _ = parsed.Get(exif66.Orientation)
	orientation, _ := exif66.AsInt(v, 0)
	fmt.Println(date, orientation)
	// Output: 2006:01:02 15:04:05 6
}

func ExampleMetadata_Walk() {
	m, err := exif66.New()
	if err != nil {
		log.Fatal(err)
	}
	if err := m.Set(exif66.ExposureTime, exif66.Rationals{{Num: 1, Den: 125}}); err != nil {
		log.Fatal(err)
	}
	gps, err := m.Ensure(exif66.GPSSpace)
	if err != nil {
		log.Fatal(err)
	}
	if err := m.Dir(gps).Set(exif66.GPSVersionID, exif66.Bytes{2, 3, 0, 0}); err != nil {
		log.Fatal(err)
	}
	err = m.Walk(func(id exif66.DirID, d *exif66.Directory) error {
		fmt.Println(d.Space.Name(), len(d.Entries))
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
	// Output:
	// TIFF 2
	// Exif 1
	// GPS 1
}
