package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/garyhouston/exif66"
	"github.com/garyhouston/exif66/container"
)

// Read and display all the IFDs in the metadata of a JPEG or TIFF file.
func main() {
	var length uint
	flag.UintVar(&length, "m", 20, "maximum values to print or 0 for no limit")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Printf("Usage: %s [-m max values] file\n", os.Args[0])
		return
	}
	buf, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	file, err := container.Decode(buf)
	if err != nil {
		log.Fatal(err)
	}
	meta := file.Metadata()
	if meta == nil {
		fmt.Printf("%s file without Exif metadata\n", file.Kind)
		return
	}
	err = meta.Walk(func(id exif66.DirID, d *exif66.Directory) error {
		fmt.Println()
		d.Fprint(os.Stdout, uint32(length))
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
	if info, found := meta.MakerNote(); found {
		fmt.Println()
		switch {
		case info.Vendor == "":
			fmt.Println("Maker note of unknown format")
		case info.SelfContained:
			fmt.Printf("%s maker note, self-contained\n", info.Vendor)
		default:
			fmt.Printf("%s maker note\n", info.Vendor)
		}
	}
}
