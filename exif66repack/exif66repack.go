package main

import (
	"fmt"
	"log"
	"os"

	"github.com/garyhouston/exif66/container"
)

// Decode a JPEG or TIFF file, then re-encode its metadata and write the
// file to a new name.
func main() {
	if len(os.Args) != 3 {
		fmt.Printf("Usage: %s file outfile\n", os.Args[0])
		return
	}
	buf, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	file, err := container.Decode(buf)
	if err != nil {
		log.Fatal(err)
	}
	if meta := file.Metadata(); meta != nil {
		meta.Prune()
	}
	out, err := file.Encode()
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(os.Args[2], out, 0644); err != nil {
		log.Fatal(err)
	}
}
