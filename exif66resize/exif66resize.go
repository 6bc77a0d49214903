package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/garyhouston/exif66"
	"github.com/garyhouston/exif66/jpegsegs"
	"golang.org/x/image/draw"
)

func usage() {
	fmt.Printf("Usage: %s [-d] <input> <output> <scale>\n", os.Args[0])
	fmt.Println("Optional arguments:")
	fmt.Println("  -d    turn debug output on.")
	fmt.Println("Mandatory arguments:")
	fmt.Println("  input   the input filename, a JPEG image.")
	fmt.Println("  output  filename for saving the changed image.")
	fmt.Println("  scale   scale factor, say 0.5 to resize to half the original size.")
	os.Exit(1)
}

// scale resamples an image by a factor.
func scale(src image.Image, factor float64) (image.Image, error) {
	b := src.Bounds()
	w := int(float64(b.Dx()) * factor)
	h := int(float64(b.Dy()) * factor)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("scale factor %g leaves an empty image", factor)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}

// Resize a JPEG image, keeping its Exif metadata.
func main() {
	var debug bool
	flag.BoolVar(&debug, "d", false, "turn debug output on")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 3 {
		usage()
	}
	input, output := flag.Arg(0), flag.Arg(1)
	factor, err := strconv.ParseFloat(flag.Arg(2), 64)
	if err != nil || factor <= 0 {
		log.Fatalf("Invalid scale factor %q", flag.Arg(2))
	}
	var opts []exif66.Option
	if debug {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, exif66.WithLogger(logger))
	}

	fmt.Printf("Reading file %q.\n", input)
	buf, err := os.ReadFile(input)
	if err != nil {
		log.Fatal(err)
	}
	stream, err := jpegsegs.Decode(buf)
	if err != nil {
		log.Fatal(err)
	}
	meta, err := stream.Exif(opts...)
	if err != nil {
		log.Fatal(err)
	}
	img, err := jpeg.Decode(bytes.NewReader(buf))
	if err != nil {
		log.Fatal(err)
	}
	scaled, err := scale(img, factor)
	if err != nil {
		log.Fatal(err)
	}
	var encoded bytes.Buffer
	if err := jpeg.Encode(&encoded, scaled, nil); err != nil {
		log.Fatal(err)
	}
	out := encoded.Bytes()
	if meta != nil {
		scaledStream, err := jpegsegs.Decode(out)
		if err != nil {
			log.Fatal(err)
		}
		if err := scaledStream.SetExif(meta); err != nil {
			log.Fatal(err)
		}
		if out, err = scaledStream.Encode(); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Printf("Writing file %q.\n", output)
	if err := os.WriteFile(output, out, 0644); err != nil {
		log.Fatal(err)
	}
}
