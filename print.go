package exif66

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Helper for Fprint: print up to limit data values (or all if limit is
// 0). Byte data that is cut short is followed by a digest of the whole
// value, so that large opaque values can still be compared.
func printValues(w io.Writer, n int, limit uint32, print func(i int)) {
	count := n
	if limit > 0 && count > int(limit) {
		count = int(limit)
	}
	for i := 0; i < count; i++ {
		print(i)
	}
	if count < n {
		fmt.Fprint(w, " ...")
	}
}

func printDigest(w io.Writer, data []byte, limit uint32) {
	if limit > 0 && len(data) > int(limit) {
		fmt.Fprintf(w, " xxh64:%016x", xxhash.Sum64(data))
	}
}

// Fprint prints an entry's name, type, count, and values up to a given
// limit (or 0 for no limit). Names are looked up in the given tag space.
func (e Entry) Fprint(w io.Writer, space TagSpace, limit uint32) {
	v := e.Value
	if name, found := TagName(space, e.Tag); found {
		fmt.Fprintf(w, "%s %s(%d)", name, v.Type().Name(), v.Count())
	} else {
		fmt.Fprintf(w, "Unknown %d(0x%X) %s(%d)", e.Tag, uint16(e.Tag), v.Type().Name(), v.Count())
	}
	switch v := v.(type) {
	case Text:
		fmt.Fprintf(w, " %q", string(v))
	case Rationals, SRationals:
		printValues(w, int(v.Count()), limit, func(i int) {
			num, den, _ := AsRational(v, i)
			fmt.Fprintf(w, " %d/%d", num, den)
		})
	case Floats, Doubles:
		printValues(w, int(v.Count()), limit, func(i int) {
			f, _ := AsFloat(v, i)
			fmt.Fprintf(w, " %e", f)
		})
	case Undefined:
		printValues(w, len(v), limit, func(i int) {
			fmt.Fprintf(w, " %X", v[i])
		})
		printDigest(w, v, limit)
	case Bytes:
		printValues(w, len(v), limit, func(i int) {
			fmt.Fprintf(w, " %d", v[i])
		})
		printDigest(w, v, limit)
	case Opaque:
		fmt.Fprintf(w, " raw % X", v.Raw)
	default:
		printValues(w, int(v.Count()), limit, func(i int) {
			n, _ := AsInt(v, i)
			fmt.Fprintf(w, " %d", n)
		})
	}
	fmt.Fprintln(w)
}

// Fprint prints a directory's entries and image data.
func (d *Directory) Fprint(w io.Writer, limit uint32) {
	entry := "entries"
	if len(d.Entries) == 1 {
		entry = "entry"
	}
	fmt.Fprintf(w, "%s IFD with %d %s:\n", d.Space.Name(), len(d.Entries), entry)
	for _, e := range d.Entries {
		e.Fprint(w, d.Space, limit)
	}
	for _, id := range d.ImageData {
		name, _ := TagName(TIFFSpace, id.OffsetTag)
		fmt.Fprintf(w, "%s locates %d segments, %d bytes\n", name, len(id.Segments), id.Size())
	}
}
