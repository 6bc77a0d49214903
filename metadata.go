package exif66

import (
	"fmt"
)

// Metadata is a TIFF structure: a byte order and a tree of IFDs held in
// an arena and referenced by DirID. The primary IFD (IFD0) is always
// DirID 0; the thumbnail IFD (IFD1) is the next IFD in its chain.
//
// A Metadata must not be used from several goroutines at once.
type Metadata struct {
	Order EndianEngine
	dirs  []*Directory
	cfg   Config
}

// New creates metadata with an empty primary IFD.
func New(opts ...Option) (*Metadata, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		Order: cfg.Order,
		dirs:  []*Directory{newDirectory(TIFFSpace)},
		cfg:   cfg,
	}, nil
}

// Parse reads metadata from a window that starts with a TIFF header.
// All offsets in the structure are relative to the start of the window.
// The returned metadata doesn't refer to the window's buffer.
func Parse(w Window, opts ...Option) (*Metadata, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	order, ifdPos, err := readHeader(w)
	if err != nil {
		return nil, err
	}
	p := newTreeParser(w.WithOrder(order), &cfg)
	if _, err := p.parse(ifdPos, TIFFSpace); err != nil {
		return nil, err
	}
	cfg.Order = order
	return &Metadata{Order: order, dirs: p.dirs, cfg: cfg}, nil
}

// ParseBytes reads metadata from a buffer that starts with a TIFF header.
func ParseBytes(buf []byte, opts ...Option) (*Metadata, error) {
	return Parse(NewWindow(buf, nil), opts...)
}

// Dir returns a directory, or nil if id doesn't refer to one.
func (m *Metadata) Dir(id DirID) *Directory {
	if id < 0 || int(id) >= len(m.dirs) {
		return nil
	}
	return m.dirs[id]
}

// Primary returns the primary IFD.
func (m *Metadata) Primary() *Directory {
	return m.dirs[0]
}

// Thumbnail returns the IFD following the primary IFD, or nil.
func (m *Metadata) Thumbnail() *Directory {
	return m.Dir(m.Primary().Next)
}

// Walk calls fn for every reachable directory, in the order they are
// serialized. It stops at the first error from fn.
func (m *Metadata) Walk(fn func(id DirID, d *Directory) error) error {
	places, err := m.layout()
	if err != nil {
		return err
	}
	for _, p := range places {
		if err := fn(p.id, m.dirs[p.id]); err != nil {
			return err
		}
	}
	return nil
}

// primaryTree returns the primary IFD and the IFDs it refers to,
// excluding its chain, in layout order.
func (m *Metadata) primaryTree() []DirID {
	var ids []DirID
	seen := make(map[DirID]bool)
	var visit func(id DirID)
	visit = func(id DirID) {
		seen[id] = true
		ids = append(ids, id)
		for _, sub := range m.dirs[id].sortedSubs() {
			for c := sub.Dir; m.Dir(c) != nil && !seen[c]; c = m.dirs[c].Next {
				visit(c)
			}
		}
	}
	visit(0)
	return ids
}

// Lookup returns the first directory of the given space in the primary
// IFD's tree, or NoDir. TIFFSpace returns the primary IFD.
func (m *Metadata) Lookup(space TagSpace) DirID {
	for _, id := range m.primaryTree() {
		if m.dirs[id].Space == space {
			return id
		}
	}
	return NoDir
}

// attach adds a new directory referred to by a pointer entry in parent.
func (m *Metadata) attach(parent DirID, tag Tag, space TagSpace) DirID {
	id := DirID(len(m.dirs))
	m.dirs = append(m.dirs, newDirectory(space))
	d := m.dirs[parent]
	d.insert(Entry{tag, Longs{0}})
	d.Subs = append(d.Subs, SubDir{Tag: tag, Index: 0, Dir: id})
	return id
}

// Ensure returns the directory of the given space, creating it and the
// pointer entries that lead to it if necessary. Exif and GPS IFDs hang
// off the primary IFD and the Interoperability IFD off the Exif IFD.
func (m *Metadata) Ensure(space TagSpace) (DirID, error) {
	if id := m.Lookup(space); id != NoDir {
		return id, nil
	}
	switch space {
	case ExifSpace:
		return m.attach(0, ExifIFD, ExifSpace), nil
	case GPSSpace:
		return m.attach(0, GPSIFD, GPSSpace), nil
	case InteropSpace:
		exif, err := m.Ensure(ExifSpace)
		if err != nil {
			return NoDir, err
		}
		return m.attach(exif, InteropIFD, InteropSpace), nil
	}
	return NoDir, fmt.Errorf("exif66: can't create a %s IFD", space.Name())
}

// EnsureThumbnail returns the thumbnail IFD, creating an empty one if
// necessary.
func (m *Metadata) EnsureThumbnail() DirID {
	if next := m.Primary().Next; next != NoDir {
		return next
	}
	id := DirID(len(m.dirs))
	m.dirs = append(m.dirs, newDirectory(TIFFSpace))
	m.Primary().Next = id
	return id
}

// Get returns the value of the first entry with the given tag in the
// primary IFD or the IFDs it refers to. The thumbnail IFD isn't searched.
func (m *Metadata) Get(tag Tag) (Value, bool) {
	for _, id := range m.primaryTree() {
		if v, found := m.dirs[id].Get(tag); found {
			return v, true
		}
	}
	return nil, false
}

// Set replaces the entry that Get would return. If there is none, the
// entry is added to the Exif IFD for known Exif tags, and to the primary
// IFD otherwise.
func (m *Metadata) Set(tag Tag, v Value) error {
	for _, id := range m.primaryTree() {
		d := m.dirs[id]
		if _, found := d.Get(tag); found {
			return d.Set(tag, v)
		}
	}
	target := DirID(0)
	_, tiffTag := TagName(TIFFSpace, tag)
	if _, exifTag := TagName(ExifSpace, tag); exifTag && !tiffTag {
		var err error
		if target, err = m.Ensure(ExifSpace); err != nil {
			return err
		}
	}
	return m.dirs[target].Set(tag, v)
}

// Remove deletes the entry that Get would return, detaching any IFD it
// points to. It reports whether an entry was removed.
func (m *Metadata) Remove(tag Tag) bool {
	for _, id := range m.primaryTree() {
		if m.dirs[id].Remove(tag) {
			return true
		}
	}
	return false
}

// ThumbnailData returns the JPEG thumbnail, or nil.
func (m *Metadata) ThumbnailData() []byte {
	thumb := m.Thumbnail()
	if thumb == nil {
		return nil
	}
	segments := thumb.GetImageData(JPEGInterchangeImageData)
	if len(segments) != 1 {
		return nil
	}
	return segments[0]
}

// SetThumbnail stores a JPEG thumbnail in the thumbnail IFD, creating it
// if necessary.
func (m *Metadata) SetThumbnail(jpeg []byte) error {
	if !m.cfg.ImageData {
		return fmt.Errorf("exif66: thumbnail needs image data relocation")
	}
	thumb := m.dirs[m.EnsureThumbnail()]
	if _, found := thumb.Get(Compression); !found {
		if err := thumb.Set(Compression, Shorts{6}); err != nil {
			return err
		}
	}
	thumb.SetImageData(JPEGInterchangeImageData, [][]byte{append([]byte(nil), jpeg...)})
	return nil
}

// isEmpty indicates if a directory has nothing worth keeping.
func (d *Directory) isEmpty() bool {
	return len(d.Entries) == 0 && d.Next == NoDir
}

// dropSub removes the k'th sub-IFD link along with its offset in the
// pointer entry, and the entry itself when no offsets remain.
func (d *Directory) dropSub(k int) {
	sub := d.Subs[k]
	d.Subs = append(d.Subs[:k], d.Subs[k+1:]...)
	i := d.index(sub.Tag)
	if i < 0 {
		return
	}
	offsets := pointerOffsets(d.Space, d.Entries[i])
	if len(offsets) <= 1 {
		d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
		return
	}
	rest := make([]uint32, 0, len(offsets)-1)
	rest = append(rest, offsets[:sub.Index]...)
	rest = append(rest, offsets[sub.Index+1:]...)
	if _, ok := d.Entries[i].Value.(IFDs); ok {
		d.Entries[i].Value = IFDs(rest)
	} else {
		d.Entries[i].Value = Longs(rest)
	}
	for j := range d.Subs {
		if d.Subs[j].Tag == sub.Tag && d.Subs[j].Index > sub.Index {
			d.Subs[j].Index--
		}
	}
}

// Prune removes sub-IFDs that have no entries, together with the
// entries that point to them, and an empty thumbnail IFD. The primary
// IFD is always kept.
func (m *Metadata) Prune() {
	// prune handles the chain starting at id. Empty directories at the
	// end of the chain are unlinked from the back.
	var prune func(id DirID)
	prune = func(id DirID) {
		var chain []DirID
		for c := id; c != NoDir; c = m.dirs[c].Next {
			chain = append(chain, c)
		}
		for _, c := range chain {
			d := m.dirs[c]
			for k := 0; k < len(d.Subs); {
				prune(d.Subs[k].Dir)
				if m.dirs[d.Subs[k].Dir].isEmpty() {
					d.dropSub(k)
					continue
				}
				k++
			}
		}
		for i := len(chain) - 1; i > 0; i-- {
			if m.dirs[chain[i]].isEmpty() {
				m.dirs[chain[i-1]].Next = NoDir
			}
		}
	}
	if _, err := m.layout(); err != nil {
		// A tree with a loop can't be pruned safely.
		return
	}
	prune(0)
}
