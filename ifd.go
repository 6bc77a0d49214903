package exif66

import (
	"fmt"
	"sort"
)

// DirID identifies a directory in a Metadata's arena.
type DirID int

// NoDir is the DirID of a missing directory.
const NoDir DirID = -1

// Size of an IFD entry.
const entrySize = 12

// Entry is an IFD entry and its decoded value.
type Entry struct {
	Tag   Tag
	Value Value
}

// SubDir links the Index'th offset of a pointer entry to the directory it
// refers to. Only SubIFDs entries have more than one offset.
type SubDir struct {
	Tag   Tag
	Index uint32
	Dir   DirID
}

// Directory is an IFD with links to the directories it refers to.
type Directory struct {
	Space   TagSpace
	Entries []Entry
	Subs    []SubDir
	Next    DirID
	// Offset is the position the directory was parsed from, or 0.
	Offset    uint32
	ImageData []ImageData
}

func newDirectory(space TagSpace) *Directory {
	return &Directory{Space: space, Next: NoDir}
}

// TableSize returns the serialized size of the IFD itself, excluding
// values that don't fit in their entries.
func (d *Directory) TableSize() uint32 {
	// 2 bytes for the entry count, 12 for each entry, and 4 for the
	// position of the next ifd.
	return 2 + uint32(len(d.Entries))*entrySize + 4
}

func (d *Directory) index(tag Tag) int {
	for i := range d.Entries {
		if d.Entries[i].Tag == tag {
			return i
		}
	}
	return -1
}

// Get returns the value of the entry with the given tag.
func (d *Directory) Get(tag Tag) (Value, bool) {
	if i := d.index(tag); i >= 0 {
		return d.Entries[i].Value, true
	}
	return nil, false
}

// Set replaces the value of the entry with the given tag, or inserts a
// new entry before the first entry with a higher tag. Sub-IFD pointers
// can't be set this way. Setting an offset or size field of image data
// detaches the data, and the value is then written as given.
func (d *Directory) Set(tag Tag, v Value) error {
	if v == nil {
		return fmt.Errorf("exif66: nil value for tag 0x%04X", uint16(tag))
	}
	if isPointerTag(d.Space, tag) || v.Type() == IFD {
		return fmt.Errorf("%w: 0x%04X", ErrPointerTag, uint16(tag))
	}
	if i := d.index(tag); i >= 0 {
		if isPointerTag(d.Space, d.Entries[i].Tag) || d.Entries[i].Value.Type() == IFD {
			return fmt.Errorf("%w: 0x%04X", ErrPointerTag, uint16(tag))
		}
		d.detachImageData(tag)
		d.Entries[i].Value = v
		return nil
	}
	d.insert(Entry{tag, v})
	return nil
}

func (d *Directory) insert(e Entry) {
	i := sort.Search(len(d.Entries), func(i int) bool { return d.Entries[i].Tag > e.Tag })
	d.Entries = append(d.Entries, Entry{})
	copy(d.Entries[i+1:], d.Entries[i:])
	d.Entries[i] = e
}

// Remove deletes the entry with the given tag, detaching any directories
// it points to. Removing either field of image data removes the data and
// both fields. It reports whether an entry was removed.
func (d *Directory) Remove(tag Tag) bool {
	i := d.index(tag)
	if i < 0 {
		return false
	}
	d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
	subs := d.Subs[:0]
	for _, sub := range d.Subs {
		if sub.Tag != tag {
			subs = append(subs, sub)
		}
	}
	d.Subs = subs
	for _, other := range d.detachImageData(tag) {
		if j := d.index(other); j >= 0 {
			d.Entries = append(d.Entries[:j], d.Entries[j+1:]...)
		}
	}
	return true
}

// detachImageData drops the image data located by tag and returns the
// other field of each pair.
func (d *Directory) detachImageData(tag Tag) []Tag {
	var others []Tag
	kept := d.ImageData[:0]
	for _, id := range d.ImageData {
		if id.OffsetTag == tag {
			others = append(others, id.SizeTag)
		} else if id.SizeTag == tag {
			others = append(others, id.OffsetTag)
		} else {
			kept = append(kept, id)
		}
	}
	d.ImageData = kept
	return others
}

// Indicate if a tag refers to other IFDs in an IFD of the given space.
// Entries of type IFD are pointers in any space.
func isPointerTag(space TagSpace, tag Tag) bool {
	switch space {
	case TIFFSpace:
		return tag == SubIFDs || tag == ExifIFD || tag == GPSIFD
	case ExifSpace:
		return tag == InteropIFD
	}
	return false
}

// pointerOffsets returns the offsets held by a pointer entry, or nil if
// the entry isn't a pointer. A pointer tag with a non-integral type is
// left alone and round-tripped as data.
func pointerOffsets(space TagSpace, e Entry) []uint32 {
	switch v := e.Value.(type) {
	case IFDs:
		return v
	case Longs:
		if isPointerTag(space, e.Tag) {
			return v
		}
	}
	return nil
}

// Return the space of a sub-IFD referred to by tag in an IFD of the
// given space.
func subSpace(space TagSpace, tag Tag) TagSpace {
	switch space {
	case TIFFSpace:
		switch tag {
		case SubIFDs:
			return TIFFSpace
		case ExifIFD:
			return ExifSpace
		case GPSIFD:
			return GPSSpace
		}
	case ExifSpace:
		if tag == InteropIFD {
			return InteropSpace
		}
	}
	return UnknownSpace
}

// Return the space of the IFD following one in the given space.
func nextSpace(space TagSpace) TagSpace {
	if space == ExifSpace {
		// The next IFD after an Exif IFD is a thumbnail encoded
		// as TIFF.
		return TIFFSpace
	}
	return space
}

// Maximum nesting of sub-IFDs below IFD0. Real files nest three deep
// (IFD0, Exif, Interop).
const maxSubIFDDepth = 32

// treeParser reads a tree of IFDs from a window. visited records the
// offsets of IFDs already read, so that loops can be detected.
type treeParser struct {
	w       Window
	cfg     *Config
	dirs    []*Directory
	visited map[uint32]bool
	depth   int
}

func newTreeParser(w Window, cfg *Config) *treeParser {
	return &treeParser{w: w, cfg: cfg, visited: make(map[uint32]bool)}
}

// parse reads the chain of IFDs starting at pos and every IFD they refer
// to, returning the DirID of the first. Chains are followed iteratively;
// only sub-IFDs deepen the recursion.
func (p *treeParser) parse(pos uint32, space TagSpace) (DirID, error) {
	first, prev := NoDir, NoDir
	for pos != 0 {
		id, next, err := p.parseDir(pos, space)
		if err != nil {
			return NoDir, err
		}
		if prev == NoDir {
			first = id
		} else {
			p.dirs[prev].Next = id
		}
		prev = id
		pos = next
		space = nextSpace(space)
	}
	return first, nil
}

// parseDir reads the IFD at pos and the sub-IFDs it refers to, returning
// its DirID and the position of the next IFD in its chain.
func (p *treeParser) parseDir(pos uint32, space TagSpace) (DirID, uint32, error) {
	if p.visited[pos] {
		return NoDir, 0, &ChainCycleError{Offset: pos}
	}
	p.visited[pos] = true
	d, next, err := p.parseTable(pos, space)
	if err != nil {
		return NoDir, 0, err
	}
	id := DirID(len(p.dirs))
	p.dirs = append(p.dirs, d)
	p.cfg.debug("ifd", "offset", pos, "space", space.Name(), "entries", len(d.Entries), "next", next)

	if space == TIFFSpace && p.cfg.ImageData {
		if d.ImageData, err = getImageData(p.w, d, TIFFImageData); err != nil {
			return NoDir, 0, &DirectoryError{Offset: pos, Entry: -1, Err: err}
		}
	}
	for i := range d.Entries {
		offsets := pointerOffsets(space, d.Entries[i])
		for j, off := range offsets {
			if off == 0 {
				continue
			}
			tag := d.Entries[i].Tag
			if p.depth == maxSubIFDDepth {
				return NoDir, 0, &DirectoryError{Offset: pos, Entry: i, Tag: tag,
					Err: fmt.Errorf("%w: sub-IFDs nested more than %d deep", ErrTooDeep, maxSubIFDDepth)}
			}
			p.depth++
			child, err := p.parse(off, subSpace(space, tag))
			p.depth--
			if err != nil {
				return NoDir, 0, err
			}
			d.Subs = append(d.Subs, SubDir{Tag: tag, Index: uint32(j), Dir: child})
		}
	}
	return id, next, nil
}

// parseTable reads the entries of the IFD at pos and the position of
// the next IFD.
func (p *treeParser) parseTable(pos uint32, space TagSpace) (*Directory, uint32, error) {
	count, err := p.w.Short(pos)
	if err != nil {
		return nil, 0, &DirectoryError{Offset: pos, Entry: -1, Err: err}
	}
	d := newDirectory(space)
	d.Offset = pos
	d.Entries = make([]Entry, 0, count)
	rec := pos + 2
	for i := 0; i < int(count); i++ {
		e, err := p.parseEntry(rec)
		if err != nil {
			return nil, 0, &DirectoryError{Offset: pos, Entry: i, Tag: e.Tag, Err: err}
		}
		p.cfg.debug("entry", "ifd", pos, "tag", fmt.Sprintf("0x%04X", uint16(e.Tag)), "type", e.Value.Type().Name(), "count", e.Value.Count())
		d.Entries = append(d.Entries, e)
		rec += entrySize
	}
	next, err := p.w.Long(rec)
	if err != nil {
		return nil, 0, &DirectoryError{Offset: pos, Entry: -1, Err: err}
	}
	return d, next, nil
}

// parseEntry reads the 12-byte entry at rec. On failure the returned
// entry holds the tag, if it could be read.
func (p *treeParser) parseEntry(rec uint32) (Entry, error) {
	var e Entry
	tag, err := p.w.Short(rec)
	if err != nil {
		return e, err
	}
	e.Tag = Tag(tag)
	typ, err := p.w.Short(rec + 2)
	if err != nil {
		return e, err
	}
	count, err := p.w.Long(rec + 4)
	if err != nil {
		return e, err
	}
	t := Type(typ)
	valuePos := rec + 8
	if t.Known() && uint64(t.Size())*uint64(count) > 4 {
		if valuePos, err = p.w.Long(valuePos); err != nil {
			return e, err
		}
	}
	e.Value, err = DecodeValue(p.w, t, count, valuePos)
	return e, err
}
