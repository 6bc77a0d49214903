package exif66

import (
	"fmt"
	"math"
	"sort"
)

// Size of a TIFF header.
const HeaderSize = 8

// placement records where a directory is serialized.
type placement struct {
	id   DirID
	pos  uint32
	size uint32 // table and data
}

// Align a size to the next word (2 byte) boundary.
func align(size uint64) uint64 {
	return (size + 1) &^ 1
}

// sortedSubs returns the directory's sub-IFD links in (tag, index) order,
// the order they are laid out in.
func (d *Directory) sortedSubs() []SubDir {
	subs := append([]SubDir(nil), d.Subs...)
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].Tag != subs[j].Tag {
			return subs[i].Tag < subs[j].Tag
		}
		return subs[i].Index < subs[j].Index
	})
	return subs
}

// entryValue returns the value that will be written for entry i, with
// sub-IFD pointers and image data offsets resolved against positions.
// positions may be nil during layout, when only the size matters.
func (m *Metadata) entryValue(d *Directory, i int, positions map[DirID]uint32, segments map[Tag][]uint32) Value {
	e := d.Entries[i]
	if m.cfg.ImageData {
		if id, found := d.relocated(e.Tag); found {
			if id.OffsetTag == e.Tag {
				v := make(Longs, len(id.Segments))
				copy(v, segments[e.Tag])
				return v
			}
			return id.sizeValue(e.Value)
		}
	}
	if len(d.Subs) == 0 || positions == nil {
		return e.Value
	}
	var offsets []uint32
	for _, sub := range d.Subs {
		if sub.Tag != e.Tag {
			continue
		}
		if offsets == nil {
			offsets = append([]uint32(nil), pointerOffsets(d.Space, e)...)
		}
		if sub.Index < uint32(len(offsets)) {
			offsets[sub.Index] = positions[sub.Dir]
		}
	}
	if offsets == nil {
		return e.Value
	}
	if _, ok := e.Value.(IFDs); ok {
		return IFDs(offsets)
	}
	return Longs(offsets)
}

// checkValue rejects values that can't be written.
func checkValue(tag Tag, v Value) error {
	if op, ok := v.(Opaque); ok {
		if op.Code.Known() {
			return &UnsupportedTypeError{Tag: tag, Type: op.Code, Reason: "opaque value with a known type code"}
		}
		if len(op.Raw) != 4 {
			return &UnsupportedTypeError{Tag: tag, Type: op.Code, Reason: fmt.Sprintf("opaque value of %d bytes, want 4", len(op.Raw))}
		}
	}
	return nil
}

// dataSize returns the size of a directory's external data: values that
// don't fit in their entries and image data, each word aligned.
func (m *Metadata) dataSize(d *Directory) (uint64, error) {
	var size uint64
	for i := range d.Entries {
		v := m.entryValue(d, i, nil, nil)
		if err := checkValue(d.Entries[i].Tag, v); err != nil {
			return 0, err
		}
		if n := valueSize(v); n > 4 {
			size += align(n)
		}
	}
	if m.cfg.ImageData {
		for _, id := range d.ImageData {
			for _, seg := range id.Segments {
				size += align(uint64(len(seg)))
			}
		}
	}
	return size, nil
}

// layout assigns a position to every directory reachable from the
// primary IFD: each directory, then its sub-IFDs in tag order, then the
// rest of its chain. Positions start after the header. Chains are
// followed iteratively, so long chains don't deepen the recursion.
func (m *Metadata) layout() ([]placement, error) {
	var places []placement
	seen := make(map[DirID]bool)
	cursor := uint64(HeaderSize)
	var visit, visitChain func(id DirID) error
	visit = func(id DirID) error {
		d := m.Dir(id)
		if d == nil {
			return fmt.Errorf("exif66: reference to missing directory %d", id)
		}
		if seen[id] {
			return &ChainCycleError{Offset: d.Offset}
		}
		seen[id] = true
		if len(d.Entries) > 0xFFFF {
			return fmt.Errorf("%w: IFD %d has %d entries, max 65535", ErrTooLarge, id, len(d.Entries))
		}
		data, err := m.dataSize(d)
		if err != nil {
			return err
		}
		size := uint64(d.TableSize()) + data
		if cursor+size > math.MaxUint32 {
			return fmt.Errorf("%w: serialized size exceeds 4GiB", ErrTooLarge)
		}
		places = append(places, placement{id: id, pos: uint32(cursor), size: uint32(size)})
		cursor += size
		for _, sub := range d.sortedSubs() {
			if err := visitChain(sub.Dir); err != nil {
				return err
			}
		}
		return nil
	}
	visitChain = func(id DirID) error {
		for ; id != NoDir; id = m.dirs[id].Next {
			if err := visit(id); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visitChain(0); err != nil {
		return nil, err
	}
	return places, nil
}

// Serialize encodes the metadata as a TIFF header followed by every
// reachable IFD, returning a new buffer. The metadata is not modified.
func (m *Metadata) Serialize() ([]byte, error) {
	places, err := m.layout()
	if err != nil {
		return nil, err
	}
	positions := make(map[DirID]uint32, len(places))
	total := uint32(HeaderSize)
	for _, p := range places {
		positions[p.id] = p.pos
		total = p.pos + p.size
	}
	order := m.Order
	out := make([]byte, 0, total)
	out = appendHeader(out, order, HeaderSize)
	for _, p := range places {
		out = m.emit(out, p, positions)
		if uint32(len(out)) != p.pos+p.size {
			return nil, fmt.Errorf("exif66: IFD %d serialized to %d bytes, expected %d", p.id, uint32(len(out))-p.pos, p.size)
		}
	}
	m.cfg.debug("serialized", "ifds", len(places), "bytes", len(out))
	return out, nil
}

// emit appends one directory and its external data to out, which must
// end at p.pos.
func (m *Metadata) emit(out []byte, p placement, positions map[DirID]uint32) []byte {
	d := m.dirs[p.id]
	order := m.Order
	tableEnd := p.pos + d.TableSize()

	// Order in the buffer is 1) IFD 2) values 3) image data.
	var valuesSize uint64
	for i := range d.Entries {
		if n := valueSize(m.entryValue(d, i, nil, nil)); n > 4 {
			valuesSize += align(n)
		}
	}
	segments := make(map[Tag][]uint32)
	if m.cfg.ImageData {
		segPos := tableEnd + uint32(valuesSize)
		for _, id := range d.ImageData {
			offsets := make([]uint32, len(id.Segments))
			for j, seg := range id.Segments {
				offsets[j] = segPos
				segPos += uint32(align(uint64(len(seg))))
			}
			segments[id.OffsetTag] = offsets
		}
	}

	values := make([]Value, len(d.Entries))
	out = order.AppendUint16(out, uint16(len(d.Entries)))
	dataPos := tableEnd
	for i, e := range d.Entries {
		v := m.entryValue(d, i, positions, segments)
		values[i] = v
		out = order.AppendUint16(out, uint16(e.Tag))
		out = order.AppendUint16(out, uint16(v.Type()))
		out = order.AppendUint32(out, v.Count())
		if n := valueSize(v); n > 4 {
			out = order.AppendUint32(out, dataPos)
			dataPos += uint32(align(n))
		} else {
			start := len(out)
			out = v.appendTo(out, order)
			for len(out) < start+4 {
				out = append(out, 0)
			}
		}
	}
	var next uint32
	if d.Next != NoDir {
		next = positions[d.Next]
	}
	out = order.AppendUint32(out, next)

	for _, v := range values {
		if n := valueSize(v); n > 4 {
			out = v.appendTo(out, order)
			if n%2 != 0 {
				out = append(out, 0)
			}
		}
	}
	if m.cfg.ImageData {
		for _, id := range d.ImageData {
			for _, seg := range id.Segments {
				out = append(out, seg...)
				if len(seg)%2 != 0 {
					out = append(out, 0)
				}
			}
		}
	}
	return out
}
