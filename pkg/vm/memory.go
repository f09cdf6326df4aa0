package vm

import "um/pkg/vmerrors"

// Word is a single 32-bit cell: a register value, a memory word, or an
// instruction. All arithmetic on Word wraps modulo 2^32, which is exactly
// what Go's uint32 already does.
type Word uint32

// segment is a contiguous, fixed-length run of words. Segments are never
// resized after Map; LOADP replaces segment 0's contents wholesale instead
// of growing or shrinking it.
type segment []Word

// Memory is the segmented memory manager: a table of segment ids to
// segments plus a free list of ids available for reuse. It mirrors the
// original um.c Memory_T (a sequence of segments and a sequence of freed
// ids) but keeps the two invariants explicit instead of assert-only:
// a live id is mapped XOR on the free list, and segment 0 is always
// mapped.
type Memory struct {
	segments []segment
	live     []bool
	free     []Word
}

// NewMemory installs program as segment 0 and returns a Memory ready for
// execution. This is the only segment that exists until the program
// itself calls MAP. program is copied, not aliased.
func NewMemory(program []Word) *Memory {
	seg0 := make(segment, len(program))
	copy(seg0, program)
	m := &Memory{}
	m.segments = append(m.segments, seg0)
	m.live = append(m.live, true)
	return m
}

// Map allocates a new zero-filled segment of the given length and returns
// its id. A previously unmapped id is reused when one is available;
// otherwise the segment table grows by one. Which free id comes back is
// unspecified beyond "one that is currently free" — spec.md §9 notes the
// original's free-list discipline is not simple LIFO or FIFO, and
// conforming programs must not depend on the exact number.
func (m *Memory) Map(length Word) Word {
	seg := make(segment, length)
	if n := len(m.free); n > 0 {
		id := m.free[n-1]
		m.free = m.free[:n-1]
		m.segments[id] = seg
		m.live[id] = true
		return id
	}
	id := Word(len(m.segments))
	m.segments = append(m.segments, seg)
	m.live = append(m.live, true)
	return id
}

// Unmap releases the segment at id and makes the id available for reuse.
// Unmapping segment 0 or an id that is not currently mapped is fatal.
func (m *Memory) Unmap(id Word) error {
	if id == 0 {
		return vmerrors.New(vmerrors.Unmap, "cannot unmap segment 0")
	}
	if !m.mapped(id) {
		return vmerrors.New(vmerrors.Unmap, "segment %d is not mapped", id)
	}
	m.segments[id] = nil
	m.live[id] = false
	m.free = append(m.free, id)
	return nil
}

func (m *Memory) mapped(id Word) bool {
	return int(id) < len(m.live) && m.live[id]
}

// Get reads the word at (seg, off), bounds-checked against both the
// segment table and the segment's own length.
func (m *Memory) Get(seg, off Word) (Word, error) {
	if !m.mapped(seg) {
		return 0, vmerrors.New(vmerrors.Memory, "read from unmapped segment %d", seg)
	}
	s := m.segments[seg]
	if int(off) >= len(s) {
		return 0, vmerrors.New(vmerrors.Memory, "offset %d out of bounds for segment %d (length %d)", off, seg, len(s))
	}
	return s[off], nil
}

// Put writes val at (seg, off), bounds-checked identically to Get.
func (m *Memory) Put(seg, off, val Word) error {
	if !m.mapped(seg) {
		return vmerrors.New(vmerrors.Memory, "write to unmapped segment %d", seg)
	}
	s := m.segments[seg]
	if int(off) >= len(s) {
		return vmerrors.New(vmerrors.Memory, "offset %d out of bounds for segment %d (length %d)", off, seg, len(s))
	}
	s[off] = val
	return nil
}

// SegmentZeroLength returns len(segment 0), used by the engine to bound
// the program counter.
func (m *Memory) SegmentZeroLength() int {
	return len(m.segments[0])
}

// ReplaceSegmentZero makes segment 0's contents a deep copy of segment
// id's contents. Segment id is left mapped and unmodified: aliasing
// between the two afterward would violate spec.md invariant 3.
func (m *Memory) ReplaceSegmentZero(id Word) error {
	if !m.mapped(id) {
		return vmerrors.New(vmerrors.Memory, "load-program from unmapped segment %d", id)
	}
	src := m.segments[id]
	dup := make(segment, len(src))
	copy(dup, src)
	m.segments[0] = dup
	return nil
}

// MappedCount returns the number of segment ids currently mapped,
// including segment 0. Used only for the optional metrics gauge — it has
// no bearing on execution semantics.
func (m *Memory) MappedCount() int {
	n := 0
	for _, ok := range m.live {
		if ok {
			n++
		}
	}
	return n
}
