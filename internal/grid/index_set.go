package grid

import "math/bits"

// IndexSet records a set of tile indices of a grid using a bitmap.
//
// The bitmap uses one bit per tile, packed into uint64 words (64 tiles per
// word). Adding an index twice is a no-op, which makes the set a natural
// deduplicating buffer for invalidation passes.
//
// Thread safety: IndexSet is NOT thread-safe.
type IndexSet struct {
	// words is the bitmap where each bit represents one tile.
	// Bit index = j * tilesX + i
	words []uint64

	tilesX int
	tilesY int
}

// NewIndexSet creates an empty set for a grid of tilesX by tilesY tiles.
// Returns nil if dimensions are invalid (zero or negative).
func NewIndexSet(tilesX, tilesY int) *IndexSet {
	if tilesX <= 0 || tilesY <= 0 {
		return nil
	}
	total := tilesX * tilesY
	return &IndexSet{
		words:  make([]uint64, (total+63)/64),
		tilesX: tilesX,
		tilesY: tilesY,
	}
}

// Add inserts index (i, j). Out-of-range indices are ignored.
func (s *IndexSet) Add(i, j int) {
	if s == nil || i < 0 || i >= s.tilesX || j < 0 || j >= s.tilesY {
		return
	}
	idx := j*s.tilesX + i
	s.words[idx/64] |= 1 << (idx & 63)
}

// Contains reports whether (i, j) is in the set.
func (s *IndexSet) Contains(i, j int) bool {
	if s == nil || i < 0 || i >= s.tilesX || j < 0 || j >= s.tilesY {
		return false
	}
	idx := j*s.tilesX + i
	return s.words[idx/64]&(1<<(idx&63)) != 0
}

// Len returns the number of indices in the set.
func (s *IndexSet) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether the set holds no index.
func (s *IndexSet) IsEmpty() bool {
	if s == nil {
		return true
	}
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Clear removes every index.
func (s *IndexSet) Clear() {
	if s == nil {
		return
	}
	clear(s.words)
}

// ForEach calls fn for each index in row-major order (left-to-right,
// top-to-bottom).
func (s *IndexSet) ForEach(fn func(i, j int)) {
	if s == nil || fn == nil {
		return
	}
	for wordIdx, word := range s.words {
		for word != 0 {
			bitIdx := bits.TrailingZeros64(word)
			idx := wordIdx*64 + bitIdx
			fn(idx%s.tilesX, idx/s.tilesX)
			word &^= 1 << bitIdx
		}
	}
}
