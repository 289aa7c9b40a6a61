package tiling

import (
	"cmp"
	"maps"
	"slices"
)

// tileStore maps grid indices to the tiles currently materialized.
//
// Thread safety: tileStore is NOT thread-safe. It is owned by a Tiling.
type tileStore struct {
	tiles map[TileIndex]*Tile
}

func newTileStore() tileStore {
	return tileStore{tiles: make(map[TileIndex]*Tile)}
}

// lookup returns the tile at idx, or nil.
func (s *tileStore) lookup(idx TileIndex) *Tile {
	return s.tiles[idx]
}

// insert stores tile at idx. The caller guarantees idx is free.
func (s *tileStore) insert(idx TileIndex, tile *Tile) {
	s.tiles[idx] = tile
}

// remove deletes the tile at idx and reports whether there was one.
func (s *tileStore) remove(idx TileIndex) bool {
	if _, ok := s.tiles[idx]; !ok {
		return false
	}
	delete(s.tiles, idx)
	return true
}

// removeAllOutside drops every tile whose column exceeds right or whose
// row exceeds bottom, and returns how many were dropped.
func (s *tileStore) removeAllOutside(right, bottom int) int {
	dropped := 0
	for idx := range s.tiles {
		if idx.I > right || idx.J > bottom {
			delete(s.tiles, idx)
			dropped++
		}
	}
	return dropped
}

// clear drops all tiles.
func (s *tileStore) clear() {
	clear(s.tiles)
}

func (s *tileStore) len() int {
	return len(s.tiles)
}

// indices returns the occupied indices in row-major order.
func (s *tileStore) indices() []TileIndex {
	out := make([]TileIndex, 0, len(s.tiles))
	for idx := range s.tiles {
		out = append(out, idx)
	}
	slices.SortFunc(out, compareIndex)
	return out
}

// clone returns a store holding the same tile references.
func (s *tileStore) clone() tileStore {
	return tileStore{tiles: maps.Clone(s.tiles)}
}

// compareIndex orders indices row-major.
func compareIndex(a, b TileIndex) int {
	if c := cmp.Compare(a.J, b.J); c != 0 {
		return c
	}
	return cmp.Compare(a.I, b.I)
}
