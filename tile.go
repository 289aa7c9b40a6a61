package tiling

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/google/uuid"
)

// TileIndex addresses a cell of the tile grid.
type TileIndex struct {
	// I is the column (0-based).
	I int

	// J is the row (0-based).
	J int
}

// String returns the index as "(i,j)".
func (idx TileIndex) String() string {
	return fmt.Sprintf("(%d,%d)", idx.I, idx.J)
}

// TilingID identifies a Tiling. Tiles refer to their owner through it
// instead of holding a pointer back to the tiling.
type TilingID uuid.UUID

// String returns the canonical UUID form of the id.
func (id TilingID) String() string {
	return uuid.UUID(id).String()
}

// Backing is the recorded content a tile rasterizes from. It is opaque to
// the tiling; hosts swap it through BackingRebaser.UpdatePile.
type Backing interface {
	ID() uuid.UUID
}

// Tile is a unit of rasterizable content bound to a content-space rectangle.
//
// The tiling only ever replaces whole tiles and publishes priorities; the
// raster pipeline may read a tile concurrently. Priorities are stored as
// immutable values swapped atomically, and so is the backing.
type Tile struct {
	owner       TilingID
	contentRect image.Rectangle

	priority [numTrees]atomic.Pointer[Priority]
	backing  atomic.Pointer[backingBox]
}

// backingBox lets an interface value live behind an atomic.Pointer.
type backingBox struct {
	b Backing
}

// NewTile creates a tile owned by the tiling with the given id, covering
// contentRect (border included). Both priorities start as NotLive.
func NewTile(owner TilingID, contentRect image.Rectangle, backing Backing) *Tile {
	t := &Tile{
		owner:       owner,
		contentRect: contentRect,
	}
	if backing != nil {
		t.backing.Store(&backingBox{b: backing})
	}
	return t
}

// Owner returns the id of the tiling that requested this tile.
func (t *Tile) Owner() TilingID {
	return t.owner
}

// ContentRect returns the content-space rectangle the tile rasterizes,
// border included.
func (t *Tile) ContentRect() image.Rectangle {
	return t.contentRect
}

// Priority returns the tile priority for tree.
func (t *Tile) Priority(tree Tree) Priority {
	if p := t.priority[tree].Load(); p != nil {
		return *p
	}
	return NotLive()
}

// SetPriority publishes the tile priority for tree.
func (t *Tile) SetPriority(tree Tree, p Priority) {
	t.priority[tree].Store(&p)
}

// CombinedPriority returns the more urgent of the two tree priorities:
// the one with the smaller time to visible, then the smaller distance.
func (t *Tile) CombinedPriority() Priority {
	a := t.Priority(ActiveTree)
	p := t.Priority(PendingTree)
	if p.TimeToVisible < a.TimeToVisible ||
		(p.TimeToVisible == a.TimeToVisible && p.DistanceToVisible < a.DistanceToVisible) {
		return p
	}
	return a
}

// Backing returns the recorded content the tile rasterizes from, or nil.
func (t *Tile) Backing() Backing {
	if box := t.backing.Load(); box != nil {
		return box.b
	}
	return nil
}

// SetBacking replaces the recorded content of the tile.
func (t *Tile) SetBacking(b Backing) {
	if b == nil {
		t.backing.Store(nil)
		return
	}
	t.backing.Store(&backingBox{b: b})
}
