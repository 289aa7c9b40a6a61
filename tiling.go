package tiling

import (
	"fmt"
	"image"
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/gogpu/tiling/internal/grid"
)

// Tiling partitions a layer into tiles at one contents scale.
//
// The tiling owns the index-keyed tile store and the grid layout. Tiles are
// created lazily through the client's TileFactory when a region becomes
// exposed or is invalidated, and dropped when they fall outside the layer.
//
// Thread safety: Tiling is NOT thread-safe. All methods must be called
// from the same goroutine, and none of them may be called from inside a
// Client callback.
type Tiling struct {
	id            TilingID
	client        Client
	contentsScale float64
	layerBounds   image.Point
	resolution    Resolution

	grid  *grid.Grid
	tiles tileStore

	// lastPrioritizedRect is the inflated content rect of the previous
	// priority update.
	lastPrioritizedRect image.Rectangle

	inflationMargin int
	mapper          RectMapper
}

// New creates an empty tiling at the given contents scale.
// Panics if contentsScale is not positive.
func New(contentsScale float64, opts ...TilingOption) *Tiling {
	if !(contentsScale > 0) {
		panic(fmt.Sprintf("tiling: contents scale must be positive, got %v", contentsScale))
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Tiling{
		id:              TilingID(uuid.New()),
		client:          o.client,
		contentsScale:   contentsScale,
		resolution:      o.resolution,
		grid:            grid.New(image.Point{}, image.Point{}, o.borderTexels),
		tiles:           newTileStore(),
		inflationMargin: o.inflationMargin,
		mapper:          o.mapper,
	}
}

// Clone returns a copy of the tiling with a fresh id.
//
// The clone shares tile references with t: both stores point at the same
// Tile values, so priorities published through either are visible to both
// until one of them replaces the tile. Later structural changes (creation,
// invalidation, eviction) on either tiling do not affect the other.
func (t *Tiling) Clone() *Tiling {
	c := *t
	c.id = TilingID(uuid.New())
	c.grid = t.grid.Clone()
	c.tiles = t.tiles.clone()
	return &c
}

// ID returns the identifier tiles use to refer to this tiling.
func (t *Tiling) ID() TilingID {
	return t.id
}

// Client returns the host client, or nil.
func (t *Tiling) Client() Client {
	return t.client
}

// SetClient sets the host client.
func (t *Tiling) SetClient(c Client) {
	t.client = c
}

// ContentsScale returns the scale from layer space to content space.
func (t *Tiling) ContentsScale() float64 {
	return t.contentsScale
}

// Resolution returns the resolution classification of the tiling.
func (t *Tiling) Resolution() Resolution {
	return t.resolution
}

// SetResolution changes the resolution classification. It takes effect on
// the next priority update.
func (t *Tiling) SetResolution(r Resolution) {
	t.resolution = r
}

// LayerBounds returns the layer size in layer space.
func (t *Tiling) LayerBounds() image.Point {
	return t.layerBounds
}

// ContentSizeF returns the unrounded content size.
func (t *Tiling) ContentSizeF() SizeF {
	return SizeF{
		W: float64(t.layerBounds.X) * t.contentsScale,
		H: float64(t.layerBounds.Y) * t.contentsScale,
	}
}

// ContentRect returns the content area, rounded up to whole texels.
func (t *Tiling) ContentRect() image.Rectangle {
	s := t.ContentSizeF()
	return image.Rectangle{Max: ceiledSize(s.W, s.H)}
}

// TileSize returns the maximum tile size, border included. Every tile
// texture has this size.
func (t *Tiling) TileSize() image.Point {
	return t.grid.MaxTextureSize()
}

// BorderTexels returns the border shared between neighbouring tiles.
func (t *Tiling) BorderTexels() int {
	return t.grid.BorderTexels()
}

// NumTilesX returns the number of grid columns.
func (t *Tiling) NumTilesX() int {
	return t.grid.NumTilesX()
}

// NumTilesY returns the number of grid rows.
func (t *Tiling) NumTilesY() int {
	return t.grid.NumTilesY()
}

// TileBounds returns the content-space bounds of grid cell (i, j) without
// border. Panics if the cell is outside the grid.
func (t *Tiling) TileBounds(i, j int) image.Rectangle {
	return t.grid.TileBounds(i, j)
}

// TileAt returns the tile at grid cell (i, j), or nil if none exists.
func (t *Tiling) TileAt(i, j int) *Tile {
	return t.tiles.lookup(TileIndex{I: i, J: j})
}

// TileCount returns the number of materialized tiles.
func (t *Tiling) TileCount() int {
	return t.tiles.len()
}

// Indices returns the indices of all materialized tiles in row-major order.
func (t *Tiling) Indices() []TileIndex {
	return t.tiles.indices()
}

// Tiles returns an iterator over the materialized tiles in row-major order.
func (t *Tiling) Tiles() iter.Seq2[TileIndex, *Tile] {
	return func(yield func(TileIndex, *Tile) bool) {
		for _, idx := range t.tiles.indices() {
			if !yield(idx, t.tiles.lookup(idx)) {
				return
			}
		}
	}
}

// LastPrioritizedRect returns the inflated content rect tracked by the most
// recent priority update.
func (t *Tiling) LastPrioritizedRect() image.Rectangle {
	return t.lastPrioritizedRect
}

// SetLayerBounds resizes the layer.
//
// Tiles outside the new content area are dropped, every tile is dropped if
// the client picks a different tile size, and tiles are created for the
// newly exposed part of the layer. Panics if the layer is non-empty and no
// client is set.
func (t *Tiling) SetLayerBounds(bounds image.Point) {
	if bounds == t.layerBounds {
		return
	}

	oldBounds := t.layerBounds
	t.layerBounds = bounds
	oldContentSize := t.grid.TotalSize()
	contentSize := t.ContentRect().Size()
	t.grid.SetTotalSize(contentSize)

	if bounds.X <= 0 || bounds.Y <= 0 {
		t.tiles.clear()
		return
	}
	if t.client == nil {
		panic("tiling: SetLayerBounds on a non-empty layer requires a client")
	}

	tileSize := t.client.CalculateTileSize(t.grid.MaxTextureSize(), contentSize)
	if tileSize != t.grid.MaxTextureSize() {
		Logger().Debug("tiling: tile size changed",
			"tiling", t.id, "from", t.grid.MaxTextureSize(), "to", tileSize, "dropped", t.tiles.len())
		t.grid.SetMaxTextureSize(tileSize)
		t.tiles.clear()
	}

	// Any tiles outside our new bounds are invalid and should be dropped.
	if oldContentSize.X > contentSize.X || oldContentSize.Y > contentSize.Y {
		right := t.grid.TileXIndexFromSrcCoord(contentSize.X - 1)
		bottom := t.grid.TileYIndexFromSrcCoord(contentSize.Y - 1)
		if n := t.tiles.removeAllOutside(right, bottom); n > 0 {
			Logger().Debug("tiling: dropped tiles outside bounds",
				"tiling", t.id, "count", n, "right", right, "bottom", bottom)
		}
	}

	// Create tiles for newly exposed areas.
	exposed := NewRegion(image.Rectangle{Max: bounds})
	exposed.Subtract(image.Rectangle{Max: oldBounds})
	for _, r := range exposed.Rects() {
		t.Invalidate(NewRegion(r))
		t.CreateTilesFromLayerRect(r)
	}
}

// Invalidate replaces every existing tile intersecting the layer-space
// region with a new tile at the same index.
//
// All affected tiles are removed before any is recreated, so no index
// touched by the region keeps a tile with stale content. Indices without a
// tile are left empty.
func (t *Tiling) Invalidate(region Region) {
	if region.IsEmpty() || t.tiles.len() == 0 {
		return
	}

	removed := grid.NewIndexSet(t.grid.NumTilesX(), t.grid.NumTilesY())
	layerRect := image.Rectangle{Max: t.layerBounds}
	for _, r := range region.Rects() {
		r = r.Intersect(layerRect)
		if r.Empty() {
			continue
		}
		contentRect := ToEnclosingRect(scaleRect(r, t.contentsScale, t.contentsScale))
		for it := t.NewIterator(t.contentsScale, contentRect); it.Valid(); it.Next() {
			idx := it.Index()
			if t.tiles.remove(idx) {
				removed.Add(idx.I, idx.J)
			}
		}
	}

	if removed.IsEmpty() {
		return
	}
	Logger().Debug("tiling: invalidated tiles", "tiling", t.id, "count", removed.Len())
	removed.ForEach(t.createTile)
}

// CreateTilesFromLayerRect creates the missing tiles covering a layer-space
// rectangle. Existing tiles are left untouched.
func (t *Tiling) CreateTilesFromLayerRect(r image.Rectangle) {
	t.CreateTilesFromContentRect(ToEnclosingRect(scaleRect(r, t.contentsScale, t.contentsScale)))
}

// CreateTilesFromContentRect creates the missing tiles covering a
// content-space rectangle. Existing tiles are left untouched.
func (t *Tiling) CreateTilesFromContentRect(r image.Rectangle) {
	for it := t.grid.Iterate(r); it.Valid(); it.Next() {
		i, j := it.Index()
		if t.tiles.lookup(TileIndex{I: i, J: j}) != nil {
			continue
		}
		t.createTile(i, j)
	}
}

// createTile asks the client for a tile at (i, j). Panics if the index is
// occupied. A declined request leaves the cell empty.
func (t *Tiling) createTile(i, j int) {
	idx := TileIndex{I: i, J: j}
	if t.tiles.lookup(idx) != nil {
		panic(fmt.Sprintf("tiling: tile %v already exists", idx))
	}
	if t.client == nil {
		panic("tiling: creating tiles requires a client")
	}

	rect := t.grid.TileBoundsWithBorder(i, j)
	rect.Max = rect.Min.Add(t.grid.MaxTextureSize())

	tile := t.client.CreateTile(t, rect)
	if tile == nil {
		return
	}
	t.tiles.insert(idx, tile)
}

// PriorityUpdate describes two consecutive frames for a priority update.
type PriorityUpdate struct {
	// DeviceViewport is the size of the screen in device pixels.
	DeviceViewport image.Point

	// ViewportInLayerSpace is the visible part of the layer.
	ViewportInLayerSpace RectF

	// LastLayerContentsScale and CurrentLayerContentsScale are the layer's
	// contents scale in the previous and current frame.
	LastLayerContentsScale    float64
	CurrentLayerContentsScale float64

	// LastScreenTransform and CurrentScreenTransform map layer content
	// space to the screen in the previous and current frame.
	LastScreenTransform    Transform
	CurrentScreenTransform Transform

	// TimeDelta is the time elapsed between the two frames.
	TimeDelta time.Duration
}

// UpdateTilePriorities recomputes the priority of every tile near the
// viewport for tree.
//
// Tiles that were tracked by the previous update but fall outside the new
// inflated viewport receive NotLive exactly once.
func (t *Tiling) UpdateTilePriorities(tree Tree, u PriorityUpdate) {
	contentRect := t.ContentRect()
	if contentRect.Empty() {
		return
	}

	viewport := ToEnclosingRect(u.ViewportInLayerSpace.Scale(t.contentsScale, t.contentsScale))
	inflated := viewport.Inset(-t.inflationMargin).Intersect(contentRect)

	// Tiles that were live last frame but will not be live this frame.
	retired := 0
	for it := t.grid.Difference(t.lastPrioritizedRect, inflated); it.Valid(); it.Next() {
		tile := t.TileAt(it.Index())
		if tile == nil {
			continue
		}
		tile.SetPriority(tree, NotLive())
		retired++
	}
	t.lastPrioritizedRect = inflated

	viewRect := RectF{W: float64(u.DeviceViewport.X), H: float64(u.DeviceViewport.Y)}
	currentScale := u.CurrentLayerContentsScale / t.contentsScale
	lastScale := u.LastLayerContentsScale / t.contentsScale
	timeDelta := u.TimeDelta.Seconds()

	// Translation-only transforms dominate scrolling; map them by offset.
	translationOnly := u.LastScreenTransform.IsIdentityOrTranslation() &&
		u.CurrentScreenTransform.IsIdentityOrTranslation()
	currentX, currentY := u.CurrentScreenTransform.Translation()
	lastX, lastY := u.LastScreenTransform.Translation()

	updated := 0
	for it := t.grid.Iterate(inflated); it.Valid(); it.Next() {
		i, j := it.Index()
		tile := t.TileAt(i, j)
		if tile == nil {
			continue
		}

		bounds := t.grid.TileBounds(i, j)
		currentRect := scaleRect(bounds, currentScale, currentScale)
		lastRect := scaleRect(bounds, lastScale, lastScale)

		var currentScreen, lastScreen RectF
		if translationOnly {
			currentScreen = currentRect.Offset(currentX, currentY)
			lastScreen = lastRect.Offset(lastX, lastY)
		} else {
			currentScreen = t.mapper.MapClippedRect(u.CurrentScreenTransform, currentRect)
			lastScreen = t.mapper.MapClippedRect(u.LastScreenTransform, lastRect)
		}

		distance := ManhattanDistance(currentScreen, viewRect)
		timeToVisible := TimeForBoundsToIntersect(lastScreen, currentScreen, timeDelta, viewRect)
		tile.SetPriority(tree, NewPriority(t.resolution, timeToVisible, distance))
		updated++
	}

	Logger().Debug("tiling: updated priorities",
		"tiling", t.id, "tree", tree, "updated", updated, "retired", retired,
		"translation_only", translationOnly, "inflated", inflated)
}

// PromoteRole moves every tile's priority from one tree to another, resets
// the source tree to NotLive, and asks the client to rebase the tile's
// backing.
func (t *Tiling) PromoteRole(from, to Tree) {
	for _, tile := range t.tiles.tiles {
		tile.SetPriority(to, tile.Priority(from))
		tile.SetPriority(from, NotLive())

		// A tile that is never invalidated would otherwise keep the
		// provisional backing alive indefinitely.
		if t.client != nil {
			t.client.UpdatePile(tile)
		}
	}
}

// DidBecomeActive promotes the tiling from the pending to the active tree.
func (t *Tiling) DidBecomeActive() {
	t.PromoteRole(PendingTree, ActiveTree)
}
